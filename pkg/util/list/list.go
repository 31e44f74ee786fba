// Copyright 2023 Matrix Origin
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package list

// Deque is a doubly-linked list that can be used from both ends.
type Deque[E any] interface {
	// Len returns the number of elements of Deque.
	// The complexity is O(1).
	Len() int
	// Clear clears Deque
	Clear()
	// Iter call fn on all elements which after the offset, stopped if false returned
	Iter(offset int, fn func(E) bool)
	// Front returns the first element of Deque, false if the list is empty.
	Front() (*Element[E], bool)
	// Back returns the last element of Deque, false if the list is empty.
	Back() (*Element[E], bool)
	// MustFront returns the first element of Deque, panic if the list is empty.
	MustFront() *Element[E]
	// MustBack returns the last element of Deque, panic if the list is empty.
	MustBack() *Element[E]
	// PopFront removes and returns the first element of Deque, nil if empty.
	PopFront() *Element[E]
	// PopBack removes and returns the last element of Deque, nil if empty.
	PopBack() *Element[E]
	// PushFront inserts a new element e with value v at the front of deque.
	PushFront(v E) *Element[E]
	// PushBack inserts a new element e with value v at the back of deque.
	PushBack(v E) *Element[E]
	// MoveToFront moves element e to the front of list l.
	// If e is not an element of l, the list is not modified.
	MoveToFront(e *Element[E])
	// MoveToBack moves element e to the back of list l.
	// If e is not an element of l, the list is not modified.
	MoveToBack(e *Element[E])
	// Remove removes e from l if e is an element of list l.
	// It returns the element value e.Value.
	Remove(e *Element[E]) E
	// Swap unlinks e from this list and links the same node at the back of
	// dest. No element is allocated. If e is not an element of this list,
	// nothing happens.
	Swap(e *Element[E], dest Deque[E])
	// Destroy removes the elements from the front one by one and calls fn on
	// each removed value. It stops as soon as fn returns false and reports
	// whether the list was emptied.
	Destroy(fn func(E) bool) bool
}

// New returns an initialized Deque.
func New[E any]() Deque[E] {
	q := &List[E]{}
	q.Clear()
	return q
}

// Element is an Element of a linked Deque.
type Element[E any] struct {
	// Internally a List is a ring: &l.root is both the next element of the
	// last element and the previous element of the first one.
	next, prev *Element[E]

	// The list to which this element belongs.
	list *List[E]

	// The value stored with this element.
	Value E
}

// Next returns the next element or nil.
func (e *Element[E]) Next() *Element[E] {
	if p := e.next; e.list != nil && p != &e.list.root {
		return p
	}
	return nil
}

// Prev returns the previous element or nil.
func (e *Element[E]) Prev() *Element[E] {
	if p := e.prev; e.list != nil && p != &e.list.root {
		return p
	}
	return nil
}

// List is the Deque implementation. The zero value is an empty list ready
// to use. A List must not be copied once elements were pushed into it.
type List[E any] struct {
	root Element[E] // sentinel, only &root, root.prev and root.next are used
	len  int        // current length excluding the sentinel
}

func (q *List[E]) Clear() {
	q.root.next = &q.root
	q.root.prev = &q.root
	q.len = 0
}

func (q *List[E]) Len() int { return q.len }

func (q *List[E]) Iter(offset int, fn func(E) bool) {
	if q.len == 0 {
		return
	}

	skipped := 0
	for e := q.root.next; e != &q.root; e = e.next {
		if skipped < offset {
			skipped++
			continue
		}
		if !fn(e.Value) {
			return
		}
	}
}

func (q *List[E]) Front() (*Element[E], bool) {
	if q.len == 0 {
		return nil, false
	}
	return q.root.next, true
}

func (q *List[E]) Back() (*Element[E], bool) {
	if q.len == 0 {
		return nil, false
	}
	return q.root.prev, true
}

func (q *List[E]) MustFront() *Element[E] {
	if q.len == 0 {
		panic("MustFront on a empty deque")
	}
	return q.root.next
}

func (q *List[E]) MustBack() *Element[E] {
	if q.len == 0 {
		panic("MustBack on a empty deque")
	}
	return q.root.prev
}

func (q *List[E]) PopFront() *Element[E] {
	if q.len == 0 {
		return nil
	}
	return q.remove(q.root.next)
}

func (q *List[E]) PopBack() *Element[E] {
	if q.len == 0 {
		return nil
	}
	return q.remove(q.root.prev)
}

func (q *List[E]) PushFront(v E) *Element[E] {
	q.lazyInit()
	return q.insert(&Element[E]{Value: v}, &q.root)
}

func (q *List[E]) PushBack(v E) *Element[E] {
	q.lazyInit()
	return q.insert(&Element[E]{Value: v}, q.root.prev)
}

func (q *List[E]) MoveToFront(e *Element[E]) {
	if e.list != q || q.root.next == e {
		return
	}
	q.move(e, &q.root)
}

func (q *List[E]) MoveToBack(e *Element[E]) {
	if e.list != q || q.root.prev == e {
		return
	}
	q.move(e, q.root.prev)
}

func (q *List[E]) Remove(e *Element[E]) E {
	if e.list == q {
		// e.list == q means q was initialized when e was inserted
		q.remove(e)
	}
	return e.Value
}

func (q *List[E]) Swap(e *Element[E], dest Deque[E]) {
	if e.list != q {
		return
	}
	d := dest.(*List[E])
	d.lazyInit()
	q.remove(e)
	d.insert(e, d.root.prev)
}

func (q *List[E]) Destroy(fn func(E) bool) bool {
	for q.len > 0 {
		e := q.remove(q.root.next)
		if !fn(e.Value) {
			return q.len == 0
		}
	}
	return true
}

// lazyInit lazily initializes a zero List value.
func (q *List[E]) lazyInit() {
	if q.root.next == nil {
		q.Clear()
	}
}

// insert inserts e after at, increments q.len, and returns e.
func (q *List[E]) insert(e, at *Element[E]) *Element[E] {
	e.prev = at
	e.next = at.next
	e.prev.next = e
	e.next.prev = e
	e.list = q
	q.len++
	return e
}

// remove removes e from its list, decrements q.len, and returns e.
func (q *List[E]) remove(e *Element[E]) *Element[E] {
	e.prev.next = e.next
	e.next.prev = e.prev
	e.next = nil // avoid memory leaks
	e.prev = nil // avoid memory leaks
	e.list = nil
	q.len--
	return e
}

// move moves e to next to at.
func (q *List[E]) move(e, at *Element[E]) {
	if e == at {
		return
	}
	e.prev.next = e.next
	e.next.prev = e.prev

	e.prev = at
	e.next = at.next
	e.prev.next = e
	e.next.prev = e
}
