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

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func values[E any](q Deque[E]) []E {
	var vs []E
	q.Iter(0, func(v E) bool {
		vs = append(vs, v)
		return true
	})
	return vs
}

func checkLinks[E any](t *testing.T, q *List[E]) {
	n := 0
	var prev *Element[E]
	for e, ok := q.Front(); ok && e != nil; e = e.Next() {
		require.Equal(t, prev, e.Prev())
		require.Same(t, q, e.list)
		prev = e
		n++
	}
	require.Equal(t, q.Len(), n)
	if n > 0 {
		require.Nil(t, q.MustFront().Prev())
		require.Nil(t, q.MustBack().Next())
	}
}

func TestPushAndPop(t *testing.T) {
	q := New[int]()
	q.PushBack(2)
	q.PushBack(3)
	q.PushFront(1)
	assert.Equal(t, 3, q.Len())
	assert.Equal(t, []int{1, 2, 3}, values(q))
	checkLinks(t, q.(*List[int]))

	assert.Equal(t, 1, q.PopFront().Value)
	assert.Equal(t, 3, q.PopBack().Value)
	assert.Equal(t, 2, q.MustFront().Value)
	assert.Equal(t, 2, q.MustBack().Value)
	assert.Equal(t, 2, q.PopBack().Value)

	assert.Nil(t, q.PopFront())
	assert.Nil(t, q.PopBack())
	_, ok := q.Front()
	assert.False(t, ok)
	_, ok = q.Back()
	assert.False(t, ok)
	assert.Panics(t, func() { q.MustFront() })
	assert.Panics(t, func() { q.MustBack() })
}

func TestZeroValue(t *testing.T) {
	var q List[string]
	assert.Equal(t, 0, q.Len())
	assert.Nil(t, q.PopFront())
	q.PushBack("a")
	q.PushFront("b")
	assert.Equal(t, []string{"b", "a"}, values[string](&q))
	checkLinks(t, &q)
}

func TestIter(t *testing.T) {
	q := New[int]()
	for i := 0; i < 10; i++ {
		q.PushBack(i)
	}

	var got []int
	q.Iter(3, func(v int) bool {
		got = append(got, v)
		return v < 5
	})
	assert.Equal(t, []int{3, 4, 5}, got)

	got = got[:0]
	q.Iter(20, func(v int) bool {
		got = append(got, v)
		return true
	})
	assert.Empty(t, got)
}

func TestMoveAndRemove(t *testing.T) {
	q := &List[int]{}
	e1 := q.PushBack(1)
	e2 := q.PushBack(2)
	e3 := q.PushBack(3)

	q.MoveToFront(e3)
	assert.Equal(t, []int{3, 1, 2}, values[int](q))
	q.MoveToBack(e3)
	assert.Equal(t, []int{1, 2, 3}, values[int](q))
	checkLinks(t, q)

	assert.Equal(t, 2, q.Remove(e2))
	assert.Equal(t, []int{1, 3}, values[int](q))
	// removing twice is a no-op
	assert.Equal(t, 2, q.Remove(e2))
	assert.Equal(t, 2, q.Len())

	other := &List[int]{}
	other.MoveToFront(e1)
	assert.Equal(t, []int{1, 3}, values[int](q))
	checkLinks(t, q)
}

func TestSwap(t *testing.T) {
	src := &List[string]{}
	dst := &List[string]{}
	a := src.PushBack("a")
	b := src.PushBack("b")
	src.PushBack("c")
	dst.PushBack("x")

	src.Swap(b, dst)
	assert.Equal(t, []string{"a", "c"}, values[string](src))
	assert.Equal(t, []string{"x", "b"}, values[string](dst))
	checkLinks(t, src)
	checkLinks(t, dst)

	// the same node moved, no copy
	last, ok := dst.Back()
	require.True(t, ok)
	assert.Same(t, b, last)

	// not an element of dst: ignored
	dst.Swap(a, src)
	assert.Equal(t, 2, src.Len())
	assert.Equal(t, 2, dst.Len())

	// into a zero value list
	var empty List[string]
	src.Swap(a, &empty)
	assert.Equal(t, []string{"a"}, values[string](&empty))
	assert.Equal(t, []string{"c"}, values[string](src))
}

func TestDestroy(t *testing.T) {
	q := New[int]()
	for i := 0; i < 5; i++ {
		q.PushBack(i)
	}

	var seen []int
	ok := q.Destroy(func(v int) bool {
		seen = append(seen, v)
		return v != 2
	})
	assert.False(t, ok)
	assert.Equal(t, []int{0, 1, 2}, seen)
	assert.Equal(t, []int{3, 4}, values(q))

	seen = seen[:0]
	ok = q.Destroy(func(v int) bool {
		seen = append(seen, v)
		return true
	})
	assert.True(t, ok)
	assert.Equal(t, []int{3, 4}, seen)
	assert.Equal(t, 0, q.Len())

	assert.True(t, New[int]().Destroy(func(int) bool { return false }))
}

func TestClear(t *testing.T) {
	q := New[int]()
	q.PushBack(1)
	q.PushBack(2)
	q.Clear()
	assert.Equal(t, 0, q.Len())
	assert.Empty(t, values(q))
}
