// Copyright 2021 Matrix Origin
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package hashtable

import (
	"context"
	"strings"

	"github.com/matrixorigin/strtable/pkg/common/moerr"
	v2 "github.com/matrixorigin/strtable/pkg/util/metric/v2"
)

// Table is a string keyed hash table. Collisions are chained per bucket and
// the bucket array is resized to keep the load factor between the minimum
// and maximum thresholds.
//
// A Table is not safe for concurrent use. Callers sharing one must
// serialize every call, Search included, and must not call back into the
// table from a Destroyer.
type Table struct {
	size    int
	used    int
	buckets []bucket
	destroy Destroyer

	hash          HashFunc
	maxLoadFactor float64
	minLoadFactor float64
	floorSize     int

	grows   uint64
	shrinks uint64
	deleted bool
}

// New creates a table of size buckets. destroy may be nil.
func New(size int, destroy Destroyer, opts ...Option) (*Table, error) {
	if size <= 0 {
		return nil, moerr.NewInvalidInputNoCtx("hash table size must be positive, got %d", size)
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.resolve(); err != nil {
		return nil, err
	}

	buckets, err := allocBuckets(size)
	if err != nil {
		return nil, err
	}
	t := &Table{
		size:          size,
		buckets:       buckets,
		destroy:       destroy,
		hash:          o.hash,
		maxLoadFactor: o.maxLoadFactor,
		minLoadFactor: o.minLoadFactor,
		floorSize:     o.floorSize,
	}
	if t.floorSize == 0 {
		t.floorSize = size
	}
	return t, nil
}

// NewDefault creates a table of SizeDefault buckets.
func NewDefault(destroy Destroyer) (*Table, error) {
	return New(SizeDefault, destroy)
}

// Add stores data under key. The key is copied. An existing element with
// the same key keeps its place, gets the new data, and the old data goes
// to the Destroyer. Growing the bucket array may fail with an out of memory
// error, in which case the table is left as it was before the call.
func (t *Table) Add(key string, data any) error {
	if t.deleted {
		return moerr.NewInvalidStateNoCtx("hash table is deleted")
	}

	hash := t.hash(key)
	b := &t.buckets[bucketIndex(hash, t.size)]
	if e := b.find(hash, key); e != nil {
		old := e.Value
		e.Value.data = data
		v2.HashTableReplacedCounter.Inc()
		t.destroyElement(old, nil)
		return nil
	}

	e := b.elements.PushBack(element{
		hash: hash,
		key:  strings.Clone(key),
		data: data,
	})
	t.used++

	if t.loadFactor() > t.maxLoadFactor {
		if err := t.grow(); err != nil {
			b.elements.Remove(e)
			t.used--
			return err
		}
	}
	return nil
}

// Search returns the data stored under key.
func (t *Table) Search(key string) (any, bool) {
	if t.deleted {
		return nil, false
	}
	hash := t.hash(key)
	if e := t.buckets[bucketIndex(hash, t.size)].find(hash, key); e != nil {
		return e.Value.data, true
	}
	return nil, false
}

// Remove deletes the element stored under key and hands it to the
// Destroyer along with userData. It returns false, leaving the table
// untouched, when key is absent.
func (t *Table) Remove(key string, userData any) bool {
	if t.deleted {
		return false
	}

	hash := t.hash(key)
	b := &t.buckets[bucketIndex(hash, t.size)]
	e := b.find(hash, key)
	if e == nil {
		return false
	}
	elem := b.elements.Remove(e)
	t.used--
	t.destroyElement(elem, userData)

	if t.size > t.floorSize && t.loadFactor() < t.minLoadFactor {
		// a failed shrink keeps the current, still consistent, buckets
		_ = t.shrink()
	}
	return true
}

// Resize rehashes every element into a new array of newSize buckets.
func (t *Table) Resize(newSize int) error {
	if t.deleted {
		return moerr.NewInvalidStateNoCtx("hash table is deleted")
	}
	if newSize <= 0 {
		return moerr.NewInvalidInputNoCtx("hash table size must be positive, got %d", newSize)
	}
	if err := t.rehash(newSize); err != nil {
		return err
	}
	v2.HashTableExplicitCounter.Inc()
	return nil
}

// Delete hands every element to the Destroyer and releases the buckets.
// The table is unusable afterwards. A panicking Destroyer does not stop the
// teardown; the first panic is returned as an internal error.
func (t *Table) Delete() error {
	if t.deleted {
		return moerr.NewInvalidStateNoCtx("hash table is already deleted")
	}

	var err error
	for i := range t.buckets {
		t.buckets[i].elements.Destroy(func(e element) bool {
			if derr := t.safeDestroy(e); derr != nil && err == nil {
				err = derr
			}
			return true
		})
	}
	t.buckets = nil
	t.used = 0
	t.deleted = true
	return err
}

// Foreach calls fn on every element until fn returns false. fn must not
// modify the table.
func (t *Table) Foreach(fn func(key string, data any) bool) {
	for i := range t.buckets {
		for e, ok := t.buckets[i].elements.Front(); ok && e != nil; e = e.Next() {
			if !fn(e.Value.key, e.Value.data) {
				return
			}
		}
	}
}

// Len returns the number of elements.
func (t *Table) Len() int {
	return t.used
}

// Size returns the number of buckets.
func (t *Table) Size() int {
	return t.size
}

func (t *Table) LoadFactor() float64 {
	return t.loadFactor()
}

func (t *Table) Stats() Stats {
	s := Stats{
		Size:       t.size,
		Used:       t.used,
		LoadFactor: t.loadFactor(),
		Grows:      t.grows,
		Shrinks:    t.shrinks,
	}
	for i := range t.buckets {
		n := t.buckets[i].elements.Len()
		if n == 0 {
			s.EmptyBuckets++
		}
		if n > s.MaxChain {
			s.MaxChain = n
		}
	}
	return s
}

func (t *Table) loadFactor() float64 {
	return float64(t.used) / float64(t.size)
}

func (t *Table) grow() error {
	newSize := t.size
	for float64(t.used)/float64(newSize) > t.maxLoadFactor {
		newSize <<= 1
	}
	if err := t.rehash(newSize); err != nil {
		return err
	}
	t.grows++
	v2.HashTableGrowCounter.Inc()
	return nil
}

func (t *Table) shrink() error {
	newSize := t.size
	for newSize > t.floorSize && float64(t.used)/float64(newSize) < t.minLoadFactor {
		next := newSize >> 1
		if next < t.floorSize {
			next = t.floorSize
		}
		// halving an odd size rounds down and may overshoot the maximum
		if next == 0 || float64(t.used)/float64(next) > t.maxLoadFactor {
			break
		}
		newSize = next
	}
	if newSize == t.size {
		return nil
	}
	if err := t.rehash(newSize); err != nil {
		return err
	}
	t.shrinks++
	v2.HashTableShrinkCounter.Inc()
	return nil
}

// rehash relinks every element into a new bucket array. The array is
// allocated first, so a failure leaves the table untouched.
func (t *Table) rehash(newSize int) error {
	buckets, err := allocBuckets(newSize)
	if err != nil {
		return err
	}
	for i := range t.buckets {
		old := &t.buckets[i].elements
		for e, ok := old.Front(); ok; e, ok = old.Front() {
			old.Swap(e, &buckets[bucketIndex(e.Value.hash, newSize)].elements)
		}
	}
	v2.HashTableRehashedCounter.Add(float64(t.used))
	t.buckets = buckets
	t.size = newSize
	return nil
}

func (t *Table) destroyElement(e element, userData any) {
	if t.destroy != nil {
		t.destroy.Destroy(e.key, e.data, userData)
	}
}

func (t *Table) safeDestroy(e element) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = moerr.ConvertPanicError(context.Background(), r)
		}
	}()
	t.destroyElement(e, nil)
	return nil
}
