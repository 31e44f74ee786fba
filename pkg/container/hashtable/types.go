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
	"github.com/matrixorigin/strtable/pkg/util/list"
)

// Recommended table sizes. Any positive size is accepted.
const (
	SizeMini    = 32
	SizeMedium  = 256
	SizeDefault = 4096
	SizeBig     = 65536
	SizeHuge    = 1048576
)

// MaxSize is the largest bucket array a table will try to allocate.
const MaxSize = 1 << 30

const (
	DefaultMaxLoadFactor = 0.7
	DefaultMinLoadFactor = 0.25
)

var presetSizes = []int{SizeMini, SizeMedium, SizeDefault, SizeBig, SizeHuge}

// Destroyer is called with the key and data of every element leaving the
// table through Remove, a replacing Add or Delete. userData is the value
// given to Remove, nil otherwise.
type Destroyer interface {
	Destroy(key string, data any, userData any)
}

// DestroyFunc adapts a plain function to Destroyer.
type DestroyFunc func(key string, data any, userData any)

func (f DestroyFunc) Destroy(key string, data any, userData any) {
	f(key, data, userData)
}

type element struct {
	hash int64
	key  string
	data any
}

// bucket chains the elements sharing a bucket index. The chain length is
// the bucket's element count.
type bucket struct {
	elements list.List[element]
}

func (b *bucket) find(hash int64, key string) *list.Element[element] {
	e, ok := b.elements.Front()
	if !ok {
		return nil
	}
	for ; e != nil; e = e.Next() {
		if e.Value.hash == hash && e.Value.key == key {
			return e
		}
	}
	return nil
}

// Stats is a snapshot of the shape of a table.
type Stats struct {
	Size         int
	Used         int
	EmptyBuckets int
	MaxChain     int
	LoadFactor   float64
	Grows        uint64
	Shrinks      uint64
}

// SizeFor returns the smallest preset size that holds n elements without
// growing, or the next power of two above SizeHuge when no preset does.
func SizeFor(n int, maxLoadFactor float64) int {
	if maxLoadFactor <= 0 {
		maxLoadFactor = DefaultMaxLoadFactor
	}
	for _, size := range presetSizes {
		if float64(n)/float64(size) <= maxLoadFactor {
			return size
		}
	}
	size := SizeHuge
	for float64(n)/float64(size) > maxLoadFactor && size < MaxSize {
		size <<= 1
	}
	return size
}
