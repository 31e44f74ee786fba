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
	"github.com/cespare/xxhash/v2"

	"github.com/matrixorigin/strtable/pkg/common/moerr"
)

const (
	HashSDBM   = "sdbm"
	HashXXHash = "xxhash"
)

// HashFunc maps a key to a hash value. It must be pure: the same key
// bytes always give the same value.
type HashFunc func(key string) int64

// Hash computes the hash value of a key with the SDBM algorithm,
// see http://www.cse.yorku.ca/~oz/hash.html.
//
// Every byte of the key takes part, embedded NUL bytes included. The
// accumulator wraps on overflow, so the result may be negative.
func Hash(key string) int64 {
	var h int64
	for i := 0; i < len(key); i++ {
		h = int64(key[i]) + (h << 6) + (h << 16) - h
	}
	return h
}

// XXHash is an alternative HashFunc backed by xxhash64.
func XXHash(key string) int64 {
	return int64(xxhash.Sum64String(key))
}

// HashFuncByName returns the HashFunc registered under name. An empty name
// selects SDBM.
func HashFuncByName(name string) (HashFunc, error) {
	switch name {
	case "", HashSDBM:
		return Hash, nil
	case HashXXHash:
		return XXHash, nil
	default:
		return nil, moerr.NewInvalidArgNoCtx("hash", name)
	}
}

// bucketIndex reduces a hash value to [0, size). The raw value may be
// negative after wraparound.
func bucketIndex(h int64, size int) int {
	idx := h % int64(size)
	if idx < 0 {
		idx += int64(size)
	}
	return int(idx)
}

// BucketIndex returns the bucket a hash value falls into in a table of
// size buckets.
func BucketIndex(h int64, size int) int {
	return bucketIndex(h, size)
}
