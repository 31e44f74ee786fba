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
	"github.com/matrixorigin/strtable/pkg/common/moerr"
	v2 "github.com/matrixorigin/strtable/pkg/util/metric/v2"
)

// newBuckets allocates a bucket array. It is a variable so tests can make
// allocations fail.
var newBuckets = func(n int) (buckets []bucket, err error) {
	if n > MaxSize {
		return nil, moerr.NewOOMNoCtx()
	}
	defer func() {
		// makeslice panics when the length cannot be satisfied
		if r := recover(); r != nil {
			buckets, err = nil, moerr.NewOOMNoCtx()
		}
	}()
	return make([]bucket, n), nil
}

func allocBuckets(n int) ([]bucket, error) {
	buckets, err := newBuckets(n)
	if err != nil {
		v2.HashTableAllocFailedCounter.Inc()
		return nil, err
	}
	return buckets, nil
}
