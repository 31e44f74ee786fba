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
	"fmt"
	"testing"

	"github.com/smartystreets/goconvey/convey"
)

func TestScenarios(t *testing.T) {
	convey.Convey("add, search and remove on a mini table", t, func() {
		ht, err := New(SizeMini, nil)
		convey.So(err, convey.ShouldBeNil)

		convey.So(ht.Add("a", 1), convey.ShouldBeNil)
		convey.So(ht.Add("b", 2), convey.ShouldBeNil)

		v, ok := ht.Search("a")
		convey.So(ok, convey.ShouldBeTrue)
		convey.So(v, convey.ShouldEqual, 1)

		convey.So(ht.Remove("a", nil), convey.ShouldBeTrue)
		_, ok = ht.Search("a")
		convey.So(ok, convey.ShouldBeFalse)
		convey.So(ht.Len(), convey.ShouldEqual, 1)
	})

	convey.Convey("the 23rd add grows a mini table", t, func() {
		ht, err := New(SizeMini, nil)
		convey.So(err, convey.ShouldBeNil)

		for i := 0; i < 23; i++ {
			convey.So(ht.Add(fmt.Sprintf("key%02d", i), i), convey.ShouldBeNil)
			if i < 22 {
				convey.So(ht.Size(), convey.ShouldEqual, SizeMini)
			}
		}
		convey.So(ht.Size(), convey.ShouldBeGreaterThan, SizeMini)
		convey.So(ht.LoadFactor(), convey.ShouldBeLessThanOrEqualTo, DefaultMaxLoadFactor)

		for i := 0; i < 23; i++ {
			v, ok := ht.Search(fmt.Sprintf("key%02d", i))
			convey.So(ok, convey.ShouldBeTrue)
			convey.So(v, convey.ShouldEqual, i)
		}
	})

	convey.Convey("hashing the same key twice", t, func() {
		convey.So(Hash("abc"), convey.ShouldEqual, Hash("abc"))
		convey.So(Hash("abc"), convey.ShouldEqual, int64(417419622498))
	})
}
