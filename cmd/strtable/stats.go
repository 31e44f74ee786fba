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

package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"golang.org/x/exp/slices"

	"github.com/matrixorigin/strtable/pkg/container/hashtable"
)

// renderStats writes one row per table followed by the median and longest
// chain over all of them.
func renderStats(w io.Writer, stats []hashtable.Stats) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"shard", "size", "used", "load", "empty", "max chain", "grows", "shrinks"})
	chains := make([]int, 0, len(stats))
	for i, st := range stats {
		chains = append(chains, st.MaxChain)
		table.Append([]string{
			strconv.Itoa(i),
			strconv.Itoa(st.Size),
			strconv.Itoa(st.Used),
			strconv.FormatFloat(st.LoadFactor, 'f', 3, 64),
			strconv.Itoa(st.EmptyBuckets),
			strconv.Itoa(st.MaxChain),
			strconv.FormatUint(st.Grows, 10),
			strconv.FormatUint(st.Shrinks, 10),
		})
	}
	table.Render()

	if len(chains) == 0 {
		return
	}
	slices.Sort(chains)
	fmt.Fprintf(w, "max chain: median %d, longest %d\n", chains[len(chains)/2], chains[len(chains)-1])
}
