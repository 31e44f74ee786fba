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
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slices"

	"github.com/matrixorigin/strtable/pkg/container/hashtable"
)

type hashArg struct {
	root *rootArg
	size int
}

func hashCommand(root *rootArg) *cobra.Command {
	arg := &hashArg{root: root}
	cmd := &cobra.Command{
		Use:   "hash <key>...",
		Short: "Print the hash and bucket of keys",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return arg.run(cmd, args)
		},
	}
	cmd.Flags().IntVar(&arg.size, "size", 0, "bucket count, default the configured initial size")
	return cmd
}

func (arg *hashArg) run(cmd *cobra.Command, keys []string) error {
	cfg := arg.root.cfg.HashTable
	hash, err := hashtable.HashFuncByName(cfg.Hash)
	if err != nil {
		return err
	}
	size := arg.size
	if size <= 0 {
		size = cfg.InitialSize
	}

	keys = slices.Clone(keys)
	slices.Sort(keys)
	keys = slices.Compact(keys)

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"key", cfg.Hash, "bucket"})
	for _, key := range keys {
		h := hash(key)
		table.Append([]string{
			strconv.Quote(key),
			strconv.FormatInt(h, 10),
			strconv.Itoa(hashtable.BucketIndex(h, size)),
		})
	}
	table.Render()
	return nil
}
