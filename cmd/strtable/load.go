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
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/matrixorigin/strtable/pkg/common/moerr"
	"github.com/matrixorigin/strtable/pkg/logutil"
	"github.com/matrixorigin/strtable/pkg/shard"
)

type loadArg struct {
	root     *rootArg
	keysFile string
	lookups  []string
}

func loadCommand(root *rootArg) *cobra.Command {
	arg := &loadArg{root: root}
	cmd := &cobra.Command{
		Use:   "load",
		Short: "Load keys into a sharded table set and report its shape",
		RunE: func(cmd *cobra.Command, args []string) error {
			return arg.run(cmd.Context(), cmd)
		},
	}
	cmd.Flags().StringVar(&arg.keysFile, "keys", "", "file with one key per line")
	cmd.Flags().StringSliceVar(&arg.lookups, "lookup", nil, "keys to search after loading")
	_ = cmd.MarkFlagRequired("keys")
	return cmd
}

// readKeys reads one key per line. The value of a key is its line number,
// so a repeated key keeps its last line.
func readKeys(path string) ([]shard.KV, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, moerr.NewFileNotFoundNoCtx(path)
		}
		return nil, err
	}
	defer f.Close()

	var kvs []shard.KV
	scanner := bufio.NewScanner(f)
	for line := 1; scanner.Scan(); line++ {
		kvs = append(kvs, shard.KV{Key: scanner.Text(), Value: line})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return kvs, nil
}

func (arg *loadArg) run(ctx context.Context, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
	kvs, err := readKeys(arg.keysFile)
	if err != nil {
		return err
	}
	cfg := arg.root.cfg
	set, err := shard.Build(ctx, cfg.Shard, cfg.HashTable, kvs, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err := set.Delete(); err != nil {
			logutil.Error("failed to delete shard set", zap.Error(err))
		}
	}()

	out := cmd.OutOrStdout()
	renderStats(out, set.Stats())
	fmt.Fprintf(out, "loaded %d lines, %d distinct keys\n", len(kvs), set.Len())

	if len(arg.lookups) > 0 {
		table := tablewriter.NewWriter(out)
		table.SetHeader([]string{"key", "found", "line"})
		for _, key := range arg.lookups {
			line := ""
			v, ok := set.Search(key)
			if ok {
				line = strconv.Itoa(v.(int))
			}
			table.Append([]string{strconv.Quote(key), strconv.FormatBool(ok), line})
		}
		table.Render()
	}
	return nil
}
