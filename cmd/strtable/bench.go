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
	"io"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/matrixorigin/strtable/pkg/common/moerr"
	"github.com/matrixorigin/strtable/pkg/container/hashtable"
	"github.com/matrixorigin/strtable/pkg/logutil"
)

type benchArg struct {
	root *rootArg
	n    int
}

func benchCommand(root *rootArg) *cobra.Command {
	arg := &benchArg{root: root}
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Time adds, searches and removes of random keys on one table",
		RunE: func(cmd *cobra.Command, args []string) error {
			return arg.run(cmd.OutOrStdout())
		},
	}
	cmd.Flags().IntVar(&arg.n, "n", 100000, "number of keys")
	return cmd
}

type benchResult struct {
	op       string
	count    int
	duration time.Duration
}

func (arg *benchArg) run(out io.Writer) error {
	if arg.n <= 0 {
		return moerr.NewInvalidArgNoCtx("n", arg.n)
	}
	cfg := arg.root.cfg.HashTable
	ht, err := hashtable.New(cfg.InitialSize, nil, hashtable.WithConfig(cfg))
	if err != nil {
		return err
	}

	keys := make([]string, arg.n)
	for i := range keys {
		keys[i] = uuid.New().String()
	}

	var results []benchResult
	timed := func(op string, fn func(key string) error) error {
		start := time.Now()
		for _, key := range keys {
			if err := fn(key); err != nil {
				return err
			}
		}
		results = append(results, benchResult{op: op, count: len(keys), duration: time.Since(start)})
		return nil
	}

	if err := timed("add", func(key string) error {
		return ht.Add(key, struct{}{})
	}); err != nil {
		return err
	}
	loaded := ht.Stats()
	if err := timed("search", func(key string) error {
		if _, ok := ht.Search(key); !ok {
			return moerr.NewInternalErrorNoCtx("key %s lost", key)
		}
		return nil
	}); err != nil {
		return err
	}
	if err := timed("remove", func(key string) error {
		if !ht.Remove(key, nil) {
			return moerr.NewInternalErrorNoCtx("key %s lost", key)
		}
		return nil
	}); err != nil {
		return err
	}
	drained := ht.Stats()
	if err := ht.Delete(); err != nil {
		return err
	}

	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"op", "count", "duration", "ns/op"})
	for _, r := range results {
		table.Append([]string{
			r.op,
			strconv.Itoa(r.count),
			r.duration.String(),
			strconv.FormatInt(r.duration.Nanoseconds()/int64(r.count), 10),
		})
	}
	table.Render()
	renderStats(out, []hashtable.Stats{loaded, drained})

	logutil.Info("bench done",
		zap.Int("keys", arg.n),
		zap.Int("peak-size", loaded.Size),
		zap.Uint64("grows", drained.Grows),
		zap.Uint64("shrinks", drained.Shrinks))
	return nil
}
