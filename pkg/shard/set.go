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

package shard

import (
	"context"
	"sync"
	"time"

	hll "github.com/axiomhq/hyperloglog"
	"github.com/cespare/xxhash/v2"
	"github.com/panjf2000/ants/v2"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/matrixorigin/strtable/pkg/common/moerr"
	"github.com/matrixorigin/strtable/pkg/container/hashtable"
	"github.com/matrixorigin/strtable/pkg/logutil"
	v2 "github.com/matrixorigin/strtable/pkg/util/metric/v2"
)

// checkEvery is how many adds a worker does between two ctx checks.
const checkEvery = 1024

// KV is one key/value pair to load.
type KV struct {
	Key   string
	Value any
}

// Set is a fixed number of hash tables, each holding the keys routed to
// it. A Set is read-only once built and may be searched concurrently.
type Set struct {
	tables []*hashtable.Table
}

// Build routes every pair of kvs to a shard and builds the shards on a
// worker pool. Pairs with the same key land in the same shard in input
// order, so the last value wins. On failure every table built so far is
// deleted and the errors of all shards are returned combined.
//
// Shards are built concurrently but calls to destroy are serialized, during
// Build and during Set.Delete, so destroy needs no locking of its own.
func Build(
	ctx context.Context,
	cfg Config,
	tableCfg hashtable.Config,
	kvs []KV,
	destroy hashtable.Destroyer,
) (*Set, error) {
	cfg.Fill()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	tableCfg.Fill()
	if err := tableCfg.Validate(); err != nil {
		return nil, err
	}

	destroy = serialize(destroy)
	parts := partition(kvs, cfg.Shards)
	pool, err := ants.NewPool(cfg.Workers)
	if err != nil {
		return nil, moerr.ConvertGoError(ctx, err)
	}
	defer pool.Release()

	start := time.Now()
	s := &Set{tables: make([]*hashtable.Table, cfg.Shards)}
	errs := make([]error, cfg.Shards)
	var wg sync.WaitGroup
	for i := range parts {
		if err := ctx.Err(); err != nil {
			errs[i] = err
			continue
		}
		i := i
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			s.tables[i], errs[i] = buildShard(ctx, cfg, tableCfg, parts[i], destroy)
		}); err != nil {
			wg.Done()
			errs[i] = err
		}
	}
	wg.Wait()

	if err := multierr.Combine(errs...); err != nil {
		err = multierr.Append(err, s.Delete())
		logutil.Error("shard set build failed",
			zap.Int("shards", cfg.Shards),
			zap.Int("keys", len(kvs)),
			zap.Error(err))
		return nil, err
	}
	logutil.Info("shard set built",
		zap.Int("shards", cfg.Shards),
		zap.Int("keys", len(kvs)),
		zap.Int("len", s.Len()),
		zap.Duration("duration", time.Since(start)))
	return s, nil
}

// serialize wraps destroy so that no two shards call it at the same time.
func serialize(destroy hashtable.Destroyer) hashtable.Destroyer {
	if destroy == nil {
		return nil
	}
	var mu sync.Mutex
	return hashtable.DestroyFunc(func(key string, data any, userData any) {
		mu.Lock()
		defer mu.Unlock()
		destroy.Destroy(key, data, userData)
	})
}

func partition(kvs []KV, shards int) [][]KV {
	parts := make([][]KV, shards)
	for _, kv := range kvs {
		i := xxhash.Sum64String(kv.Key) % uint64(shards)
		parts[i] = append(parts[i], kv)
	}
	return parts
}

// estimateSize sizes a shard for the number of distinct keys in kvs.
func estimateSize(kvs []KV, maxLoadFactor float64) int {
	sk := hll.New()
	for _, kv := range kvs {
		sk.Insert([]byte(kv.Key))
	}
	return hashtable.SizeFor(int(sk.Estimate()), maxLoadFactor)
}

func buildShard(
	ctx context.Context,
	cfg Config,
	tableCfg hashtable.Config,
	kvs []KV,
	destroy hashtable.Destroyer,
) (ht *hashtable.Table, err error) {
	start := time.Now()
	defer func() {
		if e := recover(); e != nil {
			err = moerr.ConvertPanicError(ctx, e)
			if ht != nil {
				err = multierr.Append(err, ht.Delete())
				ht = nil
			}
		}
	}()

	size := tableCfg.InitialSize
	if !cfg.DisableEstimate {
		size = estimateSize(kvs, tableCfg.MaxLoadFactor)
	}
	ht, err = hashtable.New(size, destroy, hashtable.WithConfig(tableCfg))
	if err != nil {
		return nil, err
	}
	for i, kv := range kvs {
		if i%checkEvery == 0 {
			if err = ctx.Err(); err != nil {
				return nil, multierr.Append(err, ht.Delete())
			}
		}
		if err = ht.Add(kv.Key, kv.Value); err != nil {
			return nil, multierr.Append(err, ht.Delete())
		}
	}
	v2.ShardBuildDurationHistogram.Observe(time.Since(start).Seconds())
	v2.ShardBuildKeysCounter.Add(float64(len(kvs)))
	logutil.Debug("shard built",
		zap.Int("keys", len(kvs)),
		zap.Int("size", ht.Size()),
		zap.Int("len", ht.Len()))
	return ht, nil
}

func (s *Set) shard(key string) *hashtable.Table {
	return s.tables[xxhash.Sum64String(key)%uint64(len(s.tables))]
}

// Search looks key up in the shard it is routed to.
func (s *Set) Search(key string) (any, bool) {
	ht := s.shard(key)
	if ht == nil {
		return nil, false
	}
	return ht.Search(key)
}

// Shards returns the number of tables in the set.
func (s *Set) Shards() int {
	return len(s.tables)
}

// Len returns the number of elements over all shards.
func (s *Set) Len() int {
	n := 0
	for _, ht := range s.tables {
		if ht != nil {
			n += ht.Len()
		}
	}
	return n
}

// Stats returns the stats of every shard, in shard order.
func (s *Set) Stats() []hashtable.Stats {
	stats := make([]hashtable.Stats, 0, len(s.tables))
	for _, ht := range s.tables {
		if ht != nil {
			stats = append(stats, ht.Stats())
		}
	}
	return stats
}

// Delete deletes every shard. The set is unusable afterwards.
func (s *Set) Delete() error {
	var err error
	for i, ht := range s.tables {
		if ht == nil {
			continue
		}
		err = multierr.Append(err, ht.Delete())
		s.tables[i] = nil
	}
	return err
}
