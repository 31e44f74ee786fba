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
	"strconv"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/lni/goutils/leaktest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matrixorigin/strtable/pkg/common/moerr"
	"github.com/matrixorigin/strtable/pkg/container/hashtable"
)

func uuidKVs(n int) []KV {
	kvs := make([]KV, n)
	for i := range kvs {
		kvs[i] = KV{Key: uuid.New().String(), Value: i}
	}
	return kvs
}

type countingDestroyer struct {
	sync.Mutex
	calls int
}

func (d *countingDestroyer) Destroy(key string, data any, userData any) {
	d.Lock()
	defer d.Unlock()
	d.calls++
}

func TestBuild(t *testing.T) {
	defer leaktest.AfterTest(t)()

	kvs := uuidKVs(5000)
	d := &countingDestroyer{}
	s, err := Build(context.Background(), Config{Shards: 8, Workers: 3}, hashtable.Config{}, kvs, d)
	require.NoError(t, err)

	assert.Equal(t, 8, s.Shards())
	assert.Equal(t, len(kvs), s.Len())
	for _, kv := range kvs {
		v, ok := s.Search(kv.Key)
		require.True(t, ok, kv.Key)
		require.Equal(t, kv.Value, v)
	}
	_, ok := s.Search("missing")
	assert.False(t, ok)

	stats := s.Stats()
	require.Len(t, stats, 8)
	used := 0
	for _, st := range stats {
		used += st.Used
		assert.LessOrEqual(t, st.LoadFactor, hashtable.DefaultMaxLoadFactor)
	}
	assert.Equal(t, len(kvs), used)

	require.NoError(t, s.Delete())
	assert.Equal(t, len(kvs), d.calls)
	assert.Equal(t, 0, s.Len())
	_, ok = s.Search(kvs[0].Key)
	assert.False(t, ok)
}

func TestBuildLastValueWins(t *testing.T) {
	defer leaktest.AfterTest(t)()

	kvs := []KV{{"a", 1}, {"b", 2}, {"a", 3}, {"c", 4}, {"a", 5}}
	d := &countingDestroyer{}
	s, err := Build(context.Background(), Config{Shards: 4, Workers: 2}, hashtable.Config{}, kvs, d)
	require.NoError(t, err)
	defer func() {
		require.NoError(t, s.Delete())
	}()

	assert.Equal(t, 3, s.Len())
	v, ok := s.Search("a")
	require.True(t, ok)
	assert.Equal(t, 5, v)
	// two replaced values of "a"
	assert.Equal(t, 2, d.calls)
}

func TestBuildSerializesDestroyer(t *testing.T) {
	defer leaktest.AfterTest(t)()

	keys := uuidKVs(5000)
	kvs := make([]KV, 0, 4*len(keys))
	for round := 0; round < 4; round++ {
		for i, kv := range keys {
			kvs = append(kvs, KV{Key: kv.Key, Value: round*len(keys) + i})
		}
	}

	// a plain counter, any concurrent call is a data race
	calls := 0
	destroy := hashtable.DestroyFunc(func(key string, data any, userData any) {
		calls++
	})
	s, err := Build(context.Background(), Config{Shards: 8, Workers: 8}, hashtable.Config{}, kvs, destroy)
	require.NoError(t, err)
	assert.Equal(t, len(keys), s.Len())
	assert.Equal(t, 3*len(keys), calls)

	v, ok := s.Search(keys[0].Key)
	require.True(t, ok)
	assert.Equal(t, 3*len(keys), v)

	require.NoError(t, s.Delete())
	assert.Equal(t, 4*len(keys), calls)
}

func TestBuildEstimatesSize(t *testing.T) {
	defer leaktest.AfterTest(t)()

	kvs := make([]KV, 0, 200)
	for i := 0; i < 100; i++ {
		kvs = append(kvs, KV{Key: strconv.Itoa(i)}, KV{Key: strconv.Itoa(i)})
	}
	tableCfg := hashtable.Config{InitialSize: hashtable.SizeMini}

	s, err := Build(context.Background(), Config{Shards: 1, Workers: 1}, tableCfg, kvs, nil)
	require.NoError(t, err)
	st := s.Stats()[0]
	assert.Equal(t, hashtable.SizeMedium, st.Size)
	assert.Equal(t, uint64(0), st.Grows)
	require.NoError(t, s.Delete())

	s, err = Build(context.Background(), Config{Shards: 1, Workers: 1, DisableEstimate: true}, tableCfg, kvs, nil)
	require.NoError(t, err)
	st = s.Stats()[0]
	assert.Equal(t, 100, st.Used)
	assert.Greater(t, st.Grows, uint64(0))
	require.NoError(t, s.Delete())
}

func TestBuildCanceled(t *testing.T) {
	defer leaktest.AfterTest(t)()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d := &countingDestroyer{}
	s, err := Build(ctx, Config{Shards: 4, Workers: 2}, hashtable.Config{}, uuidKVs(100), d)
	require.Nil(t, s)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, d.calls)
}

func TestBuildBadConfig(t *testing.T) {
	_, err := Build(context.Background(), Config{Shards: -1}, hashtable.Config{}, nil, nil)
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrBadConfig))

	_, err = Build(context.Background(), Config{}, hashtable.Config{Hash: "md5"}, nil, nil)
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrBadConfig))
}

func TestBuildDestroyerPanics(t *testing.T) {
	defer leaktest.AfterTest(t)()

	calls := 0
	destroy := hashtable.DestroyFunc(func(key string, data any, userData any) {
		calls++
		if calls == 1 {
			panic("boom")
		}
	})
	kvs := []KV{{"a", 1}, {"b", 2}, {"a", 3}}
	s, err := Build(context.Background(), Config{Shards: 1, Workers: 1}, hashtable.Config{}, kvs, destroy)
	require.Nil(t, s)
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrInternal))
	// the replaced "a" panicked, then the partial table was deleted
	assert.Equal(t, 3, calls)
}

func TestConfig(t *testing.T) {
	c := Config{}
	c.Fill()
	assert.Equal(t, defaultShards, c.Shards)
	assert.Equal(t, defaultWorkers, c.Workers)
	require.NoError(t, c.Validate())

	c.Shards = maxShards + 1
	require.Error(t, c.Validate())
	c.Shards = 1
	c.Workers = -1
	require.Error(t, c.Validate())
}
