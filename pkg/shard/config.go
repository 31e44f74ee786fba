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
	"github.com/matrixorigin/strtable/pkg/common/moerr"
)

const (
	defaultShards  = 16
	defaultWorkers = 4
	maxShards      = 1024
)

// Config controls how a Set is built.
type Config struct {
	// Shards is the number of independent tables, default 16.
	Shards int `toml:"shards"`
	// Workers bounds the number of shards built at the same time, default 4.
	Workers int `toml:"workers"`
	// DisableEstimate sizes every shard with the table InitialSize instead
	// of a distinct key estimate.
	DisableEstimate bool `toml:"disable-estimate"`
}

func (c *Config) Fill() {
	if c.Shards == 0 {
		c.Shards = defaultShards
	}
	if c.Workers == 0 {
		c.Workers = defaultWorkers
	}
}

func (c *Config) Validate() error {
	if c.Shards <= 0 || c.Shards > maxShards {
		return moerr.NewBadConfigNoCtx("shards must be in [1, %d], got %d", maxShards, c.Shards)
	}
	if c.Workers <= 0 {
		return moerr.NewBadConfigNoCtx("workers must be positive, got %d", c.Workers)
	}
	return nil
}
