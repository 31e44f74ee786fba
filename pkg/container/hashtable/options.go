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
)

// Config is the file form of the table options.
type Config struct {
	// InitialSize is the bucket count of a new table, default SizeDefault.
	InitialSize int `toml:"initial-size"`
	// MaxLoadFactor triggers a grow when exceeded after an add, default 0.7.
	MaxLoadFactor float64 `toml:"max-load-factor"`
	// MinLoadFactor triggers a shrink when undercut after a remove,
	// default 0.25. A zero value is filled with the default, use
	// DisableShrink to turn automatic shrinking off.
	MinLoadFactor float64 `toml:"min-load-factor"`
	// DisableShrink sets MinLoadFactor to 0 so removes never shrink.
	DisableShrink bool `toml:"disable-shrink"`
	// FloorSize is the size automatic shrinks stop at. 0 means the
	// initial size of the table.
	FloorSize int `toml:"floor-size"`
	// Hash names the hash function, "sdbm" or "xxhash".
	Hash string `toml:"hash"`
}

func DefaultConfig() Config {
	c := Config{}
	c.Fill()
	return c
}

// Fill sets defaults for the zero fields.
func (c *Config) Fill() {
	if c.InitialSize == 0 {
		c.InitialSize = SizeDefault
	}
	if c.MaxLoadFactor == 0 {
		c.MaxLoadFactor = DefaultMaxLoadFactor
	}
	if c.DisableShrink {
		c.MinLoadFactor = 0
	} else if c.MinLoadFactor == 0 {
		c.MinLoadFactor = DefaultMinLoadFactor
	}
	if c.Hash == "" {
		c.Hash = HashSDBM
	}
}

func (c *Config) Validate() error {
	if c.InitialSize <= 0 {
		return moerr.NewBadConfigNoCtx("initial-size must be positive, got %d", c.InitialSize)
	}
	if c.InitialSize > MaxSize {
		return moerr.NewBadConfigNoCtx("initial-size %d exceeds %d", c.InitialSize, MaxSize)
	}
	if _, err := HashFuncByName(c.Hash); err != nil {
		return moerr.NewBadConfigNoCtx("unknown hash %q", c.Hash)
	}
	return validatePolicy(c.MaxLoadFactor, c.MinLoadFactor, c.FloorSize)
}

// validatePolicy requires max >= 2*min so halving an even size after a
// remove stays at or below the grow threshold. shrink checks odd sizes.
func validatePolicy(maxLoadFactor, minLoadFactor float64, floorSize int) error {
	if maxLoadFactor <= 0 {
		return moerr.NewBadConfigNoCtx("max-load-factor must be positive, got %v", maxLoadFactor)
	}
	if minLoadFactor < 0 {
		return moerr.NewBadConfigNoCtx("min-load-factor must not be negative, got %v", minLoadFactor)
	}
	if minLoadFactor*2 > maxLoadFactor {
		return moerr.NewBadConfigNoCtx("min-load-factor %v must be at most half of max-load-factor %v", minLoadFactor, maxLoadFactor)
	}
	if floorSize < 0 {
		return moerr.NewBadConfigNoCtx("floor-size must not be negative, got %d", floorSize)
	}
	return nil
}

type options struct {
	maxLoadFactor float64
	minLoadFactor float64
	floorSize     int
	hash          HashFunc
	hashName      string
}

func defaultOptions() options {
	return options{
		maxLoadFactor: DefaultMaxLoadFactor,
		minLoadFactor: DefaultMinLoadFactor,
		hash:          Hash,
	}
}

// Option customizes a table created by New.
type Option func(*options)

// WithLoadFactors sets the grow and shrink thresholds.
func WithLoadFactors(maxLoadFactor, minLoadFactor float64) Option {
	return func(o *options) {
		o.maxLoadFactor = maxLoadFactor
		o.minLoadFactor = minLoadFactor
	}
}

// WithFloorSize sets the size automatic shrinks stop at.
func WithFloorSize(n int) Option {
	return func(o *options) {
		o.floorSize = n
	}
}

// WithHashFunc replaces the SDBM hash.
func WithHashFunc(f HashFunc) Option {
	return func(o *options) {
		o.hash = f
		o.hashName = ""
	}
}

// WithConfig applies every policy field of cfg. InitialSize is not an
// option, pass it to New.
func WithConfig(cfg Config) Option {
	return func(o *options) {
		cfg.Fill()
		o.maxLoadFactor = cfg.MaxLoadFactor
		o.minLoadFactor = cfg.MinLoadFactor
		o.floorSize = cfg.FloorSize
		o.hashName = cfg.Hash
	}
}

func (o *options) resolve() error {
	if err := validatePolicy(o.maxLoadFactor, o.minLoadFactor, o.floorSize); err != nil {
		return err
	}
	if o.hashName != "" {
		f, err := HashFuncByName(o.hashName)
		if err != nil {
			return moerr.NewBadConfigNoCtx("unknown hash %q", o.hashName)
		}
		o.hash = f
	}
	if o.hash == nil {
		return moerr.NewBadConfigNoCtx("nil hash function")
	}
	return nil
}
