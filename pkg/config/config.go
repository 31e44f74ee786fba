// Copyright 2021 - 2022 Matrix Origin
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

package config

import (
	"io"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/matrixorigin/strtable/pkg/common/moerr"
	"github.com/matrixorigin/strtable/pkg/container/hashtable"
	"github.com/matrixorigin/strtable/pkg/logutil"
	"github.com/matrixorigin/strtable/pkg/shard"
)

var (
	ErrInvalidConfig = moerr.NewBadConfigNoCtx("invalid strtable configuration")
)

// Config is the configuration file of the strtable tools.
type Config struct {
	HashTable hashtable.Config  `toml:"hashtable"`
	Log       logutil.LogConfig `toml:"log"`
	Shard     shard.Config      `toml:"shard"`
}

// LoadFile decodes the TOML file at path, fills the defaults and validates
// the result.
func LoadFile(path string) (Config, error) {
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, errors.Wrapf(err, "failed to decode %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, errors.Wrapf(ErrInvalidConfig, "unknown key %s in %s", undecoded[0], path)
	}
	cfg.Fill()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Default returns a filled configuration.
func Default() Config {
	var cfg Config
	cfg.Fill()
	return cfg
}

// Fill sets the defaults of every section.
func (c *Config) Fill() {
	c.HashTable.Fill()
	c.Shard.Fill()
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "console"
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.HashTable.Validate(); err != nil {
		return errors.Wrapf(ErrInvalidConfig, "hashtable: %v", err)
	}
	if err := c.Shard.Validate(); err != nil {
		return errors.Wrapf(ErrInvalidConfig, "shard: %v", err)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return errors.Wrapf(ErrInvalidConfig, "log: unsupported format %q", c.Log.Format)
	}
	lvl := zap.NewAtomicLevel()
	if err := lvl.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return errors.Wrapf(ErrInvalidConfig, "log: unsupported level %q", c.Log.Level)
	}
	if c.Log.StacktraceLevel != "" {
		stLvl := zap.NewAtomicLevel()
		if err := stLvl.UnmarshalText([]byte(c.Log.StacktraceLevel)); err != nil {
			return errors.Wrapf(ErrInvalidConfig, "log: unsupported stacktrace level %q", c.Log.StacktraceLevel)
		}
	}
	return nil
}

// Encode writes c as TOML.
func (c *Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}
