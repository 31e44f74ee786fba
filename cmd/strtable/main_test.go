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
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matrixorigin/strtable/pkg/common/moerr"
	"github.com/matrixorigin/strtable/pkg/config"
)

func execute(t *testing.T, args ...string) (string, error) {
	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestHashCommand(t *testing.T) {
	out, err := execute(t, "hash", "--size", "32", "hello", "abc", "abc")
	require.NoError(t, err)
	assert.Contains(t, out, "417419622498")
	assert.Contains(t, out, "7416051667693574450")
	// duplicates are printed once
	assert.Equal(t, 1, strings.Count(out, `"abc"`))
	assert.Less(t, strings.Index(out, `"abc"`), strings.Index(out, `"hello"`))
}

func TestGenConfigThenLoad(t *testing.T) {
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "strtable.toml")
	_, err := execute(t, "gen-config", "--output", cfgFile)
	require.NoError(t, err)

	cfg, err := config.LoadFile(cfgFile)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	keysFile := filepath.Join(dir, "keys.txt")
	require.NoError(t, os.WriteFile(keysFile, []byte("a\nb\nc\na\n"), 0644))

	out, err := execute(t, "--config", cfgFile, "load", "--keys", keysFile, "--lookup", "a,z")
	require.NoError(t, err)
	assert.Contains(t, out, "loaded 4 lines, 3 distinct keys")
	assert.Contains(t, out, "max chain")
}

func TestBadLogLevel(t *testing.T) {
	cfgFile := filepath.Join(t.TempDir(), "strtable.toml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("[log]\nlevel = \"verbose\"\n"), 0644))

	var err error
	require.NotPanics(t, func() {
		_, err = execute(t, "--config", cfgFile, "hash", "abc")
	})
	require.True(t, errors.Is(err, config.ErrInvalidConfig))
}

func TestLoadMissingKeys(t *testing.T) {
	_, err := execute(t, "load", "--keys", filepath.Join(t.TempDir(), "missing.txt"))
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrFileNotFound))
}

func TestBenchCommand(t *testing.T) {
	out, err := execute(t, "bench", "--n", "2000")
	require.NoError(t, err)
	for _, op := range []string{"add", "search", "remove"} {
		assert.Contains(t, out, op)
	}

	_, err = execute(t, "bench", "--n", "0")
	require.True(t, moerr.IsMoErrCode(err, moerr.ErrInvalidArg))
}
