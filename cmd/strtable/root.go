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
	"github.com/spf13/cobra"

	"github.com/matrixorigin/strtable/pkg/config"
	"github.com/matrixorigin/strtable/pkg/logutil"
)

type rootArg struct {
	configFile string
	cfg        config.Config
}

// load reads the configuration file given by --config, or the defaults
// when there is none, and sets up the logger from it.
func (arg *rootArg) load() (err error) {
	if arg.configFile == "" {
		arg.cfg = config.Default()
	} else if arg.cfg, err = config.LoadFile(arg.configFile); err != nil {
		return err
	}
	logutil.SetupMOLogger(&arg.cfg.Log)
	return nil
}

func newRootCommand() *cobra.Command {
	arg := &rootArg{}
	cmd := &cobra.Command{
		Use:           "strtable",
		Short:         "String keyed hash table tools",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return arg.load()
		},
	}
	cmd.PersistentFlags().StringVar(&arg.configFile, "config", "", "toml configuration file")

	cmd.AddCommand(
		hashCommand(arg),
		loadCommand(arg),
		benchCommand(arg),
		genConfigCommand(),
	)
	return cmd
}
