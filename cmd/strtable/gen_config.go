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
	"os"

	"github.com/spf13/cobra"

	"github.com/matrixorigin/strtable/pkg/config"
)

func genConfigCommand() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "gen-config",
		Short: "Write the default configuration as toml",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if output == "" {
				return cfg.Encode(cmd.OutOrStdout())
			}
			f, err := os.Create(output)
			if err != nil {
				return err
			}
			if err := cfg.Encode(f); err != nil {
				f.Close()
				return err
			}
			return f.Close()
		},
	}
	cmd.Flags().StringVar(&output, "output", "", "file to write, default stdout")
	return cmd
}
