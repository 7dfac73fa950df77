// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package cmd

import (
	"fmt"
	"os"

	"github.com/consensys/go-testprog/pkg/config"
	"github.com/spf13/cobra"
)

// GetFlag gets an expected flag, or panic if an error arises.
func GetFlag(cmd *cobra.Command, flag string) bool {
	r, err := cmd.Flags().GetBool(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetUint gets an expected unsigned integer, or panic if an error arises.
func GetUint(cmd *cobra.Command, flag string) uint {
	r, err := cmd.Flags().GetUint(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetUint64 gets an expected 64bit unsigned integer, or panic if an error
// arises.
func GetUint64(cmd *cobra.Command, flag string) uint64 {
	r, err := cmd.Flags().GetUint64(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetString gets an expected string, or panic if an error arises.
func GetString(cmd *cobra.Command, flag string) string {
	r, err := cmd.Flags().GetString(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// GetStringArray gets an expected string array, or panic if an error arises.
func GetStringArray(cmd *cobra.Command, flag string) []string {
	r, err := cmd.Flags().GetStringArray(flag)
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}

	return r
}

// Read a configuration file, exiting if it cannot be read or is malformed.
func readConfigFile(filename string) *config.Config {
	cfg, err := config.Load(filename)
	//
	if err != nil {
		fmt.Println(err)
		os.Exit(2)
	}
	//
	return cfg
}

// Apply any configuration overrides given on the command line.  Only flags
// which were explicitly set override the configuration file.
func applyOverrides(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	//
	if flags.Changed("seed") {
		cfg.Seed = GetUint64(cmd, "seed")
	}
	//
	if flags.Changed("combinator") {
		cfg.Combinator = GetString(cmd, "combinator")
	}
	//
	if flags.Changed("compositor") {
		cfg.Compositor = GetString(cmd, "compositor")
	}
	//
	if flags.Changed("max-candidates") {
		cfg.MaxCandidates = GetUint(cmd, "max-candidates")
	}
	//
	if flags.Changed("parallel") {
		cfg.Parallel = GetUint(cmd, "parallel")
	}
	//
	if flags.Changed("adapter") {
		cfg.Adapter = GetString(cmd, "adapter")
	}
	//
	if flags.Changed("define") {
		options, err := config.ParseOptions(GetStringArray(cmd, "define"))
		//
		if err != nil {
			return err
		}
		//
		cfg.Options = cfg.Options.Merge(options)
	}
	//
	return nil
}
