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
	"runtime/debug"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Version is filled when building with make, but *not* when installing via "go
// install".
var Version string

// LogFormats lists the supported formats of log output.
var LogFormats = []string{"text", "json"}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "testprog",
	Short: "A generator of test programs for memory subsystems.",
	Long: `A generator of test programs which exercise the hazards between memory
accesses, as described by a model of the memory subsystem under test.`,
	PersistentPreRunE: configureLogging,
	Run: func(cmd *cobra.Command, args []string) {
		if GetFlag(cmd, "version") {
			fmt.Printf("testprog %s\n", version())
		} else {
			fmt.Println(cmd.UsageString())
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// Determine the version of this executable.
func version() string {
	if Version != "" {
		// Built via "make"
		return Version
	} else if info, ok := debug.ReadBuildInfo(); ok {
		// Built via "go install"
		return info.Main.Version
	}
	// Unknown, perhaps "go run"
	return "(unknown version)"
}

// Configure the level and format of logging, which is shared by all commands.
func configureLogging(cmd *cobra.Command, _ []string) error {
	if GetFlag(cmd, "verbose") {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}
	//
	switch format := GetString(cmd, "log-format"); format {
	case "text":
		log.SetFormatter(&log.TextFormatter{})
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	default:
		return fmt.Errorf("unknown log format \"%s\" (expected one of %v)", format, LogFormats)
	}
	//
	return nil
}

// Register the flags shared by all commands.  The seed applies to every
// command which draws randomness, overriding any configuration file.
func registerRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().BoolP("verbose", "v", false, "increase logging verbosity")
	cmd.PersistentFlags().String("log-format", "text", "format of log output (text or json).")
	cmd.PersistentFlags().Uint64("seed", 1, "seed of the random source.")
}

func init() {
	rootCmd.Flags().Bool("version", false, "Report version of this executable")
	registerRootFlags(rootCmd)
}
