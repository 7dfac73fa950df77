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
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/consensys/go-testprog/pkg/engine"
	"github.com/consensys/go-testprog/pkg/util"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var generateCmd = &cobra.Command{
	Use:   "generate [flags] config_file",
	Short: "generate test programs for a memory subsystem.",
	Long: `Generate test programs covering the hazards between memory accesses, for
the scenarios given in a configuration file.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			fmt.Println(cmd.UsageString())
			os.Exit(1)
		}
		stats := util.NewPerfStats()
		cfg := readConfigFile(args[0])
		// Command-line flags override the configuration file
		if err := applyOverrides(cmd, cfg); err != nil {
			fmt.Println(err)
			os.Exit(2)
		} else if err := cfg.Validate(); err != nil {
			fmt.Printf("invalid configuration %s: %s\n", args[0], err)
			os.Exit(2)
		}
		// Generation stops cleanly on interrupt
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		//
		reports, err := Generate(ctx, cfg)
		//
		if err != nil {
			log.Errorf("generation failed: %s", err)
		}
		//
		for _, r := range reports {
			if r == nil {
				continue
			}
			//
			for _, d := range r.Diagnostics {
				log.Warnf("%s: %s", r.Name, d)
			}
		}
		//
		if err := printReports(os.Stdout, reports, term.IsTerminal(int(os.Stdout.Fd()))); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		//
		if output := GetString(cmd, "output"); output != "" {
			writeOutput(output, reports)
		}
		//
		stats.Log("Generate")
		//
		if err != nil {
			os.Exit(1)
		}
	},
}

// Write the generated program to a file, exiting on failure.
func writeOutput(filename string, reports []*engine.Report) {
	file, err := os.Create(filename)
	//
	if err == nil {
		err = writeProgram(file, reports)
		//
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}
	//
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(generateCmd)
	registerGenerateFlags(generateCmd)
}

// Register the flags of the generate command, which override the
// configuration file.
func registerGenerateFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("output", "o", "", "write the generated program to a file.")
	cmd.Flags().String("combinator", "product", "strategy used to combine the paths of accesses.")
	cmd.Flags().String("compositor", "catenation", "strategy used to merge the templates of scenarios.")
	cmd.Flags().Uint("max-candidates", 0, "maximum number of templates enumerated (0 for no bound).")
	cmd.Flags().UintP("parallel", "j", 1, "number of scenarios generated concurrently.")
	cmd.Flags().String("adapter", "memory", "adapter used to concretise sequences.")
	cmd.Flags().StringArrayP("define", "D", nil, "set an adapter option (key=value).")
}
