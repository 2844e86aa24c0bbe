// Copyright 2024
// SPDX-License-Identifier: Apache-2.0
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tadawul-vault/tasidata/library"
	"github.com/tadawul-vault/tasidata/validate"
)

var validateJSONFn string

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the loaded warehouse for missing values and anomalies",
	Long: `The validate sub-command runs data quality checks against the loaded
warehouse: null critical fields, duplicate filings, balance sheet equations
that do not balance, and statement values that look implausible. Hard
failures exit non-zero; anomalies are reported as warnings.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		myLibrary, err := library.NewFromDB(ctx, viper.GetString("db.url"))
		if err != nil {
			log.Fatal().Err(err).Msg("could not connect to library")
		}
		defer myLibrary.Close()

		report, err := validate.New(myLibrary.Pool).Run(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("validation could not complete")
		}

		if validateJSONFn != "" {
			fh, err := os.Create(validateJSONFn)
			if err != nil {
				log.Fatal().Err(err).Str("OutputFN", validateJSONFn).Msg("could not create report file")
			}
			if err := report.WriteJSON(fh); err != nil {
				fh.Close()
				log.Fatal().Err(err).Str("OutputFN", validateJSONFn).Msg("could not write report file")
			}
			fh.Close()
		}

		r, _ := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(80),
		)

		out, err := r.Render(report.Markdown())
		if err != nil {
			log.Fatal().Err(err).Msg("could not render validation report")
		}

		fmt.Print(out)

		if !report.OK() {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().StringVar(&validateJSONFn, "json", "", "also write the report to a JSON file")
}
