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
package validate

import (
	"fmt"
	"io"
	"strings"
	"time"

	json "github.com/goccy/go-json"
)

// Report collects the findings of a validation run, categorized by severity.
// The run is considered failed only when the Failed category is non-empty;
// warnings alone never fail a run.
type Report struct {
	RanAt    time.Time `json:"ran_at"`
	Passed   []string  `json:"passed"`
	Warnings []string  `json:"warnings"`
	Failed   []string  `json:"failed"`
}

func (report *Report) Pass(finding string) {
	report.Passed = append(report.Passed, finding)
}

func (report *Report) Warn(finding string) {
	report.Warnings = append(report.Warnings, finding)
}

func (report *Report) Fail(finding string) {
	report.Failed = append(report.Failed, finding)
}

// OK reports whether the run had no hard failures.
func (report *Report) OK() bool {
	return len(report.Failed) == 0
}

// WriteJSON emits the machine-readable report.
func (report *Report) WriteJSON(w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}

// Markdown renders the human-readable summary.
func (report *Report) Markdown() string {
	var sb strings.Builder

	sb.WriteString("# Validation Report\n\n")
	fmt.Fprintf(&sb, "Ran at %s\n\n", report.RanAt.Format(time.RFC3339))
	fmt.Fprintf(&sb, "| Passed | Warnings | Failed |\n|---|---|---|\n| %d | %d | %d |\n",
		len(report.Passed), len(report.Warnings), len(report.Failed))

	if len(report.Failed) > 0 {
		sb.WriteString("\n## Failed checks\n\n")
		for _, finding := range report.Failed {
			fmt.Fprintf(&sb, "- %s\n", finding)
		}
	}

	if len(report.Warnings) > 0 {
		sb.WriteString("\n## Warnings\n\n")
		for _, finding := range report.Warnings {
			fmt.Fprintf(&sb, "- %s\n", finding)
		}
	}

	if report.OK() {
		sb.WriteString("\n**All validations passed.**\n")
	} else {
		sb.WriteString("\n**Validation failed.**\n")
	}

	return sb.String()
}
