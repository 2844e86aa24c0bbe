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
package library

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/xeonx/timeago"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Summary returns a description of the warehouse in markdown
func (myLibrary *Library) Summary(ctx context.Context) (string, error) {
	p := message.NewPrinter(language.English)
	builder := strings.Builder{}

	if _, err := builder.WriteString("# TASI Financials\n"); err != nil {
		return "", err
	}

	if _, err := builder.WriteString("## Details\n\n"); err != nil {
		return "", err
	}

	if _, err := builder.WriteString(fmt.Sprintf("Database: %s\n\n", myLibrary.DBUrl)); err != nil {
		return "", err
	}

	numSectors, err := myLibrary.NumSectors(ctx)
	if err != nil {
		return "", err
	}

	if _, err := builder.WriteString(p.Sprintf("  * Sectors: %d\n", numSectors)); err != nil {
		return "", err
	}

	numCompanies, err := myLibrary.NumCompanies(ctx)
	if err != nil {
		return "", err
	}

	if _, err := builder.WriteString(p.Sprintf("  * Companies: %d\n", numCompanies)); err != nil {
		return "", err
	}

	numStatements, err := myLibrary.NumStatements(ctx)
	if err != nil {
		return "", err
	}

	if _, err := builder.WriteString(p.Sprintf("  * Statements: %d\n", numStatements)); err != nil {
		return "", err
	}

	numNormalized, err := myLibrary.NumNormalized(ctx)
	if err != nil {
		return "", err
	}

	if _, err := builder.WriteString(p.Sprintf("  * Unit-normalized: %d\n\n", numNormalized)); err != nil {
		return "", err
	}

	lastUpdated, err := myLibrary.LastUpdated(ctx)
	if err != nil {
		return "", err
	}

	age := timeago.English.Format(lastUpdated)

	if lastUpdated.Equal(time.Time{}) {
		if _, err := builder.WriteString("Last Updated: Never\n\n"); err != nil {
			return "", err
		}
	} else {
		if _, err := builder.WriteString(fmt.Sprintf("Last Updated: %s (%s)\n\n", age, lastUpdated.Local().Format("01/02/2006"))); err != nil {
			return "", err
		}
	}

	if _, err := builder.WriteString("## Reporting units\n\n"); err != nil {
		return "", err
	}

	unitCounts, err := myLibrary.UnitDistribution(ctx)
	if err != nil {
		return "", err
	}

	for _, unitCount := range unitCounts {
		if _, err := builder.WriteString(p.Sprintf("  * %s: %d tickers\n", unitCount.Unit, unitCount.Count)); err != nil {
			return "", err
		}
	}

	if _, err := builder.WriteString("\n## Recent runs\n\n"); err != nil {
		return "", err
	}

	runs, err := myLibrary.RecentRuns(ctx, 5)
	if err != nil {
		return "", err
	}

	for _, run := range runs {
		if _, err := builder.WriteString(p.Sprintf("  * %s %s: %d inserted, %d updated, %d skipped, %d failed [%s]\n",
			run.StartedAt.Format("01/02/2006"), run.SourceFile, run.Inserted, run.Updated,
			run.Skipped, run.Failed, run.ID.String()[:6])); err != nil {
			return "", err
		}
	}

	return builder.String(), nil
}
