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
package data

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// RunSummary is one row of the load_runs table describing a single invocation
// of the load pipeline.
type RunSummary struct {
	ID         uuid.UUID
	SourceFile string
	StartedAt  time.Time
	FinishedAt time.Time

	Total      int
	Inserted   int
	Updated    int
	Skipped    int
	Failed     int
	Normalized int

	Status string
}

const runSaveSQL = `INSERT INTO load_runs (
	"id",
	"source_file",
	"started_at",
	"finished_at",
	"total",
	"inserted",
	"updated",
	"skipped",
	"failed",
	"normalized",
	"status"
) VALUES (
	$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11
) ON CONFLICT ON CONSTRAINT load_runs_pkey DO UPDATE SET
	finished_at = EXCLUDED.finished_at,
	total = EXCLUDED.total,
	inserted = EXCLUDED.inserted,
	updated = EXCLUDED.updated,
	skipped = EXCLUDED.skipped,
	failed = EXCLUDED.failed,
	normalized = EXCLUDED.normalized,
	status = EXCLUDED.status`

// SaveDB records the run in its own transaction; run bookkeeping must not
// ride on a batch transaction that may roll back.
func (run *RunSummary) SaveDB(ctx context.Context, pool *pgxpool.Pool) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}

	if _, err = tx.Exec(ctx, runSaveSQL,
		run.ID,
		run.SourceFile,
		run.StartedAt,
		run.FinishedAt,
		run.Total,
		run.Inserted,
		run.Updated,
		run.Skipped,
		run.Failed,
		run.Normalized,
		run.Status,
	); err != nil {
		log.Error().Err(err).Object("Run", run).Msg("save load run to DB failed")
		if err2 := tx.Rollback(ctx); err2 != nil {
			log.Error().Err(err2).Msg("error rolling back load run tx")
		}

		return err
	}

	return tx.Commit(ctx)
}

func (run *RunSummary) MarshalZerologObject(e *zerolog.Event) {
	e.Str("RunID", run.ID.String())
	e.Str("SourceFile", run.SourceFile)
	e.Int("Total", run.Total)
	e.Int("Inserted", run.Inserted)
	e.Int("Updated", run.Updated)
	e.Int("Skipped", run.Skipped)
	e.Int("Failed", run.Failed)
}
