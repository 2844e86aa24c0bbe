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
package loader

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
	"github.com/tadawul-vault/tasidata/data"
)

const defaultBatchSize = 500

// PGWriter persists facts to Postgres. Records accumulate in one transaction
// that commits every BatchSize writes; each record runs inside a nested
// transaction (savepoint) so a constraint violation rolls back that record
// alone.
type PGWriter struct {
	Pool      *pgxpool.Pool
	BatchSize int

	tx      pgx.Tx
	pending int
}

func NewPGWriter(pool *pgxpool.Pool) *PGWriter {
	return &PGWriter{Pool: pool, BatchSize: defaultBatchSize}
}

func (writer *PGWriter) Write(ctx context.Context, statement *data.Statement, m *data.Metrics) (Outcome, error) {
	if writer.tx == nil {
		tx, err := writer.Pool.Begin(ctx)
		if err != nil {
			return Skipped, err
		}

		writer.tx = tx
	}

	sub, err := writer.tx.Begin(ctx)
	if err != nil {
		return Skipped, err
	}

	outcome, err := writer.write(ctx, sub, statement, m)
	if err != nil {
		if err2 := sub.Rollback(ctx); err2 != nil {
			log.Error().Err(err2).Msg("error rolling back record savepoint")
		}

		return Skipped, classify(err)
	}

	if err := sub.Commit(ctx); err != nil {
		return Skipped, err
	}

	writer.pending++
	if writer.pending >= writer.batchSize() {
		if err := writer.Flush(ctx); err != nil {
			return Skipped, err
		}
	}

	return outcome, nil
}

func (writer *PGWriter) write(ctx context.Context, tx pgx.Tx, statement *data.Statement, m *data.Metrics) (Outcome, error) {
	var (
		existingID  int64
		extractedAt *time.Time
	)

	err := tx.QueryRow(ctx,
		`SELECT id, extracted_at FROM financial_statements WHERE company_id=$1 AND period_id=$2`,
		statement.CompanyID, statement.PeriodID).Scan(&existingID, &extractedAt)

	switch {
	case errors.Is(err, pgx.ErrNoRows):
		if err := statement.Insert(ctx, tx); err != nil {
			return Skipped, err
		}

		m.StatementID = statement.ID
		if err := m.Save(ctx, tx); err != nil {
			return Skipped, err
		}

		return Inserted, nil
	case err != nil:
		return Skipped, err
	}

	if !Fresher(statement.ExtractedAt, extractedAt) {
		return Skipped, nil
	}

	statement.ID = existingID
	if err := statement.Update(ctx, tx); err != nil {
		return Skipped, err
	}

	// the metrics row must track the statement it was derived from
	m.StatementID = existingID
	if err := m.Save(ctx, tx); err != nil {
		return Skipped, err
	}

	return Updated, nil
}

func (writer *PGWriter) batchSize() int {
	if writer.BatchSize > 0 {
		return writer.BatchSize
	}

	return defaultBatchSize
}

// Flush commits the open batch transaction, if any.
func (writer *PGWriter) Flush(ctx context.Context) error {
	if writer.tx == nil {
		return nil
	}

	err := writer.tx.Commit(ctx)
	writer.tx = nil

	if err != nil {
		return err
	}

	log.Debug().Int("Records", writer.pending).Msg("committed batch")
	writer.pending = 0
	return nil
}

// Fresher reports whether an incoming extraction timestamp should replace
// the stored one. Only a strictly newer timestamp wins; a record with no
// timestamp can never prove freshness and is skipped as a duplicate.
func Fresher(incoming, stored *time.Time) bool {
	if incoming == nil {
		return false
	}

	return stored == nil || incoming.After(*stored)
}

// classify annotates constraint violations so failure counts can be read at
// a glance in run logs.
func classify(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgerrcode.UniqueViolation:
		return fmt.Errorf("duplicate fact: %w", err)
	case pgerrcode.ForeignKeyViolation:
		return fmt.Errorf("missing dimension row: %w", err)
	case pgerrcode.NotNullViolation:
		return fmt.Errorf("missing required column: %w", err)
	default:
		return err
	}
}
