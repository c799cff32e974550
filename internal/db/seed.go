//-------------------------------------------------------------------------
//
// pgEdge Sales Dashboard
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pgEdge/pgedge-salesdash/internal/dataset"
	"github.com/pgEdge/pgedge-salesdash/internal/logging"
)

// Seed bulk loads t into the salesdash tables with COPY. The schema must
// exist. Tables are loaded in order customers, products, orders, sales.
func Seed(ctx context.Context, pool *pgxpool.Pool, t *dataset.Tables) error {
	for _, table := range dataset.TableNames {
		rows := dataset.Values(t, table)
		count, err := pool.CopyFrom(
			ctx,
			pgx.Identifier{SchemaName, table},
			dataset.Columns[table],
			pgx.CopyFromRows(rows),
		)
		if err != nil {
			return fmt.Errorf("failed to copy %s: %w", table, err)
		}
		if int(count) != len(rows) {
			return fmt.Errorf("expected to copy %d rows into %s, but copied %d", len(rows), table, count)
		}

		logging.TableRows(logging.Logger, table, count, "Table complete")
	}
	return nil
}
