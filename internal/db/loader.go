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
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/pgEdge/pgedge-salesdash/internal/dataset"
)

// PostgresLoader reads the four datasets from the salesdash schema.
type PostgresLoader struct {
	Pool *pgxpool.Pool
}

// NewPostgresLoader creates a loader backed by pool.
func NewPostgresLoader(pool *pgxpool.Pool) *PostgresLoader {
	return &PostgresLoader{Pool: pool}
}

// Name implements dataset.Loader.
func (l *PostgresLoader) Name() string {
	return "postgres:" + SchemaName
}

// Load implements dataset.Loader. The tables are queried concurrently and
// decoded in a fixed order so that Issues are deterministic.
func (l *PostgresLoader) Load(ctx context.Context) (*dataset.Tables, error) {
	raw := make([][][]string, len(dataset.TableNames))

	g, gctx := errgroup.WithContext(ctx)
	for i, table := range dataset.TableNames {
		g.Go(func() error {
			rows, err := l.readTable(gctx, table)
			if err != nil {
				return err
			}
			raw[i] = rows
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	t := &dataset.Tables{}
	for i, table := range dataset.TableNames {
		if err := dataset.DecodeTable(t, table, dataset.Columns[table], raw[i]); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// readTable returns every row of table as text, in insertion order. NULL
// becomes the empty string.
func (l *PostgresLoader) readTable(ctx context.Context, table string) ([][]string, error) {
	cols := dataset.Columns[table]
	exprs := make([]string, len(cols))
	for i, c := range cols {
		exprs[i] = fmt.Sprintf("coalesce(%s::text, '')", dataset.QuoteIdent(c))
	}
	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY %s",
		strings.Join(exprs, ", "), qualified(table), rowIDColumn)

	rows, err := l.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", table, err)
	}
	defer rows.Close()

	var out [][]string
	for rows.Next() {
		values := make([]string, len(cols))
		dest := make([]any, len(cols))
		for i := range values {
			dest[i] = &values[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", table, err)
		}
		out = append(out, values)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", table, err)
	}
	return out, nil
}
