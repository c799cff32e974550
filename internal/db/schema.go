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

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pgEdge/pgedge-salesdash/internal/dataset"
)

// SchemaName is the PostgreSQL schema holding the four datasets.
const SchemaName = "salesdash"

// rowIDColumn preserves source row order, which decides first-occurrence
// deduplication.
const rowIDColumn = "row_id"

// CreateSchema creates the salesdash schema and its tables.
func CreateSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, createSchemaSQL())
	return err
}

// DropSchema drops the salesdash schema and everything in it.
func DropSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, fmt.Sprintf("DROP SCHEMA IF EXISTS %s CASCADE", SchemaName))
	return err
}

// SchemaExists checks whether the salesdash tables are present.
func SchemaExists(ctx context.Context, pool *pgxpool.Pool) (bool, error) {
	var n int
	err := pool.QueryRow(ctx, `
        SELECT count(*) FROM information_schema.tables
        WHERE table_schema = $1 AND table_name = ANY($2)
    `, SchemaName, dataset.TableNames).Scan(&n)
	return n == len(dataset.TableNames), err
}

// createSchemaSQL builds the DDL from the dataset column lists. Amounts
// are double precision; everything else is text, so malformed values
// reach the normalizer instead of failing the load.
func createSchemaSQL() string {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE SCHEMA IF NOT EXISTS %s;\n", SchemaName)
	for _, table := range dataset.TableNames {
		defs := []string{rowIDColumn + " BIGSERIAL PRIMARY KEY"}
		for _, col := range dataset.Columns[table] {
			typ := "TEXT"
			if dataset.IsAmountColumn(col) {
				typ = "DOUBLE PRECISION"
			}
			defs = append(defs, dataset.QuoteIdent(col)+" "+typ)
		}
		fmt.Fprintf(&b, "CREATE TABLE IF NOT EXISTS %s (\n    %s\n);\n",
			qualified(table), strings.Join(defs, ",\n    "))
	}
	return b.String()
}

func qualified(table string) string {
	return pgx.Identifier{SchemaName, table}.Sanitize()
}
