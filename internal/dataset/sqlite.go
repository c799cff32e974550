//-------------------------------------------------------------------------
//
// pgEdge Sales Dashboard
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

const driverSQLite = "sqlite"

// SQLiteLoader reads the four tables from a SQLite database file. Column
// names match the CSV headers and must be quoted in SQL.
type SQLiteLoader struct {
	Path string
}

// NewSQLiteLoader creates a loader for the given database file.
func NewSQLiteLoader(path string) *SQLiteLoader {
	return &SQLiteLoader{Path: path}
}

// Name returns the source description.
func (l *SQLiteLoader) Name() string {
	return "sqlite:" + l.Path
}

// Load reads all four tables in rowid order.
func (l *SQLiteLoader) Load(ctx context.Context) (*Tables, error) {
	db, err := sql.Open(driverSQLite, "file:"+l.Path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", l.Path, err)
	}
	defer db.Close()

	t := &Tables{}
	for _, table := range TableNames {
		header, err := sqliteColumns(ctx, db, table)
		if err != nil {
			return nil, err
		}
		if _, err := bindColumns(table, header); err != nil {
			return nil, err
		}

		rows, err := sqliteRows(ctx, db, table)
		if err != nil {
			return nil, err
		}
		if err := DecodeTable(t, table, Columns[table], rows); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func sqliteColumns(ctx context.Context, db *sql.DB, table string) ([]string, error) {
	rows, err := db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", QuoteIdent(table)))
	if err != nil {
		return nil, fmt.Errorf("failed to inspect table %s: %w", table, err)
	}
	defer rows.Close()

	var columns []string
	for rows.Next() {
		var (
			cid       int
			name      string
			colType   string
			notNull   int
			dfltValue sql.NullString
			pk        int
		)
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dfltValue, &pk); err != nil {
			return nil, err
		}
		columns = append(columns, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("table %s does not exist", table)
	}
	return columns, nil
}

func sqliteRows(ctx context.Context, db *sql.DB, table string) ([][]string, error) {
	cols := Columns[table]
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = QuoteIdent(c)
	}

	query := fmt.Sprintf("SELECT %s FROM %s ORDER BY rowid", strings.Join(quoted, ", "), QuoteIdent(table))
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", table, err)
	}
	defer rows.Close()

	var out [][]string
	for rows.Next() {
		vals := make([]sql.NullString, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", table, err)
		}
		row := make([]string, len(cols))
		for i, v := range vals {
			row[i] = v.String
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// WriteSQLite creates the four tables in a new or existing SQLite file,
// replacing any previous contents.
func WriteSQLite(ctx context.Context, path string, t *Tables) error {
	db, err := sql.Open(driverSQLite, path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range TableNames {
		if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+QuoteIdent(table)); err != nil {
			return fmt.Errorf("failed to drop %s: %w", table, err)
		}
		if _, err := tx.ExecContext(ctx, sqliteCreateTable(table)); err != nil {
			return fmt.Errorf("failed to create %s: %w", table, err)
		}

		cols := Columns[table]
		quoted := make([]string, len(cols))
		marks := make([]string, len(cols))
		for i, c := range cols {
			quoted[i] = QuoteIdent(c)
			marks[i] = "?"
		}
		stmt, err := tx.PrepareContext(ctx, fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
			QuoteIdent(table), strings.Join(quoted, ", "), strings.Join(marks, ", ")))
		if err != nil {
			return fmt.Errorf("failed to prepare insert into %s: %w", table, err)
		}

		for _, row := range Values(t, table) {
			if _, err := stmt.ExecContext(ctx, row...); err != nil {
				stmt.Close()
				return fmt.Errorf("failed to insert into %s: %w", table, err)
			}
		}
		stmt.Close()
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

func sqliteCreateTable(table string) string {
	cols := Columns[table]
	defs := make([]string, len(cols))
	for i, c := range cols {
		typ := "TEXT"
		if IsAmountColumn(c) {
			typ = "REAL"
		}
		defs[i] = QuoteIdent(c) + " " + typ
	}
	return fmt.Sprintf("CREATE TABLE %s (%s)", QuoteIdent(table), strings.Join(defs, ", "))
}

// Values returns the rows of table as driver arguments in Columns order.
// Amounts stay float64.
func Values(t *Tables, table string) [][]any {
	if table == TableSales {
		out := make([][]any, len(t.Sales))
		for i, s := range t.Sales {
			out[i] = []any{s.OrderID, s.ProductID, s.Sales, s.Profit, s.ShippingCost, s.ShipMode}
		}
		return out
	}
	rows := encodeTable(t, table)
	out := make([][]any, len(rows))
	for i, row := range rows {
		args := make([]any, len(row))
		for j, v := range row {
			args[j] = v
		}
		out[i] = args
	}
	return out
}

// IsAmountColumn reports whether col holds a numeric amount.
func IsAmountColumn(col string) bool {
	return col == ColSales || col == ColProfit || col == ColShippingCost
}

// QuoteIdent quotes an SQL identifier. Column names such as "Order.ID"
// contain dots and must always be quoted.
func QuoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
