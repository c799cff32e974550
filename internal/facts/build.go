//-------------------------------------------------------------------------
//
// pgEdge Sales Dashboard
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package facts

import (
	"context"
	"fmt"

	"github.com/pgEdge/pgedge-salesdash/internal/dataset"
	"github.com/pgEdge/pgedge-salesdash/internal/logging"
	"github.com/rs/zerolog"
)

// Options controls fact table construction.
type Options struct {
	// MaxRows aborts construction when the fact table would exceed this
	// many rows. Zero means no limit.
	MaxRows int
}

// Result is the outcome of building the fact table from a source.
type Result struct {
	// Table is the immutable fact table.
	Table *Table

	// Source names the loader the tables came from.
	Source string

	// Skipped holds the recoverable row errors: undecodable sale amounts
	// and unparseable order dates. Those rows are not in Table.
	Skipped []error

	// DuplicateProducts is the number of product rows discarded by dedup.
	DuplicateProducts int
}

// Build loads the raw tables from loader, normalizes them and joins them
// into the fact table. Any error returned is fatal.
func Build(ctx context.Context, loader dataset.Loader, opts Options) (*Result, error) {
	log := logging.Source(loader.Name())
	log.Info().Msg("Loading datasets")

	tables, err := loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load datasets: %w", err)
	}

	res, err := fromTables(log, tables, opts)
	if err != nil {
		return nil, err
	}
	res.Source = loader.Name()
	return res, nil
}

// FromTables normalizes and joins an already loaded snapshot.
func FromTables(tables *dataset.Tables, opts Options) (*Result, error) {
	return fromTables(logging.Logger, tables, opts)
}

func fromTables(log zerolog.Logger, tables *dataset.Tables, opts Options) (*Result, error) {
	counts := tables.Counts()
	log.Debug().
		Int("customers", counts[dataset.TableCustomers]).
		Int("products", counts[dataset.TableProducts]).
		Int("orders", counts[dataset.TableOrders]).
		Int("sales", counts[dataset.TableSales]).
		Msg("Loaded raw tables")

	products, err := DedupeProducts(tables.Products)
	if err != nil {
		return nil, err
	}

	orders, dateErrs := ParseOrderDates(tables.Orders)

	table, err := BuildFactTable(orders, tables.Sales, products, tables.Customers)
	if err != nil {
		return nil, err
	}
	if opts.MaxRows > 0 && table.Len() > opts.MaxRows {
		return nil, &dataset.DataIntegrityError{
			Table:  "facts",
			Reason: fmt.Sprintf("%d rows exceed the configured limit of %d", table.Len(), opts.MaxRows),
		}
	}

	skipped := make([]error, 0, len(tables.Issues)+len(dateErrs))
	skipped = append(skipped, tables.Issues...)
	skipped = append(skipped, dateErrs...)

	res := &Result{
		Table:             table,
		Skipped:           skipped,
		DuplicateProducts: len(tables.Products) - len(products),
	}

	logging.SkippedRows(log, skipped)

	log.Info().
		Int(logging.FieldRows, table.Len()).
		Int("duplicate_products", res.DuplicateProducts).
		Int(logging.FieldSkipped, len(skipped)).
		Msg("Built fact table")

	return res, nil
}
