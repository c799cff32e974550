//-------------------------------------------------------------------------
//
// pgEdge Sales Dashboard
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package datagen

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/pgEdge/pgedge-salesdash/internal/dataset"
	"github.com/pgEdge/pgedge-salesdash/internal/facts"
	"github.com/pgEdge/pgedge-salesdash/internal/logging"
)

func init() {
	logging.Disable()
}

func testOptions() Options {
	return Options{
		Customers:            40,
		Products:             30,
		Orders:               120,
		MaxLinesPerOrder:     3,
		DuplicateProductRate: 0.2,
		Start:                time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		End:                  time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC),
		Seed:                 42,
	}
}

func generate(t *testing.T, opts Options) *dataset.Tables {
	t.Helper()
	tables, err := NewGenerator(opts).Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	return tables
}

func TestGenerateSizes(t *testing.T) {
	opts := testOptions()
	tables := generate(t, opts)

	if len(tables.Customers) != opts.Customers {
		t.Errorf("expected %d customers, got %d", opts.Customers, len(tables.Customers))
	}
	if len(tables.Orders) != opts.Orders {
		t.Errorf("expected %d orders, got %d", opts.Orders, len(tables.Orders))
	}
	if len(tables.Products) < opts.Products {
		t.Errorf("expected at least %d products, got %d", opts.Products, len(tables.Products))
	}
	if len(tables.Sales) < opts.Orders || len(tables.Sales) > opts.Orders*opts.MaxLinesPerOrder {
		t.Errorf("sales count %d outside [%d, %d]", len(tables.Sales), opts.Orders, opts.Orders*opts.MaxLinesPerOrder)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a := generate(t, testOptions())
	b := generate(t, testOptions())
	if !reflect.DeepEqual(a, b) {
		t.Error("same seed produced different datasets")
	}

	opts := testOptions()
	opts.Seed = 43
	c := generate(t, opts)
	if reflect.DeepEqual(a.Sales, c.Sales) {
		t.Error("different seeds produced identical sales")
	}
}

func TestGenerateDuplicatesRemovedByDedup(t *testing.T) {
	opts := testOptions()
	opts.DuplicateProductRate = 1
	tables := generate(t, opts)

	if len(tables.Products) != 2*opts.Products {
		t.Fatalf("expected every product duplicated, got %d rows", len(tables.Products))
	}

	deduped, err := facts.DedupeProducts(tables.Products)
	if err != nil {
		t.Fatalf("DedupeProducts failed: %v", err)
	}
	if !reflect.DeepEqual(deduped, tables.Products[:opts.Products]) {
		t.Error("dedup should keep the original product rows")
	}
}

func TestGenerateBadDates(t *testing.T) {
	opts := testOptions()
	opts.BadDateRate = 1
	tables := generate(t, opts)

	_, errs := facts.ParseOrderDates(tables.Orders)
	if len(errs) != opts.Orders {
		t.Fatalf("expected %d parse errors, got %d", opts.Orders, len(errs))
	}
	var pe *dataset.ParseError
	if !errors.As(errs[0], &pe) || pe.Column != dataset.ColOrderDate {
		t.Errorf("expected ParseError on %s, got %v", dataset.ColOrderDate, errs[0])
	}
}

func TestGenerateJoinsCleanly(t *testing.T) {
	opts := testOptions()
	tables := generate(t, opts)

	res, err := facts.FromTables(tables, facts.Options{})
	if err != nil {
		t.Fatalf("FromTables failed: %v", err)
	}
	if len(res.Skipped) != 0 {
		t.Errorf("expected no skipped rows, got %d", len(res.Skipped))
	}
	if res.Table.Len() != len(tables.Sales) {
		t.Errorf("every sale should join: expected %d rows, got %d", len(tables.Sales), res.Table.Len())
	}

	minDate, maxDate, ok := res.Table.DateBounds()
	if !ok || minDate.Before(opts.Start) || maxDate.After(opts.End) {
		t.Errorf("dates %v..%v outside %v..%v", minDate, maxDate, opts.Start, opts.End)
	}

	for _, r := range res.Table.Rows() {
		if r.ShippingCost < 0 || r.Sales < 5 {
			t.Errorf("implausible row %+v", r)
			break
		}
	}
}

func TestGenerateInvalidOptions(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Options)
	}{
		{"no customers", func(o *Options) { o.Customers = 0 }},
		{"no lines", func(o *Options) { o.MaxLinesPerOrder = 0 }},
		{"end before start", func(o *Options) { o.End = o.Start.AddDate(0, 0, -1) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := testOptions()
			tt.modify(&opts)
			if _, err := NewGenerator(opts).Generate(context.Background()); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestGenerateCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewGenerator(testOptions()).Generate(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		bytes    int64
		expected string
	}{
		{512, "512 B"},
		{2048, "2.00 KB"},
		{5 * 1024 * 1024, "5.00 MB"},
		{3 * 1024 * 1024 * 1024, "3.00 GB"},
	}
	for _, tt := range tests {
		if got := FormatSize(tt.bytes); got != tt.expected {
			t.Errorf("FormatSize(%d): expected %q, got %q", tt.bytes, tt.expected, got)
		}
	}
}
