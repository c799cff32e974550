//-------------------------------------------------------------------------
//
// pgEdge Sales Dashboard
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package facts normalizes the raw sales tables and joins them into the
// fact table that every dashboard view is filtered from.
package facts

import (
	"sort"
	"time"
)

// Row is one realized sale: an order line item joined with its order,
// product and customer.
type Row struct {
	OrderID    string
	CustomerID string
	OrderDate  time.Time

	ProductID   string
	Category    string
	SubCategory string
	ProductName string

	Sales        float64
	Profit       float64
	ShippingCost float64
	ShipMode     string

	Country string
	City    string
}

// Table is the immutable fact table. It is safe for concurrent readers.
type Table struct {
	rows []Row
}

// NewTable builds a table from rows. The slice is copied.
func NewTable(rows []Row) *Table {
	cp := make([]Row, len(rows))
	copy(cp, rows)
	return &Table{rows: cp}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rows)
}

// Row returns a copy of row i.
func (t *Table) Row(i int) Row {
	return t.rows[i]
}

// Rows returns a copy of all rows.
func (t *Table) Rows() []Row {
	cp := make([]Row, len(t.rows))
	copy(cp, t.rows)
	return cp
}

// DateBounds returns the earliest and latest order date. ok is false for
// an empty table.
func (t *Table) DateBounds() (minDate, maxDate time.Time, ok bool) {
	if t.Len() == 0 {
		return time.Time{}, time.Time{}, false
	}
	minDate, maxDate = t.rows[0].OrderDate, t.rows[0].OrderDate
	for _, r := range t.rows[1:] {
		if r.OrderDate.Before(minDate) {
			minDate = r.OrderDate
		}
		if r.OrderDate.After(maxDate) {
			maxDate = r.OrderDate
		}
	}
	return minDate, maxDate, true
}

// Countries returns the distinct countries, sorted.
func (t *Table) Countries() []string {
	return t.distinct(func(r *Row) string { return r.Country })
}

// Categories returns the distinct product categories, sorted.
func (t *Table) Categories() []string {
	return t.distinct(func(r *Row) string { return r.Category })
}

func (t *Table) distinct(field func(*Row) string) []string {
	seen := make(map[string]bool)
	var out []string
	for i := 0; i < t.Len(); i++ {
		v := field(&t.rows[i])
		if v != "" && !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	sort.Strings(out)
	return out
}
