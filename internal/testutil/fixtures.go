//-------------------------------------------------------------------------
//
// pgEdge Sales Dashboard
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package testutil

import (
	"context"

	"github.com/pgEdge/pgedge-salesdash/internal/dataset"
)

// SampleTables returns a small dataset that exercises every join and
// normalization rule:
//
//   - product P1 appears twice; the second row must be discarded
//   - customer C4 has no orders and must not appear in the fact table
//   - order O4 references unknown customer C9
//   - order O5 has an unparseable date
//   - sale O3/P9 references an unknown product
//
// Joined, it yields four fact rows: O1/P1, O1/P2, O2/P3 and O3/P1, with
// total sales 400, total profit 25 and total shipping cost 40.
func SampleTables() *dataset.Tables {
	return &dataset.Tables{
		Customers: []dataset.Customer{
			{ID: "C1", Country: "United States", City: "New York"},
			{ID: "C2", Country: "United States", City: "Chicago"},
			{ID: "C3", Country: "Germany", City: "Berlin"},
			{ID: "C4", Country: "France", City: "Paris"},
		},
		Products: []dataset.Product{
			{ID: "P1", Category: "Technology", SubCategory: "Phones", Name: "Phone A"},
			{ID: "P2", Category: "Furniture", SubCategory: "Chairs", Name: "Chair B"},
			{ID: "P3", Category: "Office Supplies", SubCategory: "Paper", Name: "Paper C"},
			{ID: "P1", Category: "Furniture", SubCategory: "Tables", Name: "Duplicate Phone"},
			{ID: "P4", Category: "Technology", SubCategory: "Copiers", Name: "Copier D"},
		},
		Orders: []dataset.Order{
			{ID: "O1", CustomerID: "C1", Date: "2024-01-05"},
			{ID: "O2", CustomerID: "C2", Date: "2024-01-20"},
			{ID: "O3", CustomerID: "C3", Date: "2024-02-10"},
			{ID: "O4", CustomerID: "C9", Date: "2024-02-11"},
			{ID: "O5", CustomerID: "C1", Date: "not-a-date"},
		},
		Sales: []dataset.Sale{
			{OrderID: "O1", ProductID: "P1", Sales: 100, Profit: 20, ShippingCost: 10, ShipMode: "First Class"},
			{OrderID: "O1", ProductID: "P2", Sales: 50, Profit: 5, ShippingCost: 5, ShipMode: "Standard Class"},
			{OrderID: "O2", ProductID: "P3", Sales: 200, Profit: -10, ShippingCost: 20, ShipMode: "Standard Class"},
			{OrderID: "O3", ProductID: "P1", Sales: 50, Profit: 10, ShippingCost: 5, ShipMode: "Second Class"},
			{OrderID: "O3", ProductID: "P9", Sales: 70, Profit: 7, ShippingCost: 7, ShipMode: "Standard Class"},
			{OrderID: "O4", ProductID: "P1", Sales: 30, Profit: 3, ShippingCost: 3, ShipMode: "First Class"},
			{OrderID: "O5", ProductID: "P2", Sales: 10, Profit: 1, ShippingCost: 1, ShipMode: "Same Day"},
		},
	}
}

// StubLoader returns a fixed snapshot, or a fixed error.
type StubLoader struct {
	Tables *dataset.Tables
	Err    error
}

// Name returns "stub".
func (l *StubLoader) Name() string {
	return "stub"
}

// Load returns the configured snapshot.
func (l *StubLoader) Load(ctx context.Context) (*dataset.Tables, error) {
	if l.Err != nil {
		return nil, l.Err
	}
	return l.Tables, nil
}
