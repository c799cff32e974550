//-------------------------------------------------------------------------
//
// pgEdge Sales Dashboard
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package dataset defines the raw sales tables and the loaders that read
// them from CSV directories, XLSX workbooks and SQLite files.
//
// A loader returns a Tables snapshot. The snapshot is never modified after
// it is returned; the pipeline in package facts derives everything else
// from it.
package dataset

import "context"

// Customer is a row of the customer dimension.
type Customer struct {
	ID      string
	Country string
	City    string
}

// Product is a row of the product dimension. ID is the nominal primary key
// but raw sources may repeat it.
type Product struct {
	ID          string
	Category    string
	SubCategory string
	Name        string
}

// Order is a row of the order table. Date holds the raw, unparsed text.
type Order struct {
	ID         string
	CustomerID string
	Date       string
}

// Sale is an order line item.
type Sale struct {
	OrderID      string
	ProductID    string
	Sales        float64
	Profit       float64
	ShippingCost float64
	ShipMode     string
}

// Tables is an immutable snapshot of the four raw tables.
type Tables struct {
	Customers []Customer
	Products  []Product
	Orders    []Order
	Sales     []Sale

	// Issues holds recoverable row problems found while decoding, such as
	// a non-numeric Sales cell. The offending rows are not in the slices.
	Issues []error
}

// Loader supplies the raw tables.
type Loader interface {
	// Name identifies the source in logs, e.g. "csv:./data".
	Name() string

	// Load reads all four tables.
	Load(ctx context.Context) (*Tables, error)
}

// Counts returns the row count per table name.
func (t *Tables) Counts() map[string]int {
	return map[string]int{
		TableCustomers: len(t.Customers),
		TableProducts:  len(t.Products),
		TableOrders:    len(t.Orders),
		TableSales:     len(t.Sales),
	}
}
