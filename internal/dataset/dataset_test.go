//-------------------------------------------------------------------------
//
// pgEdge Sales Dashboard
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package dataset_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/pgEdge/pgedge-salesdash/internal/dataset"
	"github.com/pgEdge/pgedge-salesdash/internal/testutil"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
}

func writeSampleCSV(t *testing.T, dir string) {
	t.Helper()
	writeFile(t, dir, "customers.csv", "Customer.ID,Country,City,Segment\nC1,United States,New York,Consumer\nC2,Germany,Berlin,Corporate\n")
	writeFile(t, dir, "products.csv", "Product.ID,Category,Sub-Category,Product Name\nP1,Technology,Phones,\"Phone, Deluxe\"\n")
	writeFile(t, dir, "orders.csv", "Order.ID,Order.Date,Customer.ID\nO1,2024-01-05,C1\nO2,2024-02-01,C2\n")
	writeFile(t, dir, "sales.csv", "Order.ID,Product.ID,Sales,Quantity,Profit,Shipping.Cost,Ship.Mode\n"+
		"O1,P1,100.5,2,20,10.25,First Class\n"+
		"O2,P1,abc,1,5,1,Standard Class\n"+
		"\n"+
		"O2,P1,40,1,4,2,Standard Class\n")
}

func TestCSVLoader(t *testing.T) {
	dir := t.TempDir()
	writeSampleCSV(t, dir)

	loader := dataset.NewCSVLoader(dir)
	if !strings.HasPrefix(loader.Name(), "csv:") {
		t.Errorf("expected csv: prefix, got %q", loader.Name())
	}

	tables, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(tables.Customers) != 2 {
		t.Errorf("expected 2 customers, got %d", len(tables.Customers))
	}
	if got := tables.Products[0].Name; got != "Phone, Deluxe" {
		t.Errorf("expected quoted product name, got %q", got)
	}
	if got := tables.Orders[1]; got.ID != "O2" || got.CustomerID != "C2" || got.Date != "2024-02-01" {
		t.Errorf("columns bound by name incorrectly: %+v", got)
	}

	// The "abc" row is skipped and reported; the blank line is ignored.
	if len(tables.Sales) != 2 {
		t.Fatalf("expected 2 sales, got %d", len(tables.Sales))
	}
	if tables.Sales[0].ShippingCost != 10.25 {
		t.Errorf("expected shipping cost 10.25, got %v", tables.Sales[0].ShippingCost)
	}
	if len(tables.Issues) != 1 {
		t.Fatalf("expected 1 issue, got %d", len(tables.Issues))
	}
	var pe *dataset.ParseError
	if !errors.As(tables.Issues[0], &pe) {
		t.Fatalf("expected *ParseError, got %T", tables.Issues[0])
	}
	if pe.Table != dataset.TableSales || pe.Column != dataset.ColSales || pe.Row != 2 || pe.Value != "abc" {
		t.Errorf("unexpected parse error details: %+v", pe)
	}
	if dataset.CountParseErrors(tables.Issues) != 1 {
		t.Errorf("expected CountParseErrors 1, got %d", dataset.CountParseErrors(tables.Issues))
	}
}

func TestCSVLoaderMissingColumn(t *testing.T) {
	dir := t.TempDir()
	writeSampleCSV(t, dir)
	writeFile(t, dir, "products.csv", "Product.ID,Category,Product Name\nP1,Technology,Phone\n")

	_, err := dataset.NewCSVLoader(dir).Load(context.Background())
	if err == nil {
		t.Fatal("expected error for missing column, got nil")
	}
	var die *dataset.DataIntegrityError
	if !errors.As(err, &die) {
		t.Fatalf("expected *DataIntegrityError, got %T: %v", err, err)
	}
	if die.Table != dataset.TableProducts || die.Column != dataset.ColSubCategory {
		t.Errorf("expected products/Sub-Category, got %s/%s", die.Table, die.Column)
	}
	if !dataset.IsDataIntegrity(err) {
		t.Error("IsDataIntegrity should report true")
	}
}

func TestCSVLoaderMissingFile(t *testing.T) {
	dir := t.TempDir()
	writeSampleCSV(t, dir)
	if err := os.Remove(filepath.Join(dir, "orders.csv")); err != nil {
		t.Fatal(err)
	}

	_, err := dataset.NewCSVLoader(dir).Load(context.Background())
	if err == nil {
		t.Fatal("expected error for missing file, got nil")
	}
	if dataset.IsDataIntegrity(err) {
		t.Error("a missing file is an I/O error, not a data integrity error")
	}
}

func TestCSVLoaderHeaderWithBOM(t *testing.T) {
	dir := t.TempDir()
	writeSampleCSV(t, dir)
	writeFile(t, dir, "customers.csv", "\ufeffCustomer.ID,Country,City\nC1,United States,New York\n")

	tables, err := dataset.NewCSVLoader(dir).Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if tables.Customers[0].ID != "C1" {
		t.Errorf("expected C1, got %q", tables.Customers[0].ID)
	}
}

// assertTablesEqual compares the four tables of a written and reloaded snapshot.
func assertTablesEqual(t *testing.T, want, got *dataset.Tables) {
	t.Helper()
	if !reflect.DeepEqual(want.Customers, got.Customers) {
		t.Errorf("customers mismatch:\nexpected %+v\ngot      %+v", want.Customers, got.Customers)
	}
	if !reflect.DeepEqual(want.Products, got.Products) {
		t.Errorf("products mismatch:\nexpected %+v\ngot      %+v", want.Products, got.Products)
	}
	if !reflect.DeepEqual(want.Orders, got.Orders) {
		t.Errorf("orders mismatch:\nexpected %+v\ngot      %+v", want.Orders, got.Orders)
	}
	if !reflect.DeepEqual(want.Sales, got.Sales) {
		t.Errorf("sales mismatch:\nexpected %+v\ngot      %+v", want.Sales, got.Sales)
	}
	if len(got.Issues) != 0 {
		t.Errorf("expected no issues, got %v", got.Issues)
	}
}

func TestWriteCSVRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	want := testutil.SampleTables()

	if err := dataset.WriteCSV(dir, want); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}
	got, err := dataset.NewCSVLoader(dir).Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	assertTablesEqual(t, want, got)
}

func TestWriteXLSXRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sales.xlsx")
	want := testutil.SampleTables()

	if err := dataset.WriteXLSX(path, want); err != nil {
		t.Fatalf("WriteXLSX failed: %v", err)
	}
	got, err := dataset.NewXLSXLoader(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	assertTablesEqual(t, want, got)
}

func TestXLSXLoaderMissingSheet(t *testing.T) {
	_, err := dataset.NewXLSXLoader(filepath.Join(t.TempDir(), "missing.xlsx")).Load(context.Background())
	if err == nil {
		t.Fatal("expected error for missing workbook, got nil")
	}
}

func TestWriteSQLiteRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "sales.db")
	want := testutil.SampleTables()

	if err := dataset.WriteSQLite(ctx, path, want); err != nil {
		t.Fatalf("WriteSQLite failed: %v", err)
	}
	// Writing twice replaces the previous contents.
	if err := dataset.WriteSQLite(ctx, path, want); err != nil {
		t.Fatalf("second WriteSQLite failed: %v", err)
	}

	got, err := dataset.NewSQLiteLoader(path).Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	assertTablesEqual(t, want, got)
}

func TestTablesCounts(t *testing.T) {
	counts := testutil.SampleTables().Counts()
	expected := map[string]int{
		dataset.TableCustomers: 4,
		dataset.TableProducts:  5,
		dataset.TableOrders:    5,
		dataset.TableSales:     7,
	}
	if !reflect.DeepEqual(counts, expected) {
		t.Errorf("expected %v, got %v", expected, counts)
	}
}

func TestDecodeTableNonFiniteAmounts(t *testing.T) {
	header := []string{"Order.ID", "Product.ID", "Sales", "Profit", "Shipping.Cost", "Ship.Mode"}
	tests := []struct {
		name   string
		row    []string
		column string
	}{
		{"nan sales", []string{"O1", "P1", "NaN", "1", "1", "Standard Class"}, dataset.ColSales},
		{"inf profit", []string{"O1", "P1", "10", "Inf", "1", "Standard Class"}, dataset.ColProfit},
		{"signed inf cost", []string{"O1", "P1", "10", "1", "+Inf", "Standard Class"}, dataset.ColShippingCost},
		{"negative infinity", []string{"O1", "P1", "-infinity", "1", "1", "Standard Class"}, dataset.ColSales},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var tables dataset.Tables
			rows := [][]string{
				tt.row,
				{"O2", "P1", "5.5", "1.25", "0.5", "First Class"},
			}
			if err := dataset.DecodeTable(&tables, dataset.TableSales, header, rows); err != nil {
				t.Fatalf("DecodeTable failed: %v", err)
			}
			if len(tables.Sales) != 1 || tables.Sales[0].OrderID != "O2" {
				t.Fatalf("expected only O2 to be kept, got %+v", tables.Sales)
			}
			if len(tables.Issues) != 1 {
				t.Fatalf("expected 1 issue, got %d", len(tables.Issues))
			}
			var pe *dataset.ParseError
			if !errors.As(tables.Issues[0], &pe) {
				t.Fatalf("expected *ParseError, got %T", tables.Issues[0])
			}
			if pe.Column != tt.column || pe.Row != 1 {
				t.Errorf("expected %s at row 1, got %s at row %d", tt.column, pe.Column, pe.Row)
			}
		})
	}
}
