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
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/pgEdge/pgedge-salesdash/internal/dataset"
	"github.com/pgEdge/pgedge-salesdash/internal/logging"
	"github.com/pgEdge/pgedge-salesdash/internal/testutil"
)

func init() {
	logging.Disable()
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDedupeProducts(t *testing.T) {
	in := []dataset.Product{
		{ID: "P2", Name: "first P2"},
		{ID: "P1", Name: "first P1"},
		{ID: "", Name: "no id"},
		{ID: "P2", Name: "second P2"},
		{ID: "P3", Name: "only P3"},
		{ID: "P1", Name: "second P1"},
	}

	got, err := DedupeProducts(in)
	if err != nil {
		t.Fatalf("DedupeProducts failed: %v", err)
	}

	expected := []dataset.Product{
		{ID: "P2", Name: "first P2"},
		{ID: "P1", Name: "first P1"},
		{ID: "P3", Name: "only P3"},
	}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("expected %+v, got %+v", expected, got)
	}

	// Idempotent: a second pass changes nothing.
	again, err := DedupeProducts(got)
	if err != nil {
		t.Fatalf("second DedupeProducts failed: %v", err)
	}
	if !reflect.DeepEqual(again, got) {
		t.Errorf("dedup is not idempotent: %+v vs %+v", again, got)
	}
}

func TestDedupeProductsEmptyTable(t *testing.T) {
	got, err := DedupeProducts(nil)
	if err != nil {
		t.Fatalf("expected no error for empty table, got %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no rows, got %d", len(got))
	}
}

func TestDedupeProductsAllIDsEmpty(t *testing.T) {
	_, err := DedupeProducts([]dataset.Product{{Name: "a"}, {Name: "b"}})
	var die *dataset.DataIntegrityError
	if !errors.As(err, &die) {
		t.Fatalf("expected *DataIntegrityError, got %v", err)
	}
	if die.Column != dataset.ColProductID {
		t.Errorf("expected column %q, got %q", dataset.ColProductID, die.Column)
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{"2024-01-05", date(2024, 1, 5), false},
		{" 2024-01-05 ", date(2024, 1, 5), false},
		{"2024-01-05 13:45:00", date(2024, 1, 5), false},
		{"2024-01-05T23:59:59Z", date(2024, 1, 5), false},
		{"2024-01-05T23:30:00-08:00", date(2024, 1, 5), false},
		{"2024/01/05", date(2024, 1, 5), false},
		{"1/5/2024", date(2024, 1, 5), false},
		{"01/05/2024", date(2024, 1, 5), false},
		{"15-03-2024", date(2024, 3, 15), false},
		{"31-02-2024", time.Time{}, true},
		{"2024-13-01", time.Time{}, true},
		{"yesterday", time.Time{}, true},
		{"", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got %v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestParseOrderDates(t *testing.T) {
	orders := []dataset.Order{
		{ID: "O1", CustomerID: "C1", Date: "2024-03-01"},
		{ID: "O2", CustomerID: "C2", Date: "31/31/2024"},
		{ID: "O3", CustomerID: "C3", Date: "2024-03-02"},
	}

	parsed, errs := ParseOrderDates(orders)
	if len(parsed) != 2 {
		t.Fatalf("expected 2 parsed orders, got %d", len(parsed))
	}
	if parsed[0].ID != "O1" || parsed[1].ID != "O3" {
		t.Errorf("expected O1 and O3 in order, got %s and %s", parsed[0].ID, parsed[1].ID)
	}
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d", len(errs))
	}
	var pe *dataset.ParseError
	if !errors.As(errs[0], &pe) {
		t.Fatalf("expected *ParseError, got %T", errs[0])
	}
	if pe.Row != 2 || pe.Value != "31/31/2024" || pe.Column != dataset.ColOrderDate {
		t.Errorf("unexpected error details: %+v", pe)
	}
}

func buildSample(t *testing.T) *Table {
	t.Helper()
	res, err := FromTables(testutil.SampleTables(), Options{})
	if err != nil {
		t.Fatalf("FromTables failed: %v", err)
	}
	return res.Table
}

func TestBuildFactTableSample(t *testing.T) {
	table := buildSample(t)

	expected := []struct {
		order, product, category, country string
		sales                             float64
	}{
		{"O1", "P1", "Technology", "United States", 100},
		{"O1", "P2", "Furniture", "United States", 50},
		{"O2", "P3", "Office Supplies", "United States", 200},
		{"O3", "P1", "Technology", "Germany", 50},
	}
	if table.Len() != len(expected) {
		t.Fatalf("expected %d rows, got %d", len(expected), table.Len())
	}
	for i, e := range expected {
		r := table.Row(i)
		if r.OrderID != e.order || r.ProductID != e.product || r.Category != e.category ||
			r.Country != e.country || r.Sales != e.sales {
			t.Errorf("row %d: expected %+v, got %+v", i, e, r)
		}
	}

	// The duplicate P1 row must not leak into the join.
	for _, r := range table.Rows() {
		if r.ProductName == "Duplicate Phone" {
			t.Error("duplicate product attributes leaked into the fact table")
		}
		if r.Country == "France" {
			t.Error("customer without orders appeared in the fact table")
		}
	}
}

func TestBuildFactTableCardinality(t *testing.T) {
	tables := testutil.SampleTables()
	// A repeated order and customer row must not multiply sales.
	tables.Orders = append(tables.Orders, dataset.Order{ID: "O1", CustomerID: "C2", Date: "2024-05-05"})
	tables.Customers = append(tables.Customers, dataset.Customer{ID: "C1", Country: "Spain", City: "Madrid"})

	res, err := FromTables(tables, Options{})
	if err != nil {
		t.Fatalf("FromTables failed: %v", err)
	}
	if res.Table.Len() > len(tables.Sales) {
		t.Errorf("fact table has %d rows, more than %d sales", res.Table.Len(), len(tables.Sales))
	}
	if res.Table.Len() != 4 {
		t.Errorf("expected 4 rows, got %d", res.Table.Len())
	}
	if got := res.Table.Row(0).Country; got != "United States" {
		t.Errorf("expected first customer row to win, got %q", got)
	}
}

func TestBuildFactTableEmptyInputs(t *testing.T) {
	full := testutil.SampleTables()
	orders, _ := ParseOrderDates(full.Orders)
	products, _ := DedupeProducts(full.Products)

	tests := []struct {
		name      string
		orders    []ParsedOrder
		sales     []dataset.Sale
		products  []dataset.Product
		customers []dataset.Customer
	}{
		{"no orders", nil, full.Sales, products, full.Customers},
		{"no sales", orders, nil, products, full.Customers},
		{"no products", orders, full.Sales, nil, full.Customers},
		{"no customers", orders, full.Sales, products, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := BuildFactTable(tt.orders, tt.sales, tt.products, tt.customers)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if table.Len() != 0 {
				t.Errorf("expected empty fact table, got %d rows", table.Len())
			}
		})
	}
}

func TestBuildFactTableEmptyKeyColumn(t *testing.T) {
	full := testutil.SampleTables()
	orders, _ := ParseOrderDates(full.Orders)
	products, _ := DedupeProducts(full.Products)

	sales := []dataset.Sale{{OrderID: "O1", Sales: 1}, {OrderID: "O2", Sales: 2}}
	_, err := BuildFactTable(orders, sales, products, full.Customers)

	var die *dataset.DataIntegrityError
	if !errors.As(err, &die) {
		t.Fatalf("expected *DataIntegrityError, got %v", err)
	}
	if die.Table != dataset.TableSales || die.Column != dataset.ColProductID {
		t.Errorf("expected sales/Product.ID, got %s/%s", die.Table, die.Column)
	}
}

func TestFromTablesReportsSkipped(t *testing.T) {
	tables := testutil.SampleTables()
	tables.Issues = []error{&dataset.ParseError{Table: dataset.TableSales, Row: 9, Column: dataset.ColSales, Value: "x"}}

	res, err := FromTables(tables, Options{})
	if err != nil {
		t.Fatalf("FromTables failed: %v", err)
	}
	// One decode issue plus the "not-a-date" order.
	if len(res.Skipped) != 2 {
		t.Errorf("expected 2 skipped rows, got %d", len(res.Skipped))
	}
	if dataset.CountParseErrors(res.Skipped) != 2 {
		t.Errorf("expected both skipped rows to be parse errors")
	}
	if res.DuplicateProducts != 1 {
		t.Errorf("expected 1 duplicate product, got %d", res.DuplicateProducts)
	}
}

func TestFromTablesMaxRows(t *testing.T) {
	_, err := FromTables(testutil.SampleTables(), Options{MaxRows: 3})
	if !dataset.IsDataIntegrity(err) {
		t.Fatalf("expected data integrity error for row limit, got %v", err)
	}

	if _, err := FromTables(testutil.SampleTables(), Options{MaxRows: 4}); err != nil {
		t.Errorf("limit equal to row count should pass, got %v", err)
	}
}

func TestBuild(t *testing.T) {
	ctx := context.Background()

	res, err := Build(ctx, &testutil.StubLoader{Tables: testutil.SampleTables()}, Options{})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if res.Source != "stub" {
		t.Errorf("expected source stub, got %q", res.Source)
	}
	if res.Table.Len() != 4 {
		t.Errorf("expected 4 rows, got %d", res.Table.Len())
	}

	loadErr := errors.New("disk on fire")
	_, err = Build(ctx, &testutil.StubLoader{Err: loadErr}, Options{})
	if !errors.Is(err, loadErr) {
		t.Errorf("expected wrapped load error, got %v", err)
	}
}

func TestTableAccessors(t *testing.T) {
	table := buildSample(t)

	minDate, maxDate, ok := table.DateBounds()
	if !ok {
		t.Fatal("expected date bounds for non-empty table")
	}
	if !minDate.Equal(date(2024, 1, 5)) || !maxDate.Equal(date(2024, 2, 10)) {
		t.Errorf("expected 2024-01-05..2024-02-10, got %v..%v", minDate, maxDate)
	}

	if got := table.Countries(); !reflect.DeepEqual(got, []string{"Germany", "United States"}) {
		t.Errorf("unexpected countries: %v", got)
	}
	if got := table.Categories(); !reflect.DeepEqual(got, []string{"Furniture", "Office Supplies", "Technology"}) {
		t.Errorf("unexpected categories: %v", got)
	}

	// Rows returns a copy.
	rows := table.Rows()
	rows[0].Sales = -1
	if table.Row(0).Sales == -1 {
		t.Error("Rows exposed the internal slice")
	}

	var empty *Table
	if empty.Len() != 0 {
		t.Error("nil table should have length 0")
	}
	if _, _, ok := NewTable(nil).DateBounds(); ok {
		t.Error("empty table should have no date bounds")
	}
}

func TestBuildLogsSourceWithSkippedRows(t *testing.T) {
	var buf bytes.Buffer
	logging.Init(logging.Config{Level: "info", Output: &buf})
	defer logging.Disable()

	res, err := Build(context.Background(), &testutil.StubLoader{Tables: testutil.SampleTables()}, Options{})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if len(res.Skipped) == 0 {
		t.Fatal("expected the sample to carry skipped rows")
	}

	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if strings.Contains(line, "Skipped malformed rows") && !strings.Contains(line, `"source":"stub"`) {
			t.Errorf("expected source field on skip warning, got %s", line)
		}
	}
	if !strings.Contains(buf.String(), "Skipped malformed rows") {
		t.Errorf("expected skip warning, got %q", buf.String())
	}
}

func TestBuildSkipsNonFiniteAmounts(t *testing.T) {
	ctx := context.Background()
	sample := testutil.SampleTables()
	dir := t.TempDir()
	if err := dataset.WriteCSV(dir, sample); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	base, err := Build(ctx, dataset.NewCSVLoader(dir), Options{})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	f, err := os.OpenFile(filepath.Join(dir, "sales.csv"), os.O_APPEND|os.O_WRONLY, 0)
	if err != nil {
		t.Fatal(err)
	}
	s := sample.Sales[0]
	_, err = fmt.Fprintf(f, "%s,%s,NaN,1,1,Standard Class\n%s,%s,10,+Inf,1,Standard Class\n",
		s.OrderID, s.ProductID, s.OrderID, s.ProductID)
	f.Close()
	if err != nil {
		t.Fatal(err)
	}

	res, err := Build(ctx, dataset.NewCSVLoader(dir), Options{})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if res.Table.Len() != base.Table.Len() {
		t.Errorf("expected %d rows, got %d", base.Table.Len(), res.Table.Len())
	}
	if len(res.Skipped) != len(base.Skipped)+2 {
		t.Errorf("expected %d skipped rows, got %d", len(base.Skipped)+2, len(res.Skipped))
	}
	for _, r := range res.Table.Rows() {
		if math.IsNaN(r.Sales) || math.IsInf(r.Profit, 0) {
			t.Errorf("non-finite amount reached the fact table: %+v", r)
		}
	}
}
