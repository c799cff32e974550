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
	"errors"
	"math"
	"strconv"
	"strings"
)

// Table names, shared by every source format.
const (
	TableCustomers = "customers"
	TableProducts  = "products"
	TableOrders    = "orders"
	TableSales     = "sales"
)

// Column names as they appear in the source files.
const (
	ColCustomerID   = "Customer.ID"
	ColCountry      = "Country"
	ColCity         = "City"
	ColProductID    = "Product.ID"
	ColCategory     = "Category"
	ColSubCategory  = "Sub-Category"
	ColProductName  = "Product Name"
	ColOrderID      = "Order.ID"
	ColOrderDate    = "Order.Date"
	ColSales        = "Sales"
	ColProfit       = "Profit"
	ColShippingCost = "Shipping.Cost"
	ColShipMode     = "Ship.Mode"
)

// TableNames lists the tables in load order.
var TableNames = []string{TableCustomers, TableProducts, TableOrders, TableSales}

// Columns maps each table to its required columns, in canonical order.
var Columns = map[string][]string{
	TableCustomers: {ColCustomerID, ColCountry, ColCity},
	TableProducts:  {ColProductID, ColCategory, ColSubCategory, ColProductName},
	TableOrders:    {ColOrderID, ColCustomerID, ColOrderDate},
	TableSales:     {ColOrderID, ColProductID, ColSales, ColProfit, ColShippingCost, ColShipMode},
}

var (
	errEmptyValue = errors.New("empty value")
	errNotFinite  = errors.New("value is not a finite number")
)

// columnIndex maps a column name to its position in a source header.
type columnIndex map[string]int

// bindColumns checks that header contains every required column of table.
// Extra columns are ignored.
func bindColumns(table string, header []string) (columnIndex, error) {
	idx := make(columnIndex, len(header))
	for i, h := range header {
		// Excel and some CSV exporters prepend a BOM to the first cell
		h = strings.TrimPrefix(h, "\ufeff")
		idx[strings.TrimSpace(h)] = i
	}
	for _, col := range Columns[table] {
		if _, ok := idx[col]; !ok {
			return nil, &DataIntegrityError{Table: table, Column: col, Reason: "required column missing"}
		}
	}
	return idx, nil
}

// get returns the trimmed cell for col. Short rows yield "".
func (c columnIndex) get(row []string, col string) string {
	i := c[col]
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func parseAmount(s string) (float64, error) {
	if s == "" {
		return 0, errEmptyValue
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errNotFinite
	}
	return v, nil
}

// DecodeTable appends the typed rows of table to t. Row problems are
// recorded in t.Issues; only a header problem returns an error.
func DecodeTable(t *Tables, table string, header []string, rows [][]string) error {
	idx, err := bindColumns(table, header)
	if err != nil {
		return err
	}

	for n, row := range rows {
		if isBlank(row) {
			continue
		}
		switch table {
		case TableCustomers:
			t.Customers = append(t.Customers, Customer{
				ID:      idx.get(row, ColCustomerID),
				Country: idx.get(row, ColCountry),
				City:    idx.get(row, ColCity),
			})
		case TableProducts:
			t.Products = append(t.Products, Product{
				ID:          idx.get(row, ColProductID),
				Category:    idx.get(row, ColCategory),
				SubCategory: idx.get(row, ColSubCategory),
				Name:        idx.get(row, ColProductName),
			})
		case TableOrders:
			t.Orders = append(t.Orders, Order{
				ID:         idx.get(row, ColOrderID),
				CustomerID: idx.get(row, ColCustomerID),
				Date:       idx.get(row, ColOrderDate),
			})
		case TableSales:
			sale, err := decodeSale(idx, row, n+1)
			if err != nil {
				t.Issues = append(t.Issues, err)
				continue
			}
			t.Sales = append(t.Sales, sale)
		}
	}
	return nil
}

func decodeSale(idx columnIndex, row []string, rowNum int) (Sale, error) {
	sale := Sale{
		OrderID:   idx.get(row, ColOrderID),
		ProductID: idx.get(row, ColProductID),
		ShipMode:  idx.get(row, ColShipMode),
	}

	amounts := []struct {
		col string
		dst *float64
	}{
		{ColSales, &sale.Sales},
		{ColProfit, &sale.Profit},
		{ColShippingCost, &sale.ShippingCost},
	}
	for _, a := range amounts {
		raw := idx.get(row, a.col)
		v, err := parseAmount(raw)
		if err != nil {
			return Sale{}, &ParseError{Table: TableSales, Row: rowNum, Column: a.col, Value: raw, Err: err}
		}
		*a.dst = v
	}
	return sale, nil
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// encodeTable renders the rows of table in canonical column order. Writers
// for every format share it.
func encodeTable(t *Tables, table string) [][]string {
	var rows [][]string
	switch table {
	case TableCustomers:
		for _, c := range t.Customers {
			rows = append(rows, []string{c.ID, c.Country, c.City})
		}
	case TableProducts:
		for _, p := range t.Products {
			rows = append(rows, []string{p.ID, p.Category, p.SubCategory, p.Name})
		}
	case TableOrders:
		for _, o := range t.Orders {
			rows = append(rows, []string{o.ID, o.CustomerID, o.Date})
		}
	case TableSales:
		for _, s := range t.Sales {
			rows = append(rows, []string{
				s.OrderID,
				s.ProductID,
				formatAmount(s.Sales),
				formatAmount(s.Profit),
				formatAmount(s.ShippingCost),
				s.ShipMode,
			})
		}
	}
	return rows
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
