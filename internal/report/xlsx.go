//-------------------------------------------------------------------------
//
// pgEdge Sales Dashboard
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/pgEdge/pgedge-salesdash/internal/engine"
)

// Workbook sheet names.
const (
	SheetSummary    = "Summary"
	SheetMonthly    = "Monthly"
	SheetCategories = "Categories"
	SheetSubCats    = "Sub-Categories"
	SheetProducts   = "Top Products"
	SheetShipModes  = "Ship Modes"
	SheetCountries  = "Countries"
	SheetCities     = "Cities"
)

// Custom number formats.
const (
	numFmtCurrency = "$#,##0"
	numFmtPercent  = "0.0%"
)

func init() {
	Register(&xlsxRenderer{})
}

type xlsxRenderer struct{}

func (xlsxRenderer) Name() string        { return "xlsx" }
func (xlsxRenderer) Description() string { return "Excel workbook, one sheet per aggregate (needs --output)" }
func (xlsxRenderer) Binary() bool        { return true }

func (xlsxRenderer) Render(w io.Writer, rep *Report) error {
	f := excelize.NewFile()
	defer f.Close()

	s, err := newSheetWriter(f)
	if err != nil {
		return err
	}

	b := rep.Dashboard

	summary := [][]interface{}{
		{"Source", rep.Source},
		{"From", b.Filters.From},
		{"To", b.Filters.To},
		{"Countries", listOrAll(b.Filters.Countries)},
		{"Categories", listOrAll(b.Filters.Categories)},
		{"Rows", b.RowCount},
		{"Skipped Rows", rep.SkippedRows},
		{"Duplicate Products", rep.DuplicateProducts},
		{"Total Sales", b.Summary.TotalSales},
		{"Total Profit", b.Summary.TotalProfit},
		{"Total Shipping Cost", b.Summary.TotalShippingCost},
		{"Avg Shipping Cost", b.Summary.AvgShippingCost},
		{"Profit Margin", b.Summary.ProfitMargin / 100},
	}
	if err := s.table(SheetSummary, []string{"Metric", "Value"}, summary); err != nil {
		return err
	}
	if err := s.format(SheetSummary, "B10", "B13", s.currency); err != nil {
		return err
	}
	if err := s.format(SheetSummary, "B14", "B14", s.percent); err != nil {
		return err
	}

	monthly := make([][]interface{}, len(b.SalesByMonth))
	for i, kv := range b.SalesByMonth {
		monthly[i] = []interface{}{kv.Key, kv.Value, b.ProfitByMonth[i].Value, b.ShippingCostByMonth[i].Value}
	}
	if err := s.table(SheetMonthly, []string{"Month", "Sales", "Profit", "Shipping Cost"}, monthly); err != nil {
		return err
	}
	if err := s.formatColumns(SheetMonthly, "B", "D", len(monthly), s.currency); err != nil {
		return err
	}
	if len(monthly) > 0 {
		if err := addMonthlyChart(f, len(monthly)); err != nil {
			return err
		}
	}

	if err := s.keyValues(SheetCategories, "Category", "Share", b.CategoryShare, s.percent); err != nil {
		return err
	}
	if err := s.keyValues(SheetSubCats, "Sub-Category", "Share", b.SubCategoryShare, s.percent); err != nil {
		return err
	}
	if err := s.keyValues(SheetProducts, "Product", "Sales", b.TopChartProducts, s.currency); err != nil {
		return err
	}

	modes := make([][]interface{}, len(b.ShipModeComparison))
	for i, m := range b.ShipModeComparison {
		modes[i] = []interface{}{m.Mode, m.OrderShare, m.CostShare}
	}
	if err := s.table(SheetShipModes, []string{"Mode", "Order Share", "Cost Share"}, modes); err != nil {
		return err
	}
	if err := s.formatColumns(SheetShipModes, "B", "C", len(modes), s.percent); err != nil {
		return err
	}

	if err := s.keyCounts(SheetCountries, "Country", "Customers", b.CustomersPerCountry); err != nil {
		return err
	}
	if err := s.keyCounts(SheetCities, "City", "Orders", b.TopCities); err != nil {
		return err
	}

	if idx, err := f.GetSheetIndex(SheetSummary); err == nil {
		f.SetActiveSheet(idx)
	}
	return f.Write(w)
}

// sheetWriter writes header-plus-rows tables with shared styles.
type sheetWriter struct {
	f        *excelize.File
	header   int
	currency int
	percent  int
	first    bool
}

func newSheetWriter(f *excelize.File) (*sheetWriter, error) {
	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	currencyFmt := numFmtCurrency
	currency, err := f.NewStyle(&excelize.Style{CustomNumFmt: &currencyFmt})
	if err != nil {
		return nil, fmt.Errorf("failed to create currency style: %w", err)
	}
	percentFmt := numFmtPercent
	percent, err := f.NewStyle(&excelize.Style{CustomNumFmt: &percentFmt})
	if err != nil {
		return nil, fmt.Errorf("failed to create percent style: %w", err)
	}
	return &sheetWriter{f: f, header: header, currency: currency, percent: percent, first: true}, nil
}

// table creates sheet and writes the header row and rows below it. The
// first table reuses the default sheet.
func (s *sheetWriter) table(sheet string, header []string, rows [][]interface{}) error {
	if s.first {
		if err := s.f.SetSheetName("Sheet1", sheet); err != nil {
			return fmt.Errorf("failed to rename sheet: %w", err)
		}
		s.first = false
	} else if _, err := s.f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}

	cells := make([]interface{}, len(header))
	for i, h := range header {
		cells[i] = h
	}
	if err := s.f.SetSheetRow(sheet, "A1", &cells); err != nil {
		return err
	}
	last, _ := excelize.CoordinatesToCellName(len(header), 1)
	if err := s.f.SetCellStyle(sheet, "A1", last, s.header); err != nil {
		return err
	}

	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		r := row
		if err := s.f.SetSheetRow(sheet, cell, &r); err != nil {
			return err
		}
	}

	lastCol, _ := excelize.ColumnNumberToName(len(header))
	return s.f.SetColWidth(sheet, "A", lastCol, 18)
}

func (s *sheetWriter) format(sheet, from, to string, style int) error {
	return s.f.SetCellStyle(sheet, from, to, style)
}

// formatColumns styles columns fromCol..toCol of n data rows.
func (s *sheetWriter) formatColumns(sheet, fromCol, toCol string, n, style int) error {
	if n == 0 {
		return nil
	}
	return s.f.SetCellStyle(sheet, fromCol+"2", fmt.Sprintf("%s%d", toCol, n+1), style)
}

func (s *sheetWriter) keyValues(sheet, label, unit string, kvs []engine.KeyValue, style int) error {
	rows := make([][]interface{}, len(kvs))
	for i, kv := range kvs {
		rows[i] = []interface{}{kv.Key, kv.Value}
	}
	if err := s.table(sheet, []string{label, unit}, rows); err != nil {
		return err
	}
	return s.formatColumns(sheet, "B", "B", len(rows), style)
}

func (s *sheetWriter) keyCounts(sheet, label, unit string, kcs []engine.KeyCount) error {
	rows := make([][]interface{}, len(kcs))
	for i, kc := range kcs {
		rows[i] = []interface{}{kc.Key, kc.Count}
	}
	return s.table(sheet, []string{label, unit}, rows)
}

// addMonthlyChart plots the three monthly series next to their table.
func addMonthlyChart(f *excelize.File, n int) error {
	cats := fmt.Sprintf("'%s'!$A$2:$A$%d", SheetMonthly, n+1)
	series := make([]excelize.ChartSeries, 0, 3)
	for _, col := range []string{"B", "C", "D"} {
		series = append(series, excelize.ChartSeries{
			Name:       fmt.Sprintf("'%s'!$%s$1", SheetMonthly, col),
			Categories: cats,
			Values:     fmt.Sprintf("'%s'!$%s$2:$%s$%d", SheetMonthly, col, col, n+1),
		})
	}
	return f.AddChart(SheetMonthly, "F2", &excelize.Chart{
		Type:   excelize.Line,
		Series: series,
		Title:  []excelize.RichTextRun{{Text: "Sales, Profit and Shipping Cost by Month"}},
	})
}
