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
	"fmt"

	"github.com/xuri/excelize/v2"
)

// XLSXLoader reads a workbook with one sheet per table, each sheet named
// after its table and starting with a header row.
type XLSXLoader struct {
	Path string
}

// NewXLSXLoader creates a loader for the given workbook.
func NewXLSXLoader(path string) *XLSXLoader {
	return &XLSXLoader{Path: path}
}

// Name returns the source description.
func (l *XLSXLoader) Name() string {
	return "xlsx:" + l.Path
}

// Load reads all four sheets.
func (l *XLSXLoader) Load(ctx context.Context) (*Tables, error) {
	f, err := excelize.OpenFile(l.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", l.Path, err)
	}
	defer f.Close()

	t := &Tables{}
	for _, table := range TableNames {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if idx, _ := f.GetSheetIndex(table); idx < 0 {
			return nil, fmt.Errorf("workbook %s has no sheet %q", l.Path, table)
		}

		rows, err := f.GetRows(table, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %q: %w", table, err)
		}
		if len(rows) == 0 {
			return nil, fmt.Errorf("sheet %q is empty", table)
		}
		if err := DecodeTable(t, table, rows[0], rows[1:]); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// WriteXLSX writes t as a workbook with one sheet per table. Amount
// columns are stored as numbers.
func WriteXLSX(path string, t *Tables) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, table := range TableNames {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", table); err != nil {
				return fmt.Errorf("failed to rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(table); err != nil {
			return fmt.Errorf("failed to create sheet %q: %w", table, err)
		}

		header := toCells(Columns[table])
		if err := f.SetSheetRow(table, "A1", &header); err != nil {
			return fmt.Errorf("failed to write header of %q: %w", table, err)
		}

		for r, row := range xlsxRows(t, table) {
			cell, err := excelize.CoordinatesToCellName(1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(table, cell, &row); err != nil {
				return fmt.Errorf("failed to write %q row %d: %w", table, r+1, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	return nil
}

func xlsxRows(t *Tables, table string) [][]interface{} {
	if table != TableSales {
		rows := encodeTable(t, table)
		out := make([][]interface{}, len(rows))
		for i, row := range rows {
			out[i] = toCells(row)
		}
		return out
	}

	out := make([][]interface{}, len(t.Sales))
	for i, s := range t.Sales {
		out[i] = []interface{}{s.OrderID, s.ProductID, s.Sales, s.Profit, s.ShippingCost, s.ShipMode}
	}
	return out
}

func toCells(values []string) []interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}
