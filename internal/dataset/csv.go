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
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// CSVLoader reads customers.csv, orders.csv, sales.csv and products.csv
// from a directory.
type CSVLoader struct {
	Dir string
}

// NewCSVLoader creates a loader for the given directory.
func NewCSVLoader(dir string) *CSVLoader {
	return &CSVLoader{Dir: dir}
}

// Name returns the source description.
func (l *CSVLoader) Name() string {
	return "csv:" + l.Dir
}

// Load reads all four files.
func (l *CSVLoader) Load(ctx context.Context) (*Tables, error) {
	t := &Tables{}
	for _, table := range TableNames {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		header, rows, err := readCSVFile(csvPath(l.Dir, table))
		if err != nil {
			return nil, err
		}
		if err := DecodeTable(t, table, header, rows); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func csvPath(dir, table string) string {
	return filepath.Join(dir, table+".csv")
}

func readCSVFile(path string) ([]string, [][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, fmt.Errorf("%s: file is empty", path)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read header of %s: %w", path, err)
	}

	rows, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return header, rows, nil
}

// WriteCSV writes t as four CSV files into dir, creating it if needed.
func WriteCSV(dir string, t *Tables) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}
	for _, table := range TableNames {
		if err := writeCSVFile(csvPath(dir, table), Columns[table], encodeTable(t, table)); err != nil {
			return err
		}
	}
	return nil
}

func writeCSVFile(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}
