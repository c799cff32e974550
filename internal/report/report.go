//-------------------------------------------------------------------------
//
// pgEdge Sales Dashboard
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package report renders a dashboard bundle as text, JSON, YAML or an
// XLSX workbook.
package report

import (
	"fmt"
	"io"
	"os"
	"sort"
	"sync"

	"github.com/pgEdge/pgedge-salesdash/internal/engine"
)

// Report is a rendered dashboard: the bundle plus where the data came
// from and how much of it was discarded.
type Report struct {
	Source            string        `json:"source" yaml:"source"`
	SkippedRows       int           `json:"skipped_rows" yaml:"skipped_rows"`
	DuplicateProducts int           `json:"duplicate_products" yaml:"duplicate_products"`
	Dashboard         engine.Bundle `json:"dashboard" yaml:"dashboard"`
}

// Renderer writes a Report in one output format.
type Renderer interface {
	// Name returns the format name used on the command line.
	Name() string

	// Description returns a one-line description.
	Description() string

	// Binary reports whether the output must go to a file.
	Binary() bool

	// Render writes rep to w.
	Render(w io.Writer, rep *Report) error
}

var (
	registry = make(map[string]Renderer)
	mu       sync.RWMutex
)

// Register adds a renderer to the registry.
func Register(r Renderer) {
	mu.Lock()
	defer mu.Unlock()
	registry[r.Name()] = r
}

// Get retrieves a renderer by format name.
func Get(name string) (Renderer, error) {
	mu.RLock()
	defer mu.RUnlock()

	r, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown report format: %s", name)
	}
	return r, nil
}

// List returns all registered format names, sorted.
func List() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Write renders rep in format to path, or to stdout when path is empty.
func Write(rep *Report, format, path string, stdout io.Writer) error {
	r, err := Get(format)
	if err != nil {
		return err
	}

	if path == "" {
		if r.Binary() {
			return fmt.Errorf("%s reports must be written to a file; use --output", format)
		}
		return r.Render(stdout, rep)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := r.Render(f, rep); err != nil {
		f.Close()
		return fmt.Errorf("failed to render %s report: %w", format, err)
	}
	return f.Close()
}
