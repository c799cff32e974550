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
	"fmt"
)

// DataIntegrityError reports a required key column that is missing or
// entirely empty. It is fatal: the tables cannot be joined safely.
type DataIntegrityError struct {
	Table  string
	Column string
	Reason string
}

func (e *DataIntegrityError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("data integrity: table %s: %s", e.Table, e.Reason)
	}
	return fmt.Sprintf("data integrity: table %s, column %q: %s", e.Table, e.Column, e.Reason)
}

// ParseError reports a single row whose typed field could not be parsed.
// The row is skipped and processing continues.
type ParseError struct {
	Table  string
	Row    int // 1-based data row, header excluded
	Column string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse: table %s, row %d, column %q: invalid value %q: %v",
		e.Table, e.Row, e.Column, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// IsDataIntegrity reports whether err is or wraps a DataIntegrityError.
func IsDataIntegrity(err error) bool {
	var die *DataIntegrityError
	return errors.As(err, &die)
}

// CountParseErrors returns how many errors in errs are ParseErrors.
func CountParseErrors(errs []error) int {
	n := 0
	for _, err := range errs {
		var pe *ParseError
		if errors.As(err, &pe) {
			n++
		}
	}
	return n
}
