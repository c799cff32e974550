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
	"errors"
	"strings"
	"time"

	"github.com/pgEdge/pgedge-salesdash/internal/dataset"
)

// ParsedOrder is an order whose date has been parsed to a calendar date.
type ParsedOrder struct {
	ID         string
	CustomerID string
	Date       time.Time
}

// dateLayouts are tried in order. Time of day is discarded.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006/01/02",
	"1/2/2006",
	"1/2/2006 15:04",
	"1/2/2006 15:04:05",
	"02-01-2006",
}

var errDateFormat = errors.New("unrecognized date format")

// DedupeProducts keeps the first row for each Product.ID, in original row
// order. Rows without an ID are dropped. It fails when the table has rows
// but none of them carries an ID.
func DedupeProducts(products []dataset.Product) ([]dataset.Product, error) {
	if len(products) == 0 {
		return nil, nil
	}

	seen := make(map[string]bool, len(products))
	out := make([]dataset.Product, 0, len(products))
	for _, p := range products {
		if p.ID == "" || seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		out = append(out, p)
	}

	if len(out) == 0 {
		return nil, &dataset.DataIntegrityError{
			Table:  dataset.TableProducts,
			Column: dataset.ColProductID,
			Reason: "every value is empty",
		}
	}
	return out, nil
}

// ParseOrderDates converts raw order dates. Rows whose date does not parse
// are left out and reported as *dataset.ParseError.
func ParseOrderDates(orders []dataset.Order) ([]ParsedOrder, []error) {
	out := make([]ParsedOrder, 0, len(orders))
	var errs []error
	for i, o := range orders {
		d, err := ParseDate(o.Date)
		if err != nil {
			errs = append(errs, &dataset.ParseError{
				Table:  dataset.TableOrders,
				Row:    i + 1,
				Column: dataset.ColOrderDate,
				Value:  o.Date,
				Err:    err,
			})
			continue
		}
		out = append(out, ParsedOrder{ID: o.ID, CustomerID: o.CustomerID, Date: d})
	}
	return out, errs
}

// ParseDate parses s with the accepted layouts and returns midnight UTC of
// the written calendar date.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errDateFormat
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return truncateDay(t), nil
		}
	}
	return time.Time{}, errDateFormat
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
