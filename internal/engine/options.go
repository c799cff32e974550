//-------------------------------------------------------------------------
//
// pgEdge Sales Dashboard
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package engine

import (
	"fmt"
	"time"

	"github.com/pgEdge/pgedge-salesdash/internal/facts"
)

const dateLayout = "2006-01-02"

// FilterOptions lists the values a user can pick from.
type FilterOptions struct {
	MinDate    string   `json:"min_date" yaml:"min_date"`
	MaxDate    string   `json:"max_date" yaml:"max_date"`
	Countries  []string `json:"countries" yaml:"countries"`
	Categories []string `json:"categories" yaml:"categories"`
}

// AvailableOptions returns the date bounds and the distinct countries and
// categories of table.
func AvailableOptions(table *facts.Table) FilterOptions {
	opts := FilterOptions{
		Countries:  table.Countries(),
		Categories: table.Categories(),
	}
	if minDate, maxDate, ok := table.DateBounds(); ok {
		opts.MinDate = minDate.Format(dateLayout)
		opts.MaxDate = maxDate.Format(dateLayout)
	}
	return opts
}

// ResolvePredicate fills in missing bounds from the table. Empty from or
// to strings default to the earliest or latest order date.
func ResolvePredicate(table *facts.Table, from, to string, countries, categories []string) (Predicate, error) {
	p := DefaultPredicate(table)
	p.Countries = countries
	p.Categories = categories

	if from != "" {
		d, err := facts.ParseDate(from)
		if err != nil {
			return Predicate{}, &InvalidDateError{Flag: "from", Value: from}
		}
		p.From = d
	}
	if to != "" {
		d, err := facts.ParseDate(to)
		if err != nil {
			return Predicate{}, &InvalidDateError{Flag: "to", Value: to}
		}
		p.To = d
	}
	return p, nil
}

// InvalidDateError reports a filter bound that is not a date.
type InvalidDateError struct {
	Flag  string
	Value string
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid %s date %q, expected YYYY-MM-DD", e.Flag, e.Value)
}

// FormatDate formats a calendar date as used in filters and reports.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}
