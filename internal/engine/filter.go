//-------------------------------------------------------------------------
//
// pgEdge Sales Dashboard
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package engine filters the fact table into views and computes the
// dashboard metrics and aggregates from a view.
//
// Every function here is pure: it reads the fact table, never modifies it,
// and keeps no state between calls. A filter change is handled by calling
// Recompute again with the new predicate.
package engine

import (
	"time"

	"github.com/pgEdge/pgedge-salesdash/internal/facts"
)

// Predicate selects fact rows. From and To are inclusive calendar dates.
// A nil or empty Countries or Categories set applies no filter on that
// column.
type Predicate struct {
	From       time.Time
	To         time.Time
	Countries  []string
	Categories []string
}

// View is a filtered subset of a fact table. It holds row indices into the
// table and copies no data.
type View struct {
	table   *facts.Table
	indices []int
}

// All returns a view over every row of table.
func All(table *facts.Table) View {
	n := table.Len()
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	return View{table: table, indices: indices}
}

// Len returns the number of rows in the view.
func (v View) Len() int { return len(v.indices) }

// Empty reports whether the view has no rows.
func (v View) Empty() bool { return len(v.indices) == 0 }

// Row returns row i of the view.
func (v View) Row(i int) facts.Row { return v.table.Row(v.indices[i]) }

// Each calls fn for every row in view order.
func (v View) Each(fn func(r facts.Row)) {
	for _, idx := range v.indices {
		fn(v.table.Row(idx))
	}
}

// ApplyFilters returns the rows of table that match p. Predicates are
// AND-combined; values within a set are OR-combined and matched exactly.
// From after To yields an empty view.
func ApplyFilters(table *facts.Table, p Predicate) View {
	from, to := calendarDay(p.From), calendarDay(p.To)
	if from.After(to) {
		return View{table: table}
	}

	countries := toSet(p.Countries)
	categories := toSet(p.Categories)

	n := table.Len()
	indices := make([]int, 0, n)
	for i := 0; i < n; i++ {
		r := table.Row(i)
		if r.OrderDate.Before(from) || r.OrderDate.After(to) {
			continue
		}
		if countries != nil && !countries[r.Country] {
			continue
		}
		if categories != nil && !categories[r.Category] {
			continue
		}
		indices = append(indices, i)
	}
	return View{table: table, indices: indices}
}

// DefaultPredicate spans the full date range of table with no country or
// category filter. It matches every row.
func DefaultPredicate(table *facts.Table) Predicate {
	minDate, maxDate, ok := table.DateBounds()
	if !ok {
		return Predicate{}
	}
	return Predicate{From: minDate, To: maxDate}
}

// toSet returns nil for an empty list so that callers can tell "no filter"
// from "filter".
func toSet(values []string) map[string]bool {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}

func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
