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
	"github.com/pgEdge/pgedge-salesdash/internal/facts"
)

// Options sets the ranking sizes used by Recompute.
type Options struct {
	// TopProducts is the length of the best-seller list.
	TopProducts int

	// TopChartProducts is the length of the best-seller chart.
	TopChartProducts int

	// TopCities is the length of the city ranking.
	TopCities int
}

// DefaultOptions matches the dashboard layout: a five item best-seller
// list and ten item charts.
func DefaultOptions() Options {
	return Options{
		TopProducts:      5,
		TopChartProducts: 10,
		TopCities:        10,
	}
}

// Summary holds the scalar metrics of a view.
type Summary struct {
	TotalSales        float64 `json:"total_sales" yaml:"total_sales"`
	TotalProfit       float64 `json:"total_profit" yaml:"total_profit"`
	TotalShippingCost float64 `json:"total_shipping_cost" yaml:"total_shipping_cost"`
	AvgShippingCost   float64 `json:"avg_shipping_cost" yaml:"avg_shipping_cost"`
	ProfitMargin      float64 `json:"profit_margin" yaml:"profit_margin"`
}

// FilterSummary echoes the predicate a bundle was computed for.
type FilterSummary struct {
	From       string   `json:"from" yaml:"from"`
	To         string   `json:"to" yaml:"to"`
	Countries  []string `json:"countries,omitempty" yaml:"countries,omitempty"`
	Categories []string `json:"categories,omitempty" yaml:"categories,omitempty"`
}

// Bundle is every metric and aggregate the dashboard shows for one
// predicate.
type Bundle struct {
	Filters  FilterSummary `json:"filters" yaml:"filters"`
	RowCount int           `json:"row_count" yaml:"row_count"`

	// Empty is set when the predicate matched no rows. It is a warning,
	// not an error: every aggregate below is at its zero value.
	Empty bool `json:"empty" yaml:"empty"`

	Summary Summary `json:"summary" yaml:"summary"`

	SalesByMonth        []KeyValue `json:"sales_by_month" yaml:"sales_by_month"`
	ProfitByMonth       []KeyValue `json:"profit_by_month" yaml:"profit_by_month"`
	ShippingCostByMonth []KeyValue `json:"shipping_cost_by_month" yaml:"shipping_cost_by_month"`

	CategoryShare    []KeyValue `json:"category_share" yaml:"category_share"`
	SubCategoryShare []KeyValue `json:"sub_category_share" yaml:"sub_category_share"`

	TopProducts      []KeyValue `json:"top_products" yaml:"top_products"`
	TopChartProducts []KeyValue `json:"top_chart_products" yaml:"top_chart_products"`

	ShipModes          []KeyValue      `json:"ship_modes" yaml:"ship_modes"`
	ShipModeComparison []ShipModeShare `json:"ship_mode_comparison" yaml:"ship_mode_comparison"`

	CustomersPerCountry []KeyCount `json:"customers_per_country" yaml:"customers_per_country"`
	TopCities           []KeyCount `json:"top_cities" yaml:"top_cities"`
}

// Recompute filters table with p and derives every aggregate from the
// resulting view. It is called once per filter change and shares nothing
// with previous calls.
func Recompute(table *facts.Table, p Predicate, opts Options) Bundle {
	view := ApplyFilters(table, p)
	b := Summarize(view, opts)
	b.Filters = FilterSummary{
		From:       p.From.Format(dateLayout),
		To:         p.To.Format(dateLayout),
		Countries:  p.Countries,
		Categories: p.Categories,
	}
	return b
}

// Summarize derives the bundle for an already filtered view.
func Summarize(view View, opts Options) Bundle {
	return Bundle{
		RowCount: view.Len(),
		Empty:    view.Empty(),
		Summary: Summary{
			TotalSales:        TotalSales(view),
			TotalProfit:       TotalProfit(view),
			TotalShippingCost: TotalShippingCost(view),
			AvgShippingCost:   AvgShippingCost(view),
			ProfitMargin:      ProfitMargin(view),
		},
		SalesByMonth:        MonthlySeries(view, MeasureSales),
		ProfitByMonth:       MonthlySeries(view, MeasureProfit),
		ShippingCostByMonth: MonthlySeries(view, MeasureShippingCost),
		CategoryShare:       CategoryShare(view),
		SubCategoryShare:    SubCategoryShare(view),
		TopProducts:         TopNProducts(view, opts.TopProducts),
		TopChartProducts:    TopNProducts(view, opts.TopChartProducts),
		ShipModes:           ShipModeDistribution(view),
		ShipModeComparison:  ShipModeShareComparison(view),
		CustomersPerCountry: CustomersPerCountry(view),
		TopCities:           TopCitiesByCustomerCount(view, opts.TopCities),
	}
}
