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
	"strings"
	"text/tabwriter"

	"github.com/pgEdge/pgedge-salesdash/internal/engine"
)

func init() {
	Register(&textRenderer{})
}

type textRenderer struct{}

func (textRenderer) Name() string        { return "text" }
func (textRenderer) Description() string { return "aligned plain-text tables (default)" }
func (textRenderer) Binary() bool        { return false }

func (textRenderer) Render(w io.Writer, rep *Report) error {
	b := rep.Dashboard
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "SALES DASHBOARD")
	fmt.Fprintf(tw, "Source:\t%s\n", rep.Source)
	fmt.Fprintf(tw, "Period:\t%s to %s\n", b.Filters.From, b.Filters.To)
	fmt.Fprintf(tw, "Countries:\t%s\n", listOrAll(b.Filters.Countries))
	fmt.Fprintf(tw, "Categories:\t%s\n", listOrAll(b.Filters.Categories))
	fmt.Fprintf(tw, "Rows:\t%d (skipped %d, duplicate products %d)\n",
		b.RowCount, rep.SkippedRows, rep.DuplicateProducts)

	section(tw, "SUMMARY")
	fmt.Fprintf(tw, "Total Sales\t%s\n", engine.FormatCurrency(b.Summary.TotalSales, 0))
	fmt.Fprintf(tw, "Total Profit\t%s\n", engine.FormatCurrency(b.Summary.TotalProfit, 0))
	fmt.Fprintf(tw, "Total Shipping Cost\t%s\n", engine.FormatCurrency(b.Summary.TotalShippingCost, 0))
	fmt.Fprintf(tw, "Avg Shipping Cost\t%s\n", engine.FormatCurrency(b.Summary.AvgShippingCost, 2))
	fmt.Fprintf(tw, "Profit Margin\t%s\n", engine.FormatPercent(b.Summary.ProfitMargin))

	if b.Empty {
		fmt.Fprintln(tw)
		fmt.Fprintln(tw, "No rows match the current filters.")
		return tw.Flush()
	}

	section(tw, "MONTHLY")
	fmt.Fprintln(tw, "Month\tSales\tProfit\tShipping Cost")
	for i, kv := range b.SalesByMonth {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", kv.Key,
			engine.FormatCurrency(kv.Value, 0),
			engine.FormatCurrency(b.ProfitByMonth[i].Value, 0),
			engine.FormatCurrency(b.ShippingCostByMonth[i].Value, 0))
	}

	shareTable(tw, "SALES BY CATEGORY", "Category", b.CategoryShare)
	shareTable(tw, "SALES BY SUB-CATEGORY", "Sub-Category", b.SubCategoryShare)

	section(tw, fmt.Sprintf("TOP %d PRODUCTS", len(b.TopProducts)))
	fmt.Fprintln(tw, "#\tProduct\tSales")
	for i, kv := range b.TopProducts {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", i+1, kv.Key, engine.FormatCurrency(kv.Value, 0))
	}

	section(tw, "SHIPPING MODES")
	fmt.Fprintln(tw, "Mode\tOrders\tShipping Cost")
	for _, s := range b.ShipModeComparison {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", s.Mode, engine.FormatShare(s.OrderShare), engine.FormatShare(s.CostShare))
	}

	countTable(tw, "CUSTOMERS BY COUNTRY", "Country", "Customers", b.CustomersPerCountry)
	countTable(tw, fmt.Sprintf("TOP %d CITIES", len(b.TopCities)), "City", "Orders", b.TopCities)

	return tw.Flush()
}

func section(w io.Writer, title string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, title)
}

func shareTable(w io.Writer, title, label string, rows []engine.KeyValue) {
	section(w, title)
	fmt.Fprintf(w, "%s\tShare\n", label)
	for _, kv := range rows {
		fmt.Fprintf(w, "%s\t%s\n", kv.Key, engine.FormatShare(kv.Value))
	}
}

func countTable(w io.Writer, title, label, unit string, rows []engine.KeyCount) {
	section(w, title)
	fmt.Fprintf(w, "%s\t%s\n", label, unit)
	for _, kc := range rows {
		fmt.Fprintf(w, "%s\t%d\n", kc.Key, kc.Count)
	}
}

func listOrAll(values []string) string {
	if len(values) == 0 {
		return "all"
	}
	return strings.Join(values, ", ")
}
