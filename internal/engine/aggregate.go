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
	"sort"

	"github.com/pgEdge/pgedge-salesdash/internal/facts"
)

// KeyValue is one entry of an aggregate table.
type KeyValue struct {
	Key   string  `json:"key" yaml:"key"`
	Value float64 `json:"value" yaml:"value"`
}

// KeyCount is one entry of a counting aggregate.
type KeyCount struct {
	Key   string `json:"key" yaml:"key"`
	Count int    `json:"count" yaml:"count"`
}

// ShipModeShare compares a shipping mode's share of line items with its
// share of shipping cost.
type ShipModeShare struct {
	Mode       string  `json:"mode" yaml:"mode"`
	OrderShare float64 `json:"order_share" yaml:"order_share"`
	CostShare  float64 `json:"cost_share" yaml:"cost_share"`
}

// Measure is a summable fact column.
type Measure int

// Summable columns.
const (
	MeasureSales Measure = iota
	MeasureProfit
	MeasureShippingCost
)

// String returns the source column name.
func (m Measure) String() string {
	switch m {
	case MeasureSales:
		return "Sales"
	case MeasureProfit:
		return "Profit"
	case MeasureShippingCost:
		return "Shipping.Cost"
	default:
		return fmt.Sprintf("Measure(%d)", int(m))
	}
}

// ParseMeasure accepts a source column name.
func ParseMeasure(s string) (Measure, error) {
	switch s {
	case "Sales":
		return MeasureSales, nil
	case "Profit":
		return MeasureProfit, nil
	case "Shipping.Cost":
		return MeasureShippingCost, nil
	}
	return 0, fmt.Errorf("unknown measure: %s", s)
}

func (m Measure) value(r facts.Row) float64 {
	switch m {
	case MeasureProfit:
		return r.Profit
	case MeasureShippingCost:
		return r.ShippingCost
	default:
		return r.Sales
	}
}

// Sum adds up measure m across the view.
func Sum(v View, m Measure) float64 {
	var total float64
	v.Each(func(r facts.Row) { total += m.value(r) })
	return total
}

// TotalSales sums Sales. An empty view yields 0.
func TotalSales(v View) float64 { return Sum(v, MeasureSales) }

// TotalProfit sums Profit. An empty view yields 0.
func TotalProfit(v View) float64 { return Sum(v, MeasureProfit) }

// TotalShippingCost sums Shipping.Cost. An empty view yields 0.
func TotalShippingCost(v View) float64 { return Sum(v, MeasureShippingCost) }

// AvgShippingCost is the mean shipping cost per row, 0 for an empty view.
func AvgShippingCost(v View) float64 {
	if v.Empty() {
		return 0
	}
	return TotalShippingCost(v) / float64(v.Len())
}

// ProfitMargin is total profit as a percentage of total sales. It is 0
// when total sales is 0.
func ProfitMargin(v View) float64 {
	sales := TotalSales(v)
	if sales == 0 {
		return 0
	}
	return TotalProfit(v) / sales * 100
}

// MonthlySeries sums m per calendar month, keyed "YYYY-MM", in
// chronological order. Months without rows are absent.
func MonthlySeries(v View, m Measure) []KeyValue {
	sums := make(map[string]float64)
	v.Each(func(r facts.Row) {
		sums[monthKey(r)] += m.value(r)
	})

	out := make([]KeyValue, 0, len(sums))
	for k, s := range sums {
		out = append(out, KeyValue{Key: k, Value: s})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// monthKey truncates the order date to its month. It is derived per view
// rather than stored on the fact table.
func monthKey(r facts.Row) string {
	return r.OrderDate.Format("2006-01")
}

// CategoryShare is each category's proportion of total sales.
func CategoryShare(v View) []KeyValue {
	return salesShare(v, func(r facts.Row) string { return r.Category })
}

// SubCategoryShare is each sub-category's proportion of total sales.
func SubCategoryShare(v View) []KeyValue {
	return salesShare(v, func(r facts.Row) string { return r.SubCategory })
}

// salesShare groups sales by key and divides by the grand total. The
// result is ordered by share descending, then key ascending. An empty view
// or a zero grand total yields no entries.
func salesShare(v View, key func(facts.Row) string) []KeyValue {
	groups := sumBy(v, key, MeasureSales)

	var total float64
	for _, g := range groups {
		total += g.Value
	}
	if total == 0 {
		return []KeyValue{}
	}

	for i := range groups {
		groups[i].Value /= total
	}
	sortByValueDesc(groups)
	return groups
}

// TopNProducts ranks product names by summed sales, highest first, ties
// broken by name ascending. n is clamped to the number of products; n <= 0
// yields no entries.
func TopNProducts(v View, n int) []KeyValue {
	groups := sumBy(v, func(r facts.Row) string { return r.ProductName }, MeasureSales)
	sortByValueDesc(groups)
	return groups[:clamp(n, len(groups))]
}

// ShipModeDistribution is each shipping mode's proportion of rows,
// ordered by mode name.
func ShipModeDistribution(v View) []KeyValue {
	counts := make(map[string]int)
	v.Each(func(r facts.Row) { counts[r.ShipMode]++ })

	out := make([]KeyValue, 0, len(counts))
	total := float64(v.Len())
	for mode, c := range counts {
		out = append(out, KeyValue{Key: mode, Value: float64(c) / total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// ShipModeShareComparison returns, per shipping mode, its share of rows
// and its share of total shipping cost, ordered by mode name. Each share
// column sums to 1 over all modes; when total cost is 0 every cost share is
// 0.
func ShipModeShareComparison(v View) []ShipModeShare {
	type acc struct {
		count int
		cost  float64
	}
	modes := make(map[string]*acc)
	var totalCost float64
	v.Each(func(r facts.Row) {
		a, ok := modes[r.ShipMode]
		if !ok {
			a = &acc{}
			modes[r.ShipMode] = a
		}
		a.count++
		a.cost += r.ShippingCost
		totalCost += r.ShippingCost
	})

	out := make([]ShipModeShare, 0, len(modes))
	total := float64(v.Len())
	for mode, a := range modes {
		s := ShipModeShare{Mode: mode, OrderShare: float64(a.count) / total}
		if totalCost != 0 {
			s.CostShare = a.cost / totalCost
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Mode < out[j].Mode })
	return out
}

// CustomersPerCountry counts distinct customers per country, highest
// first, ties broken by country name.
func CustomersPerCountry(v View) []KeyCount {
	seen := make(map[string]map[string]bool)
	v.Each(func(r facts.Row) {
		ids, ok := seen[r.Country]
		if !ok {
			ids = make(map[string]bool)
			seen[r.Country] = ids
		}
		ids[r.CustomerID] = true
	})

	out := make([]KeyCount, 0, len(seen))
	for country, ids := range seen {
		out = append(out, KeyCount{Key: country, Count: len(ids)})
	}
	sortByCountDesc(out)
	return out
}

// TopCitiesByCustomerCount ranks cities by number of rows, highest first,
// ties broken by city name. n is clamped as in TopNProducts.
func TopCitiesByCustomerCount(v View, n int) []KeyCount {
	counts := make(map[string]int)
	v.Each(func(r facts.Row) { counts[r.City]++ })

	out := make([]KeyCount, 0, len(counts))
	for city, c := range counts {
		out = append(out, KeyCount{Key: city, Count: c})
	}
	sortByCountDesc(out)
	return out[:clamp(n, len(out))]
}

func sumBy(v View, key func(facts.Row) string, m Measure) []KeyValue {
	sums := make(map[string]float64)
	v.Each(func(r facts.Row) { sums[key(r)] += m.value(r) })

	out := make([]KeyValue, 0, len(sums))
	for k, s := range sums {
		out = append(out, KeyValue{Key: k, Value: s})
	}
	return out
}

func sortByValueDesc(kv []KeyValue) {
	sort.Slice(kv, func(i, j int) bool {
		if kv[i].Value != kv[j].Value {
			return kv[i].Value > kv[j].Value
		}
		return kv[i].Key < kv[j].Key
	})
}

func sortByCountDesc(kc []KeyCount) {
	sort.Slice(kc, func(i, j int) bool {
		if kc[i].Count != kc[j].Count {
			return kc[i].Count > kc[j].Count
		}
		return kc[i].Key < kc[j].Key
	})
}

func clamp(n, limit int) int {
	if n < 0 {
		return 0
	}
	if n > limit {
		return limit
	}
	return n
}
