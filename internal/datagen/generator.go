//-------------------------------------------------------------------------
//
// pgEdge Sales Dashboard
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package datagen generates synthetic sales datasets with the same shape
// as real exports, including duplicate product rows and malformed order
// dates.
package datagen

import (
	"context"
	"fmt"
	"time"

	"github.com/pgEdge/pgedge-salesdash/internal/dataset"
	"github.com/pgEdge/pgedge-salesdash/internal/logging"
)

// Options sizes a synthetic dataset.
type Options struct {
	Customers        int
	Products         int
	Orders           int
	MaxLinesPerOrder int

	// DuplicateProductRate is the probability that a product is written a
	// second time under the same Product.ID with a different name.
	DuplicateProductRate float64

	// BadDateRate is the probability that an order gets an unparseable
	// Order.Date.
	BadDateRate float64

	Start time.Time
	End   time.Time

	// Seed makes the output reproducible. Zero picks a random seed.
	Seed int64
}

// ProgressInterval is how often to log progress (in rows).
const ProgressInterval = 10000

type category struct {
	name   string
	prefix string
	subs   []string
	weight int
}

var categories = []category{
	{"Office Supplies", "OFF", []string{"Appliances", "Art", "Binders", "Envelopes", "Fasteners", "Labels", "Paper", "Storage", "Supplies"}, 6},
	{"Technology", "TEC", []string{"Accessories", "Copiers", "Machines", "Phones"}, 2},
	{"Furniture", "FUR", []string{"Bookcases", "Chairs", "Furnishings", "Tables"}, 2},
}

var countries = []string{
	"United States", "Australia", "France", "Germany", "Mexico", "China",
	"United Kingdom", "Brazil", "India", "Indonesia", "Italy", "Spain",
}

var countryWeights = []int{30, 10, 9, 8, 7, 7, 6, 6, 5, 4, 4, 4}

var shipModes = []string{"Standard Class", "Second Class", "First Class", "Same Day"}

var shipModeWeights = []int{60, 20, 15, 5}

// shipCostFactor scales shipping cost by mode.
var shipCostFactor = map[string]float64{
	"Standard Class": 1.0,
	"Second Class":   1.3,
	"First Class":    1.7,
	"Same Day":       2.5,
}

var goodDateLayouts = []string{"2006-01-02", "1/2/2006"}

var badDates = []string{"", "N/A", "2024-13-45", "31/31/2024", "not-a-date"}

// citiesPerCountry bounds how many distinct cities a country gets.
const citiesPerCountry = 6

// Generator produces synthetic dataset.Tables.
type Generator struct {
	faker *Faker
	opts  Options
}

// NewGenerator creates a new generator for opts.
func NewGenerator(opts Options) *Generator {
	f := NewFaker()
	if opts.Seed != 0 {
		f = NewFakerWithSeed(uint64(opts.Seed))
	}
	return &Generator{faker: f, opts: opts}
}

// Generate builds the four tables. Customers, products and orders are
// written in ID order; duplicate products are appended after the originals
// so that first-occurrence deduplication keeps the original.
func (g *Generator) Generate(ctx context.Context) (*dataset.Tables, error) {
	if g.opts.Customers < 1 || g.opts.Products < 1 || g.opts.Orders < 1 || g.opts.MaxLinesPerOrder < 1 {
		return nil, fmt.Errorf("customers, products, orders and lines per order must be at least 1")
	}
	if g.opts.End.Before(g.opts.Start) {
		return nil, fmt.Errorf("end date %s is before start date %s",
			g.opts.End.Format("2006-01-02"), g.opts.Start.Format("2006-01-02"))
	}

	logging.Info().
		Int("customers", g.opts.Customers).
		Int("products", g.opts.Products).
		Int("orders", g.opts.Orders).
		Msg("Generating sales data")

	t := &dataset.Tables{}
	t.Customers = g.customers()
	t.Products = g.products()

	if err := g.orders(ctx, t); err != nil {
		return nil, err
	}

	logging.Info().
		Int("products", len(t.Products)).
		Int("sales", len(t.Sales)).
		Msg("Generation complete")

	return t, nil
}

func (g *Generator) customers() []dataset.Customer {
	cities := make(map[string][]string, len(countries))
	for _, c := range countries {
		pool := make([]string, citiesPerCountry)
		for i := range pool {
			pool[i] = g.faker.City()
		}
		cities[c] = pool
	}

	out := make([]dataset.Customer, g.opts.Customers)
	for i := range out {
		country := ChooseWeighted(g.faker, countries, countryWeights)
		out[i] = dataset.Customer{
			ID:      fmt.Sprintf("CU-%06d", i+1),
			Country: country,
			City:    Choose(g.faker, cities[country]),
		}
	}
	return out
}

func (g *Generator) products() []dataset.Product {
	weights := make([]int, len(categories))
	for i, c := range categories {
		weights[i] = c.weight
	}

	out := make([]dataset.Product, 0, g.opts.Products)
	for i := 0; i < g.opts.Products; i++ {
		c := ChooseWeighted(g.faker, categories, weights)
		sub := Choose(g.faker, c.subs)
		out = append(out, dataset.Product{
			ID:          fmt.Sprintf("%s-%s-%08d", c.prefix, sub[:2], i+1),
			Category:    c.name,
			SubCategory: sub,
			Name:        g.faker.ProductName(),
		})
	}

	for i := 0; i < g.opts.Products; i++ {
		if !g.faker.Chance(g.opts.DuplicateProductRate) {
			continue
		}
		dup := out[i]
		dup.Name = g.faker.ProductName()
		out = append(out, dup)
	}
	return out
}

// orders generates order headers and their sales lines together so that
// every sale references an existing order.
func (g *Generator) orders(ctx context.Context, t *dataset.Tables) error {
	progress := NewProgressReporter(dataset.TableOrders, int64(g.opts.Orders), ProgressInterval)

	for i := 0; i < g.opts.Orders; i++ {
		if i%1000 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}

		date := g.faker.DateRange(g.opts.Start, g.opts.End.AddDate(0, 0, 1).Add(-time.Second)).UTC()
		id := fmt.Sprintf("OR-%d-%07d", date.Year(), i+1)

		dateStr := date.Format(Choose(g.faker, goodDateLayouts))
		if g.faker.Chance(g.opts.BadDateRate) {
			dateStr = Choose(g.faker, badDates)
		}

		t.Orders = append(t.Orders, dataset.Order{
			ID:         id,
			CustomerID: t.Customers[g.faker.Int(0, len(t.Customers)-1)].ID,
			Date:       dateStr,
		})

		lines := g.faker.Int(1, g.opts.MaxLinesPerOrder)
		for l := 0; l < lines; l++ {
			t.Sales = append(t.Sales, g.sale(id, t.Products[g.faker.Int(0, g.opts.Products-1)].ID))
		}

		progress.Update(1)
	}

	progress.Done()
	return nil
}

func (g *Generator) sale(orderID, productID string) dataset.Sale {
	amount := g.faker.Price(5, 2500)
	mode := ChooseWeighted(g.faker, shipModes, shipModeWeights)
	return dataset.Sale{
		OrderID:      orderID,
		ProductID:    productID,
		Sales:        amount,
		Profit:       Round2(amount * g.faker.Float64(-0.25, 0.45)),
		ShippingCost: Round2(amount * g.faker.Float64(0.02, 0.08) * shipCostFactor[mode]),
		ShipMode:     mode,
	}
}

// ProgressReporter tracks and reports data generation progress.
type ProgressReporter struct {
	tableName        string
	totalRows        int64
	currentRow       int64
	progressInterval int64
}

// NewProgressReporter creates a new progress reporter.
func NewProgressReporter(tableName string, totalRows int64, interval int64) *ProgressReporter {
	return &ProgressReporter{
		tableName:        tableName,
		totalRows:        totalRows,
		progressInterval: interval,
	}
}

// Update updates the progress and logs if necessary.
func (p *ProgressReporter) Update(rowsInserted int64) {
	oldRow := p.currentRow
	p.currentRow += rowsInserted

	// Check if we crossed a progress interval
	if p.currentRow/p.progressInterval > oldRow/p.progressInterval {
		pct := float64(p.currentRow) / float64(p.totalRows) * 100
		logging.Info().
			Str("table", p.tableName).
			Int64("rows", p.currentRow).
			Int64("total", p.totalRows).
			Float64("percent", pct).
			Msg("Generating data")
	}
}

// Done logs completion.
func (p *ProgressReporter) Done() {
	logging.Info().
		Str("table", p.tableName).
		Int64("rows", p.currentRow).
		Msg("Table complete")
}

// FormatSize formats a byte count as a human-readable string.
func FormatSize(bytes int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
		TB = GB * 1024
	)

	switch {
	case bytes >= TB:
		return fmt.Sprintf("%.2f TB", float64(bytes)/float64(TB))
	case bytes >= GB:
		return fmt.Sprintf("%.2f GB", float64(bytes)/float64(GB))
	case bytes >= MB:
		return fmt.Sprintf("%.2f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.2f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
