//-------------------------------------------------------------------------
//
// pgEdge Sales Dashboard
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/pgEdge/pgedge-salesdash/internal/config"
	"github.com/pgEdge/pgedge-salesdash/internal/datagen"
	"github.com/pgEdge/pgedge-salesdash/internal/dataset"
	"github.com/pgEdge/pgedge-salesdash/internal/logging"
)

var (
	genCustomers     int
	genProducts      int
	genOrders        int
	genMaxLines      int
	genDuplicateRate float64
	genBadDateRate   float64
	genStart         string
	genEnd           string
	genSeed          int64

	generateFormat string
	generateOut    string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write a synthetic dataset",
	Long: `Generate customers, products, orders and sales with realistic
categories, shipping modes and amounts, and write them as CSV files, an
Excel workbook or a SQLite database. A fraction of products can be
duplicated and a fraction of order dates corrupted to exercise cleaning.

Example:
  pgedge-salesdash generate --format csv --out ./data --orders 5000 --seed 7`,
	RunE: runGenerate,
}

func init() {
	addGenerateFlags(generateCmd)
	generateCmd.Flags().StringVar(&generateFormat, "format", config.SourceCSV,
		"output format: csv, xlsx, sqlite")
	generateCmd.Flags().StringVar(&generateOut, "out", "",
		"output directory (csv) or file (xlsx, sqlite); default: source path")
}

// addGenerateFlags registers the dataset sizing flags shared by generate
// and seed.
func addGenerateFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&genCustomers, "customers", 0, "number of customers (default: 500)")
	cmd.Flags().IntVar(&genProducts, "products", 0, "number of distinct products (default: 200)")
	cmd.Flags().IntVar(&genOrders, "orders", 0, "number of orders (default: 2000)")
	cmd.Flags().IntVar(&genMaxLines, "max-lines", 0, "maximum sales lines per order (default: 4)")
	cmd.Flags().Float64Var(&genDuplicateRate, "duplicate-rate", 0, "fraction of products written twice (default: 0.05)")
	cmd.Flags().Float64Var(&genBadDateRate, "bad-date-rate", 0, "fraction of orders with an unparseable date")
	cmd.Flags().StringVar(&genStart, "start", "", "first order date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&genEnd, "end", "", "last order date (YYYY-MM-DD)")
	cmd.Flags().Int64Var(&genSeed, "seed", 0, "random seed for reproducible output (0 = random)")
}

// applyGenerateFlags copies explicitly set flags over the config values.
func applyGenerateFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	if flags.Changed("customers") {
		cfg.Generate.Customers = genCustomers
	}
	if flags.Changed("products") {
		cfg.Generate.Products = genProducts
	}
	if flags.Changed("orders") {
		cfg.Generate.Orders = genOrders
	}
	if flags.Changed("max-lines") {
		cfg.Generate.MaxLinesPerOrder = genMaxLines
	}
	if flags.Changed("duplicate-rate") {
		cfg.Generate.DuplicateProductRate = genDuplicateRate
	}
	if flags.Changed("bad-date-rate") {
		cfg.Generate.BadDateRate = genBadDateRate
	}
	if genStart != "" {
		cfg.Generate.Start = genStart
	}
	if genEnd != "" {
		cfg.Generate.End = genEnd
	}
	if flags.Changed("seed") {
		cfg.Generate.Seed = genSeed
	}
}

// generatorOptions converts the validated config. A zero seed is replaced
// by a time-based one so that it can be logged and recorded.
func generatorOptions(g config.GenerateConfig) (datagen.Options, error) {
	start, end, err := g.DateRange()
	if err != nil {
		return datagen.Options{}, err
	}
	seed := g.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return datagen.Options{
		Customers:            g.Customers,
		Products:             g.Products,
		Orders:               g.Orders,
		MaxLinesPerOrder:     g.MaxLinesPerOrder,
		DuplicateProductRate: g.DuplicateProductRate,
		BadDateRate:          g.BadDateRate,
		Start:                start,
		End:                  end,
		Seed:                 seed,
	}, nil
}

func generateTables(ctx context.Context) (*dataset.Tables, int64, error) {
	if err := cfg.ValidateGenerate(); err != nil {
		return nil, 0, err
	}
	opts, err := generatorOptions(cfg.Generate)
	if err != nil {
		return nil, 0, err
	}

	logging.Info().
		Int64("seed", opts.Seed).
		Str("start", cfg.Generate.Start).
		Str("end", cfg.Generate.End).
		Msg("Generating synthetic dataset")

	t, err := datagen.NewGenerator(opts).Generate(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to generate data: %w", err)
	}
	return t, opts.Seed, nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	applyGenerateFlags(cmd)

	out := generateOut
	if out == "" {
		out = cfg.Source.Path
	}
	if out == "" {
		return fmt.Errorf("an output location is required; use --out")
	}

	ctx := context.Background()
	t, _, err := generateTables(ctx)
	if err != nil {
		return err
	}

	var files []string
	switch generateFormat {
	case config.SourceCSV:
		err = dataset.WriteCSV(out, t)
		for _, table := range dataset.TableNames {
			files = append(files, filepath.Join(out, table+".csv"))
		}
	case config.SourceXLSX:
		err = dataset.WriteXLSX(out, t)
		files = []string{out}
	case config.SourceSQLite:
		err = dataset.WriteSQLite(ctx, out, t)
		files = []string{out}
	default:
		return fmt.Errorf("unknown output format '%s'; expected csv, xlsx or sqlite", generateFormat)
	}
	if err != nil {
		return fmt.Errorf("failed to write dataset: %w", err)
	}

	counts := t.Counts()
	logging.Info().
		Str("format", generateFormat).
		Str("out", out).
		Int("customers", counts[dataset.TableCustomers]).
		Int("products", counts[dataset.TableProducts]).
		Int("orders", counts[dataset.TableOrders]).
		Int("sales", counts[dataset.TableSales]).
		Str("size", datagen.FormatSize(totalSize(files))).
		Msg("Dataset written")

	return nil
}

func totalSize(files []string) int64 {
	var total int64
	for _, f := range files {
		if info, err := os.Stat(f); err == nil {
			total += info.Size()
		}
	}
	return total
}
