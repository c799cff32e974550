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
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pgEdge/pgedge-salesdash/internal/engine"
	"github.com/pgEdge/pgedge-salesdash/internal/logging"
	"github.com/pgEdge/pgedge-salesdash/internal/report"
)

var (
	reportFrom       string
	reportTo         string
	reportCountries  []string
	reportCategories []string
	reportFormat     string
	reportOutput     string
	reportTop        int
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Compute the dashboard for a date range, countries and categories",
	Long: `Load the datasets, build the fact table and print every dashboard
metric and aggregate for the selected filter. Dates default to the full
range of the data; an empty country or category list selects everything.

Example:
  pgedge-salesdash report --path ./data --from 2024-01-01 --to 2024-06-30 \
      --country "United States" --country Germany --category Technology`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVar(&reportFrom, "from", "",
		"first order date to include (YYYY-MM-DD)")
	reportCmd.Flags().StringVar(&reportTo, "to", "",
		"last order date to include (YYYY-MM-DD)")
	reportCmd.Flags().StringSliceVar(&reportCountries, "country", nil,
		"country to include (repeatable or comma separated)")
	reportCmd.Flags().StringSliceVar(&reportCategories, "category", nil,
		"product category to include (repeatable or comma separated)")
	reportCmd.Flags().StringVar(&reportFormat, "format", "",
		"report format: "+strings.Join(report.List(), ", "))
	reportCmd.Flags().StringVarP(&reportOutput, "output", "o", "",
		"write the report to a file instead of stdout")
	reportCmd.Flags().IntVar(&reportTop, "top", 0,
		"number of best-selling products to list (default: 5)")
}

func runReport(cmd *cobra.Command, args []string) error {
	// Override config with CLI flags
	if reportFrom != "" {
		cfg.Filters.From = reportFrom
	}
	if reportTo != "" {
		cfg.Filters.To = reportTo
	}
	if len(reportCountries) > 0 {
		cfg.Filters.Countries = reportCountries
	}
	if len(reportCategories) > 0 {
		cfg.Filters.Categories = reportCategories
	}
	if reportFormat != "" {
		cfg.Report.Format = reportFormat
	}
	if reportOutput != "" {
		cfg.Report.Output = reportOutput
	}
	if reportTop > 0 {
		cfg.Report.TopProducts = reportTop
	}

	if err := cfg.ValidateReport(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, err := buildFacts(ctx)
	if err != nil {
		return err
	}

	warnUnknown("country", cfg.Filters.Countries, res.Table.Countries())
	warnUnknown("category", cfg.Filters.Categories, res.Table.Categories())

	pred, err := engine.ResolvePredicate(res.Table,
		cfg.Filters.From, cfg.Filters.To, cfg.Filters.Countries, cfg.Filters.Categories)
	if err != nil {
		return err
	}

	bundle := engine.Recompute(res.Table, pred, engine.Options{
		TopProducts:      cfg.Report.TopProducts,
		TopChartProducts: cfg.Report.TopChartProducts,
		TopCities:        cfg.Report.TopCities,
	})
	if bundle.Empty {
		logging.Warn().
			Str("from", bundle.Filters.From).
			Str("to", bundle.Filters.To).
			Msg("Filter matched no rows")
	}

	logging.Debug().
		Int("rows", bundle.RowCount).
		Str("format", cfg.Report.Format).
		Msg("Rendering report")

	rep := &report.Report{
		Source:            res.Source,
		SkippedRows:       len(res.Skipped),
		DuplicateProducts: res.DuplicateProducts,
		Dashboard:         bundle,
	}
	if err := report.Write(rep, cfg.Report.Format, cfg.Report.Output, cmd.OutOrStdout()); err != nil {
		return err
	}

	if cfg.Report.Output != "" {
		logging.Info().
			Str("output", cfg.Report.Output).
			Msg("Report written")
	}
	return nil
}

// warnUnknown logs filter values that do not occur in the data. They are
// kept in the predicate and simply match nothing.
func warnUnknown(kind string, selected, available []string) {
	known := make(map[string]bool, len(available))
	for _, v := range available {
		known[v] = true
	}
	for _, v := range selected {
		if !known[v] {
			logging.Warn().
				Str(kind, v).
				Msg("Filter value not present in data")
		}
	}
}
