//-------------------------------------------------------------------------
//
// pgEdge Sales Dashboard
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package cli implements the command-line interface for pgedge-salesdash.
package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/pgEdge/pgedge-salesdash/internal/config"
	"github.com/pgEdge/pgedge-salesdash/internal/logging"
	"github.com/pgEdge/pgedge-salesdash/internal/report"
	"github.com/pgEdge/pgedge-salesdash/pkg/version"
)

var (
	// Global flags
	cfgFile    string
	sourceType string
	sourcePath string
	connection string
	logLevel   string

	// Global config
	cfg *config.Config

	rootCmd = &cobra.Command{
		Use:   "pgedge-salesdash",
		Short: "Sales analytics dashboard for order, product and customer exports",
		Long: `pgedge-salesdash loads customer, order, sales and product datasets
from CSV files, an Excel workbook, SQLite or PostgreSQL, joins them into a
single fact table and reports sales, profit, shipping and customer metrics
for any date range, set of countries and set of categories.

It can also generate realistic synthetic datasets and seed a PostgreSQL
database with them.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default: ./pgedge-salesdash.yaml)")
	rootCmd.PersistentFlags().StringVar(&sourceType, "source", "",
		"dataset source ("+strings.Join(config.SourceTypes, ", ")+")")
	rootCmd.PersistentFlags().StringVar(&sourcePath, "path", "",
		"dataset directory (csv) or file (xlsx, sqlite)")
	rootCmd.PersistentFlags().StringVar(&connection, "connection", "",
		"PostgreSQL connection string")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"log level (debug, info, warn, error)")

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(optionsCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(formatsCmd)
}

func initConfig() error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return err
	}

	// Override with CLI flags
	if sourceType != "" {
		cfg.Source.Type = sourceType
	}
	if sourcePath != "" {
		cfg.Source.Path = sourcePath
	}
	if connection != "" {
		cfg.Source.Connection = connection
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	// Reinitialize logger with config
	logging.Init(logging.Config{
		Level:  cfg.LogLevel,
		Pretty: true,
	})

	return nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(version.Info())
	},
}

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List dataset sources and report formats",
	Long: `List the dataset sources that can be read with --source and the
report formats that can be written with 'report --format'.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println("Dataset sources:")
		cmd.Println()
		cmd.Println("  csv      - directory with customers.csv, orders.csv, sales.csv, products.csv")
		cmd.Println("  xlsx     - workbook with sheets customers, orders, sales, products")
		cmd.Println("  sqlite   - database file with tables customers, orders, sales, products")
		cmd.Println("  postgres - tables in the salesdash schema (see 'seed')")
		cmd.Println()
		cmd.Println("Report formats:")
		cmd.Println()
		for _, name := range report.List() {
			r, _ := report.Get(name)
			cmd.Printf("  %-8s - %s\n", name, r.Description())
		}
	},
}
