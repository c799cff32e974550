//-------------------------------------------------------------------------
//
// pgEdge Sales Dashboard
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package config handles configuration management for pgedge-salesdash.
// Configuration is loaded from config files and CLI flags (no environment variables).
// CLI flags take precedence over config file values.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Source types.
const (
	SourceCSV      = "csv"
	SourceXLSX     = "xlsx"
	SourceSQLite   = "sqlite"
	SourcePostgres = "postgres"
)

// Report formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatXLSX = "xlsx"
)

// SourceTypes lists the supported dataset sources.
var SourceTypes = []string{SourceCSV, SourceXLSX, SourceSQLite, SourcePostgres}

// ReportFormats lists the supported report formats.
var ReportFormats = []string{FormatText, FormatJSON, FormatYAML, FormatXLSX}

const dateLayout = "2006-01-02"

// Config holds all configuration for pgedge-salesdash.
type Config struct {
	// LogLevel controls logging verbosity (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level"`

	// Source describes where the four datasets are read from.
	Source SourceConfig `mapstructure:"source"`

	// Report holds configuration for the report subcommand.
	Report ReportConfig `mapstructure:"report"`

	// Filters is the default dashboard filter.
	Filters FilterConfig `mapstructure:"filters"`

	// Generate holds configuration for the generate and seed subcommands.
	Generate GenerateConfig `mapstructure:"generate"`
}

// SourceConfig selects and locates the datasets.
type SourceConfig struct {
	// Type is one of csv, xlsx, sqlite or postgres.
	Type string `mapstructure:"type"`

	// Path is a directory for csv and a file for xlsx and sqlite.
	Path string `mapstructure:"path"`

	// Connection is the PostgreSQL connection string.
	Connection string `mapstructure:"connection"`

	// MaxFactRows caps the joined fact table (0 = unlimited).
	MaxFactRows int `mapstructure:"max_fact_rows"`
}

// ReportConfig holds configuration for report rendering.
type ReportConfig struct {
	// Format is one of text, json, yaml or xlsx.
	Format string `mapstructure:"format"`

	// Output is the destination file. Empty means stdout.
	Output string `mapstructure:"output"`

	TopProducts      int `mapstructure:"top_products"`
	TopChartProducts int `mapstructure:"top_chart_products"`
	TopCities        int `mapstructure:"top_cities"`
}

// FilterConfig is the default predicate. Empty dates fall back to the
// bounds of the data.
type FilterConfig struct {
	From       string   `mapstructure:"from"`
	To         string   `mapstructure:"to"`
	Countries  []string `mapstructure:"countries"`
	Categories []string `mapstructure:"categories"`
}

// GenerateConfig sizes the synthetic dataset.
type GenerateConfig struct {
	Customers        int `mapstructure:"customers"`
	Products         int `mapstructure:"products"`
	Orders           int `mapstructure:"orders"`
	MaxLinesPerOrder int `mapstructure:"max_lines_per_order"`

	// DuplicateProductRate is the fraction of products written twice.
	DuplicateProductRate float64 `mapstructure:"duplicate_product_rate"`

	// BadDateRate is the fraction of orders given an unparseable date.
	BadDateRate float64 `mapstructure:"bad_date_rate"`

	// Start and End bound the order dates (YYYY-MM-DD).
	Start string `mapstructure:"start"`
	End   string `mapstructure:"end"`

	// Seed makes generation reproducible (0 = random).
	Seed int64 `mapstructure:"seed"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Source: SourceConfig{
			Type: SourceCSV,
			Path: "./data",
		},
		Report: ReportConfig{
			Format:           FormatText,
			TopProducts:      5,
			TopChartProducts: 10,
			TopCities:        10,
		},
		Generate: GenerateConfig{
			Customers:            500,
			Products:             200,
			Orders:               2000,
			MaxLinesPerOrder:     4,
			DuplicateProductRate: 0.05,
			Start:                "2023-01-01",
			End:                  "2024-12-31",
		},
	}
}

// Load reads configuration from config files.
// Config file locations (in order of precedence):
// 1. Path specified by configFile parameter
// 2. ./pgedge-salesdash.yaml
// 3. ~/.config/pgedge-salesdash/config.yaml
func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("pgedge-salesdash")
	v.SetConfigType("yaml")

	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "pgedge-salesdash"))
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	}

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// Validate checks that the dataset source is usable.
func (c *Config) Validate() error {
	switch c.Source.Type {
	case SourceCSV, SourceXLSX, SourceSQLite:
		if c.Source.Path == "" {
			return fmt.Errorf("source path is required for %s sources", c.Source.Type)
		}
	case SourcePostgres:
		if c.Source.Connection == "" {
			return fmt.Errorf("connection string is required for postgres sources")
		}
	case "":
		return fmt.Errorf("source type is required")
	default:
		return fmt.Errorf("unknown source type '%s'", c.Source.Type)
	}
	if c.Source.MaxFactRows < 0 {
		return fmt.Errorf("max_fact_rows must be non-negative")
	}
	return nil
}

// ValidateReport checks configuration required for the report command.
func (c *Config) ValidateReport() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if !contains(ReportFormats, c.Report.Format) {
		return fmt.Errorf("unknown report format '%s'", c.Report.Format)
	}
	if c.Report.Format == FormatXLSX && c.Report.Output == "" {
		return fmt.Errorf("an output file is required for xlsx reports")
	}
	if c.Report.TopProducts < 1 || c.Report.TopChartProducts < 1 || c.Report.TopCities < 1 {
		return fmt.Errorf("top_products, top_chart_products and top_cities must be at least 1")
	}
	return c.validateFilters()
}

func (c *Config) validateFilters() error {
	var from, to time.Time
	var err error
	if c.Filters.From != "" {
		if from, err = time.Parse(dateLayout, c.Filters.From); err != nil {
			return fmt.Errorf("filters.from must be YYYY-MM-DD: %w", err)
		}
	}
	if c.Filters.To != "" {
		if to, err = time.Parse(dateLayout, c.Filters.To); err != nil {
			return fmt.Errorf("filters.to must be YYYY-MM-DD: %w", err)
		}
	}
	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return fmt.Errorf("filters.from must not be after filters.to")
	}
	return nil
}

// ValidateGenerate checks configuration required for the generate and
// seed commands. It does not look at the source section.
func (c *Config) ValidateGenerate() error {
	g := c.Generate
	if g.Customers < 1 || g.Products < 1 || g.Orders < 1 {
		return fmt.Errorf("customers, products and orders must be at least 1")
	}
	if g.MaxLinesPerOrder < 1 {
		return fmt.Errorf("max_lines_per_order must be at least 1")
	}
	if g.DuplicateProductRate < 0 || g.DuplicateProductRate > 1 {
		return fmt.Errorf("duplicate_product_rate must be between 0 and 1")
	}
	if g.BadDateRate < 0 || g.BadDateRate > 1 {
		return fmt.Errorf("bad_date_rate must be between 0 and 1")
	}
	start, end, err := g.DateRange()
	if err != nil {
		return err
	}
	if end.Before(start) {
		return fmt.Errorf("generate.end must not be before generate.start")
	}
	return nil
}

// ValidateSeed checks configuration required for the seed command.
func (c *Config) ValidateSeed() error {
	if c.Source.Connection == "" {
		return fmt.Errorf("connection string is required")
	}
	return c.ValidateGenerate()
}

// DateRange parses Start and End.
func (g GenerateConfig) DateRange() (start, end time.Time, err error) {
	if start, err = time.Parse(dateLayout, g.Start); err != nil {
		return start, end, fmt.Errorf("generate.start must be YYYY-MM-DD: %w", err)
	}
	if end, err = time.Parse(dateLayout, g.End); err != nil {
		return start, end, fmt.Errorf("generate.end must be YYYY-MM-DD: %w", err)
	}
	return start, end, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
