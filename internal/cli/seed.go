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

	"github.com/spf13/cobra"

	"github.com/pgEdge/pgedge-salesdash/internal/config"
	"github.com/pgEdge/pgedge-salesdash/internal/dataset"
	"github.com/pgEdge/pgedge-salesdash/internal/db"
	"github.com/pgEdge/pgedge-salesdash/internal/logging"
)

var (
	seedDropExisting bool
	seedImport       bool
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the PostgreSQL schema and load a dataset into it",
	Long: `Create the salesdash schema in a PostgreSQL database and fill it
with a synthetic dataset, or with the file dataset selected by --source and
--path when --import is given. Afterwards the database can be used with
'report --source postgres'.

Example:
  pgedge-salesdash seed --connection "postgres://..." --orders 20000 --seed 1
  pgedge-salesdash seed --connection "postgres://..." --import --source csv --path ./data`,
	RunE: runSeed,
}

func init() {
	addGenerateFlags(seedCmd)
	seedCmd.Flags().BoolVar(&seedDropExisting, "drop-existing", false,
		"drop existing salesdash tables before loading")
	seedCmd.Flags().BoolVar(&seedImport, "import", false,
		"load the configured csv, xlsx or sqlite source instead of generating data")
}

func runSeed(cmd *cobra.Command, args []string) error {
	applyGenerateFlags(cmd)

	if err := cfg.ValidateSeed(); err != nil {
		return err
	}
	if seedImport {
		if cfg.Source.Type == config.SourcePostgres {
			return fmt.Errorf("--import needs a csv, xlsx or sqlite source")
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.Source.Connection)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	// Refuse to mix datasets
	exists, err := db.SchemaExists(ctx, pool)
	if err != nil {
		return fmt.Errorf("failed to check schema: %w", err)
	}
	if exists && !seedDropExisting {
		seededAt, _ := db.GetMetadataValue(ctx, pool, "seeded_at")
		return fmt.Errorf(
			"database already holds a salesdash dataset (seeded %s); "+
				"use --drop-existing to replace it", orUnknown(seededAt))
	}

	if seedDropExisting {
		logging.Info().Msg("Dropping existing schema")
		if err := db.DropSchema(ctx, pool); err != nil {
			return fmt.Errorf("failed to drop schema: %w", err)
		}
		if err := db.DropMetadata(ctx, pool); err != nil {
			logging.Debug().Err(err).Msg("No metadata table to drop")
		}
	}

	logging.Info().Msg("Creating schema")
	if err := db.CreateSchema(ctx, pool); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	var (
		t    *dataset.Tables
		seed int64
	)
	if seedImport {
		t, err = importTables(ctx)
	} else {
		t, seed, err = generateTables(ctx)
	}
	if err != nil {
		return err
	}

	if err := db.Seed(ctx, pool, t); err != nil {
		return fmt.Errorf("failed to load data: %w", err)
	}

	counts := t.Counts()
	if err := db.SaveMetadata(ctx, pool, seed, counts); err != nil {
		return fmt.Errorf("failed to save metadata: %w", err)
	}

	logging.Info().
		Int("customers", counts[dataset.TableCustomers]).
		Int("products", counts[dataset.TableProducts]).
		Int("orders", counts[dataset.TableOrders]).
		Int("sales", counts[dataset.TableSales]).
		Msg("Database seeding complete")

	return nil
}

// importTables reads the configured file source as is. Rows the decoder
// rejected are not copied.
func importTables(ctx context.Context) (*dataset.Tables, error) {
	loader, release, err := openSource(ctx, cfg.Source)
	if err != nil {
		return nil, err
	}
	defer release()

	logging.Info().Str("source", loader.Name()).Msg("Importing datasets")
	t, err := loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load datasets: %w", err)
	}
	if n := len(t.Issues); n > 0 {
		logging.Warn().Int("skipped", n).Msg("Rows not imported")
	}
	return t, nil
}

func orUnknown(s string) string {
	if s == "" {
		return "at an unknown time"
	}
	return s
}
