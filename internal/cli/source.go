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

	"github.com/pgEdge/pgedge-salesdash/internal/config"
	"github.com/pgEdge/pgedge-salesdash/internal/dataset"
	"github.com/pgEdge/pgedge-salesdash/internal/db"
	"github.com/pgEdge/pgedge-salesdash/internal/facts"
	"github.com/pgEdge/pgedge-salesdash/internal/logging"
)

// openSource returns the loader for src and a function that releases
// whatever the loader holds open.
func openSource(ctx context.Context, src config.SourceConfig) (dataset.Loader, func(), error) {
	noop := func() {}

	switch src.Type {
	case config.SourceCSV:
		return dataset.NewCSVLoader(src.Path), noop, nil
	case config.SourceXLSX:
		return dataset.NewXLSXLoader(src.Path), noop, nil
	case config.SourceSQLite:
		return dataset.NewSQLiteLoader(src.Path), noop, nil
	case config.SourcePostgres:
		pool, err := db.Connect(ctx, src.Connection)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}

		exists, err := db.SchemaExists(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("failed to check schema: %w", err)
		}
		if !exists {
			pool.Close()
			return nil, nil, fmt.Errorf(
				"database has no %s tables; run 'pgedge-salesdash seed' first", db.SchemaName)
		}

		if meta, err := db.GetAllMetadata(ctx, pool); err == nil {
			logging.Debug().
				Str("version", meta["version"]).
				Str("seeded_at", meta["seeded_at"]).
				Str("seed", meta["seed"]).
				Msg("Dataset metadata")
		}

		return db.NewPostgresLoader(pool), pool.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown source type '%s'", src.Type)
}

// buildFacts loads the configured source and joins it into the fact table.
func buildFacts(ctx context.Context) (*facts.Result, error) {
	loader, release, err := openSource(ctx, cfg.Source)
	if err != nil {
		return nil, err
	}
	defer release()

	return facts.Build(ctx, loader, facts.Options{MaxRows: cfg.Source.MaxFactRows})
}
