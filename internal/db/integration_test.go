//-------------------------------------------------------------------------
//
// pgEdge Sales Dashboard
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

//go:build integration
// +build integration

// Integration tests for the PostgreSQL source.
// Run with: go test -tags=integration ./internal/db/...
// Requires PostgreSQL to be available.
// Set SALESDASH_TEST_CONN environment variable to override connection string.

package db_test

import (
	"context"
	"reflect"
	"testing"

	"github.com/pgEdge/pgedge-salesdash/internal/db"
	"github.com/pgEdge/pgedge-salesdash/internal/facts"
	"github.com/pgEdge/pgedge-salesdash/internal/logging"
	"github.com/pgEdge/pgedge-salesdash/internal/testutil"
)

func init() {
	logging.Disable()
}

func TestSeedAndLoad(t *testing.T) {
	baseConnStr := testutil.SkipIfNoPostgres(t)

	testConnStr := testutil.CreateTestDB(t, baseConnStr, "seed")
	dbName := testutil.GetDBNameFromConnStr(testConnStr)

	cleanup := testutil.NewTestCleanup(t, baseConnStr, dbName)
	t.Cleanup(cleanup.Cleanup)

	ctx := context.Background()
	pool, err := db.Connect(ctx, testConnStr)
	if err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	cleanup.SetPool(pool)

	sample := testutil.SampleTables()

	t.Run("CreateSchema", func(t *testing.T) {
		if err := db.CreateSchema(ctx, pool); err != nil {
			t.Fatalf("CreateSchema failed: %v", err)
		}
		// Idempotent
		if err := db.CreateSchema(ctx, pool); err != nil {
			t.Fatalf("second CreateSchema failed: %v", err)
		}
		exists, err := db.SchemaExists(ctx, pool)
		if err != nil || !exists {
			t.Fatalf("expected schema to exist, got %v (%v)", exists, err)
		}
	})

	t.Run("Seed", func(t *testing.T) {
		if err := db.Seed(ctx, pool, sample); err != nil {
			t.Fatalf("Seed failed: %v", err)
		}
	})

	t.Run("Load", func(t *testing.T) {
		got, err := db.NewPostgresLoader(pool).Load(ctx)
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if !reflect.DeepEqual(got.Customers, sample.Customers) {
			t.Errorf("customers: expected %v, got %v", sample.Customers, got.Customers)
		}
		if !reflect.DeepEqual(got.Products, sample.Products) {
			t.Errorf("products: expected %v, got %v", sample.Products, got.Products)
		}
		if !reflect.DeepEqual(got.Orders, sample.Orders) {
			t.Errorf("orders: expected %v, got %v", sample.Orders, got.Orders)
		}
		if !reflect.DeepEqual(got.Sales, sample.Sales) {
			t.Errorf("sales: expected %v, got %v", sample.Sales, got.Sales)
		}
	})

	t.Run("Build", func(t *testing.T) {
		res, err := facts.Build(ctx, db.NewPostgresLoader(pool), facts.Options{})
		if err != nil {
			t.Fatalf("Build failed: %v", err)
		}
		if res.Table.Len() != 4 {
			t.Errorf("expected 4 fact rows, got %d", res.Table.Len())
		}
	})

	t.Run("Metadata", func(t *testing.T) {
		if err := db.SaveMetadata(ctx, pool, 42, sample.Counts()); err != nil {
			t.Fatalf("SaveMetadata failed: %v", err)
		}
		exists, err := db.MetadataExists(ctx, pool)
		if err != nil || !exists {
			t.Fatalf("expected metadata table, got %v (%v)", exists, err)
		}
		seed, err := db.GetMetadataValue(ctx, pool, "seed")
		if err != nil || seed != "42" {
			t.Errorf("expected seed 42, got %q (%v)", seed, err)
		}
		all, err := db.GetAllMetadata(ctx, pool)
		if err != nil {
			t.Fatalf("GetAllMetadata failed: %v", err)
		}
		if all["rows_sales"] != "7" {
			t.Errorf("expected rows_sales 7, got %q", all["rows_sales"])
		}
	})

	t.Run("Drop", func(t *testing.T) {
		if err := db.DropSchema(ctx, pool); err != nil {
			t.Fatalf("DropSchema failed: %v", err)
		}
		if err := db.DropMetadata(ctx, pool); err != nil {
			t.Fatalf("DropMetadata failed: %v", err)
		}
		exists, err := db.SchemaExists(ctx, pool)
		if err != nil || exists {
			t.Errorf("expected schema to be gone, got %v (%v)", exists, err)
		}
	})
}
