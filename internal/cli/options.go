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
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pgEdge/pgedge-salesdash/internal/engine"
)

var optionsJSON bool

var optionsCmd = &cobra.Command{
	Use:   "options",
	Short: "List the filter values available in the data",
	Long: `Print the order date range and the distinct countries and product
categories of the joined fact table. These are the values accepted by
'report --from/--to/--country/--category'.`,
	RunE: runOptions,
}

func init() {
	optionsCmd.Flags().BoolVar(&optionsJSON, "json", false,
		"print the options as JSON")
}

func runOptions(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	res, err := buildFacts(context.Background())
	if err != nil {
		return err
	}

	opts := engine.AvailableOptions(res.Table)
	if optionsJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(opts)
	}
	return printOptions(cmd.OutOrStdout(), opts)
}

func printOptions(w io.Writer, opts engine.FilterOptions) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if opts.MinDate == "" {
		fmt.Fprintln(tw, "Dates:\tnone")
	} else {
		fmt.Fprintf(tw, "Dates:\t%s to %s\n", opts.MinDate, opts.MaxDate)
	}
	fmt.Fprintf(tw, "Countries (%d):\t%s\n", len(opts.Countries), strings.Join(opts.Countries, ", "))
	fmt.Fprintf(tw, "Categories (%d):\t%s\n", len(opts.Categories), strings.Join(opts.Categories, ", "))
	return tw.Flush()
}
