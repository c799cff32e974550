//-------------------------------------------------------------------------
//
// pgEdge Sales Dashboard
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package report

import (
	"encoding/json"
	"io"
)

func init() {
	Register(&jsonRenderer{})
}

type jsonRenderer struct{}

func (jsonRenderer) Name() string        { return "json" }
func (jsonRenderer) Description() string { return "indented JSON document" }
func (jsonRenderer) Binary() bool        { return false }

func (jsonRenderer) Render(w io.Writer, rep *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rep)
}
