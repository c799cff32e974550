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
	"io"

	"gopkg.in/yaml.v3"
)

func init() {
	Register(&yamlRenderer{})
}

type yamlRenderer struct{}

func (yamlRenderer) Name() string        { return "yaml" }
func (yamlRenderer) Description() string { return "YAML document" }
func (yamlRenderer) Binary() bool        { return false }

func (yamlRenderer) Render(w io.Writer, rep *Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(rep); err != nil {
		return err
	}
	return enc.Close()
}
