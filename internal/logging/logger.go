//-------------------------------------------------------------------------
//
// pgEdge Sales Dashboard
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package logging provides structured logging for pgedge-salesdash.
//
// Logs always go to stderr (or the configured writer) so that reports
// written to stdout stay machine readable.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the global logger instance.
var Logger zerolog.Logger

// Config holds logging configuration.
type Config struct {
	Level      string
	Pretty     bool
	TimeFormat string

	// Output defaults to os.Stderr.
	Output io.Writer
}

// DefaultConfig returns default logging configuration.
func DefaultConfig() Config {
	return Config{
		Level:      "info",
		Pretty:     true,
		TimeFormat: time.RFC3339,
	}
}

// Init initializes the global logger with the given configuration.
func Init(cfg Config) {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	timeFormat := cfg.TimeFormat
	if timeFormat == "" {
		timeFormat = time.RFC3339
	}

	var output io.Writer = out
	if cfg.Pretty {
		output = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: timeFormat,
		}
	}

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}

	Logger = zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// Debug returns a debug level event.
func Debug() *zerolog.Event {
	return Logger.Debug()
}

// Info returns an info level event.
func Info() *zerolog.Event {
	return Logger.Info()
}

// Warn returns a warning level event.
func Warn() *zerolog.Event {
	return Logger.Warn()
}

// Error returns an error level event.
func Error() *zerolog.Event {
	return Logger.Error()
}

// Fatal returns a fatal level event.
func Fatal() *zerolog.Event {
	return Logger.Fatal()
}

// Field names shared by the dataset pipeline log lines.
const (
	FieldSource  = "source"
	FieldTable   = "table"
	FieldRows    = "rows"
	FieldSkipped = "skipped"
)

// Source returns a child of the global logger that tags every line with
// the dataset source name.
func Source(name string) zerolog.Logger {
	return Logger.With().Str(FieldSource, name).Logger()
}

// TableRows logs msg at info level with the table name and its row count.
func TableRows(l zerolog.Logger, table string, rows int64, msg string) {
	l.Info().Str(FieldTable, table).Int64(FieldRows, rows).Msg(msg)
}

// SkippedRows logs recoverable row errors: one warning carrying the count
// and the first error, then every error at debug level. An empty errs logs
// nothing.
func SkippedRows(l zerolog.Logger, errs []error) {
	if len(errs) == 0 {
		return
	}
	l.Warn().
		Int(FieldSkipped, len(errs)).
		Err(errs[0]).
		Msg("Skipped malformed rows")
	for _, e := range errs {
		l.Debug().Err(e).Msg("Skipped row")
	}
}

// Disable silences all logging. Tests use it to keep output clean.
func Disable() {
	Logger = zerolog.Nop()
}

func init() {
	Init(DefaultConfig())
}
