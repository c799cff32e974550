//-------------------------------------------------------------------------
//
// pgEdge Sales Dashboard
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package engine

import (
	"math"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

// FormatCurrency renders v in dollars with thousands separators, e.g.
// "$1,234" or "$12.34". Zero renders as "$0".
func FormatCurrency(v float64, decimals int) string {
	s := groupThousands(v, decimals)
	if v < 0 && !roundsToZero(v, decimals) {
		return "-$" + s
	}
	return "$" + s
}

// FormatPercent renders a percentage value, e.g. 12.345 as "12.35%".
func FormatPercent(v float64) string {
	s := groupThousands(v, 2)
	if v < 0 && !roundsToZero(v, 2) {
		s = "-" + s
	}
	return s + "%"
}

// FormatShare renders a proportion in [0,1] as a percentage with one
// decimal, e.g. 0.1234 as "12.3%".
func FormatShare(p float64) string {
	return strconv.FormatFloat(p*100, 'f', 1, 64) + "%"
}

// maxDecimals is the deepest precision humanize rounds to.
const maxDecimals = 9

// groupThousands formats the magnitude of v, e.g. "#,###.##" for two
// decimals. The sign is left to the caller.
func groupThousands(v float64, decimals int) string {
	decimals = min(max(decimals, 0), maxDecimals)
	return humanize.FormatFloat("#,###."+strings.Repeat("#", decimals), math.Abs(v))
}

func roundsToZero(v float64, decimals int) bool {
	scale := math.Pow10(min(max(decimals, 0), maxDecimals))
	return math.Round(math.Abs(v)*scale) == 0
}
