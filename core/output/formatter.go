// Package output renders pricing reports for humans and machines.
package output

import (
	"io"

	"ocpi-cost/core/ocpi"
	"ocpi-cost/core/pricer"
)

// Format represents an output format type.
type Format string

const (
	// FormatTable is a human-readable table.
	FormatTable Format = "table"

	// FormatJSON is machine-readable JSON.
	FormatJSON Format = "json"
)

// ParseFormat validates a format flag value.
func ParseFormat(s string) (Format, bool) {
	switch Format(s) {
	case FormatTable, FormatJSON:
		return Format(s), true
	case "":
		return FormatTable, true
	default:
		return "", false
	}
}

// Result is everything a formatter may render for one pricing run.
type Result struct {
	// Report is the computed breakdown.
	Report *pricer.Report

	// Cdr is the priced CDR, for reported-total comparisons.
	Cdr *ocpi.Cdr

	// CdrName names the CDR input, for display.
	CdrName string

	// TariffName names the tariff input, for display.
	TariffName string

	// Diff compares computed and reported totals; only set by validate.
	Diff *ValidationDiff
}

// Formatter produces output in a specific format.
type Formatter interface {
	// Format returns the format type.
	Format() Format

	// Render writes the result.
	Render(w io.Writer, result *Result) error
}

// New returns the formatter for a format.
func New(format Format, noColor bool) Formatter {
	switch format {
	case FormatJSON:
		return &jsonFormatter{}
	default:
		return &tableFormatter{noColor: noColor}
	}
}
