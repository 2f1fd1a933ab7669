// Package output handles formatting CLI output as table, JSON, or compact.
package output

import (
	"os"

	"github.com/twiced-technology-gmbh/zenta/internal/config"
)

// Format represents an output format.
type Format int

const (
	// FormatAuto uses the default format (table).
	FormatAuto Format = iota
	// FormatJSON outputs JSON.
	FormatJSON
	// FormatTable outputs a human-readable table.
	FormatTable
	// FormatCompact outputs one-line-per-record compact format.
	FormatCompact
)

// Detect returns the format selected by flags, then by ZENTA_OUTPUT, then by
// the configured default. Table is used when nothing is set.
func Detect(jsonFlag, tableFlag, compactFlag bool, configured string) Format {
	if jsonFlag {
		return FormatJSON
	}
	if compactFlag {
		return FormatCompact
	}
	if tableFlag {
		return FormatTable
	}
	if f, ok := parse(os.Getenv(config.EnvOutput)); ok {
		return f
	}
	if f, ok := parse(configured); ok {
		return f
	}
	return FormatTable
}

func parse(s string) (Format, bool) {
	switch s {
	case "json":
		return FormatJSON, true
	case "compact", "oneline":
		return FormatCompact, true
	case "table":
		return FormatTable, true
	}
	return FormatAuto, false
}
