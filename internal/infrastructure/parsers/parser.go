// Package parsers provides parsers for importing dictionary entries from
// various formats.
package parsers

import (
	"io"
	"path/filepath"
	"strings"
)

// RawEntry represents a dictionary entry parsed from an external source
// before validation.
type RawEntry struct {
	Category     string   `json:"category" yaml:"category"`
	Name         string   `json:"name" yaml:"name"`
	Tags         []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	Values       []int    `json:"values,omitempty" yaml:"values,omitempty"`
	Min          *int     `json:"min,omitempty" yaml:"min,omitempty"` // Pointer to distinguish 0 from unset
	Max          *int     `json:"max,omitempty" yaml:"max,omitempty"`
	Templates    []string `json:"templates,omitempty" yaml:"templates,omitempty"`
	Prerequisite string   `json:"prerequisite,omitempty" yaml:"prerequisite,omitempty"`
	PrereqText   string   `json:"prereq_text,omitempty" yaml:"prereq_text,omitempty"`
	Book         string   `json:"book,omitempty" yaml:"book,omitempty"`
	Note         string   `json:"note,omitempty" yaml:"note,omitempty"`
	LineNum      int      `json:"-" yaml:"-"` // Line number in source file (set by parser)
}

// Parser defines the interface for parsing dictionary entries.
type Parser interface {
	Parse(r io.Reader) ([]RawEntry, error)
}

// Formats lists the supported format names.
var Formats = []string{"json", "yaml", "csv"}

// ForFormat returns the appropriate parser for the given format.
// Supported formats: "json", "yaml" (or "yml"), "csv".
func ForFormat(format string) Parser {
	switch strings.ToLower(format) {
	case "json":
		return &JSONParser{}
	case "yaml", "yml":
		return &YAMLParser{}
	case "csv":
		return &CSVParser{}
	default:
		return nil
	}
}

// ForFile returns the appropriate parser based on file extension.
func ForFile(filename string) Parser {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	if ext == "" {
		return nil
	}
	return ForFormat(ext)
}
