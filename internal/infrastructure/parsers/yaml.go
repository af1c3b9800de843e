package parsers

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// YAMLParser parses entries from a YAML sequence.
type YAMLParser struct{}

// Parse reads a YAML list of entries. Each entry's LineNum is the line its
// mapping starts on.
func (p *YAMLParser) Parse(r io.Reader) ([]RawEntry, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return []RawEntry{}, nil
		}
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}

	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return []RawEntry{}, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("parsing YAML: line %d: expected a list of entries", root.Line)
	}

	entries := make([]RawEntry, 0, len(root.Content))
	for _, item := range root.Content {
		var entry RawEntry
		if err := item.Decode(&entry); err != nil {
			return nil, fmt.Errorf("parsing YAML: line %d: %w", item.Line, err)
		}
		entry.LineNum = item.Line
		entries = append(entries, entry)
	}

	return entries, nil
}
