package parsers

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ListSeparator separates items inside a list cell (tags, values, templates).
const ListSeparator = ";"

// CSVColumns are the columns CSVParser understands, in export order.
var CSVColumns = []string{
	"category", "name", "tags", "values", "min", "max",
	"templates", "prerequisite", "prereq_text", "book", "note",
}

// CSVParser parses entries from CSV format.
type CSVParser struct{}

// Parse reads CSV from the reader and returns parsed entries.
// Required columns: category, name. List cells use ListSeparator.
func (p *CSVParser) Parse(r io.Reader) ([]RawEntry, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	colIndex, err := p.readHeader(reader)
	if err != nil {
		return nil, err
	}

	return p.readRecords(reader, colIndex)
}

// readHeader reads and validates the CSV header row.
func (p *CSVParser) readHeader(reader *csv.Reader) (map[string]int, error) {
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	colIndex := make(map[string]int)
	for i, col := range header {
		colIndex[strings.ToLower(strings.TrimSpace(col))] = i
	}

	requiredCols := []string{"category", "name"}
	for _, col := range requiredCols {
		if _, ok := colIndex[col]; !ok {
			return nil, fmt.Errorf("missing required column: %s", col)
		}
	}

	return colIndex, nil
}

// readRecords reads all data rows and converts them to RawEntries.
func (p *CSVParser) readRecords(reader *csv.Reader, colIndex map[string]int) ([]RawEntry, error) {
	var entries []RawEntry
	lineNum := 1 // Header is line 1

	for {
		lineNum++
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}

		entry, err := p.parseRecord(record, colIndex, lineNum)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// parseRecord converts a CSV record to a RawEntry.
func (p *CSVParser) parseRecord(record []string, colIndex map[string]int, lineNum int) (RawEntry, error) {
	entry := RawEntry{
		Category:     getColumn(record, colIndex, "category"),
		Name:         getColumn(record, colIndex, "name"),
		Tags:         splitList(getColumn(record, colIndex, "tags")),
		Templates:    splitList(getColumn(record, colIndex, "templates")),
		Prerequisite: getColumn(record, colIndex, "prerequisite"),
		PrereqText:   getColumn(record, colIndex, "prereq_text"),
		Book:         getColumn(record, colIndex, "book"),
		Note:         getColumn(record, colIndex, "note"),
		LineNum:      lineNum,
	}

	for _, s := range splitList(getColumn(record, colIndex, "values")) {
		v, err := strconv.Atoi(s)
		if err != nil {
			return RawEntry{}, fmt.Errorf("line %d: invalid value %q: %w", lineNum, s, err)
		}
		entry.Values = append(entry.Values, v)
	}

	var err error
	if entry.Min, err = parseOptionalInt(getColumn(record, colIndex, "min")); err != nil {
		return RawEntry{}, fmt.Errorf("line %d: invalid min: %w", lineNum, err)
	}
	if entry.Max, err = parseOptionalInt(getColumn(record, colIndex, "max")); err != nil {
		return RawEntry{}, fmt.Errorf("line %d: invalid max: %w", lineNum, err)
	}

	return entry, nil
}

// getColumn safely retrieves a trimmed column value from a record.
func getColumn(record []string, colIndex map[string]int, col string) string {
	if idx, ok := colIndex[col]; ok && idx < len(record) {
		return strings.TrimSpace(record[idx])
	}
	return ""
}

func splitList(cell string) []string {
	if cell == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(cell, ListSeparator) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseOptionalInt(s string) (*int, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
