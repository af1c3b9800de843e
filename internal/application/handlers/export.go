package handlers

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/thenomain/PyGMCCG/internal/domain/entities"
	"github.com/thenomain/PyGMCCG/internal/domain/services"
	"github.com/thenomain/PyGMCCG/internal/infrastructure/parsers"
)

// ErrNothingToExport is returned when the selection is empty.
var ErrNothingToExport = errors.New("no dictionary entries found to export")

// ExportHandler writes dictionary entries in an importable format.
type ExportHandler struct {
	service *services.DictionaryService
}

// NewExportHandler creates a new export handler.
func NewExportHandler(service *services.DictionaryService) *ExportHandler {
	return &ExportHandler{service: service}
}

// Handle writes the entries of category (or all entries) to w and returns
// how many were written.
func (h *ExportHandler) Handle(ctx context.Context, w io.Writer, category, format string) (int, error) {
	if parsers.ForFormat(format) == nil {
		return 0, fmt.Errorf("invalid format %q, valid formats: %v", format, parsers.Formats)
	}

	list, err := h.service.List(ctx, category)
	if err != nil {
		return 0, fmt.Errorf("listing entries: %w", err)
	}
	if len(list) == 0 {
		return 0, ErrNothingToExport
	}

	raw := make([]parsers.RawEntry, len(list))
	for i := range list {
		raw[i] = toRawEntry(&list[i])
	}

	switch strings.ToLower(format) {
	case "json":
		err = formatJSON(w, raw)
	case "yaml", "yml":
		err = formatYAML(w, raw)
	case "csv":
		err = formatCSV(w, raw)
	}
	if err != nil {
		return 0, fmt.Errorf("formatting output: %w", err)
	}
	return len(raw), nil
}

// toRawEntry converts an entry to the shape the parsers read back.
func toRawEntry(e *entities.DictionaryEntry) parsers.RawEntry {
	return parsers.RawEntry{
		Category:     e.Category,
		Name:         e.Name,
		Tags:         e.Tags,
		Values:       e.Values.Discrete,
		Min:          e.Values.Min,
		Max:          e.Values.Max,
		Templates:    e.Templates,
		Prerequisite: string(e.Prerequisite),
		PrereqText:   e.PrereqText,
		Book:         e.Book,
		Note:         e.Note,
	}
}

func formatJSON(w io.Writer, raw []parsers.RawEntry) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(raw)
}

func formatYAML(w io.Writer, raw []parsers.RawEntry) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(raw); err != nil {
		return err
	}
	return encoder.Close()
}

func formatCSV(w io.Writer, raw []parsers.RawEntry) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(parsers.CSVColumns); err != nil {
		return err
	}

	for i := range raw {
		r := &raw[i]
		values := make([]string, len(r.Values))
		for j, v := range r.Values {
			values[j] = strconv.Itoa(v)
		}
		record := []string{
			r.Category,
			r.Name,
			strings.Join(r.Tags, parsers.ListSeparator),
			strings.Join(values, parsers.ListSeparator),
			optionalInt(r.Min),
			optionalInt(r.Max),
			strings.Join(r.Templates, parsers.ListSeparator),
			r.Prerequisite,
			r.PrereqText,
			r.Book,
			r.Note,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func optionalInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
