package journal

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
)

const (
	ExportJSON = "json"
	ExportCSV  = "csv"
)

var ErrUnsupportedFormat = errors.New("unsupported export format")

var exportCSVHeader = []string{"id", "date", "sentiment", "summary", "advice", "text"}

// Export writes every stored entry to w, most recent first
func (s *Service) Export(ctx context.Context, w io.Writer, format string) error {
	entries := s.store.LoadAll(ctx)

	switch format {
	case "", ExportJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(entries); err != nil {
			return fmt.Errorf("failed to write json export: %w", err)
		}
		return nil
	case ExportCSV:
		cw := csv.NewWriter(w)
		if err := cw.Write(exportCSVHeader); err != nil {
			return fmt.Errorf("failed to write csv header: %w", err)
		}
		for _, e := range entries {
			record := []string{
				strconv.FormatInt(e.ID, 10),
				e.Date,
				e.Sentiment.String(),
				e.Summary,
				e.Advice,
				e.Text,
			}
			if err := cw.Write(record); err != nil {
				return fmt.Errorf("failed to write csv record: %w", err)
			}
		}
		cw.Flush()
		return cw.Error()
	default:
		return fmt.Errorf("%w %q", ErrUnsupportedFormat, format)
	}
}
