package adapters

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
)

// CSVDecoder implements ports.Decoder for plain comma-separated exports.
type CSVDecoder struct{}

// NewCSVDecoder creates a new CSVDecoder.
func NewCSVDecoder() *CSVDecoder {
	return &CSVDecoder{}
}

// Supports implements Decoder.
func (d *CSVDecoder) Supports(ext string) bool {
	return ext == ".csv"
}

// Decode implements Decoder.
func (d *CSVDecoder) Decode(ctx context.Context, r io.Reader) ([]string, [][]string, error) {
	return decodeCSV(r)
}

// decodeCSV parses comma-separated content. Tracking exports are not strictly
// well formed: quotes appear mid-field and rows vary in width, so quoting is
// lazy and every row is normalized to the header length.
func decodeCSV(r io.Reader) ([]string, [][]string, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	all, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("malformed csv content: %w", err)
	}
	if len(all) == 0 {
		return nil, nil, nil
	}

	columns := all[0]
	rows := make([][]string, 0, len(all)-1)
	for _, row := range all[1:] {
		rows = append(rows, normalizeWidth(row, len(columns)))
	}
	return columns, rows, nil
}

// normalizeWidth pads or truncates a row to the header length.
func normalizeWidth(row []string, width int) []string {
	if len(row) == width {
		return row
	}
	out := make([]string, width)
	copy(out, row)
	return out
}
