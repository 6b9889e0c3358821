package adapters

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// XLSXDecoder implements ports.Decoder for Excel workbooks via excelize.
// Only the first sheet is read; the rest of the workbook is ignored.
type XLSXDecoder struct{}

// NewXLSXDecoder creates a new XLSXDecoder.
func NewXLSXDecoder() *XLSXDecoder {
	return &XLSXDecoder{}
}

// Supports implements Decoder.
func (d *XLSXDecoder) Supports(ext string) bool {
	return ext == ".xlsx"
}

// Decode implements Decoder.
func (d *XLSXDecoder) Decode(ctx context.Context, r io.Reader) ([]string, [][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("malformed xlsx content: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, errors.New("workbook has no sheets")
	}

	iter, err := f.Rows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	defer iter.Close()

	var columns []string
	var rows [][]string
	for iter.Next() {
		cells, err := iter.Columns()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read row: %w", err)
		}
		if columns == nil {
			columns = cells
			continue
		}
		rows = append(rows, normalizeWidth(cells, len(columns)))
	}
	if err := iter.Error(); err != nil {
		return nil, nil, fmt.Errorf("failed to iterate sheet %s: %w", sheets[0], err)
	}
	return columns, rows, nil
}
