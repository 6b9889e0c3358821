package adapters

import (
	"context"
	"io"
	"strings"
)

// SSWWEBDecoder implements ports.Decoder for the SSWWEB tracking export.
// The format is a semicolon-separated text file with a report banner on the
// first line and data columns shifted one position left relative to the
// canonical export.
type SSWWEBDecoder struct{}

// NewSSWWEBDecoder creates a new SSWWEBDecoder.
func NewSSWWEBDecoder() *SSWWEBDecoder {
	return &SSWWEBDecoder{}
}

// Supports implements Decoder.
func (d *SSWWEBDecoder) Supports(ext string) bool {
	return ext == ".sswweb"
}

// Decode implements Decoder. The banner line is dropped, semicolons become
// commas and one empty cell is prepended to every row so the positional
// fallbacks line up with the canonical export.
func (d *SSWWEBDecoder) Decode(ctx context.Context, r io.Reader) ([]string, [][]string, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, err
	}

	content := string(raw)
	if idx := strings.IndexByte(content, '\n'); idx >= 0 {
		content = content[idx+1:]
	} else {
		// a single banner line carries no data
		content = ""
	}
	content = strings.ReplaceAll(content, ";", ",")

	columns, rows, err := decodeCSV(strings.NewReader(content))
	if err != nil {
		return nil, nil, err
	}
	if columns == nil {
		return nil, nil, nil
	}

	columns = append([]string{""}, columns...)
	for i, row := range rows {
		rows[i] = append([]string{""}, row...)
	}
	return columns, rows, nil
}
