package ports

import (
	"context"
	"io"

	"ctrc-insights/internal/features/report/domain"
)

// Decoder turns one spreadsheet format into tabular data.
type Decoder interface {
	// Supports reports whether the decoder handles the file extension.
	// Extensions are lowercase and include the leading dot.
	Supports(ext string) bool
	// Decode reads the header row and the data rows. Every returned row has
	// exactly len(columns) cells; short rows are padded, long rows truncated.
	Decode(ctx context.Context, r io.Reader) (columns []string, rows [][]string, err error)
}

// IngestService defines the primary port for spreadsheet uploads.
type IngestService interface {
	// Ingest decodes the upload, validates its structure, computes the
	// dataset metadata and stores the result.
	Ingest(ctx context.Context, filename string, r io.Reader) (*domain.Dataset, error)
}
