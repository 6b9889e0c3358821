package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"ctrc-insights/internal/core/logger"
	ingestports "ctrc-insights/internal/features/ingest/ports"
	"ctrc-insights/internal/features/report/domain"
	reportports "ctrc-insights/internal/features/report/ports"

	"go.uber.org/zap"
)

var (
	// ErrUnsupportedFormat is returned when no decoder handles the extension.
	ErrUnsupportedFormat = errors.New("unsupported file format")
	// ErrEmptyFile is returned when the upload decodes to no data rows.
	ErrEmptyFile = errors.New("file has no data rows")
)

// IngestServiceImpl implements ports.IngestService: it dispatches the upload
// to a decoder by extension, validates the column structure, computes the
// dataset metadata in one pass and stores the result.
type IngestServiceImpl struct {
	store     reportports.DatasetStore
	decoders  []ingestports.Decoder
	batchSize int
}

// NewIngestService creates a new IngestServiceImpl. batchSize controls how
// many rows are scanned between cancellation checks.
func NewIngestService(store reportports.DatasetStore, batchSize int, decoders ...ingestports.Decoder) *IngestServiceImpl {
	if batchSize <= 0 {
		batchSize = 10000
	}
	return &IngestServiceImpl{
		store:     store,
		decoders:  decoders,
		batchSize: batchSize,
	}
}

// Ingest decodes, validates and stores one uploaded spreadsheet.
func (s *IngestServiceImpl) Ingest(ctx context.Context, filename string, r io.Reader) (*domain.Dataset, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	dec := s.decoderFor(ext)
	if dec == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}

	columns, raw, err := dec.Decode(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("service: failed to decode %s: %w", filename, err)
	}
	if len(columns) == 0 || len(raw) == 0 {
		return nil, ErrEmptyFile
	}

	// resolve columns up front: a malformed export fails the upload instead
	// of every later report request
	cols, err := domain.ResolveColumns(columns)
	if err != nil {
		return nil, err
	}

	rows, meta, err := s.buildRecords(ctx, columns, cols, raw)
	if err != nil {
		return nil, err
	}

	d := domain.NewDataset(filename, columns, rows, meta)
	if err := s.store.Save(ctx, d); err != nil {
		return nil, fmt.Errorf("service: failed to store dataset: %w", err)
	}

	logger.Get().Info("Dataset ingested",
		zap.String("dataset_id", d.ID),
		zap.String("name", filename),
		zap.Int("rows", meta.TotalCount),
	)
	return d, nil
}

func (s *IngestServiceImpl) decoderFor(ext string) ingestports.Decoder {
	for _, d := range s.decoders {
		if d.Supports(ext) {
			return d
		}
	}
	return nil
}

// buildRecords turns raw cells into records and accumulates the dataset
// metadata in the same pass. Large exports are processed in batches with a
// cancellation check in between, so an abandoned upload stops early.
func (s *IngestServiceImpl) buildRecords(ctx context.Context, columns []string, cols *domain.ColumnMap, raw [][]string) ([]domain.Record, domain.DatasetMeta, error) {
	meta := domain.DatasetMeta{
		Frequency:  make(map[string]int),
		UnitsByUF:  make(map[string][]string),
		CityByCode: make(map[string]map[string]int),
	}
	unitSets := make(map[string]map[string]struct{})

	rows := make([]domain.Record, 0, len(raw))
	for start := 0; start < len(raw); start += s.batchSize {
		if err := ctx.Err(); err != nil {
			return nil, domain.DatasetMeta{}, fmt.Errorf("service: ingestion aborted: %w", err)
		}

		end := start + s.batchSize
		if end > len(raw) {
			end = len(raw)
		}
		for _, cells := range raw[start:end] {
			rec := make(domain.Record, len(columns))
			for i, col := range columns {
				if col != "" {
					rec[col] = cells[i]
				}
			}
			rows = append(rows, rec)

			code := rec.Get(cols.OccurrenceCode)
			city := rec.Get(cols.DeliveryCity)
			uf := rec.Get(cols.UF)
			unit := rec.Get(cols.Unit)

			if code != "" {
				meta.Frequency[code]++
				if city != "" {
					if meta.CityByCode[code] == nil {
						meta.CityByCode[code] = make(map[string]int)
					}
					meta.CityByCode[code][city]++
				}
			}
			if uf != "" {
				if unitSets[uf] == nil {
					unitSets[uf] = make(map[string]struct{})
				}
				if unit != "" {
					unitSets[uf][unit] = struct{}{}
				}
			}
		}
	}

	meta.TotalCount = len(rows)
	for uf, units := range unitSets {
		meta.UFs = append(meta.UFs, uf)
		for u := range units {
			meta.UnitsByUF[uf] = append(meta.UnitsByUF[uf], u)
		}
		sort.Strings(meta.UnitsByUF[uf])
	}
	sort.Strings(meta.UFs)

	return rows, meta, nil
}
