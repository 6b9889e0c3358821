package ports

import (
	"context"

	"ctrc-insights/internal/features/report/domain"
)

// ReportService defines the primary port for the reporting views.
type ReportService interface {
	// UnitMetrics computes one aggregate row per selected unit, ordered by
	// percentage descending.
	UnitMetrics(ctx context.Context, datasetID string, sel domain.FilterSelection) ([]domain.AggregateRow, error)
	// Groups computes the drill-down groups for one unit and metric.
	Groups(ctx context.Context, datasetID, unit string, sel domain.FilterSelection, field domain.SortField, dir domain.SortDirection) ([]domain.GroupedRecord, error)
	// Dataset returns a stored dataset by id.
	Dataset(ctx context.Context, id string) (*domain.Dataset, error)
	// Datasets lists the stored datasets.
	Datasets(ctx context.Context) ([]*domain.Dataset, error)
	// DeleteDataset removes a dataset.
	DeleteDataset(ctx context.Context, id string) error
}

// DatasetStore defines the secondary port for dataset storage.
// Get returns (nil, nil) when the id is unknown.
type DatasetStore interface {
	Save(ctx context.Context, d *domain.Dataset) error
	Get(ctx context.Context, id string) (*domain.Dataset, error)
	List(ctx context.Context) ([]*domain.Dataset, error)
	Delete(ctx context.Context, id string) error
}

// DeadlineEntry is one row of the delivery-deadline reference table.
type DeadlineEntry struct {
	// City is the delivery city the lead time applies to.
	City string `json:"city"`
	// Unit optionally narrows the lead time to one handling unit.
	Unit string `json:"unit,omitempty"`
	// Days is the contractual lead time in days.
	Days int `json:"days"`
}

// DeadlineRepository defines the secondary port for the reference table of
// expected delivery lead times.
type DeadlineRepository interface {
	// ExpectedDays resolves the lead time for a city, preferring a
	// unit-specific entry. found is false when the city is unknown.
	ExpectedDays(ctx context.Context, city, unit string) (days int, found bool, err error)
	// Load upserts reference entries in bulk.
	Load(ctx context.Context, entries []DeadlineEntry) error
}
