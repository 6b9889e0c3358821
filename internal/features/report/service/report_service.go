package service

import (
	"context"
	"errors"
	"fmt"

	"ctrc-insights/internal/core/logger"
	"ctrc-insights/internal/features/report/domain"
	"ctrc-insights/internal/features/report/ports"

	"go.uber.org/zap"
)

// ErrDatasetNotFound is returned when the requested dataset id is unknown.
var ErrDatasetNotFound = errors.New("dataset not found")

// ReportServiceImpl implements ports.ReportService on top of the dataset
// store and the deadline reference repository.
type ReportServiceImpl struct {
	store     ports.DatasetStore
	deadlines ports.DeadlineRepository
}

// NewReportService creates a new ReportServiceImpl.
func NewReportService(store ports.DatasetStore, deadlines ports.DeadlineRepository) *ReportServiceImpl {
	return &ReportServiceImpl{
		store:     store,
		deadlines: deadlines,
	}
}

// UnitMetrics computes the per-unit aggregate rows for a stored dataset.
func (s *ReportServiceImpl) UnitMetrics(ctx context.Context, datasetID string, sel domain.FilterSelection) ([]domain.AggregateRow, error) {
	d, err := s.Dataset(ctx, datasetID)
	if err != nil {
		return nil, err
	}

	rows, err := domain.ComputeUnitMetrics(d, sel, s.lookup(ctx))
	if err != nil {
		return nil, fmt.Errorf("service: failed to compute unit metrics: %w", err)
	}
	return rows, nil
}

// Groups computes and orders the drill-down groups for one unit.
func (s *ReportServiceImpl) Groups(ctx context.Context, datasetID, unit string, sel domain.FilterSelection, field domain.SortField, dir domain.SortDirection) ([]domain.GroupedRecord, error) {
	d, err := s.Dataset(ctx, datasetID)
	if err != nil {
		return nil, err
	}

	groups, err := domain.ComputeGroups(d, unit, sel, s.lookup(ctx))
	if err != nil {
		return nil, fmt.Errorf("service: failed to compute groups: %w", err)
	}
	domain.SortGroups(groups, field, dir)
	return groups, nil
}

// Dataset returns a stored dataset or ErrDatasetNotFound.
func (s *ReportServiceImpl) Dataset(ctx context.Context, id string) (*domain.Dataset, error) {
	d, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load dataset: %w", err)
	}
	if d == nil {
		return nil, ErrDatasetNotFound
	}
	return d, nil
}

// Datasets lists the stored datasets.
func (s *ReportServiceImpl) Datasets(ctx context.Context) ([]*domain.Dataset, error) {
	list, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list datasets: %w", err)
	}
	return list, nil
}

// DeleteDataset removes a dataset from the store.
func (s *ReportServiceImpl) DeleteDataset(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("service: failed to delete dataset: %w", err)
	}
	return nil
}

// lookup adapts the deadline repository to the engine's lookup function.
// Results are memoized for the lifetime of the request: the engine evaluates
// the lookup per record (and more than once per record in groups mode), so
// the repository is hit at most once per distinct city/unit pair no matter
// how many records a dataset holds. Repository failures read as misses: a
// record can lose its late flag but a transient Redis error never aborts an
// aggregate. Misses and failures are memoized too, capping the round trips.
func (s *ReportServiceImpl) lookup(ctx context.Context) domain.DeadlineLookup {
	type result struct {
		days  int
		found bool
	}
	memo := make(map[string]result)

	return func(city, unit string) (int, bool) {
		key := domain.Normalize(city) + "\x00" + domain.Normalize(unit)
		if r, ok := memo[key]; ok {
			return r.days, r.found
		}

		days, found, err := s.deadlines.ExpectedDays(ctx, city, unit)
		if err != nil {
			logger.Get().Warn("Deadline lookup failed",
				zap.String("city", city),
				zap.String("unit", unit),
				zap.Error(err),
			)
			days, found = 0, false
		}
		memo[key] = result{days: days, found: found}
		return days, found
	}
}
