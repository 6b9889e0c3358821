package adapters

import (
	"context"
	"sort"
	"sync"

	"ctrc-insights/internal/features/report/domain"

	"github.com/google/uuid"
)

// MemoryDatasetStore implements ports.DatasetStore in process memory.
// Datasets live for the lifetime of the process; a new upload of the same
// file simply becomes a new dataset, stored datasets are never merged.
type MemoryDatasetStore struct {
	mu       sync.RWMutex
	datasets map[string]*domain.Dataset
}

// NewMemoryDatasetStore creates an empty in-memory dataset store.
func NewMemoryDatasetStore() *MemoryDatasetStore {
	return &MemoryDatasetStore{
		datasets: make(map[string]*domain.Dataset),
	}
}

// Save stores the dataset, assigning a fresh id when it has none.
func (s *MemoryDatasetStore) Save(ctx context.Context, d *domain.Dataset) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	s.datasets[d.ID] = d
	return nil
}

// Get returns the dataset by id, or (nil, nil) when absent.
func (s *MemoryDatasetStore) Get(ctx context.Context, id string) (*domain.Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.datasets[id], nil
}

// List returns all datasets ordered by name for deterministic output.
func (s *MemoryDatasetStore) List(ctx context.Context) ([]*domain.Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Dataset, 0, len(s.datasets))
	for _, d := range s.datasets {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Delete removes the dataset by id. Deleting an unknown id is a no-op.
func (s *MemoryDatasetStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.datasets, id)
	return nil
}
