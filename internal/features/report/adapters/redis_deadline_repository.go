package adapters

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"ctrc-insights/internal/core/cache"
	"ctrc-insights/internal/features/report/domain"
	"ctrc-insights/internal/features/report/ports"
)

const deadlineKeyPrefix = "deadline:"

// RedisDeadlineRepository implements ports.DeadlineRepository on the cache
// port. Keys are normalized so lookups are insensitive to case and accents:
//
//	deadline:<city>          city-wide lead time
//	deadline:<city>:<unit>   unit-specific override
type RedisDeadlineRepository struct {
	cache cache.Cache
}

// NewRedisDeadlineRepository creates a new RedisDeadlineRepository.
func NewRedisDeadlineRepository(c cache.Cache) *RedisDeadlineRepository {
	return &RedisDeadlineRepository{
		cache: c,
	}
}

// ExpectedDays resolves the lead time for a city, preferring the
// unit-specific entry. A missing key is a miss, not an error.
func (r *RedisDeadlineRepository) ExpectedDays(ctx context.Context, city, unit string) (int, bool, error) {
	if unit != "" {
		days, found, err := r.get(ctx, deadlineKey(city, unit))
		if err != nil || found {
			return days, found, err
		}
	}
	return r.get(ctx, deadlineKey(city, ""))
}

// Load upserts reference entries in bulk. Entries without a city or with a
// non-positive lead time are rejected.
func (r *RedisDeadlineRepository) Load(ctx context.Context, entries []ports.DeadlineEntry) error {
	for _, e := range entries {
		if e.City == "" {
			return errors.New("deadline entry without a city")
		}
		if e.Days <= 0 {
			return fmt.Errorf("deadline entry for %q with non-positive days %d", e.City, e.Days)
		}

		value := []byte(strconv.Itoa(e.Days))
		if err := r.cache.Set(ctx, deadlineKey(e.City, e.Unit), value, 0); err != nil {
			return fmt.Errorf("failed to store deadline for %q: %w", e.City, err)
		}
	}
	return nil
}

func (r *RedisDeadlineRepository) get(ctx context.Context, key string) (int, bool, error) {
	data, err := r.cache.Get(ctx, key)
	if err != nil {
		if errors.Is(err, cache.ErrCacheMiss) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("failed to read deadline %s: %w", key, err)
	}

	days, err := strconv.Atoi(string(data))
	if err != nil {
		return 0, false, fmt.Errorf("corrupt deadline value for %s: %w", key, err)
	}
	return days, true, nil
}

func deadlineKey(city, unit string) string {
	key := deadlineKeyPrefix + domain.Normalize(city)
	if unit != "" {
		key += ":" + domain.Normalize(unit)
	}
	return key
}
