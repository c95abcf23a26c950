package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"transgrid/internal/grid"
	"transgrid/internal/repository"
	"transgrid/pkg/utils"
)

// ParamsRepository keeps registered grid params in memory. Params are value
// types and stored by value, so callers can't mutate a registered grid
// through a returned record.
type ParamsRepository struct {
	mu     sync.RWMutex
	params map[string]repository.StoredParams
	now    func() time.Time
}

func NewParamsRepository() *ParamsRepository {
	return &ParamsRepository{
		params: make(map[string]repository.StoredParams),
		now:    time.Now,
	}
}

// Create validates p and stores it under a fresh id.
func (r *ParamsRepository) Create(ctx context.Context, p grid.Params) (*repository.StoredParams, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	rec := repository.StoredParams{
		ID:        utils.GenerateID(),
		Params:    p,
		CreatedAt: r.now().UTC(),
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.params[rec.ID] = rec
	return &rec, nil
}

func (r *ParamsRepository) GetByID(ctx context.Context, id string) (*repository.StoredParams, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, exists := r.params[id]
	if !exists {
		return nil, fmt.Errorf("params %q: %w", id, repository.ErrNotFound)
	}
	return &rec, nil
}

// List returns every registered grid, oldest first.
//
// Go Learning Note — Copying Out of a Locked Map:
// Returning pointers into the map would let callers read entries after the
// lock is released while a writer replaces them. Copying each value into a
// new slice under RLock keeps the returned data independent of the map.
func (r *ParamsRepository) List(ctx context.Context) ([]*repository.StoredParams, error) {
	r.mu.RLock()
	out := make([]*repository.StoredParams, 0, len(r.params))
	for _, rec := range r.params {
		rec := rec
		out = append(out, &rec)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *ParamsRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.params[id]; !exists {
		return fmt.Errorf("params %q: %w", id, repository.ErrNotFound)
	}
	delete(r.params, id)
	return nil
}
