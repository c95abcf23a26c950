package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/paulmach/orb/geojson"
	"transgrid/internal/domain/entities"
	"transgrid/internal/repository"
)

// ReferenceRepository stores named reference feature sets. A Put replaces
// the whole set; there is no per-feature update, so feature row numbers (the
// ids reported by matching) stay stable for the lifetime of a set.
type ReferenceRepository struct {
	mu   sync.RWMutex
	sets map[string]*repository.ReferenceSet
	now  func() time.Time
}

func NewReferenceRepository() *ReferenceRepository {
	return &ReferenceRepository{
		sets: make(map[string]*repository.ReferenceSet),
		now:  time.Now,
	}
}

// Put stores fc under name, replacing any previous set. Empty names and empty
// collections are rejected.
func (r *ReferenceRepository) Put(ctx context.Context, name string, fc *geojson.FeatureCollection) (*repository.ReferenceSet, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: reference name is empty", entities.ErrSchema)
	}
	if fc == nil || len(fc.Features) == 0 {
		return nil, fmt.Errorf("%w: reference %q has no features", entities.ErrEmptyInput, name)
	}

	set := &repository.ReferenceSet{Name: name, Features: fc, UpdatedAt: r.now().UTC()}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sets[name] = set
	return set, nil
}

// Get returns the stored set. The collection is shared with the repository
// and must be treated as read-only.
func (r *ReferenceRepository) Get(ctx context.Context, name string) (*repository.ReferenceSet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	set, exists := r.sets[name]
	if !exists {
		return nil, fmt.Errorf("reference %q: %w", name, repository.ErrNotFound)
	}
	return set, nil
}

// Names lists stored set names in lexical order.
func (r *ReferenceRepository) Names(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	names := make([]string, 0, len(r.sets))
	for name := range r.sets {
		names = append(names, name)
	}
	r.mu.RUnlock()

	sort.Strings(names)
	return names, nil
}

func (r *ReferenceRepository) Delete(ctx context.Context, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sets[name]; !exists {
		return fmt.Errorf("reference %q: %w", name, repository.ErrNotFound)
	}
	delete(r.sets, name)
	return nil
}
