// Package repository declares the registries the services keep between
// requests: grid params that many encode calls must share, and named
// reference feature sets (roads, stops) reused across match calls.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/paulmach/orb/geojson"
	"transgrid/internal/grid"
)

// ErrNotFound is wrapped by every lookup miss.
var ErrNotFound = errors.New("not found")

// StoredParams is a grid definition registered under a generated id. Ids are
// only handed out for params that passed validation.
type StoredParams struct {
	ID        string      `json:"id"`
	Params    grid.Params `json:"params"`
	CreatedAt time.Time   `json:"created_at"`
}

// ReferenceSet is a named collection of reference features. The match index
// is not stored with it; it is rebuilt on every call.
type ReferenceSet struct {
	Name      string                     `json:"name"`
	Features  *geojson.FeatureCollection `json:"features"`
	UpdatedAt time.Time                  `json:"updated_at"`
}

type ParamsRepository interface {
	Create(ctx context.Context, p grid.Params) (*StoredParams, error)
	GetByID(ctx context.Context, id string) (*StoredParams, error)
	List(ctx context.Context) ([]*StoredParams, error)
	Delete(ctx context.Context, id string) error
}

type ReferenceRepository interface {
	Put(ctx context.Context, name string, fc *geojson.FeatureCollection) (*ReferenceSet, error)
	Get(ctx context.Context, name string) (*ReferenceSet, error)
	Names(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, name string) error
}
