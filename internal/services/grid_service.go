package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"transgrid/internal/config"
	"transgrid/internal/domain/entities"
	"transgrid/internal/geo"
	"transgrid/internal/grid"
	"transgrid/internal/metrics"
	"transgrid/internal/repository"
)

// ErrTooManyCells is returned when a cover would exceed the configured cap.
var ErrTooManyCells = errors.New("too many cells")

// Bounds is a bounding area in request form.
type Bounds struct {
	MinLon float64 `json:"min_lon"`
	MinLat float64 `json:"min_lat"`
	MaxLon float64 `json:"max_lon"`
	MaxLat float64 `json:"max_lat"`
}

// Area validates b.
func (b Bounds) Area() (geo.BoundingArea, error) {
	return geo.NewBoundingArea(b.MinLon, b.MinLat, b.MaxLon, b.MaxLat)
}

// AreaSource is either explicit bounds or a sample of points whose extent
// becomes the area.
type AreaSource struct {
	Bounds *Bounds     `json:"bounds,omitempty"`
	Points []orb.Point `json:"points,omitempty"`
}

func (s AreaSource) area() (geo.BoundingArea, error) {
	if s.Bounds != nil {
		return s.Bounds.Area()
	}
	if len(s.Points) > 0 {
		return geo.BoundFromPoints(s.Points)
	}
	return geo.BoundingArea{}, fmt.Errorf("%w: bounds or points required", entities.ErrSchema)
}

// ParamsRef points at the grid a request runs against: a registered id, or
// params passed inline. The id wins when both are set.
type ParamsRef struct {
	ParamsID string       `json:"params_id,omitempty"`
	Params   *grid.Params `json:"params,omitempty"`
}

type CreateParamsRequest struct {
	AreaSource
	Family     string  `json:"family"`
	SizeMeters float64 `json:"size_meters"`
	Theta      float64 `json:"theta"`
}

type OptimizeParamsRequest struct {
	AreaSource
	Family        string  `json:"family"`
	TargetCells   int     `json:"target_cells"`
	Tolerance     float64 `json:"tolerance"`
	MaxIterations int     `json:"max_iterations"`
}

type EncodeRequest struct {
	ParamsRef
	Points []orb.Point `json:"points"`
}

type DecodeRequest struct {
	ParamsRef
	IDs []grid.GridID `json:"ids"`
}

type JoinRequest struct {
	ParamsRef
	Columns entities.ColumnPair `json:"columns"`
	Records []entities.Record   `json:"records"`
}

type AggregateRequest struct {
	ParamsRef
	Points []orb.Point `json:"points"`
}

type CoverRequest struct {
	ParamsRef
	Bounds Bounds `json:"bounds"`
}

// GridService derives, registers and applies grid params.
type GridService struct {
	paramsRepo repository.ParamsRepository
	config     *config.Config
	log        *slog.Logger
}

func NewGridService(paramsRepo repository.ParamsRepository, cfg *config.Config, log *slog.Logger) *GridService {
	return &GridService{
		paramsRepo: paramsRepo,
		config:     cfg,
		log:        log.With("tag", "GRID"),
	}
}

func (s *GridService) family(name string) (grid.Family, error) {
	if name == "" {
		return s.config.Grid.DefaultFamily, nil
	}
	return grid.ParseFamily(name)
}

// CreateParams derives params for an area and registers them.
func (s *GridService) CreateParams(ctx context.Context, req CreateParamsRequest) (*repository.StoredParams, error) {
	area, err := req.area()
	if err != nil {
		return nil, err
	}
	family, err := s.family(req.Family)
	if err != nil {
		return nil, err
	}
	size := req.SizeMeters
	if size == 0 {
		size = s.config.Grid.DefaultSizeMeters
	}

	p, err := grid.DeriveParams(area, family, size)
	if err != nil {
		return nil, err
	}
	p.Theta = req.Theta

	rec, err := s.paramsRepo.Create(ctx, p)
	if err != nil {
		return nil, err
	}
	s.log.Info("params created", "id", rec.ID, "family", p.Family.String(), "size_m", p.Size)
	return rec, nil
}

// OptimizeParams searches for the cell size that covers the area with about
// TargetCells cells and registers the result.
func (s *GridService) OptimizeParams(ctx context.Context, req OptimizeParamsRequest) (*repository.StoredParams, error) {
	area, err := req.area()
	if err != nil {
		return nil, err
	}
	family, err := s.family(req.Family)
	if err != nil {
		return nil, err
	}
	if req.TargetCells > s.config.Grid.MaxCells {
		return nil, fmt.Errorf("%w: target %d exceeds the limit of %d", ErrTooManyCells, req.TargetCells, s.config.Grid.MaxCells)
	}

	opts := s.config.Grid.Optimize
	if req.Tolerance > 0 {
		opts.Tolerance = req.Tolerance
	}
	if req.MaxIterations > 0 {
		opts.MaxIterations = req.MaxIterations
	}

	p, err := grid.OptimizeParams(area, family, req.TargetCells, opts)
	if err != nil {
		return nil, err
	}
	rec, err := s.paramsRepo.Create(ctx, p)
	if err != nil {
		return nil, err
	}
	s.log.Info("params optimized", "id", rec.ID, "family", p.Family.String(), "size_m", p.Size, "target", req.TargetCells)
	return rec, nil
}

func (s *GridService) GetParams(ctx context.Context, id string) (*repository.StoredParams, error) {
	return s.paramsRepo.GetByID(ctx, id)
}

func (s *GridService) resolve(ctx context.Context, ref ParamsRef) (grid.Params, error) {
	if ref.ParamsID != "" {
		rec, err := s.paramsRepo.GetByID(ctx, ref.ParamsID)
		if err != nil {
			return grid.Params{}, err
		}
		return rec.Params, nil
	}
	if ref.Params != nil {
		if err := ref.Params.Validate(); err != nil {
			return grid.Params{}, err
		}
		return *ref.Params, nil
	}
	return grid.Params{}, fmt.Errorf("%w: params_id or params required", entities.ErrSchema)
}

func (s *GridService) Encode(ctx context.Context, req EncodeRequest) ([]grid.GridID, error) {
	p, err := s.resolve(ctx, req.ParamsRef)
	if err != nil {
		return nil, err
	}
	ids, err := grid.EncodeAll(req.Points, p)
	if err != nil {
		return nil, err
	}
	metrics.PointsEncodedTotal.WithLabelValues(p.Family.String()).Add(float64(len(ids)))
	s.log.Debug("points encoded", "family", p.Family.String(), "count", len(ids))
	return ids, nil
}

// Decode returns one polygon feature per id, in order, with the id
// components and centroid as properties.
func (s *GridService) Decode(ctx context.Context, req DecodeRequest) (*geojson.FeatureCollection, error) {
	p, err := s.resolve(ctx, req.ParamsRef)
	if err != nil {
		return nil, err
	}
	fc := geojson.NewFeatureCollection()
	for i, id := range req.IDs {
		if id.Family == 0 {
			id.Family = p.Family
		}
		f, err := cellFeature(p, id)
		if err != nil {
			return nil, fmt.Errorf("id %d: %w", i, err)
		}
		fc.Append(f)
	}
	return fc, nil
}

func (s *GridService) Join(ctx context.Context, req JoinRequest) ([]entities.Record, error) {
	p, err := s.resolve(ctx, req.ParamsRef)
	if err != nil {
		return nil, err
	}
	out, err := grid.Join(req.Records, req.Columns, p)
	if err != nil {
		return nil, err
	}
	metrics.PointsEncodedTotal.WithLabelValues(p.Family.String()).Add(float64(len(out)))
	s.log.Info("records joined", "family", p.Family.String(), "rows", len(out))
	return out, nil
}

// Aggregate counts points per cell and returns the occupied cells as
// features, busiest first. More occupied cells than the configured maximum is
// refused.
func (s *GridService) Aggregate(ctx context.Context, req AggregateRequest) (*geojson.FeatureCollection, error) {
	p, err := s.resolve(ctx, req.ParamsRef)
	if err != nil {
		return nil, err
	}
	stats, err := grid.Aggregate(req.Points, p)
	if err != nil {
		return nil, err
	}
	if len(stats) > s.config.Grid.MaxCells {
		s.log.Warn("aggregate refused", "family", p.Family.String(), "cells", len(stats), "limit", s.config.Grid.MaxCells)
		return nil, fmt.Errorf("%w: aggregate spans %d cells, limit is %d", ErrTooManyCells, len(stats), s.config.Grid.MaxCells)
	}

	fc := geojson.NewFeatureCollection()
	for _, st := range stats {
		f := geojson.NewFeature(st.Polygon)
		setCellProperties(f, st.ID, st.Centroid)
		f.Properties["count"] = st.Count
		fc.Append(f)
	}
	metrics.PointsEncodedTotal.WithLabelValues(p.Family.String()).Add(float64(len(req.Points)))
	metrics.CellsGeneratedTotal.WithLabelValues(p.Family.String()).Add(float64(len(stats)))
	s.log.Info("points aggregated", "family", p.Family.String(), "points", len(req.Points), "cells", len(stats))
	return fc, nil
}

// Cover returns every cell overlapping the bounds, refusing areas that would
// need more than the configured maximum.
func (s *GridService) Cover(ctx context.Context, req CoverRequest) (*geojson.FeatureCollection, error) {
	p, err := s.resolve(ctx, req.ParamsRef)
	if err != nil {
		return nil, err
	}
	area, err := req.Bounds.Area()
	if err != nil {
		return nil, err
	}

	est, err := grid.EstimateCells(p, area)
	if err != nil {
		return nil, err
	}
	if est > float64(s.config.Grid.MaxCells) {
		s.log.Warn("cover refused", "family", p.Family.String(), "estimate", int(est), "limit", s.config.Grid.MaxCells)
		return nil, fmt.Errorf("%w: cover needs about %d cells, limit is %d", ErrTooManyCells, int(est), s.config.Grid.MaxCells)
	}

	ids, err := grid.Cover(p, area)
	if err != nil {
		return nil, err
	}
	if len(ids) > s.config.Grid.MaxCells {
		s.log.Warn("cover refused", "family", p.Family.String(), "cells", len(ids), "limit", s.config.Grid.MaxCells)
		return nil, fmt.Errorf("%w: cover needs %d cells, limit is %d", ErrTooManyCells, len(ids), s.config.Grid.MaxCells)
	}
	fc := geojson.NewFeatureCollection()
	for _, id := range ids {
		f, err := cellFeature(p, id)
		if err != nil {
			return nil, err
		}
		fc.Append(f)
	}
	metrics.CellsGeneratedTotal.WithLabelValues(p.Family.String()).Add(float64(len(ids)))
	s.log.Info("area covered", "family", p.Family.String(), "cells", len(ids))
	return fc, nil
}

func cellFeature(p grid.Params, id grid.GridID) (*geojson.Feature, error) {
	poly, err := p.Polygon(id)
	if err != nil {
		return nil, err
	}
	c, err := p.Centroid(id)
	if err != nil {
		return nil, err
	}
	f := geojson.NewFeature(poly)
	setCellProperties(f, id, c)
	return f, nil
}

func setCellProperties(f *geojson.Feature, id grid.GridID, centroid orb.Point) {
	names := grid.Columns(id.Family)
	for i, v := range id.Values() {
		f.Properties[names[i]] = v
	}
	f.Properties["family"] = id.Family.String()
	f.Properties["centroid"] = []float64{centroid.Lon(), centroid.Lat()}
}
