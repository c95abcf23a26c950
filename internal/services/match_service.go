package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"transgrid/internal/config"
	"transgrid/internal/domain/entities"
	"transgrid/internal/match"
	"transgrid/internal/metrics"
	"transgrid/internal/repository"
)

// PointMatchRequest matches query points against inline reference points or
// a stored reference set of point features.
type PointMatchRequest struct {
	Queries   []orb.Point `json:"queries"`
	Refs      []orb.Point `json:"refs,omitempty"`
	Reference string      `json:"reference,omitempty"`
	Geodesic  *bool       `json:"geodesic,omitempty"`
}

// LineMatchRequest matches query points against inline lines or a stored
// reference set of linestring features.
type LineMatchRequest struct {
	Queries   []orb.Point      `json:"queries"`
	Lines     []orb.LineString `json:"lines,omitempty"`
	Reference string           `json:"reference,omitempty"`
	Geodesic  *bool            `json:"geodesic,omitempty"`
}

type TableMatchRequest struct {
	Left         []entities.Record   `json:"left"`
	Right        []entities.Record   `json:"right"`
	LeftColumns  entities.ColumnPair `json:"left_columns"`
	RightColumns entities.ColumnPair `json:"right_columns"`
	Geodesic     *bool               `json:"geodesic,omitempty"`
}

type FeatureMatchRequest struct {
	Queries    *geojson.FeatureCollection `json:"queries"`
	References *geojson.FeatureCollection `json:"references,omitempty"`
	Reference  string                     `json:"reference,omitempty"`
	Geodesic   *bool                      `json:"geodesic,omitempty"`
}

// MatchService runs nearest-feature matching and keeps named reference sets.
type MatchService struct {
	referenceRepo repository.ReferenceRepository
	config        *config.Config
	log           *slog.Logger
}

func NewMatchService(referenceRepo repository.ReferenceRepository, cfg *config.Config, log *slog.Logger) *MatchService {
	return &MatchService{
		referenceRepo: referenceRepo,
		config:        cfg,
		log:           log.With("tag", "MATCH"),
	}
}

func (s *MatchService) options(geodesic *bool) match.Options {
	opts := match.Options{Geodesic: s.config.Match.Geodesic}
	if geodesic != nil {
		opts.Geodesic = *geodesic
	}
	return opts
}

// PutReference stores or replaces a named reference set.
func (s *MatchService) PutReference(ctx context.Context, name string, fc *geojson.FeatureCollection) (*repository.ReferenceSet, error) {
	set, err := s.referenceRepo.Put(ctx, name, fc)
	if err != nil {
		return nil, err
	}
	s.log.Info("reference stored", "name", set.Name, "features", len(fc.Features))
	return set, nil
}

func (s *MatchService) ReferenceNames(ctx context.Context) ([]string, error) {
	return s.referenceRepo.Names(ctx)
}

func (s *MatchService) MatchPoints(ctx context.Context, req PointMatchRequest) ([]match.Result, error) {
	refs := req.Refs
	if req.Reference != "" {
		set, err := s.referenceRepo.Get(ctx, req.Reference)
		if err != nil {
			return nil, err
		}
		if refs, err = pointsOf(set.Features); err != nil {
			return nil, fmt.Errorf("reference %q: %w", req.Reference, err)
		}
	}

	start := time.Now()
	results, err := match.NearestPoints(req.Queries, refs, s.options(req.Geodesic))
	if err != nil {
		return nil, err
	}
	s.observe("point", len(results), start)
	return results, nil
}

func (s *MatchService) MatchLines(ctx context.Context, req LineMatchRequest) ([]match.Result, error) {
	lines := req.Lines
	if req.Reference != "" {
		set, err := s.referenceRepo.Get(ctx, req.Reference)
		if err != nil {
			return nil, err
		}
		if lines, err = linesOf(set.Features); err != nil {
			return nil, fmt.Errorf("reference %q: %w", req.Reference, err)
		}
	}

	start := time.Now()
	results, err := match.NearestLines(req.Queries, lines, s.options(req.Geodesic))
	if err != nil {
		return nil, err
	}
	s.observe("line", len(results), start)
	return results, nil
}

func (s *MatchService) MatchTable(ctx context.Context, req TableMatchRequest) ([]entities.Record, error) {
	start := time.Now()
	rows, err := match.JoinNearest(req.Left, req.LeftColumns, req.Right, req.RightColumns, s.options(req.Geodesic))
	if err != nil {
		return nil, err
	}
	s.observe("table", len(rows), start)
	return rows, nil
}

func (s *MatchService) MatchFeatures(ctx context.Context, req FeatureMatchRequest) (*geojson.FeatureCollection, error) {
	refs := req.References
	if req.Reference != "" {
		set, err := s.referenceRepo.Get(ctx, req.Reference)
		if err != nil {
			return nil, err
		}
		refs = set.Features
	}

	start := time.Now()
	out, err := match.JoinNearestFeatures(req.Queries, refs, s.options(req.Geodesic))
	if err != nil {
		return nil, err
	}
	s.observe("feature", len(out.Features), start)
	return out, nil
}

func (s *MatchService) observe(kind string, n int, start time.Time) {
	elapsed := time.Since(start)
	metrics.MatchQueriesTotal.WithLabelValues(kind).Add(float64(n))
	metrics.MatchDurationMs.WithLabelValues(kind).Observe(float64(elapsed.Microseconds()) / 1000)
	s.log.Info("matched", "kind", kind, "queries", n, "elapsed", elapsed)
}

func pointsOf(fc *geojson.FeatureCollection) ([]orb.Point, error) {
	pts := make([]orb.Point, len(fc.Features))
	for i, f := range fc.Features {
		p, ok := f.Geometry.(orb.Point)
		if !ok {
			return nil, fmt.Errorf("%w: feature %d is not a Point", entities.ErrSchema, i)
		}
		pts[i] = p
	}
	return pts, nil
}

func linesOf(fc *geojson.FeatureCollection) ([]orb.LineString, error) {
	lines := make([]orb.LineString, len(fc.Features))
	for i, f := range fc.Features {
		ls, ok := f.Geometry.(orb.LineString)
		if !ok {
			return nil, fmt.Errorf("%w: feature %d is not a LineString", entities.ErrSchema, i)
		}
		lines[i] = ls
	}
	return lines, nil
}
