package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"transgrid/internal/domain/entities"
	"transgrid/internal/geo"
	"transgrid/internal/metrics"
	"transgrid/internal/polygon"
)

type MergeRequest struct {
	Features *geojson.FeatureCollection `json:"features"`
	Column   string                     `json:"column"`
}

type ExteriorRequest struct {
	Features  *geojson.FeatureCollection `json:"features"`
	MinArea   float64                    `json:"min_area"`
	Tolerance float64                    `json:"tolerance"`
}

type SplitRequest struct {
	Features  *geojson.FeatureCollection `json:"features"`
	MaxLength float64                    `json:"max_length"`
}

// PolygonService wraps the polygon and line clean-up operations.
type PolygonService struct {
	log *slog.Logger
}

func NewPolygonService(log *slog.Logger) *PolygonService {
	return &PolygonService{log: log.With("tag", "POLYGON")}
}

func (s *PolygonService) Merge(ctx context.Context, req MergeRequest) (*geojson.FeatureCollection, error) {
	if req.Column == "" {
		return nil, fmt.Errorf("%w: column required", entities.ErrSchema)
	}
	out, err := polygon.Merge(req.Features, req.Column)
	if err != nil {
		return nil, err
	}
	metrics.PolygonOpsTotal.WithLabelValues("merge").Inc()
	s.log.Info("polygons merged", "column", req.Column, "in", featureCount(req.Features), "out", len(out.Features))
	return out, nil
}

func (s *PolygonService) Exterior(ctx context.Context, req ExteriorRequest) (*geojson.FeatureCollection, error) {
	out, err := polygon.Exterior(req.Features, req.MinArea, req.Tolerance)
	if err != nil {
		return nil, err
	}
	metrics.PolygonOpsTotal.WithLabelValues("exterior").Inc()
	s.log.Info("exteriors built", "in", featureCount(req.Features), "out", len(out.Features))
	return out, nil
}

// SplitLines cuts every linestring feature into pieces no longer than
// MaxLength. Each piece keeps the source properties plus "piece", its
// position along the source line.
func (s *PolygonService) SplitLines(ctx context.Context, req SplitRequest) (*geojson.FeatureCollection, error) {
	out := geojson.NewFeatureCollection()
	if req.Features == nil {
		return out, nil
	}
	for i, f := range req.Features.Features {
		ls, ok := f.Geometry.(orb.LineString)
		if !ok {
			return nil, fmt.Errorf("feature %d: %w: geometry is not a LineString", i, entities.ErrSchema)
		}
		pieces, err := geo.SplitLine(ls, req.MaxLength)
		if err != nil {
			return nil, fmt.Errorf("feature %d: %w", i, err)
		}
		for n, piece := range pieces {
			nf := geojson.NewFeature(piece)
			for k, v := range f.Properties {
				nf.Properties[k] = v
			}
			nf.Properties["piece"] = n
			out.Append(nf)
		}
	}
	metrics.PolygonOpsTotal.WithLabelValues("split").Inc()
	s.log.Info("lines split", "in", len(req.Features.Features), "out", len(out.Features), "max_length", req.MaxLength)
	return out, nil
}

func featureCount(fc *geojson.FeatureCollection) int {
	if fc == nil {
		return 0
	}
	return len(fc.Features)
}
