// Package metrics declares the Prometheus collectors of the service and the
// handler that exposes them.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "transgrid_http_requests_total",
		Help: "HTTP requests by route and status code",
	}, []string{"route", "code"})
	RequestDurationMs = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "transgrid_http_request_duration_ms",
		Help:    "HTTP request duration in milliseconds",
		Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500, 1000, 5000},
	}, []string{"route"})
	PointsEncodedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "transgrid_points_encoded_total",
		Help: "Points encoded into grid ids, by grid family",
	}, []string{"family"})
	CellsGeneratedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "transgrid_cells_generated_total",
		Help: "Cells produced by cover and aggregation, by grid family",
	}, []string{"family"})
	MatchQueriesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "transgrid_match_queries_total",
		Help: "Query points matched, by reference kind",
	}, []string{"kind"})
	MatchDurationMs = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "transgrid_match_duration_ms",
		Help:    "Index build plus query time in milliseconds",
		Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500, 1000, 5000},
	}, []string{"kind"})
	PolygonOpsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "transgrid_polygon_ops_total",
		Help: "Polygon operations, by operation",
	}, []string{"op"})
)

func init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(RequestDurationMs)
	prometheus.MustRegister(PointsEncodedTotal)
	prometheus.MustRegister(CellsGeneratedTotal)
	prometheus.MustRegister(MatchQueriesTotal)
	prometheus.MustRegister(MatchDurationMs)
	prometheus.MustRegister(PolygonOpsTotal)
}

// Handler serves every registered collector in the Prometheus text format.
func Handler() http.Handler { return promhttp.Handler() }
