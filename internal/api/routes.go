package api

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"transgrid/internal/api/handlers"
	"transgrid/internal/api/middleware"
	"transgrid/internal/metrics"
)

type Router struct {
	gridHandler    *handlers.GridHandler
	matchHandler   *handlers.MatchHandler
	polygonHandler *handlers.PolygonHandler
	log            *slog.Logger
}

func NewRouter(
	gridHandler *handlers.GridHandler,
	matchHandler *handlers.MatchHandler,
	polygonHandler *handlers.PolygonHandler,
	log *slog.Logger,
) *Router {
	return &Router{
		gridHandler:    gridHandler,
		matchHandler:   matchHandler,
		polygonHandler: polygonHandler,
		log:            log,
	}
}

func (r *Router) Setup(engine *gin.Engine) {
	engine.Use(middleware.RequestID(), middleware.AccessLog(r.log), middleware.Metrics())

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	engine.GET("/metrics", gin.WrapH(metrics.Handler()))

	gridRoutes := engine.Group("/grid")
	{
		gridRoutes.POST("/params", r.gridHandler.CreateParams)
		gridRoutes.POST("/params/optimize", r.gridHandler.OptimizeParams)
		gridRoutes.GET("/params/:id", r.gridHandler.GetParams)
		gridRoutes.POST("/encode", r.gridHandler.Encode)
		gridRoutes.POST("/decode", r.gridHandler.Decode)
		gridRoutes.POST("/join", r.gridHandler.Join)
		gridRoutes.POST("/aggregate", r.gridHandler.Aggregate)
		gridRoutes.POST("/cover", r.gridHandler.Cover)
	}

	matchRoutes := engine.Group("/match")
	{
		matchRoutes.POST("/points", r.matchHandler.MatchPoints)
		matchRoutes.POST("/lines", r.matchHandler.MatchLines)
		matchRoutes.POST("/table", r.matchHandler.MatchTable)
		matchRoutes.POST("/features", r.matchHandler.MatchFeatures)
	}
	engine.GET("/references", r.matchHandler.ListReferences)
	engine.PUT("/references/:name", r.matchHandler.PutReference)

	engine.POST("/polygons/merge", r.polygonHandler.Merge)
	engine.POST("/polygons/exterior", r.polygonHandler.Exterior)
	engine.POST("/lines/split", r.polygonHandler.SplitLines)
}
