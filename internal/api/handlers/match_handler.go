package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/paulmach/orb/geojson"
	"transgrid/internal/services"
)

type MatchHandler struct {
	matchService *services.MatchService
}

func NewMatchHandler(matchService *services.MatchService) *MatchHandler {
	return &MatchHandler{matchService: matchService}
}

// MatchPoints handles POST /match/points
func (h *MatchHandler) MatchPoints(c *gin.Context) {
	var req services.PointMatchRequest
	if !bind(c, &req) {
		return
	}
	results, err := h.matchService.MatchPoints(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

// MatchLines handles POST /match/lines
func (h *MatchHandler) MatchLines(c *gin.Context) {
	var req services.LineMatchRequest
	if !bind(c, &req) {
		return
	}
	results, err := h.matchService.MatchLines(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

// MatchTable handles POST /match/table
func (h *MatchHandler) MatchTable(c *gin.Context) {
	var req services.TableMatchRequest
	if !bind(c, &req) {
		return
	}
	rows, err := h.matchService.MatchTable(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": rows})
}

// MatchFeatures handles POST /match/features
func (h *MatchHandler) MatchFeatures(c *gin.Context) {
	var req services.FeatureMatchRequest
	if !bind(c, &req) {
		return
	}
	fc, err := h.matchService.MatchFeatures(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fc)
}

// PutReference handles PUT /references/:name with a FeatureCollection body.
func (h *MatchHandler) PutReference(c *gin.Context) {
	fc := geojson.NewFeatureCollection()
	if !bind(c, fc) {
		return
	}
	set, err := h.matchService.PutReference(c.Request.Context(), c.Param("name"), fc)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"name":       set.Name,
		"features":   len(set.Features.Features),
		"updated_at": set.UpdatedAt,
	})
}

// ListReferences handles GET /references
func (h *MatchHandler) ListReferences(c *gin.Context) {
	names, err := h.matchService.ReferenceNames(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"names": names})
}
