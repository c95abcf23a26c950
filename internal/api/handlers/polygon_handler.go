package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"transgrid/internal/services"
)

type PolygonHandler struct {
	polygonService *services.PolygonService
}

func NewPolygonHandler(polygonService *services.PolygonService) *PolygonHandler {
	return &PolygonHandler{polygonService: polygonService}
}

// Merge handles POST /polygons/merge
func (h *PolygonHandler) Merge(c *gin.Context) {
	var req services.MergeRequest
	if !bind(c, &req) {
		return
	}
	fc, err := h.polygonService.Merge(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fc)
}

// Exterior handles POST /polygons/exterior
func (h *PolygonHandler) Exterior(c *gin.Context) {
	var req services.ExteriorRequest
	if !bind(c, &req) {
		return
	}
	fc, err := h.polygonService.Exterior(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fc)
}

// SplitLines handles POST /lines/split
func (h *PolygonHandler) SplitLines(c *gin.Context) {
	var req services.SplitRequest
	if !bind(c, &req) {
		return
	}
	fc, err := h.polygonService.SplitLines(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fc)
}
