package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"transgrid/internal/services"
)

type GridHandler struct {
	gridService *services.GridService
}

func NewGridHandler(gridService *services.GridService) *GridHandler {
	return &GridHandler{gridService: gridService}
}

// CreateParams handles POST /grid/params
func (h *GridHandler) CreateParams(c *gin.Context) {
	var req services.CreateParamsRequest
	if !bind(c, &req) {
		return
	}
	rec, err := h.gridService.CreateParams(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rec)
}

// OptimizeParams handles POST /grid/params/optimize
func (h *GridHandler) OptimizeParams(c *gin.Context) {
	var req services.OptimizeParamsRequest
	if !bind(c, &req) {
		return
	}
	rec, err := h.gridService.OptimizeParams(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rec)
}

// GetParams handles GET /grid/params/:id
func (h *GridHandler) GetParams(c *gin.Context) {
	rec, err := h.gridService.GetParams(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// Encode handles POST /grid/encode
func (h *GridHandler) Encode(c *gin.Context) {
	var req services.EncodeRequest
	if !bind(c, &req) {
		return
	}
	ids, err := h.gridService.Encode(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ids": ids})
}

// Decode handles POST /grid/decode
func (h *GridHandler) Decode(c *gin.Context) {
	var req services.DecodeRequest
	if !bind(c, &req) {
		return
	}
	fc, err := h.gridService.Decode(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fc)
}

// Join handles POST /grid/join
func (h *GridHandler) Join(c *gin.Context) {
	var req services.JoinRequest
	if !bind(c, &req) {
		return
	}
	rows, err := h.gridService.Join(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": rows})
}

// Aggregate handles POST /grid/aggregate
func (h *GridHandler) Aggregate(c *gin.Context) {
	var req services.AggregateRequest
	if !bind(c, &req) {
		return
	}
	fc, err := h.gridService.Aggregate(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fc)
}

// Cover handles POST /grid/cover
func (h *GridHandler) Cover(c *gin.Context) {
	var req services.CoverRequest
	if !bind(c, &req) {
		return
	}
	fc, err := h.gridService.Cover(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, fc)
}
