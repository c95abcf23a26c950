// Package handlers adapts HTTP requests to the services. Handlers bind JSON,
// call one service method and map its error onto a status code.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"transgrid/internal/domain/entities"
	"transgrid/internal/repository"
	"transgrid/internal/services"
)

// statusFor maps the error taxonomy onto HTTP status codes. Anything not
// recognised is a server fault.
//
// Go Learning Note — errors.Is Through Wrapping:
// Every layer adds context with fmt.Errorf("...: %w", err). errors.Is walks
// that chain, so a sentinel created in entities is still recognised here,
// three packages up, without string matching.
func statusFor(err error) int {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrTooManyCells):
		return http.StatusUnprocessableEntity
	case errors.Is(err, entities.ErrEmptyInput),
		errors.Is(err, entities.ErrInvalidBounds),
		errors.Is(err, entities.ErrInvalidSize),
		errors.Is(err, entities.ErrSchema):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(statusFor(err), gin.H{"error": err.Error()})
}

// bind decodes the JSON body into dst, answering 400 on failure.
func bind(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}
