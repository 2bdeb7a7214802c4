// Package handlers adapts HTTP requests to the mesh and location services.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"meshcode/internal/mesh"
	"meshcode/internal/services"
)

// errBadQuery marks a missing or malformed query parameter.
var errBadQuery = errors.New("invalid query parameter")

var badRequestErrors = []error{
	errBadQuery,
	mesh.ErrInvalidLatitude,
	mesh.ErrInvalidLongitude,
	mesh.ErrOutOfRange,
	mesh.ErrEmptyCode,
	mesh.ErrInvalidDigit,
	mesh.ErrInvalidLength,
	mesh.ErrCodeOverflow,
	mesh.ErrUnsupportedRefinement,
	mesh.ErrUnknownLevel,
	mesh.ErrUnknownDirection,
	services.ErrTooManyCells,
	services.ErrRadiusTooLarge,
	services.ErrInvalidPointID,
}

var notFoundErrors = []error{
	services.ErrNoParent,
	services.ErrNoNeighbor,
	services.ErrPointNotFound,
}

// statusFor maps a service error onto an HTTP status.
func statusFor(err error) int {
	for _, target := range badRequestErrors {
		if errors.Is(err, target) {
			return http.StatusBadRequest
		}
	}
	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			return http.StatusNotFound
		}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// respondError writes {"error": msg} with the mapped status. A bad digit in
// a code also reports its position.
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)
	body := gin.H{"error": err.Error()}

	var digitErr *mesh.DigitError
	if errors.As(err, &digitErr) {
		body["position"] = digitErr.Position
	}
	c.JSON(statusFor(err), body)
}

// queryFloat reads a required finite float query parameter.
func queryFloat(c *gin.Context, name string) (float64, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return 0, fmt.Errorf("%w: %s is required", errBadQuery, name)
	}
	return parseFloat(name, raw)
}

// queryFloatDefault reads an optional float query parameter.
func queryFloatDefault(c *gin.Context, name string, def float64) (float64, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return def, nil
	}
	return parseFloat(name, raw)
}

func parseFloat(name, raw string) (float64, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %s must be a finite number, got %q", errBadQuery, name, raw)
	}
	return v, nil
}

// queryFloats reads several required float parameters in order, stopping at
// the first error.
func queryFloats(c *gin.Context, names ...string) ([]float64, error) {
	out := make([]float64, len(names))
	for i, name := range names {
		v, err := queryFloat(c, name)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
