package services

import "errors"

// Request-level errors. Core validation errors from the mesh package pass
// through unchanged and are matched with errors.Is by the handlers.
var (
	ErrTooManyCells   = errors.New("enumeration exceeds the configured cell limit")
	ErrRadiusTooLarge = errors.New("radius exceeds the configured maximum")
	ErrNoParent       = errors.New("first-level codes have no parent")
	ErrNoNeighbor     = errors.New("neighbor lies outside the mesh envelope")
	ErrPointNotFound  = errors.New("point not found")
	ErrInvalidPointID = errors.New("point id must be 1-128 characters without '/'")
)
