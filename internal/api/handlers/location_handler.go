package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"meshcode/internal/services"
)

type LocationHandler struct {
	locationService *services.LocationService
}

func NewLocationHandler(locationService *services.LocationService) *LocationHandler {
	return &LocationHandler{
		locationService: locationService,
	}
}

// TrackPointRequest is the body of PUT /points/:id and POST /points.
//
// Pointers distinguish a missing field from an explicit 0; `binding:"required"`
// on a plain float64 would reject latitude 0.
type TrackPointRequest struct {
	ID  string   `json:"id"`
	Lat *float64 `json:"lat" binding:"required"`
	Lon *float64 `json:"lon" binding:"required"`
}

// PutPoint handles PUT /points/:id
func (h *LocationHandler) PutPoint(c *gin.Context) {
	h.track(c, c.Param("id"), http.StatusOK)
}

// CreatePoint handles POST /points. The id is optional.
func (h *LocationHandler) CreatePoint(c *gin.Context) {
	h.track(c, "", http.StatusCreated)
}

func (h *LocationHandler) track(c *gin.Context, id string, status int) {
	var req TrackPointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if id == "" {
		id = req.ID
	}

	point, err := h.locationService.Track(c.Request.Context(), id, *req.Lat, *req.Lon)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(status, point)
}

// GetPoint handles GET /points/:id
func (h *LocationHandler) GetPoint(c *gin.Context) {
	point, err := h.locationService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, point)
}

// DeletePoint handles DELETE /points/:id
func (h *LocationHandler) DeletePoint(c *gin.Context) {
	if err := h.locationService.Remove(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Nearby handles GET /points/nearby?lat=&lon=&meters=
func (h *LocationHandler) Nearby(c *gin.Context) {
	v, err := queryFloats(c, "lat", "lon")
	if err != nil {
		respondError(c, err)
		return
	}
	meters, err := queryFloatDefault(c, "meters", h.locationService.DefaultSearchRadius())
	if err != nil {
		respondError(c, err)
		return
	}

	nearby, err := h.locationService.FindNearby(c.Request.Context(), v[0], v[1], meters)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(nearby), "points": nearby})
}

// InCell handles GET /points/cell/:code
func (h *LocationHandler) InCell(c *gin.Context) {
	code := c.Param("code")
	points, err := h.locationService.InCell(c.Request.Context(), code)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": code, "count": len(points), "points": points})
}

// Cells handles GET /points/cells
func (h *LocationHandler) Cells(c *gin.Context) {
	cells, err := h.locationService.OccupiedCells(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(cells), "cells": cells})
}
