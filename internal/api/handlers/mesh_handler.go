package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"meshcode/internal/services"
)

// MeshHandler exposes single-cell operations: encode, decode, containment,
// hierarchy navigation and neighbors.
type MeshHandler struct {
	meshService *services.MeshService
}

func NewMeshHandler(meshService *services.MeshService) *MeshHandler {
	return &MeshHandler{meshService: meshService}
}

// Encode handles GET /mesh/encode?lat=&lon=&level=
func (h *MeshHandler) Encode(c *gin.Context) {
	v, err := queryFloats(c, "lat", "lon")
	if err != nil {
		respondError(c, err)
		return
	}
	cell, err := h.meshService.Encode(v[0], v[1], c.Query("level"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cell)
}

// Describe handles GET /mesh/:code
func (h *MeshHandler) Describe(c *gin.Context) {
	cell, err := h.meshService.Describe(c.Param("code"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cell)
}

// Contains handles GET /mesh/:code/contains?lat=&lon=
func (h *MeshHandler) Contains(c *gin.Context) {
	v, err := queryFloats(c, "lat", "lon")
	if err != nil {
		respondError(c, err)
		return
	}
	code := c.Param("code")
	ok, err := h.meshService.Contains(code, v[0], v[1])
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": code, "contains": ok})
}

// Parent handles GET /mesh/:code/parent
func (h *MeshHandler) Parent(c *gin.Context) {
	cell, err := h.meshService.Parent(c.Param("code"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cell)
}

// Children handles GET /mesh/:code/children
func (h *MeshHandler) Children(c *gin.Context) {
	cells, err := h.meshService.Children(c.Param("code"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(cells), "cells": cells})
}

// ToLevel handles GET /mesh/:code/level/:level
func (h *MeshHandler) ToLevel(c *gin.Context) {
	cell, err := h.meshService.ToLevel(c.Param("code"), c.Param("level"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cell)
}

// Neighbors handles GET /mesh/:code/neighbors
func (h *MeshHandler) Neighbors(c *gin.Context) {
	neighbors, err := h.meshService.Neighbors(c.Param("code"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(neighbors), "neighbors": neighbors})
}

// Neighbor handles GET /mesh/:code/neighbors/:direction
func (h *MeshHandler) Neighbor(c *gin.Context) {
	cell, err := h.meshService.Neighbor(c.Param("code"), c.Param("direction"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cell)
}

// Radius handles GET /mesh/:code/radius?meters=
func (h *MeshHandler) Radius(c *gin.Context) {
	meters, err := queryFloat(c, "meters")
	if err != nil {
		respondError(c, err)
		return
	}
	res, err := h.meshService.RadiusFromCode(c.Request.Context(), c.Param("code"), meters)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
