package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"meshcode/internal/services"
)

// SearchHandler exposes the region enumerations and the distance utility.
type SearchHandler struct {
	meshService *services.MeshService
}

func NewSearchHandler(meshService *services.MeshService) *SearchHandler {
	return &SearchHandler{meshService: meshService}
}

// BBox handles GET /search/bbox?min_lat=&min_lon=&max_lat=&max_lon=&level=
func (h *SearchHandler) BBox(c *gin.Context) {
	v, err := queryFloats(c, "min_lat", "min_lon", "max_lat", "max_lon")
	if err != nil {
		respondError(c, err)
		return
	}
	res, err := h.meshService.SearchBBox(c.Request.Context(), v[0], v[1], v[2], v[3], c.Query("level"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Radius handles GET /search/radius?lat=&lon=&meters=&level=
func (h *SearchHandler) Radius(c *gin.Context) {
	v, err := queryFloats(c, "lat", "lon", "meters")
	if err != nil {
		respondError(c, err)
		return
	}
	res, err := h.meshService.SearchRadius(c.Request.Context(), v[0], v[1], v[2], c.Query("level"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Distance handles GET /distance?lat1=&lon1=&lat2=&lon2=
func (h *SearchHandler) Distance(c *gin.Context) {
	v, err := queryFloats(c, "lat1", "lon1", "lat2", "lon2")
	if err != nil {
		respondError(c, err)
		return
	}
	d, err := h.meshService.Distance(v[0], v[1], v[2], v[3])
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"distance_meters": d})
}
