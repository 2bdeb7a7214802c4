package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"meshcode/internal/api/handlers"
	"meshcode/internal/api/middleware"
	"meshcode/internal/metrics"
)

type Router struct {
	meshHandler     *handlers.MeshHandler
	searchHandler   *handlers.SearchHandler
	locationHandler *handlers.LocationHandler
	metrics         *metrics.Metrics
}

func NewRouter(
	meshHandler *handlers.MeshHandler,
	searchHandler *handlers.SearchHandler,
	locationHandler *handlers.LocationHandler,
	m *metrics.Metrics,
) *Router {
	return &Router{
		meshHandler:     meshHandler,
		searchHandler:   searchHandler,
		locationHandler: locationHandler,
		metrics:         m,
	}
}

// NewEngine builds a gin engine with recovery, request ids, access logging
// and request metrics, and registers every route.
func NewEngine(r *Router, logger *slog.Logger) *gin.Engine {
	engine := gin.New()
	engine.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.AccessLog(logger),
		r.metrics.Middleware(),
	)
	r.Setup(engine)
	return engine
}

func (r *Router) Setup(engine *gin.Engine) {
	// Health check endpoint
	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if r.metrics != nil {
		engine.GET("/metrics", r.metrics.Handler())
	}

	// Single-cell operations
	meshRoutes := engine.Group("/mesh")
	{
		meshRoutes.GET("/encode", r.meshHandler.Encode)
		meshRoutes.GET("/:code", r.meshHandler.Describe)
		meshRoutes.GET("/:code/contains", r.meshHandler.Contains)
		meshRoutes.GET("/:code/parent", r.meshHandler.Parent)
		meshRoutes.GET("/:code/children", r.meshHandler.Children)
		meshRoutes.GET("/:code/level/:level", r.meshHandler.ToLevel)
		meshRoutes.GET("/:code/neighbors", r.meshHandler.Neighbors)
		meshRoutes.GET("/:code/neighbors/:direction", r.meshHandler.Neighbor)
		meshRoutes.GET("/:code/radius", r.meshHandler.Radius)
	}

	// Region enumerations
	searchRoutes := engine.Group("/search")
	{
		searchRoutes.GET("/bbox", r.searchHandler.BBox)
		searchRoutes.GET("/radius", r.searchHandler.Radius)
	}
	engine.GET("/distance", r.searchHandler.Distance)

	// Tracked points
	pointRoutes := engine.Group("/points")
	{
		pointRoutes.POST("", r.locationHandler.CreatePoint)
		pointRoutes.GET("/nearby", r.locationHandler.Nearby)
		pointRoutes.GET("/cells", r.locationHandler.Cells)
		pointRoutes.GET("/cell/:code", r.locationHandler.InCell)
		pointRoutes.PUT("/:id", r.locationHandler.PutPoint)
		pointRoutes.GET("/:id", r.locationHandler.GetPoint)
		pointRoutes.DELETE("/:id", r.locationHandler.DeletePoint)
	}
}
