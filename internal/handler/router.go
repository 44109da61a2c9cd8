package handler

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func corsMiddleware() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	})
}

// NewAPIRouter serves the remote record API.
func NewAPIRouter(water *WaterHandler) *gin.Engine {
	r := gin.Default()
	r.Use(corsMiddleware())

	r.GET("/", water.Health)
	api := r.Group("/api")
	api.POST("/water", water.Create)
	api.GET("/water", water.List)
	return r
}

// NewWebRouter serves the tracker page and its ledger endpoints.
func NewWebRouter(tracker *TrackerHandler) *gin.Engine {
	r := gin.Default()
	r.Use(corsMiddleware())

	r.GET("/", tracker.Page)
	api := r.Group("/api/ledger")
	api.GET("", tracker.State)
	api.POST("/intake", tracker.AddCustom)
	api.POST("/intake/:preset", tracker.AddPreset)
	api.PUT("/goal", tracker.UpdateGoal)
	api.POST("/reset", tracker.Reset)
	api.GET("/export", tracker.Export)
	return r
}
