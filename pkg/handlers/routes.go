package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/AhiyaSchneider/server-FinalProject/pkg/metrics"
)

// RegisterRoutes wires all routes onto the engine.
func RegisterRoutes(r *gin.Engine, h *Handler) {
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Workforce Shift Scheduler API",
			"version": "2.0.0",
		})
	})

	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	authGroup := r.Group("/api/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
	}

	api := r.Group("/api")
	api.Use(h.AuthMiddleware())
	{
		api.POST("/upload", h.Upload)
		api.GET("/schedule/:username", h.GetSchedule)
		api.GET("/workers", h.GetWorkers)
		api.POST("/workers", h.AddWorker)
	}
}
