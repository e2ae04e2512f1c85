package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/slidelens/slidelens/internal/middleware"
	"github.com/slidelens/slidelens/internal/service"
	"github.com/slidelens/slidelens/internal/static"
)

type handlers struct {
	service *service.Service
}

func Setup(eng *gin.Engine, svc *service.Service) {
	config := static.GetSlideLensGlobalConfigurations()
	h := &handlers{service: svc}

	eng.Use(middleware.Cors())

	eng.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "server running"})
	})
	eng.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	eng.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := eng.Group("/api")
	api.Use(middleware.MaxRequest(config.MaxRequests))
	api.Use(middleware.Auth(config.App.Key))

	api.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "analyze router"})
	})
	api.GET("/models", Models)
	api.GET("/reports", h.Reports)
	api.GET("/reports/:id", h.Report)

	analyze := api.Group("/analyze")
	analyze.Use(middleware.MaxWorker(config.MaxWorkers))
	analyze.POST("", h.Analyze)
	analyze.POST("/full", h.AnalyzeFull)
}
