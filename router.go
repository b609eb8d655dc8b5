package main

import (
	"kitnotes/config"
	"kitnotes/handler"
	"kitnotes/middleware"
	"kitnotes/usecase"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

func setupRouter(cfg config.Config, svc *usecase.NotebookService, logger *zap.Logger) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(
		middleware.RequestTracingMiddleware(),
		middleware.RecoveryMiddleware(logger),
		middleware.LoggingMiddleware(logger),
		middleware.MetricsMiddleware(),
		middleware.CORSMiddleware(cfg.Server.AllowedOrigins),
		middleware.RequestSizeLimiter(maxBodyBytes),
	)

	health := handler.NewHealthHandler(logger)
	router.GET("/api/health", health.GetHealth)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	notebook := handler.NewNotebookHandler(svc, logger)
	api := router.Group("/api/notebook")
	api.Use(
		middleware.CacheControlMiddleware("no-store"),
		middleware.TimeoutMiddleware(cfg.Server.RequestTimeout),
		middleware.AuthMiddleware(cfg.Auth.JWTSecretKey, cfg.Auth.Issuer),
	)
	if cfg.Server.RateLimitRPS > 0 {
		limiter := middleware.NewRateLimiter(float64(cfg.Server.RateLimitRPS), cfg.Server.RateLimitBurst)
		api.Use(middleware.RateLimitMiddleware(limiter))
	}
	{
		api.GET("", notebook.GetNotebook)
		api.POST("", notebook.CreateRecord)
		api.GET("/view", notebook.GetView)

		api.GET("/tags", notebook.GetTags)
		api.PUT("/tags", notebook.SaveTags)
		api.POST("/tags/prune", notebook.PruneTags)
		api.PUT("/selection", notebook.SelectTags)

		api.GET("/:id", notebook.GetRecord)
		api.PUT("/:id", notebook.SaveRecord)
		api.DELETE("/:id", notebook.DeleteRecord)
		api.POST("/:id/star", notebook.ToggleStar)
	}

	return router
}
