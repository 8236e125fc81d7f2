package httpapi

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/resource-dashboard/backend/internal/config"
	"github.com/resource-dashboard/backend/internal/http/handlers"
	"github.com/resource-dashboard/backend/internal/http/middleware"
	"github.com/resource-dashboard/backend/internal/store"

	_ "github.com/resource-dashboard/backend/docs"
)

func Router(cfg config.Config, st *store.Store, seedDB handlers.Pinger, logger zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Actor())
	r.Use(middleware.Logger(logger))

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", middleware.AdminKeyHeader, middleware.ActorHeader, middleware.RequestIDHeader},
		ExposeHeaders:    []string{middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if cfg.CORSAllowed == "*" {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	} else {
		corsCfg.AllowOrigins = []string{cfg.CORSAllowed}
	}
	r.Use(cors.New(corsCfg))

	h := &handlers.Handler{
		Store:     st,
		DB:        seedDB,
		Validator: validator.New(),
		Logger:    logger,
		TrendDays: cfg.TrendDays,
	}

	r.GET("/healthz", h.Healthz)

	api := r.Group("/api")
	{
		api.GET("/resources", h.ResourcesList)
		api.GET("/resources/summary", h.ResourcesSummary)
		api.GET("/resources/groups", h.ResourcesGroups)
		api.GET("/resources/highlights", h.ResourcesHighlights)
		api.GET("/resources/client-partners", h.ResourceClientPartners)

		api.GET("/issues", h.IssuesList)
		api.GET("/issues/summary", h.IssuesSummary)
		api.GET("/issues/trend", h.IssuesTrend)
		api.GET("/issues/client-partners", h.IssueClientPartners)
		api.GET("/issues/:id", h.IssueDetails)
		api.GET("/issues/:id/history", h.IssueHistory)
	}

	admin := api.Group("")
	admin.Use(middleware.AdminKey(cfg.AdminKey))
	{
		admin.POST("/issues", h.IssueCreate)
		admin.PUT("/issues/:id", h.IssueEdit)
		admin.POST("/issues/:id/resolve", h.IssueResolve)
		admin.POST("/issues/alerts", h.IssueAlerts)
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
