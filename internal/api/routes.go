package api

import (
	"html/template"

	"github.com/JustJay7/ecourts-case-lookup/internal/cache"
	"github.com/JustJay7/ecourts-case-lookup/internal/config"
	"github.com/JustJay7/ecourts-case-lookup/internal/database"
	"github.com/JustJay7/ecourts-case-lookup/internal/scraper"
	"github.com/JustJay7/ecourts-case-lookup/pkg/logger"
	"github.com/JustJay7/ecourts-case-lookup/web"
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all application routes
func SetupRoutes(router *gin.Engine, store *database.LogStore, counter cache.Counter, registry *scraper.Registry, logger *logger.Logger, cfg *config.Config) {
	h := NewHandlers(store, counter, registry, logger, cfg)

	router.SetHTMLTemplate(template.Must(web.Load()))
	router.Use(RequestID())

	// HTML routes
	router.GET("/", h.HomePage)
	router.POST("/", Throttle(counter, cfg.RateLimit, "search", rejectHTML), h.SearchCase)
	router.GET("/view-pdf", Throttle(counter, cfg.RateLimit, "pdf", rejectText), h.ViewPDF)
	router.GET("/dashboard", h.Dashboard)

	// API routes
	api := router.Group("/api", CORS())
	{
		api.OPTIONS("/*path", func(c *gin.Context) {})
		api.GET("/health", h.HealthCheck)
		api.GET("/case", Throttle(counter, cfg.RateLimit, "search", rejectJSON), h.GetCaseAPI)
		api.GET("/stats", h.StatsAPI)
	}
}
