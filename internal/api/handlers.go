package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/JustJay7/ecourts-case-lookup/internal/cache"
	"github.com/JustJay7/ecourts-case-lookup/internal/config"
	"github.com/JustJay7/ecourts-case-lookup/internal/dashboard"
	"github.com/JustJay7/ecourts-case-lookup/internal/database"
	"github.com/JustJay7/ecourts-case-lookup/internal/scraper"
	"github.com/JustJay7/ecourts-case-lookup/pkg/logger"
	"github.com/gin-gonic/gin"
)

const (
	msgFieldsRequired   = "All fields are required."
	msgUnsupportedCourt = "Unsupported court selected."
	msgMissingPDFURL    = "Missing PDF URL"
)

// Handlers holds all HTTP handlers
type Handlers struct {
	store      *database.LogStore
	counter    cache.Counter
	registry   *scraper.Registry
	aggregator *dashboard.Aggregator
	pdf        *scraper.PDFFetcher
	logger     *logger.Logger
	cfg        *config.Config
}

// NewHandlers creates a new handlers instance
func NewHandlers(store *database.LogStore, counter cache.Counter, registry *scraper.Registry, logger *logger.Logger, cfg *config.Config) *Handlers {
	return &Handlers{
		store:      store,
		counter:    counter,
		registry:   registry,
		aggregator: dashboard.NewAggregator(store, registry.Courts(), cfg.RecentLimit, logger),
		pdf:        scraper.NewPDFFetcher(cfg.PDFFetchTimeout, cfg.PDFUserAgent, logger),
		logger:     logger,
		cfg:        cfg,
	}
}

// searchError is a failed search with the status and message to report.
type searchError struct {
	status  int
	message string
}

// search validates the request, resolves the court, and runs the lookup.
func (h *Handlers) search(ctx context.Context, court string, query scraper.CaseQuery) (*scraper.CaseResult, *searchError) {
	if strings.TrimSpace(court) == "" || query.Validate() != nil {
		return nil, &searchError{status: http.StatusBadRequest, message: msgFieldsRequired}
	}

	provider, err := h.registry.Resolve(court)
	if err != nil {
		if errors.Is(err, scraper.ErrUnsupportedCourt) {
			h.logger.Warn("Unsupported court requested", "court", court)
			return nil, &searchError{status: http.StatusBadRequest, message: msgUnsupportedCourt}
		}
		return nil, &searchError{status: http.StatusInternalServerError, message: err.Error()}
	}

	result, err := provider.Lookup(ctx, query)
	if err != nil {
		return nil, &searchError{status: http.StatusInternalServerError, message: err.Error()}
	}

	h.logger.Info("Case search completed",
		"court", court,
		"case_type", query.CaseType,
		"case_number", query.CaseNumber,
		"case_year", query.CaseYear,
		"log_id", result.LogID,
	)
	return result, nil
}

// HomePage renders the search form
func (h *Handlers) HomePage(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"title":  "Court Case Lookup",
		"courts": h.registry.Courts(),
	})
}

// SearchCase handles the search form submission
func (h *Handlers) SearchCase(c *gin.Context) {
	var req struct {
		Court      string `form:"court" binding:"required"`
		CaseType   string `form:"case_type" binding:"required"`
		CaseNumber string `form:"case_number" binding:"required"`
		CaseYear   string `form:"case_year" binding:"required"`
	}

	if err := c.ShouldBind(&req); err != nil {
		h.logger.Debug("Rejected search form", "error", err)
		c.HTML(http.StatusBadRequest, "error.html", gin.H{
			"message": msgFieldsRequired,
		})
		return
	}

	query := scraper.CaseQuery{
		CaseType:   strings.TrimSpace(req.CaseType),
		CaseNumber: strings.TrimSpace(req.CaseNumber),
		CaseYear:   strings.TrimSpace(req.CaseYear),
	}

	result, serr := h.search(c.Request.Context(), strings.TrimSpace(req.Court), query)
	if serr != nil {
		c.HTML(serr.status, "error.html", gin.H{
			"message": serr.message,
		})
		return
	}

	c.HTML(http.StatusOK, "result.html", gin.H{
		"metadata": result.Metadata,
		"orders":   result.Orders,
	})
}

// ViewPDF proxies a remote order document inline
func (h *Handlers) ViewPDF(c *gin.Context) {
	raw := c.Query("pdf_url")
	if raw == "" {
		c.String(http.StatusBadRequest, msgMissingPDFURL)
		return
	}

	target := scraper.DecodePDFURL(raw)
	doc, err := h.pdf.Fetch(c.Request.Context(), target)
	if err != nil {
		h.logger.Warn("PDF fetch failed", "url", target, "error", err)
		c.String(http.StatusInternalServerError, "Failed to load PDF: %s", err.Error())
		return
	}
	defer doc.Body.Close()

	c.DataFromReader(http.StatusOK, doc.ContentLength, "application/pdf", doc.Body, map[string]string{
		"Content-Disposition": `inline; filename="case_order.pdf"`,
	})
}

// Dashboard renders aggregate statistics
func (h *Handlers) Dashboard(c *gin.Context) {
	snap, err := h.aggregator.Snapshot(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to build dashboard", "error", err)
		c.HTML(http.StatusInternalServerError, "error.html", gin.H{
			"message": "Failed to load dashboard: " + err.Error(),
		})
		return
	}

	c.HTML(http.StatusOK, "dashboard.html", gin.H{
		"snapshot": snap,
	})
}

// GetCaseAPI handles API requests for case information
func (h *Handlers) GetCaseAPI(c *gin.Context) {
	query := scraper.CaseQuery{
		CaseType:   c.Query("type"),
		CaseNumber: c.Query("number"),
		CaseYear:   c.Query("year"),
	}

	result, serr := h.search(c.Request.Context(), c.Query("court"), query)
	if serr != nil {
		c.JSON(serr.status, gin.H{
			"success": false,
			"error":   serr.message,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result,
	})
}

// StatsAPI returns the dashboard snapshot as JSON
func (h *Handlers) StatsAPI(c *gin.Context) {
	snap, err := h.aggregator.Snapshot(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to build stats", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    snap,
	})
}

// HealthCheck returns the health status
func (h *Handlers) HealthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	dbHealthy := h.store.Ping(ctx) == nil

	status := "healthy"
	code := http.StatusOK
	if !dbHealthy {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	resp := gin.H{
		"status":   status,
		"database": dbHealthy,
		"time":     time.Now().Unix(),
	}
	if h.counter != nil {
		resp["throttle"] = h.counter.Stats()
	}

	c.JSON(code, resp)
}
