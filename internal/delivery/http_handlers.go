package delivery

import (
	"net/http"
	"strings"
	"time"

	"adpulse/internal/domain"
	"adpulse/internal/usecase"
	"adpulse/pkg/logger"
	"adpulse/pkg/metrics"

	"github.com/gin-gonic/gin"
)

// handles HTTP requests
type HTTPHandlers struct {
	insightsService *usecase.InsightsService
	logger          *logger.Logger
	metrics         *metrics.Metrics
}

// creates new HTTP handlers
func NewHTTPHandlers(
	insightsService *usecase.InsightsService,
	logger *logger.Logger,
	metrics *metrics.Metrics,
) *HTTPHandlers {
	return &HTTPHandlers{
		insightsService: insightsService,
		logger:          logger,
		metrics:         metrics,
	}
}

// GetSummary returns the aggregate over the requested record set, with
// optional period comparison
func (h *HTTPHandlers) GetSummary(c *gin.Context) {
	h.metrics.IncHTTPRequestsInFlight()
	defer h.metrics.DecHTTPRequestsInFlight()

	query, filter, ok := h.parseQuery(c)
	if !ok {
		return
	}

	report, err := h.insightsService.Summary(c.Request.Context(), query, filter)
	if err != nil {
		h.serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// GetBreakdown returns per-dimension aggregates over the requested record set
func (h *HTTPHandlers) GetBreakdown(c *gin.Context) {
	h.metrics.IncHTTPRequestsInFlight()
	defer h.metrics.DecHTTPRequestsInFlight()

	query, filter, ok := h.parseQuery(c)
	if !ok {
		return
	}

	query.Dimension = c.Query("dimension")
	if query.Dimension == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":      "Missing dimension",
			"message":    "dimension query parameter is required (e.g. platform, placement, country, targeting_type, demographic)",
			"request_id": c.GetString("request_id"),
		})
		return
	}

	report, err := h.insightsService.Breakdown(c.Request.Context(), query, filter)
	if err != nil {
		h.serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// GetAccountHealth returns per-entity health classification plus the
// account roll-up
func (h *HTTPHandlers) GetAccountHealth(c *gin.Context) {
	h.metrics.IncHTTPRequestsInFlight()
	defer h.metrics.DecHTTPRequestsInFlight()

	query, _, ok := h.parseQuery(c)
	if !ok {
		return
	}

	report, err := h.insightsService.Health(c.Request.Context(), query)
	if err != nil {
		h.serviceError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// HealthCheck returns service liveness
func (h *HTTPHandlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "adpulse",
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

// GetAPIInfo returns API v1 information and available endpoints
func (h *HTTPHandlers) GetAPIInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"api_version": "v1",
		"service":     "adpulse",
		"description": "Advertising performance insights: aggregation, period comparison, breakdowns, health classification",
		"endpoints": gin.H{
			"summary": gin.H{
				"path":        "/api/v1/insights/summary",
				"description": "Aggregate metrics over a record set with optional period comparison",
				"parameters": gin.H{
					"level":   "campaign | adset | ad (default campaign)",
					"from":    "Start date (YYYY-MM-DD)",
					"to":      "End date (YYYY-MM-DD)",
					"compare": "true to include period-over-period deltas",
					"status":  "Optional status filter (ACTIVE, PAUSED, ARCHIVED)",
					"search":  "Optional name substring filter",
					"ids":     "Optional comma-separated entity id filter",
				},
			},
			"breakdown": gin.H{
				"path":        "/api/v1/insights/breakdown",
				"description": "Aggregates grouped by a breakdown dimension, sorted by spend",
				"parameters": gin.H{
					"dimension": "Required: platform, placement, country, targeting_type, age, gender, demographic",
				},
			},
			"health": gin.H{
				"path":        "/api/v1/insights/health",
				"description": "Per-entity health classification and account roll-up",
			},
		},
		"metrics": gin.H{
			"ctr":             "Click-Through Rate (clicks / impressions * 100)",
			"cpc":             "Cost Per Click (spend / clicks)",
			"cpa":             "Cost Per Acquisition (spend / conversions)",
			"roas":            "Return on Ad Spend (conversion_value / spend)",
			"conversion_rate": "Conversions per click (conversions / clicks * 100)",
		},
	})
}

// parseQuery extracts the common query and filter parameters. On a parse
// failure it writes a 400 response and returns ok=false.
func (h *HTTPHandlers) parseQuery(c *gin.Context) (domain.Query, domain.Filter, bool) {
	query := domain.Query{
		Level:   domain.LevelCampaign,
		Compare: c.Query("compare") == "true",
	}

	if level := c.Query("level"); level != "" {
		switch domain.Level(level) {
		case domain.LevelCampaign, domain.LevelAdSet, domain.LevelAd:
			query.Level = domain.Level(level)
		default:
			h.badRequest(c, "Invalid level", "level must be one of campaign, adset, ad")
			return query, domain.Filter{}, false
		}
	}

	// default range: the last 30 days
	query.To = time.Now().UTC().Truncate(24 * time.Hour)
	query.From = query.To.AddDate(0, 0, -29)

	if fromStr := c.Query("from"); fromStr != "" {
		from, err := time.Parse("2006-01-02", fromStr)
		if err != nil {
			h.badRequest(c, "Invalid date format", "from must be in YYYY-MM-DD format")
			return query, domain.Filter{}, false
		}
		query.From = from
	}
	if toStr := c.Query("to"); toStr != "" {
		to, err := time.Parse("2006-01-02", toStr)
		if err != nil {
			h.badRequest(c, "Invalid date format", "to must be in YYYY-MM-DD format")
			return query, domain.Filter{}, false
		}
		query.To = to
	}
	if query.To.Before(query.From) {
		h.badRequest(c, "Invalid date range", "to must not precede from")
		return query, domain.Filter{}, false
	}

	filter := domain.Filter{
		Search: c.Query("search"),
	}
	if status := c.Query("status"); status != "" {
		switch domain.Status(status) {
		case domain.StatusActive, domain.StatusPaused, domain.StatusArchived:
			filter.Status = domain.Status(status)
		default:
			h.badRequest(c, "Invalid status", "status must be one of ACTIVE, PAUSED, ARCHIVED")
			return query, filter, false
		}
	}
	if ids := c.Query("ids"); ids != "" {
		filter.IDs = strings.Split(ids, ",")
	}

	return query, filter, true
}

func (h *HTTPHandlers) badRequest(c *gin.Context, errMsg, detail string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":      errMsg,
		"message":    detail,
		"request_id": c.GetString("request_id"),
	})
}

func (h *HTTPHandlers) serviceError(c *gin.Context, err error) {
	h.logger.WithContext(c.Request.Context()).WithError(err).Error("Insight query failed")
	c.JSON(http.StatusBadGateway, gin.H{
		"error":      "Insight query failed",
		"message":    err.Error(),
		"request_id": c.GetString("request_id"),
	})
}
