package httpapi

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"worktrack/internal/analytics"
)

// AnalyticsHandler serves the sales reporting endpoints. Unlike the
// attendance report, these return empty result sets instead of 404.
type AnalyticsHandler struct {
	svc AnalyticsService
}

// NewAnalyticsHandler creates a handler.
func NewAnalyticsHandler(svc AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{svc: svc}
}

// TopProducts handles GET /report.
func (h *AnalyticsHandler) TopProducts(c *gin.Context) {
	month := intQuery(c, "month", 0)
	year := intQuery(c, "year", 0)

	rows, err := h.svc.TopProducts(c.Request.Context(), month, year)
	if err != nil {
		if errors.Is(err, analytics.ErrInvalidPeriod) {
			fail(c, http.StatusBadRequest, "Invalid month or year provided")
			return
		}
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"month": month, "year": year, "topProducts": rows})
}

// MonthlySales handles GET /monthly-report.
func (h *AnalyticsHandler) MonthlySales(c *gin.Context) {
	month := intQuery(c, "month", 0)
	year := intQuery(c, "year", 0)

	rows, err := h.svc.MonthlySales(c.Request.Context(), month, year)
	if err != nil {
		if errors.Is(err, analytics.ErrInvalidPeriod) {
			fail(c, http.StatusBadRequest, "Invalid month or year provided")
			return
		}
		internalError(c, err)
		return
	}
	// "monthySales" matches the published API contract
	c.JSON(http.StatusOK, gin.H{"month": month, "year": year, "monthySales": rows})
}

// CustomerValue handles GET /customer-value. The from/to bounds are optional
// calendar dates; unparseable values are ignored rather than rejected.
func (h *AnalyticsHandler) CustomerValue(c *gin.Context) {
	from := dateQuery(c, "from")
	to := dateQuery(c, "to")

	rows, err := h.svc.CustomerLifetimeValue(c.Request.Context(), from, to)
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"customer": rows})
}

// CustomerCohort handles GET /customer-cohort.
func (h *AnalyticsHandler) CustomerCohort(c *gin.Context) {
	month := intQuery(c, "month", 0)
	year := intQuery(c, "year", 0)

	rows, err := h.svc.CustomerCohort(c.Request.Context(), month, year)
	if err != nil {
		if errors.Is(err, analytics.ErrInvalidPeriod) {
			fail(c, http.StatusBadRequest, "Invalid month or year provided")
			return
		}
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": rows})
}

func dateQuery(c *gin.Context, key string) *time.Time {
	v := c.Query(key)
	if v == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return nil
	}
	return &t
}
