package controllers

import (
	"log/slog"
	"net/http"
	"time"

	"lawflow/internal/delivery/http/helpers"
	"lawflow/internal/domain"
)

// HealthResponse is the data returned by GET /health.
type HealthResponse struct {
	OK        bool      `json:"ok"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	Database  string    `json:"database"`
}

// HealthSuccessResponse is the envelope for GET /health.
type HealthSuccessResponse struct {
	Data  HealthResponse    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// HealthReportSuccessResponse is the envelope for GET /health/detailed.
type HealthReportSuccessResponse struct {
	Data  domain.HealthReport `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

type HealthController struct {
	Logger  *slog.Logger
	Service domain.HealthService
}

func NewHealthController(logger *slog.Logger, svc domain.HealthService) *HealthController {
	return &HealthController{Logger: logger, Service: svc}
}

// Health godoc
// @Summary Basic health check
// @Tags health
// @Produce json
// @Success 200 {object} controllers.HealthSuccessResponse
// @Failure 503 {object} controllers.HealthSuccessResponse "database unreachable"
// @Router /health [get]
func (c *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	report := c.Service.Check(r.Context())
	db := report.Components["database"]
	resp := HealthResponse{
		OK:        db.Status == domain.ComponentOK,
		Timestamp: report.Timestamp,
		Version:   report.Version,
		Database:  db.Status,
	}
	status := http.StatusOK
	if !resp.OK {
		c.Logger.WarnContext(r.Context(), "health check failed", "component", "database", "err", db.Error)
		status = http.StatusServiceUnavailable
	}
	helpers.WriteJSONSuccess(w, status, resp)
}

// HealthDetailed godoc
// @Summary Detailed health check
// @Description Pings the database and the cache and reports latency for each.
// @Tags health
// @Produce json
// @Success 200 {object} controllers.HealthReportSuccessResponse
// @Failure 503 {object} controllers.HealthReportSuccessResponse "a component is down"
// @Router /health/detailed [get]
func (c *HealthController) HealthDetailed(w http.ResponseWriter, r *http.Request) {
	report := c.Service.Check(r.Context())
	status := http.StatusOK
	if !report.OK {
		for name, comp := range report.Components {
			if comp.Status != domain.ComponentOK {
				c.Logger.WarnContext(r.Context(), "health check failed", "component", name, "err", comp.Error)
			}
		}
		status = http.StatusServiceUnavailable
	}
	helpers.WriteJSONSuccess(w, status, report)
}
