package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"lawflow/internal/delivery/http/helpers"
	"lawflow/internal/delivery/http/middleware"
	"lawflow/internal/domain"
)

// CreateTimelineItemRequest is the request body for POST /timeline.
type CreateTimelineItemRequest struct {
	ProjectID int64        `json:"project_id"`
	Label     string       `json:"label"`
	StartDate *domain.Date `json:"start_date" swaggertype:"string" example:"2026-01-15"`
	EndDate   *domain.Date `json:"end_date" swaggertype:"string" example:"2026-01-30"`
	Kind      string       `json:"kind" enums:"Phase,Milestone"`
}

// Validate implements Validator.
func (c CreateTimelineItemRequest) Validate() []string {
	var errs []string
	if c.ProjectID < 1 {
		errs = append(errs, "project_id is required")
	}
	if strings.TrimSpace(c.Label) == "" {
		errs = append(errs, "label is required")
	}
	if c.StartDate == nil {
		errs = append(errs, "start_date is required")
	}
	if c.EndDate == nil {
		errs = append(errs, "end_date is required")
	}
	if c.StartDate != nil && c.EndDate != nil && c.EndDate.Before(c.StartDate.Time) {
		errs = append(errs, "end_date must not be before start_date")
	}
	if c.Kind != domain.TimelinePhase && c.Kind != domain.TimelineMilestone {
		errs = append(errs, "kind must be Phase or Milestone")
	}
	return errs
}

// TimelineItemSuccessResponse is the success envelope for a timeline item.
type TimelineItemSuccessResponse struct {
	Data  *domain.TimelineItem `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// TimelinePageSuccessResponse is the success envelope for GET /timeline.
type TimelinePageSuccessResponse struct {
	Data  domain.Page[*domain.TimelineItem] `json:"data"`
	Error *helpers.APIError                 `json:"error"`
}

type TimelineController struct {
	Logger  *slog.Logger
	Service domain.TimelineService
}

func NewTimelineController(logger *slog.Logger, svc domain.TimelineService) *TimelineController {
	return &TimelineController{Logger: logger, Service: svc}
}

// ListTimeline godoc
// @Summary List a project's timeline
// @Description Default ordering is start date ascending.
// @Tags timeline
// @Produce json
// @Param project_id query int true "Project ID"
// @Param page query int false "Page number (default 1)"
// @Param size query int false "Page size (default 50, max 100)"
// @Param sort_by query string false "start_date or end_date"
// @Param sort_order query string false "asc or desc (default desc)"
// @Success 200 {object} controllers.TimelinePageSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /timeline [get]
func (c *TimelineController) ListTimeline(w http.ResponseWriter, r *http.Request) {
	projectID, ok := queryProjectID(w, r)
	if !ok {
		return
	}
	req, ok := pageRequest(w, r)
	if !ok {
		return
	}
	page, err := c.Service.ListTimeline(r.Context(), projectID, req)
	if err != nil {
		writeServiceError(c.Logger, w, r, err, "")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, page)
}

// CreateTimelineItem godoc
// @Summary Add a phase or milestone
// @Tags timeline
// @Accept json
// @Produce json
// @Param X-Actor header string false "Name recorded in the activity feed"
// @Param item body CreateTimelineItemRequest true "Timeline item"
// @Success 201 {object} controllers.TimelineItemSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /timeline [post]
func (c *TimelineController) CreateTimelineItem(w http.ResponseWriter, r *http.Request) {
	var req CreateTimelineItemRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	item := &domain.TimelineItem{
		ProjectID: req.ProjectID,
		Label:     req.Label,
		StartDate: *req.StartDate,
		EndDate:   *req.EndDate,
		Kind:      req.Kind,
	}
	if err := c.Service.CreateTimelineItem(r.Context(), item, middleware.ActorFromContext(r.Context())); err != nil {
		writeServiceError(c.Logger, w, r, err, "")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, item)
}
