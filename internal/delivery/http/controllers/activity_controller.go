package controllers

import (
	"log/slog"
	"net/http"

	"lawflow/internal/delivery/http/helpers"
	"lawflow/internal/domain"
)

// ActivityPageSuccessResponse is the success envelope for GET /activity.
type ActivityPageSuccessResponse struct {
	Data  domain.Page[*domain.Activity] `json:"data"`
	Error *helpers.APIError             `json:"error"`
}

type ActivityController struct {
	Logger  *slog.Logger
	Service domain.ActivityService
}

func NewActivityController(logger *slog.Logger, svc domain.ActivityService) *ActivityController {
	return &ActivityController{Logger: logger, Service: svc}
}

// ListActivity godoc
// @Summary List a project's activity feed
// @Description Default ordering is newest first.
// @Tags activity
// @Produce json
// @Param project_id query int true "Project ID"
// @Param page query int false "Page number (default 1)"
// @Param size query int false "Page size (default 50, max 100)"
// @Param sort_by query string false "created_at"
// @Param sort_order query string false "asc or desc (default desc)"
// @Success 200 {object} controllers.ActivityPageSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /activity [get]
func (c *ActivityController) ListActivity(w http.ResponseWriter, r *http.Request) {
	projectID, ok := queryProjectID(w, r)
	if !ok {
		return
	}
	req, ok := pageRequest(w, r)
	if !ok {
		return
	}
	page, err := c.Service.ListActivity(r.Context(), projectID, req)
	if err != nil {
		writeServiceError(c.Logger, w, r, err, "")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, page)
}
