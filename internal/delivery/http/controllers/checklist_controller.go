package controllers

import (
	"log/slog"
	"net/http"

	"lawflow/internal/delivery/http/helpers"
	"lawflow/internal/delivery/http/middleware"
	"lawflow/internal/domain"
)

// UpdateChecklistRequest is the request body for PATCH /checklists/{id}.
type UpdateChecklistRequest struct {
	IsDone *bool `json:"is_done"`
}

// Validate implements Validator.
func (u UpdateChecklistRequest) Validate() []string {
	if u.IsDone == nil {
		return []string{"is_done is required"}
	}
	return nil
}

// ChecklistItemSuccessResponse is the success envelope for a checklist item.
type ChecklistItemSuccessResponse struct {
	Data  *domain.ChecklistItem `json:"data"`
	Error *helpers.APIError     `json:"error"`
}

// ChecklistPageSuccessResponse is the success envelope for GET /checklists.
type ChecklistPageSuccessResponse struct {
	Data  domain.Page[*domain.ChecklistItem] `json:"data"`
	Error *helpers.APIError                  `json:"error"`
}

type ChecklistController struct {
	Logger  *slog.Logger
	Service domain.ChecklistService
}

func NewChecklistController(logger *slog.Logger, svc domain.ChecklistService) *ChecklistController {
	return &ChecklistController{Logger: logger, Service: svc}
}

// ListChecklist godoc
// @Summary List a project's checklist
// @Tags checklists
// @Produce json
// @Param project_id query int true "Project ID"
// @Param page query int false "Page number (default 1)"
// @Param size query int false "Page size (default 50, max 100)"
// @Param sort_by query string false "id"
// @Param sort_order query string false "asc or desc (default desc)"
// @Success 200 {object} controllers.ChecklistPageSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /checklists [get]
func (c *ChecklistController) ListChecklist(w http.ResponseWriter, r *http.Request) {
	projectID, ok := queryProjectID(w, r)
	if !ok {
		return
	}
	req, ok := pageRequest(w, r)
	if !ok {
		return
	}
	page, err := c.Service.ListChecklist(r.Context(), projectID, req)
	if err != nil {
		writeServiceError(c.Logger, w, r, err, "")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, page)
}

// UpdateChecklistItem godoc
// @Summary Mark a checklist item done or not done
// @Tags checklists
// @Accept json
// @Produce json
// @Param X-Actor header string false "Name recorded in the activity feed"
// @Param id path int true "Checklist item ID"
// @Param item body UpdateChecklistRequest true "New state"
// @Success 200 {object} controllers.ChecklistItemSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /checklists/{id} [patch]
func (c *ChecklistController) UpdateChecklistItem(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req UpdateChecklistRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	item, err := c.Service.SetDone(r.Context(), id, *req.IsDone, middleware.ActorFromContext(r.Context()))
	if err != nil {
		writeServiceError(c.Logger, w, r, err, "checklist item not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, item)
}
