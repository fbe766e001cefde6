package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"lawflow/internal/delivery/http/helpers"
	"lawflow/internal/delivery/http/middleware"
	"lawflow/internal/domain"
)

// CreateProjectRequest is the request body for POST /projects. Status, risk and
// bg_color fall back to defaults when omitted.
type CreateProjectRequest struct {
	Title           string       `json:"title"`
	TransactionType string       `json:"transaction_type"`
	Location        string       `json:"location"`
	ClientID        int64        `json:"client_id"`
	Status          string       `json:"status"`
	Risk            string       `json:"risk"`
	BgColor         *string      `json:"bg_color"`
	StartDate       *domain.Date `json:"start_date" swaggertype:"string" example:"2026-01-15"`
	TargetCloseDate *domain.Date `json:"target_close_date" swaggertype:"string" example:"2026-03-31"`
}

// Validate implements Validator.
func (c CreateProjectRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Title) == "" {
		errs = append(errs, "title is required")
	} else if len(c.Title) > maxTitleLen {
		errs = append(errs, "title must be at most 255 characters")
	}
	if c.TransactionType != domain.TransactionPurchase && c.TransactionType != domain.TransactionSale {
		errs = append(errs, "transaction_type must be Purchase or Sale")
	}
	if strings.TrimSpace(c.Location) == "" {
		errs = append(errs, "location is required")
	}
	if c.ClientID < 1 {
		errs = append(errs, "client_id is required")
	}
	if !validColor(c.BgColor) {
		errs = append(errs, "bg_color must be a hex color")
	}
	if c.StartDate != nil && c.TargetCloseDate != nil && c.TargetCloseDate.Before(c.StartDate.Time) {
		errs = append(errs, "target_close_date must not be before start_date")
	}
	return errs
}

// UpdateProjectRequest is the request body for PATCH /projects/{id}. Omitted
// fields are unchanged.
type UpdateProjectRequest struct {
	Title           *string      `json:"title"`
	Status          *string      `json:"status"`
	Risk            *string      `json:"risk"`
	TargetCloseDate *domain.Date `json:"target_close_date" swaggertype:"string" example:"2026-03-31"`
	BgColor         *string      `json:"bg_color"`
}

// Validate implements Validator.
func (u UpdateProjectRequest) Validate() []string {
	var errs []string
	if u.Title != nil && strings.TrimSpace(*u.Title) == "" {
		errs = append(errs, "title cannot be empty")
	}
	if u.Title != nil && len(*u.Title) > maxTitleLen {
		errs = append(errs, "title must be at most 255 characters")
	}
	if u.Status != nil && strings.TrimSpace(*u.Status) == "" {
		errs = append(errs, "status cannot be empty")
	}
	if u.Risk != nil && strings.TrimSpace(*u.Risk) == "" {
		errs = append(errs, "risk cannot be empty")
	}
	if !validColor(u.BgColor) {
		errs = append(errs, "bg_color must be a hex color")
	}
	return errs
}

// ProjectSuccessResponse is the success envelope for a single project.
type ProjectSuccessResponse struct {
	Data  *domain.Project   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ProjectDetailSuccessResponse is the success envelope for GET /projects/{id}.
type ProjectDetailSuccessResponse struct {
	Data  *domain.ProjectDetail `json:"data"`
	Error *helpers.APIError     `json:"error"`
}

// ProjectPageSuccessResponse is the success envelope for GET /projects.
type ProjectPageSuccessResponse struct {
	Data  domain.Page[*domain.Project] `json:"data"`
	Error *helpers.APIError            `json:"error"`
}

// DeletedResponse is the data returned by DELETE endpoints.
type DeletedResponse struct {
	ID      int64 `json:"id"`
	Deleted bool  `json:"deleted"`
}

type ProjectController struct {
	Logger  *slog.Logger
	Service domain.ProjectService
}

func NewProjectController(logger *slog.Logger, svc domain.ProjectService) *ProjectController {
	return &ProjectController{Logger: logger, Service: svc}
}

// ListProjects godoc
// @Summary List projects
// @Description Soft-deleted projects are excluded.
// @Tags projects
// @Produce json
// @Param status query string false "Filter by status"
// @Param page query int false "Page number (default 1)"
// @Param size query int false "Page size (default 50, max 100)"
// @Param sort_by query string false "id, title, status, risk, start_date, target_close_date, created_at or updated_at"
// @Param sort_order query string false "asc or desc (default desc)"
// @Success 200 {object} controllers.ProjectPageSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /projects [get]
func (c *ProjectController) ListProjects(w http.ResponseWriter, r *http.Request) {
	req, ok := pageRequest(w, r)
	if !ok {
		return
	}
	filter := domain.ProjectFilter{Status: strings.TrimSpace(r.URL.Query().Get("status"))}
	page, err := c.Service.ListProjects(r.Context(), filter, req)
	if err != nil {
		writeServiceError(c.Logger, w, r, err, "")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, page)
}

// GetProject godoc
// @Summary Get a project with its tasks, checklist, timeline and recent activity
// @Tags projects
// @Produce json
// @Param id path int true "Project ID"
// @Success 200 {object} controllers.ProjectDetailSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /projects/{id} [get]
func (c *ProjectController) GetProject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	detail, err := c.Service.GetProject(r.Context(), id)
	if err != nil {
		writeServiceError(c.Logger, w, r, err, "project not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, detail)
}

// CreateProject godoc
// @Summary Create a project
// @Description Instantiates the standard checklist for the transaction type plus municipality steps.
// @Tags projects
// @Accept json
// @Produce json
// @Param X-Actor header string false "Name recorded in the activity feed"
// @Param project body CreateProjectRequest true "Project data"
// @Success 201 {object} controllers.ProjectSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /projects [post]
func (c *ProjectController) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req CreateProjectRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	clientID := req.ClientID
	project := &domain.Project{
		Title:           req.Title,
		TransactionType: req.TransactionType,
		Location:        req.Location,
		Status:          req.Status,
		Risk:            req.Risk,
		StartDate:       req.StartDate,
		TargetCloseDate: req.TargetCloseDate,
		ClientID:        &clientID,
	}
	if req.BgColor != nil {
		project.BgColor = *req.BgColor
	}
	if err := c.Service.CreateProject(r.Context(), project, middleware.ActorFromContext(r.Context())); err != nil {
		writeServiceError(c.Logger, w, r, err, "")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, project)
}

// UpdateProject godoc
// @Summary Update a project
// @Tags projects
// @Accept json
// @Produce json
// @Param X-Actor header string false "Name recorded in the activity feed"
// @Param id path int true "Project ID"
// @Param project body UpdateProjectRequest true "Fields to change"
// @Success 200 {object} controllers.ProjectSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /projects/{id} [patch]
func (c *ProjectController) UpdateProject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req UpdateProjectRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	update := domain.ProjectUpdate{
		Title:           req.Title,
		Status:          req.Status,
		Risk:            req.Risk,
		TargetCloseDate: req.TargetCloseDate,
		BgColor:         req.BgColor,
	}
	project, err := c.Service.UpdateProject(r.Context(), id, update, middleware.ActorFromContext(r.Context()))
	if err != nil {
		writeServiceError(c.Logger, w, r, err, "project not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, project)
}

// DeleteProject godoc
// @Summary Soft-delete a project
// @Tags projects
// @Produce json
// @Param X-Actor header string false "Name recorded in the activity feed"
// @Param id path int true "Project ID"
// @Success 200 {object} helpers.APIResponse "data contains id and deleted"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /projects/{id} [delete]
func (c *ProjectController) DeleteProject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := c.Service.DeleteProject(r.Context(), id, middleware.ActorFromContext(r.Context())); err != nil {
		writeServiceError(c.Logger, w, r, err, "project not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, DeletedResponse{ID: id, Deleted: true})
}
