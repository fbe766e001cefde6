package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"lawflow/internal/delivery/http/helpers"
	"lawflow/internal/delivery/http/middleware"
	"lawflow/internal/domain"
)

// CreateTaskRequest is the request body for POST /tasks.
type CreateTaskRequest struct {
	ProjectID   int64        `json:"project_id"`
	Title       string       `json:"title"`
	Status      string       `json:"status"`
	Assignee    string       `json:"assignee"`
	DueDate     *domain.Date `json:"due_date" swaggertype:"string" example:"2026-02-01"`
	Priority    string       `json:"priority"`
	Tags        *string      `json:"tags"`
	Description *string      `json:"description"`
}

// Validate implements Validator.
func (c CreateTaskRequest) Validate() []string {
	var errs []string
	if c.ProjectID < 1 {
		errs = append(errs, "project_id is required")
	}
	if strings.TrimSpace(c.Title) == "" {
		errs = append(errs, "title is required")
	} else if len(c.Title) > maxTitleLen {
		errs = append(errs, "title must be at most 255 characters")
	}
	if c.Status != "" && !domain.ValidTaskStatus(c.Status) {
		errs = append(errs, "status must be one of: Backlog, In Progress, Review, Done")
	}
	if c.Priority != "" && !domain.ValidTaskPriority(c.Priority) {
		errs = append(errs, "priority must be one of: Low, Medium, High")
	}
	return errs
}

// UpdateTaskRequest is the request body for PATCH /tasks/{id}. Omitted fields
// are unchanged.
type UpdateTaskRequest struct {
	Title       *string      `json:"title"`
	Status      *string      `json:"status"`
	Assignee    *string      `json:"assignee"`
	DueDate     *domain.Date `json:"due_date" swaggertype:"string" example:"2026-02-01"`
	Priority    *string      `json:"priority"`
	Tags        *string      `json:"tags"`
	Description *string      `json:"description"`
}

// Validate implements Validator.
func (u UpdateTaskRequest) Validate() []string {
	var errs []string
	if u.Title != nil && strings.TrimSpace(*u.Title) == "" {
		errs = append(errs, "title cannot be empty")
	}
	if u.Status != nil && !domain.ValidTaskStatus(*u.Status) {
		errs = append(errs, "status must be one of: Backlog, In Progress, Review, Done")
	}
	if u.Priority != nil && !domain.ValidTaskPriority(*u.Priority) {
		errs = append(errs, "priority must be one of: Low, Medium, High")
	}
	return errs
}

// TaskSuccessResponse is the success envelope for a single task.
type TaskSuccessResponse struct {
	Data  *domain.Task      `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// TaskPageSuccessResponse is the success envelope for GET /tasks.
type TaskPageSuccessResponse struct {
	Data  domain.Page[*domain.Task] `json:"data"`
	Error *helpers.APIError         `json:"error"`
}

type TaskController struct {
	Logger  *slog.Logger
	Service domain.TaskService
}

func NewTaskController(logger *slog.Logger, svc domain.TaskService) *TaskController {
	return &TaskController{Logger: logger, Service: svc}
}

// ListTasks godoc
// @Summary List tasks
// @Description Default ordering is due date ascending with undated tasks last.
// @Tags tasks
// @Produce json
// @Param project_id query int false "Filter by project"
// @Param status query string false "Filter by status"
// @Param assignee query string false "Filter by assignee"
// @Param page query int false "Page number (default 1)"
// @Param size query int false "Page size (default 50, max 100)"
// @Param sort_by query string false "due_date, status, priority, title, created_at or updated_at"
// @Param sort_order query string false "asc or desc (default desc)"
// @Success 200 {object} controllers.TaskPageSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /tasks [get]
func (c *TaskController) ListTasks(w http.ResponseWriter, r *http.Request) {
	req, ok := pageRequest(w, r)
	if !ok {
		return
	}
	projectID, err := helpers.Int64Param(r, "project_id")
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	q := r.URL.Query()
	filter := domain.TaskFilter{
		ProjectID: projectID,
		Status:    strings.TrimSpace(q.Get("status")),
		Assignee:  strings.TrimSpace(q.Get("assignee")),
	}
	page, err := c.Service.ListTasks(r.Context(), filter, req)
	if err != nil {
		writeServiceError(c.Logger, w, r, err, "")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, page)
}

// CreateTask godoc
// @Summary Create a task
// @Description Assignee defaults to the acting user.
// @Tags tasks
// @Accept json
// @Produce json
// @Param X-Actor header string false "Name recorded in the activity feed"
// @Param task body CreateTaskRequest true "Task data"
// @Success 201 {object} controllers.TaskSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /tasks [post]
func (c *TaskController) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req CreateTaskRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	task := &domain.Task{
		ProjectID:   req.ProjectID,
		Title:       req.Title,
		Status:      req.Status,
		Assignee:    strings.TrimSpace(req.Assignee),
		DueDate:     req.DueDate,
		Priority:    req.Priority,
		Tags:        req.Tags,
		Description: req.Description,
	}
	if err := c.Service.CreateTask(r.Context(), task, middleware.ActorFromContext(r.Context())); err != nil {
		writeServiceError(c.Logger, w, r, err, "")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, task)
}

// UpdateTask godoc
// @Summary Update a task
// @Tags tasks
// @Accept json
// @Produce json
// @Param X-Actor header string false "Name recorded in the activity feed"
// @Param id path int true "Task ID"
// @Param task body UpdateTaskRequest true "Fields to change"
// @Success 200 {object} controllers.TaskSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /tasks/{id} [patch]
func (c *TaskController) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req UpdateTaskRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	update := domain.TaskUpdate{
		Title:       req.Title,
		Status:      req.Status,
		Assignee:    req.Assignee,
		DueDate:     req.DueDate,
		Priority:    req.Priority,
		Tags:        req.Tags,
		Description: req.Description,
	}
	task, err := c.Service.UpdateTask(r.Context(), id, update, middleware.ActorFromContext(r.Context()))
	if err != nil {
		writeServiceError(c.Logger, w, r, err, "task not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, task)
}

// DeleteTask godoc
// @Summary Soft-delete a task
// @Tags tasks
// @Produce json
// @Param X-Actor header string false "Name recorded in the activity feed"
// @Param id path int true "Task ID"
// @Success 200 {object} helpers.APIResponse "data contains id and deleted"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /tasks/{id} [delete]
func (c *TaskController) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := c.Service.DeleteTask(r.Context(), id, middleware.ActorFromContext(r.Context())); err != nil {
		writeServiceError(c.Logger, w, r, err, "task not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, DeletedResponse{ID: id, Deleted: true})
}
