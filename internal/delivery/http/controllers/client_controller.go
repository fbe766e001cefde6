package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"lawflow/internal/delivery/http/helpers"
	"lawflow/internal/domain"
)

// CreateClientRequest is the request body for POST /clients.
type CreateClientRequest struct {
	Name  string  `json:"name"`
	Email *string `json:"email"`
	Phone *string `json:"phone"`
	Notes *string `json:"notes"`
}

// Validate implements Validator.
func (c CreateClientRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, "name is required")
	}
	if c.Email != nil && *c.Email != "" && !emailRegex.MatchString(*c.Email) {
		errs = append(errs, "email must be a valid email address")
	}
	return errs
}

// ClientSuccessResponse is the success envelope for a single client.
type ClientSuccessResponse struct {
	Data  *domain.Client    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ClientPageSuccessResponse is the success envelope for GET /clients.
type ClientPageSuccessResponse struct {
	Data  domain.Page[*domain.Client] `json:"data"`
	Error *helpers.APIError           `json:"error"`
}

type ClientController struct {
	Logger  *slog.Logger
	Service domain.ClientService
}

func NewClientController(logger *slog.Logger, svc domain.ClientService) *ClientController {
	return &ClientController{Logger: logger, Service: svc}
}

// ListClients godoc
// @Summary List clients
// @Tags clients
// @Produce json
// @Param page query int false "Page number (default 1)"
// @Param size query int false "Page size (default 50, max 100)"
// @Param sort_by query string false "id, name or created_at"
// @Param sort_order query string false "asc or desc (default desc)"
// @Success 200 {object} controllers.ClientPageSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /clients [get]
func (c *ClientController) ListClients(w http.ResponseWriter, r *http.Request) {
	req, ok := pageRequest(w, r)
	if !ok {
		return
	}
	page, err := c.Service.ListClients(r.Context(), req)
	if err != nil {
		writeServiceError(c.Logger, w, r, err, "")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, page)
}

// GetClient godoc
// @Summary Get a client by ID
// @Tags clients
// @Produce json
// @Param id path int true "Client ID"
// @Success 200 {object} controllers.ClientSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /clients/{id} [get]
func (c *ClientController) GetClient(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	client, err := c.Service.GetClient(r.Context(), id)
	if err != nil {
		writeServiceError(c.Logger, w, r, err, "client not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, client)
}

// CreateClient godoc
// @Summary Create a client
// @Tags clients
// @Accept json
// @Produce json
// @Param client body CreateClientRequest true "Client data"
// @Success 201 {object} controllers.ClientSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /clients [post]
func (c *ClientController) CreateClient(w http.ResponseWriter, r *http.Request) {
	var req CreateClientRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	client := &domain.Client{Name: req.Name, Email: req.Email, Phone: req.Phone, Notes: req.Notes}
	if err := c.Service.CreateClient(r.Context(), client); err != nil {
		writeServiceError(c.Logger, w, r, err, "")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, client)
}
