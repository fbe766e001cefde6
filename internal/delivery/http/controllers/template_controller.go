package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"lawflow/internal/delivery/http/helpers"
	"lawflow/internal/domain"
)

// TemplateSuccessResponse is the success envelope for GET /templates.
type TemplateSuccessResponse struct {
	Data  domain.MunicipalityTemplate `json:"data"`
	Error *helpers.APIError           `json:"error"`
}

type TemplateController struct {
	Logger  *slog.Logger
	Service domain.TemplateService
}

func NewTemplateController(logger *slog.Logger, svc domain.TemplateService) *TemplateController {
	return &TemplateController{Logger: logger, Service: svc}
}

// GetTemplates godoc
// @Summary Municipality checklist steps and document templates
// @Description Unknown municipality and transaction type combinations return empty lists.
// @Tags templates
// @Produce json
// @Param municipality query string true "Municipality, e.g. Marbella"
// @Param transaction_type query string true "Purchase or Sale"
// @Success 200 {object} controllers.TemplateSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Router /templates [get]
func (c *TemplateController) GetTemplates(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	municipality := strings.TrimSpace(q.Get("municipality"))
	transactionType := strings.TrimSpace(q.Get("transaction_type"))
	if municipality == "" || transactionType == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "municipality and transaction_type are required")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, c.Service.Lookup(municipality, transactionType))
}
