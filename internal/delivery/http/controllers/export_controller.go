package controllers

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"lawflow/internal/delivery/http/helpers"
	"lawflow/internal/delivery/http/middleware"
	"lawflow/internal/domain"
)

// NotifyResponse is the data returned by POST /closing-pack/{project_id}/notify.
type NotifyResponse struct {
	ProjectID int64 `json:"project_id"`
	Sent      bool  `json:"sent"`
}

// NotifySuccessResponse is the success envelope for the closing pack notification.
type NotifySuccessResponse struct {
	Data  NotifyResponse    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type ExportController struct {
	Logger             *slog.Logger
	Calendar           domain.CalendarService
	ClosingPackService domain.ClosingPackService
}

func NewExportController(logger *slog.Logger, calendar domain.CalendarService, closingPack domain.ClosingPackService) *ExportController {
	return &ExportController{Logger: logger, Calendar: calendar, ClosingPackService: closingPack}
}

// ProjectCalendar godoc
// @Summary Export a project's deadlines as iCalendar
// @Description One all-day event per dated task and per milestone. Unknown projects return an empty calendar.
// @Tags exports
// @Produce plain
// @Param project_id query int true "Project ID"
// @Success 200 {string} string "text/calendar body"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /calendar/ics [get]
func (c *ExportController) ProjectCalendar(w http.ResponseWriter, r *http.Request) {
	projectID, ok := queryProjectID(w, r)
	if !ok {
		return
	}
	body, err := c.Calendar.ProjectCalendar(r.Context(), projectID)
	if err != nil {
		writeServiceError(c.Logger, w, r, err, "")
		return
	}
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="project_%d.ics"`, projectID))
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, body)
}

// ClosingPack godoc
// @Summary Download the closing pack
// @Description Zip with project summary, notary agenda, checklist, open tasks and a manifest.
// @Tags exports
// @Produce application/zip
// @Param project_id path int true "Project ID"
// @Success 200 {file} file
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /closing-pack/{project_id} [get]
func (c *ExportController) ClosingPack(w http.ResponseWriter, r *http.Request) {
	projectID, ok := pathID(w, r, "project_id")
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := c.ClosingPackService.WriteClosingPack(r.Context(), projectID, &buf); err != nil {
		writeServiceError(c.Logger, w, r, err, "project not found")
		return
	}
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="closing_pack_project_%d.zip"`, projectID))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// NotifyClient godoc
// @Summary Email the client a closing pack summary
// @Tags exports
// @Produce json
// @Param X-Actor header string false "Name recorded in the activity feed"
// @Param project_id path int true "Project ID"
// @Success 200 {object} controllers.NotifySuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /closing-pack/{project_id}/notify [post]
func (c *ExportController) NotifyClient(w http.ResponseWriter, r *http.Request) {
	projectID, ok := pathID(w, r, "project_id")
	if !ok {
		return
	}
	if err := c.ClosingPackService.NotifyClient(r.Context(), projectID, middleware.ActorFromContext(r.Context())); err != nil {
		writeServiceError(c.Logger, w, r, err, "project not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, NotifyResponse{ProjectID: projectID, Sent: true})
}
