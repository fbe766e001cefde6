package controllers

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"lawflow/internal/delivery/http/helpers"
	"lawflow/internal/delivery/http/middleware"
	"lawflow/internal/domain"
)

// multipartOverhead is the slack allowed on top of the file limit for the
// other form fields and part headers.
const multipartOverhead = 1 << 20

// FileSuccessResponse is the success envelope for an uploaded file.
type FileSuccessResponse struct {
	Data  *domain.FileItem  `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// FileListSuccessResponse is the success envelope for GET /files/{id}/versions.
type FileListSuccessResponse struct {
	Data  []*domain.FileItem `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// FilePageSuccessResponse is the success envelope for GET /files.
type FilePageSuccessResponse struct {
	Data  domain.Page[*domain.FileItem] `json:"data"`
	Error *helpers.APIError             `json:"error"`
}

type FileController struct {
	Logger         *slog.Logger
	Service        domain.FileService
	MaxUploadBytes int64
}

func NewFileController(logger *slog.Logger, svc domain.FileService, maxUploadBytes int64) *FileController {
	return &FileController{Logger: logger, Service: svc, MaxUploadBytes: maxUploadBytes}
}

// ListFiles godoc
// @Summary List a project's files
// @Tags files
// @Produce json
// @Param project_id query int true "Project ID"
// @Param page query int false "Page number (default 1)"
// @Param size query int false "Page size (default 50, max 100)"
// @Param sort_by query string false "uploaded_at, filename, file_size or version"
// @Param sort_order query string false "asc or desc (default desc)"
// @Success 200 {object} controllers.FilePageSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /files [get]
func (c *FileController) ListFiles(w http.ResponseWriter, r *http.Request) {
	projectID, ok := queryProjectID(w, r)
	if !ok {
		return
	}
	req, ok := pageRequest(w, r)
	if !ok {
		return
	}
	page, err := c.Service.ListFiles(r.Context(), projectID, req)
	if err != nil {
		writeServiceError(c.Logger, w, r, err, "")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, page)
}

// UploadFile godoc
// @Summary Upload a document
// @Description Uploading a filename that already exists in the project stores a new version.
// @Tags files
// @Accept mpfd
// @Produce json
// @Param X-Actor header string false "Name recorded in the activity feed"
// @Param project_id formData int true "Project ID"
// @Param uploader formData string false "Uploader name (defaults to the actor)"
// @Param file formData file true "Document"
// @Success 201 {object} controllers.FileSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 413 {object} helpers.APIResponse "error.code: payload_too_large"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /files/upload [post]
func (c *FileController) UploadFile(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, c.MaxUploadBytes+multipartOverhead)
	if err := r.ParseMultipartForm(multipartOverhead); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			helpers.WriteJSONError(w, http.StatusRequestEntityTooLarge, helpers.ErrCodePayloadTooLarge, c.tooLargeMessage())
			return
		}
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid multipart form: "+err.Error())
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	projectID, err := strconv.ParseInt(r.FormValue("project_id"), 10, 64)
	if err != nil || projectID < 1 {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "project_id must be a positive integer")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "file is required")
		return
	}
	defer file.Close()

	if header.Size > c.MaxUploadBytes {
		helpers.WriteJSONError(w, http.StatusRequestEntityTooLarge, helpers.ErrCodePayloadTooLarge, c.tooLargeMessage())
		return
	}
	content, err := io.ReadAll(io.LimitReader(file, c.MaxUploadBytes+1))
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "could not read upload")
		return
	}

	uploader := strings.TrimSpace(r.FormValue("uploader"))
	if uploader == "" {
		uploader = middleware.ActorFromContext(r.Context())
	}
	item, err := c.Service.Upload(r.Context(), domain.FileUpload{
		ProjectID:   projectID,
		Uploader:    uploader,
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Content:     content,
	})
	if err != nil {
		writeServiceError(c.Logger, w, r, err, "")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, item)
}

func (c *FileController) tooLargeMessage() string {
	return fmt.Sprintf("file exceeds the %d MB upload limit", c.MaxUploadBytes>>20)
}

// ListVersions godoc
// @Summary List every version of a file
// @Tags files
// @Produce json
// @Param id path int true "File ID (any version)"
// @Success 200 {object} controllers.FileListSuccessResponse
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /files/{id}/versions [get]
func (c *FileController) ListVersions(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	versions, err := c.Service.ListVersions(r.Context(), id)
	if err != nil {
		writeServiceError(c.Logger, w, r, err, "file not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, versions)
}

// Download godoc
// @Summary Download the original file
// @Tags files
// @Produce octet-stream
// @Param id path int true "File ID"
// @Success 200 {file} file
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /files/download/{id} [get]
func (c *FileController) Download(w http.ResponseWriter, r *http.Request) {
	c.serve(w, r, domain.FileOriginal, "attachment")
}

// Preview godoc
// @Summary Get the JPEG preview of a file
// @Tags files
// @Produce jpeg
// @Param id path int true "File ID"
// @Success 200 {file} file
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /files/{id}/preview [get]
func (c *FileController) Preview(w http.ResponseWriter, r *http.Request) {
	c.serve(w, r, domain.FilePreview, "inline")
}

// Thumbnail godoc
// @Summary Get the JPEG thumbnail of a file
// @Tags files
// @Produce jpeg
// @Param id path int true "File ID"
// @Success 200 {file} file
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /files/{id}/thumbnail [get]
func (c *FileController) Thumbnail(w http.ResponseWriter, r *http.Request) {
	c.serve(w, r, domain.FileThumbnail, "inline")
}

// FileResource dispatches GET /files/{id}/{kind} to ListVersions, Preview or Thumbnail.
func (c *FileController) FileResource(w http.ResponseWriter, r *http.Request) {
	switch r.PathValue("kind") {
	case "versions":
		c.ListVersions(w, r)
	case "preview":
		c.Preview(w, r)
	case "thumbnail":
		c.Thumbnail(w, r)
	default:
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "route not found")
	}
}

func (c *FileController) serve(w http.ResponseWriter, r *http.Request, kind domain.FileKind, disposition string) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	content, err := c.Service.Open(r.Context(), id, kind)
	if err != nil {
		writeServiceError(c.Logger, w, r, err, "file not found")
		return
	}
	defer content.Body.Close()

	w.Header().Set("Content-Type", content.ContentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType(disposition, map[string]string{"filename": content.Filename}))
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, content.Body); err != nil {
		c.Logger.WarnContext(r.Context(), "file stream interrupted", "path", r.URL.Path, "err", err)
	}
}
