package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"lawflow/internal/delivery/http/helpers"
	"lawflow/internal/domain"
)

const contentMissingMessage = "File content not available (seed metadata only). Upload a real file to preview/download."

// writeServiceError maps a service error to the response envelope. Only
// unexpected errors are logged.
func writeServiceError(logger *slog.Logger, w http.ResponseWriter, r *http.Request, err error, notFoundMsg string) {
	switch {
	case errors.Is(err, domain.ErrFileContentMissing):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, contentMissingMessage)
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, notFoundMsg)
	case errors.Is(err, domain.ErrConflict):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, err.Error())
	case errors.Is(err, domain.ErrFileTooLarge):
		helpers.WriteJSONError(w, http.StatusRequestEntityTooLarge, helpers.ErrCodePayloadTooLarge, err.Error())
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrInvalidReference),
		errors.Is(err, domain.ErrEmptyFile),
		errors.Is(err, domain.ErrUnsupportedFileType),
		errors.Is(err, domain.ErrMissingRecipient):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
	default:
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal server error")
	}
}

// pageRequest parses list query parameters, writing a 400 on failure.
func pageRequest(w http.ResponseWriter, r *http.Request) (domain.PageRequest, bool) {
	req, err := helpers.ParsePageRequest(r)
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return req, false
	}
	return req, true
}

// pathID parses a positive integer path value, writing a 400 on failure.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := helpers.PathID(r, name)
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return 0, false
	}
	return id, true
}

// queryProjectID reads the required project_id query parameter.
func queryProjectID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := helpers.RequiredInt64Param(r, "project_id")
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return 0, false
	}
	return id, true
}
