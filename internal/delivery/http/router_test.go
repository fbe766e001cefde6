package http

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lawflow/internal/delivery/http/controllers"
)

// routingOnly builds controllers with nil services. Requests used with it must
// be rejected before any service is called.
func routingOnly() Controllers {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return Controllers{
		Clients:   controllers.NewClientController(logger, nil),
		Projects:  controllers.NewProjectController(logger, nil),
		Tasks:     controllers.NewTaskController(logger, nil),
		Checklist: controllers.NewChecklistController(logger, nil),
		Timeline:  controllers.NewTimelineController(logger, nil),
		Activity:  controllers.NewActivityController(logger, nil),
		Files:     controllers.NewFileController(logger, nil, 1<<20),
		Templates: controllers.NewTemplateController(logger, nil),
		Exports:   controllers.NewExportController(logger, nil, nil),
		Health:    controllers.NewHealthController(logger, nil),
	}
}

func TestNewRouter_Routes(t *testing.T) {
	var mux *http.ServeMux
	require.NotPanics(t, func() { mux = NewRouter(routingOnly()) })

	tests := []struct {
		method     string
		target     string
		wantStatus int
	}{
		{http.MethodGet, "/projects/abc", http.StatusBadRequest},
		{http.MethodPatch, "/tasks/0", http.StatusBadRequest},
		{http.MethodGet, "/files/download/abc", http.StatusBadRequest},
		{http.MethodGet, "/files/abc/versions", http.StatusBadRequest},
		{http.MethodGet, "/files/1/raw", http.StatusNotFound},
		{http.MethodGet, "/checklists", http.StatusBadRequest},
		{http.MethodGet, "/closing-pack/x", http.StatusBadRequest},
		{http.MethodGet, "/templates", http.StatusBadRequest},
		{http.MethodGet, "/nope", http.StatusNotFound},
		{http.MethodPut, "/projects/1", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			rr := httptest.NewRecorder()
			mux.ServeHTTP(rr, httptest.NewRequest(tt.method, tt.target, nil))
			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}

func TestNewHandler_Middleware(t *testing.T) {
	h := NewHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), []string{"http://app.test"}, routingOnly())

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	req.Header.Set("Origin", "http://app.test")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "http://app.test", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
}
