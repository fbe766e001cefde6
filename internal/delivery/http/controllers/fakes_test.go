package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"lawflow/internal/delivery/http/helpers"
	"lawflow/internal/domain"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

var errBoom = errors.New("boom")

func ptr[T any](v T) *T { return &v }

// decodeEnvelope decodes the response envelope, leaving data raw for the caller.
func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder) (json.RawMessage, *helpers.APIError) {
	t.Helper()
	var body struct {
		Data  json.RawMessage   `json:"data"`
		Error *helpers.APIError `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	return body.Data, body.Error
}

func emptyPage[T any](req domain.PageRequest) domain.Page[T] {
	return domain.NewPage[T](nil, req, 0)
}

type fakeClientService struct {
	page        domain.Page[*domain.Client]
	client      *domain.Client
	err         error
	lastReq     domain.PageRequest
	lastID      int64
	lastCreated *domain.Client
}

func (f *fakeClientService) ListClients(_ context.Context, req domain.PageRequest) (domain.Page[*domain.Client], error) {
	f.lastReq = req
	return f.page, f.err
}

func (f *fakeClientService) GetClient(_ context.Context, id int64) (*domain.Client, error) {
	f.lastID = id
	return f.client, f.err
}

func (f *fakeClientService) CreateClient(_ context.Context, c *domain.Client) error {
	f.lastCreated = c
	if f.err != nil {
		return f.err
	}
	c.ID = 1
	return nil
}

type fakeProjectService struct {
	page       domain.Page[*domain.Project]
	detail     *domain.ProjectDetail
	updated    *domain.Project
	err        error
	lastFilter domain.ProjectFilter
	lastReq    domain.PageRequest
	lastID     int64
	lastCreate *domain.Project
	lastUpdate domain.ProjectUpdate
	lastActor  string
}

func (f *fakeProjectService) ListProjects(_ context.Context, filter domain.ProjectFilter, req domain.PageRequest) (domain.Page[*domain.Project], error) {
	f.lastFilter, f.lastReq = filter, req
	return f.page, f.err
}

func (f *fakeProjectService) GetProject(_ context.Context, id int64) (*domain.ProjectDetail, error) {
	f.lastID = id
	return f.detail, f.err
}

func (f *fakeProjectService) CreateProject(_ context.Context, p *domain.Project, actor string) error {
	f.lastCreate, f.lastActor = p, actor
	if f.err != nil {
		return f.err
	}
	p.ID = 10
	return nil
}

func (f *fakeProjectService) UpdateProject(_ context.Context, id int64, u domain.ProjectUpdate, actor string) (*domain.Project, error) {
	f.lastID, f.lastUpdate, f.lastActor = id, u, actor
	return f.updated, f.err
}

func (f *fakeProjectService) DeleteProject(_ context.Context, id int64, actor string) error {
	f.lastID, f.lastActor = id, actor
	return f.err
}

type fakeTaskService struct {
	page       domain.Page[*domain.Task]
	updated    *domain.Task
	err        error
	lastFilter domain.TaskFilter
	lastReq    domain.PageRequest
	lastID     int64
	lastCreate *domain.Task
	lastUpdate domain.TaskUpdate
	lastActor  string
}

func (f *fakeTaskService) ListTasks(_ context.Context, filter domain.TaskFilter, req domain.PageRequest) (domain.Page[*domain.Task], error) {
	f.lastFilter, f.lastReq = filter, req
	return f.page, f.err
}

func (f *fakeTaskService) CreateTask(_ context.Context, t *domain.Task, actor string) error {
	f.lastCreate, f.lastActor = t, actor
	if f.err != nil {
		return f.err
	}
	t.ID = 5
	return nil
}

func (f *fakeTaskService) UpdateTask(_ context.Context, id int64, u domain.TaskUpdate, actor string) (*domain.Task, error) {
	f.lastID, f.lastUpdate, f.lastActor = id, u, actor
	return f.updated, f.err
}

func (f *fakeTaskService) DeleteTask(_ context.Context, id int64, actor string) error {
	f.lastID, f.lastActor = id, actor
	return f.err
}

type fakeChecklistService struct {
	page          domain.Page[*domain.ChecklistItem]
	item          *domain.ChecklistItem
	err           error
	lastProjectID int64
	lastID        int64
	lastDone      bool
	lastActor     string
}

func (f *fakeChecklistService) ListChecklist(_ context.Context, projectID int64, req domain.PageRequest) (domain.Page[*domain.ChecklistItem], error) {
	f.lastProjectID = projectID
	return f.page, f.err
}

func (f *fakeChecklistService) SetDone(_ context.Context, id int64, done bool, actor string) (*domain.ChecklistItem, error) {
	f.lastID, f.lastDone, f.lastActor = id, done, actor
	return f.item, f.err
}

type fakeTimelineService struct {
	page          domain.Page[*domain.TimelineItem]
	err           error
	lastProjectID int64
	lastCreate    *domain.TimelineItem
	lastActor     string
}

func (f *fakeTimelineService) ListTimeline(_ context.Context, projectID int64, req domain.PageRequest) (domain.Page[*domain.TimelineItem], error) {
	f.lastProjectID = projectID
	return f.page, f.err
}

func (f *fakeTimelineService) CreateTimelineItem(_ context.Context, it *domain.TimelineItem, actor string) error {
	f.lastCreate, f.lastActor = it, actor
	if f.err != nil {
		return f.err
	}
	it.ID = 3
	return nil
}

type fakeActivityService struct {
	page          domain.Page[*domain.Activity]
	err           error
	lastProjectID int64
	lastReq       domain.PageRequest
}

func (f *fakeActivityService) ListActivity(_ context.Context, projectID int64, req domain.PageRequest) (domain.Page[*domain.Activity], error) {
	f.lastProjectID, f.lastReq = projectID, req
	return f.page, f.err
}

type fakeFileService struct {
	page       domain.Page[*domain.FileItem]
	item       *domain.FileItem
	versions   []*domain.FileItem
	content    *domain.FileContent
	err        error
	lastUpload domain.FileUpload
	lastID     int64
	lastKind   domain.FileKind
}

func (f *fakeFileService) ListFiles(_ context.Context, projectID int64, req domain.PageRequest) (domain.Page[*domain.FileItem], error) {
	return f.page, f.err
}

func (f *fakeFileService) Upload(_ context.Context, u domain.FileUpload) (*domain.FileItem, error) {
	f.lastUpload = u
	return f.item, f.err
}

func (f *fakeFileService) ListVersions(_ context.Context, id int64) ([]*domain.FileItem, error) {
	f.lastID = id
	return f.versions, f.err
}

func (f *fakeFileService) Open(_ context.Context, id int64, kind domain.FileKind) (*domain.FileContent, error) {
	f.lastID, f.lastKind = id, kind
	return f.content, f.err
}

func fileContent(body, name, contentType string) *domain.FileContent {
	return &domain.FileContent{Body: io.NopCloser(strings.NewReader(body)), Filename: name, ContentType: contentType}
}

type fakeTemplateService struct {
	lastMunicipality string
	lastType         string
}

func (f *fakeTemplateService) Lookup(municipality, transactionType string) domain.MunicipalityTemplate {
	f.lastMunicipality, f.lastType = municipality, transactionType
	return domain.MunicipalityTemplate{
		Municipality:       municipality,
		TransactionType:    transactionType,
		ChecklistOverrides: []string{},
		DocumentTemplates:  []string{},
	}
}

func (f *fakeTemplateService) StandardChecklist(string) []domain.ChecklistStep { return nil }

type fakeCalendarService struct {
	body          string
	err           error
	lastProjectID int64
}

func (f *fakeCalendarService) ProjectCalendar(_ context.Context, projectID int64) (string, error) {
	f.lastProjectID = projectID
	return f.body, f.err
}

type fakeClosingPackService struct {
	zip           []byte
	writeErr      error
	notifyErr     error
	lastProjectID int64
	lastActor     string
}

func (f *fakeClosingPackService) WriteClosingPack(_ context.Context, projectID int64, w io.Writer) error {
	f.lastProjectID = projectID
	if f.writeErr != nil {
		return f.writeErr
	}
	_, err := w.Write(f.zip)
	return err
}

func (f *fakeClosingPackService) NotifyClient(_ context.Context, projectID int64, actor string) error {
	f.lastProjectID, f.lastActor = projectID, actor
	return f.notifyErr
}

type fakeHealthService struct {
	report domain.HealthReport
}

func (f *fakeHealthService) Check(context.Context) domain.HealthReport { return f.report }
