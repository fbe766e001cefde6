package controllers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lawflow/internal/delivery/http/middleware"
	"lawflow/internal/domain"
)

func TestTaskController_ListFilters(t *testing.T) {
	svc := &fakeTaskService{page: emptyPage[*domain.Task](domain.NewPageRequest())}
	c := NewTaskController(testLogger, svc)
	req := httptest.NewRequest(http.MethodGet, "/tasks?project_id=3&status=In+Progress&assignee=Ana&sort_by=due_date&sort_order=asc", nil)
	rr := httptest.NewRecorder()

	c.ListTasks(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, domain.TaskFilter{ProjectID: 3, Status: "In Progress", Assignee: "Ana"}, svc.lastFilter)
	assert.Equal(t, "due_date", svc.lastReq.SortBy)
	assert.Equal(t, "asc", svc.lastReq.SortOrder)
}

func TestTaskController_ListBadParams(t *testing.T) {
	for _, q := range []string{"project_id=abc", "page=0", "sort_order=up"} {
		t.Run(q, func(t *testing.T) {
			c := NewTaskController(testLogger, &fakeTaskService{})
			rr := httptest.NewRecorder()
			c.ListTasks(rr, httptest.NewRequest(http.MethodGet, "/tasks?"+q, nil))
			assert.Equal(t, http.StatusBadRequest, rr.Code)
		})
	}
}

func TestTaskController_Create(t *testing.T) {
	svc := &fakeTaskService{}
	c := NewTaskController(testLogger, svc)
	body := `{"project_id":3,"title":"Request nota simple","due_date":"2026-02-01","priority":"High"}`
	req := httptest.NewRequest(http.MethodPost, "/tasks", bytes.NewBufferString(body))
	req = req.WithContext(middleware.SetActor(req.Context(), "Carlos"))
	rr := httptest.NewRecorder()

	c.CreateTask(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)
	require.NotNil(t, svc.lastCreate)
	assert.Equal(t, int64(3), svc.lastCreate.ProjectID)
	assert.Equal(t, "High", svc.lastCreate.Priority)
	assert.Equal(t, "2026-02-01", svc.lastCreate.DueDate.String())
	assert.Equal(t, "Carlos", svc.lastActor)
}

func TestTaskController_CreateValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing project", `{"title":"A"}`},
		{"missing title", `{"project_id":1}`},
		{"bad status", `{"project_id":1,"title":"A","status":"Blocked"}`},
		{"bad priority", `{"project_id":1,"title":"A","priority":"Urgent"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeTaskService{}
			c := NewTaskController(testLogger, svc)
			rr := httptest.NewRecorder()
			c.CreateTask(rr, httptest.NewRequest(http.MethodPost, "/tasks", bytes.NewBufferString(tt.body)))
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Nil(t, svc.lastCreate)
		})
	}
}

func TestTaskController_Update(t *testing.T) {
	svc := &fakeTaskService{updated: &domain.Task{ID: 7, Status: domain.TaskDone}}
	c := NewTaskController(testLogger, svc)
	req := httptest.NewRequest(http.MethodPatch, "/tasks/7", bytes.NewBufferString(`{"status":"Done"}`))
	req.SetPathValue("id", "7")
	rr := httptest.NewRecorder()

	c.UpdateTask(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, int64(7), svc.lastID)
	assert.Equal(t, domain.TaskDone, *svc.lastUpdate.Status)
	assert.Nil(t, svc.lastUpdate.DueDate)
}

func TestTaskController_UpdateAndDeleteNotFound(t *testing.T) {
	svc := &fakeTaskService{err: domain.ErrNotFound}
	c := NewTaskController(testLogger, svc)

	req := httptest.NewRequest(http.MethodPatch, "/tasks/7", bytes.NewBufferString(`{"title":"B"}`))
	req.SetPathValue("id", "7")
	rr := httptest.NewRecorder()
	c.UpdateTask(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	req = httptest.NewRequest(http.MethodDelete, "/tasks/7", nil)
	req.SetPathValue("id", "7")
	rr = httptest.NewRecorder()
	c.DeleteTask(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestChecklistController(t *testing.T) {
	t.Run("list requires project_id", func(t *testing.T) {
		c := NewChecklistController(testLogger, &fakeChecklistService{})
		rr := httptest.NewRecorder()
		c.ListChecklist(rr, httptest.NewRequest(http.MethodGet, "/checklists", nil))
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("list", func(t *testing.T) {
		svc := &fakeChecklistService{page: emptyPage[*domain.ChecklistItem](domain.NewPageRequest())}
		c := NewChecklistController(testLogger, svc)
		rr := httptest.NewRecorder()
		c.ListChecklist(rr, httptest.NewRequest(http.MethodGet, "/checklists?project_id=2", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, int64(2), svc.lastProjectID)
	})

	t.Run("toggle", func(t *testing.T) {
		svc := &fakeChecklistService{item: &domain.ChecklistItem{ID: 8, IsDone: true}}
		c := NewChecklistController(testLogger, svc)
		req := httptest.NewRequest(http.MethodPatch, "/checklists/8", bytes.NewBufferString(`{"is_done":true}`))
		req.SetPathValue("id", "8")
		rr := httptest.NewRecorder()
		c.UpdateChecklistItem(rr, req)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.True(t, svc.lastDone)
		assert.Equal(t, int64(8), svc.lastID)
	})

	t.Run("toggle requires is_done", func(t *testing.T) {
		svc := &fakeChecklistService{}
		c := NewChecklistController(testLogger, svc)
		req := httptest.NewRequest(http.MethodPatch, "/checklists/8", bytes.NewBufferString(`{}`))
		req.SetPathValue("id", "8")
		rr := httptest.NewRecorder()
		c.UpdateChecklistItem(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Zero(t, svc.lastID)
	})
}

func TestTimelineController(t *testing.T) {
	t.Run("create", func(t *testing.T) {
		svc := &fakeTimelineService{}
		c := NewTimelineController(testLogger, svc)
		body := `{"project_id":2,"label":"Firma","start_date":"2026-03-01","end_date":"2026-03-01","kind":"Milestone"}`
		rr := httptest.NewRecorder()
		c.CreateTimelineItem(rr, httptest.NewRequest(http.MethodPost, "/timeline", bytes.NewBufferString(body)))
		require.Equal(t, http.StatusCreated, rr.Code)
		require.NotNil(t, svc.lastCreate)
		assert.Equal(t, domain.TimelineMilestone, svc.lastCreate.Kind)
		assert.Equal(t, "2026-03-01", svc.lastCreate.EndDate.String())
	})

	tests := []struct {
		name string
		body string
	}{
		{"end before start", `{"project_id":2,"label":"A","start_date":"2026-03-02","end_date":"2026-03-01","kind":"Phase"}`},
		{"missing dates", `{"project_id":2,"label":"A","kind":"Phase"}`},
		{"bad kind", `{"project_id":2,"label":"A","start_date":"2026-03-01","end_date":"2026-03-01","kind":"Event"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeTimelineService{}
			c := NewTimelineController(testLogger, svc)
			rr := httptest.NewRecorder()
			c.CreateTimelineItem(rr, httptest.NewRequest(http.MethodPost, "/timeline", bytes.NewBufferString(tt.body)))
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.Nil(t, svc.lastCreate)
		})
	}

	t.Run("list", func(t *testing.T) {
		svc := &fakeTimelineService{page: emptyPage[*domain.TimelineItem](domain.NewPageRequest())}
		c := NewTimelineController(testLogger, svc)
		rr := httptest.NewRecorder()
		c.ListTimeline(rr, httptest.NewRequest(http.MethodGet, "/timeline?project_id=5", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, int64(5), svc.lastProjectID)
	})
}

func TestActivityController(t *testing.T) {
	svc := &fakeActivityService{page: emptyPage[*domain.Activity](domain.NewPageRequest())}
	c := NewActivityController(testLogger, svc)
	rr := httptest.NewRecorder()
	c.ListActivity(rr, httptest.NewRequest(http.MethodGet, "/activity?project_id=5&page=3", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, int64(5), svc.lastProjectID)
	assert.Equal(t, 3, svc.lastReq.Page)

	svc.err = errBoom
	rr = httptest.NewRecorder()
	c.ListActivity(rr, httptest.NewRequest(http.MethodGet, "/activity?project_id=5", nil))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
