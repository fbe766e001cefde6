package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lawflow/internal/domain"
)

type projectFixture struct {
	projects   *fakeProjectRepo
	clients    *fakeClientRepo
	tasks      *fakeTaskRepo
	checklist  *fakeChecklistRepo
	timeline   *fakeTimelineRepo
	activities *fakeActivityRepo
	cache      *fakeCache
	svc        domain.ProjectService
}

func newProjectFixture() *projectFixture {
	f := &projectFixture{
		projects:   newFakeProjectRepo(),
		clients:    newFakeClientRepo(),
		tasks:      newFakeTaskRepo(),
		checklist:  &fakeChecklistRepo{},
		timeline:   &fakeTimelineRepo{},
		activities: &fakeActivityRepo{},
		cache:      newFakeCache(),
	}
	recorder := NewActivityRecorder(f.activities, f.cache, testLogger)
	f.svc = NewProjectService(ProjectRepositories{
		Projects:   f.projects,
		Clients:    f.clients,
		Tasks:      f.tasks,
		Checklist:  f.checklist,
		Timeline:   f.timeline,
		Activities: f.activities,
	}, NewTemplateService(), f.cache, testTimeout, recorder, testLogger, testTimeout)
	return f
}

func (f *projectFixture) createProject(t *testing.T, location, transactionType string) *domain.Project {
	t.Helper()
	c := &domain.Client{Name: "Sofía Martínez", Email: ptr("sofia@example.com")}
	require.NoError(t, f.clients.Create(context.Background(), c))
	p := &domain.Project{
		Title:           "Purchase – Apartment",
		TransactionType: transactionType,
		Location:        location,
		ClientID:        &c.ID,
	}
	require.NoError(t, f.svc.CreateProject(context.Background(), p, "Lucía"))
	return p
}

func TestProjectService_CreateProject_DefaultsAndChecklist(t *testing.T) {
	f := newProjectFixture()
	p := f.createProject(t, "Marbella", domain.TransactionPurchase)

	assert.Equal(t, int64(1), p.ID)
	assert.Equal(t, domain.DefaultProjectStatus, p.Status)
	assert.Equal(t, domain.DefaultProjectRisk, p.Risk)
	assert.Equal(t, domain.DefaultProjectBgColor, p.BgColor)
	require.NotNil(t, p.StartDate)

	// 14 standard purchase steps plus 2 Marbella overrides.
	items, err := f.checklist.ListByProjectID(context.Background(), p.ID)
	require.NoError(t, err)
	require.Len(t, items, 16)
	assert.Equal(t, StageIntake, items[0].Stage)
	assert.Equal(t, p.StartDate.AddDays(1), *items[0].DueDate)
	assert.Equal(t, StageDD, items[15].Stage)
	assert.Equal(t, "Community (HOA) statutes review for short-let restrictions", items[15].Label)

	a := f.activities.last()
	require.NotNil(t, a)
	assert.Equal(t, p.ID, a.ProjectID)
	assert.Equal(t, "Lucía", a.Actor)
	assert.Equal(t, "Created project", a.Verb)
	assert.Equal(t, p.Title, *a.Detail)
}

func TestProjectService_CreateProject_UnknownMunicipality(t *testing.T) {
	f := newProjectFixture()
	p := f.createProject(t, "Ronda", domain.TransactionSale)
	items, _ := f.checklist.ListByProjectID(context.Background(), p.ID)
	assert.Len(t, items, 7)
}

func TestProjectService_CreateProject_Validation(t *testing.T) {
	clientID := int64(1)
	tests := []struct {
		name    string
		project domain.Project
	}{
		{name: "missing title", project: domain.Project{TransactionType: "Purchase", Location: "Mijas", ClientID: &clientID}},
		{name: "bad transaction type", project: domain.Project{Title: "x", TransactionType: "Lease", Location: "Mijas", ClientID: &clientID}},
		{name: "missing location", project: domain.Project{Title: "x", TransactionType: "Sale", ClientID: &clientID}},
		{name: "missing client", project: domain.Project{Title: "x", TransactionType: "Sale", Location: "Mijas"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newProjectFixture()
			err := f.svc.CreateProject(context.Background(), &tt.project, "")
			require.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Empty(t, f.projects.byID)
			assert.Empty(t, f.activities.items)
		})
	}
}

func TestProjectService_GetProject_CachesUntilWrite(t *testing.T) {
	f := newProjectFixture()
	p := f.createProject(t, "Mijas", domain.TransactionPurchase)
	require.NoError(t, f.tasks.Create(context.Background(), &domain.Task{ProjectID: p.ID, Title: "Nota Simple"}))

	ctx := context.Background()
	first, err := f.svc.GetProject(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, first.Client)
	assert.Equal(t, "Sofía Martínez", first.Client.Name)
	assert.Len(t, first.Tasks, 1)
	assert.Len(t, first.Checklist, 15)
	assert.Len(t, first.Activities, 1)
	loads, hits := f.projects.getCalls, f.cache.hits

	second, err := f.svc.GetProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, loads, f.projects.getCalls, "second read is served from cache")
	assert.Equal(t, first.Title, second.Title)
	assert.Equal(t, hits+2, f.cache.hits, "generation and detail both hit")

	_, err = f.svc.UpdateProject(ctx, p.ID, domain.ProjectUpdate{Status: ptr("Notary")}, "Carlos")
	require.NoError(t, err)
	assert.Contains(t, f.cache.deleted, projectCacheKey(p.ID))

	third, err := f.svc.GetProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Notary", third.Status)
	assert.Len(t, third.Activities, 2)
}

func TestProjectService_GetProject_WriteDuringLoadIsNotCached(t *testing.T) {
	f := newProjectFixture()
	p := f.createProject(t, "Mijas", domain.TransactionPurchase)
	ctx := context.Background()

	// The project row is read as "Due Diligence", then the status changes
	// before the detail is stored.
	f.projects.onGet = func() {
		_, err := f.svc.UpdateProject(ctx, p.ID, domain.ProjectUpdate{Status: ptr("Notary")}, "Carlos")
		require.NoError(t, err)
	}
	stale, err := f.svc.GetProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultProjectStatus, stale.Status)

	loads := f.projects.getCalls
	fresh, err := f.svc.GetProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Greater(t, f.projects.getCalls, loads, "stale entry is not served")
	assert.Equal(t, "Notary", fresh.Status)

	loads = f.projects.getCalls
	again, err := f.svc.GetProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, loads, f.projects.getCalls)
	assert.Equal(t, "Notary", again.Status)
}

func TestProjectService_GetProject_CacheFailureFallsThrough(t *testing.T) {
	f := newProjectFixture()
	p := f.createProject(t, "Mijas", domain.TransactionSale)
	f.cache.err = errBoom

	detail, err := f.svc.GetProject(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, detail.ID)
}

func TestProjectService_GetProject_NotFound(t *testing.T) {
	f := newProjectFixture()
	_, err := f.svc.GetProject(context.Background(), 99)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProjectService_UpdateProject(t *testing.T) {
	f := newProjectFixture()
	p := f.createProject(t, "Estepona", domain.TransactionPurchase)

	updated, err := f.svc.UpdateProject(context.Background(), p.ID, domain.ProjectUpdate{
		Title:           ptr("Purchase – New-build"),
		Risk:            ptr("Critical"),
		TargetCloseDate: domain.DatePtr(day("2026-12-01")),
	}, "")
	require.NoError(t, err)
	assert.Equal(t, "Purchase – New-build", updated.Title)
	assert.Equal(t, "Critical", updated.Risk)
	assert.Equal(t, domain.DefaultProjectStatus, updated.Status, "nil fields are unchanged")
	assert.Equal(t, "2026-12-01", updated.TargetCloseDate.String())

	a := f.activities.last()
	assert.Equal(t, "Updated project", a.Verb)
	assert.Equal(t, "title, risk, target_close_date", *a.Detail)
	assert.Equal(t, domain.DefaultActor, a.Actor)

	_, err = f.svc.UpdateProject(context.Background(), p.ID, domain.ProjectUpdate{Title: ptr(" ")}, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.svc.UpdateProject(context.Background(), 404, domain.ProjectUpdate{}, "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProjectService_DeleteProject(t *testing.T) {
	f := newProjectFixture()
	p := f.createProject(t, "Mijas", domain.TransactionSale)
	ctx := context.Background()

	_, err := f.svc.GetProject(ctx, p.ID)
	require.NoError(t, err)
	require.NoError(t, f.svc.DeleteProject(ctx, p.ID, "Ana"))

	_, err = f.svc.GetProject(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "cached view is dropped with the project")

	page, err := f.svc.ListProjects(ctx, domain.ProjectFilter{}, domain.NewPageRequest())
	require.NoError(t, err)
	assert.Equal(t, 0, page.Total)
	assert.NotNil(t, page.Items)

	assert.ErrorIs(t, f.svc.DeleteProject(ctx, p.ID, "Ana"), domain.ErrNotFound)
}

func TestProjectService_ListProjects_StatusFilter(t *testing.T) {
	f := newProjectFixture()
	f.createProject(t, "Mijas", domain.TransactionSale)
	p2 := f.createProject(t, "Marbella", domain.TransactionPurchase)
	_, err := f.svc.UpdateProject(context.Background(), p2.ID, domain.ProjectUpdate{Status: ptr("Notary")}, "")
	require.NoError(t, err)

	page, err := f.svc.ListProjects(context.Background(), domain.ProjectFilter{Status: "Notary"}, domain.NewPageRequest())
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, p2.ID, page.Items[0].ID)
}

func TestActivityRecorder_FailureDoesNotFailWrite(t *testing.T) {
	f := newProjectFixture()
	f.activities.err = errBoom
	p := f.createProject(t, "Mijas", domain.TransactionSale)
	assert.NotZero(t, p.ID)
}
