package services

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lawflow/internal/domain"
)

type exportFixture struct {
	projects  *fakeProjectRepo
	clients   *fakeClientRepo
	tasks     *fakeTaskRepo
	checklist *fakeChecklistRepo
	timeline  *fakeTimelineRepo
	project   *domain.Project
}

func newExportFixture(t *testing.T) *exportFixture {
	t.Helper()
	ctx := context.Background()
	f := &exportFixture{
		projects:  newFakeProjectRepo(),
		clients:   newFakeClientRepo(),
		tasks:     newFakeTaskRepo(),
		checklist: &fakeChecklistRepo{},
		timeline:  &fakeTimelineRepo{},
	}
	c := &domain.Client{Name: "James O'Connor", Email: ptr("j.oconnor@example.com")}
	require.NoError(t, f.clients.Create(ctx, c))
	f.project = &domain.Project{
		Title:           `Sale "Villa" Elviria`,
		TransactionType: domain.TransactionSale,
		Location:        "Marbella",
		Status:          "Contracts",
		TargetCloseDate: domain.DatePtr(day("2026-11-06")),
		ClientID:        &c.ID,
	}
	require.NoError(t, f.projects.Create(ctx, f.project))

	pid := f.project.ID
	for _, task := range []*domain.Task{
		{ProjectID: pid, Title: "Certificado energético", Status: domain.TaskInProgress, Assignee: "Ana", Priority: "High", DueDate: domain.DatePtr(day("2026-10-19"))},
		{ProjectID: pid, Title: "Recopilar DNI", Status: domain.TaskDone, Assignee: "Ana", Priority: "Low", DueDate: domain.DatePtr(day("2026-10-09"))},
		{ProjectID: pid, Title: "Plusvalía | estimate", Status: domain.TaskReview, Assignee: "Lucía", Priority: "Medium"},
	} {
		require.NoError(t, f.tasks.Create(ctx, task))
	}
	for _, it := range []*domain.ChecklistItem{
		{ProjectID: pid, Stage: StageIntake, Label: "KYC del vendedor", IsDone: true, DueDate: domain.DatePtr(day("2026-10-01"))},
		{ProjectID: pid, Stage: StageDD, Label: "Nota Simple", IsDone: false},
		{ProjectID: pid, Stage: StageIntake, Label: "Carta de compromiso", IsDone: true},
	} {
		require.NoError(t, f.checklist.Create(ctx, it))
	}
	for _, it := range []*domain.TimelineItem{
		{ProjectID: pid, Label: "Contracts", Kind: domain.TimelinePhase, StartDate: day("2026-10-20"), EndDate: day("2026-11-01")},
		{ProjectID: pid, Label: "Target completion", Kind: domain.TimelineMilestone, StartDate: day("2026-11-06"), EndDate: day("2026-11-06")},
	} {
		require.NoError(t, f.timeline.Create(ctx, it))
	}
	return f
}

func TestCalendarService_ProjectCalendar(t *testing.T) {
	f := newExportFixture(t)
	svc := NewCalendarService(f.projects, f.tasks, f.timeline, testTimeout).(*calendarService)
	svc.now = func() time.Time { return time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC) }

	out, err := svc.ProjectCalendar(context.Background(), f.project.ID)
	require.NoError(t, err)

	assert.Contains(t, out, "BEGIN:VCALENDAR")
	assert.Contains(t, out, "PRODID:-//LawFlow//Calendar//EN")
	assert.Contains(t, out, "METHOD:PUBLISH")
	assert.Contains(t, out, "CALSCALE:GREGORIAN")
	assert.Equal(t, 3, strings.Count(out, "BEGIN:VEVENT"), "two dated tasks and one milestone")
	assert.Contains(t, out, "UID:task-1@lawflow")
	assert.Contains(t, out, "UID:milestone-2@lawflow")
	assert.NotContains(t, out, "task-3@lawflow", "undated tasks are skipped")
	assert.Contains(t, out, "DTSTART;VALUE=DATE:20261019")
	assert.Contains(t, out, "DTEND;VALUE=DATE:20261020")
	assert.Contains(t, out, "SUMMARY:[Milestone] Target completion")
	assert.Contains(t, out, "DTSTAMP:20261019T093000Z")
	assert.Contains(t, out, "\r\n")
}

func TestCalendarService_UnknownProjectIsEmpty(t *testing.T) {
	f := newExportFixture(t)
	out, err := NewCalendarService(f.projects, f.tasks, f.timeline, testTimeout).ProjectCalendar(context.Background(), 99)
	require.NoError(t, err)
	assert.Contains(t, out, "BEGIN:VCALENDAR")
	assert.Contains(t, out, "END:VCALENDAR")
	assert.NotContains(t, out, "BEGIN:VEVENT")
}

func TestCalendarService_PropagatesErrors(t *testing.T) {
	f := newExportFixture(t)
	f.tasks.err = errBoom
	_, err := NewCalendarService(f.projects, f.tasks, f.timeline, testTimeout).ProjectCalendar(context.Background(), f.project.ID)
	assert.ErrorIs(t, err, errBoom)
}

func readZip(t *testing.T, b []byte) map[string]string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(b), int64(len(b)))
	require.NoError(t, err)
	out := map[string]string{}
	for _, zf := range zr.File {
		rc, err := zf.Open()
		require.NoError(t, err)
		body, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		out[zf.Name] = string(body)
	}
	return out
}

func newClosingPack(f *exportFixture, email domain.EmailService, activities *fakeActivityRepo) *closingPackService {
	svc := NewClosingPackService(f.projects, f.clients, f.tasks, f.checklist, email,
		NewActivityRecorder(activities, nil, testLogger), testTimeout).(*closingPackService)
	svc.now = func() time.Time { return time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestClosingPackService_WriteClosingPack(t *testing.T) {
	f := newExportFixture(t)
	svc := newClosingPack(f, &fakeEmailService{}, &fakeActivityRepo{})

	var buf bytes.Buffer
	require.NoError(t, svc.WriteClosingPack(context.Background(), f.project.ID, &buf))
	files := readZip(t, buf.Bytes())
	require.Len(t, files, 5)

	summary := files["00_Project_Summary.md"]
	assert.True(t, strings.HasPrefix(summary, "# Project summary\n\n"))
	assert.Contains(t, summary, "**Client:** James O'Connor")
	assert.Contains(t, summary, "**Target close:** 2026-11-06")

	assert.Contains(t, files["01_Notary_Agenda.md"], "- Confirm taxes filing plan (ITP/AJD / Plusvalía)")

	checklist := files["02_Conveyancing_Checklist.md"]
	assert.Contains(t, checklist, "## Admision\n- [x] KYC del vendedor (due: 2026-10-01)\n- [x] Carta de compromiso (due: -)\n")
	assert.Contains(t, checklist, "## DD\n- [ ] Nota Simple (due: -)\n")
	assert.Less(t, strings.Index(checklist, "## Admision"), strings.Index(checklist, "## DD"))

	open := files["03_Open_Tasks.md"]
	assert.Contains(t, open, "| Certificado energético | Ana | 2026-10-19 | High |")
	assert.Contains(t, open, `| Plusvalía \| estimate | Lucía | - | Medium |`)
	assert.NotContains(t, open, "Recopilar DNI")

	var manifest struct {
		GeneratedAt string   `json:"generated_at"`
		ProjectID   int64    `json:"project_id"`
		Title       string   `json:"title"`
		Includes    []string `json:"includes"`
	}
	require.NoError(t, json.Unmarshal([]byte(files["manifest.json"]), &manifest))
	assert.Equal(t, f.project.ID, manifest.ProjectID)
	assert.Equal(t, `Sale "Villa" Elviria`, manifest.Title)
	assert.Equal(t, "2026-10-19T12:00:00Z", manifest.GeneratedAt)
	assert.Len(t, manifest.Includes, 4)
}

func TestClosingPackService_WriteClosingPack_NotFound(t *testing.T) {
	f := newExportFixture(t)
	var buf bytes.Buffer
	err := newClosingPack(f, &fakeEmailService{}, &fakeActivityRepo{}).WriteClosingPack(context.Background(), 42, &buf)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Zero(t, buf.Len())
}

func TestClosingPackService_NotifyClient(t *testing.T) {
	f := newExportFixture(t)
	email := &fakeEmailService{}
	activities := &fakeActivityRepo{}
	svc := newClosingPack(f, email, activities)

	require.NoError(t, svc.NotifyClient(context.Background(), f.project.ID, "Ana"))
	require.NotNil(t, email.last)
	assert.Equal(t, "j.oconnor@example.com", email.last.Email)
	assert.Equal(t, 2, email.last.OpenTasks)
	assert.Equal(t, 2, email.last.ChecklistDone)
	assert.Equal(t, 3, email.last.ChecklistTotal)
	assert.Equal(t, "2026-11-06", email.last.TargetCloseDate)
	assert.Equal(t, []string{"Sent closing pack summary"}, activities.verbs())

	email.err = errBoom
	assert.ErrorIs(t, svc.NotifyClient(context.Background(), f.project.ID, "Ana"), errBoom)
	assert.Len(t, activities.items, 1)
}

func TestClosingPackService_NotifyClient_NoEmail(t *testing.T) {
	f := newExportFixture(t)
	f.clients.byID[*f.project.ClientID].Email = nil
	email := &fakeEmailService{}

	err := newClosingPack(f, email, &fakeActivityRepo{}).NotifyClient(context.Background(), f.project.ID, "")
	assert.ErrorIs(t, err, domain.ErrMissingRecipient)
	assert.Nil(t, email.last)
}

type fakeMailer struct {
	to, subject, html, text string
	err                     error
}

func (m *fakeMailer) Send(ctx context.Context, to, subject, html, text string) error {
	m.to, m.subject, m.html, m.text = to, subject, html, text
	return m.err
}

type fakeRenderer struct {
	name string
	err  error
}

func (r *fakeRenderer) Render(name string, data any) (string, string, string, error) {
	r.name = name
	return "subject", "<p>html</p>", "text", r.err
}

func TestEmailService_SendClosingPackSummary(t *testing.T) {
	mailer := &fakeMailer{}
	renderer := &fakeRenderer{}
	svc := NewEmailService(mailer, renderer, testLogger)

	require.NoError(t, svc.SendClosingPackSummary(context.Background(), &domain.ClosingPackEmailData{Email: "a@b.c"}))
	assert.Equal(t, "closing_pack_summary", renderer.name)
	assert.Equal(t, "a@b.c", mailer.to)
	assert.Equal(t, "subject", mailer.subject)

	assert.Error(t, svc.SendClosingPackSummary(context.Background(), nil))
	assert.ErrorIs(t, svc.SendClosingPackSummary(context.Background(), &domain.ClosingPackEmailData{}), domain.ErrMissingRecipient)

	renderer.err = errBoom
	assert.ErrorIs(t, svc.SendClosingPackSummary(context.Background(), &domain.ClosingPackEmailData{Email: "a@b.c"}), errBoom)

	renderer.err = nil
	mailer.err = errBoom
	assert.ErrorIs(t, svc.SendClosingPackSummary(context.Background(), &domain.ClosingPackEmailData{Email: "a@b.c"}), errBoom)
}

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) PingContext(ctx context.Context) error { return f(ctx) }

func TestHealthService_Check(t *testing.T) {
	ok := pingerFunc(func(context.Context) error { return nil })
	down := pingerFunc(func(context.Context) error { return errBoom })

	report := NewHealthService(ok, newFakeCache(), "1.2.0", time.Second).Check(context.Background())
	assert.True(t, report.OK)
	assert.Equal(t, "1.2.0", report.Version)
	assert.Equal(t, domain.ComponentOK, report.Components["database"].Status)
	assert.Equal(t, domain.ComponentOK, report.Components["cache"].Status)

	report = NewHealthService(down, nil, "1.2.0", time.Second).Check(context.Background())
	assert.False(t, report.OK)
	assert.Equal(t, domain.ComponentDown, report.Components["database"].Status)
	assert.Equal(t, "boom", report.Components["database"].Error)
	_, hasCache := report.Components["cache"]
	assert.False(t, hasCache)

	brokenCache := newFakeCache()
	brokenCache.err = errBoom
	report = NewHealthService(ok, brokenCache, "", time.Second).Check(context.Background())
	assert.False(t, report.OK)
	assert.Equal(t, domain.ComponentDown, report.Components["cache"].Status)
}
