package services

import (
	"archive/zip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"lawflow/internal/domain"
)

// Closing pack entries, in archive order.
const (
	packSummary   = "00_Project_Summary.md"
	packAgenda    = "01_Notary_Agenda.md"
	packChecklist = "02_Conveyancing_Checklist.md"
	packOpenTasks = "03_Open_Tasks.md"
	packManifest  = "manifest.json"
)

var notaryAgenda = []string{
	"Confirm notary appointment (Escritura) time & attendees",
	"Confirm funds routing / completion statement approved",
	"Confirm IDs/NIE and powers of attorney if applicable",
	"Confirm taxes filing plan (ITP/AJD / Plusvalía)",
	"Confirm post-completion: Land Registry submission + utilities/HOA notifications",
}

type closingPackService struct {
	projectRepo    domain.ProjectRepository
	clientRepo     domain.ClientRepository
	taskRepo       domain.TaskRepository
	checklistRepo  domain.ChecklistRepository
	emailService   domain.EmailService
	recorder       *ActivityRecorder
	now            func() time.Time
	contextTimeout time.Duration
}

func NewClosingPackService(projectRepo domain.ProjectRepository,
	clientRepo domain.ClientRepository,
	taskRepo domain.TaskRepository,
	checklistRepo domain.ChecklistRepository,
	emailService domain.EmailService,
	recorder *ActivityRecorder,
	timeout time.Duration,
) domain.ClosingPackService {
	return &closingPackService{
		projectRepo:    projectRepo,
		clientRepo:     clientRepo,
		taskRepo:       taskRepo,
		checklistRepo:  checklistRepo,
		emailService:   emailService,
		recorder:       recorder,
		now:            time.Now,
		contextTimeout: timeout,
	}
}

type packData struct {
	project   *domain.Project
	client    *domain.Client
	tasks     []*domain.Task
	checklist []*domain.ChecklistItem
}

func (s *closingPackService) load(ctx context.Context, projectID int64) (*packData, error) {
	p, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}
	d := &packData{project: p}
	if p.ClientID != nil {
		d.client, err = s.clientRepo.GetByID(ctx, *p.ClientID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("get client: %w", err)
		}
	}
	if d.tasks, err = s.taskRepo.ListByProjectID(ctx, projectID); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	if d.checklist, err = s.checklistRepo.ListByProjectID(ctx, projectID); err != nil {
		return nil, fmt.Errorf("list checklist: %w", err)
	}
	return d, nil
}

func (s *closingPackService) WriteClosingPack(ctx context.Context, projectID int64, w io.Writer) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	d, err := s.load(ctx, projectID)
	if err != nil {
		return err
	}
	manifest, err := json.MarshalIndent(packManifestFile{
		GeneratedAt: s.now().UTC(),
		ProjectID:   d.project.ID,
		Title:       d.project.Title,
		Includes:    []string{packSummary, packAgenda, packChecklist, packOpenTasks},
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}

	zw := zip.NewWriter(w)
	entries := []struct {
		name string
		body string
	}{
		{packSummary, summaryMarkdown(d)},
		{packAgenda, markdownDoc("Notary agenda (Escritura)", bulletList(notaryAgenda))},
		{packChecklist, checklistMarkdown(d.checklist)},
		{packOpenTasks, openTasksMarkdown(d.tasks)},
		{packManifest, string(manifest)},
	}
	for _, e := range entries {
		f, err := zw.Create(e.name)
		if err != nil {
			return fmt.Errorf("add %s: %w", e.name, err)
		}
		if _, err := io.WriteString(f, e.body); err != nil {
			return fmt.Errorf("write %s: %w", e.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("finish closing pack: %w", err)
	}
	return nil
}

func (s *closingPackService) NotifyClient(ctx context.Context, projectID int64, actor string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	d, err := s.load(ctx, projectID)
	if err != nil {
		return err
	}
	if d.client == nil || d.client.Email == nil || strings.TrimSpace(*d.client.Email) == "" {
		return domain.ErrMissingRecipient
	}
	data := &domain.ClosingPackEmailData{
		Email:           strings.TrimSpace(*d.client.Email),
		ClientName:      d.client.Name,
		ProjectTitle:    d.project.Title,
		Location:        d.project.Location,
		Status:          d.project.Status,
		TargetCloseDate: formatDate(d.project.TargetCloseDate),
		OpenTasks:       len(openTasks(d.tasks)),
		ChecklistTotal:  len(d.checklist),
	}
	for _, it := range d.checklist {
		if it.IsDone {
			data.ChecklistDone++
		}
	}
	if err := s.emailService.SendClosingPackSummary(ctx, data); err != nil {
		return err
	}
	s.recorder.Record(ctx, projectID, actor, "Sent closing pack summary", data.Email)
	return nil
}

type packManifestFile struct {
	GeneratedAt time.Time `json:"generated_at"`
	ProjectID   int64     `json:"project_id"`
	Title       string    `json:"title"`
	Includes    []string  `json:"includes"`
}

func formatDate(d *domain.Date) string {
	if d == nil {
		return "-"
	}
	return d.String()
}

func markdownDoc(title, body string) string {
	return "# " + title + "\n\n" + body + "\n"
}

func bulletList(items []string) string {
	var b strings.Builder
	for i, it := range items {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("- " + it)
	}
	return b.String()
}

func summaryMarkdown(d *packData) string {
	clientName := "-"
	if d.client != nil {
		clientName = d.client.Name
	}
	p := d.project
	body := fmt.Sprintf("**Matter:** %s\n**Client:** %s\n**Type:** %s\n**Location:** %s\n**Status:** %s\n**Target close:** %s\n",
		p.Title, clientName, p.TransactionType, p.Location, p.Status, formatDate(p.TargetCloseDate))
	return markdownDoc("Project summary", body)
}

// checklistMarkdown groups items by stage in order of first appearance.
func checklistMarkdown(items []*domain.ChecklistItem) string {
	var stages []string
	byStage := map[string][]*domain.ChecklistItem{}
	for _, it := range items {
		if _, ok := byStage[it.Stage]; !ok {
			stages = append(stages, it.Stage)
		}
		byStage[it.Stage] = append(byStage[it.Stage], it)
	}

	var b strings.Builder
	b.WriteString("# Conveyancing checklist\n\n")
	for _, stage := range stages {
		fmt.Fprintf(&b, "## %s\n", stage)
		for _, it := range byStage[stage] {
			mark := " "
			if it.IsDone {
				mark = "x"
			}
			fmt.Fprintf(&b, "- [%s] %s (due: %s)\n", mark, it.Label, formatDate(it.DueDate))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func openTasks(tasks []*domain.Task) []*domain.Task {
	var open []*domain.Task
	for _, t := range tasks {
		if t.Status != domain.TaskDone {
			open = append(open, t)
		}
	}
	return open
}

func openTasksMarkdown(tasks []*domain.Task) string {
	var b strings.Builder
	b.WriteString("# Open tasks\n\n| Task | Assignee | Due | Priority |\n|---|---|---|---|\n")
	for _, t := range openTasks(tasks) {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", tableCell(t.Title), tableCell(t.Assignee), formatDate(t.DueDate), t.Priority)
	}
	return b.String()
}

func tableCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
