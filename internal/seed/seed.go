// Package seed loads demo fixtures into an empty database.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"lawflow/internal/domain"
)

// Repositories are the stores the fixtures are written to.
type Repositories struct {
	Clients    domain.ClientRepository
	Projects   domain.ProjectRepository
	Tasks      domain.TaskRepository
	Checklist  domain.ChecklistRepository
	Timeline   domain.TimelineRepository
	Activities domain.ActivityRepository
	Files      domain.FileRepository
}

// Seeder writes the demo fixtures relative to a reference day.
type Seeder struct {
	repos     Repositories
	templates domain.TemplateService
	logger    *slog.Logger
	now       func() time.Time
}

func NewSeeder(repos Repositories, templates domain.TemplateService, logger *slog.Logger) *Seeder {
	return &Seeder{repos: repos, templates: templates, logger: logger, now: time.Now}
}

// SeedIfEmpty inserts the fixtures when no project exists and reports whether it did.
func (s *Seeder) SeedIfEmpty(ctx context.Context) (bool, error) {
	n, err := s.repos.Projects.Source(domain.ProjectFilter{}).Count(ctx)
	if err != nil {
		return false, fmt.Errorf("count projects: %w", err)
	}
	if n > 0 {
		s.logger.InfoContext(ctx, "seed skipped, database not empty", "projects", n)
		return false, nil
	}
	if err := s.seed(ctx); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Seeder) seed(ctx context.Context) error {
	now := s.now().UTC()
	today := domain.NewDate(now)

	clientIDs := make([]int64, len(clients))
	for i, c := range clients {
		c.CreatedAt, c.UpdatedAt = now, now
		if err := s.repos.Clients.Create(ctx, &c); err != nil {
			return fmt.Errorf("seed client %q: %w", c.Name, err)
		}
		clientIDs[i] = c.ID
	}

	var counts struct{ tasks, checklist, timeline, activity, files int }
	for _, m := range matters {
		clientID := clientIDs[m.client]
		p := &domain.Project{
			Title:           m.title,
			TransactionType: m.transactionType,
			Location:        m.location,
			Status:          m.status,
			Risk:            m.risk,
			BgColor:         m.bgColor,
			StartDate:       domain.DatePtr(today.AddDays(m.startIn)),
			TargetCloseDate: domain.DatePtr(today.AddDays(m.closeIn)),
			ClientID:        &clientID,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := s.repos.Projects.Create(ctx, p); err != nil {
			return fmt.Errorf("seed project %q: %w", m.title, err)
		}

		for _, t := range m.tasks {
			task := &domain.Task{
				ProjectID:   p.ID,
				Title:       t.title,
				Status:      t.status,
				Assignee:    t.assignee,
				Priority:    t.priority,
				Tags:        optional(t.tags),
				Description: optional(t.description),
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			if t.dueIn != nil {
				task.DueDate = domain.DatePtr(today.AddDays(*t.dueIn))
			}
			if err := s.repos.Tasks.Create(ctx, task); err != nil {
				return fmt.Errorf("seed task %q: %w", t.title, err)
			}
			counts.tasks++
		}

		for _, it := range timelineFor(p.ID, today, m.closeIn, now) {
			if err := s.repos.Timeline.Create(ctx, it); err != nil {
				return fmt.Errorf("seed timeline %q: %w", it.Label, err)
			}
			counts.timeline++
		}

		for idx, step := range s.templates.StandardChecklist(m.transactionType) {
			item := &domain.ChecklistItem{
				ProjectID: p.ID,
				Stage:     step.Stage,
				Label:     step.Label,
				IsDone:    checklistDone(m.status, m.risk, idx),
				DueDate:   domain.DatePtr(today.AddDays(idx*2 + 1)),
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := s.repos.Checklist.Create(ctx, item); err != nil {
				return fmt.Errorf("seed checklist %q: %w", step.Label, err)
			}
			counts.checklist++
		}

		feed := make([]activityFixture, 0, len(m.activity)+1)
		feed = append(feed, m.activity...)
		feed = append(feed, activityFixture{actor: "System", verb: "Seeded demo project", detail: m.title})
		for _, a := range feed {
			at := now
			if a.daysAgo > 0 {
				at = now.AddDate(0, 0, -a.daysAgo)
			}
			act := &domain.Activity{ProjectID: p.ID, Actor: a.actor, Verb: a.verb, Detail: optional(a.detail), CreatedAt: at}
			if err := s.repos.Activities.Create(ctx, act); err != nil {
				return fmt.Errorf("seed activity %q: %w", a.verb, err)
			}
			counts.activity++
		}

		for _, f := range m.files {
			mimeType := f.mimeType
			item := &domain.FileItem{
				ProjectID:        p.ID,
				Filename:         f.name,
				OriginalFilename: f.name,
				StoredPath:       "seed/" + f.name,
				MimeType:         &mimeType,
				Version:          1,
				ScanStatus:       domain.ScanPending,
				Uploader:         f.uploader,
				UploadedAt:       now,
				CreatedAt:        now,
				UpdatedAt:        now,
			}
			if err := s.repos.Files.Create(ctx, item); err != nil {
				return fmt.Errorf("seed file %q: %w", f.name, err)
			}
			counts.files++
		}
	}

	s.logger.InfoContext(ctx, "seeded demo data",
		"clients", len(clients),
		"projects", len(matters),
		"tasks", counts.tasks,
		"checklist_items", counts.checklist,
		"timeline_items", counts.timeline,
		"activities", counts.activity,
		"files", counts.files,
	)
	return nil
}

// checklistDone marks the first steps of a checklist done according to how
// far the matter has progressed.
func checklistDone(status, risk string, idx int) bool {
	switch status {
	case "Due Diligence":
		return idx < 4
	case "Contracts":
		return idx < 6
	case "Notary":
		if risk == "Critical" {
			return idx < 8
		}
		return idx < 9
	case "Registry":
		return idx < 12
	default:
		return idx < 2
	}
}

type phase struct {
	label        string
	start, until int
}

var phases = []phase{
	{"Intake", -8, -2},
	{"Due Diligence", -2, 10},
	{"Contracts", 6, 18},
	{"Notary", 14, 22},
	{"Registry", 20, 40},
}

func timelineFor(projectID int64, today domain.Date, closeIn int, now time.Time) []*domain.TimelineItem {
	items := make([]*domain.TimelineItem, 0, len(phases)+1)
	for _, ph := range phases {
		items = append(items, &domain.TimelineItem{
			ProjectID: projectID,
			Label:     ph.label,
			StartDate: today.AddDays(ph.start),
			EndDate:   today.AddDays(ph.until),
			Kind:      domain.TimelinePhase,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	closeDay := today.AddDays(closeIn)
	items = append(items, &domain.TimelineItem{
		ProjectID: projectID,
		Label:     "Target completion",
		StartDate: closeDay,
		EndDate:   closeDay,
		Kind:      domain.TimelineMilestone,
		CreatedAt: now,
		UpdatedAt: now,
	})
	return items
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func days(n int) *int { return &n }
