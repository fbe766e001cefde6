package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"lawflow/internal/domain"
)

// activityDetailLimit caps the activity feed embedded in a project detail.
const activityDetailLimit = 100

func projectCacheKey(id int64) string {
	return fmt.Sprintf("project:detail:%d", id)
}

// projectGenKey holds the write generation of a project. Every write replaces
// it, so a detail entry tagged with an older generation is never served.
func projectGenKey(id int64) string {
	return fmt.Sprintf("project:gen:%d", id)
}

type cachedDetail struct {
	Generation string                `json:"generation"`
	Detail     *domain.ProjectDetail `json:"detail"`
}

// ProjectRepositories groups the stores a project detail view is assembled from.
type ProjectRepositories struct {
	Projects   domain.ProjectRepository
	Clients    domain.ClientRepository
	Tasks      domain.TaskRepository
	Checklist  domain.ChecklistRepository
	Timeline   domain.TimelineRepository
	Activities domain.ActivityRepository
}

type projectService struct {
	repos          ProjectRepositories
	templates      domain.TemplateService
	cache          domain.Cache
	cacheTTL       time.Duration
	recorder       *ActivityRecorder
	logger         *slog.Logger
	contextTimeout time.Duration
}

func NewProjectService(repos ProjectRepositories,
	templates domain.TemplateService,
	cache domain.Cache,
	cacheTTL time.Duration,
	recorder *ActivityRecorder,
	logger *slog.Logger,
	timeout time.Duration,
) domain.ProjectService {
	return &projectService{
		repos:          repos,
		templates:      templates,
		cache:          cache,
		cacheTTL:       cacheTTL,
		recorder:       recorder,
		logger:         logger,
		contextTimeout: timeout,
	}
}

func (s *projectService) ListProjects(ctx context.Context, filter domain.ProjectFilter, req domain.PageRequest) (domain.Page[*domain.Project], error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	page, err := domain.Paginate(ctx, s.repos.Projects.Source(filter), req, domain.SortableFor(domain.EntityProjects))
	if err != nil {
		return page, fmt.Errorf("list projects: %w", err)
	}
	return page, nil
}

func (s *projectService) GetProject(ctx context.Context, id int64) (*domain.ProjectDetail, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	key := projectCacheKey(id)
	// Read before loading, see projectGenKey.
	var gen string
	cacheable := s.cache != nil
	if cacheable {
		var err error
		if gen, err = s.generation(ctx, id); err != nil {
			s.logger.WarnContext(ctx, "project cache read failed", "project_id", id, "err", err)
			cacheable = false
		}
	}
	if cacheable {
		var cached cachedDetail
		found, err := s.cache.Get(ctx, key, &cached)
		switch {
		case err != nil:
			s.logger.WarnContext(ctx, "project cache read failed", "project_id", id, "err", err)
		case found && cached.Generation == gen && cached.Detail != nil:
			return cached.Detail, nil
		}
	}

	detail, err := s.loadDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	if cacheable {
		if err := s.cache.Set(ctx, key, cachedDetail{Generation: gen, Detail: detail}, s.cacheTTL); err != nil {
			s.logger.WarnContext(ctx, "project cache write failed", "project_id", id, "err", err)
		}
	}
	return detail, nil
}

func (s *projectService) generation(ctx context.Context, id int64) (string, error) {
	var gen string
	if _, err := s.cache.Get(ctx, projectGenKey(id), &gen); err != nil {
		return "", err
	}
	return gen, nil
}

func (s *projectService) loadDetail(ctx context.Context, id int64) (*domain.ProjectDetail, error) {
	p, err := s.repos.Projects.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}
	if p.ClientID != nil {
		c, err := s.repos.Clients.GetByID(ctx, *p.ClientID)
		switch {
		case err == nil:
			p.Client = c
		case !errors.Is(err, domain.ErrNotFound):
			return nil, fmt.Errorf("get project client: %w", err)
		}
	}
	detail := &domain.ProjectDetail{Project: *p}
	if detail.Tasks, err = s.repos.Tasks.ListByProjectID(ctx, id); err != nil {
		return nil, fmt.Errorf("list project tasks: %w", err)
	}
	if detail.Checklist, err = s.repos.Checklist.ListByProjectID(ctx, id); err != nil {
		return nil, fmt.Errorf("list project checklist: %w", err)
	}
	if detail.Timeline, err = s.repos.Timeline.ListByProjectID(ctx, id); err != nil {
		return nil, fmt.Errorf("list project timeline: %w", err)
	}
	if detail.Activities, err = s.repos.Activities.ListRecent(ctx, id, activityDetailLimit); err != nil {
		return nil, fmt.Errorf("list project activity: %w", err)
	}
	return detail, nil
}

func validTransactionType(t string) bool {
	return t == domain.TransactionPurchase || t == domain.TransactionSale
}

func (s *projectService) CreateProject(ctx context.Context, p *domain.Project, actor string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	p.Title = strings.TrimSpace(p.Title)
	p.Location = strings.TrimSpace(p.Location)
	switch {
	case p.Title == "":
		return fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	case !validTransactionType(p.TransactionType):
		return fmt.Errorf("%w: transaction_type must be Purchase or Sale", domain.ErrInvalidInput)
	case p.Location == "":
		return fmt.Errorf("%w: location is required", domain.ErrInvalidInput)
	case p.ClientID == nil:
		return fmt.Errorf("%w: client_id is required", domain.ErrInvalidInput)
	}
	if p.Status == "" {
		p.Status = domain.DefaultProjectStatus
	}
	if p.Risk == "" {
		p.Risk = domain.DefaultProjectRisk
	}
	if p.BgColor == "" {
		p.BgColor = domain.DefaultProjectBgColor
	}
	now := time.Now().UTC()
	if p.StartDate == nil {
		p.StartDate = domain.DatePtr(domain.NewDate(now))
	}
	p.CreatedAt = now
	p.UpdatedAt = now

	if err := s.repos.Projects.Create(ctx, p); err != nil {
		return fmt.Errorf("create project: %w", err)
	}
	if err := s.instantiateChecklist(ctx, p, now); err != nil {
		return err
	}
	s.recorder.Record(ctx, p.ID, actor, "Created project", p.Title)
	return nil
}

// instantiateChecklist adds the standard steps for the transaction type
// followed by the municipality's extra due-diligence steps.
func (s *projectService) instantiateChecklist(ctx context.Context, p *domain.Project, now time.Time) error {
	steps := s.templates.StandardChecklist(p.TransactionType)
	for _, label := range s.templates.Lookup(p.Location, p.TransactionType).ChecklistOverrides {
		steps = append(steps, domain.ChecklistStep{Stage: StageDD, Label: label})
	}
	start := *p.StartDate
	for i, step := range steps {
		item := &domain.ChecklistItem{
			ProjectID: p.ID,
			Stage:     step.Stage,
			Label:     step.Label,
			DueDate:   domain.DatePtr(start.AddDays(i*2 + 1)),
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.repos.Checklist.Create(ctx, item); err != nil {
			return fmt.Errorf("create checklist item: %w", err)
		}
	}
	return nil
}

func (s *projectService) UpdateProject(ctx context.Context, id int64, update domain.ProjectUpdate, actor string) (*domain.Project, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	p, err := s.repos.Projects.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}

	var changed []string
	if update.Title != nil {
		title := strings.TrimSpace(*update.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title cannot be empty", domain.ErrInvalidInput)
		}
		p.Title = title
		changed = append(changed, "title")
	}
	if update.Status != nil {
		p.Status = *update.Status
		changed = append(changed, "status")
	}
	if update.Risk != nil {
		p.Risk = *update.Risk
		changed = append(changed, "risk")
	}
	if update.TargetCloseDate != nil {
		p.TargetCloseDate = update.TargetCloseDate
		changed = append(changed, "target_close_date")
	}
	if update.BgColor != nil {
		p.BgColor = *update.BgColor
		changed = append(changed, "bg_color")
	}
	p.UpdatedAt = time.Now().UTC()

	if err := s.repos.Projects.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}
	detail := "no changes"
	if len(changed) > 0 {
		detail = strings.Join(changed, ", ")
	}
	s.recorder.Record(ctx, p.ID, actor, "Updated project", detail)
	return p, nil
}

func (s *projectService) DeleteProject(ctx context.Context, id int64, actor string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.repos.Projects.SoftDelete(ctx, id, time.Now().UTC()); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	s.recorder.Record(ctx, id, actor, "Deleted project", "")
	return nil
}
