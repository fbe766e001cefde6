package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"lawflow/internal/domain"
)

type taskService struct {
	taskRepo       domain.TaskRepository
	projectRepo    domain.ProjectRepository
	recorder       *ActivityRecorder
	contextTimeout time.Duration
}

func NewTaskService(taskRepo domain.TaskRepository, projectRepo domain.ProjectRepository, recorder *ActivityRecorder, timeout time.Duration) domain.TaskService {
	return &taskService{
		taskRepo:       taskRepo,
		projectRepo:    projectRepo,
		recorder:       recorder,
		contextTimeout: timeout,
	}
}

func (s *taskService) ListTasks(ctx context.Context, filter domain.TaskFilter, req domain.PageRequest) (domain.Page[*domain.Task], error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	page, err := domain.Paginate(ctx, s.taskRepo.Source(filter), req, domain.SortableFor(domain.EntityTasks))
	if err != nil {
		return page, fmt.Errorf("list tasks: %w", err)
	}
	return page, nil
}

// requireProject maps a missing or deleted project to ErrInvalidReference.
func requireProject(ctx context.Context, repo domain.ProjectRepository, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: project_id is required", domain.ErrInvalidInput)
	}
	if _, err := repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("%w: project %d", domain.ErrInvalidReference, id)
		}
		return fmt.Errorf("get project: %w", err)
	}
	return nil
}

func validateTaskFields(status, priority string) error {
	if !domain.ValidTaskStatus(status) {
		return fmt.Errorf("%w: unknown task status %q", domain.ErrInvalidInput, status)
	}
	if !domain.ValidTaskPriority(priority) {
		return fmt.Errorf("%w: unknown task priority %q", domain.ErrInvalidInput, priority)
	}
	return nil
}

func (s *taskService) CreateTask(ctx context.Context, t *domain.Task, actor string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	t.Title = strings.TrimSpace(t.Title)
	if t.Title == "" {
		return fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if t.Status == "" {
		t.Status = domain.TaskBacklog
	}
	if t.Priority == "" {
		t.Priority = domain.PriorityMedium
	}
	if t.Assignee == "" {
		t.Assignee = actorOrDefault(actor)
	}
	if err := validateTaskFields(t.Status, t.Priority); err != nil {
		return err
	}
	if err := requireProject(ctx, s.projectRepo, t.ProjectID); err != nil {
		return err
	}

	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now
	if err := s.taskRepo.Create(ctx, t); err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	s.recorder.Record(ctx, t.ProjectID, actor, "Created task", t.Title)
	return nil
}

func (s *taskService) UpdateTask(ctx context.Context, id int64, update domain.TaskUpdate, actor string) (*domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	t, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	if update.Title != nil {
		title := strings.TrimSpace(*update.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title cannot be empty", domain.ErrInvalidInput)
		}
		t.Title = title
	}
	if update.Status != nil {
		t.Status = *update.Status
	}
	if update.Assignee != nil {
		t.Assignee = *update.Assignee
	}
	if update.DueDate != nil {
		t.DueDate = update.DueDate
	}
	if update.Priority != nil {
		t.Priority = *update.Priority
	}
	if update.Tags != nil {
		t.Tags = update.Tags
	}
	if update.Description != nil {
		t.Description = update.Description
	}
	if err := validateTaskFields(t.Status, t.Priority); err != nil {
		return nil, err
	}
	t.UpdatedAt = time.Now().UTC()

	if err := s.taskRepo.Update(ctx, t); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	s.recorder.Record(ctx, t.ProjectID, actor, "Updated task", t.Title)
	return t, nil
}

func (s *taskService) DeleteTask(ctx context.Context, id int64, actor string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	t, err := s.taskRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get task: %w", err)
	}
	if err := s.taskRepo.SoftDelete(ctx, id, time.Now().UTC()); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	s.recorder.Record(ctx, t.ProjectID, actor, "Deleted task", t.Title)
	return nil
}
