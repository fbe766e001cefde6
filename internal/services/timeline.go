package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"lawflow/internal/domain"
)

type timelineService struct {
	timelineRepo   domain.TimelineRepository
	projectRepo    domain.ProjectRepository
	recorder       *ActivityRecorder
	contextTimeout time.Duration
}

func NewTimelineService(timelineRepo domain.TimelineRepository, projectRepo domain.ProjectRepository, recorder *ActivityRecorder, timeout time.Duration) domain.TimelineService {
	return &timelineService{
		timelineRepo:   timelineRepo,
		projectRepo:    projectRepo,
		recorder:       recorder,
		contextTimeout: timeout,
	}
}

func (s *timelineService) ListTimeline(ctx context.Context, projectID int64, req domain.PageRequest) (domain.Page[*domain.TimelineItem], error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	page, err := domain.Paginate(ctx, s.timelineRepo.Source(projectID), req, domain.SortableFor(domain.EntityTimeline))
	if err != nil {
		return page, fmt.Errorf("list timeline: %w", err)
	}
	return page, nil
}

func (s *timelineService) CreateTimelineItem(ctx context.Context, it *domain.TimelineItem, actor string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	it.Label = strings.TrimSpace(it.Label)
	switch {
	case it.Label == "":
		return fmt.Errorf("%w: label is required", domain.ErrInvalidInput)
	case it.Kind != domain.TimelinePhase && it.Kind != domain.TimelineMilestone:
		return fmt.Errorf("%w: kind must be Phase or Milestone", domain.ErrInvalidInput)
	case it.StartDate.IsZero() || it.EndDate.IsZero():
		return fmt.Errorf("%w: start_date and end_date are required", domain.ErrInvalidInput)
	case it.EndDate.Before(it.StartDate.Time):
		return fmt.Errorf("%w: end_date is before start_date", domain.ErrInvalidInput)
	}
	if err := requireProject(ctx, s.projectRepo, it.ProjectID); err != nil {
		return err
	}

	now := time.Now().UTC()
	it.CreatedAt = now
	it.UpdatedAt = now
	if err := s.timelineRepo.Create(ctx, it); err != nil {
		return fmt.Errorf("create timeline item: %w", err)
	}
	s.recorder.Record(ctx, it.ProjectID, actor, "Timeline updated", it.Label)
	return nil
}
