package services

import (
	"context"
	"fmt"
	"time"

	"lawflow/internal/domain"
)

type checklistService struct {
	checklistRepo  domain.ChecklistRepository
	recorder       *ActivityRecorder
	contextTimeout time.Duration
}

func NewChecklistService(checklistRepo domain.ChecklistRepository, recorder *ActivityRecorder, timeout time.Duration) domain.ChecklistService {
	return &checklistService{checklistRepo: checklistRepo, recorder: recorder, contextTimeout: timeout}
}

func (s *checklistService) ListChecklist(ctx context.Context, projectID int64, req domain.PageRequest) (domain.Page[*domain.ChecklistItem], error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	page, err := domain.Paginate(ctx, s.checklistRepo.Source(projectID), req, domain.SortableFor(domain.EntityChecklists))
	if err != nil {
		return page, fmt.Errorf("list checklist: %w", err)
	}
	return page, nil
}

func (s *checklistService) SetDone(ctx context.Context, id int64, done bool, actor string) (*domain.ChecklistItem, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	it, err := s.checklistRepo.SetDone(ctx, id, done, time.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("update checklist item: %w", err)
	}
	s.recorder.Record(ctx, it.ProjectID, actor, "Checklist updated", it.Label)
	return it, nil
}
