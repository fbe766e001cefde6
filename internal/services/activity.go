package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"lawflow/internal/domain"
)

type activityService struct {
	activityRepo   domain.ActivityRepository
	contextTimeout time.Duration
}

func NewActivityService(activityRepo domain.ActivityRepository, timeout time.Duration) domain.ActivityService {
	return &activityService{activityRepo: activityRepo, contextTimeout: timeout}
}

func (s *activityService) ListActivity(ctx context.Context, projectID int64, req domain.PageRequest) (domain.Page[*domain.Activity], error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	page, err := domain.Paginate(ctx, s.activityRepo.Source(projectID), req, domain.SortableFor(domain.EntityActivity))
	if err != nil {
		return page, fmt.Errorf("list activity: %w", err)
	}
	return page, nil
}

// ActivityRecorder appends entries to a project's activity feed and drops the
// cached detail view of every project a write touched. Failures are logged and
// never fail the write that triggered them.
type ActivityRecorder struct {
	repo   domain.ActivityRepository
	cache  domain.Cache
	logger *slog.Logger
	now    func() time.Time
}

// NewActivityRecorder returns a recorder. cache may be nil.
func NewActivityRecorder(repo domain.ActivityRepository, cache domain.Cache, logger *slog.Logger) *ActivityRecorder {
	return &ActivityRecorder{repo: repo, cache: cache, logger: logger, now: time.Now}
}

// Record logs verb by actor on projectID and invalidates the project's cached view.
func (r *ActivityRecorder) Record(ctx context.Context, projectID int64, actor, verb, detail string) {
	a := &domain.Activity{
		ProjectID: projectID,
		Actor:     actorOrDefault(actor),
		Verb:      verb,
		CreatedAt: r.now().UTC(),
	}
	if detail != "" {
		a.Detail = &detail
	}
	if err := r.repo.Create(ctx, a); err != nil {
		r.logger.WarnContext(ctx, "record activity failed", "project_id", projectID, "verb", verb, "err", err)
	}
	r.Invalidate(ctx, projectID)
}

// Invalidate bumps the cache generation of projectID and drops its cached
// detail view.
func (r *ActivityRecorder) Invalidate(ctx context.Context, projectID int64) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Set(ctx, projectGenKey(projectID), uuid.NewString(), 0); err != nil {
		r.logger.WarnContext(ctx, "bump project cache generation failed", "project_id", projectID, "err", err)
	}
	if err := r.cache.Delete(ctx, projectCacheKey(projectID)); err != nil {
		r.logger.WarnContext(ctx, "invalidate project cache failed", "project_id", projectID, "err", err)
	}
}

func actorOrDefault(actor string) string {
	if actor == "" {
		return domain.DefaultActor
	}
	return actor
}
