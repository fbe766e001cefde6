package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"

	"lawflow/internal/domain"
)

const calendarProductID = "-//LawFlow//Calendar//EN"

type calendarService struct {
	projectRepo    domain.ProjectRepository
	taskRepo       domain.TaskRepository
	timelineRepo   domain.TimelineRepository
	now            func() time.Time
	contextTimeout time.Duration
}

func NewCalendarService(projectRepo domain.ProjectRepository, taskRepo domain.TaskRepository, timelineRepo domain.TimelineRepository, timeout time.Duration) domain.CalendarService {
	return &calendarService{
		projectRepo:    projectRepo,
		taskRepo:       taskRepo,
		timelineRepo:   timelineRepo,
		now:            time.Now,
		contextTimeout: timeout,
	}
}

// ProjectCalendar returns one all-day event per dated task and per milestone.
// An unknown project yields a calendar with no events.
func (s *calendarService) ProjectCalendar(ctx context.Context, projectID int64) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	cal := ics.NewCalendar()
	cal.SetProductId(calendarProductID)
	cal.SetCalscale("GREGORIAN")
	cal.SetMethod(ics.MethodPublish)

	if _, err := s.projectRepo.GetByID(ctx, projectID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return cal.Serialize(), nil
		}
		return "", fmt.Errorf("get project: %w", err)
	}
	tasks, err := s.taskRepo.ListByProjectID(ctx, projectID)
	if err != nil {
		return "", fmt.Errorf("list tasks: %w", err)
	}
	timeline, err := s.timelineRepo.ListByProjectID(ctx, projectID)
	if err != nil {
		return "", fmt.Errorf("list timeline: %w", err)
	}

	stamp := s.now().UTC()
	for _, t := range tasks {
		if t.DueDate == nil {
			continue
		}
		addAllDayEvent(cal, fmt.Sprintf("task-%d@lawflow", t.ID), fmt.Sprintf("[Task] %s · %s", t.Title, t.Assignee), *t.DueDate, stamp)
	}
	for _, it := range timeline {
		if it.Kind != domain.TimelineMilestone {
			continue
		}
		addAllDayEvent(cal, fmt.Sprintf("milestone-%d@lawflow", it.ID), "[Milestone] "+it.Label, it.StartDate, stamp)
	}
	return cal.Serialize(), nil
}

// addAllDayEvent uses an exclusive end date on the following day.
func addAllDayEvent(cal *ics.Calendar, uid, summary string, day domain.Date, stamp time.Time) {
	ev := cal.AddEvent(uid)
	ev.SetDtStampTime(stamp)
	ev.SetAllDayStartAt(day.Time)
	ev.SetAllDayEndAt(day.AddDays(1).Time)
	ev.SetSummary(summary)
}
