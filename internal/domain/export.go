package domain

import (
	"context"
	"io"
)

// CalendarService exports project deadlines as iCalendar.
type CalendarService interface {
	ProjectCalendar(ctx context.Context, projectID int64) (string, error)
}

// ClosingPackService builds the completion bundle for a project.
type ClosingPackService interface {
	// WriteClosingPack writes the zip archive for projectID to w.
	WriteClosingPack(ctx context.Context, projectID int64, w io.Writer) error
	NotifyClient(ctx context.Context, projectID int64, actor string) error
}
