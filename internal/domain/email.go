package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(ctx context.Context, to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// ClosingPackEmailData holds data for the closing pack summary email.
type ClosingPackEmailData struct {
	Email           string
	ClientName      string
	ProjectTitle    string
	Location        string
	Status          string
	TargetCloseDate string
	OpenTasks       int
	ChecklistDone   int
	ChecklistTotal  int
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendClosingPackSummary(ctx context.Context, data *ClosingPackEmailData) error
}
