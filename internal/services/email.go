package services

import (
	"context"
	"fmt"
	"log/slog"

	"lawflow/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	logger   *slog.Logger
}

// NewEmailService returns an EmailService that uses the given Mailer and template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, logger *slog.Logger) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer, logger: logger}
}

// SendClosingPackSummary sends the matter status email using the "closing_pack_summary" template.
func (s *emailService) SendClosingPackSummary(ctx context.Context, data *domain.ClosingPackEmailData) error {
	if data == nil {
		return fmt.Errorf("closing pack email data is nil")
	}
	if data.Email == "" {
		return domain.ErrMissingRecipient
	}
	subject, htmlBody, textBody, err := s.renderer.Render("closing_pack_summary", data)
	if err != nil {
		return fmt.Errorf("render closing_pack_summary template: %w", err)
	}
	if err := s.mailer.Send(ctx, data.Email, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("send closing pack summary: %w", err)
	}
	s.logger.InfoContext(ctx, "closing pack summary sent", "to", data.Email)
	return nil
}
