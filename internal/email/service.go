// internal/email/service.go
package email

import (
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/vinculocrm/vinculo/internal/config"
)

// SMTPSettings carries the sender configuration stored on a business
// unit's email channel.
type SMTPSettings struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

// Message contains all necessary information for sending an email.
type Message struct {
	To       string
	Subject  string
	HTMLBody string
	TextBody string
}

// Service handles outbound email. Messages go through the business unit's
// own SMTP server when one is configured; otherwise the process-wide
// Sendgrid account is used.
type Service struct {
	config         *config.Config
	sendgridClient *sendgrid.Client
}

func NewService(cfg *config.Config) *Service {
	s := &Service{config: cfg}
	if cfg.Sendgrid.APIKey != "" {
		s.sendgridClient = sendgrid.NewSendClient(cfg.Sendgrid.APIKey)
	}
	return s
}

// Send delivers the message via the unit's SMTP settings, falling back to
// Sendgrid when no SMTP host is configured.
func (s *Service) Send(settings *SMTPSettings, msg Message) error {
	if settings != nil && settings.Host != "" {
		return s.sendWithSMTP(settings, msg)
	}

	if s.sendgridClient == nil {
		return fmt.Errorf("no SMTP host configured and no sendgrid fallback available")
	}

	from := s.config.Sendgrid.From
	fromName := ""
	if settings != nil {
		if settings.From != "" {
			from = settings.From
		}
		fromName = settings.FromName
	}
	return s.sendWithSendgrid(from, fromName, msg)
}
