package email

import (
	"fmt"

	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// sendWithSendgrid sends an email using the Sendgrid API
func (s *Service) sendWithSendgrid(from, fromName string, msg Message) error {
	sender := mail.NewEmail(fromName, from)
	to := mail.NewEmail("", msg.To)
	message := mail.NewSingleEmail(sender, msg.Subject, to, msg.TextBody, msg.HTMLBody)

	response, err := s.sendgridClient.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email via Sendgrid: %w", err)
	}

	if response.StatusCode != 202 {
		return fmt.Errorf("unexpected Sendgrid status code: %d, body: %s", response.StatusCode, response.Body)
	}

	return nil
}
