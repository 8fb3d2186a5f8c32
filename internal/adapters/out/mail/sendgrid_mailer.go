// internal/adapters/out/mail/sendgrid_mailer.go
package mail

import (
	"context"
	"fmt"
	"log"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendGridMailer implements usecase.Mailer using SendGrid.
type SendGridMailer struct {
	apiKey   string
	fromName string
	fromAddr string
}

func NewSendGridMailer(apiKey, fromName, fromAddr string) *SendGridMailer {
	return &SendGridMailer{
		apiKey:   apiKey,
		fromName: fromName,
		fromAddr: fromAddr,
	}
}

func (m *SendGridMailer) Send(ctx context.Context, to, subject, body string) error {
	if m == nil || m.apiKey == "" {
		return fmt.Errorf("sendgrid api key is empty")
	}
	if m.fromAddr == "" {
		return fmt.Errorf("from address is empty")
	}
	if to == "" {
		return fmt.Errorf("to address is empty")
	}

	from := sgmail.NewEmail(m.fromName, m.fromAddr)
	htmlContent := fmt.Sprintf("<pre>%s</pre>", body)
	message := sgmail.NewSingleEmail(from, subject, sgmail.NewEmail("", to), body, htmlContent)

	cli := sendgrid.NewSendClient(m.apiKey)
	resp, err := cli.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid send error: %w", err)
	}
	if resp.StatusCode >= 400 {
		log.Printf("[sendgrid] error status=%d body=%s", resp.StatusCode, resp.Body)
		return fmt.Errorf("sendgrid send failed: status=%d", resp.StatusCode)
	}

	log.Printf("[sendgrid] mail sent status=%d subject=%s", resp.StatusCode, subject)
	return nil
}
