package services

import (
	"fmt"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/samedayramps/app-samedayramps/internal/config"
	"github.com/samedayramps/app-samedayramps/internal/domain"
)

// EmailService sends quote emails to customers via SendGrid
type EmailService struct {
	cfg    *config.EmailConfig
	client *sendgrid.Client
}

// NewEmailService creates a new email service
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	svc := &EmailService{cfg: cfg}
	if cfg.Enabled && cfg.APIKey != "" {
		svc.client = sendgrid.NewSendClient(cfg.APIKey)
	}
	return svc
}

// IsEnabled returns whether email delivery is enabled
func (s *EmailService) IsEnabled() bool {
	return s.cfg.Enabled && s.client != nil
}

// SendQuote emails a quote to the lead's address
func (s *EmailService) SendQuote(quote *domain.Quote, lead *domain.Lead) error {
	subject, htmlBody, textBody := buildQuoteEmail(quote, lead)

	if !s.IsEnabled() {
		// In development mode, just log
		fmt.Printf("[EMAIL] Would send quote %s to %s: %s\n", quote.ID, lead.Email, subject)
		return nil
	}

	from := mail.NewEmail(s.cfg.FromName, s.cfg.FromEmail)
	to := mail.NewEmail(lead.FullName(), lead.Email)
	message := mail.NewSingleEmail(from, subject, to, textBody, htmlBody)

	response, err := s.client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send quote email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("email service returned status %d: %s", response.StatusCode, response.Body)
	}

	return nil
}

// buildQuoteEmail renders the subject, HTML body and plain text body for a
// quote email
func buildQuoteEmail(quote *domain.Quote, lead *domain.Lead) (subject, htmlBody, textBody string) {
	subject = fmt.Sprintf("Your Wheelchair Ramp Rental Quote - $%.2f", quote.Price)

	expires := "30 days from today"
	if quote.ExpiresAt != nil {
		expires = quote.ExpiresAt.Format("January 2, 2006")
	}

	notes := ""
	if quote.Notes != nil && strings.TrimSpace(*quote.Notes) != "" {
		notes = strings.TrimSpace(*quote.Notes)
	}

	htmlNotes := ""
	if notes != "" {
		htmlNotes = fmt.Sprintf(`
        <div style="background: #FFFFFF; padding: 20px; border-left: 4px solid #2563EB; border-radius: 4px; margin: 20px 0;">
            <h3 style="color: #0F172A; margin-top: 0;">Notes:</h3>
            <p style="white-space: pre-wrap;">%s</p>
        </div>`, notes)
	}

	htmlBody = fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Your Ramp Rental Quote</title>
</head>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #334155;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2 style="color: #2563EB;">Your Wheelchair Ramp Rental Quote</h2>

        <p>Hi %s,</p>
        <p>Thank you for your interest in a wheelchair ramp rental. Here is your quote for the installation at %s:</p>

        <div style="background: #F8FAFC; padding: 20px; border-radius: 8px; margin: 20px 0;">
            <p><strong>Ramp Length:</strong> %.0f ft</p>
            <p><strong>Platforms:</strong> %d</p>
            <p><strong>Delivery Distance:</strong> %.1f miles</p>
            <p style="font-size: 20px;"><strong>Total Price:</strong> $%.2f</p>
        </div>
        %s
        <p>This quote is valid until <strong>%s</strong>. Reply to this email or give us a call to schedule your installation.</p>

        <p style="color: #64748B; font-size: 14px;">
            Quote ID: %s
        </p>
    </div>
</body>
</html>`, lead.FirstName, lead.InstallAddress, quote.RampLength, quote.Platforms, quote.Distance, quote.Price, htmlNotes, expires, quote.ID)

	textNotes := ""
	if notes != "" {
		textNotes = fmt.Sprintf("\nNotes:\n%s\n", notes)
	}

	textBody = fmt.Sprintf(`Hi %s,

Thank you for your interest in a wheelchair ramp rental. Here is your quote for the installation at %s:

Ramp Length: %.0f ft
Platforms: %d
Delivery Distance: %.1f miles
Total Price: $%.2f
%s
This quote is valid until %s. Reply to this email or give us a call to schedule your installation.

Quote ID: %s`, lead.FirstName, lead.InstallAddress, quote.RampLength, quote.Platforms, quote.Distance, quote.Price, textNotes, expires, quote.ID)

	return subject, htmlBody, textBody
}
