// Package services: services/mail_service.go
package services

import (
	"fmt"

	mailjet "github.com/mailjet/mailjet-apiv3-go"

	"zeroun-site/logger"
)

// MailServiceInterface sends transactional mail to admins.
type MailServiceInterface interface {
	SendResetEmail(toEmail, resetLink string) error
}

// MailService sends email through the Mailjet API. Without API keys it only
// logs, which keeps local development and tests offline.
type MailService struct {
	sender     string
	publicKey  string
	privateKey string
}

// NewMailService creates a MailService. Keys may be empty.
func NewMailService(sender, publicKey, privateKey string) *MailService {
	return &MailService{sender: sender, publicKey: publicKey, privateKey: privateKey}
}

// SendResetEmail mails a password reset link to an admin.
func (m *MailService) SendResetEmail(toEmail, resetLink string) error {
	body := fmt.Sprintf("Cliquez sur ce lien pour réinitialiser votre mot de passe: %s", resetLink)

	if m.publicKey == "" || m.privateKey == "" {
		logger.Warn.Printf("[SendResetEmail] Mailjet keys not configured, reset link for %s not sent", toEmail)
		return nil
	}

	clt := mailjet.NewMailjetClient(m.publicKey, m.privateKey)
	msgs := mailjet.MessagesV31{Info: []mailjet.InfoMessagesV31{{
		From:     &mailjet.RecipientV31{Email: m.sender},
		To:       &mailjet.RecipientsV31{mailjet.RecipientV31{Email: toEmail}},
		Subject:  "Réinitialisation mot de passe",
		TextPart: body,
	}}}
	if _, err := clt.SendMailV31(&msgs); err != nil {
		return fmt.Errorf("could not send mail: %w", err)
	}
	logger.Info.Printf("[SendResetEmail] Reset email sent to %s", toEmail)
	return nil
}
