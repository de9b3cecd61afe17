package notification

import (
	"context"
	"fmt"

	"haven/config"
	"haven/utils"

	"github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

func newMailClient() (*mail.Client, error) {
	return mail.NewClient(config.AppConfig.SMTPHost,
		mail.WithPort(config.AppConfig.SMTPPort),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(config.AppConfig.SMTPUsername),
		mail.WithPassword(config.AppConfig.SMTPPassword),
		mail.WithTLSPortPolicy(mail.TLSMandatory),
	)
}

func (s *Service) sendEmail(ctx context.Context, to, subject, htmlBody string) error {
	if config.AppConfig.SMTPHost == "" {
		utils.GetLogger().Debug("SMTP not configured, skipping email", zap.String("to", to))
		return nil
	}

	msg := mail.NewMsg()
	if err := msg.FromFormat(config.AppConfig.MailFromName, config.AppConfig.MailFrom); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("invalid recipient address %q: %w", to, err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	client, err := newMailClient()
	if err != nil {
		return fmt.Errorf("failed to build mail client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}

	utils.GetLogger().Info("Email sent", zap.String("to", to), zap.String("subject", subject))
	return nil
}
