package mailer

import (
	"fmt"
	"net/smtp"

	"github.com/rs/zerolog"
)

// SMTPConfig is filled from the smtp section of config.yaml. An empty Host
// disables delivery, which keeps local development quiet.
type SMTPConfig struct {
	Host     string
	Port     string
	From     string
	Password string
}

func (c *SMTPConfig) enabled() bool {
	return c != nil && c.Host != ""
}

// SendConfirmationEmail tells a participant their registration is locked in.
func SendConfirmationEmail(log *zerolog.Logger, cfg *SMTPConfig, to, eventName string) error {
	subject := fmt.Sprintf("Your spot in %q is confirmed", eventName)
	body := fmt.Sprintf(
		"Hello!\n\nYour participation in %q is confirmed. You will receive your gift assignment once the draw is approved.",
		eventName,
	)
	return send(log, cfg, to, subject, body)
}

// SendAssignmentEmail tells a giver who they drew. The receiver never learns
// the giver, so no mail goes the other way.
func SendAssignmentEmail(log *zerolog.Logger, cfg *SMTPConfig, to, eventName, receiverName, receiverAddress string) error {
	subject := fmt.Sprintf("Your gift assignment for %q", eventName)
	body := fmt.Sprintf(
		"Hello!\n\nIn %q you are giving a gift to %s.\nDelivery address: %s\n\nKeep it secret!",
		eventName, receiverName, receiverAddress,
	)
	return send(log, cfg, to, subject, body)
}

func send(log *zerolog.Logger, cfg *SMTPConfig, to, subject, body string) error {
	if !cfg.enabled() {
		log.Debug().Str("to", to).Str("subject", subject).Msg("SMTP disabled, skipping email")
		return nil
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		cfg.From, to, subject, body,
	)

	addr := cfg.Host + ":" + cfg.Port
	auth := smtp.PlainAuth("", cfg.From, cfg.Password, cfg.Host)

	if err := smtp.SendMail(addr, auth, cfg.From, []string{to}, []byte(msg)); err != nil {
		log.Warn().Msgf("failed to send email to %s: %v", to, err)
		return fmt.Errorf("send email: %w", err)
	}

	log.Info().Str("to", to).Str("subject", subject).Msg("email sent")
	return nil
}
