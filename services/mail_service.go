package services

import (
	"bytes"
	"context"
	"html/template"

	"rateme.app/configs"
	"rateme.app/configs/configslog"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Mailer sends transactional email.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// SMTPMailer delivers mail through an SMTP relay.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPMailer creates an SMTPMailer.
func NewSMTPMailer(host string, port int, username, password, from string) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (m *SMTPMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)
	if err := m.dialer.DialAndSend(msg); err != nil {
		configslog.Log.Error("Mail could not be sent", zap.String("to", to), zap.Error(err))
		return err
	}
	return nil
}

// LogMailer writes mail to the log instead of sending it. Used when no SMTP
// relay is configured.
type LogMailer struct{}

func (LogMailer) Send(_ context.Context, to, subject, htmlBody string) error {
	configslog.Log.Info("Mail (not sent, SMTP disabled)",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.String("body", htmlBody),
	)
	return nil
}

// NewMailerFromEnv returns an SMTPMailer when SMTP_HOST is set, a LogMailer otherwise.
func NewMailerFromEnv() Mailer {
	host := configs.GetEnvWithDefault("SMTP_HOST", "")
	if host == "" {
		configslog.SLog.Warn("SMTP_HOST is not set, emails will only be logged")
		return LogMailer{}
	}
	return NewSMTPMailer(
		host,
		configs.GetEnvInt("SMTP_PORT", 587),
		configs.GetEnvWithDefault("SMTP_USERNAME", ""),
		configs.GetEnvWithDefault("SMTP_PASSWORD", ""),
		configs.GetEnvWithDefault("SMTP_FROM", "RateMe <no-reply@rateme.app>"),
	)
}

var confirmationMailTemplate = template.Must(template.New("confirmation").Parse(
	`<p>Bonjour {{.Name}},</p>
<p>Merci pour ton inscription sur RateMe. Confirme ton adresse email en cliquant sur le lien ci-dessous :</p>
<p><a href="{{.Link}}">Confirmer mon email</a></p>
<p>Si tu n'es pas à l'origine de cette inscription, ignore ce message.</p>`))

func renderConfirmationMail(name, link string) (string, error) {
	var buf bytes.Buffer
	err := confirmationMailTemplate.Execute(&buf, struct{ Name, Link string }{name, link})
	return buf.String(), err
}

var _ Mailer = (*SMTPMailer)(nil)
var _ Mailer = LogMailer{}
