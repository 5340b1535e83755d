package email

import "github.com/dropDatabas3/idauth/internal/observability/logger"

// NoopSender loggea en lugar de enviar. Para dev sin SMTP configurado.
type NoopSender struct{}

func (NoopSender) Send(to, subject, htmlBody, textBody string) error {
	logger.Named("email").Info("noop sender, email not sent",
		logger.String("to", to),
		logger.String("subject", subject),
	)
	return nil
}
