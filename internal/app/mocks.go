package app

import (
	"gopkg.in/gomail.v2"

	"rapporteur_backend/internal/logger"
)

// logOnlySender stands in for SMTP during local development.
type logOnlySender struct{}

func (s *logOnlySender) DialAndSend(m ...*gomail.Message) error {
	for _, msg := range m {
		logger.Info("Contact enquiry (delivery disabled)", "subject", msg.GetHeader("Subject"))
	}
	return nil
}
