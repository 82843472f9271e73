package services

import (
	"context"
	"fmt"
	"html"
	"strings"

	"gopkg.in/gomail.v2"

	"rapporteur_backend/internal/config"
	"rapporteur_backend/internal/logger"
	"rapporteur_backend/internal/services/dto"
	"rapporteur_backend/internal/validator"
	"rapporteur_backend/pkg/apperrors"
)

// MailSender sends a single message. Satisfied by gomail's Dialer.
type MailSender interface {
	DialAndSend(m ...*gomail.Message) error
}

// ContactService delivers booking enquiries from the contact page to
// the bookings inbox.
type ContactService interface {
	Submit(ctx context.Context, req *dto.ContactRequest) error
}

type contactService struct {
	cfg      *config.Config
	sender   MailSender
	validate *validator.Validator
}

// NewContactService wires the enquiry mailer. A nil sender builds the
// default SMTP dialer from config.
func NewContactService(cfg *config.Config, sender MailSender, v *validator.Validator) ContactService {
	if sender == nil {
		sender = gomail.NewDialer(
			cfg.Email.SMTPHost,
			cfg.Email.SMTPPort,
			cfg.Email.SMTPUsername,
			cfg.Email.SMTPPassword,
		)
	}
	return &contactService{
		cfg:      cfg,
		sender:   sender,
		validate: v,
	}
}

func (s *contactService) Submit(ctx context.Context, req *dto.ContactRequest) error {
	if err := s.validate.Validate(req); err != nil {
		if vErr, ok := err.(*validator.ValidationError); ok {
			return apperrors.ValidationError("Validation failed", vErr.Fields)
		}
		return apperrors.InternalError(err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.Email.FromEmail)
	m.SetHeader("To", s.cfg.Email.ContactEmail)
	m.SetHeader("Reply-To", req.Email)
	m.SetHeader("Subject", fmt.Sprintf("Rapporteur enquiry from %s", strings.TrimSpace(req.Name)))
	m.SetBody("text/html", buildEnquiryBody(req))

	if err := s.sender.DialAndSend(m); err != nil {
		logger.CtxWithError(ctx, "failed to send contact enquiry", err)
		return apperrors.InternalError(err)
	}

	logger.CtxInfo(ctx, "contact enquiry delivered", "from", req.Email)
	return nil
}

func buildEnquiryBody(req *dto.ContactRequest) string {
	var b strings.Builder
	row := func(label, value string) {
		if value == "" {
			return
		}
		fmt.Fprintf(&b, "<p><strong>%s:</strong> %s</p>", label, html.EscapeString(value))
	}

	row("Name", req.Name)
	row("Email", req.Email)
	row("Phone", req.Phone)
	row("Organization", req.Organization)
	row("Event type", req.EventType)
	row("Event date", req.EventDate)
	row("Event format", req.EventFormat)
	row("Event duration", req.EventDuration)
	row("Expected attendees", req.Attendees)
	row("Special requirements", req.SpecialRequirements)
	row("Message", req.Message)
	return b.String()
}
