package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"rapporteur_backend/internal/config"
	"rapporteur_backend/internal/services/dto"
	"rapporteur_backend/internal/validator"
	"rapporteur_backend/pkg/apperrors"
)

type capturingSender struct {
	sent []*gomail.Message
	err  error
}

func (s *capturingSender) DialAndSend(m ...*gomail.Message) error {
	if s.err != nil {
		return s.err
	}
	s.sent = append(s.sent, m...)
	return nil
}

func contactConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Email.FromEmail = "noreply@example.com"
	cfg.Email.ContactEmail = "bookings@example.com"
	return cfg
}

func validEnquiry() *dto.ContactRequest {
	return &dto.ContactRequest{
		Name:    "Ama Mensah",
		Email:   "ama@example.com",
		Message: "We need rapporteur coverage for a two-day legal conference.",
	}
}

func TestContactService_Submit(t *testing.T) {
	sender := &capturingSender{}
	svc := NewContactService(contactConfig(), sender, validator.New())

	err := svc.Submit(context.Background(), validEnquiry())
	require.NoError(t, err)

	require.Len(t, sender.sent, 1)
	msg := sender.sent[0]
	assert.Equal(t, []string{"bookings@example.com"}, msg.GetHeader("To"))
	assert.Equal(t, []string{"ama@example.com"}, msg.GetHeader("Reply-To"))
	assert.Contains(t, msg.GetHeader("Subject")[0], "Ama Mensah")
}

func TestContactService_Submit_ValidationFailure(t *testing.T) {
	sender := &capturingSender{}
	svc := NewContactService(contactConfig(), sender, validator.New())

	err := svc.Submit(context.Background(), &dto.ContactRequest{
		Email: "not-an-email",
	})
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPCode)
	assert.Empty(t, sender.sent, "nothing is sent on bad input")
}

func TestContactService_Submit_SendFailure(t *testing.T) {
	sender := &capturingSender{err: errors.New("smtp refused")}
	svc := NewContactService(contactConfig(), sender, validator.New())

	err := svc.Submit(context.Background(), validEnquiry())
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, appErr.HTTPCode)
}

func TestBuildEnquiryBody_EscapesHTML(t *testing.T) {
	req := validEnquiry()
	req.Organization = `<script>alert("x")</script>`

	body := buildEnquiryBody(req)
	assert.NotContains(t, body, "<script>")
	assert.Contains(t, body, "&lt;script&gt;")
}
