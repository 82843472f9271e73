package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rapporteur_backend/internal/services/dto"
	"rapporteur_backend/pkg/apperrors"
)

func fieldMessages(t *testing.T, err error) map[string]string {
	t.Helper()
	vErr, ok := err.(*ValidationError)
	require.True(t, ok, "expected *ValidationError, got %T", err)

	msgs := make(map[string]string, len(vErr.Fields))
	for _, fe := range vErr.Fields {
		msgs[fe.Field] = fe.Message
	}
	return msgs
}

func validCreateRequest() *dto.CreateReportRequest {
	return &dto.CreateReportRequest{
		Title:       "Quarterly Trade Forum",
		Description: "Sessions and resolutions",
		Category:    "Trade Forums",
		EventDate:   "2026-03-15",
	}
}

func TestValidate_ValidCreateRequest(t *testing.T) {
	v := New()
	assert.NoError(t, v.Validate(validCreateRequest()))
}

func TestValidate_CollectsEveryViolation(t *testing.T) {
	v := New()

	err := v.Validate(&dto.CreateReportRequest{
		Title:       "",
		Description: "",
		Category:    "Cooking Shows",
		EventDate:   "not-a-date",
	})
	require.Error(t, err)

	msgs := fieldMessages(t, err)
	assert.Len(t, msgs, 4)
	assert.Equal(t, "Title is required", msgs["title"])
	assert.Equal(t, "Description is required", msgs["description"])
	assert.Equal(t, "Valid category is required", msgs["category"])
	assert.Equal(t, "Valid event date is required", msgs["eventDate"])
}

func TestValidate_WhitespaceOnlyTitle(t *testing.T) {
	v := New()

	req := validCreateRequest()
	req.Title = "   "
	err := v.Validate(req)
	require.Error(t, err)

	msgs := fieldMessages(t, err)
	assert.Equal(t, "Title cannot be empty", msgs["title"])
}

func TestValidate_MaxLength(t *testing.T) {
	v := New()

	req := validCreateRequest()
	req.Title = strings.Repeat("x", 201)
	err := v.Validate(req)
	require.Error(t, err)

	msgs := fieldMessages(t, err)
	assert.Equal(t, "Title must be less than 200 characters", msgs["title"])
}

func TestValidate_EventDateFormats(t *testing.T) {
	v := New()

	req := validCreateRequest()
	req.EventDate = "2026-03-15T10:00:00Z"
	assert.NoError(t, v.Validate(req), "RFC3339 event dates are accepted")

	req.EventDate = "15/03/2026"
	assert.Error(t, v.Validate(req))
}

func TestValidate_UpdateSkipsAbsentFields(t *testing.T) {
	v := New()

	// An empty partial update has nothing to validate.
	assert.NoError(t, v.Validate(&dto.UpdateReportRequest{}))

	// But a present field is held to the same rules as on create.
	blank := "  "
	err := v.Validate(&dto.UpdateReportRequest{Title: &blank})
	require.Error(t, err)
	msgs := fieldMessages(t, err)
	assert.Equal(t, "Title cannot be empty", msgs["title"])
}

func TestValidate_ContactRequest(t *testing.T) {
	v := New()

	err := v.Validate(&dto.ContactRequest{
		Name:  "Ama Mensah",
		Email: "not-an-email",
	})
	require.Error(t, err)

	msgs := fieldMessages(t, err)
	assert.Equal(t, "Email must be a valid email address", msgs["email"])
	assert.Equal(t, "Message is required", msgs["message"])

	assert.NoError(t, v.Validate(&dto.ContactRequest{
		Name:        "Ama Mensah",
		Email:       "ama@example.com",
		Message:     "We need coverage for a two-day forum.",
		EventFormat: "hybrid",
	}))
}

func TestValidationError_ErrorString(t *testing.T) {
	err := &ValidationError{Fields: []apperrors.FieldError{
		{Field: "title", Message: "Title is required"},
	}}
	assert.Contains(t, err.Error(), "Title is required")
}
