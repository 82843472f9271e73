package integration_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rapporteur_backend/test/helpers"
)

func TestSubmitEnquiry(t *testing.T) {
	ts := helpers.NewTestServer(t)

	res, body := ts.SendJSON(t, http.MethodPost, "/api/contact", map[string]interface{}{
		"name":        "Ama Mensah",
		"email":       "ama@example.com",
		"message":     "We need rapporteur coverage for our annual trade forum.",
		"eventFormat": "hybrid",
	})
	require.Equal(t, http.StatusOK, res.StatusCode, "unexpected body: %s", body)

	env := parseEnvelope(t, body)
	assert.True(t, env.Success)
	assert.Equal(t, "Enquiry submitted successfully", env.Message)
}

func TestSubmitEnquiry_ValidationErrors(t *testing.T) {
	ts := helpers.NewTestServer(t)

	res, body := ts.SendJSON(t, http.MethodPost, "/api/contact", map[string]interface{}{
		"email": "not-an-email",
	})
	require.Equal(t, http.StatusBadRequest, res.StatusCode)

	env := parseEnvelope(t, body)
	assert.False(t, env.Success)

	fieldsSeen := map[string]bool{}
	for _, fe := range env.Errors {
		fieldsSeen[fe.Field] = true
	}
	assert.True(t, fieldsSeen["name"])
	assert.True(t, fieldsSeen["email"])
	assert.True(t, fieldsSeen["message"])
}
