package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/models"
)

func TestNotifierRequiresConfiguration(t *testing.T) {
	n := NewNotifier(NotifierConfig{APIKey: "key"})
	assert.False(t, n.Configured())

	err := n.NotifyContact(context.Background(), &models.ContactMessage{Subject: "hi"})
	assert.True(t, errs.IsNotConfigured(err))
	assert.Equal(t, http.StatusServiceUnavailable, errs.StatusCode(err))
}

func TestNotifierConfigFromEnv(t *testing.T) {
	cfg := NotifierConfigFrom(map[string]string{
		"RESEND_API_KEY":    "re_123",
		"RESEND_FROM_EMAIL": "Site <site@example.com>",
		"NOTIFY_EMAIL":      "a@example.com, b@example.com",
	})
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, cfg.Recipients)
	assert.Equal(t, resendEndpoint, cfg.Endpoint)
	assert.True(t, NewNotifier(cfg).Configured())
}

func TestNotifyContactPostsEscapedBody(t *testing.T) {
	var got ResendEmailRequest
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"email_1"}`))
	}))
	defer srv.Close()

	n := NewNotifier(NotifierConfig{
		APIKey:     "re_123",
		From:       "site@example.com",
		Recipients: []string{"owner@example.com"},
		Endpoint:   srv.URL,
	})
	err := n.NotifyContact(context.Background(), &models.ContactMessage{
		Name:    "Eve",
		Email:   "eve@example.com",
		Subject: "Quote",
		Message: "<script>x</script>\nthanks",
	})
	require.NoError(t, err)

	assert.Equal(t, "Bearer re_123", auth)
	assert.Equal(t, []string{"owner@example.com"}, got.To)
	assert.Equal(t, "eve@example.com", got.ReplyTo)
	assert.Equal(t, "New contact message: Quote", got.Subject)
	assert.Contains(t, got.Html, "&lt;script&gt;x&lt;/script&gt;<br>thanks")
	assert.NotContains(t, got.Html, "<script>")
}

func TestNotifyApplicationSkipsEmptyFields(t *testing.T) {
	var got ResendEmailRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"id":"email_2"}`))
	}))
	defer srv.Close()

	years := 3
	n := NewNotifier(NotifierConfig{APIKey: "k", From: "f@example.com", Recipients: []string{"o@example.com"}, Endpoint: srv.URL})
	err := n.NotifyApplication(context.Background(), &models.JobApplication{
		FullName:        "Sam Doe",
		Email:           "sam@example.com",
		Position:        "Designer",
		ExperienceYears: &years,
	})
	require.NoError(t, err)

	assert.Equal(t, "New application: Sam Doe for Designer", got.Subject)
	assert.Contains(t, got.Html, "<strong>Experience (years):</strong> 3")
	assert.NotContains(t, got.Html, "Resume")
}

func TestNotifierSurfacesResendErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"invalid from address"}`))
	}))
	defer srv.Close()

	n := NewNotifier(NotifierConfig{APIKey: "k", From: "bad", Recipients: []string{"o@example.com"}, Endpoint: srv.URL})
	err := n.SendEmail(context.Background(), "s", "b", "")

	require.Error(t, err)
	assert.Equal(t, http.StatusBadGateway, errs.StatusCode(err))
	var apiErr *errs.ApiErr
	require.ErrorAs(t, err, &apiErr)
	assert.Contains(t, apiErr.GetFullError(), "invalid from address")
}
