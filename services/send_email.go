package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-site-backend/config"
	"github.com/rpupo63/portfolio-site-backend/errs"
	"github.com/rpupo63/portfolio-site-backend/models"
)

const resendEndpoint = "https://api.resend.com/emails"

// ResendEmailRequest represents the request payload for Resend API
type ResendEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Html    string   `json:"html,omitempty"`
	Text    string   `json:"text,omitempty"`
	ReplyTo string   `json:"reply_to,omitempty"`
}

// ResendEmailResponse represents the response from Resend API
type ResendEmailResponse struct {
	ID string `json:"id"`
}

// ResendErrorResponse represents an error response from Resend API
type ResendErrorResponse struct {
	Message string `json:"message"`
}

type NotifierConfig struct {
	APIKey     string
	From       string
	Recipients []string
	Endpoint   string
	Timeout    time.Duration
}

// NotifierConfigFrom reads RESEND_API_KEY, RESEND_FROM_EMAIL and NOTIFY_EMAIL (comma separated).
func NotifierConfigFrom(cfg map[string]string) NotifierConfig {
	return NotifierConfig{
		APIKey:     config.GetString(cfg, "RESEND_API_KEY", ""),
		From:       config.GetString(cfg, "RESEND_FROM_EMAIL", ""),
		Recipients: config.GetList(cfg, "NOTIFY_EMAIL"),
		Endpoint:   config.GetString(cfg, "RESEND_ENDPOINT", resendEndpoint),
	}
}

// Notifier emails the site owner about new contact messages and job applications.
type Notifier struct {
	cfg    NotifierConfig
	client *http.Client
}

func NewNotifier(cfg NotifierConfig) *Notifier {
	if cfg.Endpoint == "" {
		cfg.Endpoint = resendEndpoint
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Notifier{cfg: cfg, client: &http.Client{Timeout: cfg.Timeout}}
}

func (n *Notifier) Configured() bool {
	return n != nil && n.cfg.APIKey != "" && n.cfg.From != "" && len(n.cfg.Recipients) > 0
}

// SendEmail sends an HTML email using the Resend API.
func (n *Notifier) SendEmail(ctx context.Context, subject, body, replyTo string) error {
	if !n.Configured() {
		return errs.NewConfigError("email notifier")
	}

	payload := ResendEmailRequest{
		From:    n.cfg.From,
		To:      n.cfg.Recipients,
		Subject: subject,
		Html:    body,
		ReplyTo: replyTo,
	}
	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal email payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.cfg.Endpoint, bytes.NewReader(jsonPayload))
	if err != nil {
		return fmt.Errorf("failed to create Resend API request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+n.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return errs.NewNotificationError(fmt.Errorf("failed to send request to Resend API: %w", err))
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return errs.NewNotificationError(fmt.Errorf("failed to read Resend API response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errorResp ResendErrorResponse
		if err := json.Unmarshal(bodyBytes, &errorResp); err == nil && errorResp.Message != "" {
			return errs.NewNotificationError(fmt.Errorf("resend API error (status %d): %s", resp.StatusCode, errorResp.Message))
		}
		return errs.NewNotificationError(fmt.Errorf("resend API error (status %d): %s", resp.StatusCode, string(bodyBytes)))
	}

	var emailResponse ResendEmailResponse
	if err := json.Unmarshal(bodyBytes, &emailResponse); err != nil {
		log.Warn().Err(err).Msg("Failed to parse Resend email response, but email was sent")
	} else {
		log.Info().Str("emailId", emailResponse.ID).Msg("Successfully sent email via Resend")
	}
	return nil
}

func (n *Notifier) NotifyContact(ctx context.Context, msg *models.ContactMessage) error {
	subject := "New contact message: " + msg.Subject
	body := renderFields("New contact message", [][2]string{
		{"Name", msg.Name},
		{"Email", msg.Email},
		{"Subject", msg.Subject},
		{"Message", msg.Message},
	})
	return n.SendEmail(ctx, subject, body, msg.Email)
}

func (n *Notifier) NotifyApplication(ctx context.Context, app *models.JobApplication) error {
	subject := fmt.Sprintf("New application: %s for %s", app.FullName, app.Position)
	experience := ""
	if app.ExperienceYears != nil {
		experience = fmt.Sprintf("%d", *app.ExperienceYears)
	}
	body := renderFields("New job application", [][2]string{
		{"Name", app.FullName},
		{"Email", app.Email},
		{"Position", app.Position},
		{"Phone", deref(app.Phone)},
		{"Experience (years)", experience},
		{"Resume", deref(app.ResumeURL)},
		{"Portfolio", deref(app.PortfolioURL)},
		{"LinkedIn", deref(app.LinkedInURL)},
		{"GitHub", deref(app.GithubURL)},
		{"Cover letter", deref(app.CoverLetter)},
	})
	return n.SendEmail(ctx, subject, body, app.Email)
}

// renderFields builds a small escaped HTML body, skipping empty values.
func renderFields(title string, fields [][2]string) string {
	var sb strings.Builder
	sb.WriteString("<h2>")
	sb.WriteString(html.EscapeString(title))
	sb.WriteString("</h2>")
	for _, f := range fields {
		if strings.TrimSpace(f[1]) == "" {
			continue
		}
		fmt.Fprintf(&sb, "<p><strong>%s:</strong> %s</p>",
			html.EscapeString(f[0]),
			strings.ReplaceAll(html.EscapeString(f[1]), "\n", "<br>"))
	}
	return sb.String()
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
