package api

import (
	"time"

	"github.com/rpupo63/portfolio-site-backend/admin"
)

const (
	maxJSONBody      = 1 << 20
	maxMultipartBody = 12 << 20
)

// ErrorResponse represents an error response from the API
// @Description Error response structure
type ErrorResponse struct {
	Error   string `json:"error" example:"Internal Server Error"`
	Status  string `json:"status" example:"error"`
	Field   string `json:"field,omitempty" example:"title"`
	Details string `json:"details,omitempty" example:"Additional error details"`
	Cause   string `json:"cause,omitempty" example:"Underlying error cause"`
}

type LoginRequest struct {
	Password string `json:"password"`
}

// SessionResponse reports whether the caller holds the admin flag. Token is only
// present right after login when token signing is configured.
type SessionResponse struct {
	Authenticated bool       `json:"authenticated"`
	Token         string     `json:"token,omitempty"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
}

type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

type SubmissionResponse struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

type EditModalRequest struct {
	Values admin.Values `json:"values"`
}

type SubmitModalRequest struct {
	Values admin.Values `json:"values"`
}

type AddImageRequest struct {
	URL string `json:"url"`
}

type MoveImageRequest struct {
	From int `json:"from"`
	To   int `json:"to"`
}

type StatusRequest struct {
	Status string `json:"status"`
}

type VisibilityRequest struct {
	Visible bool `json:"visible"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Uptime   string `json:"uptime"`
}
