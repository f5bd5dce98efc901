package admin

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const tokenSubject = "admin"

// GateConfig holds the admin secret. PasswordHash (bcrypt) takes precedence over Password.
type GateConfig struct {
	Password     string
	PasswordHash string
	TokenSecret  string
	TokenTTL     time.Duration
}

// Gate checks the admin password. It only guards this service's admin routes.
type Gate struct {
	password    []byte
	hash        []byte
	tokenSecret []byte
	tokenTTL    time.Duration
	now         func() time.Time
}

// Result of an authentication attempt. Token is set only when token signing is configured.
type Result struct {
	Granted   bool       `json:"granted"`
	Token     string     `json:"token,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

func NewGate(cfg GateConfig) *Gate {
	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &Gate{
		password:    []byte(cfg.Password),
		hash:        []byte(cfg.PasswordHash),
		tokenSecret: []byte(cfg.TokenSecret),
		tokenTTL:    ttl,
		now:         time.Now,
	}
}

// Configured reports whether any admin secret is set. Without one nobody is granted.
func (g *Gate) Configured() bool {
	return len(g.password) > 0 || len(g.hash) > 0
}

// Authenticate grants access when password matches the configured secret exactly.
func (g *Gate) Authenticate(password string) Result {
	if !g.matches(password) {
		return Result{Granted: false}
	}
	result := Result{Granted: true}
	if len(g.tokenSecret) == 0 {
		return result
	}

	expires := g.now().Add(g.tokenTTL)
	token, err := g.sign(expires)
	if err != nil {
		return result
	}
	result.Token = token
	result.ExpiresAt = &expires
	return result
}

func (g *Gate) matches(password string) bool {
	switch {
	case len(g.hash) > 0:
		return bcrypt.CompareHashAndPassword(g.hash, []byte(password)) == nil
	case len(g.password) > 0:
		return subtle.ConstantTimeCompare(g.password, []byte(password)) == 1
	}
	return false
}

func (g *Gate) sign(expires time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   tokenSubject,
		IssuedAt:  jwt.NewNumericDate(g.now()),
		ExpiresAt: jwt.NewNumericDate(expires),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(g.tokenSecret)
}

// VerifyToken accepts bearer tokens issued by Authenticate that have not expired.
func (g *Gate) VerifyToken(raw string) error {
	if len(g.tokenSecret) == 0 {
		return errors.New("token signing is not configured")
	}
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return g.tokenSecret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithSubject(tokenSubject),
		jwt.WithTimeFunc(g.now),
	)
	if err != nil {
		return fmt.Errorf("verify admin token: %w", err)
	}
	return nil
}
