package admin

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/rpupo63/portfolio-site-backend/errs"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail applies the same loose check as the public contact form.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

func required(v Values, field string) (string, error) {
	s := strings.TrimSpace(v[field])
	if s == "" {
		return "", errs.NewMissingRequiredFieldError(field)
	}
	return s, nil
}

// optional trims the field and returns nil when nothing is left.
func optional(v Values, field string) *string {
	s := strings.TrimSpace(v[field])
	if s == "" {
		return nil
	}
	return &s
}

func optionalEmail(v Values, field string) (*string, error) {
	s := optional(v, field)
	if s != nil && !ValidEmail(*s) {
		return nil, errs.NewInvalidFieldError(field, "please enter a valid email address")
	}
	return s, nil
}

// optionalInt coerces numeric input; blank becomes nil.
func optionalInt(v Values, field string) (*int, error) {
	s := strings.TrimSpace(v[field])
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		f, ferr := strconv.ParseFloat(s, 64)
		if ferr != nil {
			return nil, errs.NewInvalidFieldError(field, "must be a number")
		}
		n = int(f)
	}
	return &n, nil
}

// flag reads checkbox style input; blank uses def.
func flag(v Values, field string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(v[field])) {
	case "":
		return def
	case "true", "on", "1", "yes":
		return true
	}
	return false
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func itoa(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}
