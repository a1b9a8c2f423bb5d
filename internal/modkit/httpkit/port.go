package httpkit

import (
	"net/http"
	"strings"

	perrs "servicegeek/internal/platform/errors"
)

// TokenFunc checks a raw bearer token and returns the caller's user id and org
// org may be empty
type TokenFunc func(token string) (userID string, orgID string, err error)

// Port implements middleware.AuthPort over an Authorization Bearer header
type Port struct {
	parse TokenFunc
}

// NewPortFunc builds a Port around fn
func NewPortFunc(fn TokenFunc) *Port {
	return &Port{parse: fn}
}

// Parse reads the bearer token and hands it to the TokenFunc
// the scheme is case insensitive; every failure is unauthorized
func (p *Port) Parse(r *http.Request) (string, string, error) {
	scheme, raw, ok := strings.Cut(strings.TrimSpace(r.Header.Get("Authorization")), " ")
	raw = strings.TrimSpace(raw)
	if !ok || !strings.EqualFold(scheme, "bearer") || raw == "" {
		return "", "", perrs.Unauthorizedf("missing bearer token")
	}
	if p.parse == nil {
		return "", "", perrs.Unauthorizedf("invalid bearer token")
	}
	uid, org, err := p.parse(raw)
	if err != nil {
		return "", "", perrs.Unauthorizedf("invalid bearer token")
	}
	return uid, org, nil
}
