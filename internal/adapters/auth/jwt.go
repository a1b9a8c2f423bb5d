// Package auth turns bearer tokens into user ids for the http auth middleware
package auth

import (
	"crypto/subtle"
	"errors"
	"strings"

	"github.com/golang-jwt/jwt/v4"

	perr "servicegeek/internal/platform/errors"
)

// WorkerUser is the user id attached to classifier callbacks
const WorkerUser = "worker"

var errNoSecret = errors.New("auth: no signing secret configured")

// Verifier validates HS256 user tokens
type Verifier struct {
	secret []byte
}

// NewVerifier builds a verifier; an empty secret rejects every token
func NewVerifier(secret string) *Verifier {
	return &Verifier{secret: []byte(strings.TrimSpace(secret))}
}

// Parse returns the subject as user id and the optional org claim
// it matches httpkit.TokenFunc
func (v *Verifier) Parse(raw string) (string, string, error) {
	if len(v.secret) == 0 {
		return "", "", errNoSecret
	}
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, perr.Unauthorizedf("unexpected signing method %v", t.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil || !tok.Valid {
		return "", "", perr.Unauthorizedf("invalid token")
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", perr.Unauthorizedf("invalid token claims")
	}
	sub := strClaim(claims, "sub")
	if sub == "" {
		return "", "", perr.Unauthorizedf("token has no subject")
	}
	return sub, strClaim(claims, "org"), nil
}

// Sign issues a token for userID; used by the ctl tool and tests
func (v *Verifier) Sign(userID, org string, claims jwt.MapClaims) (string, error) {
	if len(v.secret) == 0 {
		return "", errNoSecret
	}
	c := jwt.MapClaims{"sub": userID}
	if org != "" {
		c["org"] = org
	}
	for k, val := range claims {
		c[k] = val
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(v.secret)
}

// WorkerToken accepts exactly one shared token for machine callers
func WorkerToken(token string) func(string) (string, string, error) {
	want := []byte(strings.TrimSpace(token))
	return func(raw string) (string, string, error) {
		if len(want) == 0 || subtle.ConstantTimeCompare([]byte(raw), want) != 1 {
			return "", "", perr.Unauthorizedf("invalid worker token")
		}
		return WorkerUser, "", nil
	}
}

func strClaim(m jwt.MapClaims, key string) string {
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return strings.TrimSpace(s)
		}
	}
	return ""
}
