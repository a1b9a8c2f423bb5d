package httpkit

import (
	"net/http"

	perrs "servicegeek/internal/platform/errors"
	pnet "servicegeek/internal/platform/net"
)

// User returns the authenticated principal from the request context
// on worker routes this is the fixed worker principal
func User(r *http.Request) (string, error) {
	uid := pnet.UserID(r.Context())
	if uid == "" {
		return "", perrs.Unauthorizedf("missing bearer token")
	}
	return uid, nil
}
