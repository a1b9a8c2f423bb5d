package middleware

import (
	"net/http"

	pnet "servicegeek/internal/platform/net"
)

// AuthPort resolves the caller of a request
// user routes get the jwt subject and org; worker routes get a fixed principal
type AuthPort interface {
	Parse(r *http.Request) (userID string, orgID string, err error)
}

// Auth rejects requests p cannot resolve and stores the principal on the context
// a nil port lets every request through
func Auth(p AuthPort, write func(w http.ResponseWriter, status int, body any)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if p == nil {
				next.ServeHTTP(w, r)
				return
			}
			uid, tid, err := p.Parse(r)
			if err != nil {
				status, body := pnet.Error(err, pnet.RequestID(r.Context()))
				write(w, status, body)
				return
			}
			ctx := pnet.WithUser(r.Context(), uid)
			ctx = pnet.WithRequest(ctx, pnet.RequestID(ctx), tid)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
