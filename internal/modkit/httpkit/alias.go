// Package httpkit provides handler and routing helpers that alias the platform http package
// use these from modules so they do not import internal/platform/net/http directly
package httpkit

import (
	"net/http"

	phttp "servicegeek/internal/platform/net/http"
	"servicegeek/internal/platform/result"
)

type (
	// Response is the HTTP response type
	Response = phttp.Response

	// Handler is the platform handler type
	Handler = phttp.Handler

	// Router is a re-export of the platform router seam
	Router = phttp.Router
)

// Failed returns a response for an expected failure reason
func Failed(reason result.Reason) Response { return phttp.Failed(reason) }

// From renders a Result with its companion error, using status ok on success
func From[T any](res result.Result[T], err error, ok int) Response {
	return phttp.From(res, err, ok)
}

// Param returns a named path parameter
func Param(r *http.Request, key string) string { return phttp.URLParam(r, key) }

// FromInline renders a Result like From but puts the value's fields next to status
func FromInline[T any](res result.Result[T], err error, ok int) Response {
	return phttp.FromInline(res, err, ok)
}
