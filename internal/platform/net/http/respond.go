// Package http renders handler results into a consistent JSON envelope
package http

import (
	"encoding/json"
	stdhttp "net/http"

	perr "servicegeek/internal/platform/errors"
	pnet "servicegeek/internal/platform/net"
	"servicegeek/internal/platform/result"
)

// Envelope status values
const (
	StatusOK     = pnet.StatusOK
	StatusFailed = pnet.StatusFailed
)

// Envelope is the body of every API response
// successes carry data; failures carry either a reason or an error code
type Envelope struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Reason     result.Reason  `json:"reason,omitempty"`
	Code       perr.ErrorCode `json:"code,omitempty"`
	Error      string         `json:"error,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
	Data       any            `json:"data,omitempty"`
}

// ReasonStatus maps an expected failure reason onto an HTTP status
func ReasonStatus(r result.Reason) int {
	switch r {
	case result.NoOrg, result.NotPartOfOrg:
		return stdhttp.StatusForbidden
	case result.NoProject, result.NoRoom, result.NoRoomOrInference, result.NoImage, result.NoInference:
		return stdhttp.StatusNotFound
	case result.NoTemplate, result.InvalidInput:
		return stdhttp.StatusBadRequest
	default:
		return stdhttp.StatusUnprocessableEntity
	}
}

// JSON writes v as application/json with the given status
func JSON(w stdhttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Response is what return-style handlers hand back to Handle
type Response struct {
	Status int
	Body   any
	// Reason is set for expected failures; Body is ignored then
	Reason result.Reason
	// Inline lifts the fields of an object Body next to status on success
	Inline bool
}

// Handle adapts a Response-returning handler to net/http
func Handle(h func(r *stdhttp.Request) Response) stdhttp.HandlerFunc {
	return func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		resp := h(r)
		status, env := resp.envelope(pnet.RequestID(r.Context()))
		if resp.Inline && env.Status == StatusOK {
			JSON(w, status, inline(env))
			return
		}
		JSON(w, status, env)
	}
}

// inline merges the payload's top level fields with the envelope's
// envelope keys win on collision; a payload that is not an object stays under data
func inline(env Envelope) any {
	raw, err := json.Marshal(env.Data)
	if err != nil {
		return env
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return env
	}
	env.Data = nil
	head, err := json.Marshal(env)
	if err != nil {
		return env
	}
	if err := json.Unmarshal(head, &fields); err != nil {
		return env
	}
	return fields
}

func (resp Response) envelope(reqID string) (int, Envelope) {
	if resp.Reason != "" {
		status := ReasonStatus(resp.Reason)
		return status, Envelope{StatusCode: status, Status: StatusFailed, Reason: resp.Reason, RequestID: reqID}
	}
	if err, ok := resp.Body.(error); ok && err != nil {
		status := perr.HTTPStatus(err)
		wr := perr.WireFrom(err)
		return status, Envelope{
			StatusCode: status,
			Status:     StatusFailed,
			Code:       wr.Code,
			Error:      wr.Message,
			RequestID:  reqID,
		}
	}
	status := resp.Status
	if status == 0 {
		status = stdhttp.StatusOK
	}
	return status, Envelope{StatusCode: status, Status: StatusOK, RequestID: reqID, Data: resp.Body}
}

// OK returns a 200 response
func OK(data any) Response { return Response{Status: stdhttp.StatusOK, Body: data} }

// Error returns a response that maps the error to status and envelope
func Error(err error) Response { return Response{Body: err} }

// Failed returns a response for an expected failure
func Failed(reason result.Reason) Response { return Response{Reason: reason} }

// From renders a Result and its companion error: infra errors win, then
// failures, then the value with status ok
func From[T any](res result.Result[T], err error, ok int) Response {
	switch {
	case err != nil:
		return Error(err)
	case res.Failed():
		return Failed(res.Reason)
	default:
		return Response{Status: ok, Body: res.Value}
	}
}

// FromInline is From with the success payload rendered next to status instead of under data
func FromInline[T any](res result.Result[T], err error, ok int) Response {
	resp := From(res, err, ok)
	resp.Inline = true
	return resp
}
