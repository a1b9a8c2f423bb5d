package net

import (
	perr "servicegeek/internal/platform/errors"
)

// Wire status values, shared with the http envelope
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

// Wire is the failure body written by middleware that runs before any handler
type Wire struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code,omitempty"`
	Error      string         `json:"error,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
}

// Error builds a failure envelope for err
func Error(err error, reqID string) (int, Wire) {
	status := perr.HTTPStatus(err)
	w := perr.WireFrom(err)
	return status, Wire{
		StatusCode: status,
		Status:     StatusFailed,
		Code:       w.Code,
		Error:      w.Message,
		RequestID:  reqID,
	}
}
