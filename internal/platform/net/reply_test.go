package net_test

import (
	"net/http"
	"testing"

	perr "servicegeek/internal/platform/errors"
	pnet "servicegeek/internal/platform/net"
)

func TestError_UnauthorizedToken(t *testing.T) {
	status, w := pnet.Error(perr.Unauthorizedf("invalid bearer token"), "req-9")

	if status != http.StatusUnauthorized || w.StatusCode != status {
		t.Fatalf("status %d wire %d", status, w.StatusCode)
	}
	if w.Status != pnet.StatusFailed || w.Code != perr.ErrorCodeUnauthorized {
		t.Fatalf("wire = %+v", w)
	}
	if w.Error != "invalid bearer token" || w.RequestID != "req-9" {
		t.Fatalf("wire = %+v", w)
	}
}
