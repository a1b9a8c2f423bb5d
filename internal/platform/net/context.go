// Package net holds request scoped identity shared by transports
package net

import (
	"context"

	"servicegeek/internal/platform/logger"

	chimw "github.com/go-chi/chi/v5/middleware"
)

type ctxKey string

const (
	keyOrgID  ctxKey = "org_id"
	keyUserID ctxKey = "user_id"
)

// WithRequest stores the request id and the caller's org on ctx
// both also reach the request scoped logger
func WithRequest(ctx context.Context, reqID, orgID string) context.Context {
	if reqID != "" {
		ctx = context.WithValue(ctx, chimw.RequestIDKey, reqID)
	}
	if orgID != "" {
		ctx = context.WithValue(ctx, keyOrgID, orgID)
	}
	return logger.WithRequest(ctx, reqID, orgID)
}

// WithUser annotates context with the authenticated user id
func WithUser(ctx context.Context, userID string) context.Context {
	if userID != "" {
		ctx = context.WithValue(ctx, keyUserID, userID)
	}
	return ctx
}

// RequestID returns the request id on the context if present
func RequestID(ctx context.Context) string { return chimw.GetReqID(ctx) }

// OrgID returns the org claim on the context if present
func OrgID(ctx context.Context) string {
	v, _ := ctx.Value(keyOrgID).(string)
	return v
}

// UserID returns the user id on the context if present
func UserID(ctx context.Context) string {
	v, _ := ctx.Value(keyUserID).(string)
	return v
}
