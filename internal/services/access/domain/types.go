// Package domain holds the organization scoping types shared by project bound services
package domain

import (
	"context"

	"servicegeek/internal/platform/result"
)

// Scope is a project validated to belong to the acting user's organization
type Scope struct {
	UserID          string
	OrgID           int64
	ProjectID       int64
	ProjectPublicID string
}

// Room is a live room inside a scoped project
type Room struct {
	ID        int64
	PublicID  string
	ProjectID int64
	Name      string
}

// ResolverPort is the single place cross tenant checks happen
type ResolverPort interface {
	// ResolveOrg fails with no-org when the user has no organization
	ResolveOrg(ctx context.Context, userID string) (result.Result[int64], error)

	// ResolveProject fails with no-org, no-project or not-part-of-org
	ResolveProject(ctx context.Context, userID, projectPublicID string) (result.Result[Scope], error)

	// ResolveRoom fails with no-room when the room is missing or deleted
	ResolveRoom(ctx context.Context, scope Scope, roomPublicID string) (result.Result[Room], error)

	// ProjectOrg returns the organization that owns a project id
	ProjectOrg(ctx context.Context, projectID int64) (int64, bool, error)
}
