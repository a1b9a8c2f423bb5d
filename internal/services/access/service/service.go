// Package service resolves organization scoped projects and rooms
package service

import (
	"context"
	"strings"

	"servicegeek/internal/modkit/repokit"
	"servicegeek/internal/platform/logger"
	"servicegeek/internal/platform/result"
	"servicegeek/internal/services/access/domain"
	"servicegeek/internal/services/access/repo"
)

// Service is the public service port
type Service interface{ domain.ResolverPort }

// Svc implements the access resolver
type Svc struct {
	Repo repo.Repo
}

// New constructs the service
func New(db repokit.Queryer, binder repokit.Binder[repo.Repo]) *Svc {
	if db == nil {
		panic("access.Service requires a non nil Queryer")
	}
	if binder == nil {
		panic("access.Service requires a non nil Repo binder")
	}
	return &Svc{Repo: binder.Bind(db)}
}

// ResolveOrg returns the organization id of the acting user
func (s *Svc) ResolveOrg(ctx context.Context, userID string) (result.Result[int64], error) {
	if strings.TrimSpace(userID) == "" {
		return result.Fail[int64](result.NoOrg), nil
	}
	org, ok, err := s.Repo.OrgOfUser(ctx, userID)
	if err != nil {
		return result.Result[int64]{}, err
	}
	if !ok {
		return result.Fail[int64](result.NoOrg), nil
	}
	return result.OK(org), nil
}

// ResolveProject validates that the project belongs to the user's organization
func (s *Svc) ResolveProject(ctx context.Context, userID, projectPublicID string) (result.Result[domain.Scope], error) {
	org, err := s.ResolveOrg(ctx, userID)
	if err != nil {
		return result.Result[domain.Scope]{}, err
	}
	if org.Failed() {
		return result.Recast[domain.Scope](org), nil
	}

	id, owner, ok, err := s.Repo.ProjectByPublicID(ctx, projectPublicID)
	if err != nil {
		return result.Result[domain.Scope]{}, err
	}
	if !ok {
		return result.Fail[domain.Scope](result.NoProject), nil
	}
	if owner != org.Value {
		logger.C(ctx).Warn().
			Str("user_id", userID).
			Str("project", projectPublicID).
			Int64("org_id", org.Value).
			Msg("cross organization project access refused")
		return result.Fail[domain.Scope](result.NotPartOfOrg), nil
	}

	return result.OK(domain.Scope{
		UserID:          userID,
		OrgID:           org.Value,
		ProjectID:       id,
		ProjectPublicID: projectPublicID,
	}), nil
}

// ResolveRoom finds a live room inside a scoped project
func (s *Svc) ResolveRoom(ctx context.Context, scope domain.Scope, roomPublicID string) (result.Result[domain.Room], error) {
	if strings.TrimSpace(roomPublicID) == "" {
		return result.Fail[domain.Room](result.NoRoom), nil
	}
	room, ok, err := s.Repo.RoomByPublicID(ctx, scope.ProjectID, roomPublicID)
	if err != nil {
		return result.Result[domain.Room]{}, err
	}
	if !ok {
		return result.Fail[domain.Room](result.NoRoom), nil
	}
	return result.OK(room), nil
}

// ProjectOrg returns the organization that owns projectID
func (s *Svc) ProjectOrg(ctx context.Context, projectID int64) (int64, bool, error) {
	return s.Repo.ProjectOrg(ctx, projectID)
}
