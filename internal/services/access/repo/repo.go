// Package repo provides organization and project lookups on postgres
package repo

import (
	"context"

	"servicegeek/internal/modkit/repokit"
	perr "servicegeek/internal/platform/errors"
	"servicegeek/internal/platform/store"
	"servicegeek/internal/services/access/domain"
)

// Repo is the access persistence surface
type Repo interface {
	OrgOfUser(ctx context.Context, userID string) (int64, bool, error)
	ProjectByPublicID(ctx context.Context, publicID string) (id, orgID int64, found bool, err error)
	ProjectOrg(ctx context.Context, projectID int64) (int64, bool, error)
	RoomByPublicID(ctx context.Context, projectID int64, roomPublicID string) (domain.Room, bool, error)
}

type (
	// PG is a Postgres implementation of the access repo
	PG      struct{}
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder for the Postgres implementation
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind attaches a Queryer to the Postgres implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

// found folds store not found into a boolean
func found(err error) (bool, error) {
	if err == nil {
		return true, nil
	}
	if perr.IsCode(err, perr.ErrorCodeNotFound) {
		return false, nil
	}
	return false, perr.FromPostgres(err, "access query")
}

func scanInt64(row store.Row) (int64, error) {
	var v int64
	err := row.Scan(&v)
	return v, err
}

func (r *queries) OrgOfUser(ctx context.Context, userID string) (int64, bool, error) {
	const sql = `
		SELECT organization_id
		FROM users
		WHERE id = $1 AND organization_id IS NOT NULL
	`
	id, err := store.One(ctx, r.q, scanInt64, sql, userID)
	ok, err := found(err)
	return id, ok, err
}

func (r *queries) ProjectByPublicID(ctx context.Context, publicID string) (int64, int64, bool, error) {
	const sql = `
		SELECT id, organization_id
		FROM projects
		WHERE public_id = $1 AND NOT is_deleted
	`
	type pair struct{ id, org int64 }
	p, err := store.One(ctx, r.q, func(row store.Row) (pair, error) {
		var v pair
		err := row.Scan(&v.id, &v.org)
		return v, err
	}, sql, publicID)
	ok, err := found(err)
	return p.id, p.org, ok, err
}

func (r *queries) ProjectOrg(ctx context.Context, projectID int64) (int64, bool, error) {
	const sql = `SELECT organization_id FROM projects WHERE id = $1`
	org, err := store.One(ctx, r.q, scanInt64, sql, projectID)
	ok, err := found(err)
	return org, ok, err
}

func (r *queries) RoomByPublicID(ctx context.Context, projectID int64, roomPublicID string) (domain.Room, bool, error) {
	const sql = `
		SELECT id, public_id, project_id, name
		FROM rooms
		WHERE project_id = $1 AND public_id = $2 AND NOT is_deleted
	`
	room, err := store.One(ctx, r.q, func(row store.Row) (domain.Room, error) {
		var v domain.Room
		err := row.Scan(&v.ID, &v.PublicID, &v.ProjectID, &v.Name)
		return v, err
	}, sql, projectID, roomPublicID)
	ok, err := found(err)
	return room, ok, err
}
