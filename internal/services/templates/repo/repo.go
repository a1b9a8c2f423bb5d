// Package repo provides postgres persistence for template application
package repo

import (
	"context"

	"servicegeek/internal/modkit/repokit"
	perr "servicegeek/internal/platform/errors"
	"servicegeek/internal/platform/store"
	"servicegeek/internal/services/templates/domain"
)

// TemplateInference identifies the inference that governs a template in a room
type TemplateInference struct {
	ID       int64
	PublicID string
}

// NewDetection is a template item about to be written
type NewDetection struct {
	PublicID    string
	Category    string
	Selection   string
	Description string
}

// Repo is the templates persistence surface
type Repo interface {
	// EnsureInference returns the live template inference for the room, creating it with publicID when absent
	EnsureInference(ctx context.Context, projectID, roomID int64, code, publicID string) (TemplateInference, error)
	Detections(ctx context.Context, roomID int64, code string) ([]domain.Detection, error)
	InsertDetections(ctx context.Context, inf TemplateInference, projectID, roomID int64, code string, rows []NewDetection) (int64, error)
	MarkUsed(ctx context.Context, roomID int64, code string) error

	UsedCodes(ctx context.Context, roomID int64) (map[string]bool, error)
	RoomCategories(ctx context.Context, roomID int64) ([]string, error)
}

type (
	// PG is a Postgres implementation of the templates repo
	PG      struct{}
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder for the Postgres implementation
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind attaches a Queryer to the Postgres implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

func (r *queries) EnsureInference(ctx context.Context, projectID, roomID int64, code, publicID string) (TemplateInference, error) {
	// the no-op update makes RETURNING yield the surviving row on conflict
	const sql = `
		INSERT INTO inferences (public_id, project_id, room_id, source_template_code)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (room_id, source_template_code) WHERE NOT is_deleted AND source_template_code IS NOT NULL
		DO UPDATE SET source_template_code = EXCLUDED.source_template_code
		RETURNING id, public_id
	`
	inf, err := store.One(ctx, r.q, func(row store.Row) (TemplateInference, error) {
		var v TemplateInference
		err := row.Scan(&v.ID, &v.PublicID)
		return v, err
	}, sql, publicID, projectID, roomID, code)
	if err != nil {
		return TemplateInference{}, perr.FromPostgres(err, "ensure template inference")
	}
	return inf, nil
}

func (r *queries) Detections(ctx context.Context, roomID int64, code string) ([]domain.Detection, error) {
	const sql = `
		SELECT public_id, category, code, item, source_template_code
		FROM detections
		WHERE room_id = $1 AND source_template_code = $2 AND NOT is_deleted
		ORDER BY id
	`
	out, err := store.Many(ctx, r.q, func(row store.Row) (domain.Detection, error) {
		var d domain.Detection
		err := row.Scan(&d.PublicID, &d.Category, &d.Selection, &d.Description, &d.SourceTemplateCode)
		return d, err
	}, sql, roomID, code)
	if err != nil {
		return nil, perr.FromPostgres(err, "template detections")
	}
	return out, nil
}

func (r *queries) InsertDetections(ctx context.Context, inf TemplateInference, projectID, roomID int64, code string, rows []NewDetection) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	const sql = `
		INSERT INTO detections (public_id, inference_id, project_id, room_id, category, code, item, confidence, source_template_code)
		SELECT u.public_id, $1, $2, $3, u.category, u.code, u.item, 1, $4
		FROM unnest($5::text[], $6::text[], $7::text[], $8::text[]) AS u(public_id, category, code, item)
		ON CONFLICT DO NOTHING
	`
	var (
		pub  = make([]string, len(rows))
		cat  = make([]string, len(rows))
		sel  = make([]string, len(rows))
		desc = make([]string, len(rows))
	)
	for i, d := range rows {
		pub[i], cat[i], sel[i], desc[i] = d.PublicID, d.Category, d.Selection, d.Description
	}
	tag, err := r.q.Exec(ctx, sql, inf.ID, projectID, roomID, code, pub, cat, sel, desc)
	if err != nil {
		return 0, perr.FromPostgres(err, "insert template detections")
	}
	return tag.RowsAffected(), nil
}

func (r *queries) MarkUsed(ctx context.Context, roomID int64, code string) error {
	const sql = `INSERT INTO templates_used (room_id, template_code) VALUES ($1, $2) ON CONFLICT DO NOTHING`
	if _, err := r.q.Exec(ctx, sql, roomID, code); err != nil {
		return perr.FromPostgres(err, "mark template used")
	}
	return nil
}

func (r *queries) UsedCodes(ctx context.Context, roomID int64) (map[string]bool, error) {
	const sql = `SELECT template_code FROM templates_used WHERE room_id = $1`
	codes, err := store.Many(ctx, r.q, scanString, sql, roomID)
	if err != nil {
		return nil, perr.FromPostgres(err, "used templates")
	}
	out := make(map[string]bool, len(codes))
	for _, c := range codes {
		out[c] = true
	}
	return out, nil
}

func (r *queries) RoomCategories(ctx context.Context, roomID int64) ([]string, error) {
	const sql = `
		SELECT DISTINCT category FROM detections
		WHERE room_id = $1 AND NOT is_deleted
		ORDER BY category
	`
	out, err := store.Many(ctx, r.q, scanString, sql, roomID)
	if err != nil {
		return nil, perr.FromPostgres(err, "room categories")
	}
	return out, nil
}

func scanString(row store.Row) (string, error) {
	var s string
	err := row.Scan(&s)
	return s, err
}
