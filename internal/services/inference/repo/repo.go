// Package repo provides postgres persistence for images, inferences and detections
package repo

import (
	"context"
	"time"

	"servicegeek/internal/modkit/repokit"
	perr "servicegeek/internal/platform/errors"
	"servicegeek/internal/platform/store"
	"servicegeek/internal/services/inference/domain"
)

// Repo is the inference persistence surface
type Repo interface {
	ImageByPublicID(ctx context.Context, publicID string) (domain.Image, bool, error)
	ImageByKey(ctx context.Context, key string) (domain.Image, bool, error)
	SetImageRoom(ctx context.Context, imageID, roomID int64) error

	InsertInference(ctx context.Context, in domain.Inference) (domain.Inference, error)
	InferenceByID(ctx context.Context, id int64) (domain.Inference, bool, error)
	ActiveInferenceByImageKey(ctx context.Context, key string) (domain.Inference, bool, error)
	UpdateInferenceRoom(ctx context.Context, inferenceID, roomID int64) error

	MoveDetections(ctx context.Context, inferenceID, fromRoomID, toRoomID int64) (int64, error)
	InsertDetections(ctx context.Context, rows []domain.Detection) (int64, error)

	SoftDeleteRoom(ctx context.Context, roomID int64) (domain.RoomDeleted, error)
}

type (
	// PG is a Postgres implementation of the inference repo
	PG      struct{}
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder for the Postgres implementation
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind attaches a Queryer to the Postgres implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

func found(err error, msg string) (bool, error) {
	if err == nil {
		return true, nil
	}
	if perr.IsCode(err, perr.ErrorCodeNotFound) {
		return false, nil
	}
	return false, perr.FromPostgres(err, msg)
}

const imageCols = `id, public_id, key, project_id, COALESCE(room_id, 0)`

func scanImage(row store.Row) (domain.Image, error) {
	var v domain.Image
	err := row.Scan(&v.ID, &v.PublicID, &v.Key, &v.ProjectID, &v.RoomID)
	return v, err
}

const inferenceCols = `id, public_id, COALESCE(image_key, ''), project_id, COALESCE(room_id, 0),
		COALESCE(source_template_code, ''), created_at`

func scanInference(row store.Row) (domain.Inference, error) {
	var v domain.Inference
	err := row.Scan(&v.ID, &v.PublicID, &v.ImageKey, &v.ProjectID, &v.RoomID, &v.SourceTemplateCode, &v.CreatedAt)
	return v, err
}

func (r *queries) ImageByPublicID(ctx context.Context, publicID string) (domain.Image, bool, error) {
	sql := `SELECT ` + imageCols + ` FROM images WHERE public_id = $1 AND NOT is_deleted`
	img, err := store.One(ctx, r.q, scanImage, sql, publicID)
	ok, err := found(err, "image by public id")
	return img, ok, err
}

func (r *queries) ImageByKey(ctx context.Context, key string) (domain.Image, bool, error) {
	sql := `SELECT ` + imageCols + ` FROM images WHERE key = $1 AND NOT is_deleted`
	img, err := store.One(ctx, r.q, scanImage, sql, key)
	ok, err := found(err, "image by key")
	return img, ok, err
}

func (r *queries) SetImageRoom(ctx context.Context, imageID, roomID int64) error {
	const sql = `UPDATE images SET room_id = $2 WHERE id = $1`
	if _, err := r.q.Exec(ctx, sql, imageID, roomID); err != nil {
		return perr.FromPostgres(err, "set image room")
	}
	return nil
}

func (r *queries) InsertInference(ctx context.Context, in domain.Inference) (domain.Inference, error) {
	const sql = `
		INSERT INTO inferences (public_id, image_key, project_id, room_id, source_template_code)
		VALUES ($1, NULLIF($2, ''), $3, NULLIF($4::bigint, 0), NULLIF($5, ''))
		RETURNING id, created_at
	`
	type ret struct {
		id int64
		at time.Time
	}
	v, err := store.One(ctx, r.q, func(row store.Row) (ret, error) {
		var x ret
		err := row.Scan(&x.id, &x.at)
		return x, err
	}, sql, in.PublicID, in.ImageKey, in.ProjectID, in.RoomID, in.SourceTemplateCode)
	if err != nil {
		return domain.Inference{}, perr.FromPostgres(err, "insert inference")
	}
	in.ID, in.CreatedAt = v.id, v.at
	return in, nil
}

func (r *queries) InferenceByID(ctx context.Context, id int64) (domain.Inference, bool, error) {
	sql := `SELECT ` + inferenceCols + ` FROM inferences WHERE id = $1 AND NOT is_deleted`
	inf, err := store.One(ctx, r.q, scanInference, sql, id)
	ok, err := found(err, "inference by id")
	return inf, ok, err
}

func (r *queries) ActiveInferenceByImageKey(ctx context.Context, key string) (domain.Inference, bool, error) {
	sql := `SELECT ` + inferenceCols + `
		FROM inferences
		WHERE image_key = $1 AND NOT is_deleted
		ORDER BY created_at DESC, id DESC
		LIMIT 1`
	inf, err := store.One(ctx, r.q, scanInference, sql, key)
	ok, err := found(err, "inference by image key")
	return inf, ok, err
}

func (r *queries) UpdateInferenceRoom(ctx context.Context, inferenceID, roomID int64) error {
	const sql = `UPDATE inferences SET room_id = $2 WHERE id = $1 AND NOT is_deleted`
	tag, err := r.q.Exec(ctx, sql, inferenceID, roomID)
	if err != nil {
		return perr.FromPostgres(err, "update inference room")
	}
	if tag.RowsAffected() != 1 {
		return perr.NotFoundf("inference %d not found", inferenceID)
	}
	return nil
}

func (r *queries) MoveDetections(ctx context.Context, inferenceID, fromRoomID, toRoomID int64) (int64, error) {
	const sql = `
		UPDATE detections SET room_id = $3
		WHERE inference_id = $1 AND room_id = $2 AND NOT is_deleted
	`
	tag, err := r.q.Exec(ctx, sql, inferenceID, fromRoomID, toRoomID)
	if err != nil {
		return 0, perr.FromPostgres(err, "move detections")
	}
	return tag.RowsAffected(), nil
}

// InsertDetections writes rows in one statement; rows colliding with a live template item are skipped
func (r *queries) InsertDetections(ctx context.Context, rows []domain.Detection) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	const sql = `
		INSERT INTO detections
			(public_id, inference_id, project_id, room_id, category, code, item, quality, confidence, source_template_code)
		SELECT u.public_id, u.inference_id, u.project_id, u.room_id, u.category, u.code, u.item, u.quality,
			u.confidence, NULLIF(u.source_template_code, '')
		FROM unnest($1::text[], $2::bigint[], $3::bigint[], $4::bigint[], $5::text[], $6::text[], $7::text[],
			$8::text[], $9::float8[], $10::text[])
			AS u(public_id, inference_id, project_id, room_id, category, code, item, quality, confidence, source_template_code)
		ON CONFLICT DO NOTHING
	`
	n := len(rows)
	var (
		pub  = make([]string, n)
		inf  = make([]int64, n)
		proj = make([]int64, n)
		room = make([]int64, n)
		cat  = make([]string, n)
		code = make([]string, n)
		item = make([]string, n)
		qual = make([]string, n)
		conf = make([]float64, n)
		tmpl = make([]string, n)
	)
	for i, d := range rows {
		pub[i], inf[i], proj[i], room[i] = d.PublicID, d.InferenceID, d.ProjectID, d.RoomID
		cat[i], code[i], item[i], qual[i] = d.Category, d.Code, d.Item, d.Quality
		conf[i], tmpl[i] = d.Confidence, d.SourceTemplateCode
	}
	tag, err := r.q.Exec(ctx, sql, pub, inf, proj, room, cat, code, item, qual, conf, tmpl)
	if err != nil {
		return 0, perr.FromPostgres(err, "insert detections")
	}
	return tag.RowsAffected(), nil
}

func (r *queries) SoftDeleteRoom(ctx context.Context, roomID int64) (domain.RoomDeleted, error) {
	var out domain.RoomDeleted
	steps := []struct {
		sql string
		dst *int64
	}{
		{`UPDATE detections SET is_deleted = true WHERE room_id = $1 AND NOT is_deleted`, &out.Detections},
		{`UPDATE inferences SET is_deleted = true WHERE room_id = $1 AND NOT is_deleted`, &out.Inferences},
		{`UPDATE images SET is_deleted = true WHERE room_id = $1 AND NOT is_deleted`, &out.Images},
		{`UPDATE rooms SET is_deleted = true WHERE id = $1 AND NOT is_deleted`, nil},
	}
	for _, st := range steps {
		tag, err := r.q.Exec(ctx, st.sql, roomID)
		if err != nil {
			return domain.RoomDeleted{}, perr.FromPostgres(err, "soft delete room")
		}
		if st.dst != nil {
			*st.dst = tag.RowsAffected()
		}
	}
	return out, nil
}
