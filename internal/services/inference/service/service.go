// Package service implements the inference record store
package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"servicegeek/internal/modkit/repokit"
	"servicegeek/internal/platform/logger"
	"servicegeek/internal/platform/result"
	access "servicegeek/internal/services/access/domain"
	dispatch "servicegeek/internal/services/dispatch/domain"
	"servicegeek/internal/services/inference/domain"
	"servicegeek/internal/services/inference/repo"
	media "servicegeek/internal/services/media/domain"
)

// Service is the public service port
type Service interface{ domain.ServicePort }

// Options holds the collaborating ports
type Options struct {
	Access   access.ResolverPort
	Dispatch dispatch.DispatchPort

	// Media presigns the preview of a linked image; optional
	Media media.ResolverPort

	// NewID mints public ids, uuid.NewString when nil
	NewID func() string
}

// Svc implements the inference store
type Svc struct {
	DB     repokit.TxRunner
	Binder repokit.Binder[repo.Repo]
	opt    Options
	log    logger.Logger
}

// New constructs the service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], opt Options) *Svc {
	if db == nil {
		panic("inference.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("inference.Service requires a non nil Repo binder")
	}
	if opt.Access == nil {
		panic("inference.Service requires an access resolver")
	}
	if opt.Dispatch == nil {
		panic("inference.Service requires a dispatcher")
	}
	if opt.NewID == nil {
		opt.NewID = uuid.NewString
	}
	return &Svc{DB: db, Binder: binder, opt: opt, log: *logger.Named("inference")}
}

func (s *Svc) repo() repo.Repo { return s.Binder.Bind(s.DB) }

// CreateInference inserts an inference for the image; callers check uniqueness
func (s *Svc) CreateInference(ctx context.Context, imagePublicID string, roomID int64) (*domain.Inference, error) {
	r := s.repo()
	img, ok, err := r.ImageByPublicID(ctx, imagePublicID)
	if err != nil || !ok {
		return nil, err
	}
	inf, err := s.insertFor(ctx, r, img, roomID)
	if err != nil {
		return nil, err
	}
	return &inf, nil
}

func (s *Svc) insertFor(ctx context.Context, r repo.Repo, img domain.Image, roomID int64) (domain.Inference, error) {
	return r.InsertInference(ctx, domain.Inference{
		PublicID:  s.opt.NewID(),
		ImageKey:  img.Key,
		ProjectID: img.ProjectID,
		RoomID:    roomID,
	})
}

// ReassignRoom moves the image's active inference and its detections to another room
func (s *Svc) ReassignRoom(ctx context.Context, imageKey, newRoomPublicID, actingUserID string) (result.Result[domain.Reassigned], error) {
	type R = result.Result[domain.Reassigned]

	org, err := s.opt.Access.ResolveOrg(ctx, actingUserID)
	if err != nil {
		return R{}, err
	}
	if org.Failed() {
		return result.Recast[domain.Reassigned](org), nil
	}

	r := s.repo()
	img, ok, err := r.ImageByKey(ctx, strings.TrimSpace(imageKey))
	if err != nil {
		return R{}, err
	}
	if !ok {
		return result.Fail[domain.Reassigned](result.NoImage), nil
	}

	scope := access.Scope{UserID: actingUserID, OrgID: org.Value, ProjectID: img.ProjectID}
	room, err := s.opt.Access.ResolveRoom(ctx, scope, newRoomPublicID)
	if err != nil {
		return R{}, err
	}
	inf, found, err := r.ActiveInferenceByImageKey(ctx, img.Key)
	if err != nil {
		return R{}, err
	}
	if room.Failed() || !found {
		return result.Fail[domain.Reassigned](result.NoRoomOrInference), nil
	}

	owner, ok, err := s.opt.Access.ProjectOrg(ctx, img.ProjectID)
	if err != nil {
		return R{}, err
	}
	if !ok || owner != org.Value {
		s.log.Warn().
			Str("user_id", actingUserID).
			Str("image_key", img.Key).
			Msg("cross organization reassignment refused")
		return result.Fail[domain.Reassigned](result.NotPartOfOrg), nil
	}

	var moved int64
	err = s.DB.Tx(ctx, func(q repokit.Queryer) error {
		tr := s.Binder.Bind(q)
		if err := tr.UpdateInferenceRoom(ctx, inf.ID, room.Value.ID); err != nil {
			return err
		}
		n, err := tr.MoveDetections(ctx, inf.ID, inf.RoomID, room.Value.ID)
		if err != nil {
			return err
		}
		moved = n
		return tr.SetImageRoom(ctx, img.ID, room.Value.ID)
	})
	if err != nil {
		return R{}, err
	}

	s.log.Info().
		Int64("inference_id", inf.ID).
		Int64("from_room", inf.RoomID).
		Int64("to_room", room.Value.ID).
		Int64("moved", moved).
		Msg("image reassigned")

	return result.OK(domain.Reassigned{
		InferenceID:     inf.PublicID,
		ImageKey:        img.Key,
		RoomID:          room.Value.PublicID,
		MovedDetections: moved,
	}), nil
}

// ReassignInProject resolves the project first and refuses images that live in another project
func (s *Svc) ReassignInProject(ctx context.Context, userID, projectPublicID, imageKey, roomPublicID string) (result.Result[domain.Reassigned], error) {
	type R = result.Result[domain.Reassigned]

	scope, err := s.opt.Access.ResolveProject(ctx, userID, projectPublicID)
	if err != nil {
		return R{}, err
	}
	if scope.Failed() {
		return result.Recast[domain.Reassigned](scope), nil
	}
	img, ok, err := s.repo().ImageByKey(ctx, strings.TrimSpace(imageKey))
	if err != nil {
		return R{}, err
	}
	if !ok || img.ProjectID != scope.Value.ProjectID {
		return result.Fail[domain.Reassigned](result.NoImage), nil
	}
	return s.ReassignRoom(ctx, img.Key, roomPublicID, userID)
}

// LinkImage attaches an uploaded image to a room and schedules its classification
// An image with an active inference is returned as is and not queued again
func (s *Svc) LinkImage(ctx context.Context, userID, projectPublicID, imagePublicID, roomPublicID string) (result.Result[domain.Linked], error) {
	type R = result.Result[domain.Linked]

	scope, err := s.opt.Access.ResolveProject(ctx, userID, projectPublicID)
	if err != nil {
		return R{}, err
	}
	if scope.Failed() {
		return result.Recast[domain.Linked](scope), nil
	}
	room, err := s.opt.Access.ResolveRoom(ctx, scope.Value, roomPublicID)
	if err != nil {
		return R{}, err
	}
	if room.Failed() {
		return result.Recast[domain.Linked](room), nil
	}

	r := s.repo()
	img, ok, err := r.ImageByPublicID(ctx, imagePublicID)
	if err != nil {
		return R{}, err
	}
	if !ok || img.ProjectID != scope.Value.ProjectID {
		return result.Fail[domain.Linked](result.NoImage), nil
	}

	out := domain.Linked{ImageKey: img.Key, ImagePublicID: img.PublicID}

	existing, ok, err := r.ActiveInferenceByImageKey(ctx, img.Key)
	if err != nil {
		return R{}, err
	}
	if ok {
		out.InferenceID = existing.PublicID
		out.CreatedAt = existing.CreatedAt
		out.Existing = true
		if existing.RoomID == room.Value.ID {
			out.RoomID, out.RoomName = room.Value.PublicID, room.Value.Name
		}
		out.SignedURL = s.preview(ctx, img.Key)
		return result.OK(out), nil
	}

	var inf domain.Inference
	err = s.DB.Tx(ctx, func(q repokit.Queryer) error {
		tr := s.Binder.Bind(q)
		var err error
		if inf, err = s.insertFor(ctx, tr, img, room.Value.ID); err != nil {
			return err
		}
		return tr.SetImageRoom(ctx, img.ID, room.Value.ID)
	})
	if err != nil {
		return R{}, err
	}

	out.InferenceID = inf.PublicID
	out.CreatedAt = inf.CreatedAt
	out.RoomID, out.RoomName = room.Value.PublicID, room.Value.Name

	// the record is committed; a failed hand off is retried through the retry endpoint
	if err := s.opt.Dispatch.Enqueue(ctx, inf.ID); err != nil {
		s.log.Error().Err(err).Int64("inference_id", inf.ID).Msg("enqueue after link failed")
	} else {
		out.Queued = true
	}
	out.SignedURL = s.preview(ctx, img.Key)
	return result.OK(out), nil
}

func (s *Svc) preview(ctx context.Context, key string) string {
	if s.opt.Media == nil {
		return ""
	}
	urls, err := s.opt.Media.Resolve(ctx, []string{key})
	if err != nil {
		s.log.Warn().Err(err).Str("key", key).Msg("preview signing failed")
		return ""
	}
	return urls[key]
}

// RecordDetections writes classifier output into the inference's room
func (s *Svc) RecordDetections(ctx context.Context, inferenceID int64, in []domain.DetectionInput) (result.Result[domain.Recorded], error) {
	type R = result.Result[domain.Recorded]
	if len(in) == 0 {
		return result.Fail[domain.Recorded](result.InvalidInput), nil
	}

	res := result.Fail[domain.Recorded](result.NoInference)
	err := s.DB.Tx(ctx, func(q repokit.Queryer) error {
		tr := s.Binder.Bind(q)
		inf, ok, err := tr.InferenceByID(ctx, inferenceID)
		if err != nil || !ok {
			return err
		}
		if inf.RoomID == 0 {
			res = result.Fail[domain.Recorded](result.NoRoom)
			return nil
		}
		rows := make([]domain.Detection, 0, len(in))
		for _, d := range in {
			rows = append(rows, domain.Detection{
				PublicID:    s.opt.NewID(),
				InferenceID: inf.ID,
				ProjectID:   inf.ProjectID,
				RoomID:      inf.RoomID,
				Category:    strings.TrimSpace(d.Category),
				Code:        strings.TrimSpace(d.Code),
				Item:        d.Item,
				Quality:     d.Quality,
				Confidence:  d.Confidence,
			})
		}
		n, err := tr.InsertDetections(ctx, rows)
		if err != nil {
			return err
		}
		res = result.OK(domain.Recorded{InferenceID: inf.PublicID, Inserted: n})
		return nil
	})
	if err != nil {
		return R{}, err
	}
	return res, nil
}

// Retry republishes an inference with the flat retry delay
func (s *Svc) Retry(ctx context.Context, inferenceID int64) (result.Result[domain.Requeued], error) {
	type R = result.Result[domain.Requeued]

	inf, ok, err := s.repo().InferenceByID(ctx, inferenceID)
	if err != nil {
		return R{}, err
	}
	if !ok {
		return result.Fail[domain.Requeued](result.NoInference), nil
	}
	if err := s.opt.Dispatch.Requeue(ctx, inf.ID); err != nil {
		return R{}, err
	}
	return result.OK(domain.Requeued{InferenceID: inf.PublicID}), nil
}

// DeleteRoom soft deletes a room and everything recorded in it
func (s *Svc) DeleteRoom(ctx context.Context, userID, projectPublicID, roomPublicID string) (result.Result[domain.RoomDeleted], error) {
	type R = result.Result[domain.RoomDeleted]

	scope, err := s.opt.Access.ResolveProject(ctx, userID, projectPublicID)
	if err != nil {
		return R{}, err
	}
	if scope.Failed() {
		return result.Recast[domain.RoomDeleted](scope), nil
	}
	room, err := s.opt.Access.ResolveRoom(ctx, scope.Value, roomPublicID)
	if err != nil {
		return R{}, err
	}
	if room.Failed() {
		return result.Recast[domain.RoomDeleted](room), nil
	}

	var out domain.RoomDeleted
	err = s.DB.Tx(ctx, func(q repokit.Queryer) error {
		var err error
		out, err = s.Binder.Bind(q).SoftDeleteRoom(ctx, room.Value.ID)
		return err
	})
	if err != nil {
		return R{}, err
	}
	out.RoomID = room.Value.PublicID

	s.log.Info().
		Int64("room_id", room.Value.ID).
		Int64("images", out.Images).
		Int64("inferences", out.Inferences).
		Int64("detections", out.Detections).
		Msg("room deleted")
	return result.OK(out), nil
}
