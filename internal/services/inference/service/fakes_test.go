package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"servicegeek/internal/modkit/repokit"
	"servicegeek/internal/platform/result"
	"servicegeek/internal/platform/store"
	access "servicegeek/internal/services/access/domain"
	"servicegeek/internal/services/inference/domain"
	"servicegeek/internal/services/inference/repo"
)

var errBoom = errors.New("boom")

// memRepo is an in memory inference repo
type memRepo struct {
	images     []domain.Image
	inferences []domain.Inference
	detections []domain.Detection
	deleted    map[string]bool

	nextID int64
	// failOn makes the named method return errBoom
	failOn string
}

func (m *memRepo) clone() *memRepo {
	c := *m
	c.images = append([]domain.Image(nil), m.images...)
	c.inferences = append([]domain.Inference(nil), m.inferences...)
	c.detections = append([]domain.Detection(nil), m.detections...)
	c.deleted = map[string]bool{}
	for k, v := range m.deleted {
		c.deleted[k] = v
	}
	return &c
}

func (m *memRepo) fail(name string) error {
	if m.failOn == name {
		return errBoom
	}
	return nil
}

func key(kind string, id int64) string { return fmt.Sprintf("%s:%d", kind, id) }

func (m *memRepo) ImageByPublicID(_ context.Context, publicID string) (domain.Image, bool, error) {
	for _, img := range m.images {
		if img.PublicID == publicID && !m.deleted[key("img", img.ID)] {
			return img, true, nil
		}
	}
	return domain.Image{}, false, nil
}

func (m *memRepo) ImageByKey(_ context.Context, k string) (domain.Image, bool, error) {
	for _, img := range m.images {
		if img.Key == k && !m.deleted[key("img", img.ID)] {
			return img, true, nil
		}
	}
	return domain.Image{}, false, nil
}

func (m *memRepo) SetImageRoom(_ context.Context, imageID, roomID int64) error {
	if err := m.fail("SetImageRoom"); err != nil {
		return err
	}
	for i := range m.images {
		if m.images[i].ID == imageID {
			m.images[i].RoomID = roomID
		}
	}
	return nil
}

func (m *memRepo) InsertInference(_ context.Context, in domain.Inference) (domain.Inference, error) {
	if err := m.fail("InsertInference"); err != nil {
		return domain.Inference{}, err
	}
	m.nextID++
	in.ID = m.nextID
	in.CreatedAt = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(in.ID) * time.Second)
	m.inferences = append(m.inferences, in)
	return in, nil
}

func (m *memRepo) InferenceByID(_ context.Context, id int64) (domain.Inference, bool, error) {
	if err := m.fail("InferenceByID"); err != nil {
		return domain.Inference{}, false, err
	}
	for _, inf := range m.inferences {
		if inf.ID == id && !m.deleted[key("inf", inf.ID)] {
			return inf, true, nil
		}
	}
	return domain.Inference{}, false, nil
}

func (m *memRepo) ActiveInferenceByImageKey(_ context.Context, k string) (domain.Inference, bool, error) {
	var (
		best domain.Inference
		ok   bool
	)
	for _, inf := range m.inferences {
		if inf.ImageKey == k && !m.deleted[key("inf", inf.ID)] {
			best, ok = inf, true
		}
	}
	return best, ok, nil
}

func (m *memRepo) UpdateInferenceRoom(_ context.Context, inferenceID, roomID int64) error {
	if err := m.fail("UpdateInferenceRoom"); err != nil {
		return err
	}
	for i := range m.inferences {
		if m.inferences[i].ID == inferenceID {
			m.inferences[i].RoomID = roomID
		}
	}
	return nil
}

func (m *memRepo) MoveDetections(_ context.Context, inferenceID, from, to int64) (int64, error) {
	if err := m.fail("MoveDetections"); err != nil {
		return 0, err
	}
	var n int64
	for i := range m.detections {
		d := &m.detections[i]
		if d.InferenceID == inferenceID && d.RoomID == from && !m.deleted[key("det", d.ID)] {
			d.RoomID = to
			n++
		}
	}
	return n, nil
}

func (m *memRepo) InsertDetections(_ context.Context, rows []domain.Detection) (int64, error) {
	if err := m.fail("InsertDetections"); err != nil {
		return 0, err
	}
	for _, d := range rows {
		m.nextID++
		d.ID = m.nextID
		m.detections = append(m.detections, d)
	}
	return int64(len(rows)), nil
}

func (m *memRepo) SoftDeleteRoom(_ context.Context, roomID int64) (domain.RoomDeleted, error) {
	var out domain.RoomDeleted
	for _, d := range m.detections {
		if d.RoomID == roomID && !m.deleted[key("det", d.ID)] {
			m.deleted[key("det", d.ID)] = true
			out.Detections++
		}
	}
	for _, inf := range m.inferences {
		if inf.RoomID == roomID && !m.deleted[key("inf", inf.ID)] {
			m.deleted[key("inf", inf.ID)] = true
			out.Inferences++
		}
	}
	if err := m.fail("SoftDeleteRoom"); err != nil {
		return domain.RoomDeleted{}, err
	}
	for _, img := range m.images {
		if img.RoomID == roomID && !m.deleted[key("img", img.ID)] {
			m.deleted[key("img", img.ID)] = true
			out.Images++
		}
	}
	return out, nil
}

var _ repo.Repo = (*memRepo)(nil)

// memTx runs fn against the repo and restores a snapshot when fn fails
type memTx struct {
	store.RowQuerier
	repo  *memRepo
	calls int
}

func (t *memTx) Tx(_ context.Context, fn func(q store.RowQuerier) error) error {
	t.calls++
	snap := t.repo.clone()
	if err := fn(t); err != nil {
		*t.repo = *snap
		return err
	}
	return nil
}

func binderFor(m *memRepo) repokit.Binder[repo.Repo] {
	return repokit.BindFunc[repo.Repo](func(repokit.Queryer) repo.Repo { return m })
}

type fakeAccess struct {
	orgs     map[string]int64
	projects map[string]access.Scope
	rooms    map[string]access.Room
	err      error
}

func (f *fakeAccess) ResolveOrg(_ context.Context, userID string) (result.Result[int64], error) {
	if f.err != nil {
		return result.Result[int64]{}, f.err
	}
	org, ok := f.orgs[userID]
	if !ok {
		return result.Fail[int64](result.NoOrg), nil
	}
	return result.OK(org), nil
}

func (f *fakeAccess) ResolveProject(ctx context.Context, userID, projectPublicID string) (result.Result[access.Scope], error) {
	org, err := f.ResolveOrg(ctx, userID)
	if err != nil {
		return result.Result[access.Scope]{}, err
	}
	if org.Failed() {
		return result.Recast[access.Scope](org), nil
	}
	p, ok := f.projects[projectPublicID]
	if !ok {
		return result.Fail[access.Scope](result.NoProject), nil
	}
	if p.OrgID != org.Value {
		return result.Fail[access.Scope](result.NotPartOfOrg), nil
	}
	p.UserID = userID
	return result.OK(p), nil
}

func (f *fakeAccess) ResolveRoom(_ context.Context, scope access.Scope, roomPublicID string) (result.Result[access.Room], error) {
	r, ok := f.rooms[roomPublicID]
	if !ok || r.ProjectID != scope.ProjectID {
		return result.Fail[access.Room](result.NoRoom), nil
	}
	return result.OK(r), nil
}

func (f *fakeAccess) ProjectOrg(_ context.Context, projectID int64) (int64, bool, error) {
	for _, p := range f.projects {
		if p.ProjectID == projectID {
			return p.OrgID, true, nil
		}
	}
	return 0, false, nil
}

type fakeDispatch struct {
	enqueued []int64
	requeued []int64
	err      error
}

func (f *fakeDispatch) NextEligibleSlot(now time.Time) time.Time { return now }

func (f *fakeDispatch) Enqueue(_ context.Context, id int64) error {
	if f.err != nil {
		return f.err
	}
	f.enqueued = append(f.enqueued, id)
	return nil
}

func (f *fakeDispatch) Requeue(_ context.Context, id int64) error {
	if f.err != nil {
		return f.err
	}
	f.requeued = append(f.requeued, id)
	return nil
}

type fakeMedia struct{ err error }

func (f fakeMedia) Resolve(_ context.Context, keys []string) (map[string]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := map[string]string{}
	for _, k := range keys {
		out[k] = "https://signed/" + k
	}
	return out, nil
}

func (f fakeMedia) ResolveAvatar(_ context.Context, k string) (string, error) {
	return "https://avatar/" + k, f.err
}
