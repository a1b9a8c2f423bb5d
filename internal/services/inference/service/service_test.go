package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"servicegeek/internal/platform/result"
	"servicegeek/internal/platform/testkit"
	access "servicegeek/internal/services/access/domain"
	"servicegeek/internal/services/inference/domain"
)

type fixture struct {
	svc  *Svc
	repo *memRepo
	tx   *memTx
	disp *fakeDispatch
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	m := &memRepo{
		images: []domain.Image{
			{ID: 1, PublicID: "img1", Key: "p1/a.jpg", ProjectID: 10, RoomID: 100},
			{ID: 2, PublicID: "img2", Key: "p1/b.jpg", ProjectID: 10},
			{ID: 3, PublicID: "img9", Key: "p2/c.jpg", ProjectID: 20, RoomID: 200},
		},
		inferences: []domain.Inference{
			{ID: 50, PublicID: "inf-a", ImageKey: "p1/a.jpg", ProjectID: 10, RoomID: 100},
			{ID: 60, PublicID: "inf-c", ImageKey: "p2/c.jpg", ProjectID: 20, RoomID: 200},
		},
		detections: []domain.Detection{
			{ID: 70, InferenceID: 50, ProjectID: 10, RoomID: 100, Category: "PNT", Code: "P1"},
			{ID: 71, InferenceID: 50, ProjectID: 10, RoomID: 100, Category: "PNT", Code: "P2"},
			{ID: 72, InferenceID: 99, ProjectID: 10, RoomID: 100, Category: "FLR", Code: "F1"},
		},
		deleted: map[string]bool{},
		nextID:  1000,
	}
	acc := &fakeAccess{
		orgs: map[string]int64{"u1": 1, "u2": 2},
		projects: map[string]access.Scope{
			"p1": {OrgID: 1, ProjectID: 10, ProjectPublicID: "p1"},
			"p2": {OrgID: 2, ProjectID: 20, ProjectPublicID: "p2"},
			"p3": {OrgID: 1, ProjectID: 30, ProjectPublicID: "p3"},
		},
		rooms: map[string]access.Room{
			"r1": {ID: 100, PublicID: "r1", ProjectID: 10, Name: "Kitchen"},
			"r2": {ID: 101, PublicID: "r2", ProjectID: 10, Name: "Bath"},
			"r9": {ID: 200, PublicID: "r9", ProjectID: 20, Name: "Garage"},
		},
	}
	disp := &fakeDispatch{}
	tx := &memTx{repo: m}

	n := 0
	svc := New(tx, binderFor(m), Options{
		Access:   acc,
		Dispatch: disp,
		Media:    fakeMedia{},
		NewID: func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		},
	})
	return &fixture{svc: svc, repo: m, tx: tx, disp: disp}
}

func (f *fixture) inference(id int64) (domain.Inference, bool) {
	inf, ok, _ := f.repo.InferenceByID(context.Background(), id)
	return inf, ok
}

func TestCreateInference(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	got, err := f.svc.CreateInference(ctx, "missing", 100)
	if err != nil || got != nil {
		t.Fatalf("missing image = %+v, %v; want nil, nil", got, err)
	}

	got, err = f.svc.CreateInference(ctx, "img2", 101)
	if err != nil {
		t.Fatalf("CreateInference: %v", err)
	}
	if got.PublicID != "id-1" || got.ImageKey != "p1/b.jpg" || got.ProjectID != 10 || got.RoomID != 101 {
		t.Fatalf("inference = %+v", got)
	}
	if got.ID == 0 || got.CreatedAt.IsZero() {
		t.Fatalf("inserted row not returned: %+v", got)
	}
}

func TestReassignRoom_MovesInferenceAndDetections(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	res, err := f.svc.ReassignRoom(context.Background(), "p1/a.jpg", "r2", "u1")
	if err != nil {
		t.Fatalf("ReassignRoom: %v", err)
	}
	if res.Failed() {
		t.Fatalf("unexpected failure %q", res.Reason)
	}
	want := domain.Reassigned{InferenceID: "inf-a", ImageKey: "p1/a.jpg", RoomID: "r2", MovedDetections: 2}
	if res.Value != want {
		t.Fatalf("value = %+v, want %+v", res.Value, want)
	}

	if inf, _ := f.inference(50); inf.RoomID != 101 {
		t.Fatalf("inference room = %d, want 101", inf.RoomID)
	}
	for _, d := range f.repo.detections {
		switch d.ID {
		case 70, 71:
			if d.RoomID != 101 {
				t.Fatalf("detection %d room = %d, want 101", d.ID, d.RoomID)
			}
		case 72:
			if d.RoomID != 100 {
				t.Fatalf("detection of another inference moved: %+v", d)
			}
		}
	}
	if f.repo.images[0].RoomID != 101 {
		t.Fatalf("image room = %d, want 101", f.repo.images[0].RoomID)
	}
	if f.tx.calls != 1 {
		t.Fatalf("tx calls = %d, want 1", f.tx.calls)
	}
}

func TestReassignRoom_Reasons(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name, key, room, user string
		want                  result.Reason
	}{
		{"no org", "p1/a.jpg", "r2", "nobody", result.NoOrg},
		{"unknown image", "p1/zzz.jpg", "r2", "u1", result.NoImage},
		{"room outside project", "p1/a.jpg", "r9", "u1", result.NoRoomOrInference},
		{"missing room", "p1/a.jpg", "nope", "u1", result.NoRoomOrInference},
		{"no active inference", "p1/b.jpg", "r2", "u1", result.NoRoomOrInference},
		{"other organization", "p1/a.jpg", "r2", "u2", result.NotPartOfOrg},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			f := newFixture(t)

			res, err := f.svc.ReassignRoom(context.Background(), tc.key, tc.room, tc.user)
			if err != nil {
				t.Fatalf("err = %v", err)
			}
			if !res.Failed() || res.Reason != tc.want {
				t.Fatalf("result = %+v, want reason %q", res, tc.want)
			}
			if f.tx.calls != 0 {
				t.Fatalf("refused reassignment opened a tx")
			}
		})
	}
}

func TestReassignInProject(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name, user, project string
		want                result.Reason
	}{
		{"unknown project", "u1", "px", result.NoProject},
		{"other organization", "u2", "p1", result.NotPartOfOrg},
		{"sibling project in same org", "u1", "p3", result.NoImage},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			f := newFixture(t)

			res, err := f.svc.ReassignInProject(context.Background(), tc.user, tc.project, "p1/a.jpg", "r2")
			if err != nil || res.Reason != tc.want {
				t.Fatalf("result = %+v, %v; want %q", res, err, tc.want)
			}
			if inf, _ := f.inference(50); inf.RoomID != 100 || f.tx.calls != 0 {
				t.Fatalf("refused reassignment touched the store: room %d, tx %d", inf.RoomID, f.tx.calls)
			}
		})
	}

	f := newFixture(t)
	res, err := f.svc.ReassignInProject(context.Background(), "u1", "p1", "p1/a.jpg", "r2")
	if err != nil || res.Failed() || res.Value.RoomID != "r2" {
		t.Fatalf("same project = %+v, %v", res, err)
	}
	if inf, _ := f.inference(50); inf.RoomID != 101 {
		t.Fatalf("inference room = %d, want 101", inf.RoomID)
	}
}

func TestReassignRoom_RollsBack(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.repo.failOn = "SetImageRoom"

	_, err := f.svc.ReassignRoom(context.Background(), "p1/a.jpg", "r2", "u1")
	if !errors.Is(err, errBoom) {
		t.Fatalf("err = %v, want boom", err)
	}
	if inf, _ := f.inference(50); inf.RoomID != 100 {
		t.Fatalf("inference room not restored: %d", inf.RoomID)
	}
	for _, d := range f.repo.detections {
		if d.RoomID != 100 {
			t.Fatalf("detection room not restored: %+v", d)
		}
	}
}

func TestReassignRoom_AccessErrorIsReturned(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.svc.opt.Access.(*fakeAccess).err = errBoom

	if _, err := f.svc.ReassignRoom(context.Background(), "p1/a.jpg", "r2", "u1"); !errors.Is(err, errBoom) {
		t.Fatalf("err = %v, want boom", err)
	}
}

func TestLinkImage_CreatesAndQueues(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	res, err := f.svc.LinkImage(context.Background(), "u1", "p1", "img2", "r1")
	if err != nil || res.Failed() {
		t.Fatalf("LinkImage = %+v, %v", res, err)
	}
	v := res.Value
	if v.Existing || !v.Queued {
		t.Fatalf("flags = existing %v queued %v", v.Existing, v.Queued)
	}
	if v.InferenceID != "id-1" || v.RoomID != "r1" || v.RoomName != "Kitchen" || v.ImageKey != "p1/b.jpg" {
		t.Fatalf("linked = %+v", v)
	}
	if v.SignedURL != "https://signed/p1/b.jpg" {
		t.Fatalf("signed url = %q", v.SignedURL)
	}
	if len(f.disp.enqueued) != 1 || f.disp.enqueued[0] != 1001 {
		t.Fatalf("enqueued = %v, want [1001]", f.disp.enqueued)
	}
	if f.repo.images[1].RoomID != 100 {
		t.Fatalf("image room = %d, want 100", f.repo.images[1].RoomID)
	}
}

func TestLinkImage_ReturnsExisting(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	res, err := f.svc.LinkImage(context.Background(), "u1", "p1", "img1", "r1")
	if err != nil || res.Failed() {
		t.Fatalf("LinkImage = %+v, %v", res, err)
	}
	if !res.Value.Existing || res.Value.Queued || res.Value.InferenceID != "inf-a" {
		t.Fatalf("linked = %+v", res.Value)
	}
	if res.Value.RoomName != "Kitchen" {
		t.Fatalf("room name = %q", res.Value.RoomName)
	}
	if len(f.disp.enqueued) != 0 || f.tx.calls != 0 {
		t.Fatalf("existing inference was queued again")
	}
}

func TestLinkImage_Reasons(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name, user, project, image, room string
		want                             result.Reason
	}{
		{"no org", "nobody", "p1", "img2", "r1", result.NoOrg},
		{"no project", "u1", "px", "img2", "r1", result.NoProject},
		{"other organization", "u2", "p1", "img2", "r1", result.NotPartOfOrg},
		{"no room", "u1", "p1", "img2", "r9", result.NoRoom},
		{"image in another project", "u1", "p1", "img9", "r1", result.NoImage},
		{"unknown image", "u1", "p1", "nope", "r1", result.NoImage},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			f := newFixture(t)

			res, err := f.svc.LinkImage(context.Background(), tc.user, tc.project, tc.image, tc.room)
			if err != nil {
				t.Fatalf("err = %v", err)
			}
			if !res.Failed() || res.Reason != tc.want {
				t.Fatalf("result = %+v, want %q", res, tc.want)
			}
		})
	}
}

func TestLinkImage_EnqueueFailureKeepsRecord(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.disp.err = errBoom

	res, err := f.svc.LinkImage(context.Background(), "u1", "p1", "img2", "r1")
	if err != nil || res.Failed() {
		t.Fatalf("LinkImage = %+v, %v", res, err)
	}
	if res.Value.Queued {
		t.Fatalf("queued should be false when the hand off fails")
	}
	if _, ok := f.inference(1001); !ok {
		t.Fatalf("inference was not kept")
	}
}

func TestLinkImage_TxFailureRollsBack(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.repo.failOn = "SetImageRoom"

	if _, err := f.svc.LinkImage(context.Background(), "u1", "p1", "img2", "r1"); !errors.Is(err, errBoom) {
		t.Fatalf("err = %v, want boom", err)
	}
	if _, ok := f.inference(1001); ok {
		t.Fatalf("inference survived a rolled back tx")
	}
	if len(f.disp.enqueued) != 0 {
		t.Fatalf("enqueued after a failed tx")
	}
}

func TestLinkImage_PreviewFailureIsSoft(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.svc.opt.Media = fakeMedia{err: errBoom}

	res, err := f.svc.LinkImage(context.Background(), "u1", "p1", "img2", "r1")
	if err != nil || res.Failed() {
		t.Fatalf("LinkImage = %+v, %v", res, err)
	}
	if res.Value.SignedURL != "" {
		t.Fatalf("signed url = %q, want empty", res.Value.SignedURL)
	}
}

func TestRecordDetections(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	in := []domain.DetectionInput{
		{Category: " DRY ", Code: "D1", Item: "drywall", Confidence: 0.9},
		{Category: "PNT", Code: "P3", Confidence: 0.5},
	}
	res, err := f.svc.RecordDetections(ctx, 50, in)
	if err != nil || res.Failed() {
		t.Fatalf("RecordDetections = %+v, %v", res, err)
	}
	if res.Value.Inserted != 2 || res.Value.InferenceID != "inf-a" {
		t.Fatalf("recorded = %+v", res.Value)
	}
	added := f.repo.detections[3:]
	if len(added) != 2 {
		t.Fatalf("added %d rows", len(added))
	}
	if added[0].Category != "DRY" || added[0].RoomID != 100 || added[0].ProjectID != 10 || added[0].PublicID == "" {
		t.Fatalf("row = %+v", added[0])
	}

	res, err = f.svc.RecordDetections(ctx, 404, in)
	if err != nil || res.Reason != result.NoInference {
		t.Fatalf("unknown inference = %+v, %v", res, err)
	}

	res, err = f.svc.RecordDetections(ctx, 50, nil)
	if err != nil || res.Reason != result.InvalidInput {
		t.Fatalf("empty input = %+v, %v", res, err)
	}
}

func TestRoomlessInference(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	inf, err := f.svc.CreateInference(ctx, "img2", 0)
	if err != nil || inf == nil || inf.RoomID != 0 {
		t.Fatalf("CreateInference without room = %+v, %v", inf, err)
	}

	res, err := f.svc.RecordDetections(ctx, inf.ID, []domain.DetectionInput{{Category: "PNT", Code: "P1"}})
	if err != nil || res.Reason != result.NoRoom {
		t.Fatalf("detections for a room-less inference = %+v, %v; want no-room", res, err)
	}
	if len(f.repo.detections) != 3 {
		t.Fatalf("detections = %d, want 3", len(f.repo.detections))
	}
}

func TestRecordDetections_RollsBack(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.repo.failOn = "InsertDetections"

	_, err := f.svc.RecordDetections(context.Background(), 50, []domain.DetectionInput{{Category: "PNT", Code: "P1"}})
	if !errors.Is(err, errBoom) {
		t.Fatalf("err = %v, want boom", err)
	}
	if len(f.repo.detections) != 3 {
		t.Fatalf("detections = %d, want 3", len(f.repo.detections))
	}
}

func TestRetry(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.svc.Retry(ctx, 50)
	if err != nil || res.Failed() || res.Value.InferenceID != "inf-a" {
		t.Fatalf("Retry = %+v, %v", res, err)
	}
	if len(f.disp.requeued) != 1 || f.disp.requeued[0] != 50 {
		t.Fatalf("requeued = %v", f.disp.requeued)
	}

	res, err = f.svc.Retry(ctx, 404)
	if err != nil || res.Reason != result.NoInference {
		t.Fatalf("unknown = %+v, %v", res, err)
	}

	f.disp.err = errBoom
	if _, err := f.svc.Retry(ctx, 50); !errors.Is(err, errBoom) {
		t.Fatalf("err = %v, want boom", err)
	}
}

func TestDeleteRoom_Cascades(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	res, err := f.svc.DeleteRoom(context.Background(), "u1", "p1", "r1")
	if err != nil || res.Failed() {
		t.Fatalf("DeleteRoom = %+v, %v", res, err)
	}
	want := domain.RoomDeleted{RoomID: "r1", Images: 1, Inferences: 1, Detections: 3}
	if res.Value != want {
		t.Fatalf("deleted = %+v, want %+v", res.Value, want)
	}
	if _, ok := f.inference(50); ok {
		t.Fatalf("inference of the deleted room is still live")
	}
	if _, ok := f.inference(60); !ok {
		t.Fatalf("inference of another room was deleted")
	}
}

func TestDeleteRoom_ReasonsAndRollback(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	res, err := f.svc.DeleteRoom(ctx, "u1", "p1", "r9")
	if err != nil || res.Reason != result.NoRoom {
		t.Fatalf("foreign room = %+v, %v", res, err)
	}
	res, err = f.svc.DeleteRoom(ctx, "u2", "p1", "r1")
	if err != nil || res.Reason != result.NotPartOfOrg {
		t.Fatalf("other org = %+v, %v", res, err)
	}

	f.repo.failOn = "SoftDeleteRoom"
	if _, err := f.svc.DeleteRoom(ctx, "u1", "p1", "r1"); !errors.Is(err, errBoom) {
		t.Fatalf("err = %v, want boom", err)
	}
	f.repo.failOn = ""
	if _, ok := f.inference(50); !ok {
		t.Fatalf("partial delete was not rolled back")
	}
}

func TestNew_PanicsOnMissingDeps(t *testing.T) {
	t.Parallel()
	m := &memRepo{deleted: map[string]bool{}}
	tx := &memTx{repo: m}
	ok := Options{Access: &fakeAccess{}, Dispatch: &fakeDispatch{}}

	testkit.MustPanic(t, func() { New(nil, binderFor(m), ok) })
	testkit.MustPanic(t, func() { New(tx, nil, ok) })
	testkit.MustPanic(t, func() { New(tx, binderFor(m), Options{Dispatch: &fakeDispatch{}}) })
	testkit.MustPanic(t, func() { New(tx, binderFor(m), Options{Access: &fakeAccess{}}) })
}
