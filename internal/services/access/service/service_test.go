package service

import (
	"context"
	"errors"
	"testing"

	"servicegeek/internal/platform/result"
	"servicegeek/internal/platform/testkit"
	"servicegeek/internal/services/access/domain"
)

type project struct{ id, org int64 }

type fakeRepo struct {
	orgs     map[string]int64
	projects map[string]project
	rooms    map[string]domain.Room
	err      error
}

func (f *fakeRepo) OrgOfUser(_ context.Context, userID string) (int64, bool, error) {
	if f.err != nil {
		return 0, false, f.err
	}
	org, ok := f.orgs[userID]
	return org, ok, nil
}

func (f *fakeRepo) ProjectByPublicID(_ context.Context, publicID string) (int64, int64, bool, error) {
	p, ok := f.projects[publicID]
	return p.id, p.org, ok, nil
}

func (f *fakeRepo) ProjectOrg(_ context.Context, projectID int64) (int64, bool, error) {
	for _, p := range f.projects {
		if p.id == projectID {
			return p.org, true, nil
		}
	}
	return 0, false, nil
}

func (f *fakeRepo) RoomByPublicID(_ context.Context, projectID int64, roomPublicID string) (domain.Room, bool, error) {
	r, ok := f.rooms[roomPublicID]
	if !ok || r.ProjectID != projectID {
		return domain.Room{}, false, nil
	}
	return r, true, nil
}

func newSvc() (*Svc, *fakeRepo) {
	f := &fakeRepo{
		orgs: map[string]int64{"u1": 1, "u2": 2},
		projects: map[string]project{
			"p1": {id: 10, org: 1},
			"p2": {id: 20, org: 2},
		},
		rooms: map[string]domain.Room{
			"r1": {ID: 100, PublicID: "r1", ProjectID: 10, Name: "Kitchen"},
			"r2": {ID: 200, PublicID: "r2", ProjectID: 20, Name: "Bath"},
		},
	}
	return &Svc{Repo: f}, f
}

func TestResolveProject_Reasons(t *testing.T) {
	t.Parallel()

	s, _ := newSvc()
	cases := []struct {
		user, project string
		want          result.Reason
	}{
		{"", "p1", result.NoOrg},
		{"ghost", "p1", result.NoOrg},
		{"u1", "nope", result.NoProject},
		{"u1", "p2", result.NotPartOfOrg},
	}
	for _, c := range cases {
		res, err := s.ResolveProject(context.Background(), c.user, c.project)
		if err != nil {
			t.Fatalf("%s/%s: %v", c.user, c.project, err)
		}
		if !res.Failed() || res.Reason != c.want {
			t.Fatalf("%s/%s: got %+v want %s", c.user, c.project, res, c.want)
		}
	}

	res, err := s.ResolveProject(context.Background(), "u1", "p1")
	if err != nil || res.Failed() {
		t.Fatalf("ok case: %+v %v", res, err)
	}
	if res.Value.ProjectID != 10 || res.Value.OrgID != 1 || res.Value.UserID != "u1" {
		t.Fatalf("scope = %+v", res.Value)
	}
}

func TestResolveProject_InfraErrorIsError(t *testing.T) {
	t.Parallel()

	s, f := newSvc()
	f.err = errors.New("db down")
	if _, err := s.ResolveProject(context.Background(), "u1", "p1"); err == nil {
		t.Fatal("expected error")
	}
}

func TestResolveRoom_ScopedToProject(t *testing.T) {
	t.Parallel()

	s, _ := newSvc()
	scope := domain.Scope{ProjectID: 10}

	res, err := s.ResolveRoom(context.Background(), scope, "r1")
	if err != nil || res.Failed() || res.Value.ID != 100 {
		t.Fatalf("r1: %+v %v", res, err)
	}
	for _, id := range []string{"", "r2", "missing"} {
		res, err := s.ResolveRoom(context.Background(), scope, id)
		if err != nil || res.Reason != result.NoRoom {
			t.Fatalf("%q: %+v %v", id, res, err)
		}
	}
}

func TestNew_PanicsOnNil(t *testing.T) {
	t.Parallel()
	testkit.MustPanic(t, func() { _ = New(nil, nil) })
}
