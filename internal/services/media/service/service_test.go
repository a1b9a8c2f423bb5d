package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"servicegeek/internal/platform/testkit"
	"servicegeek/internal/services/media/cache"
	"servicegeek/internal/services/media/domain"
)

func TestMain(m *testing.M) { testkit.VerifyNoLeaks(m) }

type fakeSigner struct {
	mu       sync.Mutex
	signs    map[string]map[string]string // bucket -> key -> url
	fail     map[string]error
	calls    map[string][]string
	expiry   time.Duration
	single   string
	inFlight int
	peak     int
}

func newFakeSigner() *fakeSigner {
	return &fakeSigner{
		signs: map[string]map[string]string{},
		fail:  map[string]error{},
		calls: map[string][]string{},
	}
}

func (f *fakeSigner) SignMany(_ context.Context, bucket string, keys []string, expiry time.Duration) ([]domain.Signed, error) {
	f.mu.Lock()
	f.inFlight++
	if f.inFlight > f.peak {
		f.peak = f.inFlight
	}
	f.calls[bucket] = append(f.calls[bucket], keys...)
	f.expiry = expiry
	err := f.fail[bucket]
	known := f.signs[bucket]
	f.mu.Unlock()

	time.Sleep(20 * time.Millisecond)

	f.mu.Lock()
	f.inFlight--
	f.mu.Unlock()

	if err != nil {
		return nil, err
	}
	out := make([]domain.Signed, 0, len(keys))
	for _, k := range keys {
		if u, ok := known[k]; ok {
			out = append(out, domain.Signed{Key: k, URL: u})
		} else {
			out = append(out, domain.Signed{Key: k, Err: "Object not found"})
		}
	}
	return out, nil
}

func (f *fakeSigner) Sign(_ context.Context, bucket, key string, expiry time.Duration) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.single = bucket + "|" + key
	f.expiry = expiry
	if err := f.fail[bucket]; err != nil {
		return "", err
	}
	return "https://signed/" + bucket + "/" + key, nil
}

func TestNormalizeKey(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"p1/a.jpg":                          "p1/a.jpg",
		"project-images/p1/a.jpg":           "p1/a.jpg",
		"project-images%2Fp1%2Fa.jpg":       "p1/a.jpg",
		"project-images%252Fp1%252Fa b.jpg": "p1/a b.jpg",
		"bad%zz":                            "bad%zz",
		"media/project-images/x":            "media/project-images/x",
	}
	for in, want := range cases {
		if got := NormalizeKey(in); got != want {
			t.Fatalf("NormalizeKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestResolve_MergesBucketsKeyedByOriginal(t *testing.T) {
	t.Parallel()

	f := newFakeSigner()
	f.signs["project-images"] = map[string]string{"p1/old.jpg": "https://legacy/old"}
	f.signs["media"] = map[string]string{"p1/new.jpg": "https://media/new"}
	s := New(f, Options{})

	keys := []string{"project-images%2Fp1%2Fold.jpg", "p1/new.jpg", "p1/missing.jpg"}
	got, err := s.Resolve(context.Background(), keys)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %v", got)
	}
	if got["project-images%2Fp1%2Fold.jpg"] != "https://legacy/old" {
		t.Fatalf("legacy key = %q", got["project-images%2Fp1%2Fold.jpg"])
	}
	if got["p1/new.jpg"] != "https://media/new" {
		t.Fatalf("current key = %q", got["p1/new.jpg"])
	}
	if _, ok := got["p1/missing.jpg"]; ok {
		t.Fatal("per key failures must be dropped")
	}
	if f.expiry != 1800*time.Second {
		t.Fatalf("expiry = %v", f.expiry)
	}
	if f.peak != 2 {
		t.Fatalf("buckets were not signed concurrently (peak %d)", f.peak)
	}
}

func TestResolve_CollisionKeepsSomeURL(t *testing.T) {
	t.Parallel()

	f := newFakeSigner()
	f.signs["project-images"] = map[string]string{"k": "https://legacy/k"}
	f.signs["media"] = map[string]string{"k": "https://media/k"}
	got, err := New(f, Options{}).Resolve(context.Background(), []string{"k"})
	if err != nil || got["k"] == "" {
		t.Fatalf("got %v err %v", got, err)
	}
}

func TestResolve_WholeBucketFailureIsEmpty(t *testing.T) {
	t.Parallel()

	f := newFakeSigner()
	f.fail["media"] = errors.New("bucket offline")
	f.signs["project-images"] = map[string]string{"a": "https://legacy/a"}

	got, err := New(f, Options{}).Resolve(context.Background(), []string{"a", "b"})
	if err != nil {
		t.Fatalf("bucket failures must not surface: %v", err)
	}
	if len(got) != 1 || got["a"] != "https://legacy/a" {
		t.Fatalf("got %v", got)
	}

	f.fail["project-images"] = errors.New("also offline")
	got, err = New(f, Options{}).Resolve(context.Background(), []string{"a"})
	if err != nil || len(got) != 0 {
		t.Fatalf("both down: %v %v", got, err)
	}
}

func TestResolve_CacheSkipsSigning(t *testing.T) {
	t.Parallel()

	f := newFakeSigner()
	f.signs["media"] = map[string]string{"a": "https://media/a"}
	c := cache.NewMemory(time.Minute, 0)
	s := New(f, Options{Cache: c})

	if _, err := s.Resolve(context.Background(), []string{"a"}); err != nil {
		t.Fatal(err)
	}
	f.mu.Lock()
	f.calls = map[string][]string{}
	f.mu.Unlock()

	got, err := s.Resolve(context.Background(), []string{"a", "project-images/a"})
	if err != nil {
		t.Fatal(err)
	}
	if got["a"] != "https://media/a" || got["project-images/a"] != "https://media/a" {
		t.Fatalf("got %v", got)
	}
	if len(f.calls) != 0 {
		t.Fatalf("cached keys were signed again: %v", f.calls)
	}
}

func TestResolve_DedupesNormalizedKeys(t *testing.T) {
	t.Parallel()

	f := newFakeSigner()
	f.signs["media"] = map[string]string{"p/a": "https://media/a"}
	got, err := New(f, Options{}).Resolve(context.Background(), []string{"p/a", "p%2Fa", "project-images/p/a"})
	if err != nil || len(got) != 3 {
		t.Fatalf("got %v err %v", got, err)
	}
	calls := append([]string(nil), f.calls["media"]...)
	sort.Strings(calls)
	if len(calls) != 1 || calls[0] != "p/a" {
		t.Fatalf("media bucket saw %v", calls)
	}
}

func TestResolve_Empty(t *testing.T) {
	t.Parallel()

	got, err := New(newFakeSigner(), Options{}).Resolve(context.Background(), nil)
	if err != nil || len(got) != 0 {
		t.Fatalf("got %v err %v", got, err)
	}
}

func TestResolveAvatar(t *testing.T) {
	t.Parallel()

	f := newFakeSigner()
	u, err := New(f, Options{}).ResolveAvatar(context.Background(), "u1%2Fme.png")
	if err != nil {
		t.Fatal(err)
	}
	if f.single != "profile-pictures|u1/me.png" || f.expiry != time.Hour {
		t.Fatalf("single = %q expiry %v", f.single, f.expiry)
	}
	if u != "https://signed/profile-pictures/u1/me.png" {
		t.Fatalf("url = %q", u)
	}
}

func TestNew_PanicsWithoutSigner(t *testing.T) {
	t.Parallel()
	testkit.MustPanic(t, func() { _ = New(nil, Options{}) })
}
