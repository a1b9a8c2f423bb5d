package strings

import (
	"testing"

	"servicegeek/internal/platform/testkit"
)

func TestIfEmpty(t *testing.T) {
	t.Parallel()

	if got := IfEmpty([]string{"GET"}, []string{"POST"}); len(got) != 1 || got[0] != "GET" {
		t.Fatalf("IfEmpty kept = %v", got)
	}
	if got := IfEmpty(nil, []string{"POST"}); len(got) != 1 || got[0] != "POST" {
		t.Fatalf("IfEmpty default = %v", got)
	}
}

func TestMustString(t *testing.T) {
	t.Parallel()

	if got := MustString("media", "name"); got != "media" {
		t.Fatalf("MustString = %q", got)
	}
	testkit.MustPanic(t, func() { MustString("  ", "name") })
}

func TestMustPrefix(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"inference":     "/inference",
		"/templates/":   "/templates",
		"  /media  ":    "/media",
		"//dispatch//":  "/dispatch",
		"/api/v1/rooms": "/api/v1/rooms",
	}
	for in, want := range cases {
		if got := MustPrefix(in); got != want {
			t.Errorf("MustPrefix(%q) = %q, want %q", in, got, want)
		}
	}
	testkit.MustPanic(t, func() { MustPrefix(" / ") })
}
