package module

import (
	"testing"

	"servicegeek/internal/modkit"
	"servicegeek/internal/platform/store"
)

func TestChecks(t *testing.T) {
	t.Parallel()

	got := checks(nil)
	if len(got) != 3 || got[0].Name != "pg" || !got[0].Required || got[1].Required {
		t.Fatalf("checks = %+v", got)
	}
	for _, c := range got {
		if c.Target != nil {
			t.Fatalf("%s target should be nil, got %T", c.Name, c.Target)
		}
	}
}

func TestNew(t *testing.T) {
	t.Parallel()

	m := New(modkit.Deps{}, modkit.WithPorts(Ports{Store: &store.Store{}}))
	if m.Name() != "meta" || m.(*Module).Prefix() != "/meta" {
		t.Fatalf("module = %s", m.Name())
	}
	if p, ok := m.Ports().(Ports); !ok || p.Store == nil {
		t.Fatalf("ports = %#v", m.Ports())
	}
}
