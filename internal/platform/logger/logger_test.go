package logger

import (
	"bytes"
	"context"
	"testing"

	kit "servicegeek/internal/platform/testkit"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":     zerolog.TraceLevel,
		"INFO":      zerolog.InfoLevel,
		" warning ": zerolog.WarnLevel,
		"error":     zerolog.ErrorLevel,
		"fatal":     zerolog.FatalLevel,
		"panic":     zerolog.PanicLevel,
		"":          zerolog.DebugLevel,
		"chatty":    zerolog.DebugLevel,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

// Init runs once per process, so every field assertion lives in this one test
func TestInit_RequestScopedFields(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{
		Level:        "info",
		Format:       "json",
		Service:      "servicegeek",
		Component:    "api",
		Writer:       &buf,
		StaticFields: map[string]string{"env": "test"},
	})

	Named("dispatch").Info().Msg("scheduled")

	ctx := WithRequest(context.Background(), "req-123", "org-7")
	C(ctx).Info().Msg("resolved")

	chiCtx := context.WithValue(context.Background(), chimw.RequestIDKey, "chi-9")
	C(chiCtx).Info().Msg("fallback")

	C(context.Background()).Debug().Msg("filtered")

	out := buf.String()
	kit.MustContain(t, out, `"service":"servicegeek"`)
	kit.MustContain(t, out, `"env":"test"`)
	kit.MustContain(t, out, `"component":"dispatch"`)
	kit.MustContain(t, out, `"request_id":"req-123"`)
	kit.MustContain(t, out, `"org_id":"org-7"`)
	kit.MustContain(t, out, `"request_id":"chi-9"`)
	if bytes.Contains(buf.Bytes(), []byte("filtered")) {
		t.Fatalf("debug line leaked past info level: %s", out)
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "WARN")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("LOG_SERVICE", "servicegeek-ctl")
	t.Setenv("LOG_CALLER", "true")
	t.Setenv("LOG_SAMPLE_EVERY", "5")

	opt := FromEnv()
	if opt.Level != "warn" || opt.Format != "json" || opt.Service != "servicegeek-ctl" {
		t.Fatalf("FromEnv = %+v", opt)
	}
	if !opt.WithCaller || opt.SampleEvery != 5 {
		t.Fatalf("FromEnv caller/sample = %+v", opt)
	}
}

func TestBuild_Console(t *testing.T) {
	var buf bytes.Buffer
	l := build(Options{Level: "info", Format: "console", Component: "ctl", Writer: &buf, WithCaller: true})
	l.Info().Str("inference_id", "42").Msg("requeued")

	out := buf.String()
	kit.MustContain(t, out, "requeued")
	kit.MustContain(t, out, "inference_id=42")
	kit.MustContain(t, out, "logger_test.go")
}
