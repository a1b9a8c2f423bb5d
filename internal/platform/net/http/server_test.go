package http_test

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"servicegeek/internal/platform/config"
	phttp "servicegeek/internal/platform/net/http"
)

func freeAddr(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := l.Addr().String()
	_ = l.Close()
	return addr
}

func TestServer_ServesUntilCancel(t *testing.T) {
	addr := freeAddr(t)
	t.Setenv("CORE_API_ADDR", addr)

	srv := phttp.NewServer(config.New().Prefix("CORE_API_"))
	if srv.Addr() != addr {
		t.Fatalf("Addr = %q, want %q", srv.Addr(), addr)
	}
	srv.Router().Get("/version", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "dev")
	})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	var body string
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		resp, err := http.Get(fmt.Sprintf("http://%s/version", addr))
		if err == nil {
			b, _ := io.ReadAll(resp.Body)
			_ = resp.Body.Close()
			body = string(b)
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	if body != "dev" {
		t.Fatalf("body = %q", body)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned %v after cancel", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestServer_Run_ReturnsListenError(t *testing.T) {
	t.Setenv("SG_ADDR", "127.0.0.1:abc")
	if err := phttp.NewServer(config.New().Prefix("SG_")).Run(context.Background()); err == nil {
		t.Fatal("expected a listen error")
	}
}

func TestNewServer_Addr(t *testing.T) {
	t.Setenv("SG_PORT", "8081")
	if got := phttp.NewServer(config.New().Prefix("SG_")).Addr(); got != ":8081" {
		t.Fatalf("addr = %q, want :8081", got)
	}
	t.Setenv("SG_ADDR", "0.0.0.0:9000")
	if got := phttp.NewServer(config.New().Prefix("SG_")).Addr(); got != "0.0.0.0:9000" {
		t.Fatalf("ADDR should win over PORT, got %q", got)
	}
	if got := phttp.NewServer(config.New().Prefix("NOPE_")).Addr(); got != ":4000" {
		t.Fatalf("default addr = %q", got)
	}
}
