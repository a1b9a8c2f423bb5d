package http

import (
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

func header(name string) func(stdhttp.Handler) stdhttp.Handler {
	return func(next stdhttp.Handler) stdhttp.Handler {
		return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
			w.Header().Set(name, "1")
			next.ServeHTTP(w, r)
		})
	}
}

func write(body string) Handler {
	return func(w stdhttp.ResponseWriter, _ *stdhttp.Request) { _, _ = w.Write([]byte(body)) }
}

func TestAdaptChi_ScopesMiddleware(t *testing.T) {
	t.Parallel()

	r := AdaptChi(chi.NewRouter())
	r.Use(header("X-Root"))
	r.Get("/version", write("v"))
	r.Route("/api/v1", func(api Router) {
		api.Use(header("X-Api"))
		api.Group(func(g Router) {
			g.Use(header("X-Auth"))
			g.Post("/inference", write("queued"))
			g.Delete("/inference/{id}", func(w stdhttp.ResponseWriter, req *stdhttp.Request) {
				_, _ = w.Write([]byte(URLParam(req, "id")))
			})
		})
		api.Handle("/raw", stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, _ *stdhttp.Request) {
			w.WriteHeader(stdhttp.StatusTeapot)
		}))
	})

	cases := []struct {
		method, path, body string
		code               int
		headers            []string
		absent             []string
	}{
		{stdhttp.MethodGet, "/version", "v", 200, []string{"X-Root"}, []string{"X-Api", "X-Auth"}},
		{stdhttp.MethodPost, "/api/v1/inference", "queued", 200, []string{"X-Root", "X-Api", "X-Auth"}, nil},
		{stdhttp.MethodDelete, "/api/v1/inference/42", "42", 200, []string{"X-Auth"}, nil},
		{stdhttp.MethodGet, "/api/v1/raw", "", stdhttp.StatusTeapot, []string{"X-Api"}, []string{"X-Auth"}},
		{stdhttp.MethodGet, "/api/v1/inference", "", stdhttp.StatusMethodNotAllowed, nil, nil},
	}
	for _, c := range cases {
		rec := httptest.NewRecorder()
		r.Mux().ServeHTTP(rec, httptest.NewRequest(c.method, c.path, nil))
		if rec.Code != c.code {
			t.Errorf("%s %s: code %d, want %d", c.method, c.path, rec.Code, c.code)
			continue
		}
		if c.body != "" && rec.Body.String() != c.body {
			t.Errorf("%s %s: body %q, want %q", c.method, c.path, rec.Body.String(), c.body)
		}
		for _, h := range c.headers {
			if rec.Header().Get(h) != "1" {
				t.Errorf("%s %s: missing %s", c.method, c.path, h)
			}
		}
		for _, h := range c.absent {
			if rec.Header().Get(h) != "" {
				t.Errorf("%s %s: unexpected %s", c.method, c.path, h)
			}
		}
	}
}
