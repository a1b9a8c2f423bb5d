package http

import (
	stdhttp "net/http"
	"strings"

	mw "github.com/go-chi/chi/v5/middleware"
)

const defaultProfilerPrefix = "/debug"

// MountProfiler serves chi's pprof mux under prefix when enabled
// an empty or "/" prefix means /debug
func MountProfiler(r Router, prefix string, enabled bool) {
	if !enabled {
		return
	}
	prefix = "/" + strings.Trim(prefix, "/")
	if prefix == "/" {
		prefix = defaultProfilerPrefix
	}

	prof := stdhttp.StripPrefix(prefix, mw.Profiler())
	for _, p := range []string{prefix, prefix + "/*"} {
		r.Get(p, prof.ServeHTTP)
	}
}
