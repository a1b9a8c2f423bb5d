package swaggerkit

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"servicegeek/internal/modkit/httpkit"
	"servicegeek/internal/platform/config"
	perr "servicegeek/internal/platform/errors"
	phttp "servicegeek/internal/platform/net/http"
	"servicegeek/internal/platform/result"

	docs "servicegeek/internal/services/api/docs"
)

// docReader is a seam so tests can feed a broken document
var docReader = func() string { return docs.SwaggerInfo.ReadDoc() }

// failure is a documented non-2xx envelope added to every operation
type failure struct {
	status  int
	desc    string
	example map[string]any
	secured bool // only on operations that carry a security requirement
}

func reasonFailure(r result.Reason, desc string) failure {
	status := phttp.ReasonStatus(r)
	return failure{status: status, desc: desc, example: map[string]any{
		"status_code": status,
		"status":      "failed",
		"reason":      string(r),
		"request_id":  "579f33bf50b1/abc-000001",
	}}
}

func errorFailure(status int, code perr.ErrorCode, msg string, secured bool) failure {
	return failure{status: status, desc: http.StatusText(status), secured: secured, example: map[string]any{
		"status_code": status,
		"status":      "failed",
		"code":        code,
		"error":       msg,
		"request_id":  "579f33bf50b1/abc-000001",
	}}
}

var failures = []failure{
	reasonFailure(result.InvalidInput, "Invalid input"),
	errorFailure(http.StatusUnauthorized, perr.ErrorCodeUnauthorized, "missing bearer token", true),
	reasonFailure(result.NotPartOfOrg, "Resource belongs to another organization"),
	reasonFailure(result.NoRoom, "Project, room, image or inference not found"),
	errorFailure(http.StatusInternalServerError, perr.ErrorCodePanic, "internal error", false),
}

// serveDocJSON serves the generated document after normalizing it for swagger ui
func serveDocJSON() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var spec map[string]any
		if err := json.Unmarshal([]byte(docReader()), &spec); err != nil {
			http.Error(w, "spec parse error", http.StatusInternalServerError)
			return
		}

		ensureServers(spec, httpkit.APIV1)

		if v := config.New().Prefix("CORE_API_").MayString("DOCS_TITLE_SUFFIX", ""); v != "" {
			if info, ok := spec["info"].(map[string]any); ok {
				if title, ok := info["title"].(string); ok {
					info["title"] = title + " " + v
				}
			}
		}

		addFailures(spec)

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(spec)
	}
}

// ensureServers pins the spec to OAS 3.0.3 with a servers array
// swagger ui does not render 3.1 yet
func ensureServers(spec map[string]any, url string) {
	delete(spec, "swagger")
	if v, _ := spec["openapi"].(string); v == "" || strings.HasPrefix(v, "3.1") {
		spec["openapi"] = "3.0.3"
	}
	if _, ok := spec["servers"]; !ok {
		spec["servers"] = []any{map[string]any{"url": url}}
	}
}

// addFailures documents the envelope for each failure status an operation lacks
func addFailures(spec map[string]any) {
	paths, ok := spec["paths"].(map[string]any)
	if !ok {
		return
	}
	for _, p := range paths {
		node, ok := p.(map[string]any)
		if !ok {
			continue
		}
		for _, opAny := range node {
			op, ok := opAny.(map[string]any)
			if !ok {
				continue
			}
			resps, ok := op["responses"].(map[string]any)
			if !ok {
				resps = map[string]any{}
				op["responses"] = resps
			}
			_, secured := op["security"]
			for _, f := range failures {
				if f.secured && !secured {
					continue
				}
				code := strconv.Itoa(f.status)
				if _, exists := resps[code]; exists {
					continue
				}
				resps[code] = map[string]any{
					"description": f.desc,
					"content": map[string]any{
						"application/json": map[string]any{
							"schema":  map[string]any{"$ref": "#/components/schemas/Envelope"},
							"example": f.example,
						},
					},
				}
			}
		}
	}
}
