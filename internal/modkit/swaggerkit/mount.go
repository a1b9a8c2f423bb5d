// Package swaggerkit serves the generated OpenAPI document and swagger ui
package swaggerkit

import (
	"net/http"

	phttp "servicegeek/internal/platform/net/http"
	docs "servicegeek/internal/services/api/docs"

	httpSwagger "github.com/swaggo/http-swagger"
)

// Mount serves the ui under /api/docs when enabled
func Mount(r phttp.Router, enabled bool) {
	if !enabled {
		return
	}
	r.Get("/api/docs", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/api/docs/", http.StatusPermanentRedirect)
	})
	r.Get("/api/docs/doc.json", serveDocJSON())
	r.Handle("/api/docs/*", httpSwagger.Handler(
		httpSwagger.InstanceName(docs.SwaggerInfo.InstanceName()),
		httpSwagger.URL("/api/docs/doc.json"),
	))
}
