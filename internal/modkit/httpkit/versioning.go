package httpkit

import "net/http"

// APIV1 is the base path every module mounts under
const APIV1 = "/api/v1"

// MountAPIV1 opens the versioned scope, applies mw to it and hands it to mount
func MountAPIV1(r Router, mw []func(http.Handler) http.Handler, mount func(Router)) {
	r.Route(APIV1, func(api Router) {
		api.Use(mw...)
		mount(api)
	})
}
