package httpkit

import "servicegeek/internal/platform/net/middleware"

// Protected groups routes under bearer auth through p
func Protected(r Router, p middleware.AuthPort, fn func(Router)) {
	r.Group(func(gr Router) {
		gr.Use(Auth(p))
		fn(gr)
	})
}
