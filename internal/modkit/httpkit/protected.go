package httpkit

import "chirp/internal/platform/net/middleware"

// Protected groups routes that require an authenticated caller
func Protected(r Router, p middleware.AuthPort, fn func(Router)) {
	r.Group(func(gr Router) {
		gr.Use(Auth(p))
		fn(gr)
	})
}
