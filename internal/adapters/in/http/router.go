// internal/adapters/in/http/router.go
package httpin

import (
	"log"
	"net/http"

	"voucherhub/internal/adapters/in/http/middleware"
)

// Deps is the handler set the router mounts.
type Deps struct {
	Register http.Handler
	Shop     http.Handler
	Voucher  http.Handler

	// Auth wraps the authenticated routes. Nil leaves them unprotected,
	// which only test routers should do.
	Auth func(http.Handler) http.Handler
}

// handleSafe registers pattern with h.
// If h is nil, it logs and registers NotFoundHandler instead.
func handleSafe(mux *http.ServeMux, pattern string, h http.Handler, name string) {
	if h == nil {
		log.Printf("[router] WARN: nil handler: %s pattern=%s (registering NotFoundHandler)", name, pattern)
		h = http.NotFoundHandler()
	}
	mux.Handle(pattern, h)
}

// NewRouter builds the route tree. Recover wraps everything; CORS is applied
// by the caller so it also covers /healthz.
func NewRouter(deps Deps) http.Handler {
	mux := http.NewServeMux()

	auth := deps.Auth
	if auth == nil {
		auth = func(h http.Handler) http.Handler { return h }
	}
	wrap := func(h http.Handler) http.Handler {
		if h == nil {
			return nil
		}
		return auth(h)
	}

	// registration is the only unauthenticated operation
	handleSafe(mux, "/register", deps.Register, "Register")

	handleSafe(mux, "/shops", wrap(deps.Shop), "Shop")
	handleSafe(mux, "/shops/", wrap(deps.Shop), "Shop")

	handleSafe(mux, "/vouchers", wrap(deps.Voucher), "Voucher")
	handleSafe(mux, "/vouchers/", wrap(deps.Voucher), "Voucher")

	return middleware.Recover(mux)
}
