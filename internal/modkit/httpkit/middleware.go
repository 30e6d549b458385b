package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	phttp "mingle/internal/platform/net/http"
	"mingle/internal/platform/net/middleware"
)

// CommonStack returns a baseline per module middleware slice
// compose with your auth or rate-limit middleware as needed in main
func CommonStack() []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		// tracing / correlation
		middleware.RequestID(),
		middleware.RealIP(),

		// safety
		middleware.RecoverJSON,

		// cache / freshness
		middleware.NoCache(),

		// observability
		middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: 2 * time.Second}),

		// cross-origin (tweak config in main if needed)
		middleware.CORS(middleware.CORSOptions{}),
		middleware.Compress(flate.BestSpeed),
		middleware.Heartbeat("/health"),
		middleware.Timeout(30 * time.Second),
	}
}

// Auth wires the auth middleware to the platform JSON writer
func Auth(p middleware.AuthPort) func(http.Handler) http.Handler {
	// middleware expects write func(w http.ResponseWriter, status int, body any)
	// use phttp.JSON which matches that signature
	return middleware.Auth(p, phttp.JSON)
}

// RateLimited wires the rate-limit middleware under the named profile
func RateLimited(p middleware.AdmitPort, profile string) func(http.Handler) http.Handler {
	return middleware.RateLimit(p, profile)
}
