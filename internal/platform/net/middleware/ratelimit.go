package middleware

import (
	"context"
	"net"
	"net/http"

	"mingle/internal/platform/logger"
	pnet "mingle/internal/platform/net"
	phttp "mingle/internal/platform/net/http"
)

// AdmitPort is the seam the rate limiter implements
// Admit charges one unit against (profile, key) and reports the verdict
// retryAfter is whole seconds until the caller's window resets, >= 1 on denial
type AdmitPort interface {
	Admit(ctx context.Context, profile, key string) (allowed bool, retryAfter int, err error)
}

// RateLimit gates requests through the limiter under the named profile
// Runs before handler logic; the caller key is the authenticated user when
// present, else the client IP (RealIP should run first)
// Limiter errors fail open with a warn log so a broken counter backend
// cannot take the API down
func RateLimit(p AdmitPort, profile string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if p == nil {
				next.ServeHTTP(w, r)
				return
			}
			key := CallerKey(r)
			ctx := pnet.WithCallerKey(r.Context(), key)
			r = r.WithContext(ctx)

			allowed, retryAfter, err := p.Admit(ctx, profile, key)
			if err != nil {
				logger.C(ctx).Warn().Err(err).Str("profile", profile).Msg("rate limiter unavailable; admitting")
				next.ServeHTTP(w, r)
				return
			}
			if !allowed {
				logger.C(ctx).Info().
					Str("profile", profile).
					Int("retry_after", retryAfter).
					Msg("rate limit exceeded")
				phttp.RespondTooManyRequests(w, r, retryAfter)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// CallerKey derives the rate-limit identity for a request
// Prefers the authenticated user id, falls back to the remote host
func CallerKey(r *http.Request) string {
	if uid := pnet.UserID(r.Context()); uid != "" {
		return "user:" + uid
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil || host == "" {
		host = r.RemoteAddr
	}
	return "ip:" + host
}
