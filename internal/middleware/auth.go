package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"sylo/internal/auth"
	"sylo/internal/httputil"
	"sylo/internal/metrics"
)

// AuthOptions configures AuthMiddleware
type AuthOptions struct {
	// PublicPaths skip authentication entirely (exact match)
	PublicPaths []string

	// DevUserID, when set, is used for requests without a bearer token.
	// Only wired in dev runs against the local stores.
	DevUserID string

	Metrics *metrics.Metrics
	Logger  *slog.Logger
}

// AuthMiddleware validates the Supabase bearer token and stores the subject as the user id.
// verifier may be nil when only the dev user is allowed.
func AuthMiddleware(verifier auth.JWTVerifier, opts AuthOptions) func(http.Handler) http.Handler {
	public := make(map[string]bool, len(opts.PublicPaths))
	for _, p := range opts.PublicPaths {
		public[p] = true
	}

	reject := func(w http.ResponseWriter, r *http.Request, detail string) {
		if opts.Metrics != nil {
			opts.Metrics.AuthFailures.Inc()
		}
		httputil.RespondProblem(w, r, http.StatusUnauthorized, detail)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if public[r.URL.Path] || r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			header := r.Header.Get("Authorization")
			if header == "" {
				if opts.DevUserID != "" {
					next.ServeHTTP(w, httputil.WithUserID(r, opts.DevUserID))
					return
				}
				reject(w, r, "missing authorization header")
				return
			}

			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				reject(w, r, "invalid authorization header format")
				return
			}
			if verifier == nil {
				reject(w, r, "token verification unavailable")
				return
			}

			claims, err := verifier.VerifyToken(token)
			if err != nil {
				opts.Logger.Debug("authentication failed", "path", r.URL.Path, "error", err)
				reject(w, r, "invalid or expired token")
				return
			}

			next.ServeHTTP(w, httputil.WithUserID(r, claims.GetUserID()))
		})
	}
}
