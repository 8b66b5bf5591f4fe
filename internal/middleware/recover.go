package middleware

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/workhive/job-portal-api/internal/httputil"
)

// Recoverer is the single top-level boundary for unexpected panics: it logs
// the value with request context and responds with the generic 500 envelope.
// Raw internal detail never reaches the client.
func Recoverer(logger *zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}

					logger.Error().
						Interface("panic", rec).
						Str("method", r.Method).
						Str("path", r.URL.Path).
						Str("request_id", RequestIDFrom(r.Context())).
						Msg("panic recovered")

					httputil.Error(w, http.StatusInternalServerError, "Something went wrong.")
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
