package api

import (
	"crypto/subtle"
	"fmt"
	"net/http"

	"github.com/reblaw/legal-api/internal/server"
	"github.com/reblaw/legal-api/pkg/judge"
)

// SharedSecretMiddleware rejects requests whose secret header does not match
// the configured shared secret. With no secret configured every request is
// passed through.
func SharedSecretMiddleware(srv server.Server, next http.Handler) http.Handler {
	if !srv.Config.JudgeGateEnabled() {
		return next
	}

	header := srv.Config.Judge.Header
	secret := []byte(srv.Config.Judge.SharedSecret)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got := r.Header.Get(header)
		if got == "" {
			srv.Logger.Warn("judge: missing shared secret header",
				"header", header,
				"path", r.URL.Path,
				"method", r.Method,
			)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		if subtle.ConstantTimeCompare([]byte(got), secret) != 1 {
			srv.Logger.Warn("judge: invalid shared secret",
				"header", header,
				"path", r.URL.Path,
				"method", r.Method,
			)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// JudgeScoreHandler scores a submitted legal argument.
func JudgeScoreHandler(srv server.Server) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			var sub judge.Submission
			if err := decodeRequest(r, &sub); err != nil {
				srv.Logger.Warn("error decoding score request", "error", err)
				http.Error(w, fmt.Sprintf("Bad request: %q", err),
					http.StatusBadRequest)
				return
			}
			if err := sub.Validate(); err != nil {
				http.Error(w, fmt.Sprintf("Invalid request: %v", err),
					http.StatusUnprocessableEntity)
				return
			}
			if len(sub.Extra) > 0 {
				srv.Logger.Debug("ignoring extra submission fields", "count", len(sub.Extra))
			}

			ev, err := srv.Judge.Score(r.Context(), &sub)
			if err != nil {
				srv.Logger.Error("error scoring submission",
					"error", err,
					"judge", srv.Judge.Name(),
				)
				http.Error(w, "Internal server error", http.StatusInternalServerError)
				return
			}

			if err := respondJSON(w, http.StatusOK, ev); err != nil {
				srv.Logger.Error("error encoding score response", "error", err)
			}

		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
	})
}
