package api

import (
	"fmt"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/reblaw/legal-api/internal/server"
)

// ArticleByNameRequest contains the fields allowed in an article lookup.
type ArticleByNameRequest struct {
	LawName       *string `json:"law_name"`
	ArticleNumber *int    `json:"article_number"`
}

// Validate checks that both fields are present.
func (r ArticleByNameRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.LawName, validation.NotNil),
		validation.Field(&r.ArticleNumber, validation.NotNil),
	)
}

// ArticleByNameHandler returns the text of an article given a law name and an
// article number. Unknown laws and missing articles are reported in the body
// with a 200 status.
func ArticleByNameHandler(srv server.Server) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			var req ArticleByNameRequest
			if err := decodeRequest(r, &req); err != nil {
				srv.Logger.Warn("error decoding article request", "error", err)
				http.Error(w, fmt.Sprintf("Bad request: %q", err),
					http.StatusBadRequest)
				return
			}
			if err := req.Validate(); err != nil {
				http.Error(w, fmt.Sprintf("Invalid request: %v", err),
					http.StatusUnprocessableEntity)
				return
			}

			res, err := srv.Articles.Lookup(r.Context(), *req.LawName, *req.ArticleNumber)
			if err != nil {
				srv.Logger.Error("error looking up article",
					"error", err,
					"law_name", *req.LawName,
					"article_number", *req.ArticleNumber,
				)
				http.Error(w, "Internal server error", http.StatusInternalServerError)
				return
			}
			srv.Metrics.ObserveLookup(string(res.Outcome))

			if err := respondJSON(w, http.StatusOK, res); err != nil {
				srv.Logger.Error("error encoding article response", "error", err)
			}

		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
	})
}
