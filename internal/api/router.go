package api

import (
	"net/http"

	"github.com/reblaw/legal-api/internal/server"
)

type endpoint struct {
	pattern string
	handler http.Handler
}

// NewRouter returns the HTTP handler serving every endpoint of srv.
func NewRouter(srv server.Server) http.Handler {
	endpoints := []endpoint{
		{"/api/article-by-name", ArticleByNameHandler(srv)},
		{"/api/judge/score", SharedSecretMiddleware(srv, JudgeScoreHandler(srv))},
		{"/health", HealthHandler()},
	}
	if srv.Metrics != nil {
		endpoints = append(endpoints, endpoint{"/metrics", srv.Metrics.Handler()})
	}

	mux := http.NewServeMux()
	for _, e := range endpoints {
		mux.Handle(e.pattern, instrument(srv, e.pattern, e.handler))
	}
	return requestIDMiddleware(mux)
}
