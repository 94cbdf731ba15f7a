package server

import (
	"github.com/hashicorp/go-hclog"

	"github.com/reblaw/legal-api/internal/config"
	"github.com/reblaw/legal-api/internal/metrics"
	"github.com/reblaw/legal-api/pkg/articles"
	"github.com/reblaw/legal-api/pkg/judge"
)

// Server contains the dependencies shared by the HTTP handlers.
type Server struct {
	// Config is the config for the server.
	Config *config.Config

	// Articles resolves law names and reads articles.
	Articles *articles.Service

	// Judge scores submitted arguments.
	Judge judge.Judge

	// Metrics holds the Prometheus collectors. May be nil.
	Metrics *metrics.Metrics

	// Logger is the logger for the server.
	Logger hclog.Logger
}
