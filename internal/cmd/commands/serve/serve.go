package serve

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/reblaw/legal-api/internal/api"
	"github.com/reblaw/legal-api/internal/cmd/base"
	"github.com/reblaw/legal-api/internal/config"
	"github.com/reblaw/legal-api/internal/metrics"
	"github.com/reblaw/legal-api/internal/server"
	"github.com/reblaw/legal-api/pkg/articles"
	"github.com/reblaw/legal-api/pkg/database"
	"github.com/reblaw/legal-api/pkg/judge"
)

const defaultShutdownTimeout = 10 * time.Second

type Command struct {
	*base.Command

	flagConfig          string
	flagAddress         string
	flagDatabase        string
	flagShutdownTimeout time.Duration
}

func (c *Command) Synopsis() string {
	return "Run the HTTP API"
}

func (c *Command) Help() string {
	return `Usage: reblaw serve [options]

  Serve the article lookup and scoring API. The article database is opened
  read-only and must already contain the articles table (see "reblaw migrate"
  and "reblaw import").

  Environment variables override the configuration file:
    REBLAW_DB_PATH, REBLAW_SHARED_SECRET, REBLAW_LOG_LEVEL, PORT` + c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("serve", flag.ContinueOnError))

	f.ConfigVar(&c.flagConfig)
	f.StringVar(
		&c.flagAddress, "addr", "",
		"Listen address, overrides the configuration (e.g. :8000)",
	)
	f.StringVar(
		&c.flagDatabase, "db", "",
		"[REBLAW_DB_PATH] Path to the article database",
	)
	f.DurationVar(
		&c.flagShutdownTimeout, "shutdown-timeout", defaultShutdownTimeout,
		"Time allowed for in-flight requests on shutdown",
	)

	return f
}

func (c *Command) Run(args []string) int {
	f := c.Flags()
	if err := f.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	cfg, err := c.LoadConfig(c.flagConfig)
	if err != nil {
		c.UI.Error(fmt.Sprintf("error loading configuration: %v", err))
		return 1
	}
	if c.flagAddress != "" {
		cfg.Server.Address = c.flagAddress
	}
	if c.flagDatabase != "" {
		cfg.Database.Path = c.flagDatabase
	}

	db, err := database.Open(database.Config{
		Path:     cfg.Database.Path,
		ReadOnly: true,
	}, c.Log.Named("database"))
	if err != nil {
		c.UI.Error(fmt.Sprintf("error opening article database: %v", err))
		return 1
	}
	defer database.Close(db)

	srv := server.Server{
		Config:   cfg,
		Articles: articles.NewService(articles.NewSQLStore(db), c.Log.Named("articles")),
		Judge:    judge.NewStub(),
		Metrics:  metrics.New(),
		Logger:   c.Log.Named("api"),
	}
	if !cfg.JudgeGateEnabled() {
		c.Log.Warn("no shared secret configured, scoring endpoint is open")
	}

	ln, err := net.Listen("tcp", cfg.Server.Address)
	if err != nil {
		c.UI.Error(fmt.Sprintf("error listening on %s: %v", cfg.Server.Address, err))
		return 1
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	c.Log.Info("listening",
		"address", ln.Addr().String(),
		"database", cfg.Database.Path,
		"judge", srv.Judge.Name(),
	)
	if err := Serve(ctx, newHTTPServer(cfg, api.NewRouter(srv)), ln, c.flagShutdownTimeout); err != nil {
		c.UI.Error(fmt.Sprintf("error serving: %v", err))
		return 1
	}

	c.Log.Info("server stopped")
	return 0
}

func newHTTPServer(cfg *config.Config, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

// Serve runs srv on ln until ctx is done, then shuts it down, waiting up to
// timeout for in-flight requests.
func Serve(ctx context.Context, srv *http.Server, ln net.Listener, timeout time.Duration) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		srv.Close()
		return fmt.Errorf("error shutting down: %w", err)
	}
	<-errCh
	return nil
}
