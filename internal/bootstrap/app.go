package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/yanqian/doc-summarizer/internal/infra/config"
)

const minShutdownGrace = 10 * time.Second

// App encapsulates the HTTP server lifecycle.
type App struct {
	cfg    *config.Config
	logger *slog.Logger
	server *http.Server
}

// NewApp is used by Wire to build the runnable app.
func NewApp(cfg *config.Config, logger *slog.Logger, server *http.Server) *App {
	return &App{cfg: cfg, logger: logger.With("component", "bootstrap"), server: server}
}

// Run starts the HTTP server and blocks until shutdown. In-flight summaries get
// up to the write timeout to finish.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("http server starting",
			"address", a.cfg.HTTP.Address,
			"provider", a.cfg.LLM.Provider,
			"max_chunk_tokens", a.cfg.Summary.MaxChunkTokens,
			"max_upload_bytes", a.cfg.Upload.MaxBytes,
			"metrics", a.cfg.Metrics.Enabled)
		if err := a.server.ListenAndServe(); err != nil {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		grace := a.shutdownGrace()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
		defer cancel()
		a.logger.Info("shutdown signal received", "grace", grace.String())
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (a *App) shutdownGrace() time.Duration {
	if a.cfg.HTTP.WriteTimeout > minShutdownGrace {
		return a.cfg.HTTP.WriteTimeout
	}
	return minShutdownGrace
}
