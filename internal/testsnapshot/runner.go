package testsnapshot

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/okian/fplpulse/pkg/logger"
)

// Server timeouts.
const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// Run serves the generated document until ctx is done.
func Run(ctx context.Context, cfg *Config) error {
	log := logger.Get().Named("snapshot-server")

	h, err := NewHandler(Generate(*cfg))
	if err != nil {
		return err
	}
	if cfg.OutputFile != "" {
		if err := WriteFile(cfg.OutputFile, h.Body()); err != nil {
			return err
		}
		log.Info(ctx, "wrote snapshot", logger.String("file", cfg.OutputFile))
	}

	var handler http.Handler = h
	if cfg.Verbose {
		handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			h.ServeHTTP(w, r)
			log.Debug(r.Context(), "request",
				logger.String("method", r.Method),
				logger.String("path", r.URL.Path),
				logger.Duration("took", time.Since(start)))
		})
	}

	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.Addr, err)
	}
	srv := &http.Server{Handler: handler, ReadHeaderTimeout: readHeaderTimeout}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	log.Info(ctx, "serving snapshot",
		logger.String("url", "http://"+ln.Addr().String()+Path),
		logger.Int("players", cfg.Players),
		logger.Int("teams", cfg.Teams),
		logger.Int64("seed", cfg.Seed))

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		log.Info(context.Background(), "snapshot server stopped", logger.Int64("requests", h.Hits()))
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	}
}
