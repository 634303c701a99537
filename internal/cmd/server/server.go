// Package server parses campform-server configuration and serves the camp
// data type endpoint.
package server

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/goliatone/go-campform/components/campdatatypes"
	entrypoint "github.com/goliatone/go-campform/internal/cmd"
	"github.com/goliatone/go-campform/pkg/datatypes"
)

// Config holds server configuration.
type Config struct {
	Addr            string        `env:"CAMPFORM_ADDR" envDefault:":8080"`
	BasePath        string        `env:"CAMPFORM_BASE_PATH" envDefault:"/"`
	DefaultLocale   string        `env:"CAMPFORM_DEFAULT_LOCALE" envDefault:"en"`
	ShutdownTimeout time.Duration `env:"CAMPFORM_SHUTDOWN_TIMEOUT" envDefault:"5s"`
	LogLevel        string        `env:"CAMPFORM_LOG_LEVEL" envDefault:"info"`
}

// ParseConfig parses environment and flags into Config. Flags override the
// environment.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	fs.StringVar(&cfg.BasePath, "base-path", cfg.BasePath, "path prefix for all routes")
	fs.StringVar(&cfg.DefaultLocale, "default-locale", cfg.DefaultLocale, "locale used when negotiation fails")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "debug, info, warn or error")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// NewHandler builds the server mux with the camp data type component routes
// mounted under the base path.
func NewHandler(cfg Config, reg *datatypes.Registry, logger *slog.Logger) (http.Handler, error) {
	if reg == nil {
		reg = datatypes.NewDefaultRegistry()
	}
	if logger == nil {
		logger = slog.Default()
	}
	if dups := reg.Duplicates(); len(dups) > 0 {
		logger.Warn("camp data types registered more than once", "values", dups)
	}

	mux := http.NewServeMux()
	component := campdatatypes.New(
		campdatatypes.WithRegistry(reg),
		campdatatypes.WithDefaultLocale(cfg.DefaultLocale),
	)
	routes, err := component.RegisterRoutes(mux, cfg.BasePath)
	if err != nil {
		return nil, err
	}
	for _, route := range routes {
		logger.Info("route registered", "route", route.Name, "pattern", route.Pattern)
	}

	return logRequests(mux, logger), nil
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context, cfg Config, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	handler, err := NewHandler(cfg, nil, logger)
	if err != nil {
		return err
	}

	listener, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.Addr, err)
	}
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", listener.Addr().String())
		errCh <- srv.Serve(listener)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	logger.Info("server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func logRequests(next http.Handler, logger *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}
