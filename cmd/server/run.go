// file: cmd/server/run.go
package main

import (
	"context"
	"io"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/scenebridge/scenebridge/internal/config"
	"github.com/scenebridge/scenebridge/internal/host"
	"github.com/scenebridge/scenebridge/internal/jsonrpc"
	"github.com/scenebridge/scenebridge/internal/logbuffer"
	"github.com/scenebridge/scenebridge/internal/logging"
	"github.com/scenebridge/scenebridge/internal/mcp"
	"github.com/scenebridge/scenebridge/internal/metrics"
	"github.com/scenebridge/scenebridge/internal/resources"
	"github.com/scenebridge/scenebridge/internal/tools"
)

// maxRequestBytes bounds a single JSON-RPC request body.
const maxRequestBytes = 4 << 20

// runServer wires the full stack and serves until the process receives
// SIGINT or SIGTERM, then drains within shutdownTimeout.
func runServer(configPath string, shutdownTimeout time.Duration, debug bool) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	level := logging.LevelInfo
	if debug {
		level = logging.LevelDebug
	}
	logging.InitLogging(level, nil)
	logger := logging.GetLogger("server")

	var cfg *config.Config
	var err error
	if configPath != "" {
		logger.Info("Loading configuration from file.", "path", configPath)
		cfg, err = config.LoadFromFile(configPath)
		if err != nil {
			return errors.Wrap(err, "failed to load configuration from file")
		}
	} else {
		logger.Info("Using default configuration.")
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}

	logger.Info("Starting SceneBridge server.",
		"version", version,
		"serverName", cfg.Server.Name,
		"port", cfg.Server.Port,
		"strictHandshake", cfg.Protocol.StrictHandshake,
		"debug", debug)

	// Host collaborators. The in-memory host stands in for an embedding
	// application driving the same interfaces.
	appHost := host.NewMemoryHost()

	buffer := logbuffer.New(cfg.LogBuffer.Capacity, cfg.LogBuffer.ReadLimit, logger)
	buffer.Start(appHost)
	defer buffer.Stop()

	handler, err := mcp.NewHandler(cfg, logger)
	if err != nil {
		return errors.Wrap(err, "failed to create protocol handler")
	}

	recorder := metrics.NewRecorder()
	handler.SetMetricsRecorder(recorder)

	tools.RegisterBuiltins(handler.Tools(), appHost, logger)
	resources.RegisterBuiltins(handler.Resources(), appHost, buffer, cfg, logger)

	dispatcher := jsonrpc.NewDispatcher(handler, logger)

	httpServer := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Server.Port),
		Handler:           newRouter(dispatcher, recorder, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("HTTP transport listening.", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "http server failed")
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutdown signal received, draining requests.", "timeout", shutdownTimeout)
		drainCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(drainCtx); err != nil {
			return errors.Wrap(err, "http shutdown failed")
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server exited with error.", "error", err)
		return err
	}
	logger.Info("Server stopped.")
	return nil
}

// newRouter builds the HTTP surface: the JSON-RPC endpoint plus the health
// and metrics sidecars.
func newRouter(dispatcher *jsonrpc.Dispatcher, recorder *metrics.Recorder, logger logging.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Post("/rpc", func(w http.ResponseWriter, req *http.Request) {
		body, err := io.ReadAll(io.LimitReader(req.Body, maxRequestBytes))
		if err != nil {
			logger.Warn("Failed to read request body.", "error", err)
			http.Error(w, "failed to read request body", http.StatusBadRequest)
			return
		}

		resp := dispatcher.HandleMessage(req.Context(), body)
		if resp == nil {
			// Notification: acknowledge without a body.
			w.WriteHeader(http.StatusNoContent)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if _, err := w.Write(resp); err != nil {
			logger.Warn("Failed to write response.", "error", err)
		}
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Method(http.MethodGet, "/metrics", recorder.HTTPHandler())

	return r
}
