package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"flagstat-service/internal/archive"
	"flagstat-service/internal/config"
	httpserver "flagstat-service/internal/http"
	"flagstat-service/internal/http/handlers"
	"flagstat-service/internal/http/middleware"
	"flagstat-service/internal/live"
	"flagstat-service/internal/logging"
	"flagstat-service/internal/metrics"
	"flagstat-service/internal/stats"
	"flagstat-service/internal/store"
)

var metricsSetup = metrics.Setup

// Server wires the store boundary: in-memory state, document persistence,
// the HTTP surface, the live feed, and telemetry.
type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	store         *store.MemoryStore
	docs          *archive.FSStore
	hub           *live.Hub
	httpServer    httpServer
	metricsServer httpServer
	metricsStop   func(context.Context) error
}

// New constructs a server with default wiring: document store under
// cfg.DataDir, state restored from disk, save-on-mutation and live
// broadcast hooks registered.
func New(cfg config.Config, logger *slog.Logger) *Server {
	return newServerWithDocs(cfg, logger, archive.NewFSStore(cfg.DataDir))
}

func newServerWithDocs(cfg config.Config, logger *slog.Logger, docs *archive.FSStore) *Server {
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger)

	memoryStore := store.NewMemoryStore()
	restoreState(memoryStore, docs, logger)

	hub := live.NewHub(logger)
	registerHooks(cfg, memoryStore, docs, hub, recorder, logger)

	httpSrv := buildHTTPServer(cfg, memoryStore, hub, recorder, logger)

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		store:         memoryStore,
		docs:          docs,
		hub:           hub,
		httpServer:    httpSrv,
		metricsServer: metricsSrv,
		metricsStop:   metricsShutdown,
	}
}

// restoreState loads the persisted document, logging whatever the decoder
// had to recover. Load failures leave the store empty rather than abort;
// a tracker used live must come up regardless.
func restoreState(memoryStore *store.MemoryStore, docs *archive.FSStore, logger *slog.Logger) {
	doc, report, err := docs.Load()
	if err != nil {
		if logger != nil {
			logger.Warn("document load failed, starting empty", "err", err)
		}
		return
	}
	for _, entry := range report {
		if logger != nil {
			logger.Warn("document recovered field", "detail", entry)
		}
	}
	memoryStore.Replace(doc.ToState())
	if logger != nil {
		logger.Info("state restored",
			"players", len(doc.Players),
			"games", len(doc.Games),
		)
	}
}

// registerHooks attaches the save-on-mutation persistence hook and the
// live box-score broadcast hook. Hooks run synchronously: each mutation
// is on disk before the next transition is accepted.
func registerHooks(cfg config.Config, memoryStore *store.MemoryStore, docs *archive.FSStore, hub *live.Hub, recorder *metrics.Recorder, logger *slog.Logger) {
	memoryStore.OnMutation(func(action, gameID string, st store.State) {
		recorder.RecordMutation(action)

		if cfg.Autosave {
			start := time.Now()
			err := docs.Save(archive.FromState(st))
			recorder.RecordPersist(time.Since(start), err)
			if err != nil && logger != nil {
				logger.Error("autosave failed",
					slog.String(logging.FieldAction, action),
					"err", err,
				)
			}
		}

		if gameID == "" {
			return
		}
		for _, g := range st.Games {
			if g.ID != gameID {
				continue
			}
			start := time.Now()
			score := stats.BuildBoxScore(g, st.Players)
			recorder.RecordAggregation(time.Since(start), len(g.Events))
			if hub.Broadcast(gameID, score) > 0 {
				recorder.RecordLiveBroadcast()
			}
			return
		}
	})
}

func buildHTTPServer(cfg config.Config, memoryStore *store.MemoryStore, hub *live.Hub, recorder *metrics.Recorder, logger *slog.Logger) httpServer {
	handler := handlers.NewHandler(memoryStore, hub, recorder, logger)
	router := httpserver.NewRouter(handler)
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	wrapped := middleware.LoggingMiddleware(logger, recorder, router)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      wrapped,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return netHTTPServer{srv: srv}
}

func buildMetrics(cfg config.Config, logger *slog.Logger) (*metrics.Recorder, httpServer, func(context.Context) error) {
	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		if logger != nil {
			logger.Warn("metrics setup failed, continuing without telemetry", "err", err)
		}
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:    ":" + recCfg.Port,
				Handler: handler,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

// Run starts the HTTP and metrics servers, then waits for context
// cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)

	<-ctx.Done()
	if s.logger != nil {
		s.logger.Info("shutdown signal received")
	}

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	launchServer("http", s.httpServer, s.logger, func(error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics shutdown failed", "error", err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
			s.logger.Warn("metrics server shutdown failed", "error", err)
		}
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil && s.logger != nil {
		s.logger.Error("graceful shutdown failed", "error", err)
	}

	if s.logger != nil {
		s.logger.Info("shutdown complete")
	}
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		if logger != nil {
			logger.Info("starting "+name+" server", slog.String("addr", srv.Addr()))
		}
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if logger != nil {
				logger.Warn(name+" server failed", "error", err)
			}
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}

// Store exposes the state owner (useful for tests).
func (s *Server) Store() *store.MemoryStore {
	return s.store
}
