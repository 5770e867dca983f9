package application

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/eugenenazirov/envprops/internal/api"
	"github.com/eugenenazirov/envprops/internal/config"
	"github.com/eugenenazirov/envprops/internal/metrics"
	"github.com/eugenenazirov/envprops/internal/properties"
	"github.com/eugenenazirov/envprops/internal/storage"
)

// App encapsulates the application dependencies and HTTP server.
type App struct {
	storage  storage.Storage
	resolver *properties.Resolver
	registry *prometheus.Registry
	handler  *api.Handler
	router   http.Handler
	logger   *zap.Logger
	server   *http.Server
}

// Option configures App construction.
type Option func(*options)

type options struct {
	env properties.Source
}

// WithEnvironment replaces the process environment as the fallback source.
func WithEnvironment(env properties.Source) Option {
	return func(o *options) {
		o.env = env
	}
}

// New initializes the application with all dependencies from the provided configuration.
func New(cfg config.Config, logger *zap.Logger, opts ...Option) (*App, error) {
	o := options{env: properties.NewEnvSource()}
	for _, opt := range opts {
		opt(&o)
	}

	store, err := storage.NewMemoryStorage(cfg.Overrides)
	if err != nil {
		return nil, fmt.Errorf("failed to apply initial overrides: %w", err)
	}

	registry := prometheus.NewRegistry()
	m := metrics.NewMetrics(registry)

	resolver := properties.New(store, o.env,
		properties.WithLogger(logger.Named("resolver")),
		properties.WithMetrics(m),
	)
	handler := api.NewHandler(resolver, store)
	apiRouter := api.NewRouter(handler, logger,
		api.WithLogging(cfg.EnableRequestLogging),
		api.WithRateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst),
		api.WithMetrics(m, registry),
	)

	return &App{
		storage:  store,
		resolver: resolver,
		registry: registry,
		handler:  handler,
		router:   apiRouter,
		logger:   logger,
		server:   NewServer(cfg, BuildRootHandler(apiRouter)),
	}, nil
}

// BuildRootHandler routes API and metrics traffic and answers 404 for everything else.
func BuildRootHandler(apiHandler http.Handler) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/api/", apiHandler)
	mux.Handle("/metrics", apiHandler)
	mux.Handle("/", http.NotFoundHandler())
	return mux
}

// NewServer creates and configures an HTTP server from the provided configuration.
func NewServer(cfg config.Config, handler http.Handler) *http.Server {
	addr := cfg.Port
	if !strings.Contains(addr, ":") {
		addr = ":" + addr
	}

	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}
}

// Start starts the HTTP server in a goroutine and logs the listening address.
func (a *App) Start() error {
	go func() {
		a.logger.Info("server listening", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Fatal("server error", zap.Error(err))
		}
	}()
	return nil
}

// Server returns the HTTP server instance for shutdown handling.
func (a *App) Server() *http.Server {
	return a.server
}

// Resolver returns the property resolver shared by the API and the CLI.
func (a *App) Resolver() *properties.Resolver {
	return a.resolver
}

// Storage returns the local override store.
func (a *App) Storage() storage.Storage {
	return a.storage
}
