package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/eugenenazirov/envprops/internal/application"
	"github.com/eugenenazirov/envprops/internal/config"
	"github.com/eugenenazirov/envprops/internal/logging"
	"github.com/eugenenazirov/envprops/internal/properties"
)

var signalNotify = signal.Notify

var errMissingProperty = errors.New("property not set")

func main() {
	kingpinApp := kingpin.New("envprops", "Resolves configuration properties from local overrides and environment variables")
	configFile := kingpinApp.Flag("config", "Path to YAML configuration file").String()
	port := kingpinApp.Flag("port", "HTTP port exposed by the service").String()
	logLevel := kingpinApp.Flag("log-level", "Log level (debug, info, warn, error)").String()
	rateLimitRPSFlag := kingpinApp.Flag("rate-limit-rps", "Requests per second allowed (set 0 to disable)").Default("-1").Float64()
	rateLimitBurstFlag := kingpinApp.Flag("rate-limit-burst", "Burst capacity for rate limiter (set 0 to disable)").Default("-1").Int()
	setOverrides := kingpinApp.Flag("set", "Local override as KEY=VALUE; takes precedence over the environment").StringMap()

	serveCmd := kingpinApp.Command("serve", "Serve the property HTTP API").Default()
	getCmd := kingpinApp.Command("get", "Resolve properties and print them as KEY=VALUE")
	getKeys := getCmd.Arg("key", "Property keys to resolve").Required().Strings()

	command := kingpin.MustParse(kingpinApp.Parse(os.Args[1:]))

	overrides := &config.CLIOverrides{
		ConfigFile: *configFile,
		Set:        *setOverrides,
	}

	if *port != "" {
		overrides.Port = port
	}

	if *logLevel != "" {
		overrides.LogLevel = logLevel
	}

	if *rateLimitRPSFlag >= 0 {
		overrides.RateLimitRPS = rateLimitRPSFlag
	}

	if *rateLimitBurstFlag >= 0 {
		overrides.RateLimitBurst = rateLimitBurstFlag
	}

	cfg, err := config.Load(overrides)
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer func() {
		_ = logger.Sync()
	}()

	app, err := application.New(cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize application", zap.Error(err))
	}

	switch command {
	case getCmd.FullCommand():
		if err := printProperties(os.Stdout, app.Resolver(), *getKeys); err != nil {
			_ = logger.Sync()
			kingpinApp.Fatalf("%v", err)
		}
	case serveCmd.FullCommand():
		if err := app.Start(); err != nil {
			logger.Fatal("failed to start server", zap.Error(err))
		}

		shutdown(app.Server(), cfg.ShutdownGracePeriod, logger)
	}
}

// printProperties writes KEY=VALUE for every key that resolves. Keys without a
// value are collected into a single error; an invalid key aborts immediately.
func printProperties(w io.Writer, resolver *properties.Resolver, keys []string) error {
	var missing []error
	for _, key := range keys {
		value, found, err := resolver.Resolve(key)
		if err != nil {
			return fmt.Errorf("resolve %q: %w", key, err)
		}
		if !found {
			missing = append(missing, fmt.Errorf("%s: %w", key, errMissingProperty))
			continue
		}
		if _, err := fmt.Fprintf(w, "%s=%s\n", key, value); err != nil {
			return fmt.Errorf("write %q: %w", key, err)
		}
	}
	return errors.Join(missing...)
}

func shutdown(server *http.Server, timeout time.Duration, logger *zap.Logger) {
	quit := make(chan os.Signal, 1)
	signalNotify(quit, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Warn("graceful shutdown failed", zap.Error(err))
		if closeErr := server.Close(); closeErr != nil {
			logger.Error("forced close failed", zap.Error(closeErr))
		}
	}
}
