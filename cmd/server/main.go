package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/eugenenazirov/cargo-planner/internal/application"
	"github.com/eugenenazirov/cargo-planner/internal/config"
	"github.com/eugenenazirov/cargo-planner/internal/logging"
)

var signalNotify = signal.Notify

func main() {
	overrides, err := parseFlags(os.Args[1:])
	kingpin.FatalIfError(err, "invalid arguments")

	cfg, err := config.Load(overrides)
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}

	logger, err := logging.New(logging.Options{Level: cfg.LogLevel})
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

	if err := app.Start(); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}

	shutdown(app.Server(), cfg.ShutdownGracePeriod, logger)
}

// parseFlags maps command-line flags onto config overrides. Flags left at
// their sentinel defaults do not override other sources.
func parseFlags(args []string) (*config.CLIOverrides, error) {
	kingpinApp := kingpin.New("cargo-server", "Cargo Planner - loads items into protect, cold and normal containers over HTTP")
	configFile := kingpinApp.Flag("config", "Path to YAML configuration file").String()
	port := kingpinApp.Flag("port", "HTTP port exposed by the service").String()
	containersStr := kingpinApp.Flag("containers", "Initial containers as role:capacity:cost, e.g. N:10:1,P:5:2,C:5:3").String()
	maxStates := kingpinApp.Flag("max-states", "State budget of the exact optimizer before it falls back to approximations").Default("0").Int()
	logLevel := kingpinApp.Flag("log-level", "Log level (debug, info, warn, error)").String()
	rateLimitRPSFlag := kingpinApp.Flag("rate-limit-rps", "Requests per second allowed (set 0 to disable)").Default("-1").Float64()
	rateLimitBurstFlag := kingpinApp.Flag("rate-limit-burst", "Burst capacity for rate limiter (set 0 to disable)").Default("-1").Int()

	if _, err := kingpinApp.Parse(args); err != nil {
		return nil, err
	}

	overrides := &config.CLIOverrides{
		ConfigFile: *configFile,
	}

	if *port != "" {
		overrides.Port = port
	}

	if *containersStr != "" {
		overrides.ContainersStr = containersStr
	}

	if *maxStates > 0 {
		overrides.MaxStates = maxStates
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

	return overrides, nil
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
