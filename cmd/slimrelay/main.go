// slimrelay is a SLIM protocol fixture server: it accepts TCP connections
// from a FitNesse-compatible test runner and executes the bundled
// fixtures on its behalf.
//
// Usage:
//
//	slimrelay --port 8085 --syspath ./fixtures --keepalive
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/AleksandrIakhnev/waferslim/internal/config"
	"github.com/AleksandrIakhnev/waferslim/internal/resolve"
	"github.com/AleksandrIakhnev/waferslim/internal/server"
	"github.com/AleksandrIakhnev/waferslim/internal/telemetry"

	_ "github.com/AleksandrIakhnev/waferslim/fixtures"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, err := config.Parse(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	level := telemetry.INFO
	if cfg.Verbose {
		level = telemetry.DEBUG
	}
	logger := telemetry.New(os.Stderr, level)

	for _, path := range cfg.SysPaths {
		if err := resolve.LoadDescriptors(path); err != nil {
			logger.Error("syspath descriptor load failed", telemetry.KV{Key: "path", Value: path}, telemetry.KV{Key: "error", Value: err.Error()})
			return 1
		}
	}

	srv, err := server.New(cfg.Addr(),
		server.WithKeepalive(cfg.Keepalive),
		server.WithLogger(logger),
		server.WithRateLimit(cfg.RateLimit, cfg.RateCooldown, cfg.RateMaxSources),
	)
	if err != nil {
		logger.Error("failed to construct server", telemetry.KV{Key: "error", Value: err.Error()})
		return 1
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logger.Info("listening", telemetry.KV{Key: "addr", Value: cfg.Addr()})
	if err := srv.Serve(ctx); err != nil {
		logger.Error("server exited with error", telemetry.KV{Key: "error", Value: err.Error()})
		return 1
	}
	return 0
}
