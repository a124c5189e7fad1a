// Package main starts the AccountKeeper HTTP server: it reads configuration,
// opens the side-store, loads the persisted accounts and serves the API.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/atinyakov/AccountKeeper/internal/config"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line, environment and file configuration.
	options, err := config.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", orNA(version))
	fmt.Printf("Build date: %s\n", orNA(buildDate))
	if options.Version {
		return
	}

	// Stop on SIGINT or SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Build logger, side-store, repository, service and router.
	srv, cleanup, err := InitializeServer(ctx, options)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to initialize server:", err)
		os.Exit(1)
	}
	defer cleanup()

	// Load the persisted accounts. A failed load is logged, not fatal.
	srv.Accounts.Init(ctx)

	// Shut down gracefully once the context is cancelled.
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.HTTP.Shutdown(shutdownCtx); err != nil {
			srv.Log.Error("graceful shutdown failed", zap.Error(err))
		}
	}()

	// Start the HTTP server.
	srv.Log.Info("starting HTTP server", zap.String("addr", srv.HTTP.Addr))
	if err := srv.HTTP.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		srv.Log.Error("failed to start HTTP server", zap.Error(err))
		return
	}
	srv.Log.Info("server stopped")
}

// orNA returns s, or "N/A" when s is empty (equivalent to cmp.Or(s, "N/A"),
// which requires Go 1.22).
func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
