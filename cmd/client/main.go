// Package main runs the interactive account shell against the configured
// side-store.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/atinyakov/AccountKeeper/internal/app"
	"github.com/atinyakov/AccountKeeper/internal/client/shell"
	"github.com/atinyakov/AccountKeeper/internal/config"
)

var (
	version   string
	buildDate string
)

func main() {
	options, err := config.Parse(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if options.Version {
		fmt.Printf("AccountKeeper Shell\nVersion: %s\nBuild Date: %s\n", version, buildDate)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Open the side-store and build the account service.
	svc, log, cleanup, err := app.NewAccountService(ctx, options)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer cleanup()

	// Load the persisted accounts before the first prompt.
	svc.Init(ctx)

	if err := shell.New(svc, os.Stdin, os.Stdout).Run(ctx); err != nil && ctx.Err() == nil {
		log.Error("shell stopped", zap.Error(err))
	}
}
