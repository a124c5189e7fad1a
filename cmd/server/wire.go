//go:build wireinject
// +build wireinject

package main

import (
	"context"

	"github.com/google/wire"

	"github.com/atinyakov/AccountKeeper/internal/app"
	"github.com/atinyakov/AccountKeeper/internal/config"
	handler "github.com/atinyakov/AccountKeeper/internal/server/handler/http"
)

func InitializeServer(ctx context.Context, opts *config.Options) (*Server, func(), error) {
	wire.Build(
		app.ProviderSet,
		newAccountHandler,
		handler.NewRouter,
		newServer,
	)
	return &Server{}, nil, nil
}
