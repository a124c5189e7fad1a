package main

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/atinyakov/AccountKeeper/internal/config"
	handler "github.com/atinyakov/AccountKeeper/internal/server/handler/http"
	"github.com/atinyakov/AccountKeeper/internal/service"
)

// Server bundles the HTTP server with the service it exposes.
type Server struct {
	HTTP     *http.Server
	Accounts *service.Accounts
	Log      *zap.Logger
}

func newAccountHandler(svc *service.Accounts) *handler.AccountHandler {
	return &handler.AccountHandler{AccountService: svc}
}

func newServer(opts *config.Options, router http.Handler, svc *service.Accounts, log *zap.Logger) *Server {
	return &Server{
		HTTP: &http.Server{
			Addr:              opts.Address,
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
		},
		Accounts: svc,
		Log:      log,
	}
}
