// Package app builds the object graph shared by the server and the shell.
package app

import (
	"context"
	"fmt"

	"github.com/google/wire"
	"go.uber.org/zap"

	"github.com/atinyakov/AccountKeeper/internal/config"
	"github.com/atinyakov/AccountKeeper/internal/db"
	"github.com/atinyakov/AccountKeeper/internal/logger"
	"github.com/atinyakov/AccountKeeper/internal/repository"
	"github.com/atinyakov/AccountKeeper/internal/service"
	"github.com/atinyakov/AccountKeeper/internal/storage"
)

// ProviderSet wires options into a ready *service.Accounts.
var ProviderSet = wire.NewSet(
	NewLogger,
	NewSideStore,
	NewRepository,
	service.NewAccounts,
	wire.Bind(new(service.Repository), new(*repository.AccountRepository)),
)

// NewLogger builds the zap logger at opts.LogLevel. The cleanup flushes it.
func NewLogger(opts *config.Options) (*zap.Logger, func(), error) {
	l := logger.New()
	if err := l.Init(opts.LogLevel); err != nil {
		return nil, nil, err
	}
	return l.Log, func() { _ = l.Log.Sync() }, nil
}

// NewSideStore opens the backend selected by opts.Store.
func NewSideStore(ctx context.Context, opts *config.Options, log *zap.Logger) (repository.SideStore, func(), error) {
	switch opts.Store {
	case config.StoreMemory:
		log.Warn("using in-memory side-store, accounts will not survive a restart")
		return storage.NewMemoryStore(), func() {}, nil

	case config.StoreFile:
		log.Info("using file side-store", zap.String("url", opts.StorageURL))
		return storage.NewFileStore(opts.StorageURL), func() {}, nil

	case config.StorePostgres:
		sqlDB, err := db.InitPostgres(ctx, opts.DatabaseDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot init database: %w", err)
		}
		log.Info("using postgres side-store")
		return storage.NewPostgresStore(sqlDB), func() { _ = sqlDB.Close() }, nil

	case config.StoreRedis:
		client, err := storage.NewRedisClient(ctx, opts.RedisAddr, opts.RedisPassword, opts.RedisDB)
		if err != nil {
			return nil, nil, err
		}
		log.Info("using redis side-store", zap.String("addr", opts.RedisAddr))
		return storage.NewRedisStore(client), func() { _ = client.Close() }, nil
	}
	return nil, nil, fmt.Errorf("unknown store %q", opts.Store)
}

// NewRepository creates the account repository over store.
func NewRepository(store repository.SideStore, opts *config.Options, log *zap.Logger) *repository.AccountRepository {
	return repository.NewAccountRepository(store,
		repository.WithKey(opts.Key),
		repository.WithLogger(log),
	)
}

// NewAccountService builds the full graph without wire, for the shell.
func NewAccountService(ctx context.Context, opts *config.Options) (*service.Accounts, *zap.Logger, func(), error) {
	log, flush, err := NewLogger(opts)
	if err != nil {
		return nil, nil, nil, err
	}
	store, closeStore, err := NewSideStore(ctx, opts, log)
	if err != nil {
		flush()
		return nil, nil, nil, err
	}
	repo := NewRepository(store, opts, log)
	svc := service.NewAccounts(repo, log)
	return svc, log, func() { closeStore(); flush() }, nil
}
