package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/atinyakov/AccountKeeper/internal/config"
	"github.com/atinyakov/AccountKeeper/internal/models"
	"github.com/atinyakov/AccountKeeper/internal/storage"
)

func TestNewSideStore(t *testing.T) {
	ctx := context.Background()
	log := zap.NewNop()

	s, cleanup, err := NewSideStore(ctx, &config.Options{Store: config.StoreMemory}, log)
	require.NoError(t, err)
	defer cleanup()
	assert.IsType(t, &storage.MemoryStore{}, s)

	s, cleanup, err = NewSideStore(ctx, &config.Options{Store: config.StoreFile, StorageURL: t.TempDir()}, log)
	require.NoError(t, err)
	defer cleanup()
	assert.IsType(t, &storage.FileStore{}, s)

	_, _, err = NewSideStore(ctx, &config.Options{Store: "tape"}, log)
	assert.Error(t, err)
}

func TestNewLogger_BadLevel(t *testing.T) {
	_, _, err := NewLogger(&config.Options{LogLevel: "shouty"})
	assert.Error(t, err)
}

// Accounts written by one service instance are visible to the next one built
// over the same file store.
func TestNewAccountService_SurvivesRestart(t *testing.T) {
	dir := t.TempDir()
	opts := &config.Options{Store: config.StoreFile, StorageURL: dir, Key: "accounts", LogLevel: "error"}
	ctx := context.Background()

	svc, _, cleanup, err := NewAccountService(ctx, opts)
	require.NoError(t, err)
	assert.True(t, svc.Init(ctx).OK())
	acc, err := svc.Create(ctx, models.AccountDraft{Type: models.LDAP, Login: "alice"})
	require.NoError(t, err)
	cleanup()

	_, err = os.Stat(filepath.Join(dir, "accounts.json"))
	require.NoError(t, err)

	svc, _, cleanup, err = NewAccountService(ctx, opts)
	require.NoError(t, err)
	defer cleanup()
	res := svc.Init(ctx)
	require.True(t, res.OK())
	assert.Equal(t, 1, res.Count)

	got, ok := svc.Get(acc.ID)
	require.True(t, ok)
	assert.Equal(t, "alice", got.Login)
}
