// Package repository holds the in-memory account list and mirrors it into a
// durable key-value side-store.
package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/atinyakov/AccountKeeper/internal/models"
)

// DefaultKey is the side-store key holding the serialized account list.
const DefaultKey = "accounts"

// maxIDAttempts bounds id regeneration when the generator collides.
const maxIDAttempts = 8

var (
	// ErrPersist wraps side-store write failures.
	ErrPersist = errors.New("persist accounts")
	// ErrIDExhausted is returned when no unused id could be generated.
	ErrIDExhausted = errors.New("could not generate a unique account id")
)

// SideStore is the durable key-value surface the repository mirrors into.
type SideStore interface {
	// Get returns the value stored under key. ok is false when the key is absent.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
}

// Option configures an AccountRepository.
type Option func(*AccountRepository)

// WithKey overrides DefaultKey.
func WithKey(key string) Option {
	return func(r *AccountRepository) { r.key = key }
}

// WithIDGenerator replaces the uuid based id source.
func WithIDGenerator(fn func() string) Option {
	return func(r *AccountRepository) { r.newID = fn }
}

// WithLogger sets the logger used to report persistence failures.
func WithLogger(log *zap.Logger) Option {
	return func(r *AccountRepository) { r.log = log }
}

// AccountRepository owns the ordered account list for the current process.
// Every mutation is written to the side-store before it becomes visible; a
// failed write leaves the list as it was.
type AccountRepository struct {
	store SideStore
	key   string
	newID func() string
	log   *zap.Logger

	mu       sync.Mutex
	accounts []models.Account
}

// NewAccountRepository creates an empty repository backed by store.
// Call Hydrate once to load a previously persisted list.
func NewAccountRepository(store SideStore, opts ...Option) *AccountRepository {
	r := &AccountRepository{
		store:    store,
		key:      DefaultKey,
		newID:    uuid.NewString,
		log:      zap.NewNop(),
		accounts: []models.Account{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Create assigns a fresh id to draft, appends it and persists the list.
func (r *AccountRepository) Create(ctx context.Context, draft models.AccountDraft) (models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, err := r.uniqueID()
	if err != nil {
		return models.Account{}, err
	}
	acc := draft.WithID(id)

	next := make([]models.Account, 0, len(r.accounts)+1)
	next = append(next, r.accounts...)
	next = append(next, acc)
	if err := r.commit(ctx, next); err != nil {
		return models.Account{}, err
	}
	return acc.Clone(), nil
}

// Update replaces the account with the same id in place and persists the
// list. It reports false without touching the side-store when no account has
// that id.
func (r *AccountRepository) Update(ctx context.Context, acc models.Account) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(acc.ID)
	if idx < 0 {
		return false, nil
	}

	next := make([]models.Account, len(r.accounts))
	copy(next, r.accounts)
	next[idx] = acc.Clone()
	if err := r.commit(ctx, next); err != nil {
		return false, err
	}
	return true, nil
}

// Delete removes every account with id and persists the remainder. It returns
// the number of removed records; zero means nothing was written.
func (r *AccountRepository) Delete(ctx context.Context, id string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := make([]models.Account, 0, len(r.accounts))
	for _, acc := range r.accounts {
		if acc.ID != id {
			next = append(next, acc)
		}
	}
	removed := len(r.accounts) - len(next)
	if removed == 0 {
		return 0, nil
	}
	if err := r.commit(ctx, next); err != nil {
		return 0, err
	}
	return removed, nil
}

// FindByID returns the first account with id.
func (r *AccountRepository) FindByID(id string) (models.Account, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return models.Account{}, false
	}
	return r.accounts[idx].Clone(), true
}

// List returns a copy of all accounts in insertion order.
func (r *AccountRepository) List() []models.Account {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.Account, len(r.accounts))
	for i, acc := range r.accounts {
		out[i] = acc.Clone()
	}
	return out
}

// Persist writes the current list to the side-store.
func (r *AccountRepository) Persist(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.write(ctx, r.accounts)
}

// Hydrate replaces the in-memory list with the persisted one. An absent or
// empty value counts as nothing persisted. Any failure
// leaves the list untouched and is reported in the result and the log.
func (r *AccountRepository) Hydrate(ctx context.Context) HydrateResult {
	r.mu.Lock()
	defer r.mu.Unlock()

	raw, ok, err := r.store.Get(ctx, r.key)
	if err != nil {
		r.log.Warn("failed to read accounts from side-store", zap.String("key", r.key), zap.Error(err))
		return HydrateResult{Status: HydrateUnavailable, Err: err}
	}
	if !ok || raw == "" {
		return HydrateResult{Status: HydrateEmpty}
	}

	accounts, err := DecodeAccounts(raw)
	if err != nil {
		r.log.Warn("ignoring malformed accounts snapshot", zap.String("key", r.key), zap.Error(err))
		return HydrateResult{Status: HydrateMalformed, Err: err}
	}
	r.accounts = accounts
	return HydrateResult{Status: HydrateLoaded, Count: len(accounts)}
}

// commit persists next and installs it as the current list on success.
func (r *AccountRepository) commit(ctx context.Context, next []models.Account) error {
	if err := r.write(ctx, next); err != nil {
		return err
	}
	r.accounts = next
	return nil
}

func (r *AccountRepository) write(ctx context.Context, accounts []models.Account) error {
	raw, err := EncodeAccounts(accounts)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	if err := r.store.Set(ctx, r.key, raw); err != nil {
		r.log.Error("failed to write accounts to side-store", zap.String("key", r.key), zap.Error(err))
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	return nil
}

func (r *AccountRepository) indexOf(id string) int {
	for i, acc := range r.accounts {
		if acc.ID == id {
			return i
		}
	}
	return -1
}

func (r *AccountRepository) uniqueID() (string, error) {
	for i := 0; i < maxIDAttempts; i++ {
		id := r.newID()
		if id != "" && r.indexOf(id) < 0 {
			return id, nil
		}
	}
	return "", ErrIDExhausted
}
