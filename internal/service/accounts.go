// Package service exposes the account repository to presentation callers,
// checking the type shape of incoming records first.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/atinyakov/AccountKeeper/internal/models"
	"github.com/atinyakov/AccountKeeper/internal/repository"
)

// Repository is the subset of *repository.AccountRepository the service needs.
type Repository interface {
	Create(ctx context.Context, draft models.AccountDraft) (models.Account, error)
	Update(ctx context.Context, acc models.Account) (bool, error)
	Delete(ctx context.Context, id string) (int, error)
	FindByID(id string) (models.Account, bool)
	List() []models.Account
	Hydrate(ctx context.Context) repository.HydrateResult
}

// FieldError describes one rejected field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

// ValidationError is returned when a record fails type-shape checks.
type ValidationError struct {
	Details []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Details))
	for _, d := range e.Details {
		parts = append(parts, d.Field+": "+d.Message)
	}
	return "invalid account: " + strings.Join(parts, ", ")
}

// Accounts implements the account operations used by the shell and the HTTP API.
type Accounts struct {
	repo     Repository
	validate *validator.Validate
	log      *zap.Logger
}

// NewAccounts constructs the service around repo.
func NewAccounts(repo Repository, log *zap.Logger) *Accounts {
	return &Accounts{repo: repo, validate: validator.New(), log: log}
}

// Init loads the persisted accounts. A failed load is logged and the service
// starts with whatever the repository already holds.
func (s *Accounts) Init(ctx context.Context) repository.HydrateResult {
	res := s.repo.Hydrate(ctx)
	if res.OK() {
		s.log.Info("accounts loaded", zap.Stringer("status", res.Status), zap.Int("count", res.Count))
	} else {
		s.log.Warn("starting without persisted accounts", zap.Stringer("status", res.Status), zap.Error(res.Err))
	}
	return res
}

// Create validates draft and stores it.
func (s *Accounts) Create(ctx context.Context, draft models.AccountDraft) (models.Account, error) {
	if err := s.check(draft); err != nil {
		return models.Account{}, err
	}
	return s.repo.Create(ctx, draft)
}

// Update validates acc and replaces the stored record. It reports false when
// no account has acc.ID.
func (s *Accounts) Update(ctx context.Context, acc models.Account) (bool, error) {
	if err := s.check(acc); err != nil {
		return false, err
	}
	return s.repo.Update(ctx, acc)
}

// Delete removes the account with id. Deleting an unknown id is not an error.
func (s *Accounts) Delete(ctx context.Context, id string) error {
	_, err := s.repo.Delete(ctx, id)
	return err
}

// Get returns the account with id.
func (s *Accounts) Get(id string) (models.Account, bool) {
	return s.repo.FindByID(id)
}

// List returns all accounts in display order.
func (s *Accounts) List() []models.Account {
	return s.repo.List()
}

func (s *Accounts) check(v any) error {
	err := s.validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate account: %w", err)
	}
	out := &ValidationError{}
	for _, fe := range verrs {
		out.Details = append(out.Details, FieldError{
			Field:   fe.Field(),
			Message: fieldMessage(fe),
			Type:    fe.Tag(),
		})
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "oneof":
		return "Value must be one of: " + fe.Param()
	default:
		return "Invalid value"
	}
}
