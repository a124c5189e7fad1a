package storage

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func setupPostgresMock(t *testing.T) (*PostgresStore, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	store := NewPostgresStore(db)
	cleanup := func() { db.Close() }
	return store, mock, cleanup
}

func TestPostgresStore_GetFound(t *testing.T) {
	store, mock, cleanup := setupPostgresMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM "side_store" WHERE key = $1`)).
		WithArgs("accounts").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("[]"))

	v, ok, err := store.Get(context.Background(), "accounts")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok || v != "[]" {
		t.Errorf("Get = %q, %v; want %q, true", v, ok, "[]")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestPostgresStore_GetMissing(t *testing.T) {
	store, mock, cleanup := setupPostgresMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM "side_store" WHERE key = $1`)).
		WithArgs("accounts").
		WillReturnRows(sqlmock.NewRows([]string{"value"}))

	_, ok, err := store.Get(context.Background(), "accounts")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("expected key to be absent")
	}
}

func TestPostgresStore_GetError(t *testing.T) {
	store, mock, cleanup := setupPostgresMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT value FROM "side_store"`)).
		WithArgs("accounts").
		WillReturnError(errors.New("query failed"))

	if _, _, err := store.Get(context.Background(), "accounts"); err == nil {
		t.Error("expected error, got nil")
	}
}

func TestPostgresStore_Set(t *testing.T) {
	store, mock, cleanup := setupPostgresMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "side_store" (key, value) VALUES ($1, $2)`)).
		WithArgs("accounts", `[{"id":"1"}]`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := store.Set(context.Background(), "accounts", `[{"id":"1"}]`); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestPostgresStore_SetError(t *testing.T) {
	store, mock, cleanup := setupPostgresMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "side_store"`)).
		WithArgs("accounts", "[]").
		WillReturnError(errors.New("insert failed"))

	if err := store.Set(context.Background(), "accounts", "[]"); err == nil {
		t.Error("expected error, got nil")
	}
}
