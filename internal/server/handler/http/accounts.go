// Package http provides the JSON HTTP API over the account service.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/atinyakov/AccountKeeper/internal/models"
	"github.com/atinyakov/AccountKeeper/internal/service"
)

// AccountService defines the account operations required by AccountHandler.
type AccountService interface {
	Create(ctx context.Context, draft models.AccountDraft) (models.Account, error)
	Update(ctx context.Context, acc models.Account) (bool, error)
	Delete(ctx context.Context, id string) error
	Get(id string) (models.Account, bool)
	List() []models.Account
}

// AccountHandler handles the /api/accounts endpoints.
type AccountHandler struct {
	// AccountService performs the underlying account operations.
	AccountService AccountService
}

// validationResponse is the body returned for rejected records.
type validationResponse struct {
	Message string               `json:"message"`
	Details []service.FieldError `json:"details"`
}

// List handles GET /api/accounts.
//
// Responds 200 with every account in insertion order. An empty repository
// yields an empty JSON array.
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.AccountService.List())
}

// Get handles GET /api/accounts/{id}.
//
// Responses:
//
//	200 OK        - the account
//	404 Not Found - no account has that id
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	acc, ok := h.AccountService.Get(chi.URLParam(r, "id"))
	if !ok {
		http.Error(w, "account not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, acc)
}

// Create handles POST /api/accounts. The body is an account without an id.
//
// Responses:
//
//	201 Created               - the stored account with its new id
//	400 Bad Request           - body is not JSON, or type is missing or unknown
//	500 Internal Server Error - the side-store write failed
func (h *AccountHandler) Create(w http.ResponseWriter, r *http.Request) {
	var draft models.AccountDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	acc, err := h.AccountService.Create(r.Context(), draft)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, acc)
}

// Update handles PUT /api/accounts/{id}. The id in the path wins over any id
// in the body.
//
// Responses:
//
//	200 OK                    - the account as stored
//	400 Bad Request           - body is not JSON, or type is missing or unknown
//	404 Not Found             - no account has that id
//	500 Internal Server Error - the side-store write failed
func (h *AccountHandler) Update(w http.ResponseWriter, r *http.Request) {
	var acc models.Account
	if err := json.NewDecoder(r.Body).Decode(&acc); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	acc.ID = chi.URLParam(r, "id")

	found, err := h.AccountService.Update(r.Context(), acc)
	if err != nil {
		writeError(w, err)
		return
	}
	if !found {
		http.Error(w, "account not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, acc.Clone())
}

// Delete handles DELETE /api/accounts/{id}. Unknown ids succeed as well.
//
// Responses:
//
//	204 No Content            - the account is gone
//	500 Internal Server Error - the side-store write failed
func (h *AccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.AccountService.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Health handles GET /api/health.
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeError maps validation failures to 400 with field details and everything
// else to 500 with the error text.
func writeError(w http.ResponseWriter, err error) {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusBadRequest, validationResponse{
			Message: "Invalid request data",
			Details: verr.Details,
		})
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
