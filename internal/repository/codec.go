package repository

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/atinyakov/AccountKeeper/internal/models"
)

// ErrMalformed is returned when the stored snapshot does not decode into a
// valid account sequence.
var ErrMalformed = errors.New("malformed account snapshot")

// EncodeAccounts serializes accounts in order.
func EncodeAccounts(accounts []models.Account) (string, error) {
	if accounts == nil {
		accounts = []models.Account{}
	}
	b, err := json.Marshal(accounts)
	if err != nil {
		return "", fmt.Errorf("encode accounts: %w", err)
	}
	return string(b), nil
}

// DecodeAccounts parses a snapshot written by EncodeAccounts. A JSON null is
// an empty sequence and a missing labelTags field an empty list. Records with
// an empty or repeated id are rejected.
func DecodeAccounts(raw string) ([]models.Account, error) {
	var accounts []models.Account
	if err := json.Unmarshal([]byte(raw), &accounts); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	seen := make(map[string]struct{}, len(accounts))
	for i, acc := range accounts {
		if acc.ID == "" {
			return nil, fmt.Errorf("%w: record %d has no id", ErrMalformed, i)
		}
		if _, dup := seen[acc.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrMalformed, acc.ID)
		}
		if !acc.Type.Valid() {
			return nil, fmt.Errorf("%w: record %q has no type", ErrMalformed, acc.ID)
		}
		seen[acc.ID] = struct{}{}
		if acc.LabelTags == nil {
			accounts[i].LabelTags = []models.LabelTag{}
		}
	}
	if accounts == nil {
		accounts = []models.Account{}
	}
	return accounts, nil
}
