// Package models defines the account record kept by the repository and its
// wire encoding.
package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// AccountType defines the set of valid account kinds.
type AccountType string

const (
	// LDAP represents an account authenticated against a directory server.
	LDAP AccountType = "LDAP"
	// Local represents an account with a locally stored password.
	Local AccountType = "Local"

	// legacyLocal is the value older browser builds wrote for Local accounts.
	legacyLocal = "Локальная"
)

// Valid reports whether t is one of the known account kinds.
func (t AccountType) Valid() bool {
	return t == LDAP || t == Local
}

// UnmarshalJSON maps the legacy local marker to Local. Other strings are kept
// as-is for Valid to reject, so callers can report the field.
func (t *AccountType) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("account type: %w", err)
	}
	switch s {
	case legacyLocal:
		*t = Local
	default:
		*t = AccountType(s)
	}
	return nil
}

// ParseAccountType maps user input to an AccountType, ignoring case.
func ParseAccountType(s string) (AccountType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ldap":
		return LDAP, nil
	case "local", strings.ToLower(legacyLocal):
		return Local, nil
	}
	return "", fmt.Errorf("unknown account type %q", s)
}

// LabelTag is a short text annotation shown next to an account.
type LabelTag struct {
	Text string `json:"text"`
}

// Account is a credential record.
type Account struct {
	// ID is assigned at creation and never changes.
	ID string `json:"id" validate:"required"`
	// LabelTags are kept in display order.
	LabelTags []LabelTag `json:"labelTags"`
	// Type is either LDAP or Local.
	Type AccountType `json:"type" validate:"oneof=LDAP Local"`
	// Login is free-form, no uniqueness constraint.
	Login string `json:"login"`
	// Password is nil when the account has none (usually LDAP).
	Password *string `json:"password"`
}

// AccountDraft is an account that has not been assigned an ID yet.
type AccountDraft struct {
	LabelTags []LabelTag  `json:"labelTags"`
	Type      AccountType `json:"type" validate:"oneof=LDAP Local"`
	Login     string      `json:"login"`
	Password  *string     `json:"password"`
}

// WithID turns the draft into an account carrying id.
func (d AccountDraft) WithID(id string) Account {
	return Account{
		ID:        id,
		LabelTags: cloneTags(d.LabelTags),
		Type:      d.Type,
		Login:     d.Login,
		Password:  clonePassword(d.Password),
	}
}

// Clone returns a deep copy of a. Nil label tags come back as an empty slice.
func (a Account) Clone() Account {
	a.LabelTags = cloneTags(a.LabelTags)
	a.Password = clonePassword(a.Password)
	return a
}

// Draft strips the ID from a.
func (a Account) Draft() AccountDraft {
	return AccountDraft{
		LabelTags: cloneTags(a.LabelTags),
		Type:      a.Type,
		Login:     a.Login,
		Password:  clonePassword(a.Password),
	}
}

// StringPtr returns a pointer to s. Handy for building passwords.
func StringPtr(s string) *string {
	return &s
}

// cloneTags never returns nil so records always encode labelTags as an array.
func cloneTags(tags []LabelTag) []LabelTag {
	out := make([]LabelTag, len(tags))
	copy(out, tags)
	return out
}

func clonePassword(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
