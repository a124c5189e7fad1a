package shell

import (
	"fmt"

	"github.com/atinyakov/AccountKeeper/internal/models"
)

// clearMarker empties the labels when answered to the edit prompt.
const clearMarker = "-"

func (s *Shell) ask(prompt string) (string, bool) {
	fmt.Fprint(s.out, prompt)
	return s.readLine()
}

// askType repeats the question until the answer names a known type. An empty
// answer returns current when current is set.
func (s *Shell) askType(prompt string, current models.AccountType) (models.AccountType, bool) {
	for {
		answer, ok := s.ask(prompt)
		if !ok {
			return "", false
		}
		if answer == "" && current != "" {
			return current, true
		}
		t, err := models.ParseAccountType(answer)
		if err == nil {
			return t, true
		}
		fmt.Fprintln(s.out, "Type must be LDAP or Local")
	}
}

func (s *Shell) askPassword(prompt string) (string, bool) {
	pw, err := s.PassPrompt(prompt)
	if err != nil {
		fmt.Fprintln(s.out, "Failed to read password:", err)
		return "", false
	}
	return pw, true
}

// promptDraft asks for a new account. LDAP accounts get no password.
func (s *Shell) promptDraft() (models.AccountDraft, bool) {
	var draft models.AccountDraft

	t, ok := s.askType("Enter type (LDAP/Local): ", "")
	if !ok {
		return draft, false
	}
	draft.Type = t

	labels, ok := s.ask("Enter labels separated by ';': ")
	if !ok {
		return draft, false
	}
	draft.LabelTags = models.ParseLabelTags(labels)

	if draft.Login, ok = s.ask("Enter login: "); !ok {
		return draft, false
	}

	if draft.Type == models.Local {
		pw, ok := s.askPassword("Enter password: ")
		if !ok {
			return draft, false
		}
		draft.Password = &pw
	}
	return draft, true
}

// promptEdit asks for replacements of every field of acc. Empty answers keep
// the current value; "-" clears the labels. Switching to LDAP drops the
// password.
func (s *Shell) promptEdit(acc models.Account) (models.Account, bool) {
	t, ok := s.askType(fmt.Sprintf("Type [%s]: ", acc.Type), acc.Type)
	if !ok {
		return acc, false
	}
	acc.Type = t

	labels, ok := s.ask(fmt.Sprintf("Labels [%s]: ", models.FormatLabelTags(acc.LabelTags)))
	if !ok {
		return acc, false
	}
	switch labels {
	case "":
	case clearMarker:
		acc.LabelTags = []models.LabelTag{}
	default:
		acc.LabelTags = models.ParseLabelTags(labels)
	}

	login, ok := s.ask(fmt.Sprintf("Login [%s]: ", acc.Login))
	if !ok {
		return acc, false
	}
	if login != "" {
		acc.Login = login
	}

	if acc.Type == models.LDAP {
		acc.Password = nil
		return acc, true
	}
	pw, ok := s.askPassword("Password (leave empty to keep): ")
	if !ok {
		return acc, false
	}
	if pw != "" {
		acc.Password = &pw
	}
	return acc, true
}
