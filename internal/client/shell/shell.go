// Package shell implements the interactive account editor used by the client
// binary.
package shell

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gokyle/readpass"
	"golang.org/x/term"

	"github.com/atinyakov/AccountKeeper/internal/models"
)

// AccountService defines the account operations the shell drives.
type AccountService interface {
	Create(ctx context.Context, draft models.AccountDraft) (models.Account, error)
	Update(ctx context.Context, acc models.Account) (bool, error)
	Delete(ctx context.Context, id string) error
	Get(id string) (models.Account, bool)
	List() []models.Account
}

const helpText = "Available commands: help, add, list, get <id>, edit <id>, delete <id>, exit"

// Shell reads commands line by line and applies them to the account service.
type Shell struct {
	svc     AccountService
	scanner *bufio.Scanner
	out     io.Writer

	// PassPrompt reads a password. Replaced in tests.
	PassPrompt func(prompt string) (string, error)
}

// New creates a shell reading from in and writing to out.
//
// When in is a terminal, passwords are read without echo through readpass,
// which talks to the terminal directly. Any other input (pipes, files, test
// readers) is buffered by the command scanner, so passwords are then read as
// the next input line instead.
func New(svc AccountService, in io.Reader, out io.Writer) *Shell {
	s := &Shell{
		svc:     svc,
		scanner: bufio.NewScanner(in),
		out:     out,
	}
	s.PassPrompt = s.scanPassword
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		s.PassPrompt = readpass.PasswordPrompt
	}
	return s
}

// scanPassword reads the next raw input line as a password.
func (s *Shell) scanPassword(prompt string) (string, error) {
	fmt.Fprint(s.out, prompt)
	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.ErrUnexpectedEOF
	}
	return strings.TrimRight(s.scanner.Text(), "\r"), nil
}

// Run executes commands until "exit", end of input or ctx is cancelled.
func (s *Shell) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(s.out, "accounts> ")
		line, ok := s.readLine()
		if !ok {
			return s.scanner.Err()
		}
		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}
		if args[0] == "exit" {
			fmt.Fprintln(s.out, "Bye")
			return nil
		}
		s.dispatch(ctx, args)
	}
}

func (s *Shell) dispatch(ctx context.Context, args []string) {
	switch args[0] {
	case "help":
		fmt.Fprintln(s.out, helpText)
	case "add":
		s.add(ctx)
	case "list":
		s.list()
	case "get":
		if id, ok := s.idArg(args, "get"); ok {
			s.get(id)
		}
	case "edit":
		if id, ok := s.idArg(args, "edit"); ok {
			s.edit(ctx, id)
		}
	case "delete":
		if id, ok := s.idArg(args, "delete"); ok {
			s.delete(ctx, id)
		}
	default:
		fmt.Fprintln(s.out, "Unknown command. Type 'help' for a list of commands.")
	}
}

func (s *Shell) idArg(args []string, cmd string) (string, bool) {
	if len(args) < 2 {
		fmt.Fprintf(s.out, "Usage: %s <id>\n", cmd)
		return "", false
	}
	return args[1], true
}

func (s *Shell) add(ctx context.Context) {
	draft, ok := s.promptDraft()
	if !ok {
		return
	}
	acc, err := s.svc.Create(ctx, draft)
	if err != nil {
		fmt.Fprintln(s.out, "Failed to add account:", err)
		return
	}
	fmt.Fprintln(s.out, "Account added:", acc.ID)
}

func (s *Shell) list() {
	accounts := s.svc.List()
	if len(accounts) == 0 {
		fmt.Fprintln(s.out, "No accounts")
		return
	}
	for _, acc := range accounts {
		password := "(none)"
		if acc.Password != nil {
			password = "********"
		}
		fmt.Fprintf(s.out, "ID: %s\nType: %s\nLogin: %s\nLabels: %s\nPassword: %s\n---\n",
			acc.ID, acc.Type, acc.Login, models.FormatLabelTags(acc.LabelTags), password)
	}
}

func (s *Shell) get(id string) {
	acc, ok := s.svc.Get(id)
	if !ok {
		fmt.Fprintln(s.out, "Account not found")
		return
	}
	b, _ := json.MarshalIndent(acc, "", "  ")
	fmt.Fprintln(s.out, string(b))
}

func (s *Shell) edit(ctx context.Context, id string) {
	acc, ok := s.svc.Get(id)
	if !ok {
		fmt.Fprintln(s.out, "Account not found")
		return
	}
	updated, ok := s.promptEdit(acc)
	if !ok {
		return
	}
	found, err := s.svc.Update(ctx, updated)
	switch {
	case err != nil:
		fmt.Fprintln(s.out, "Failed to update account:", err)
	case !found:
		fmt.Fprintln(s.out, "Account not found")
	default:
		fmt.Fprintln(s.out, "Account updated")
	}
}

func (s *Shell) delete(ctx context.Context, id string) {
	if _, ok := s.svc.Get(id); !ok {
		fmt.Fprintln(s.out, "Account not found")
		return
	}
	if err := s.svc.Delete(ctx, id); err != nil {
		fmt.Fprintln(s.out, "Failed to delete account:", err)
		return
	}
	fmt.Fprintln(s.out, "Account deleted")
}

func (s *Shell) readLine() (string, bool) {
	if !s.scanner.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.scanner.Text()), true
}
