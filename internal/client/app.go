package client

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/MKhiriev/go-user-keeper/internal/adapter"
	"github.com/MKhiriev/go-user-keeper/internal/logger"
)

// Usage lists the supported subcommands.
const Usage = `usage: client [-a address] [-t timeout] [-c config] [-log-level level] <command> [flags]

commands:
  list                                     list every user
  create -username U -password P -roles R  create a user, R is a comma separated list
  update -id ID -username U -roles R [-active=false] [-password P]
  delete -id ID                            delete a user without notes
  version                                  print server version`

type command func(ctx context.Context, args []string) (any, error)

var _ Client = (*App)(nil)

// App runs one admin command per call to Run.
type App struct {
	users    adapter.UserAdapter
	out      io.Writer
	commands map[string]command
	logger   *logger.Logger
}

// NewApp returns an [App] that talks to the server through users and writes
// results to out.
func NewApp(users adapter.UserAdapter, out io.Writer, logger *logger.Logger) *App {
	a := &App{
		users:  users,
		out:    out,
		logger: logger,
	}
	a.commands = map[string]command{
		"list":    a.list,
		"create":  a.create,
		"update":  a.update,
		"delete":  a.delete,
		"version": a.version,
	}

	return a
}

// Run implements [Client].
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return ErrNoCommand
	}

	name := args[0]
	cmd, ok := a.commands[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCommand, name)
	}

	a.logger.Debug().Str("command", name).Msg("running command")

	result, err := cmd(ctx, args[1:])
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	return a.print(result)
}

func (a *App) print(result any) error {
	if msg, ok := result.(string); ok {
		_, err := fmt.Fprintln(a.out, msg)
		return err
	}

	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("error printing result: %w", err)
	}

	return nil
}

// parseFlags parses args into fs. Help output and errors go to the
// FlagSet's default output.
func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrInvalidFlags, err)
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("%w: unexpected arguments %v", ErrInvalidFlags, fs.Args())
	}

	return nil
}

// splitRoles turns "admin, ops" into ["admin" "ops"]. Blank items are kept
// so the server can reject them.
func splitRoles(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	return parts
}
