// Package cli implements the command-line client for the cadastral lookup
// service: register, login, me, query, history, ping.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/dmitrijs2005/cadastr/internal/client/api"
)

var errUsage = errors.New("usage: cadastr-cli [-s server] [-f token-file] <register|login|me|query|history|ping> [args]")

// App dispatches CLI subcommands against the service API.
type App struct {
	api       *api.Client
	tokenPath string
	out       io.Writer
}

func NewApp(apiClient *api.Client, tokenPath string, out io.Writer) *App {
	return &App{api: apiClient, tokenPath: tokenPath, out: out}
}

// Run executes a single subcommand. args is the argument list after global
// flags, starting with the subcommand name.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errUsage
	}

	token, err := LoadToken(a.tokenPath)
	if err != nil {
		return fmt.Errorf("reading token: %w", err)
	}
	a.api.SetToken(token)

	switch args[0] {
	case "register":
		return a.register(ctx, args[1:])
	case "login":
		return a.login(ctx, args[1:])
	case "me":
		return a.me(ctx)
	case "query":
		return a.query(ctx, args[1:])
	case "history":
		return a.history(ctx, args[1:])
	case "ping":
		return a.ping(ctx)
	default:
		return errUsage
	}
}

func (a *App) register(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: register <email>")
	}

	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}

	msg, err := a.api.Register(ctx, args[0], password)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, msg)
	return nil
}

func (a *App) login(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: login <email>")
	}

	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}

	token, err := a.api.Login(ctx, args[0], password)
	if err != nil {
		return err
	}

	if err := SaveToken(a.tokenPath, token); err != nil {
		return fmt.Errorf("saving token: %w", err)
	}

	fmt.Fprintln(a.out, "Logged in.")
	return nil
}

func (a *App) me(ctx context.Context) error {
	user, err := a.api.Me(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s (id=%s, active=%v, superuser=%v, verified=%v)\n",
		user.Email, user.ID, user.IsActive, user.IsSuperuser, user.IsVerified)
	return nil
}

func (a *App) query(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("query", flag.ContinueOnError)
	fs.SetOutput(a.out)
	number := fs.String("n", "", "cadastral number")
	lat := fs.Float64("lat", 0, "latitude")
	lon := fs.Float64("lon", 0, "longitude")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *number == "" {
		return errors.New("usage: query -n <cadastral-number> -lat <latitude> -lon <longitude>")
	}

	log, err := a.api.Query(ctx, *number, *lat, *lon)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s %s (%v, %v): %s\n",
		log.CreatedAt.Format("2006-01-02 15:04:05"), log.CadastralNumber,
		log.Latitude, log.Longitude, log.ExternalServerResponse)
	return nil
}

func (a *App) history(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	fs.SetOutput(a.out)
	number := fs.String("n", "", "filter by cadastral number")
	if err := fs.Parse(args); err != nil {
		return err
	}

	logs, err := a.api.History(ctx, *number)
	if err != nil {
		return err
	}

	if len(logs) == 0 {
		fmt.Fprintln(a.out, "No queries yet.")
		return nil
	}

	for _, log := range logs {
		fmt.Fprintf(a.out, "%s %s (%v, %v): %s\n",
			log.CreatedAt.Format("2006-01-02 15:04:05"), log.CadastralNumber,
			log.Latitude, log.Longitude, log.ExternalServerResponse)
	}
	return nil
}

func (a *App) ping(ctx context.Context) error {
	msg, err := a.api.Ping(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, msg)
	return nil
}
