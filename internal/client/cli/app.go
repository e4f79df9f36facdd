// Package cli implements the interactive Authgate command-line client.
package cli

import (
	"bufio"
	"context"
	"os"

	"github.com/akorchagin/authgate/internal/client/api"
	"github.com/akorchagin/authgate/internal/client/config"
)

// apiClient is the backend surface the CLI needs. The real api.Client
// satisfies it; tests provide a stub.
type apiClient interface {
	Register(ctx context.Context, email string, password string) (string, error)
	Login(ctx context.Context, email string, password string) (string, error)
	Logout(ctx context.Context, secret string) error
	CurrentUser(ctx context.Context, secret string) (*api.User, error)
}

type App struct {
	config   *config.Config
	api      apiClient
	secret   string
	userName string
	reader   *bufio.Reader
}

func NewApp(c *config.Config) *App {
	return &App{
		config: c,
		api:    api.NewClient(c.ServerEndpointAddr),
		reader: bufio.NewReader(os.Stdin),
	}
}

func (a *App) Run(ctx context.Context) {
	a.Root(ctx)
}

func (a *App) isLoggedIn() bool {
	return a.secret != ""
}
