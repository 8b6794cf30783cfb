package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/gophauth/internal/client/config"
	"github.com/dmitrijs2005/gophauth/internal/client/repositories/kvstore"
	"github.com/dmitrijs2005/gophauth/internal/client/repositories/users"
	"github.com/dmitrijs2005/gophauth/internal/client/services"
	"github.com/dmitrijs2005/gophauth/internal/client/storage"
	"github.com/dmitrijs2005/gophauth/internal/cryptox"
	"github.com/dmitrijs2005/gophauth/internal/logging"
)

// App holds one front-end session: the store, the session manager and the
// terminal it talks to.
type App struct {
	config  *config.Config
	store   kvstore.Store
	session services.SessionService
	log     logging.Logger
	reader  *bufio.Reader
	out     io.Writer
}

// NewApp opens the configured store and restores the persisted session.
// Logs go to logOut so they do not interleave with screen output.
func NewApp(ctx context.Context, c *config.Config, in io.Reader, out, logOut io.Writer) (*App, error) {
	log, err := logging.New(logOut, c.LogLevel, c.LogFormat)
	if err != nil {
		return nil, err
	}

	hasher, err := cryptox.NewHasher(c.PasswordHashing)
	if err != nil {
		return nil, err
	}

	store, err := storage.Open(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("error initializing storage: %w", err)
	}
	log.Debug(ctx, "storage opened", "driver", c.StorageDriver)

	repo := users.NewKVRepository(store, c.DirectoryKey)
	mgr := services.NewSessionManager(store, repo, hasher, c.SessionKey, log.With("component", "session"))
	mgr.Initialize(ctx)

	return &App{
		config:  c,
		store:   store,
		session: mgr,
		log:     log,
		reader:  bufio.NewReader(in),
		out:     out,
	}, nil
}

// Close releases the store.
func (a *App) Close() error {
	return a.store.Close()
}

func (a *App) isLoading() bool {
	return a.session.IsLoading()
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

func (a *App) getStatus() string {
	if u := a.session.CurrentUser(); u != nil {
		return fmt.Sprintf("(%s)", u.Email)
	}
	return ""
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}
