package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/roster/internal/client/client"
	"github.com/dmitrijs2005/roster/internal/client/config"
	"github.com/dmitrijs2005/roster/internal/client/exports"
	"github.com/dmitrijs2005/roster/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/roster/internal/client/repositories/records"
	"github.com/dmitrijs2005/roster/internal/client/router"
	"github.com/dmitrijs2005/roster/internal/client/services"
	"github.com/dmitrijs2005/roster/internal/client/view"
	"github.com/dmitrijs2005/roster/internal/logging"
	"github.com/dmitrijs2005/roster/internal/timex"
)

type Mode string

const (
	ModeLocal   Mode = "local"
	ModeOnline  Mode = "online"
	ModeOffline Mode = "offline"
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	store    *services.RosterService
	router   *router.Router
	remote   client.Client
	uploader *exports.Uploader
	// prefs keeps the last screen and list order; nil for the remote backend.
	prefs metadata.Repository
	loc      *time.Location

	reader      *bufio.Reader
	out         io.Writer
	interactive bool

	listOpts view.ListOptions

	modeMu sync.Mutex
	mode   Mode

	closers []func() error
}

// NewApp opens the configured backend and builds the client around it.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	var (
		repo    services.Repository
		remote  client.Client
		prefs   metadata.Repository
		closers []func() error
	)

	switch c.Backend {
	case config.BackendRemote:
		rc, err := client.NewRosterClient(c.ServerEndpointAddr, c.CallTimeout)
		if err != nil {
			return nil, fmt.Errorf("connect to %s: %w", c.ServerEndpointAddr, err)
		}
		repo, remote = rc, rc
		closers = append(closers, rc.Close)
	default:
		db, err := client.InitDatabase(ctx, c.DatabasePath)
		if err != nil {
			return nil, fmt.Errorf("open database %s: %w", c.DatabasePath, err)
		}
		repo = records.NewSQLiteRepository(db)
		prefs = metadata.NewSQLiteRepository(db)
		closers = append(closers, db.Close)
	}

	a, err := newApp(c, logger, repo, bufio.NewReader(os.Stdin), os.Stdout)
	if err != nil {
		return nil, errors.Join(err, closeAll(closers))
	}
	a.remote = remote
	a.prefs = prefs
	a.closers = closers
	a.interactive = isTerminal(int(os.Stdin.Fd()))

	if c.S3.Enabled() {
		u, err := exports.NewUploader(ctx, c.S3, timex.RealClock{})
		if err != nil {
			return nil, errors.Join(err, closeAll(closers))
		}
		a.uploader = u
	}

	return a, nil
}

func newApp(c *config.Config, logger logging.Logger, repo services.Repository, in *bufio.Reader, out io.Writer) (*App, error) {
	loc, err := c.Location()
	if err != nil {
		return nil, err
	}

	a := &App{
		config:   c,
		logger:   logger.With("module", "cli"),
		store:    services.NewRosterService(repo, timex.RealClock{}, logger),
		router:   router.New(),
		loc:      loc,
		reader:   in,
		out:      out,
		listOpts: view.ListOptions{Sort: view.SortRecent},
		mode:     ModeLocal,
	}

	a.router.Handle(router.ViewList, a.renderList)
	a.router.Handle(router.ViewAdd, a.renderAdd)
	a.router.Handle(router.ViewDetail, a.renderDetail)
	a.router.Handle(router.ViewEdit, a.renderEdit)
	a.router.Handle(router.ViewSettings, a.renderSettings)

	return a, nil
}

// Run loads the roster and serves commands until the user exits or ctx ends.
func (a *App) Run(ctx context.Context) error {
	defer func() {
		a.savePrefs(context.WithoutCancel(ctx))
		if err := a.Close(); err != nil {
			a.logger.Error(ctx, "close failed", "error", err)
		}
	}()

	fmt.Fprintln(a.out, "Roster CLI (type 'help' for commands)")

	if a.remote != nil {
		a.setMode(ModeOffline)
		go client.WatchOnline(ctx, a.remote, a.config.OnlineCheckInterval, func(online bool) {
			if online {
				a.setMode(ModeOnline)
			} else {
				a.setMode(ModeOffline)
			}
		})
	}

	if _, err := a.store.Initialize(ctx); err != nil {
		fmt.Fprintln(a.out, "Could not load records:", err)
	}

	if err := a.router.Resolve(ctx, a.loadPrefs(ctx)); err != nil {
		fmt.Fprintln(a.out, userMessage(err))
		if err := a.router.Resolve(ctx, ""); err != nil {
			fmt.Fprintln(a.out, userMessage(err))
		}
	}

	runREPL(ctx, a, a.statusLine, a.reader, a.out, a.interactive)
	return nil
}

func (a *App) Close() error {
	err := closeAll(a.closers)
	a.closers = nil
	return err
}

func closeAll(fns []func() error) error {
	var errs []error
	for _, fn := range fns {
		errs = append(errs, fn())
	}
	return errors.Join(errs...)
}

func (a *App) setMode(mode Mode) {
	a.modeMu.Lock()
	defer a.modeMu.Unlock()
	if a.mode != mode {
		a.mode = mode
		a.logger.Info(context.Background(), "connection mode changed", "mode", mode)
	}
}

func (a *App) currentMode() Mode {
	a.modeMu.Lock()
	defer a.modeMu.Unlock()
	return a.mode
}

func (a *App) statusLine() string {
	return fmt.Sprintf("(%s %s)", a.currentMode(), a.router.Current())
}

// Where returns the restorable token of the current screen.
func (a *App) Where() string {
	return a.router.Current().String()
}

// Navigate resolves a router token, e.g. "detail/<id>".
func (a *App) Navigate(ctx context.Context, token string) error {
	return a.router.Resolve(ctx, token)
}

// loadPrefs applies the saved list order and returns the token of the screen
// to open. Forms are never reopened: edit falls back to detail and add to the
// list.
func (a *App) loadPrefs(ctx context.Context) string {
	if a.prefs == nil {
		return ""
	}

	if v, ok, err := a.prefs.Get(ctx, metadata.KeyListSort); err == nil && ok {
		if s, err := view.ParseSortOrder(v); err == nil {
			a.listOpts.Sort = s
		}
	}

	token, ok, err := a.prefs.Get(ctx, metadata.KeyLastRoute)
	if err != nil || !ok {
		return ""
	}
	r, err := router.Parse(token)
	if err != nil {
		return ""
	}
	switch r.View {
	case router.ViewEdit:
		r.View = router.ViewDetail
	case router.ViewAdd:
		return ""
	}
	return r.String()
}

func (a *App) savePrefs(ctx context.Context) {
	if a.prefs == nil {
		return
	}
	if err := a.prefs.Set(ctx, metadata.KeyLastRoute, a.Where()); err != nil {
		a.logger.Warn(ctx, "save route", "error", err)
	}
	if err := a.prefs.Set(ctx, metadata.KeyListSort, string(a.listOpts.Sort)); err != nil {
		a.logger.Warn(ctx, "save list order", "error", err)
	}
}
