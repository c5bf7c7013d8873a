package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/five82/skyschedule/internal/config"
	"github.com/five82/skyschedule/internal/logging"
	"github.com/five82/skyschedule/internal/prefs"
	"github.com/five82/skyschedule/internal/render"
	"github.com/five82/skyschedule/internal/skyq"
	"github.com/five82/skyschedule/internal/state"
	"github.com/five82/skyschedule/internal/ui"
)

// Options configure a skyschedule run. Zero values defer to the config file.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses ~/.config/skyschedule/prefs.toml
	Address    string
	Port       int // device port override; zero uses 9006
	Limit      int
	Format     string
	Watch      bool
	PollEvery  int // seconds; zero uses the config value

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Run prints today's schedule once, or keeps it on screen in watch mode until
// ctx is cancelled or the user quits.
func Run(ctx context.Context, opts Options) error {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.Limit < 0 {
		return fmt.Errorf("%w: limit must be positive, got %d", skyq.ErrInvalidLimit, opts.Limit)
	}
	if opts.Limit > 0 {
		cfg.Limit = opts.Limit
	}
	if opts.PollEvery > 0 {
		cfg.PollInterval = time.Duration(opts.PollEvery) * time.Second
	}
	formatName := cfg.Format
	if strings.TrimSpace(opts.Format) != "" {
		formatName = opts.Format
	}
	format, err := render.ParseFormat(formatName)
	if err != nil {
		return err
	}

	logOut, closeLog, err := logOutput(cfg, opts)
	if err != nil {
		return err
	}
	defer closeLog()
	logging.Configure(logging.Config{Level: cfg.LogLevel, Output: logOut})
	log := logging.WithComponent("app")

	userPrefs := prefs.Load(opts.PrefsPath)

	address := strings.TrimSpace(opts.Address)
	if address == "" {
		address = cfg.Address
	}
	if address == "" {
		address, err = promptAddress(opts.Stdin, opts.Stderr, userPrefs.LastAddress)
		if err != nil {
			return err
		}
	}

	clientLog := logging.WithComponent("skyq")
	client, err := skyq.NewClient(ctx, address, skyq.Options{
		Limit: cfg.Limit,
		Boundary: skyq.DayBoundary{
			RolloverHour: cfg.RolloverHour,
			Location:     cfg.Location,
		},
		Timeout:     cfg.Timeout,
		CountMaxAge: cfg.CountMaxAge,
		Port:        opts.Port,
		Logger:      &clientLog,
	})
	if err != nil {
		return fmt.Errorf("connect to sky q box: %w", err)
	}
	log.Debug().Str("device", client.Endpoint().String()).Int("limit", client.Limit()).Msg("connected")

	if address != userPrefs.LastAddress {
		if err := prefs.Update(opts.PrefsPath, func(p *prefs.Prefs) { p.LastAddress = address }); err != nil {
			log.Warn().Err(err).Msg("could not remember address")
		}
	}

	if opts.Watch {
		return watch(ctx, client, cfg, userPrefs, opts, log)
	}

	entries, err := client.Schedule(ctx)
	if err != nil {
		return fmt.Errorf("fetch schedule: %w", err)
	}
	return render.Write(opts.Stdout, format, entries)
}

func watch(ctx context.Context, client *skyq.Client, cfg config.Config, userPrefs prefs.Prefs, opts Options, log zerolog.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	store := &state.Store{}
	poller := NewPoller(client, store, cfg.PollInterval, logging.WithComponent("poller"))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		poller.Run(gctx)
		return nil
	})
	g.Go(func() error {
		// Quitting the UI stops the poller.
		defer cancel()
		return ui.Run(gctx, ui.Options{
			Store:     store,
			Refresher: poller,
			Device:    client.Endpoint().String(),
			ThemeName: userPrefs.Theme,
			PrefsPath: opts.PrefsPath,
			LogPath:   cfg.LogPath(),
			Boundary:  client.Boundary(),
		})
	})

	err := g.Wait()
	log.Info().Msg("watch stopped")
	return err
}

// logOutput picks the log destination. Watch mode owns the terminal, so its
// logs go to a file the UI can tail.
func logOutput(cfg config.Config, opts Options) (io.Writer, func(), error) {
	if !opts.Watch {
		return logging.Console(opts.Stderr), func() {}, nil
	}
	path := cfg.LogPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return file, func() { _ = file.Close() }, nil
}

// IsUsageError reports errors caused by bad input rather than the device.
func IsUsageError(err error) bool {
	return errors.Is(err, skyq.ErrInvalidAddress) ||
		errors.Is(err, skyq.ErrInvalidLimit) ||
		errors.Is(err, skyq.ErrInvalidBoundary)
}
