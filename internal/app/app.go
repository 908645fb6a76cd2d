package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/five82/ticktock/internal/config"
	"github.com/five82/ticktock/internal/life"
	"github.com/five82/ticktock/internal/logging"
	"github.com/five82/ticktock/internal/prefs"
	"github.com/five82/ticktock/internal/state"
	"github.com/five82/ticktock/internal/storage"
	"github.com/five82/ticktock/internal/ui"
)

// Options configure the ticktock application.
type Options struct {
	ConfigPath string // empty uses ~/.config/ticktock/config.toml
	Ephemeral  bool   // keep state in memory for this run only
}

// Env is an opened application: configuration, logger, storage and store.
type Env struct {
	Config config.Config
	Log    *logrus.Logger
	// LogErr is set when the log file could not be opened; Log then
	// discards everything.
	LogErr error
	// KV is nil when running in memory only.
	KV    storage.KV
	Store *state.Store

	logCloser io.Closer
}

// Open loads configuration, sets up logging, probes storage and loads the
// persisted state. Unavailable storage is not an error: the store then runs
// in memory only and a warning is logged.
func Open(opts Options) (*Env, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, logCloser, logErr := logging.New(cfg.Log)
	env := &Env{
		Config:    cfg,
		Log:       logger,
		LogErr:    logErr,
		logCloser: logCloser,
	}
	log := logging.Component(logger, "app")

	backend, err := storage.ParseBackend(cfg.Storage.Backend)
	if err != nil {
		log.WithError(err).Warn("Invalid storage backend; running in memory")
		backend = storage.BackendMemory
	}
	if opts.Ephemeral {
		backend = storage.BackendMemory
	}

	if backend != storage.BackendMemory {
		kv, err := storage.Open(storage.Options{Backend: backend, Path: cfg.Storage.Path})
		switch {
		case errors.Is(err, storage.ErrUnavailable):
			log.WithError(err).Warn("Durable storage unavailable; running in memory")
		case err != nil:
			log.WithError(err).Warn("Open storage failed; running in memory")
		default:
			env.KV = kv
			log.WithFields(logrus.Fields{
				"backend": backend,
				"path":    cfg.Storage.Path,
			}).Debug("storage opened")
		}
	}

	env.Store = state.New(state.Options{
		Storage: env.KV,
		Lookup:  life.Expectancy,
		Logger:  logging.Component(logger, "state"),
	})
	return env, nil
}

// Close releases storage and the log file.
func (e *Env) Close() error {
	var errs []error
	if err := storage.Close(e.KV); err != nil {
		errs = append(errs, fmt.Errorf("close storage: %w", err))
	}
	if e.logCloser != nil {
		if err := e.logCloser.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close log: %w", err))
		}
	}
	return errors.Join(errs...)
}

// Run boots the ticktock TUI until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	env, err := Open(opts)
	if err != nil {
		return err
	}
	defer env.Close()

	env.Log.WithField("persistent", env.Store.Persistent()).Info("ticktock starting")

	userPrefs := prefs.Load(env.KV)
	themeName := userPrefs.Theme
	if env.KV == nil || themeName == prefs.Default().Theme {
		// No saved choice yet; config decides.
		themeName = env.Config.UI.Theme
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	StartReloader(ctx, env.Store, defaultReloadInterval, logging.Component(env.Log, "reload"))

	return ui.Run(ui.Options{
		Context:   ctx,
		Store:     env.Store,
		Prefs:     env.KV,
		Logger:    env.Log,
		Tick:      env.Config.UI.Tick,
		ThemeName: themeName,
	})
}
