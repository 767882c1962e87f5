package main

import (
	"fmt"
	"io"

	"littleprince/internal/config"
	"littleprince/internal/daypart"
	"littleprince/internal/dispatch"
	"littleprince/internal/host"
	"littleprince/internal/logging"
	"littleprince/internal/notify"
	"littleprince/internal/ui"

	"github.com/charmbracelet/log"
)

// newNotifier builds the desktop notifier. Tests swap it out.
var newNotifier = notify.New

// env is everything a command needs once configuration is loaded.
type env struct {
	cfg        *config.Config
	log        *log.Logger
	logFile    io.Closer
	registry   *host.Registry
	notifier   notify.Notifier
	dispatcher *dispatch.Dispatcher
}

// openEnv loads configuration from configPath (or the default location),
// opens the log file and the host registry, and registers the
// notification channel.
func openEnv(configPath string) (*env, error) {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	reg, err := host.Open(cfg.GetDataDir())
	if err != nil {
		return nil, fmt.Errorf("open host registry: %w", err)
	}

	logger, logFile, err := logging.Open(cfg.GetLogFile(), cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}

	if reg.Restored() {
		logger.Warn("host registry was unreadable, restored previous copy", "path", reg.Path())
	}

	n := notify.Noop()
	if cfg.Notifications.Enabled {
		n = newNotifier(notify.Options{
			AppName: cfg.Notifications.AppName,
			Sound:   cfg.Notifications.Sound,
		})
		if !n.IsSupported() {
			logger.Warn("desktop notifications are not supported here")
		}
	}

	d := dispatch.New(reg, n, dispatch.Options{
		RequireChannel:    cfg.Notifications.Channels,
		RequirePermission: cfg.Notifications.RequirePermission,
		Logger:            logger,
	})
	if err := d.EnsureChannel(); err != nil {
		_ = n.Close()
		_ = logFile.Close()
		return nil, fmt.Errorf("create notification channel: %w", err)
	}

	logger.Debug("environment ready", "data_dir", cfg.GetDataDir(), "notifications", cfg.Notifications.Enabled)

	return &env{
		cfg:        cfg,
		log:        logger,
		logFile:    logFile,
		registry:   reg,
		notifier:   n,
		dispatcher: d,
	}, nil
}

// Close releases the notifier and the log file.
func (e *env) Close() {
	if err := e.notifier.Close(); err != nil {
		e.log.Warn("close notifier", "err", err)
	}
	_ = e.logFile.Close()
}

func (e *env) runTUI() error {
	styles := ui.NewStyles(e.cfg)
	appCfg := &ui.AppConfig{
		Keys:                  &e.cfg.Keys,
		NarrowLayoutThreshold: e.cfg.UX.NarrowLayoutThreshold,
	}

	e.log.Info("starting")
	if err := ui.Run(daypart.NewHolder(), e.dispatcher, e.notifier, styles, appCfg); err != nil {
		return fmt.Errorf("run app: %w", err)
	}
	e.log.Info("stopped")
	return nil
}
