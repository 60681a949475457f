package cmd

import (
	"io"
	"log/slog"

	"github.com/adamancini/vsixinstaller/internal/config"
	"github.com/adamancini/vsixinstaller/internal/locator"
	"github.com/adamancini/vsixinstaller/internal/logger"
)

// session is the per-invocation config and logger.
type session struct {
	cfg    *config.Config
	log    *slog.Logger
	closer io.Closer
}

// openSession loads the config selected by the global flags and opens the log.
func (a *app) openSession() (*session, error) {
	cfg, path, err := a.loadConfig(a.configPath)
	if err != nil {
		return nil, err
	}

	log, closer := logger.New(logger.Options{
		File:    cfg.LogFile,
		Verbose: a.verbose,
		Stderr:  a.stderr,
	})
	if path != "" {
		log.Debug("loaded config", "path", path)
	}

	return &session{cfg: cfg, log: log, closer: closer}, nil
}

func (s *session) Close() error {
	return s.closer.Close()
}

// locator returns a locator over the store selected by the config.
func (a *app) locator(s *session) *locator.Locator {
	return locator.New(a.newStore(s.cfg), s.cfg.RegistryNamespace, s.log)
}

// progress is where user-facing progress lines go: stderr unless --quiet.
func (a *app) progress() io.Writer {
	if a.quiet {
		return io.Discard
	}
	return a.stderr
}
