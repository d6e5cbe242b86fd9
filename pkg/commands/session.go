package commands

import (
	"context"

	"go.uber.org/zap"

	"tableflip.dev/tempo/pkg/app"
	"tableflip.dev/tempo/pkg/logging"
	"tableflip.dev/tempo/pkg/store"
)

// session is the config, logger and loaded board one command works on.
type session struct {
	settings *store.Settings
	log      *zap.Logger
	svc      *app.Service
}

// openSession loads the config and the goal board. Logs go to the configured
// log file so they never mix with command output.
func openSession(ctx context.Context) (*session, error) {
	settings, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	log, err := logging.New(logging.Config{
		Level:  settings.LogLevel,
		Format: settings.LogFormat,
		File:   settings.LogFile,
	})
	if err != nil {
		return nil, err
	}
	p, err := store.Load(settings, store.WithLogger(log))
	if err != nil {
		_ = log.Sync()
		return nil, err
	}
	svc := app.New(p, app.Options{SaveDebounce: settings.SaveDebounce, Logger: log})
	if err := svc.Load(ctx); err != nil {
		svc.Close()
		_ = log.Sync()
		return nil, err
	}
	log.Debug("session opened", zap.String("path", settings.Path))
	return &session{settings: settings, log: log, svc: svc}, nil
}

// Close writes pending edits and flushes the log.
func (s *session) Close() {
	s.svc.Close()
	_ = s.log.Sync()
}
