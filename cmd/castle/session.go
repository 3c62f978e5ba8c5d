package main

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/castle-showcase/internal/logger"
	"github.com/Faultbox/castle-showcase/internal/showcase"
)

// session owns the App a window shows and rebuilds it after a fault.
type session struct {
	app  *showcase.App
	boot func() (*showcase.App, error)
}

func newSession(boot func() (*showcase.App, error)) (*session, error) {
	app, err := boot()
	if err != nil {
		return nil, err
	}
	return &session{app: app, boot: boot}, nil
}

// reload closes the current App and boots a new one. If booting fails the
// session is left without an App.
func (s *session) reload() error {
	if err := s.close(); err != nil {
		logger.Warn("close after fault", zap.Error(err))
	}
	app, err := s.boot()
	if err != nil {
		return fmt.Errorf("reload: %w", err)
	}
	s.app = app
	return nil
}

// close closes the App, if any. Calling it again is a no-op.
func (s *session) close() error {
	if s.app == nil {
		return nil
	}
	err := s.app.Close()
	s.app = nil
	return err
}
