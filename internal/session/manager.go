package session

import (
	"context"

	sessionerrors "studiodesk/internal/session/errors"
	apperrors "studiodesk/pkg/errors"
	"studiodesk/pkg/logger"

	"github.com/google/uuid"
)

// Manager hands out Sessions keyed by ID for the calendar server, where
// many users share one process.
type Manager struct {
	store Store
	auth  AuthAPI
	log   *logger.Logger
}

func NewManager(store Store, auth AuthAPI, log *logger.Logger) *Manager {
	return &Manager{store: store, auth: auth, log: log}
}

// Create logs in under a fresh session ID.
func (m *Manager) Create(ctx context.Context, email, password string) (*Session, error) {
	s := New(uuid.NewString(), m.store, m.auth, m.log)
	if err := s.Login(ctx, email, password); err != nil {
		return nil, err
	}
	return s, nil
}

// Open loads an existing, logged-in session without contacting the backend.
func (m *Manager) Open(ctx context.Context, id string) (*Session, error) {
	s := New(id, m.store, m.auth, m.log)
	if err := s.Load(ctx); err != nil {
		return nil, apperrors.Internal("Failed to load session", err)
	}
	if !s.IsAuthenticated() {
		return nil, apperrors.Unauthorized(sessionerrors.ErrNotFound.Error())
	}
	return s, nil
}

// Restore is Open followed by a company refresh.
func (m *Manager) Restore(ctx context.Context, id string) (*Session, error) {
	s := New(id, m.store, m.auth, m.log)
	if err := s.Init(ctx); err != nil {
		return nil, err
	}
	if !s.IsAuthenticated() {
		return nil, apperrors.Unauthorized(sessionerrors.ErrNotFound.Error())
	}
	return s, nil
}

// Discard logs the session out and forgets it.
func (m *Manager) Discard(ctx context.Context, id string) error {
	return New(id, m.store, m.auth, m.log).Logout(ctx)
}
