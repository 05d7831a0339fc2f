package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	sessionerrors "studiodesk/internal/session/errors"
	"studiodesk/pkg/client"
	apperrors "studiodesk/pkg/errors"
	"studiodesk/pkg/logger"
	"studiodesk/pkg/model"
)

// AuthAPI is the part of the booking backend a session talks to.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*client.LoginResult, error)
	GetCompanies(ctx context.Context) ([]*model.Company, error)
}

// Session is the signed-in user together with the company and role they
// work under. One Session serves one user; the calendar server opens one
// per request from its ID, the CLI keeps one per process.
type Session struct {
	id    string
	store Store
	auth  AuthAPI
	log   *logger.Logger
	now   func() time.Time

	mu    sync.RWMutex
	state *model.SessionState
}

func New(id string, store Store, auth AuthAPI, log *logger.Logger) *Session {
	return &Session{
		id:    id,
		store: store,
		auth:  auth,
		log:   log,
		now:   time.Now,
		state: &model.SessionState{ID: id},
	}
}

func (s *Session) ID() string { return s.id }

// Load restores the stored state. A missing session leaves s logged out.
func (s *Session) Load(ctx context.Context) error {
	state, err := s.store.Load(ctx, s.id)
	if err != nil {
		if errors.Is(err, sessionerrors.ErrNotFound) {
			s.reset()
			return nil
		}
		return fmt.Errorf("load session %s: %w", s.id, err)
	}

	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
	return nil
}

// Init loads the stored state and, when a token is present, refreshes the
// company list with it. A token the backend no longer accepts logs the
// session out.
func (s *Session) Init(ctx context.Context) error {
	if err := s.Load(ctx); err != nil {
		return err
	}
	if !s.IsAuthenticated() {
		return nil
	}

	companies, err := s.auth.GetCompanies(s.Context(ctx))
	if err != nil {
		s.log.Warn("Failed to refresh companies, logging out",
			"session_id", s.id,
			"error", err,
		)
		if logoutErr := s.Logout(ctx); logoutErr != nil {
			s.log.Error("Failed to clear session", "session_id", s.id, "error", logoutErr)
		}
		return err
	}

	s.mu.Lock()
	s.state.Companies = companies
	if s.state.SelectedCompany != nil && findCompany(companies, s.state.SelectedCompany.ID) == nil {
		s.state.SelectedCompany = nil
		s.state.Role = nil
	}
	s.mu.Unlock()
	return s.save(ctx)
}

// Login exchanges credentials for a token and fetches the user's companies.
// Any previous company selection is dropped.
func (s *Session) Login(ctx context.Context, email, password string) error {
	result, err := s.auth.Login(ctx, email, password)
	if err != nil {
		s.log.Warn("Login failed", "email", email, "error", err)
		return err
	}

	companies, err := s.auth.GetCompanies(client.WithToken(ctx, result.Token))
	if err != nil {
		s.log.Error("Failed to fetch companies after login", "email", email, "error", err)
		return err
	}

	s.mu.Lock()
	s.state = &model.SessionState{
		ID:        s.id,
		Token:     result.Token,
		User:      result.User,
		Companies: companies,
	}
	s.mu.Unlock()

	if err := s.save(ctx); err != nil {
		return err
	}
	s.log.Info("Logged in",
		"session_id", s.id,
		"user_id", result.User.ID,
		"companies", len(companies),
	)
	return nil
}

func (s *Session) Logout(ctx context.Context) error {
	s.reset()
	if err := s.store.Delete(ctx, s.id); err != nil && !errors.Is(err, sessionerrors.ErrNotFound) {
		return fmt.Errorf("delete session %s: %w", s.id, err)
	}
	return nil
}

// SelectCompany picks one of the user's companies together with the role
// the user acts in there.
func (s *Session) SelectCompany(ctx context.Context, companyID string, role model.StaffRole) error {
	s.mu.Lock()
	if s.state.Token == "" {
		s.mu.Unlock()
		return apperrors.Unauthorized(sessionerrors.ErrNotAuthenticated.Error())
	}
	company := findCompany(s.state.Companies, companyID)
	if company == nil {
		s.mu.Unlock()
		return apperrors.NotFoundWithID("Company", companyID).WithDetails(map[string]any{
			"error": sessionerrors.ErrUnknownCompany.Error(),
		})
	}
	s.state.SelectedCompany = company
	s.state.Role = &role
	s.mu.Unlock()

	return s.save(ctx)
}

func (s *Session) ClearCompany(ctx context.Context) error {
	s.mu.Lock()
	s.state.SelectedCompany = nil
	s.state.Role = nil
	s.mu.Unlock()
	return s.save(ctx)
}

func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Token != ""
}

func (s *Session) HasCompanySelected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.SelectedCompany != nil
}

// HasRole reports whether the current role is any of roles.
func (s *Session) HasRole(roles ...model.StaffRole) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.Role == nil {
		return false
	}
	for _, r := range roles {
		if *s.state.Role == r {
			return true
		}
	}
	return false
}

// Context attaches the session token to ctx for backend calls.
func (s *Session) Context(ctx context.Context) context.Context {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return client.WithToken(ctx, s.state.Token)
}

// State returns a copy of the current state.
func (s *Session) State() *model.SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneState(s.state)
}

// Scope is what a company-bound screen needs from the session.
type Scope struct {
	CompanyID     string
	StaffMemberID string
	Role          model.StaffRole
}

// RequireCompany returns the current Scope, or an error when the user is
// logged out or has not picked a company yet.
func (s *Session) RequireCompany() (Scope, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state.Token == "" {
		return Scope{}, apperrors.Unauthorized(sessionerrors.ErrNotAuthenticated.Error())
	}
	if s.state.SelectedCompany == nil || s.state.Role == nil {
		return Scope{}, apperrors.Forbidden(sessionerrors.ErrNoCompany.Error())
	}
	scope := Scope{CompanyID: s.state.SelectedCompany.ID, Role: *s.state.Role}
	if s.state.User != nil {
		scope.StaffMemberID = s.state.User.ID
	}
	return scope, nil
}

func (s *Session) save(ctx context.Context) error {
	s.mu.Lock()
	s.state.UpdatedAt = s.now().UTC().Truncate(time.Millisecond)
	state := cloneState(s.state)
	s.mu.Unlock()

	if err := s.store.Save(ctx, state); err != nil {
		return apperrors.Internal("Failed to save session", err)
	}
	return nil
}

func (s *Session) reset() {
	s.mu.Lock()
	s.state = &model.SessionState{ID: s.id}
	s.mu.Unlock()
}

func findCompany(companies []*model.Company, id string) *model.Company {
	for _, c := range companies {
		if c != nil && c.ID == id {
			return c
		}
	}
	return nil
}
