package session

import (
	"context"
	"sync"

	sessionerrors "studiodesk/internal/session/errors"
	"studiodesk/pkg/model"
)

// Store persists session state between requests or CLI invocations.
// Load returns sessionerrors.ErrNotFound for an unknown ID.
type Store interface {
	Load(ctx context.Context, id string) (*model.SessionState, error)
	Save(ctx context.Context, state *model.SessionState) error
	Delete(ctx context.Context, id string) error
}

// MemoryStore keeps sessions in process memory. Tests and single-shot
// tools use it.
type MemoryStore struct {
	mu     sync.RWMutex
	states map[string]*model.SessionState
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{states: make(map[string]*model.SessionState)}
}

func (s *MemoryStore) Load(_ context.Context, id string) (*model.SessionState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.states[id]
	if !ok {
		return nil, sessionerrors.ErrNotFound
	}
	return cloneState(state), nil
}

func (s *MemoryStore) Save(_ context.Context, state *model.SessionState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[state.ID] = cloneState(state)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, id)
	return nil
}

func cloneState(state *model.SessionState) *model.SessionState {
	c := *state
	c.Companies = append([]*model.Company(nil), state.Companies...)
	if state.Role != nil {
		role := *state.Role
		c.Role = &role
	}
	return &c
}
