// Package keyringstore keeps the CLI session in the OS keyring, so the
// token never lands in a plain file.
package keyringstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	sessionerrors "studiodesk/internal/session/errors"
	"studiodesk/pkg/model"

	"github.com/zalando/go-keyring"
)

const DefaultService = "studiodesk"

// DefaultSessionID is the single session slot the CLI uses.
const DefaultSessionID = "default"

// record is what gets stored. SessionState hides its token from JSON.
type record struct {
	State *model.SessionState `json:"state"`
	Token string              `json:"token"`
}

type Store struct {
	service string
}

func New(service string) *Store {
	if service == "" {
		service = DefaultService
	}
	return &Store{service: service}
}

func (s *Store) Load(_ context.Context, id string) (*model.SessionState, error) {
	raw, err := keyring.Get(s.service, id)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", sessionerrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to read keyring: %w", err)
	}

	var rec record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil || rec.State == nil {
		return nil, fmt.Errorf("%w: unreadable keyring entry for %s", sessionerrors.ErrNotFound, id)
	}
	rec.State.ID = id
	rec.State.Token = rec.Token
	return rec.State, nil
}

func (s *Store) Save(_ context.Context, state *model.SessionState) error {
	data, err := json.Marshal(record{State: state, Token: state.Token})
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := keyring.Set(s.service, state.ID, string(data)); err != nil {
		return fmt.Errorf("failed to write keyring: %w", err)
	}
	return nil
}

func (s *Store) Delete(_ context.Context, id string) error {
	if err := keyring.Delete(s.service, id); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return fmt.Errorf("%w: %s", sessionerrors.ErrNotFound, id)
		}
		return fmt.Errorf("failed to delete keyring entry: %w", err)
	}
	return nil
}
