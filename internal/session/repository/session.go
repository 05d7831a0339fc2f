package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	sessionerrors "studiodesk/internal/session/errors"
	"studiodesk/pkg/config"
	"studiodesk/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Sessions"
)

type mongoSessionRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
	sealer     TokenSealer
}

// TokenSealer protects the backend token while it sits in the database.
type TokenSealer interface {
	Seal(plaintext string) (string, error)
	Open(token string) (string, error)
}

type SessionRepository interface {
	Load(ctx context.Context, id string) (*model.SessionState, error)
	Save(ctx context.Context, state *model.SessionState) error
	Delete(ctx context.Context, id string) error
}

// NewMongoSessionRepository stores tokens as given when sealer is nil.
func NewMongoSessionRepository(cfg *config.Config, sealer TokenSealer) SessionRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoSessionRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
		sealer:     sealer,
	}
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) < timeout {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

// Load treats a session past its TTL as missing. Mongo's TTL monitor only
// sweeps once a minute.
func (r *mongoSessionRepository) Load(ctx context.Context, id string) (*model.SessionState, error) {
	ctx, cancel := withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var state model.SessionState
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&state)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", sessionerrors.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to find session: %w", err)
	}

	if r.cfg.SessionTTL > 0 && time.Since(state.UpdatedAt) > r.cfg.SessionTTL {
		return nil, fmt.Errorf("%w: %s", sessionerrors.ErrNotFound, id)
	}

	if err := r.openToken(&state); err != nil {
		// Sealed under a rotated key. The user has to log in again.
		return nil, fmt.Errorf("%w: %s", sessionerrors.ErrNotFound, id)
	}
	return &state, nil
}

func (r *mongoSessionRepository) Save(ctx context.Context, state *model.SessionState) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	doc, err := r.sealToken(state)
	if err != nil {
		return err
	}

	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, opts); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (r *mongoSessionRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("%w: %s", sessionerrors.ErrNotFound, id)
	}
	return nil
}

// sealToken returns the document to store. state itself keeps the plain
// token.
func (r *mongoSessionRepository) sealToken(state *model.SessionState) (*model.SessionState, error) {
	doc := *state
	if r.sealer == nil || doc.Token == "" {
		return &doc, nil
	}
	sealed, err := r.sealer.Seal(doc.Token)
	if err != nil {
		return nil, fmt.Errorf("failed to seal session token: %w", err)
	}
	doc.Token = sealed
	return &doc, nil
}

func (r *mongoSessionRepository) openToken(state *model.SessionState) error {
	if r.sealer == nil || state.Token == "" {
		return nil
	}
	token, err := r.sealer.Open(state.Token)
	if err != nil {
		return err
	}
	state.Token = token
	return nil
}
