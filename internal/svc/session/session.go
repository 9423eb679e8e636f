package session

import (
	"context"

	"github.com/google/uuid"
	"github.com/huddleapp/huddle/data/mutate"
	"github.com/huddleapp/huddle/data/query"
	"github.com/huddleapp/huddle/internal/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Instance guards the one-session-per-account invariant. Acquire claims
// the account's session slot, Validate re-checks ownership whenever the
// account document changes, and Release vacates the slot on sign-out.
type Instance interface {
	Acquire(ctx context.Context, userID primitive.ObjectID, takeover bool) (string, error)
	Validate(ctx context.Context, userID primitive.ObjectID, sessionID string) error
	Release(ctx context.Context, userID primitive.ObjectID, sessionID string) error
}

type inst struct {
	query  *query.Query
	mutate *mutate.Mutate
}

type Options struct {
	Query  *query.Query
	Mutate *mutate.Mutate
}

func New(opt Options) Instance {
	return &inst{
		query:  opt.Query,
		mutate: opt.Mutate,
	}
}

// Acquire claims the account's session slot with a fresh session id. The
// claim is a compare-and-set against an empty slot; when the slot is held
// and takeover is set, the holder is evicted instead. Two sign-ins racing
// for an empty slot settle on exactly one winner, but a sign-in racing a
// takeover can be evicted immediately after winning; the session watch
// resolves that case.
func (i *inst) Acquire(ctx context.Context, userID primitive.ObjectID, takeover bool) (string, error) {
	sessionID := uuid.NewString()

	err := i.mutate.AcquireSession(ctx, userID, sessionID)
	if err == nil {
		return sessionID, nil
	}

	if !errors.Compare(err, errors.ErrSessionConflict()) {
		return "", err
	}

	if !takeover {
		return "", err
	}

	if err = i.mutate.TakeOverSession(ctx, userID, sessionID); err != nil {
		return "", err
	}

	return sessionID, nil
}

// Validate reports whether sessionID is still the account's active
// session. A mismatch means another sign-in took the slot and this
// session must terminate.
func (i *inst) Validate(ctx context.Context, userID primitive.ObjectID, sessionID string) error {
	user, err := i.query.UserByID(ctx, userID)
	if err != nil {
		return err
	}

	if user.SessionID != sessionID {
		return errors.ErrSessionInvalidated()
	}

	return nil
}

// Release vacates the session slot. The underlying write only matches
// while the slot still holds sessionID, so a stale sign-out never evicts
// a newer session.
func (i *inst) Release(ctx context.Context, userID primitive.ObjectID, sessionID string) error {
	return i.mutate.ReleaseSession(ctx, userID, sessionID)
}
