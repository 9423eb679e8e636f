package mutate

import (
	"context"
	"time"

	"github.com/huddleapp/huddle/data/events"
	"github.com/huddleapp/huddle/data/model"
	"github.com/huddleapp/huddle/internal/errors"
	"github.com/huddleapp/huddle/internal/svc/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func (m *Mutate) CreateUser(ctx context.Context, user *model.User) error {
	user.ID = primitive.NewObjectID()
	user.CreatedAt = time.Now()

	if _, err := m.mongo.Collection(mongo.CollectionNameUsers).InsertOne(ctx, user); err != nil {
		return errors.From(err)
	}

	m.events.Dispatch(ctx, events.ChangeEvent{
		Type:     events.EventTypeCreateUser,
		ObjectID: user.ID.Hex(),
	}, m.events.ChannelUsers())

	return nil
}

// AcquireSession adopts sessionID as the account's single active session
// via an atomic compare-and-set: the write only matches when the stored
// value is empty or already equals sessionID. A near-simultaneous sign-in
// on another device can still slip through the read-check window; that
// race is accepted, the loser is evicted by the session watch instead.
func (m *Mutate) AcquireSession(ctx context.Context, userID primitive.ObjectID, sessionID string) error {
	res, err := m.mongo.Collection(mongo.CollectionNameUsers).UpdateOne(ctx, bson.M{
		"_id": userID,
		"$or": bson.A{
			bson.M{"session_id": ""},
			bson.M{"session_id": sessionID},
			bson.M{"session_id": bson.M{"$exists": false}},
		},
	}, bson.M{"$set": bson.M{
		"session_id": sessionID,
		"last_seen":  time.Now(),
	}})
	if err != nil {
		return errors.From(err)
	}

	if res.MatchedCount == 0 {
		return errors.ErrSessionConflict()
	}

	m.events.Dispatch(ctx, events.ChangeEvent{
		Type:     events.EventTypeUpdateUser,
		ObjectID: userID.Hex(),
	}, m.events.ChannelUser(userID.Hex()))

	return nil
}

// TakeOverSession unconditionally replaces the stored session value,
// evicting whichever session held it. The previous holder finds out
// through its session watch.
func (m *Mutate) TakeOverSession(ctx context.Context, userID primitive.ObjectID, sessionID string) error {
	_, err := m.mongo.Collection(mongo.CollectionNameUsers).UpdateOne(ctx, bson.M{"_id": userID},
		bson.M{"$set": bson.M{
			"session_id": sessionID,
			"last_seen":  time.Now(),
		}})
	if err != nil {
		return errors.From(err)
	}

	m.events.Dispatch(ctx, events.ChangeEvent{
		Type:     events.EventTypeUpdateUser,
		ObjectID: userID.Hex(),
	}, m.events.ChannelUser(userID.Hex()))

	return nil
}

// ReleaseSession clears the stored session value only while it still
// equals sessionID, so a newer sign-in is never clobbered by a stale
// sign-out.
func (m *Mutate) ReleaseSession(ctx context.Context, userID primitive.ObjectID, sessionID string) error {
	_, err := m.mongo.Collection(mongo.CollectionNameUsers).UpdateOne(ctx, bson.M{
		"_id":        userID,
		"session_id": sessionID,
	}, bson.M{"$set": bson.M{
		"session_id": "",
		"last_seen":  time.Now(),
	}})
	if err != nil {
		return errors.From(err)
	}

	m.events.Dispatch(ctx, events.ChangeEvent{
		Type:     events.EventTypeUpdateUser,
		ObjectID: userID.Hex(),
	}, m.events.ChannelUser(userID.Hex()))

	return nil
}
