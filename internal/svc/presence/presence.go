package presence

import (
	"context"
	"time"

	"github.com/huddleapp/huddle/data/events"
	"github.com/huddleapp/huddle/data/model"
	"github.com/huddleapp/huddle/internal/errors"
	"github.com/huddleapp/huddle/internal/svc/redis"
	"github.com/patrickmn/go-cache"
)

// Instance tracks per-account connectivity in the key-value store. A
// status key lives only as long as its TTL keeps getting refreshed by
// heartbeats; an absent key reads as offline, which also covers abrupt
// disconnects where no teardown write ever happens.
type Instance interface {
	Set(ctx context.Context, userID string, status model.PresenceStatus) error
	Get(ctx context.Context, userID string) (model.PresenceStatus, error)
	Snapshot(ctx context.Context, userIDs []string) map[string]model.PresenceStatus
	Heartbeat(ctx context.Context, userID string) error
	LastSeen(userID string) (time.Time, bool)
}

type inst struct {
	redis  redis.Instance
	events events.Instance

	ttl      time.Duration
	lastSeen *cache.Cache
}

type Options struct {
	Redis  redis.Instance
	Events events.Instance
	TTL    time.Duration
}

func New(opt Options) Instance {
	if opt.TTL == 0 {
		opt.TTL = time.Minute
	}

	return &inst{
		redis:    opt.Redis,
		events:   opt.Events,
		ttl:      opt.TTL,
		lastSeen: cache.New(time.Hour*24, time.Hour),
	}
}

func (i *inst) key(userID string) redis.Key {
	return i.redis.ComposeKey("presence", userID)
}

// Set writes the account's status. Offline is expressed by deleting the
// key rather than storing the value, so the absent-means-offline default
// and an explicit sign-out are indistinguishable to readers.
func (i *inst) Set(ctx context.Context, userID string, status model.PresenceStatus) error {
	if !status.Valid() {
		return errors.ErrInvalidRequest().SetDetail("bad presence status %s", status)
	}

	var err error

	if status == model.PresenceOffline {
		err = i.redis.Del(ctx, i.key(userID))
	} else {
		err = i.redis.SetEX(ctx, i.key(userID), string(status), i.ttl)
	}

	if err != nil {
		return errors.From(err)
	}

	i.lastSeen.SetDefault(userID, time.Now())

	i.events.Dispatch(ctx, events.ChangeEvent{
		Type:     events.EventTypeUpdatePresence,
		ObjectID: userID,
		ActorID:  userID,
	}, i.events.ChannelPresence(userID))

	return nil
}

func (i *inst) Get(ctx context.Context, userID string) (model.PresenceStatus, error) {
	v, err := i.redis.Get(ctx, i.key(userID))
	if err != nil {
		if err == redis.Nil {
			return model.PresenceOffline, nil
		}

		return model.PresenceOffline, errors.From(err)
	}

	status := model.PresenceStatus(v)
	if !status.Valid() {
		return model.PresenceOffline, nil
	}

	return status, nil
}

// Snapshot reads the status of every given account. Read failures degrade
// to offline per account rather than failing the whole snapshot.
func (i *inst) Snapshot(ctx context.Context, userIDs []string) map[string]model.PresenceStatus {
	result := make(map[string]model.PresenceStatus, len(userIDs))

	for _, id := range userIDs {
		status, err := i.Get(ctx, id)
		if err != nil {
			status = model.PresenceOffline
		}

		result[id] = status
	}

	return result
}

// Heartbeat extends the status key's lifetime. If the key already
// expired the account re-enters as online; a break status survives only
// as long as heartbeats arrive before expiry.
func (i *inst) Heartbeat(ctx context.Context, userID string) error {
	_, err := i.redis.Get(ctx, i.key(userID))
	if err == redis.Nil {
		return i.Set(ctx, userID, model.PresenceOnline)
	}

	if err != nil {
		return errors.From(err)
	}

	if err = i.redis.Expire(ctx, i.key(userID), i.ttl); err != nil {
		return errors.From(err)
	}

	i.lastSeen.SetDefault(userID, time.Now())

	return nil
}

func (i *inst) LastSeen(userID string) (time.Time, bool) {
	v, ok := i.lastSeen.Get(userID)
	if !ok {
		return time.Time{}, false
	}

	return v.(time.Time), true
}
