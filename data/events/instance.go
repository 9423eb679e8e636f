package events

import (
	"context"
	"sync"
	"time"

	"github.com/huddleapp/huddle/internal/svc/redis"
	"go.uber.org/zap"
)

type Instance interface {
	// Dispatch queues a change event for publication on the given
	// channels. Publication is asynchronous and best-effort.
	Dispatch(ctx context.Context, ev ChangeEvent, channels ...redis.Key)

	// Channel composition for the change feed. One channel per
	// subscription scope; the eventbridge subscribes with these same
	// helpers so publishers and listeners cannot drift apart.
	ChannelUsers() redis.Key
	ChannelGroups() redis.Key
	ChannelUser(idHex string) redis.Key
	ChannelPresence(idHex string) redis.Key
	ChannelPrivateChat(ownerHex, peerHex string) redis.Key
	ChannelGroupChat(groupHex string) redis.Key
	ChannelTimeLogs(idHex string) redis.Key
}

type queued struct {
	ev       ChangeEvent
	channels []redis.Key
}

type inst struct {
	ctx   context.Context
	redis redis.Instance

	mtx   sync.Mutex
	queue []queued
}

func NewPublisher(ctx context.Context, rdis redis.Instance) Instance {
	ticker := time.NewTicker(50 * time.Millisecond)

	i := &inst{
		ctx:   ctx,
		redis: rdis,
	}

	go func() {
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				i.flush()
			}
		}
	}()

	return i
}

func (i *inst) flush() {
	i.mtx.Lock()
	items := i.queue
	i.queue = nil
	i.mtx.Unlock()

	if len(items) == 0 {
		return
	}

	p := i.redis.RawClient().Pipeline()

	for _, q := range items {
		j, err := json.Marshal(q.ev)
		if err != nil {
			continue
		}

		for _, ch := range q.channels {
			p.Publish(i.ctx, ch.String(), string(j))
		}
	}

	if _, err := p.Exec(i.ctx); err != nil {
		zap.S().Warnw("failed to publish change events",
			"error", err.Error(),
		)
	}
}

func (i *inst) Dispatch(ctx context.Context, ev ChangeEvent, channels ...redis.Key) {
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now()
	}

	i.mtx.Lock()
	i.queue = append(i.queue, queued{ev: ev, channels: channels})
	i.mtx.Unlock()
}

func (i *inst) ChannelUsers() redis.Key {
	return i.redis.ComposeKey("events", "users")
}

func (i *inst) ChannelGroups() redis.Key {
	return i.redis.ComposeKey("events", "groups")
}

func (i *inst) ChannelUser(idHex string) redis.Key {
	return i.redis.ComposeKey("events", "user", idHex)
}

func (i *inst) ChannelPresence(idHex string) redis.Key {
	return i.redis.ComposeKey("events", "presence", idHex)
}

func (i *inst) ChannelPrivateChat(ownerHex, peerHex string) redis.Key {
	return i.redis.ComposeKey("events", "chat", ownerHex, peerHex)
}

func (i *inst) ChannelGroupChat(groupHex string) redis.Key {
	return i.redis.ComposeKey("events", "group-chat", groupHex)
}

func (i *inst) ChannelTimeLogs(idHex string) redis.Key {
	return i.redis.ComposeKey("events", "timelogs", idHex)
}

func DecodeChangeEvent(payload string) (ChangeEvent, error) {
	var ev ChangeEvent
	err := json.Unmarshal([]byte(payload), &ev)

	return ev, err
}
