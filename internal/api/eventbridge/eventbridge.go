package eventbridge

import (
	"fmt"
	"sync"

	"github.com/huddleapp/huddle/data/events"
	"github.com/huddleapp/huddle/internal/global"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

// The session bridge binds connected clients to their subscription graph.
// Commands arrive from the push gateway on the bridge subject; snapshots
// leave on each session's own dispatch subject.

type Bridge struct {
	gctx global.Context

	mtx      sync.Mutex
	sessions map[string]*ClientSession
}

func New(gctx global.Context) (<-chan struct{}, error) {
	b := &Bridge{
		gctx:     gctx,
		sessions: map[string]*ClientSession{},
	}

	done := make(chan struct{})

	sub, err := gctx.Inst().Nats.Subscribe(b.subject("bridge"), func(msg *nats.Msg) {
		cmd, err := events.DecodeBridgedCommand(msg.Data)
		if err != nil {
			zap.S().Errorw("invalid bridge command", "error", err)

			return
		}

		go b.handle(cmd)
	})
	if err != nil {
		return nil, err
	}

	go func() {
		defer close(done)

		<-gctx.Done()

		_ = sub.Unsubscribe()

		b.closeAll()
	}()

	return done, nil
}

func (b *Bridge) subject(parts ...string) string {
	s := b.gctx.Config().Nats.SubjectPrefix
	if s == "" {
		s = "huddle"
	}

	for _, p := range parts {
		s += "." + p
	}

	return s
}

func (b *Bridge) dispatchSubject(sessionID string) string {
	return b.subject("client", sessionID, "dispatch")
}

func (b *Bridge) handle(cmd events.BridgedCommand) {
	var err error

	switch cmd.Name {
	case "bind":
		err = b.handleBind(cmd)
	case "open":
		err = b.handleOpen(cmd)
	case "heartbeat":
		err = b.handleHeartbeat(cmd)
	case "unbind":
		err = b.handleUnbind(cmd)
	default:
		err = fmt.Errorf("undocumented bridge command %s", cmd.Name)
	}

	if err != nil {
		zap.S().Errorw("bridge command failed",
			"command", cmd.Name,
			"session_id", cmd.SessionID,
			"error", err,
		)
	}
}

func (b *Bridge) session(id string) (*ClientSession, bool) {
	b.mtx.Lock()
	defer b.mtx.Unlock()

	s, ok := b.sessions[id]

	return s, ok
}

func (b *Bridge) closeAll() {
	b.mtx.Lock()
	sessions := make([]*ClientSession, 0, len(b.sessions))
	for _, s := range b.sessions {
		sessions = append(sessions, s)
	}
	b.mtx.Unlock()

	for _, s := range sessions {
		b.drop(s, "server shutting down")
	}
}

// drop tears a session down and forgets it.
func (b *Bridge) drop(s *ClientSession, reason string) {
	b.mtx.Lock()
	if _, ok := b.sessions[s.sessionID]; !ok {
		b.mtx.Unlock()
		return
	}

	delete(b.sessions, s.sessionID)
	b.mtx.Unlock()

	s.SendEndOfStream(reason)

	if err := s.Close(); err != nil {
		zap.S().Warnw("session teardown finished with errors",
			"session_id", s.sessionID,
			"error", err,
		)
	}

	b.gctx.Inst().Prometheus.SessionsActive().Dec()
}
