package eventbridge

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/huddleapp/huddle/data/events"
	"github.com/huddleapp/huddle/data/model"
	"github.com/huddleapp/huddle/internal/global"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// ClientSession is the server half of one connected client. It owns the
// session's listener graph: every listener is keyed by scope and
// parameters, holds its own cancelable context and optional teardown
// hooks, and scope teardowns run together.
type ClientSession struct {
	gctx   global.Context
	bridge *Bridge

	sessionID string
	user      model.User

	ctx    context.Context
	cancel context.CancelFunc

	seq uint64

	mtx       sync.Mutex
	listeners map[string]*listener
	open      openConversation
	counts    map[string]int
	roster    model.Roster
}

type listener struct {
	cancel   context.CancelFunc
	teardown []func() error
}

// openConversation is the conversation the client currently has on
// screen, if any.
type openConversation struct {
	id    string
	group bool
	ok    bool
}

func newClientSession(b *Bridge, sessionID string, user model.User) *ClientSession {
	ctx, cancel := context.WithCancel(b.gctx)

	return &ClientSession{
		gctx:      b.gctx,
		bridge:    b,
		sessionID: sessionID,
		user:      user,
		ctx:       ctx,
		cancel:    cancel,
		listeners: map[string]*listener{},
		counts:    map[string]int{},
	}
}

// nextSeq issues the next dispatch sequence number. Watch goroutines
// send concurrently, so seq is only ever touched atomically.
func (s *ClientSession) nextSeq() uint64 {
	return atomic.AddUint64(&s.seq, 1)
}

// seqNow reads the latest issued sequence number.
func (s *ClientSession) seqNow() uint64 {
	return atomic.LoadUint64(&s.seq)
}

// send pushes one message onto the session's dispatch subject.
func send[D events.AnyPayload](s *ClientSession, op events.Opcode, data D) {
	msg := events.NewMessage(op, data)
	msg.Sequence = s.nextSeq()

	if err := s.gctx.Inst().Nats.Publish(s.bridge.dispatchSubject(s.sessionID), msg.Encode()); err != nil {
		zap.S().Warnw("failed to publish dispatch",
			"session_id", s.sessionID,
			"op", op.String(),
			"error", err,
		)

		return
	}

	s.gctx.Inst().Prometheus.DispatchesSent().Inc()
}

func (s *ClientSession) SendHello() {
	send(s, events.OpcodeHello, events.HelloPayload{
		SessionID: s.sessionID,
		Actor:     s.user,
	})
}

func (s *ClientSession) SendAlert(code int, message string) {
	send(s, events.OpcodeAlert, events.AlertPayload{Code: code, Message: message})
}

func (s *ClientSession) SendEndOfStream(message string) {
	send(s, events.OpcodeEndOfStream, events.EndOfStreamPayload{Code: 4000, Message: message})
}

// addListener registers a listener under its scope key, replacing any
// previous holder of the same key.
func (s *ClientSession) addListener(key string, cancel context.CancelFunc, teardown ...func() error) {
	s.mtx.Lock()
	prev := s.listeners[key]
	s.listeners[key] = &listener{cancel: cancel, teardown: teardown}
	s.mtx.Unlock()

	if prev != nil {
		prev.stop()
	}
}

func (l *listener) stop() error {
	l.cancel()

	var err error
	for _, fn := range l.teardown {
		err = multierr.Append(err, fn())
	}

	return err
}

// dropScope tears down every listener whose key starts with prefix. The
// teardown errors of the whole scope are aggregated.
func (s *ClientSession) dropScope(prefix string) error {
	s.mtx.Lock()
	doomed := map[string]*listener{}
	for k, l := range s.listeners {
		if strings.HasPrefix(k, prefix) {
			doomed[k] = l
			delete(s.listeners, k)
		}
	}
	s.mtx.Unlock()

	var err error
	for _, l := range doomed {
		err = multierr.Append(err, l.stop())
	}

	return err
}

// Close tears down the whole listener graph and runs the session's
// disconnect hook: the account's status key is cleared so peers see them
// offline without waiting for TTL expiry.
func (s *ClientSession) Close() error {
	err := s.dropScope("")

	err = multierr.Append(err, s.gctx.Inst().Presence.Set(s.gctx, s.user.ID.Hex(), model.PresenceOffline))

	s.cancel()

	return err
}

func (s *ClientSession) setOpen(open openConversation) {
	s.mtx.Lock()
	s.open = open
	s.mtx.Unlock()
}

func (s *ClientSession) openNow() openConversation {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	return s.open
}

// lastCount swaps in the latest dispatched unread count and returns the
// previous one. The audio hint fires on increases only.
func (s *ClientSession) lastCount(conversationID string, count int) int {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	prev := s.counts[conversationID]
	s.counts[conversationID] = count

	return prev
}

func (s *ClientSession) log() *zap.SugaredLogger {
	return zap.S().Named("eventbridge").With(
		"session_id", s.sessionID,
		"actor_id", s.user.ID.Hex(),
	)
}
