package eventbridge

import (
	"fmt"

	"github.com/huddleapp/huddle/data/events"
	"github.com/huddleapp/huddle/internal/api/rest/middleware"
	"github.com/huddleapp/huddle/internal/errors"
)

// handleBind authenticates a client session and wires its listener
// graph. Binding an already-bound session id replaces the old binding.
func (b *Bridge) handleBind(cmd events.BridgedCommand) error {
	body, err := events.DecodeCommandBody[events.BindCommandBody](cmd.Body)
	if err != nil {
		return err
	}

	user, sessionID, authErr := middleware.DoAuth(b.gctx, body.Token)
	if authErr != nil {
		return authErr
	}

	if cmd.SessionID != sessionID {
		return errors.ErrUnauthorized().SetDetail("token was minted for another session")
	}

	if prev, ok := b.session(sessionID); ok {
		b.drop(prev, "session rebound")
	}

	s := newClientSession(b, sessionID, user)

	b.mtx.Lock()
	b.sessions[sessionID] = s
	b.mtx.Unlock()

	b.gctx.Inst().Prometheus.SessionsActive().Inc()

	s.SendHello()

	return s.bindAll()
}

// handleOpen records which conversation the client has on screen. An
// open conversation is marked read immediately and its full message list
// is pushed; its unread count pins at zero until it is closed again.
func (b *Bridge) handleOpen(cmd events.BridgedCommand) error {
	s, ok := b.session(cmd.SessionID)
	if !ok {
		return fmt.Errorf("open for unbound session %s", cmd.SessionID)
	}

	body, err := events.DecodeCommandBody[events.OpenCommandBody](cmd.Body)
	if err != nil {
		return err
	}

	if !body.Open {
		s.setOpen(openConversation{})

		return nil
	}

	s.setOpen(openConversation{id: body.ConversationID, group: body.Group, ok: true})

	return s.pushOpenConversation(body.ConversationID, body.Group)
}

func (b *Bridge) handleHeartbeat(cmd events.BridgedCommand) error {
	s, ok := b.session(cmd.SessionID)
	if !ok {
		return fmt.Errorf("heartbeat for unbound session %s", cmd.SessionID)
	}

	if err := b.gctx.Inst().Presence.Heartbeat(b.gctx, s.user.ID.Hex()); err != nil {
		return err
	}

	send(s, events.OpcodeHeartbeat, events.HeartbeatPayload{Count: s.seqNow()})

	return nil
}

func (b *Bridge) handleUnbind(cmd events.BridgedCommand) error {
	s, ok := b.session(cmd.SessionID)
	if !ok {
		return nil
	}

	b.drop(s, "client disconnected")

	return nil
}
