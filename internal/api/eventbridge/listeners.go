package eventbridge

import (
	"context"
	"time"

	"github.com/huddleapp/huddle/data/events"
	"github.com/huddleapp/huddle/data/model"
	"github.com/huddleapp/huddle/internal/errors"
	"github.com/huddleapp/huddle/internal/svc/redis"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Scope key prefixes. A listener's key is its scope plus parameters, so
// dependent listeners can be torn down by prefix when the thing they
// hang off (roster entry, conversation) goes away.
const (
	scopeGuard      = "guard"
	scopeDirectory  = "directory"
	scopeAttendance = "attendance"
	scopePresence   = "presence:"
	scopePrivate    = "unread:private:"
	scopeGroup      = "unread:group:"
)

// bindAll wires the session's initial listener graph and pushes the
// first snapshots.
func (s *ClientSession) bindAll() error {
	s.bindGuard()
	s.bindDirectory()
	s.bindAttendance()

	if err := s.refreshRoster(); err != nil {
		return err
	}

	s.pushAttendance()

	return nil
}

// watch subscribes to change-feed channels under a scope key. The
// handler runs once per decoded change event until the listener stops.
func (s *ClientSession) watch(key string, handler func(ev events.ChangeEvent), channels ...redis.Key) {
	ctx, cancel := context.WithCancel(s.ctx)

	ch := make(chan string, 64)
	s.gctx.Inst().Redis.Subscribe(ctx, ch, channels...)

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case payload := <-ch:
				ev, err := events.DecodeChangeEvent(payload)
				if err != nil {
					continue
				}

				handler(ev)
			}
		}
	}()

	s.addListener(key, cancel)
}

// bindGuard watches the actor's own account document. Any change
// re-validates the session; losing the slot ends the stream. Other
// changes (role, profile) re-run the roster since visibility may shift.
func (s *ClientSession) bindGuard() {
	self := s.user.ID.Hex()

	s.watch(scopeGuard, func(ev events.ChangeEvent) {
		if err := s.gctx.Inst().Sessions.Validate(s.ctx, s.user.ID, s.sessionID); err != nil {
			if errors.Compare(err, errors.ErrSessionInvalidated()) {
				s.SendAlert(errors.ErrSessionInvalidated().Code(), "You signed in on another device.")
				s.bridge.drop(s, "session revoked")
			}

			return
		}

		user, err := s.gctx.Inst().Query.UserByID(s.ctx, s.user.ID)
		if err != nil {
			return
		}

		s.mtx.Lock()
		s.user = user
		s.mtx.Unlock()

		_ = s.refreshRoster()
	}, s.gctx.Inst().Events.ChannelUser(self))
}

func (s *ClientSession) bindDirectory() {
	s.watch(scopeDirectory, func(ev events.ChangeEvent) {
		_ = s.refreshRoster()
	},
		s.gctx.Inst().Events.ChannelUsers(),
		s.gctx.Inst().Events.ChannelGroups(),
	)
}

// refreshRoster rebuilds the roster snapshot wholesale, pushes it, and
// reconciles the dependent presence and unread listeners against it.
// Permission failures degrade silently: the client keeps its last
// snapshot.
func (s *ClientSession) refreshRoster() error {
	roster, err := s.gctx.Inst().Directory.Roster(s.ctx, s.user)
	if err != nil {
		if errors.Compare(err, errors.ErrInsufficientPrivilege()) {
			return nil
		}

		return err
	}

	s.mtx.Lock()
	s.roster = roster
	s.mtx.Unlock()

	send(s, events.OpcodeDispatch, events.RosterPayload{Roster: roster})

	s.rebindRoster(roster)

	return nil
}

// rebindRoster reconciles per-member and per-conversation listeners with
// the roster: stale ones are torn down, new ones bound. Existing
// listeners are left untouched so no snapshot is re-pushed for unchanged
// scopes.
func (s *ClientSession) rebindRoster(roster model.Roster) {
	desired := map[string]func(){}

	for _, u := range roster.Users {
		uid := u.ID
		hex := uid.Hex()

		desired[scopePresence+hex] = func() { s.bindPresence(hex) }
		desired[scopePrivate+hex] = func() { s.bindPrivateUnread(uid) }
	}

	for _, g := range roster.Groups {
		gid := g.ID

		desired[scopeGroup+gid.Hex()] = func() { s.bindGroupUnread(gid) }
	}

	s.mtx.Lock()
	existing := map[string]bool{}
	stale := []string{}

	for k := range s.listeners {
		switch {
		case hasAnyPrefix(k, scopePresence, scopePrivate, scopeGroup):
			if _, ok := desired[k]; ok {
				existing[k] = true
			} else {
				stale = append(stale, k)
			}
		}
	}
	s.mtx.Unlock()

	for _, k := range stale {
		if err := s.dropScope(k); err != nil {
			s.log().Warnw("listener teardown failed", "key", k, "error", err)
		}
	}

	// A group conversation the client had open no longer exists in its
	// roster; close it so no further mark-reads happen against it.
	if open := s.openNow(); open.ok && open.group && !roster.HasGroup(open.id) {
		s.setOpen(openConversation{})
	}

	for k, bind := range desired {
		if !existing[k] {
			bind()
		}
	}
}

func hasAnyPrefix(s string, prefixes ...string) bool {
	for _, p := range prefixes {
		if len(s) >= len(p) && s[:len(p)] == p {
			return true
		}
	}

	return false
}

// bindPresence watches one roster member's status and pushes the current
// value right away.
func (s *ClientSession) bindPresence(hex string) {
	push := func() {
		status, err := s.gctx.Inst().Presence.Get(s.ctx, hex)
		if err != nil {
			status = model.PresenceOffline
		}

		send(s, events.OpcodeDispatch, events.PresencePayload{UserID: hex, Status: status})
	}

	s.watch(scopePresence+hex, func(ev events.ChangeEvent) {
		push()
	}, s.gctx.Inst().Events.ChannelPresence(hex))

	push()
}

// bindPrivateUnread watches the actor's mirror of one private
// conversation. While that conversation is open on screen, new messages
// are marked read immediately and the full list is re-pushed; otherwise
// the unread count is recomputed, with an audio hint on increase.
func (s *ClientSession) bindPrivateUnread(peer primitive.ObjectID) {
	hex := peer.Hex()

	s.watch(scopePrivate+hex, func(ev events.ChangeEvent) {
		open := s.openNow()
		if open.ok && !open.group && open.id == hex {
			if err := s.pushOpenConversation(hex, false); err != nil {
				s.log().Warnw("failed to push open conversation", "peer_id", hex, "error", err)
			}

			return
		}

		s.pushPrivateUnread(peer)
	}, s.gctx.Inst().Events.ChannelPrivateChat(s.user.ID.Hex(), hex))

	s.pushPrivateUnread(peer)
}

func (s *ClientSession) pushPrivateUnread(peer primitive.ObjectID) {
	count, err := s.gctx.Inst().Unread.CountPrivate(s.ctx, s.user, peer)
	if err != nil {
		return
	}

	hex := peer.Hex()
	prev := s.lastCount(hex, count)

	send(s, events.OpcodeDispatch, events.UnreadPayload{
		ConversationID: hex,
		Count:          count,
		Audio:          count > prev,
	})
}

func (s *ClientSession) bindGroupUnread(groupID primitive.ObjectID) {
	hex := groupID.Hex()

	s.watch(scopeGroup+hex, func(ev events.ChangeEvent) {
		open := s.openNow()
		if open.ok && open.group && open.id == hex {
			if err := s.pushOpenConversation(hex, true); err != nil {
				s.log().Warnw("failed to push open conversation", "group_id", hex, "error", err)
			}

			return
		}

		s.pushGroupUnread(groupID)
	}, s.gctx.Inst().Events.ChannelGroupChat(hex))

	s.pushGroupUnread(groupID)
}

func (s *ClientSession) pushGroupUnread(groupID primitive.ObjectID) {
	count, err := s.gctx.Inst().Unread.CountGroup(s.ctx, s.user, groupID)
	if err != nil {
		return
	}

	hex := groupID.Hex()
	prev := s.lastCount(hex, count)

	send(s, events.OpcodeDispatch, events.UnreadPayload{
		ConversationID: hex,
		Group:          true,
		Count:          count,
		Audio:          count > prev,
	})
}

// pushOpenConversation marks the open conversation read and pushes its
// full ordered message list, then pins the unread count at zero.
func (s *ClientSession) pushOpenConversation(id string, group bool) error {
	var msgs []model.Message

	if group {
		groupID, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return errors.ErrBadObjectID()
		}

		g, err := s.gctx.Inst().Query.GroupByID(s.ctx, groupID)
		if err != nil {
			return err
		}

		if err = s.gctx.Inst().Unread.MarkGroupRead(s.ctx, s.user, groupID); err != nil {
			return err
		}

		if msgs, err = s.gctx.Inst().Conversations.GroupHistory(s.ctx, s.user, g); err != nil {
			return err
		}
	} else {
		peerID, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return errors.ErrBadObjectID()
		}

		if err = s.gctx.Inst().Unread.MarkPrivateRead(s.ctx, s.user, peerID); err != nil {
			return err
		}

		if msgs, err = s.gctx.Inst().Conversations.PrivateHistory(s.ctx, s.user, peerID); err != nil {
			return err
		}
	}

	send(s, events.OpcodeDispatch, events.ConversationPayload{
		ConversationID: id,
		Group:          group,
		Messages:       msgs,
	})

	s.lastCount(id, 0)

	send(s, events.OpcodeDispatch, events.UnreadPayload{
		ConversationID: id,
		Group:          group,
		Count:          0,
	})

	return nil
}

func (s *ClientSession) bindAttendance() {
	s.watch(scopeAttendance, func(ev events.ChangeEvent) {
		s.pushAttendance()
	}, s.gctx.Inst().Events.ChannelTimeLogs(s.user.ID.Hex()))
}

func (s *ClientSession) pushAttendance() {
	summary, err := s.gctx.Inst().Attendance.Summary(s.ctx, s.user, time.Now())
	if err != nil {
		return
	}

	send(s, events.OpcodeDispatch, events.AttendancePayload{
		Status:       summary.Status,
		TotalBreak:   int(summary.TotalBreak / time.Minute),
		Logs:         summary.Logs,
		CheckedInVia: summary.CheckedInVia,
	})
}
