package events

import (
	"github.com/huddleapp/huddle/data/model"
)

type AnyPayload interface {
	HelloPayload | RosterPayload | PresencePayload | UnreadPayload |
		ConversationPayload | AttendancePayload | AlertPayload |
		EndOfStreamPayload | HeartbeatPayload
}

// HelloPayload greets a freshly bound client session.
type HelloPayload struct {
	SessionID string     `json:"session_id"`
	Actor     model.User `json:"actor"`
}

// RosterPayload carries a wholesale roster snapshot.
type RosterPayload struct {
	Roster model.Roster `json:"roster"`
}

// PresencePayload carries one peer's current status.
type PresencePayload struct {
	UserID string               `json:"user_id"`
	Status model.PresenceStatus `json:"status"`
}

// UnreadPayload carries the unread count for one conversation. Audio is
// set when the count increased while the conversation was not open.
type UnreadPayload struct {
	ConversationID string `json:"conversation_id"`
	Group          bool   `json:"group,omitempty"`
	Count          int    `json:"count"`
	Audio          bool   `json:"audio,omitempty"`
}

// ConversationPayload carries the full ordered message list of the open
// conversation.
type ConversationPayload struct {
	ConversationID string          `json:"conversation_id"`
	Group          bool            `json:"group,omitempty"`
	Messages       []model.Message `json:"messages"`
}

// AttendancePayload carries today's log and the derived status.
type AttendancePayload struct {
	Status       model.AttendanceStatus  `json:"status"`
	TotalBreak   int                     `json:"total_break_minutes"`
	Logs         []model.AttendanceEvent `json:"logs"`
	CheckedInVia string                  `json:"checked_in_via,omitempty"`
}

// AlertPayload is a blocking alert the client must surface before acting
// on the accompanying opcode (e.g. a forced sign-out).
type AlertPayload struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type EndOfStreamPayload struct {
	Code    int    `json:"code"`
	Message string `json:"message,omitempty"`
}

type HeartbeatPayload struct {
	Count uint64 `json:"count"`
}
