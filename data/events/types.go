package events

import (
	"strings"
	"time"
)

// EventType identifies what changed on the internal change feed. The
// object segment selects the channel family; subscribers re-query the
// document store wholesale on every delivery rather than patching state
// from the event body.
type EventType string

const (
	// Directory

	EventTypeAnyUser    EventType = "user.*"
	EventTypeCreateUser EventType = "user.create"
	EventTypeUpdateUser EventType = "user.update"

	EventTypeAnyGroup    EventType = "group.*"
	EventTypeCreateGroup EventType = "group.create"
	EventTypeUpdateGroup EventType = "group.update"

	// Conversations

	EventTypeAnyMessage    EventType = "message.*"
	EventTypeCreateMessage EventType = "message.create"
	EventTypeUpdateMessage EventType = "message.update"

	// Ephemeral state

	EventTypeUpdatePresence EventType = "presence.update"

	// Attendance

	EventTypeAppendTimeLog EventType = "timelog.append"
)

func (et EventType) Split() []string {
	a := strings.Split(string(et), ".")
	if len(a) == 0 {
		return []string{"any", "*"}
	}

	return a
}

func (et EventType) ObjectName() string {
	return et.Split()[0]
}

// ChangeEvent is the body published on the change feed. It names the
// changed object; it never carries the object itself.
type ChangeEvent struct {
	Type      EventType `json:"type"`
	ObjectID  string    `json:"object_id,omitempty"`
	ActorID   string    `json:"actor_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
