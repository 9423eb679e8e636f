package model

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestMessageReadByUser(t *testing.T) {
	t.Parallel()

	reader := primitive.NewObjectID()
	other := primitive.NewObjectID()

	msg := Message{ReadBy: map[string]bool{reader.Hex(): true}}

	if !msg.ReadByUser(reader) {
		t.Fatal("reader marker must be visible")
	}
	if msg.ReadByUser(other) {
		t.Fatal("unmarked account must read as unread")
	}

	var empty Message
	if empty.ReadByUser(reader) {
		t.Fatal("nil marker map must read as unread")
	}
}

func TestGroupHasMember(t *testing.T) {
	t.Parallel()

	a := primitive.NewObjectID()
	b := primitive.NewObjectID()

	g := Group{Members: []primitive.ObjectID{a}}

	if !g.HasMember(a) {
		t.Fatal("member must be found")
	}
	if g.HasMember(b) {
		t.Fatal("non-member must not be found")
	}
}

func TestRosterHasGroup(t *testing.T) {
	t.Parallel()

	g := Group{ID: primitive.NewObjectID()}
	r := Roster{Groups: []Group{g}}

	if !r.HasGroup(g.ID.Hex()) {
		t.Fatal("group must be found")
	}
	if r.HasGroup(primitive.NewObjectID().Hex()) {
		t.Fatal("absent group must not be found")
	}
}

func TestPresenceStatusValid(t *testing.T) {
	t.Parallel()

	for _, s := range []PresenceStatus{PresenceOnline, PresenceOnBreak, PresenceOffline} {
		if !s.Valid() {
			t.Fatalf("%s must be valid", s)
		}
	}

	if PresenceStatus("away").Valid() {
		t.Fatal("undocumented status must be invalid")
	}
}

func TestAttendanceEventTypeValid(t *testing.T) {
	t.Parallel()

	for _, typ := range []AttendanceEventType{
		AttendanceCheckIn, AttendanceCheckOut, AttendanceBreakStart, AttendanceBreakEnd,
	} {
		if !typ.Valid() {
			t.Fatalf("%s must be valid", typ)
		}
	}

	if AttendanceEventType("nap").Valid() {
		t.Fatal("undocumented event type must be invalid")
	}
}
