package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AttendanceEventType string

const (
	AttendanceCheckIn    AttendanceEventType = "checkin"
	AttendanceCheckOut   AttendanceEventType = "checkout"
	AttendanceBreakStart AttendanceEventType = "breakStart"
	AttendanceBreakEnd   AttendanceEventType = "breakEnd"
)

func (t AttendanceEventType) Valid() bool {
	switch t {
	case AttendanceCheckIn, AttendanceCheckOut, AttendanceBreakStart, AttendanceBreakEnd:
		return true
	}

	return false
}

// AttendanceEvent is one append-only work log entry. Status is never
// stored; it is always derived from the last event of the day.
type AttendanceEvent struct {
	ID        primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	UserID    primitive.ObjectID  `json:"user_id" bson:"user_id"`
	Type      AttendanceEventType `json:"type" bson:"type"`
	BreakType string              `json:"break_type,omitempty" bson:"break_type,omitempty"`
	Note      string              `json:"note,omitempty" bson:"note,omitempty"`
	Timestamp time.Time           `json:"timestamp" bson:"timestamp"`
}

type AttendanceStatus string

const (
	AttendanceStatusOffline    AttendanceStatus = "offline"
	AttendanceStatusCheckedIn  AttendanceStatus = "checkedIn"
	AttendanceStatusOnBreak    AttendanceStatus = "onBreak"
	AttendanceStatusCheckedOut AttendanceStatus = "checkedOut"
)
