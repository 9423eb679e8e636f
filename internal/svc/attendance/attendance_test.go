package attendance

import (
	"testing"
	"time"

	"github.com/huddleapp/huddle/data/model"
	"github.com/huddleapp/huddle/internal/testutil"
)

func at(hour, min int) time.Time {
	return time.Date(2024, 5, 6, hour, min, 0, 0, time.UTC)
}

func ev(t model.AttendanceEventType, ts time.Time) model.AttendanceEvent {
	return model.AttendanceEvent{Type: t, Timestamp: ts}
}

func TestDeriveStatus(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		logs     []model.AttendanceEvent
		expected model.AttendanceStatus
	}{
		{"empty day", nil, model.AttendanceStatusOffline},
		{"checked in", []model.AttendanceEvent{
			ev(model.AttendanceCheckIn, at(9, 0)),
		}, model.AttendanceStatusCheckedIn},
		{"on break", []model.AttendanceEvent{
			ev(model.AttendanceCheckIn, at(9, 0)),
			ev(model.AttendanceBreakStart, at(12, 0)),
		}, model.AttendanceStatusOnBreak},
		{"back from break", []model.AttendanceEvent{
			ev(model.AttendanceCheckIn, at(9, 0)),
			ev(model.AttendanceBreakStart, at(12, 0)),
			ev(model.AttendanceBreakEnd, at(12, 30)),
		}, model.AttendanceStatusCheckedIn},
		{"checked out", []model.AttendanceEvent{
			ev(model.AttendanceCheckIn, at(9, 0)),
			ev(model.AttendanceCheckOut, at(17, 0)),
		}, model.AttendanceStatusCheckedOut},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			testutil.Assert(t, tc.expected, DeriveStatus(tc.logs), "derived status")
		})
	}
}

func TestTotalBreak(t *testing.T) {
	t.Parallel()

	logs := []model.AttendanceEvent{
		ev(model.AttendanceCheckIn, at(9, 0)),
		ev(model.AttendanceBreakStart, at(12, 0)),
		ev(model.AttendanceBreakEnd, at(12, 15)),
	}

	testutil.Assert(t, 15*time.Minute, TotalBreak(logs), "one closed break")
}

func TestTotalBreakIgnoresOpenBreak(t *testing.T) {
	t.Parallel()

	logs := []model.AttendanceEvent{
		ev(model.AttendanceCheckIn, at(9, 0)),
		ev(model.AttendanceBreakStart, at(10, 0)),
		ev(model.AttendanceBreakEnd, at(10, 20)),
		ev(model.AttendanceBreakStart, at(15, 0)),
	}

	testutil.Assert(t, 20*time.Minute, TotalBreak(logs), "open break contributes nothing")
}

func TestTotalBreakMultiplePairs(t *testing.T) {
	t.Parallel()

	logs := []model.AttendanceEvent{
		ev(model.AttendanceCheckIn, at(9, 0)),
		ev(model.AttendanceBreakStart, at(10, 0)),
		ev(model.AttendanceBreakEnd, at(10, 10)),
		ev(model.AttendanceBreakStart, at(14, 0)),
		ev(model.AttendanceBreakEnd, at(14, 45)),
		ev(model.AttendanceCheckOut, at(17, 0)),
	}

	testutil.Assert(t, 55*time.Minute, TotalBreak(logs), "two closed breaks")
}

func TestTransitionRules(t *testing.T) {
	t.Parallel()

	allowed := []struct {
		from model.AttendanceStatus
		typ  model.AttendanceEventType
	}{
		{model.AttendanceStatusOffline, model.AttendanceCheckIn},
		{model.AttendanceStatusCheckedIn, model.AttendanceBreakStart},
		{model.AttendanceStatusCheckedIn, model.AttendanceCheckOut},
		{model.AttendanceStatusOnBreak, model.AttendanceBreakEnd},
	}

	for _, tc := range allowed {
		testutil.Assert(t, true, transitionAllowed(tc.from, tc.typ), string(tc.from)+" -> "+string(tc.typ))
	}

	denied := []struct {
		from model.AttendanceStatus
		typ  model.AttendanceEventType
	}{
		{model.AttendanceStatusOffline, model.AttendanceBreakStart},
		{model.AttendanceStatusOffline, model.AttendanceCheckOut},
		{model.AttendanceStatusCheckedIn, model.AttendanceCheckIn},
		{model.AttendanceStatusOnBreak, model.AttendanceCheckOut},
		{model.AttendanceStatusOnBreak, model.AttendanceBreakStart},
		{model.AttendanceStatusCheckedOut, model.AttendanceCheckIn},
		{model.AttendanceStatusCheckedOut, model.AttendanceBreakStart},
	}

	for _, tc := range denied {
		testutil.Assert(t, false, transitionAllowed(tc.from, tc.typ), string(tc.from)+" -> "+string(tc.typ))
	}
}
