package attendance

import (
	"context"
	"time"

	"github.com/huddleapp/huddle/data/model"
	"github.com/huddleapp/huddle/data/mutate"
	"github.com/huddleapp/huddle/data/query"
	"github.com/huddleapp/huddle/internal/errors"
	"github.com/huddleapp/huddle/internal/svc/presence"
)

// Instance owns the append-only work log. Status is never stored: every
// read derives it from the last event of the current day, so the log is
// the single source of truth.
type Instance interface {
	Append(ctx context.Context, user model.User, typ model.AttendanceEventType, breakType, note string) (model.AttendanceEvent, error)
	AutoCheckIn(ctx context.Context, user model.User) (bool, error)
	Summary(ctx context.Context, user model.User, day time.Time) (DaySummary, error)
}

// DaySummary is one account's derived attendance view for one day.
type DaySummary struct {
	Status       model.AttendanceStatus  `json:"status"`
	TotalBreak   time.Duration           `json:"total_break"`
	CheckedInVia string                  `json:"checked_in_via,omitempty"`
	Logs         []model.AttendanceEvent `json:"logs"`
}

type inst struct {
	query    *query.Query
	mutate   *mutate.Mutate
	presence presence.Instance
}

type Options struct {
	Query    *query.Query
	Mutate   *mutate.Mutate
	Presence presence.Instance
}

func New(opt Options) Instance {
	return &inst{
		query:    opt.Query,
		mutate:   opt.Mutate,
		presence: opt.Presence,
	}
}

// DeriveStatus maps a day's event sequence to the account's current
// attendance state. Only the last event matters.
func DeriveStatus(logs []model.AttendanceEvent) model.AttendanceStatus {
	if len(logs) == 0 {
		return model.AttendanceStatusOffline
	}

	switch logs[len(logs)-1].Type {
	case model.AttendanceCheckIn, model.AttendanceBreakEnd:
		return model.AttendanceStatusCheckedIn
	case model.AttendanceBreakStart:
		return model.AttendanceStatusOnBreak
	case model.AttendanceCheckOut:
		return model.AttendanceStatusCheckedOut
	}

	return model.AttendanceStatusOffline
}

// TotalBreak sums the durations of matched breakStart/breakEnd pairs. An
// ongoing break has no end yet and contributes nothing until it closes.
func TotalBreak(logs []model.AttendanceEvent) time.Duration {
	var total time.Duration
	var open *time.Time

	for n := range logs {
		switch logs[n].Type {
		case model.AttendanceBreakStart:
			t := logs[n].Timestamp
			open = &t
		case model.AttendanceBreakEnd:
			if open != nil {
				total += logs[n].Timestamp.Sub(*open)
				open = nil
			}
		}
	}

	return total
}

// allowed transitions, keyed by derived status.
var transitions = map[model.AttendanceStatus][]model.AttendanceEventType{
	model.AttendanceStatusOffline:    {model.AttendanceCheckIn},
	model.AttendanceStatusCheckedIn:  {model.AttendanceBreakStart, model.AttendanceCheckOut},
	model.AttendanceStatusOnBreak:    {model.AttendanceBreakEnd},
	model.AttendanceStatusCheckedOut: {},
}

func transitionAllowed(status model.AttendanceStatus, typ model.AttendanceEventType) bool {
	for _, t := range transitions[status] {
		if t == typ {
			return true
		}
	}

	return false
}

// Append validates the event against the derived status of today's log,
// writes it, and mirrors the result into presence. The checkout
// follow-up (sign-out) belongs to the caller.
func (i *inst) Append(ctx context.Context, user model.User, typ model.AttendanceEventType, breakType, note string) (model.AttendanceEvent, error) {
	if !typ.Valid() {
		return model.AttendanceEvent{}, errors.ErrInvalidRequest().SetDetail("bad attendance event type %s", typ)
	}

	logs, err := i.query.TimeLogsForDay(ctx, user.ID, time.Now())
	if err != nil {
		return model.AttendanceEvent{}, err
	}

	if status := DeriveStatus(logs); !transitionAllowed(status, typ) {
		return model.AttendanceEvent{}, errors.ErrInvalidRequest().
			SetDetail("cannot %s while %s", typ, status)
	}

	ev := model.AttendanceEvent{
		UserID:    user.ID,
		Type:      typ,
		BreakType: breakType,
		Note:      note,
		Timestamp: time.Now(),
	}

	if err := i.mutate.AppendTimeLog(ctx, &ev); err != nil {
		return ev, err
	}

	i.mirrorPresence(ctx, user, typ)

	return ev, nil
}

// mirrorPresence keeps the connectivity status in step with the work
// log. Failures degrade silently; presence heals itself through
// heartbeats and TTL expiry.
func (i *inst) mirrorPresence(ctx context.Context, user model.User, typ model.AttendanceEventType) {
	var status model.PresenceStatus

	switch typ {
	case model.AttendanceCheckIn, model.AttendanceBreakEnd:
		status = model.PresenceOnline
	case model.AttendanceBreakStart:
		status = model.PresenceOnBreak
	case model.AttendanceCheckOut:
		status = model.PresenceOffline
	default:
		return
	}

	_ = i.presence.Set(ctx, user.ID.Hex(), status)
}

const autoNote = "auto"

// AutoCheckIn appends today's first check-in on behalf of a fresh
// sign-in. It fires at most once per account per day: any prior check-in
// today, including a day already checked out, suppresses it.
func (i *inst) AutoCheckIn(ctx context.Context, user model.User) (bool, error) {
	logs, err := i.query.TimeLogsForDay(ctx, user.ID, time.Now())
	if err != nil {
		return false, err
	}

	for _, ev := range logs {
		if ev.Type == model.AttendanceCheckIn {
			return false, nil
		}
	}

	if _, err = i.Append(ctx, user, model.AttendanceCheckIn, "", autoNote); err != nil {
		return false, err
	}

	return true, nil
}

func (i *inst) Summary(ctx context.Context, user model.User, day time.Time) (DaySummary, error) {
	logs, err := i.query.TimeLogsForDay(ctx, user.ID, day)
	if err != nil {
		return DaySummary{}, err
	}

	summary := DaySummary{
		Status:     DeriveStatus(logs),
		TotalBreak: TotalBreak(logs),
		Logs:       logs,
	}

	for _, ev := range logs {
		if ev.Type == model.AttendanceCheckIn {
			summary.CheckedInVia = "manual"
			if ev.Note == autoNote {
				summary.CheckedInVia = autoNote
			}

			break
		}
	}

	return summary, nil
}
