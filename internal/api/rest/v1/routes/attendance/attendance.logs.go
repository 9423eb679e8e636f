package attendance

import (
	"github.com/huddleapp/huddle/data/model"
	"github.com/huddleapp/huddle/internal/api/rest/rest"
	"github.com/huddleapp/huddle/internal/errors"
	"github.com/huddleapp/huddle/internal/global"
)

type appendLogRoute struct {
	gctx global.Context
}

func newAppendLog(gctx global.Context) rest.Route {
	return &appendLogRoute{gctx}
}

func (r *appendLogRoute) Config() rest.RouteConfig {
	return rest.RouteConfig{
		URI:    "/logs",
		Method: rest.POST,
	}
}

type appendLogBody struct {
	Type      model.AttendanceEventType `json:"type"`
	BreakType string                    `json:"break_type"`
	Note      string                    `json:"note"`
}

type appendLogResponse struct {
	Event     model.AttendanceEvent `json:"event"`
	SignedOut bool                  `json:"signed_out,omitempty"`
}

// Handler appends one attendance event. Checking out also vacates the
// session slot: the working day is over, the client returns to sign-in.
func (r *appendLogRoute) Handler(ctx *rest.Ctx) rest.APIError {
	actor, _ := ctx.GetActor()

	var body appendLogBody
	if err := ctx.DecodeBody(&body); err != nil {
		return err
	}

	ev, err := r.gctx.Inst().Attendance.Append(ctx, actor, body.Type, body.BreakType, body.Note)
	if err != nil {
		return errors.From(err)
	}

	resp := appendLogResponse{Event: ev}

	if ev.Type == model.AttendanceCheckOut {
		if sessionID, ok := ctx.GetSessionID(); ok {
			if rErr := r.gctx.Inst().Sessions.Release(ctx, actor.ID, sessionID); rErr != nil {
				ctx.Log().Warnw("failed to release session on checkout", "error", rErr)
			} else {
				resp.SignedOut = true
			}
		}
	}

	return ctx.JSON(rest.Created, resp)
}
