package attendance

import (
	"time"

	"github.com/huddleapp/huddle/internal/api/rest/middleware"
	"github.com/huddleapp/huddle/internal/api/rest/rest"
	"github.com/huddleapp/huddle/internal/errors"
	"github.com/huddleapp/huddle/internal/global"
	"github.com/huddleapp/huddle/internal/svc/attendance"
)

type Route struct {
	Ctx global.Context
}

func New(gctx global.Context) rest.Route {
	return &Route{gctx}
}

func (r *Route) Config() rest.RouteConfig {
	return rest.RouteConfig{
		URI:    "/attendance",
		Method: rest.GET,
		Middleware: []rest.Middleware{
			middleware.RequireAuth(),
		},
		Children: []rest.Route{
			newAppendLog(r.Ctx),
		},
	}
}

type summaryResponse struct {
	attendance.DaySummary
	TotalBreakMinutes int `json:"total_break_minutes"`
}

// Handler returns the actor's derived attendance view for one day. The
// day defaults to today; ?date=YYYY-MM-DD selects another.
func (r *Route) Handler(ctx *rest.Ctx) rest.APIError {
	actor, _ := ctx.GetActor()

	day := time.Now()

	if raw := string(ctx.QueryArgs().Peek("date")); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			return errors.ErrInvalidRequest().SetDetail("bad date %s", raw)
		}

		day = parsed
	}

	summary, err := r.Ctx.Inst().Attendance.Summary(ctx, actor, day)
	if err != nil {
		return errors.From(err)
	}

	return ctx.JSON(rest.OK, summaryResponse{
		DaySummary:        summary,
		TotalBreakMinutes: int(summary.TotalBreak / time.Minute),
	})
}
