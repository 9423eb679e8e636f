package roster

import (
	"time"

	"github.com/huddleapp/huddle/data/model"
	"github.com/huddleapp/huddle/internal/api/rest/middleware"
	"github.com/huddleapp/huddle/internal/api/rest/rest"
	"github.com/huddleapp/huddle/internal/errors"
	"github.com/huddleapp/huddle/internal/global"
)

type Route struct {
	Ctx global.Context
}

func New(gctx global.Context) rest.Route {
	return &Route{gctx}
}

func (r *Route) Config() rest.RouteConfig {
	return rest.RouteConfig{
		URI:    "/roster",
		Method: rest.GET,
		Middleware: []rest.Middleware{
			middleware.RequireAuth(),
		},
	}
}

type rosterResponse struct {
	Roster   model.Roster                    `json:"roster"`
	Presence map[string]model.PresenceStatus `json:"presence"`
	LastSeen map[string]time.Time            `json:"last_seen"`
}

// Handler returns the actor's roster snapshot with the current presence
// of every visible account. The snapshot is rebuilt wholesale on every
// request.
func (r *Route) Handler(ctx *rest.Ctx) rest.APIError {
	actor, _ := ctx.GetActor()

	roster, err := r.Ctx.Inst().Directory.Roster(ctx, actor)
	if err != nil {
		return errors.From(err)
	}

	ids := make([]string, len(roster.Users))
	lastSeen := map[string]time.Time{}

	for n, u := range roster.Users {
		ids[n] = u.ID.Hex()

		if ts, ok := r.Ctx.Inst().Presence.LastSeen(ids[n]); ok {
			lastSeen[ids[n]] = ts
		}
	}

	return ctx.JSON(rest.OK, rosterResponse{
		Roster:   roster,
		Presence: r.Ctx.Inst().Presence.Snapshot(ctx, ids),
		LastSeen: lastSeen,
	})
}
