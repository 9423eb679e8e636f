package presence

import (
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
		URI:    "/presence",
		Method: rest.PUT,
		Middleware: []rest.Middleware{
			middleware.RequireAuth(),
		},
		Children: []rest.Route{
			newHeartbeat(r.Ctx),
		},
	}
}

type presenceBody struct {
	Status model.PresenceStatus `json:"status"`
}

// Handler writes the actor's own connectivity status. Only the actor may
// write their status; peers observe it through the roster and the change
// feed.
func (r *Route) Handler(ctx *rest.Ctx) rest.APIError {
	actor, _ := ctx.GetActor()

	var body presenceBody
	if err := ctx.DecodeBody(&body); err != nil {
		return err
	}

	if err := r.Ctx.Inst().Presence.Set(ctx, actor.ID.Hex(), body.Status); err != nil {
		return errors.From(err)
	}

	ctx.SetStatusCode(rest.NoContent)

	return nil
}
