package presence

import (
	"github.com/huddleapp/huddle/internal/api/rest/rest"
	"github.com/huddleapp/huddle/internal/errors"
	"github.com/huddleapp/huddle/internal/global"
)

type heartbeatRoute struct {
	gctx global.Context
}

func newHeartbeat(gctx global.Context) rest.Route {
	return &heartbeatRoute{gctx}
}

func (r *heartbeatRoute) Config() rest.RouteConfig {
	return rest.RouteConfig{
		URI:    "/heartbeat",
		Method: rest.POST,
	}
}

// Handler extends the actor's status key. Clients beat well inside the
// TTL; a missed beat lets the key expire and the account reads offline.
func (r *heartbeatRoute) Handler(ctx *rest.Ctx) rest.APIError {
	actor, _ := ctx.GetActor()

	if err := r.gctx.Inst().Presence.Heartbeat(ctx, actor.ID.Hex()); err != nil {
		return errors.From(err)
	}

	ctx.SetStatusCode(rest.NoContent)

	return nil
}
