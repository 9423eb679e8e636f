package auth

import (
	"github.com/huddleapp/huddle/data/model"
	"github.com/huddleapp/huddle/internal/api/rest/middleware"
	"github.com/huddleapp/huddle/internal/api/rest/rest"
	"github.com/huddleapp/huddle/internal/errors"
	"github.com/huddleapp/huddle/internal/global"
)

type signoutRoute struct {
	gctx global.Context
}

func newSignout(gctx global.Context) rest.Route {
	return &signoutRoute{gctx}
}

func (r *signoutRoute) Config() rest.RouteConfig {
	return rest.RouteConfig{
		URI:    "/signout",
		Method: rest.POST,
		Middleware: []rest.Middleware{
			middleware.RequireAuth(),
		},
	}
}

// Handler vacates the actor's session slot and marks them offline. The
// release is conditional on the token's session still being the active
// one, so a stale sign-out never evicts a newer session.
func (r *signoutRoute) Handler(ctx *rest.Ctx) rest.APIError {
	actor, _ := ctx.GetActor()

	sessionID, ok := ctx.GetSessionID()
	if !ok {
		return errors.ErrUnauthorized()
	}

	if err := r.gctx.Inst().Sessions.Release(ctx, actor.ID, sessionID); err != nil {
		return errors.From(err)
	}

	if err := r.gctx.Inst().Presence.Set(ctx, actor.ID.Hex(), model.PresenceOffline); err != nil {
		ctx.Log().Warnw("failed to clear presence on sign-out", "error", err)
	}

	ctx.SetStatusCode(rest.NoContent)

	return nil
}
