package chats

import (
	"github.com/huddleapp/huddle/internal/api/rest/rest"
	"github.com/huddleapp/huddle/internal/errors"
	"github.com/huddleapp/huddle/internal/global"
)

type markReadRoute struct {
	gctx global.Context
}

func newMarkRead(gctx global.Context) rest.Route {
	return &markReadRoute{gctx}
}

func (r *markReadRoute) Config() rest.RouteConfig {
	return rest.RouteConfig{
		URI:    "/{user.id}/read",
		Method: rest.POST,
	}
}

// Handler marks every unread message in the conversation read. The
// client calls this when the conversation is opened or focused; the next
// unread recompute then reports zero.
func (r *markReadRoute) Handler(ctx *rest.Ctx) rest.APIError {
	actor, _ := ctx.GetActor()

	peerID, err := ctx.UserValue("user.id").ObjectID()
	if err != nil {
		return errors.From(err)
	}

	if mErr := r.gctx.Inst().Unread.MarkPrivateRead(ctx, actor, peerID); mErr != nil {
		return errors.From(mErr)
	}

	ctx.SetStatusCode(rest.NoContent)

	return nil
}
