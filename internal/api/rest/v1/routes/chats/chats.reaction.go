package chats

import (
	"github.com/huddleapp/huddle/internal/api/rest/rest"
	"github.com/huddleapp/huddle/internal/errors"
	"github.com/huddleapp/huddle/internal/global"
)

type reactionRoute struct {
	gctx global.Context
}

func newReaction(gctx global.Context) rest.Route {
	return &reactionRoute{gctx}
}

func (r *reactionRoute) Config() rest.RouteConfig {
	return rest.RouteConfig{
		URI:    "/{user.id}/messages/{message.id}/reaction",
		Method: rest.PUT,
	}
}

type reactionBody struct {
	Emoji string `json:"emoji"`
}

// Handler toggles the actor's reaction on one message of their own
// mirror: the same emoji clears it, a different one replaces it.
func (r *reactionRoute) Handler(ctx *rest.Ctx) rest.APIError {
	actor, _ := ctx.GetActor()

	peerID, err := ctx.UserValue("user.id").ObjectID()
	if err != nil {
		return errors.From(err)
	}

	var body reactionBody
	if err := ctx.DecodeBody(&body); err != nil {
		return err
	}

	if body.Emoji == "" {
		return errors.ErrMissingRequiredField().SetDetail("emoji is required")
	}

	messageID := ctx.UserValue("message.id").String()

	if tErr := r.gctx.Inst().Conversations.TogglePrivateReaction(ctx, actor, peerID, messageID, body.Emoji); tErr != nil {
		return errors.From(tErr)
	}

	ctx.SetStatusCode(rest.NoContent)

	return nil
}
