package groupchats

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
		URI:    "/{group.id}/messages/{message.id}/reaction",
		Method: rest.PUT,
	}
}

type reactionBody struct {
	Emoji string `json:"emoji"`
}

func (r *reactionRoute) Handler(ctx *rest.Ctx) rest.APIError {
	actor, _ := ctx.GetActor()

	groupID, err := ctx.UserValue("group.id").ObjectID()
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

	group, qErr := r.gctx.Inst().Query.GroupByID(ctx, groupID)
	if qErr != nil {
		return errors.From(qErr)
	}

	messageID := ctx.UserValue("message.id").String()

	if tErr := r.gctx.Inst().Conversations.ToggleGroupReaction(ctx, actor, group, messageID, body.Emoji); tErr != nil {
		return errors.From(tErr)
	}

	ctx.SetStatusCode(rest.NoContent)

	return nil
}
