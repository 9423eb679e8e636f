package chats

import (
	"github.com/huddleapp/huddle/internal/api/rest/rest"
	"github.com/huddleapp/huddle/internal/errors"
	"github.com/huddleapp/huddle/internal/global"
)

type historyRoute struct {
	gctx global.Context
}

func newHistory(gctx global.Context) rest.Route {
	return &historyRoute{gctx}
}

func (r *historyRoute) Config() rest.RouteConfig {
	return rest.RouteConfig{
		URI:    "/{user.id}/messages",
		Method: rest.GET,
	}
}

func (r *historyRoute) Handler(ctx *rest.Ctx) rest.APIError {
	actor, _ := ctx.GetActor()

	peerID, err := ctx.UserValue("user.id").ObjectID()
	if err != nil {
		return errors.From(err)
	}

	msgs, hErr := r.gctx.Inst().Conversations.PrivateHistory(ctx, actor, peerID)
	if hErr != nil {
		return errors.From(hErr)
	}

	return ctx.JSON(rest.OK, msgs)
}

type sendRoute struct {
	gctx global.Context
}

func newSend(gctx global.Context) rest.Route {
	return &sendRoute{gctx}
}

func (r *sendRoute) Config() rest.RouteConfig {
	return rest.RouteConfig{
		URI:    "/{user.id}/messages",
		Method: rest.POST,
	}
}

type sendBody struct {
	Text     string `json:"text"`
	ImageURL string `json:"image_url"`
}

func (r *sendRoute) Handler(ctx *rest.Ctx) rest.APIError {
	actor, _ := ctx.GetActor()

	peerID, err := ctx.UserValue("user.id").ObjectID()
	if err != nil {
		return errors.From(err)
	}

	var body sendBody
	if err := ctx.DecodeBody(&body); err != nil {
		return err
	}

	peer, qErr := r.gctx.Inst().Query.UserByID(ctx, peerID)
	if qErr != nil {
		return errors.From(qErr)
	}

	msg, sErr := r.gctx.Inst().Conversations.SendPrivate(ctx, actor, peer, body.Text, body.ImageURL)
	if sErr != nil {
		return errors.From(sErr)
	}

	r.gctx.Inst().Prometheus.MessagesSent().Inc()

	return ctx.JSON(rest.Created, msg)
}
