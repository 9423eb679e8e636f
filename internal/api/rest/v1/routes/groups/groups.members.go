package groups

import (
	"github.com/huddleapp/huddle/internal/api/rest/rest"
	"github.com/huddleapp/huddle/internal/errors"
	"github.com/huddleapp/huddle/internal/global"
)

type memberAddRoute struct {
	gctx global.Context
}

func newMemberAdd(gctx global.Context) rest.Route {
	return &memberAddRoute{gctx}
}

func (r *memberAddRoute) Config() rest.RouteConfig {
	return rest.RouteConfig{
		URI:    "/{group.id}/members/{user.id}",
		Method: rest.PUT,
	}
}

func (r *memberAddRoute) Handler(ctx *rest.Ctx) rest.APIError {
	actor, _ := ctx.GetActor()

	groupID, err := ctx.UserValue("group.id").ObjectID()
	if err != nil {
		return errors.From(err)
	}

	userID, err := ctx.UserValue("user.id").ObjectID()
	if err != nil {
		return errors.From(err)
	}

	if _, qErr := r.gctx.Inst().Query.UserByID(ctx, userID); qErr != nil {
		return errors.From(qErr)
	}

	if mErr := r.gctx.Inst().Mutate.GroupAddMember(ctx, actor, groupID, userID); mErr != nil {
		return errors.From(mErr)
	}

	ctx.SetStatusCode(rest.NoContent)

	return nil
}

type memberRemoveRoute struct {
	gctx global.Context
}

func newMemberRemove(gctx global.Context) rest.Route {
	return &memberRemoveRoute{gctx}
}

func (r *memberRemoveRoute) Config() rest.RouteConfig {
	return rest.RouteConfig{
		URI:    "/{group.id}/members/{user.id}",
		Method: rest.DELETE,
	}
}

func (r *memberRemoveRoute) Handler(ctx *rest.Ctx) rest.APIError {
	actor, _ := ctx.GetActor()

	groupID, err := ctx.UserValue("group.id").ObjectID()
	if err != nil {
		return errors.From(err)
	}

	userID, err := ctx.UserValue("user.id").ObjectID()
	if err != nil {
		return errors.From(err)
	}

	if mErr := r.gctx.Inst().Mutate.GroupRemoveMember(ctx, actor, groupID, userID); mErr != nil {
		return errors.From(mErr)
	}

	ctx.SetStatusCode(rest.NoContent)

	return nil
}
