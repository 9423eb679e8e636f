package groupchats

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
		URI:    "/{group.id}/read",
		Method: rest.POST,
	}
}

func (r *markReadRoute) Handler(ctx *rest.Ctx) rest.APIError {
	actor, _ := ctx.GetActor()

	groupID, err := ctx.UserValue("group.id").ObjectID()
	if err != nil {
		return errors.From(err)
	}

	group, qErr := r.gctx.Inst().Query.GroupByID(ctx, groupID)
	if qErr != nil {
		return errors.From(qErr)
	}

	if !group.HasMember(actor.ID) && !actor.IsLeader() {
		return errors.ErrInsufficientPrivilege().SetDetail("not a member of this group")
	}

	if mErr := r.gctx.Inst().Unread.MarkGroupRead(ctx, actor, groupID); mErr != nil {
		return errors.From(mErr)
	}

	ctx.SetStatusCode(rest.NoContent)

	return nil
}
