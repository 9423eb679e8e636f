package groups

import (
	"strings"

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
		URI:    "/groups",
		Method: rest.POST,
		Middleware: []rest.Middleware{
			middleware.RequireAuth(),
			middleware.RequireLeader(),
		},
		Children: []rest.Route{
			newMemberAdd(r.Ctx),
			newMemberRemove(r.Ctx),
		},
	}
}

type createGroupBody struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// Handler creates a group. The creator becomes its first member.
func (r *Route) Handler(ctx *rest.Ctx) rest.APIError {
	actor, _ := ctx.GetActor()

	var body createGroupBody
	if err := ctx.DecodeBody(&body); err != nil {
		return err
	}

	body.Name = strings.TrimSpace(body.Name)
	if body.Name == "" {
		return errors.ErrMissingRequiredField().SetDetail("group name is required")
	}

	group := model.Group{
		Name:   body.Name,
		Avatar: body.Avatar,
	}

	if err := r.Ctx.Inst().Mutate.CreateGroup(ctx, actor, &group); err != nil {
		return errors.From(err)
	}

	return ctx.JSON(rest.Created, group)
}
