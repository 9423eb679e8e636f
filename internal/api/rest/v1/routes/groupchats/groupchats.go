package groupchats

import (
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
		URI:    "/group-chats",
		Method: rest.GET,
		Middleware: []rest.Middleware{
			middleware.RequireAuth(),
		},
		Children: []rest.Route{
			newHistory(r.Ctx),
			newSend(r.Ctx),
			newMarkRead(r.Ctx),
			newReaction(r.Ctx),
		},
	}
}

type unreadEntry struct {
	ConversationID string `json:"conversation_id"`
	Count          int    `json:"count"`
}

// Handler returns the actor's unread count for every group conversation
// on their roster.
func (r *Route) Handler(ctx *rest.Ctx) rest.APIError {
	actor, _ := ctx.GetActor()

	roster, err := r.Ctx.Inst().Directory.Roster(ctx, actor)
	if err != nil {
		return errors.From(err)
	}

	result := []unreadEntry{}

	for _, g := range roster.Groups {
		count, err := r.Ctx.Inst().Unread.CountGroup(ctx, actor, g.ID)
		if err != nil {
			ctx.Log().Warnw("unread count failed", "group_id", g.ID.Hex(), "error", err)
			continue
		}

		result = append(result, unreadEntry{ConversationID: g.ID.Hex(), Count: count})
	}

	return ctx.JSON(rest.OK, result)
}
