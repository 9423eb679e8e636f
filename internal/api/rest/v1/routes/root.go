package routes

import (
	"strconv"
	"time"

	"github.com/huddleapp/huddle/internal/api/rest/rest"
	"github.com/huddleapp/huddle/internal/api/rest/v1/routes/attendance"
	"github.com/huddleapp/huddle/internal/api/rest/v1/routes/auth"
	"github.com/huddleapp/huddle/internal/api/rest/v1/routes/chats"
	"github.com/huddleapp/huddle/internal/api/rest/v1/routes/groupchats"
	"github.com/huddleapp/huddle/internal/api/rest/v1/routes/groups"
	"github.com/huddleapp/huddle/internal/api/rest/v1/routes/presence"
	"github.com/huddleapp/huddle/internal/api/rest/v1/routes/roster"
	"github.com/huddleapp/huddle/internal/api/rest/v1/routes/uploads"
	"github.com/huddleapp/huddle/internal/global"
)

var uptime = time.Now()

type Route struct {
	Ctx global.Context
}

func New(gctx global.Context) rest.Route {
	return &Route{gctx}
}

func (r *Route) Config() rest.RouteConfig {
	return rest.RouteConfig{
		URI:    "/v1",
		Method: rest.GET,
		Children: []rest.Route{
			auth.New(r.Ctx),
			roster.New(r.Ctx),
			groups.New(r.Ctx),
			chats.New(r.Ctx),
			groupchats.New(r.Ctx),
			presence.New(r.Ctx),
			attendance.New(r.Ctx),
			uploads.New(r.Ctx),
		},
	}
}

func (r *Route) Handler(ctx *rest.Ctx) rest.APIError {
	return ctx.JSON(rest.OK, HealthResponse{
		Online: true,
		Uptime: strconv.Itoa(int(uptime.UnixMilli())),
	})
}

type HealthResponse struct {
	Online bool   `json:"online"`
	Uptime string `json:"uptime"`
}
