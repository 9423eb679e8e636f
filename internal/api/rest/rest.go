package rest

import (
	"fmt"
	"net"
	"time"

	"github.com/fasthttp/router"
	"github.com/huddleapp/huddle/internal/api/rest/middleware"
	"github.com/huddleapp/huddle/internal/api/rest/rest"
	"github.com/huddleapp/huddle/internal/api/rest/v1/routes"
	"github.com/huddleapp/huddle/internal/errors"
	"github.com/huddleapp/huddle/internal/global"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

type HttpServer struct {
	listener net.Listener
	router   *router.Router
}

func New(gctx global.Context) error {
	var err error

	port := gctx.Config().Http.Port
	if port == 0 {
		port = 80
	}

	s := HttpServer{}

	s.listener, err = net.Listen("tcp", fmt.Sprintf("%s:%d", gctx.Config().Http.Addr, port))
	if err != nil {
		return err
	}

	s.router = router.New()

	s.SetupHandlers()
	s.V1(gctx)

	doAuth := middleware.Auth(gctx)

	srv := &fasthttp.Server{
		Handler: func(ctx *fasthttp.RequestCtx) {
			start := time.Now()

			defer func() {
				if err := recover(); err != nil {
					zap.S().Errorw("panic in rest request handler",
						"panic", err,
						"status", ctx.Response.StatusCode(),
						"duration", int(time.Since(start)/time.Millisecond),
						"method", string(ctx.Method()),
						"path", string(ctx.Path()),
					)
				} else {
					mills := time.Since(start) / time.Millisecond
					status := ctx.Response.StatusCode()

					logFn := zap.S().Debugw
					if mills >= 500 {
						logFn = zap.S().Infow
					}
					if status >= 500 {
						logFn = zap.S().Errorw
					}

					logFn("rest request",
						"status", status,
						"duration", int(mills),
						"method", string(ctx.Method()),
						"path", string(ctx.Path()),
					)
				}
			}()

			ctx.Response.Header.Set("X-Node-Name", gctx.Config().K8S.NodeName)
			ctx.Response.Header.Set("X-Pod-Name", gctx.Config().K8S.PodName)

			if ctx.IsOptions() {
				ctx.SetStatusCode(fasthttp.StatusNoContent)
				return
			}

			ctx.Response.Header.Set("Content-Type", "application/json")

			if err := doAuth(ctx); err != nil {
				ctx.Response.Header.Add("X-Auth-Failure", err.Message())
			}

			s.router.Handler(ctx)
		},
		ReadTimeout:                  time.Second * 600,
		IdleTimeout:                  time.Second * 10,
		ReadBufferSize:               int(32 * 1024),
		MaxRequestBodySize:           int(6 * 1024 * 1024),
		DisablePreParseMultipartForm: true,
		StreamRequestBody:            true,
		CloseOnShutdown:              true,
	}

	// Gracefully exit when the global context is canceled
	go func() {
		<-gctx.Done()

		_ = srv.Shutdown()
	}()

	return srv.Serve(s.listener)
}

func (s *HttpServer) SetupHandlers() {
	s.router.NotFound = func(ctx *fasthttp.RequestCtx) {
		writeError(&rest.Ctx{RequestCtx: ctx}, errors.ErrUnknownRoute())
	}
	s.router.MethodNotAllowed = func(ctx *fasthttp.RequestCtx) {
		writeError(&rest.Ctx{RequestCtx: ctx}, errors.ErrUnknownRoute().WithHTTPStatus(int(rest.MethodNotAllowed)))
	}
}

func (s *HttpServer) V1(gctx global.Context) {
	s.traverse("", routes.New(gctx))
}

// traverse registers a route and its children. Children inherit the
// parent's URI prefix and run behind the parent's middleware.
func (s *HttpServer) traverse(prefix string, route rest.Route, parentMw ...rest.Middleware) {
	cfg := route.Config()
	uri := prefix + cfg.URI

	mw := append(append([]rest.Middleware{}, parentMw...), cfg.Middleware...)

	s.router.Handle(string(cfg.Method), uri, func(fctx *fasthttp.RequestCtx) {
		ctx := &rest.Ctx{RequestCtx: fctx}

		for _, fn := range mw {
			if err := fn(ctx); err != nil {
				writeError(ctx, err)
				return
			}
		}

		if err := route.Handler(ctx); err != nil {
			writeError(ctx, err)
		}
	})

	for _, child := range cfg.Children {
		s.traverse(uri, child, mw...)
	}
}

type errorResponse struct {
	StatusCode int           `json:"status_code"`
	Error      string        `json:"error"`
	ErrorCode  int           `json:"error_code"`
	Details    errors.Fields `json:"details,omitempty"`
}

func writeError(ctx *rest.Ctx, err rest.APIError) {
	_ = ctx.JSON(rest.HttpStatusCode(err.ExpectedHTTPStatus()), errorResponse{
		StatusCode: err.ExpectedHTTPStatus(),
		Error:      err.Message(),
		ErrorCode:  err.Code(),
		Details:    err.GetFields(),
	})
}
