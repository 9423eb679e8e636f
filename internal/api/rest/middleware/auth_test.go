package middleware

import (
	"testing"

	"github.com/huddleapp/huddle/internal/api/rest/rest"
	"github.com/huddleapp/huddle/internal/errors"
	"github.com/huddleapp/huddle/internal/testutil"
	"github.com/valyala/fasthttp"
)

func TestRequireAuthSurfacesBindFailure(t *testing.T) {
	ctx := &rest.Ctx{RequestCtx: &fasthttp.RequestCtx{}}
	ctx.SetAuthError(errors.ErrSessionInvalidated())

	err := RequireAuth()(ctx)
	testutil.AssertErrCode(t, errors.ErrSessionInvalidated(), err, "revoked session keeps its own code")
}

func TestRequireAuthDefaultsToUnauthorized(t *testing.T) {
	ctx := &rest.Ctx{RequestCtx: &fasthttp.RequestCtx{}}

	err := RequireAuth()(ctx)
	testutil.AssertErrCode(t, errors.ErrUnauthorized(), err, "no actor and no recorded failure")
}
