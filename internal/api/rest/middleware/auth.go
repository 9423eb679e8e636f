package middleware

import (
	"strings"

	"github.com/huddleapp/huddle/data/model"
	"github.com/huddleapp/huddle/internal/api/rest/rest"
	"github.com/huddleapp/huddle/internal/errors"
	"github.com/huddleapp/huddle/internal/global"
	"github.com/huddleapp/huddle/internal/svc/auth"
	"github.com/valyala/fasthttp"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Auth binds the actor from a Bearer access token, when one is present
// and valid. It never rejects: routes that need an actor stack
// RequireAuth on top.
func Auth(gctx global.Context) func(ctx *fasthttp.RequestCtx) rest.APIError {
	return func(fctx *fasthttp.RequestCtx) rest.APIError {
		ctx := &rest.Ctx{RequestCtx: fctx}

		h := string(ctx.Request.Header.Peek("Authorization"))
		s := strings.Split(h, "Bearer ")

		if len(s) != 2 {
			return errors.ErrUnauthorized().SetFields(errors.Fields{"message": "Bad Authorization Header"})
		}

		user, sessionID, err := DoAuth(gctx, s[1])
		if err != nil {
			ctx.SetAuthError(err)

			return err
		}

		ctx.SetActor(user)
		ctx.SetSessionID(sessionID)

		return nil
	}
}

// DoAuth verifies an access token and resolves its actor. A token minted
// for a session the account no longer holds is rejected: another sign-in
// revoked it.
func DoAuth(gctx global.Context, token string) (model.User, string, rest.APIError) {
	claim := &auth.JWTClaimUser{}

	if _, jwtErr := gctx.Inst().Auth.VerifyJWT(token, claim); jwtErr != nil {
		return model.DeletedUser, "", errors.ErrUnauthorized().SetFields(errors.Fields{"message": jwtErr.Error()})
	}

	userID, idErr := primitive.ObjectIDFromHex(claim.UserID)
	if idErr != nil {
		return model.DeletedUser, "", errors.ErrUnauthorized().SetFields(errors.Fields{"message": "bad user id in token"})
	}

	u, qErr := gctx.Inst().Query.UserByID(gctx, userID)
	if qErr != nil {
		return model.DeletedUser, "", errors.ErrUnauthorized().SetFields(errors.Fields{"message": "unknown actor"})
	}

	if claim.SessionID != "" && u.SessionID != claim.SessionID {
		return model.DeletedUser, "", errors.ErrSessionInvalidated()
	}

	return u, claim.SessionID, nil
}

// RequireAuth rejects requests with no bound actor. When actor binding
// failed earlier, the original rejection is returned so a revoked
// session reads differently from a bad token.
func RequireAuth() rest.Middleware {
	return func(ctx *rest.Ctx) rest.APIError {
		if _, ok := ctx.GetActor(); !ok {
			return authFailure(ctx)
		}

		return nil
	}
}

// RequireLeader rejects requests whose actor is not a Leader.
func RequireLeader() rest.Middleware {
	return func(ctx *rest.Ctx) rest.APIError {
		actor, ok := ctx.GetActor()
		if !ok {
			return authFailure(ctx)
		}

		if !actor.IsLeader() {
			return errors.ErrInsufficientPrivilege()
		}

		return nil
	}
}

func authFailure(ctx *rest.Ctx) rest.APIError {
	if err, ok := ctx.GetAuthError(); ok {
		return err
	}

	return errors.ErrUnauthorized()
}
