package auth

import (
	"time"

	"github.com/huddleapp/huddle/data/model"
	"github.com/huddleapp/huddle/internal/api/rest/rest"
	"github.com/huddleapp/huddle/internal/errors"
	"github.com/huddleapp/huddle/internal/global"
)

type signinRoute struct {
	gctx global.Context
}

func newSignin(gctx global.Context) rest.Route {
	return &signinRoute{gctx}
}

func (r *signinRoute) Config() rest.RouteConfig {
	return rest.RouteConfig{
		URI:    "/signin",
		Method: rest.POST,
	}
}

type signinBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`

	// Takeover evicts an existing session instead of failing with 409.
	Takeover bool `json:"takeover"`
}

type sessionResponse struct {
	Token         string     `json:"token"`
	ExpiresAt     time.Time  `json:"expires_at"`
	SessionID     string     `json:"session_id"`
	User          model.User `json:"user"`
	AutoCheckedIn bool       `json:"auto_checked_in"`
}

func (r *signinRoute) Handler(ctx *rest.Ctx) rest.APIError {
	var body signinBody
	if err := ctx.DecodeBody(&body); err != nil {
		return err
	}

	if body.Email == "" || body.Password == "" {
		return errors.ErrMissingRequiredField().SetDetail("email and password are required")
	}

	user, err := r.gctx.Inst().Query.UserByEmail(ctx, body.Email)
	if err != nil || !r.gctx.Inst().Auth.VerifyPassword(user.PasswordHash, body.Password) {
		return errors.ErrUnauthorized().SetDetail("invalid credentials")
	}

	return bindSession(r.gctx, ctx, user, body.Takeover)
}

// bindSession runs the post-credential half of a sign-in: claim the
// session slot, mint the access token, mark the account online and fire
// the once-a-day auto check-in.
func bindSession(gctx global.Context, ctx *rest.Ctx, user model.User, takeover bool) rest.APIError {
	sessionID, err := gctx.Inst().Sessions.Acquire(ctx, user.ID, takeover)
	if err != nil {
		return errors.From(err)
	}

	token, expiry, signErr := gctx.Inst().Auth.CreateAccessToken(user.ID.Hex(), user.Role, sessionID)
	if signErr != nil {
		return errors.ErrInternalServerError().SetFields(errors.Fields{"JWT_ERROR": signErr.Error()})
	}

	if err := gctx.Inst().Presence.Set(ctx, user.ID.Hex(), model.PresenceOnline); err != nil {
		ctx.Log().Warnw("failed to set presence on sign-in", "error", err)
	}

	checkedIn, err := gctx.Inst().Attendance.AutoCheckIn(ctx, user)
	if err != nil {
		ctx.Log().Warnw("auto check-in failed", "error", err)
	}

	return ctx.JSON(rest.OK, sessionResponse{
		Token:         token,
		ExpiresAt:     expiry,
		SessionID:     sessionID,
		User:          user,
		AutoCheckedIn: checkedIn,
	})
}
