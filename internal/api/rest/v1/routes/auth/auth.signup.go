package auth

import (
	"net/url"
	"strings"

	"github.com/huddleapp/huddle/data/model"
	"github.com/huddleapp/huddle/internal/api/rest/rest"
	"github.com/huddleapp/huddle/internal/errors"
	"github.com/huddleapp/huddle/internal/global"
)

type signupRoute struct {
	gctx global.Context
}

func newSignup(gctx global.Context) rest.Route {
	return &signupRoute{gctx}
}

func (r *signupRoute) Config() rest.RouteConfig {
	return rest.RouteConfig{
		URI:    "/signup",
		Method: rest.POST,
	}
}

type signupBody struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *signupRoute) Handler(ctx *rest.Ctx) rest.APIError {
	var body signupBody
	if err := ctx.DecodeBody(&body); err != nil {
		return err
	}

	body.Username = strings.TrimSpace(body.Username)
	body.Email = strings.ToLower(strings.TrimSpace(body.Email))

	if body.Username == "" || body.Email == "" || body.Password == "" {
		return errors.ErrMissingRequiredField().SetDetail("username, email and password are required")
	}

	if _, err := r.gctx.Inst().Query.UserByEmail(ctx, body.Email); err == nil {
		return errors.ErrInvalidRequest().SetDetail("email already registered")
	}

	hash, hashErr := r.gctx.Inst().Auth.HashPassword(body.Password)
	if hashErr != nil {
		return errors.ErrInternalServerError().SetFields(errors.Fields{"HASH_ERROR": hashErr.Error()})
	}

	user := model.User{
		Username:     body.Username,
		Email:        body.Email,
		Avatar:       avatarURL(r.gctx.Config().Auth.AvatarTemplate, body.Username),
		Role:         model.Role(r.gctx.Config().Auth.DefaultRole),
		PasswordHash: hash,
	}

	if err := r.gctx.Inst().Mutate.CreateUser(ctx, &user); err != nil {
		return errors.From(err)
	}

	// A fresh account signs straight in; there is no held session to take
	// over.
	return bindSession(r.gctx, ctx, user, false)
}

// avatarURL renders the configured avatar template, substituting the
// account's display name.
func avatarURL(template, username string) string {
	return strings.ReplaceAll(template, "{name}", url.QueryEscape(username))
}
