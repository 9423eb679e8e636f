package rest

import (
	"github.com/huddleapp/huddle/data/model"
	"github.com/huddleapp/huddle/internal/errors"
	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Ctx struct {
	*fasthttp.RequestCtx
}

type APIError = errors.APIError

const (
	actorKey     = "huddle:actor"
	sessionIDKey = "huddle:session_id"
	authErrorKey = "huddle:auth_error"
)

func (c *Ctx) JSON(status HttpStatusCode, v interface{}) APIError {
	b, err := json.Marshal(v)
	if err != nil {
		c.SetStatusCode(InternalServerError)

		return errors.ErrInternalServerError().
			SetDetail("JSON Parsing Failed").
			SetFields(errors.Fields{"JSON_ERROR": err.Error()})
	}

	c.SetStatusCode(status)
	c.SetContentType("application/json")
	c.SetBody(b)

	return nil
}

// DecodeBody unmarshals the request body into v.
func (c *Ctx) DecodeBody(v interface{}) APIError {
	if err := json.Unmarshal(c.Request.Body(), v); err != nil {
		return errors.ErrInvalidRequest().SetFields(errors.Fields{"JSON_ERROR": err.Error()})
	}

	return nil
}

func (c *Ctx) SetStatusCode(code HttpStatusCode) {
	c.RequestCtx.SetStatusCode(int(code))
}

func (c *Ctx) StatusCode() HttpStatusCode {
	return HttpStatusCode(c.RequestCtx.Response.StatusCode())
}

// Set the current authenticated user
func (c *Ctx) SetActor(u model.User) {
	c.SetUserValue(actorKey, u)
}

// Get the current authenticated user
func (c *Ctx) GetActor() (model.User, bool) {
	v := c.RequestCtx.UserValue(actorKey)
	switch v := v.(type) {
	case model.User:
		return v, true
	default:
		return model.DeletedUser, false
	}
}

// SetAuthError records why actor binding failed, so protected routes can
// surface the original rejection instead of a generic one.
func (c *Ctx) SetAuthError(err APIError) {
	c.SetUserValue(authErrorKey, err)
}

func (c *Ctx) GetAuthError() (APIError, bool) {
	v := c.RequestCtx.UserValue(authErrorKey)
	switch v := v.(type) {
	case APIError:
		return v, true
	default:
		return nil, false
	}
}

// SetSessionID binds the session the actor's access token was minted for.
func (c *Ctx) SetSessionID(id string) {
	c.SetUserValue(sessionIDKey, id)
}

func (c *Ctx) GetSessionID() (string, bool) {
	v, ok := c.RequestCtx.UserValue(sessionIDKey).(string)

	return v, ok && v != ""
}

// UserValue returns a path parameter.
func (c *Ctx) UserValue(name string) UserValue {
	v, _ := c.RequestCtx.UserValue(name).(string)

	return UserValue(v)
}

type UserValue string

func (v UserValue) String() string {
	return string(v)
}

func (v UserValue) ObjectID() (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(string(v))
	if err != nil {
		return primitive.NilObjectID, errors.ErrBadObjectID().SetFields(errors.Fields{"VALUE": string(v)})
	}

	return id, nil
}

func (c *Ctx) Log() *zap.SugaredLogger {
	z := zap.S().Named("api/rest").With(
		"request_id", c.ID(),
		"route", c.Path(),
	)

	actor, ok := c.GetActor()
	if ok {
		z = z.With("actor_id", actor.ID)
	}

	return z
}
