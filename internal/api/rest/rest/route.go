package rest

// Route is one node of the HTTP route tree. Children inherit the parent's
// URI prefix and middleware.
type Route interface {
	Config() RouteConfig
	Handler(ctx *Ctx) APIError
}

type RouteConfig struct {
	URI        string
	Method     Method
	Children   []Route
	Middleware []Middleware
}

type Middleware func(ctx *Ctx) APIError

type Method string

const (
	GET    Method = "GET"
	POST   Method = "POST"
	PUT    Method = "PUT"
	PATCH  Method = "PATCH"
	DELETE Method = "DELETE"
)

type HttpStatusCode int

const (
	OK        HttpStatusCode = 200
	Created   HttpStatusCode = 201
	NoContent HttpStatusCode = 204

	BadRequest       HttpStatusCode = 400
	Unauthorized     HttpStatusCode = 401
	Forbidden        HttpStatusCode = 403
	NotFound         HttpStatusCode = 404
	MethodNotAllowed HttpStatusCode = 405
	Conflict         HttpStatusCode = 409
	TooManyRequests  HttpStatusCode = 429

	InternalServerError HttpStatusCode = 500
	ServiceUnavailable  HttpStatusCode = 503
)
