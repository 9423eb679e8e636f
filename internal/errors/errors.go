package errors

import (
	"fmt"
)

// APIError is the error contract returned by every backend operation.
// Errors carry a stable numeric code, a human-readable message and an
// expected HTTP status for the REST layer.
type APIError interface {
	error
	Code() int
	Message() string
	ExpectedHTTPStatus() int
	SetDetail(format string, args ...interface{}) APIError
	SetFields(f Fields) APIError
	GetFields() Fields
	WithHTTPStatus(s int) APIError
}

type Fields map[string]interface{}

type apiError struct {
	message            string
	code               int
	expectedHTTPStatus int
	fields             Fields
}

func (e *apiError) Error() string {
	return fmt.Sprintf("%s [%d]", e.message, e.code)
}

func (e *apiError) Message() string {
	return e.message
}

func (e *apiError) Code() int {
	return e.code
}

func (e *apiError) ExpectedHTTPStatus() int {
	return e.expectedHTTPStatus
}

func (e *apiError) SetDetail(format string, args ...interface{}) APIError {
	e.message = fmt.Sprintf(e.message+": "+format, args...)

	return e
}

func (e *apiError) SetFields(f Fields) APIError {
	if e.fields == nil {
		e.fields = Fields{}
	}

	for k, v := range f {
		e.fields[k] = v
	}

	return e
}

func (e *apiError) GetFields() Fields {
	return e.fields
}

func (e *apiError) WithHTTPStatus(s int) APIError {
	e.expectedHTTPStatus = s

	return e
}

func def(code int, message string, httpStatus int) func() APIError {
	return func() APIError {
		return &apiError{
			message:            message,
			code:               code,
			expectedHTTPStatus: httpStatus,
		}
	}
}

// From returns err as an APIError, wrapping unrecognized errors as an
// internal server error.
func From(err error) APIError {
	if err == nil {
		return nil
	}

	if apiErr, ok := err.(APIError); ok {
		return apiErr
	}

	return ErrInternalServerError().SetFields(Fields{"cause": err.Error()})
}

// Compare reports whether two errors carry the same code.
func Compare(err error, target APIError) bool {
	apiErr, ok := err.(APIError)

	return ok && target != nil && apiErr.Code() == target.Code()
}

var (
	// Client type errors (10xxx)
	ErrUnauthorized          = def(10401, "Sign-In Required", 401)
	ErrInsufficientPrivilege = def(10403, "Insufficient Privilege", 403)
	ErrInvalidRequest        = def(10400, "Invalid Request", 400)
	ErrMissingRequiredField  = def(10410, "Missing Required Field", 400)
	ErrBadObjectID           = def(10411, "Bad Object ID", 400)
	ErrRateLimited           = def(10429, "Too Many Requests", 429)

	// Session errors (11xxx)
	ErrSessionConflict    = def(11409, "Account Already Signed In Elsewhere", 409)
	ErrSessionInvalidated = def(11401, "Session Revoked By Another Sign-In", 401)

	// Object errors (12xxx)
	ErrUnknownUser    = def(12404, "Unknown User", 404)
	ErrUnknownGroup   = def(12405, "Unknown Group", 404)
	ErrUnknownMessage = def(12406, "Unknown Message", 404)
	ErrUnknownRoute   = def(12407, "Unknown Route", 404)
	ErrNoItems        = def(12408, "No Items Found", 404)

	// Server errors (50xxx)
	ErrInternalServerError       = def(50500, "Internal Server Error", 500)
	ErrMissingInternalDependency = def(50501, "Missing Internal Dependency", 503)
	ErrInternalIncompleteAction  = def(50502, "Incomplete Action", 500)
)
