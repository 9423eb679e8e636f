package errors

import (
	"fmt"
	"testing"
)

func TestErrorCodesAreStable(t *testing.T) {
	t.Parallel()

	cases := []struct {
		err    APIError
		code   int
		status int
	}{
		{ErrUnauthorized(), 10401, 401},
		{ErrInsufficientPrivilege(), 10403, 403},
		{ErrSessionConflict(), 11409, 409},
		{ErrSessionInvalidated(), 11401, 401},
		{ErrUnknownUser(), 12404, 404},
		{ErrUnknownMessage(), 12406, 404},
		{ErrInternalServerError(), 50500, 500},
		{ErrInternalIncompleteAction(), 50502, 500},
	}

	for _, tc := range cases {
		if tc.err.Code() != tc.code {
			t.Fatalf("expected code %d got %d", tc.code, tc.err.Code())
		}
		if tc.err.ExpectedHTTPStatus() != tc.status {
			t.Fatalf("expected status %d got %d", tc.status, tc.err.ExpectedHTTPStatus())
		}
	}
}

func TestSetDetailAppendsToMessage(t *testing.T) {
	t.Parallel()

	err := ErrInvalidRequest().SetDetail("field %s is malformed", "email")

	expected := "Invalid Request: field email is malformed"
	if err.Message() != expected {
		t.Fatalf("expected %q got %q", expected, err.Message())
	}
}

func TestFieldsAccumulate(t *testing.T) {
	t.Parallel()

	err := ErrInternalServerError().
		SetFields(Fields{"a": 1}).
		SetFields(Fields{"b": 2})

	f := err.GetFields()
	if f["a"] != 1 || f["b"] != 2 {
		t.Fatalf("expected both fields, got %v", f)
	}
}

func TestFrom(t *testing.T) {
	t.Parallel()

	if From(nil) != nil {
		t.Fatal("From(nil) must be nil")
	}

	original := ErrUnknownUser()
	if From(original) != original {
		t.Fatal("From must pass an APIError through")
	}

	wrapped := From(fmt.Errorf("socket closed"))
	if wrapped.Code() != ErrInternalServerError().Code() {
		t.Fatalf("expected internal error, got %d", wrapped.Code())
	}
	if wrapped.GetFields()["cause"] != "socket closed" {
		t.Fatalf("expected cause field, got %v", wrapped.GetFields())
	}
}

func TestCompare(t *testing.T) {
	t.Parallel()

	if !Compare(ErrSessionConflict(), ErrSessionConflict()) {
		t.Fatal("same kind must compare equal")
	}

	if Compare(ErrSessionConflict(), ErrSessionInvalidated()) {
		t.Fatal("different kinds must not compare equal")
	}

	if Compare(fmt.Errorf("plain"), ErrSessionConflict()) {
		t.Fatal("plain errors never match")
	}
}
