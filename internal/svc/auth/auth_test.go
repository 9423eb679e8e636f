package auth

import (
	"testing"
	"time"

	"github.com/huddleapp/huddle/data/model"
	"github.com/huddleapp/huddle/internal/testutil"
)

func newTestAuthorizer() Authorizer {
	return New(AuthorizerOptions{
		JWTSecret:     "test-secret",
		TokenDuration: time.Hour,
	})
}

func TestPasswordHashRoundtrip(t *testing.T) {
	t.Parallel()

	a := newTestAuthorizer()

	hash, err := a.HashPassword("hunter22")
	testutil.IsNil(t, err, "hashing succeeds")

	testutil.Assert(t, true, a.VerifyPassword(hash, "hunter22"), "correct password verifies")
	testutil.Assert(t, false, a.VerifyPassword(hash, "hunter23"), "wrong password fails")
}

func TestAccessTokenRoundtrip(t *testing.T) {
	t.Parallel()

	a := newTestAuthorizer()

	token, expiry, err := a.CreateAccessToken("6581f1a0e1a0e1a0e1a0e1a0", model.RoleLeader, "session-1")
	testutil.IsNil(t, err, "token mints")
	testutil.Assert(t, true, expiry.After(time.Now()), "expiry in the future")

	claim := &JWTClaimUser{}
	_, err = a.VerifyJWT(token, claim)
	testutil.IsNil(t, err, "token verifies")

	testutil.Assert(t, "6581f1a0e1a0e1a0e1a0e1a0", claim.UserID, "user claim")
	testutil.Assert(t, string(model.RoleLeader), claim.Role, "role claim")
	testutil.Assert(t, "session-1", claim.SessionID, "session claim")
}

func TestAccessTokenRejectsWrongSecret(t *testing.T) {
	t.Parallel()

	a := newTestAuthorizer()
	b := New(AuthorizerOptions{JWTSecret: "other-secret", TokenDuration: time.Hour})

	token, _, err := a.CreateAccessToken("6581f1a0e1a0e1a0e1a0e1a0", model.RoleUser, "session-1")
	testutil.IsNil(t, err, "token mints")

	claim := &JWTClaimUser{}
	if _, err := b.VerifyJWT(token, claim); err == nil {
		t.Fatal("token signed with another secret must not verify")
	}
}
