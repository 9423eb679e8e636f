package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/huddleapp/huddle/data/model"
	"golang.org/x/crypto/bcrypt"
)

// Authorizer issues and validates account credentials: bcrypt password
// hashes and signed access tokens carrying the account's role claim.
type Authorizer interface {
	HashPassword(password string) (string, error)
	VerifyPassword(hash, password string) bool
	SignJWT(claim jwt.Claims) (string, error)
	VerifyJWT(token string, out jwt.Claims) (*jwt.Token, error)
	CreateAccessToken(userID string, role model.Role, sessionID string) (string, time.Time, error)
}

type authorizer struct {
	jwtSecret     string
	tokenDuration time.Duration
}

type AuthorizerOptions struct {
	JWTSecret     string
	TokenDuration time.Duration
}

func New(opt AuthorizerOptions) Authorizer {
	if opt.TokenDuration == 0 {
		opt.TokenDuration = time.Hour * 24 * 30
	}

	return &authorizer{
		jwtSecret:     opt.JWTSecret,
		tokenDuration: opt.TokenDuration,
	}
}

func (a *authorizer) HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

	return string(b), err
}

func (a *authorizer) VerifyPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
