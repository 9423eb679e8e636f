package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/huddleapp/huddle/data/model"
)

// JWTClaimUser is the access token body. Role travels as a custom claim
// so the REST layer can gate leader-only operations without a user fetch.
type JWTClaimUser struct {
	UserID    string `json:"u"`
	Role      string `json:"r"`
	SessionID string `json:"s"`

	jwt.RegisteredClaims
}

func (a *authorizer) SignJWT(claim jwt.Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claim)

	return token.SignedString([]byte(a.jwtSecret))
}

func (a *authorizer) VerifyJWT(token string, out jwt.Claims) (*jwt.Token, error) {
	result, err := jwt.ParseWithClaims(
		token,
		out,
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("bad jwt signing method, expected HMAC but got %v", t.Header["alg"])
			}

			return []byte(a.jwtSecret), nil
		},
	)

	return result, err
}

func (a *authorizer) CreateAccessToken(userID string, role model.Role, sessionID string) (string, time.Time, error) {
	expiry := time.Now().Add(a.tokenDuration)

	token, err := a.SignJWT(JWTClaimUser{
		UserID:    userID,
		Role:      string(role),
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "huddle",
			ExpiresAt: jwt.NewNumericDate(expiry),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	})

	return token, expiry, err
}
