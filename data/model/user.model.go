package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Role string

const (
	RoleLeader Role = "Leader"
	RoleUser   Role = "user"
)

// User is an account document. SessionID holds the single active session
// token and is empty while the account is signed out.
type User struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Username     string             `json:"username" bson:"username"`
	Email        string             `json:"email" bson:"email"`
	Avatar       string             `json:"avatar" bson:"avatar"`
	Role         Role               `json:"role" bson:"role"`
	PasswordHash string             `json:"-" bson:"password_hash"`
	SessionID    string             `json:"-" bson:"session_id"`
	LastSeen     time.Time          `json:"last_seen" bson:"last_seen"`
	CreatedAt    time.Time          `json:"created_at" bson:"created_at"`
}

func (u User) IsLeader() bool {
	return u.Role == RoleLeader
}

// DeletedUser is the zero-identity placeholder returned when no actor is
// bound to a request.
var DeletedUser = User{
	Username: "*deleted_user",
	Role:     RoleUser,
}
