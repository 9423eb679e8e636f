package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Group is a named chat room. Members has set semantics; mutation goes
// through the add/remove member operations only. Groups are never
// hard-deleted.
type Group struct {
	ID        primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	Name      string               `json:"name" bson:"name"`
	Avatar    string               `json:"avatar" bson:"avatar"`
	Members   []primitive.ObjectID `json:"members" bson:"members"`
	CreatorID primitive.ObjectID   `json:"creator_id" bson:"creator_id"`
	CreatedAt time.Time            `json:"created_at" bson:"created_at"`
}

func (g Group) HasMember(id primitive.ObjectID) bool {
	for _, m := range g.Members {
		if m == id {
			return true
		}
	}

	return false
}
