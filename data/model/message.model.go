package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Message is one chat message. Private messages are written twice, once
// under each mirror of the conversation (Owner/Peer swapped), sharing the
// same ID. The two mirrors are separate documents, so each carries its
// own DocID. Only Reactions and ReadBy may change after creation.
type Message struct {
	DocID        primitive.ObjectID `json:"-" bson:"_id,omitempty"`
	ID           string             `json:"id" bson:"message_id"`
	Owner        primitive.ObjectID `json:"-" bson:"owner,omitempty"`
	Peer         primitive.ObjectID `json:"-" bson:"peer,omitempty"`
	GroupID      primitive.ObjectID `json:"group_id,omitempty" bson:"group_id,omitempty"`
	Text         string             `json:"text" bson:"text"`
	SenderID     primitive.ObjectID `json:"sender_id" bson:"sender_id"`
	SenderName   string             `json:"sender_name" bson:"sender_name"`
	SenderAvatar string             `json:"sender_avatar,omitempty" bson:"sender_avatar,omitempty"`
	To           primitive.ObjectID `json:"to" bson:"to"`
	Timestamp    time.Time          `json:"timestamp" bson:"timestamp"`
	ImageURL     string             `json:"image_url,omitempty" bson:"image_url,omitempty"`
	Reactions    map[string]string  `json:"reactions,omitempty" bson:"reactions,omitempty"`
	ReadBy       map[string]bool    `json:"read_by" bson:"read_by"`
}

// ReadByUser reports whether the given account's read marker is set.
func (m Message) ReadByUser(id primitive.ObjectID) bool {
	return m.ReadBy[id.Hex()]
}
