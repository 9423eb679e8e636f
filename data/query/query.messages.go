package query

import (
	"context"

	"github.com/huddleapp/huddle/data/model"
	"github.com/huddleapp/huddle/internal/errors"
	"github.com/huddleapp/huddle/internal/svc/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PrivateMessages returns the owner-side mirror of a private
// conversation in ascending timestamp order.
func (q *Query) PrivateMessages(ctx context.Context, owner, peer primitive.ObjectID) ([]model.Message, error) {
	msgs := []model.Message{}

	cur, err := q.mongo.Collection(mongo.CollectionNameChats).Find(ctx, bson.M{
		"owner": owner,
		"peer":  peer,
	}, options.Find().SetSort(bson.M{"timestamp": 1}))
	if err != nil {
		return msgs, errors.From(err)
	}

	if err = cur.All(ctx, &msgs); err != nil {
		return msgs, errors.From(err)
	}

	return msgs, nil
}

// GroupMessages returns a group conversation in ascending timestamp order.
func (q *Query) GroupMessages(ctx context.Context, groupID primitive.ObjectID) ([]model.Message, error) {
	msgs := []model.Message{}

	cur, err := q.mongo.Collection(mongo.CollectionNameGroupMessages).Find(ctx, bson.M{
		"group_id": groupID,
	}, options.Find().SetSort(bson.M{"timestamp": 1}))
	if err != nil {
		return msgs, errors.From(err)
	}

	if err = cur.All(ctx, &msgs); err != nil {
		return msgs, errors.From(err)
	}

	return msgs, nil
}

// PrivateMessage returns one message from the owner-side mirror of a
// private conversation.
func (q *Query) PrivateMessage(ctx context.Context, owner, peer primitive.ObjectID, id string) (model.Message, error) {
	var msg model.Message

	err := q.mongo.Collection(mongo.CollectionNameChats).FindOne(ctx, bson.M{
		"message_id": id,
		"owner":      owner,
		"peer":       peer,
	}).Decode(&msg)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return msg, errors.ErrUnknownMessage()
		}

		return msg, errors.From(err)
	}

	return msg, nil
}

// GroupMessage returns one message from a group conversation.
func (q *Query) GroupMessage(ctx context.Context, groupID primitive.ObjectID, id string) (model.Message, error) {
	var msg model.Message

	err := q.mongo.Collection(mongo.CollectionNameGroupMessages).FindOne(ctx, bson.M{
		"message_id": id,
		"group_id":   groupID,
	}).Decode(&msg)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return msg, errors.ErrUnknownMessage()
		}

		return msg, errors.From(err)
	}

	return msg, nil
}
