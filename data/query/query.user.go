package query

import (
	"context"

	"github.com/huddleapp/huddle/data/model"
	"github.com/huddleapp/huddle/internal/errors"
	"github.com/huddleapp/huddle/internal/svc/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func (q *Query) UserByID(ctx context.Context, id primitive.ObjectID) (model.User, error) {
	var user model.User

	err := q.mongo.Collection(mongo.CollectionNameUsers).FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return user, errors.ErrUnknownUser()
		}

		return user, errors.From(err)
	}

	return user, nil
}

func (q *Query) UserByEmail(ctx context.Context, email string) (model.User, error) {
	var user model.User

	err := q.mongo.Collection(mongo.CollectionNameUsers).FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return user, errors.ErrUnknownUser()
		}

		return user, errors.From(err)
	}

	return user, nil
}
