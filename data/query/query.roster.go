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

// RosterFor returns the viewer-scoped directory snapshot. Leaders see the
// unfiltered user and group collections; everyone else sees only
// Leader-role accounts and groups they belong to. The viewer is never
// part of their own roster.
func (q *Query) RosterFor(ctx context.Context, viewer model.User) (model.Roster, error) {
	roster := model.Roster{
		Users:  []model.User{},
		Groups: []model.Group{},
	}

	userFilter := bson.M{"_id": bson.M{"$ne": viewer.ID}}
	if !viewer.IsLeader() {
		userFilter["role"] = model.RoleLeader
	}

	cur, err := q.mongo.Collection(mongo.CollectionNameUsers).Find(ctx, userFilter,
		options.Find().SetSort(bson.M{"username": 1}),
	)
	if err != nil {
		return roster, errors.From(err)
	}

	if err = cur.All(ctx, &roster.Users); err != nil {
		return roster, errors.From(err)
	}

	groupFilter := bson.M{}
	if !viewer.IsLeader() {
		groupFilter["members"] = viewer.ID
	}

	cur, err = q.mongo.Collection(mongo.CollectionNameGroups).Find(ctx, groupFilter,
		options.Find().SetSort(bson.M{"name": 1}),
	)
	if err != nil {
		return roster, errors.From(err)
	}

	if err = cur.All(ctx, &roster.Groups); err != nil {
		return roster, errors.From(err)
	}

	return roster, nil
}

func (q *Query) GroupByID(ctx context.Context, id primitive.ObjectID) (model.Group, error) {
	var group model.Group

	err := q.mongo.Collection(mongo.CollectionNameGroups).FindOne(ctx, bson.M{"_id": id}).Decode(&group)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return group, errors.ErrUnknownGroup()
		}

		return group, errors.From(err)
	}

	return group, nil
}
