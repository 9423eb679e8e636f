package mutate

import (
	"context"
	"time"

	"github.com/huddleapp/huddle/data/events"
	"github.com/huddleapp/huddle/data/model"
	"github.com/huddleapp/huddle/internal/errors"
	"github.com/huddleapp/huddle/internal/svc/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreateGroup inserts a new group. Only Leaders may create groups; the
// creator is its first member.
func (m *Mutate) CreateGroup(ctx context.Context, actor model.User, group *model.Group) error {
	if !actor.IsLeader() {
		return errors.ErrInsufficientPrivilege().SetDetail("only leaders can create groups")
	}

	group.ID = primitive.NewObjectID()
	group.CreatorID = actor.ID
	group.Members = []primitive.ObjectID{actor.ID}
	group.CreatedAt = time.Now()

	if _, err := m.mongo.Collection(mongo.CollectionNameGroups).InsertOne(ctx, group); err != nil {
		return errors.From(err)
	}

	m.events.Dispatch(ctx, events.ChangeEvent{
		Type:     events.EventTypeCreateGroup,
		ObjectID: group.ID.Hex(),
		ActorID:  actor.ID.Hex(),
	}, m.events.ChannelGroups())

	return nil
}

func (m *Mutate) GroupAddMember(ctx context.Context, actor model.User, groupID, memberID primitive.ObjectID) error {
	if !actor.IsLeader() {
		return errors.ErrInsufficientPrivilege().SetDetail("only leaders can manage group members")
	}

	res, err := m.mongo.Collection(mongo.CollectionNameGroups).UpdateOne(ctx,
		bson.M{"_id": groupID},
		bson.M{"$addToSet": bson.M{"members": memberID}},
	)
	if err != nil {
		return errors.From(err)
	}

	if res.MatchedCount == 0 {
		return errors.ErrUnknownGroup()
	}

	m.events.Dispatch(ctx, events.ChangeEvent{
		Type:     events.EventTypeUpdateGroup,
		ObjectID: groupID.Hex(),
		ActorID:  actor.ID.Hex(),
	}, m.events.ChannelGroups(), m.events.ChannelGroupChat(groupID.Hex()))

	return nil
}

func (m *Mutate) GroupRemoveMember(ctx context.Context, actor model.User, groupID, memberID primitive.ObjectID) error {
	if !actor.IsLeader() {
		return errors.ErrInsufficientPrivilege().SetDetail("only leaders can manage group members")
	}

	res, err := m.mongo.Collection(mongo.CollectionNameGroups).UpdateOne(ctx,
		bson.M{"_id": groupID},
		bson.M{"$pull": bson.M{"members": memberID}},
	)
	if err != nil {
		return errors.From(err)
	}

	if res.MatchedCount == 0 {
		return errors.ErrUnknownGroup()
	}

	m.events.Dispatch(ctx, events.ChangeEvent{
		Type:     events.EventTypeUpdateGroup,
		ObjectID: groupID.Hex(),
		ActorID:  actor.ID.Hex(),
	}, m.events.ChannelGroups(), m.events.ChannelGroupChat(groupID.Hex()))

	return nil
}
