package mutate

import (
	"context"

	"github.com/hashicorp/go-multierror"
	"github.com/huddleapp/huddle/data/events"
	"github.com/huddleapp/huddle/data/model"
	"github.com/huddleapp/huddle/internal/errors"
	"github.com/huddleapp/huddle/internal/svc/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// privateMirrors lays out the two documents of a private message: one
// per conversation mirror, Owner/Peer swapped, sharing the message id
// but each under its own document id.
func privateMirrors(msg model.Message) (model.Message, model.Message) {
	msg.DocID = primitive.NewObjectID()

	mirror := msg
	mirror.DocID = primitive.NewObjectID()
	mirror.Owner, mirror.Peer = msg.Peer, msg.Owner

	return msg, mirror
}

// InsertPrivateMessage writes the message into both mirrored paths of a
// private conversation as two independent writes sharing one message id.
// A partial failure leaves the mirrors inconsistent; the combined error
// is returned but neither write is rolled back or retried.
func (m *Mutate) InsertPrivateMessage(ctx context.Context, msg model.Message) error {
	msg, mirror := privateMirrors(msg)

	var result *multierror.Error

	if _, err := m.mongo.Collection(mongo.CollectionNameChats).InsertOne(ctx, msg); err != nil {
		result = multierror.Append(result, err)
	}

	if _, err := m.mongo.Collection(mongo.CollectionNameChats).InsertOne(ctx, mirror); err != nil {
		result = multierror.Append(result, err)
	}

	if err := result.ErrorOrNil(); err != nil {
		return errors.ErrInternalIncompleteAction().SetFields(errors.Fields{"MONGO_ERROR": err.Error()})
	}

	m.events.Dispatch(ctx, events.ChangeEvent{
		Type:     events.EventTypeCreateMessage,
		ObjectID: msg.ID,
		ActorID:  msg.SenderID.Hex(),
	},
		m.events.ChannelPrivateChat(msg.Owner.Hex(), msg.Peer.Hex()),
		m.events.ChannelPrivateChat(msg.Peer.Hex(), msg.Owner.Hex()),
	)

	return nil
}

func (m *Mutate) InsertGroupMessage(ctx context.Context, msg model.Message) error {
	msg.DocID = primitive.NewObjectID()

	if _, err := m.mongo.Collection(mongo.CollectionNameGroupMessages).InsertOne(ctx, msg); err != nil {
		return errors.From(err)
	}

	m.events.Dispatch(ctx, events.ChangeEvent{
		Type:     events.EventTypeCreateMessage,
		ObjectID: msg.ID,
		ActorID:  msg.SenderID.Hex(),
	}, m.events.ChannelGroupChat(msg.GroupID.Hex()))

	return nil
}

// SetReadMarker sets one account's read marker on one message. Opening a
// conversation issues one of these per unread message; there is no
// batched atomic form, so partial completion is possible.
func (m *Mutate) SetReadMarker(ctx context.Context, private bool, owner, peer primitive.ObjectID, messageID string, viewer primitive.ObjectID) error {
	coll := mongo.CollectionNameGroupMessages
	filter := bson.M{"message_id": messageID, "group_id": peer}

	if private {
		coll = mongo.CollectionNameChats
		filter = bson.M{"message_id": messageID, "owner": owner, "peer": peer}
	}

	_, err := m.mongo.Collection(coll).UpdateOne(ctx, filter, bson.M{
		"$set": bson.M{"read_by." + viewer.Hex(): true},
	})
	if err != nil {
		return errors.From(err)
	}

	return nil
}

// SetReactions replaces a message's reaction mapping wholesale. The
// toggle decision happens in the conversation service; this is the write
// half of its read-modify-write.
func (m *Mutate) SetReactions(ctx context.Context, private bool, owner, peer primitive.ObjectID, messageID string, reactions map[string]string, actor primitive.ObjectID) error {
	coll := mongo.CollectionNameGroupMessages
	filter := bson.M{"message_id": messageID, "group_id": peer}

	if private {
		coll = mongo.CollectionNameChats
		filter = bson.M{"message_id": messageID, "owner": owner, "peer": peer}
	}

	res, err := m.mongo.Collection(coll).UpdateOne(ctx, filter, bson.M{
		"$set": bson.M{"reactions": reactions},
	})
	if err != nil {
		return errors.From(err)
	}

	if res.MatchedCount == 0 {
		return errors.ErrUnknownMessage()
	}

	ev := events.ChangeEvent{
		Type:     events.EventTypeUpdateMessage,
		ObjectID: messageID,
		ActorID:  actor.Hex(),
	}

	if private {
		// Reactions land on the caller's mirror only; the other mirror
		// keeps its own copy of the mapping.
		m.events.Dispatch(ctx, ev, m.events.ChannelPrivateChat(owner.Hex(), peer.Hex()))
	} else {
		m.events.Dispatch(ctx, ev, m.events.ChannelGroupChat(peer.Hex()))
	}

	return nil
}
