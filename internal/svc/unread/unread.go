package unread

import (
	"context"

	"github.com/hashicorp/go-multierror"
	"github.com/huddleapp/huddle/data/model"
	"github.com/huddleapp/huddle/data/mutate"
	"github.com/huddleapp/huddle/data/query"
	"github.com/huddleapp/huddle/internal/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Instance recomputes per-conversation unread counts. Counts are always
// rebuilt from a full message scan, never adjusted incrementally, so a
// recompute after any change converges on the same value.
type Instance interface {
	CountPrivate(ctx context.Context, viewer model.User, peer primitive.ObjectID) (int, error)
	CountGroup(ctx context.Context, viewer model.User, groupID primitive.ObjectID) (int, error)
	MarkPrivateRead(ctx context.Context, viewer model.User, peer primitive.ObjectID) error
	MarkGroupRead(ctx context.Context, viewer model.User, groupID primitive.ObjectID) error
}

type inst struct {
	query  *query.Query
	mutate *mutate.Mutate
}

type Options struct {
	Query  *query.Query
	Mutate *mutate.Mutate
}

func New(opt Options) Instance {
	return &inst{
		query:  opt.Query,
		mutate: opt.Mutate,
	}
}

// Count returns how many of msgs are unread for viewer: authored by
// someone else and missing viewer's read marker.
func Count(msgs []model.Message, viewer primitive.ObjectID) int {
	n := 0

	for _, msg := range msgs {
		if msg.SenderID != viewer && !msg.ReadByUser(viewer) {
			n++
		}
	}

	return n
}

func (i *inst) CountPrivate(ctx context.Context, viewer model.User, peer primitive.ObjectID) (int, error) {
	msgs, err := i.query.PrivateMessages(ctx, viewer.ID, peer)
	if err != nil {
		return 0, err
	}

	return Count(msgs, viewer.ID), nil
}

func (i *inst) CountGroup(ctx context.Context, viewer model.User, groupID primitive.ObjectID) (int, error) {
	msgs, err := i.query.GroupMessages(ctx, groupID)
	if err != nil {
		return 0, err
	}

	return Count(msgs, viewer.ID), nil
}

// MarkPrivateRead sets viewer's read marker on every unread message in
// their mirror of the conversation. One write per message; a partial
// failure leaves the remaining markers for the next open.
func (i *inst) MarkPrivateRead(ctx context.Context, viewer model.User, peer primitive.ObjectID) error {
	msgs, err := i.query.PrivateMessages(ctx, viewer.ID, peer)
	if err != nil {
		return err
	}

	var result *multierror.Error

	for _, msg := range msgs {
		if msg.SenderID == viewer.ID || msg.ReadByUser(viewer.ID) {
			continue
		}

		if err := i.mutate.SetReadMarker(ctx, true, viewer.ID, peer, msg.ID, viewer.ID); err != nil {
			result = multierror.Append(result, err)
		}
	}

	if err := result.ErrorOrNil(); err != nil {
		return errors.ErrInternalIncompleteAction().SetFields(errors.Fields{"MARK_READ_ERROR": err.Error()})
	}

	return nil
}

func (i *inst) MarkGroupRead(ctx context.Context, viewer model.User, groupID primitive.ObjectID) error {
	msgs, err := i.query.GroupMessages(ctx, groupID)
	if err != nil {
		return err
	}

	var result *multierror.Error

	for _, msg := range msgs {
		if msg.SenderID == viewer.ID || msg.ReadByUser(viewer.ID) {
			continue
		}

		if err := i.mutate.SetReadMarker(ctx, false, primitive.NilObjectID, groupID, msg.ID, viewer.ID); err != nil {
			result = multierror.Append(result, err)
		}
	}

	if err := result.ErrorOrNil(); err != nil {
		return errors.ErrInternalIncompleteAction().SetFields(errors.Fields{"MARK_READ_ERROR": err.Error()})
	}

	return nil
}
