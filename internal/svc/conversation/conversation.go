package conversation

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/huddleapp/huddle/data/model"
	"github.com/huddleapp/huddle/data/mutate"
	"github.com/huddleapp/huddle/data/query"
	"github.com/huddleapp/huddle/internal/errors"
	"github.com/huddleapp/huddle/internal/svc/directory"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Instance owns the message operations of private and group
// conversations: sending, history reads and the reaction toggle.
type Instance interface {
	SendPrivate(ctx context.Context, sender, peer model.User, text, imageURL string) (model.Message, error)
	SendGroup(ctx context.Context, sender model.User, group model.Group, text, imageURL string) (model.Message, error)
	PrivateHistory(ctx context.Context, viewer model.User, peer primitive.ObjectID) ([]model.Message, error)
	GroupHistory(ctx context.Context, viewer model.User, group model.Group) ([]model.Message, error)
	TogglePrivateReaction(ctx context.Context, actor model.User, peer primitive.ObjectID, messageID, emoji string) error
	ToggleGroupReaction(ctx context.Context, actor model.User, group model.Group, messageID, emoji string) error
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

// SendPrivate writes the message into both mirrors of the conversation.
// The sender's own read marker is set at creation so their unread count
// never counts their own messages.
func (i *inst) SendPrivate(ctx context.Context, sender, peer model.User, text, imageURL string) (model.Message, error) {
	if !directory.CanDirectMessage(sender, peer) {
		return model.Message{}, errors.ErrInsufficientPrivilege().SetDetail("direct messages to this account are not permitted")
	}

	msg, err := newMessage(sender, text, imageURL)
	if err != nil {
		return msg, err
	}

	msg.Owner = sender.ID
	msg.Peer = peer.ID
	msg.To = peer.ID

	if err := i.mutate.InsertPrivateMessage(ctx, msg); err != nil {
		return msg, err
	}

	return msg, nil
}

func (i *inst) SendGroup(ctx context.Context, sender model.User, group model.Group, text, imageURL string) (model.Message, error) {
	if !group.HasMember(sender.ID) && !sender.IsLeader() {
		return model.Message{}, errors.ErrInsufficientPrivilege().SetDetail("not a member of this group")
	}

	msg, err := newMessage(sender, text, imageURL)
	if err != nil {
		return msg, err
	}

	msg.GroupID = group.ID
	msg.To = group.ID

	if err := i.mutate.InsertGroupMessage(ctx, msg); err != nil {
		return msg, err
	}

	return msg, nil
}

func newMessage(sender model.User, text, imageURL string) (model.Message, error) {
	if strings.TrimSpace(text) == "" && imageURL == "" {
		return model.Message{}, errors.ErrMissingRequiredField().SetDetail("empty message")
	}

	return model.Message{
		ID:           uuid.NewString(),
		Text:         text,
		ImageURL:     imageURL,
		SenderID:     sender.ID,
		SenderName:   sender.Username,
		SenderAvatar: sender.Avatar,
		Timestamp:    time.Now(),
		ReadBy:       map[string]bool{sender.ID.Hex(): true},
	}, nil
}

func (i *inst) PrivateHistory(ctx context.Context, viewer model.User, peer primitive.ObjectID) ([]model.Message, error) {
	return i.query.PrivateMessages(ctx, viewer.ID, peer)
}

func (i *inst) GroupHistory(ctx context.Context, viewer model.User, group model.Group) ([]model.Message, error) {
	if !group.HasMember(viewer.ID) && !viewer.IsLeader() {
		return nil, errors.ErrInsufficientPrivilege().SetDetail("not a member of this group")
	}

	return i.query.GroupMessages(ctx, group.ID)
}

// Toggle returns the reaction mapping after actor reacts with emoji:
// reacting with the emoji already held clears it, anything else replaces
// it. The input mapping is never modified.
func Toggle(reactions map[string]string, actor, emoji string) map[string]string {
	next := make(map[string]string, len(reactions)+1)
	for k, v := range reactions {
		next[k] = v
	}

	if next[actor] == emoji {
		delete(next, actor)
	} else {
		next[actor] = emoji
	}

	return next
}

// TogglePrivateReaction runs the read-modify-write of a reaction toggle
// against the actor's own mirror. The peer's mirror keeps its own
// mapping; toggles do not cross mirrors.
func (i *inst) TogglePrivateReaction(ctx context.Context, actor model.User, peer primitive.ObjectID, messageID, emoji string) error {
	msg, err := i.query.PrivateMessage(ctx, actor.ID, peer, messageID)
	if err != nil {
		return err
	}

	next := Toggle(msg.Reactions, actor.ID.Hex(), emoji)

	return i.mutate.SetReactions(ctx, true, actor.ID, peer, messageID, next, actor.ID)
}

func (i *inst) ToggleGroupReaction(ctx context.Context, actor model.User, group model.Group, messageID, emoji string) error {
	if !group.HasMember(actor.ID) && !actor.IsLeader() {
		return errors.ErrInsufficientPrivilege().SetDetail("not a member of this group")
	}

	msg, err := i.query.GroupMessage(ctx, group.ID, messageID)
	if err != nil {
		return err
	}

	next := Toggle(msg.Reactions, actor.ID.Hex(), emoji)

	return i.mutate.SetReactions(ctx, false, primitive.NilObjectID, group.ID, messageID, next, actor.ID)
}
