package unread

import (
	"testing"

	"github.com/huddleapp/huddle/data/model"
	"github.com/huddleapp/huddle/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCount(t *testing.T) {
	t.Parallel()

	viewer := primitive.NewObjectID()
	peer := primitive.NewObjectID()

	msgs := []model.Message{
		// own message, never unread
		{ID: "a", SenderID: viewer, ReadBy: map[string]bool{viewer.Hex(): true}},
		// peer message, unread
		{ID: "b", SenderID: peer, ReadBy: map[string]bool{peer.Hex(): true}},
		// peer message, already read
		{ID: "c", SenderID: peer, ReadBy: map[string]bool{peer.Hex(): true, viewer.Hex(): true}},
		// peer message with no markers at all
		{ID: "d", SenderID: peer},
	}

	testutil.Assert(t, 2, Count(msgs, viewer), "viewer unread count")
	testutil.Assert(t, 1, Count(msgs, peer), "peer unread count")
}

func TestCountIsIdempotent(t *testing.T) {
	t.Parallel()

	viewer := primitive.NewObjectID()
	sender := primitive.NewObjectID()

	msgs := []model.Message{
		{ID: "a", SenderID: sender},
		{ID: "b", SenderID: sender},
	}

	first := Count(msgs, viewer)
	second := Count(msgs, viewer)

	testutil.Assert(t, first, second, "recompute over the same snapshot")
	testutil.Assert(t, 2, first, "count value")
}

func TestCountAfterMarkingRead(t *testing.T) {
	t.Parallel()

	viewer := primitive.NewObjectID()
	sender := primitive.NewObjectID()

	msgs := []model.Message{
		{ID: "a", SenderID: sender, ReadBy: map[string]bool{}},
		{ID: "b", SenderID: sender, ReadBy: map[string]bool{}},
	}

	testutil.Assert(t, 2, Count(msgs, viewer), "before marking")

	for n := range msgs {
		msgs[n].ReadBy[viewer.Hex()] = true
	}

	testutil.Assert(t, 0, Count(msgs, viewer), "after marking")
}
