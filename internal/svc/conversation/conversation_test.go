package conversation

import (
	"testing"

	"github.com/huddleapp/huddle/internal/testutil"
)

func TestToggleSetsReaction(t *testing.T) {
	t.Parallel()

	next := Toggle(nil, "u1", "👍")

	testutil.Assert(t, "👍", next["u1"], "reaction set")
	testutil.Assert(t, 1, len(next), "one entry")
}

func TestToggleSameEmojiClears(t *testing.T) {
	t.Parallel()

	next := Toggle(map[string]string{"u1": "👍"}, "u1", "👍")

	testutil.Assert(t, "", next["u1"], "reaction cleared")
	testutil.Assert(t, 0, len(next), "no entries")
}

func TestToggleDifferentEmojiReplaces(t *testing.T) {
	t.Parallel()

	next := Toggle(map[string]string{"u1": "👍"}, "u1", "🎉")

	testutil.Assert(t, "🎉", next["u1"], "reaction replaced")
}

func TestToggleIsAnInvolution(t *testing.T) {
	t.Parallel()

	base := map[string]string{"u2": "🔥"}

	once := Toggle(base, "u1", "👍")
	twice := Toggle(once, "u1", "👍")

	testutil.Assert(t, len(base), len(twice), "toggling twice restores size")
	testutil.Assert(t, base["u2"], twice["u2"], "other reactions untouched")
}

func TestToggleDoesNotMutateInput(t *testing.T) {
	t.Parallel()

	base := map[string]string{"u1": "👍"}
	_ = Toggle(base, "u1", "🎉")

	testutil.Assert(t, "👍", base["u1"], "input mapping unchanged")
}
