package auth

import (
	"testing"

	"github.com/huddleapp/huddle/internal/testutil"
)

func TestAvatarURL(t *testing.T) {
	t.Parallel()

	got := avatarURL("https://ui-avatars.com/api/?name={name}&background=random", "Jane Doe")
	testutil.Assert(t, "https://ui-avatars.com/api/?name=Jane+Doe&background=random", got, "name substituted and escaped")
}
