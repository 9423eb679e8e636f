package directory

import (
	"testing"

	"github.com/huddleapp/huddle/data/model"
	"github.com/huddleapp/huddle/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func user(role model.Role) model.User {
	return model.User{ID: primitive.NewObjectID(), Role: role}
}

func TestCanDirectMessage(t *testing.T) {
	t.Parallel()

	leader := user(model.RoleLeader)
	member := user(model.RoleUser)
	other := user(model.RoleUser)

	testutil.Assert(t, true, CanDirectMessage(leader, member), "leader to member")
	testutil.Assert(t, true, CanDirectMessage(leader, leader), "leader to leader")
	testutil.Assert(t, true, CanDirectMessage(member, leader), "member to leader")
	testutil.Assert(t, false, CanDirectMessage(member, other), "member to member")
}

func TestVisibleTo(t *testing.T) {
	t.Parallel()

	leader := user(model.RoleLeader)
	member := user(model.RoleUser)
	other := user(model.RoleUser)

	testutil.Assert(t, false, VisibleTo(member, member), "never self")
	testutil.Assert(t, false, VisibleTo(leader, leader), "never self, even leaders")
	testutil.Assert(t, true, VisibleTo(leader, member), "leaders see everyone")
	testutil.Assert(t, true, VisibleTo(leader, other), "leaders see everyone")
	testutil.Assert(t, true, VisibleTo(member, leader), "members see leaders")
	testutil.Assert(t, false, VisibleTo(member, other), "members do not see members")
}

// Visibility and messageability must agree: a conversation can only be
// opened with an account that appears on the roster.
func TestVisibilityImpliesMessageability(t *testing.T) {
	t.Parallel()

	users := []model.User{
		user(model.RoleLeader),
		user(model.RoleUser),
		user(model.RoleUser),
	}

	for _, viewer := range users {
		for _, target := range users {
			if viewer.ID == target.ID {
				continue
			}

			testutil.Assert(t, VisibleTo(viewer, target), CanDirectMessage(viewer, target),
				"visibility and DM permission agree")
		}
	}
}
