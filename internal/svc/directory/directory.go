package directory

import (
	"context"

	"github.com/huddleapp/huddle/data/model"
	"github.com/huddleapp/huddle/data/query"
)

// Instance serves viewer-scoped roster snapshots. A snapshot is always
// rebuilt wholesale from the backing collections; there is no incremental
// patching of a previous snapshot.
type Instance interface {
	Roster(ctx context.Context, viewer model.User) (model.Roster, error)
}

type inst struct {
	query *query.Query
}

type Options struct {
	Query *query.Query
}

func New(opt Options) Instance {
	return &inst{query: opt.Query}
}

func (i *inst) Roster(ctx context.Context, viewer model.User) (model.Roster, error) {
	return i.query.RosterFor(ctx, viewer)
}

// CanDirectMessage reports whether viewer may open a private conversation
// with target. Leaders may message anyone; everyone else may only message
// Leaders. This mirrors the roster visibility rule so a conversation can
// never be opened with an account the viewer cannot see.
func CanDirectMessage(viewer, target model.User) bool {
	if viewer.IsLeader() {
		return true
	}

	return target.IsLeader()
}

// VisibleTo reports whether target would appear in viewer's roster.
func VisibleTo(viewer, target model.User) bool {
	if viewer.ID == target.ID {
		return false
	}

	if viewer.IsLeader() {
		return true
	}

	return target.IsLeader()
}
