package query

import (
	"github.com/huddleapp/huddle/internal/svc/mongo"
)

// Query is the read side of the document store. Every method returns a
// complete snapshot; callers replace state wholesale rather than merging.
type Query struct {
	mongo mongo.Instance
}

func New(mongoInst mongo.Instance) *Query {
	return &Query{mongo: mongoInst}
}
