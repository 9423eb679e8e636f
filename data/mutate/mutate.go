package mutate

import (
	"github.com/huddleapp/huddle/data/events"
	"github.com/huddleapp/huddle/internal/svc/mongo"
)

// Mutate is the write side of the document store. Every successful write
// publishes a change event so live subscriptions can re-query. There is
// no retry policy on any write.
type Mutate struct {
	mongo  mongo.Instance
	events events.Instance
}

func New(mongoInst mongo.Instance, eventsInst events.Instance) *Mutate {
	return &Mutate{
		mongo:  mongoInst,
		events: eventsInst,
	}
}
