package mutate

import (
	"context"
	"time"

	"github.com/huddleapp/huddle/data/events"
	"github.com/huddleapp/huddle/data/model"
	"github.com/huddleapp/huddle/internal/errors"
	"github.com/huddleapp/huddle/internal/svc/mongo"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AppendTimeLog appends one attendance event. The log is append-only;
// status is derived by readers, never written.
func (m *Mutate) AppendTimeLog(ctx context.Context, ev *model.AttendanceEvent) error {
	ev.ID = primitive.NewObjectID()

	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now()
	}

	if _, err := m.mongo.Collection(mongo.CollectionNameTimeLogs).InsertOne(ctx, ev); err != nil {
		return errors.From(err)
	}

	m.events.Dispatch(ctx, events.ChangeEvent{
		Type:     events.EventTypeAppendTimeLog,
		ObjectID: ev.ID.Hex(),
		ActorID:  ev.UserID.Hex(),
	}, m.events.ChannelTimeLogs(ev.UserID.Hex()))

	return nil
}
