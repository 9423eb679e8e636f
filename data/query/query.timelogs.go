package query

import (
	"context"
	"time"

	"github.com/huddleapp/huddle/data/model"
	"github.com/huddleapp/huddle/internal/errors"
	"github.com/huddleapp/huddle/internal/svc/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// TimeLogsForDay returns an account's attendance events within the
// calendar day containing `day`, in chronological order.
func (q *Query) TimeLogsForDay(ctx context.Context, userID primitive.ObjectID, day time.Time) ([]model.AttendanceEvent, error) {
	logs := []model.AttendanceEvent{}

	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)

	cur, err := q.mongo.Collection(mongo.CollectionNameTimeLogs).Find(ctx, bson.M{
		"user_id":   userID,
		"timestamp": bson.M{"$gte": start, "$lt": end},
	}, options.Find().SetSort(bson.M{"timestamp": 1}))
	if err != nil {
		return logs, errors.From(err)
	}

	if err = cur.All(ctx, &logs); err != nil {
		return logs, errors.From(err)
	}

	return logs, nil
}
