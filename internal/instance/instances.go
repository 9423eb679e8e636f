package instance

import (
	"github.com/huddleapp/huddle/data/events"
	"github.com/huddleapp/huddle/data/mutate"
	"github.com/huddleapp/huddle/data/query"
	"github.com/huddleapp/huddle/internal/svc/attendance"
	"github.com/huddleapp/huddle/internal/svc/auth"
	"github.com/huddleapp/huddle/internal/svc/conversation"
	"github.com/huddleapp/huddle/internal/svc/directory"
	"github.com/huddleapp/huddle/internal/svc/mongo"
	"github.com/huddleapp/huddle/internal/svc/presence"
	"github.com/huddleapp/huddle/internal/svc/redis"
	"github.com/huddleapp/huddle/internal/svc/session"
	"github.com/huddleapp/huddle/internal/svc/unread"
)

type Instances struct {
	Mongo      mongo.Instance
	Redis      redis.Instance
	Nats       Nats
	S3         S3
	Prometheus Prometheus
	Events     events.Instance

	Auth          auth.Authorizer
	Sessions      session.Instance
	Directory     directory.Instance
	Presence      presence.Instance
	Unread        unread.Instance
	Conversations conversation.Instance
	Attendance    attendance.Instance

	Query  *query.Query
	Mutate *mutate.Mutate
}
