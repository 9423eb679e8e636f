package instance

import "github.com/nats-io/nats.go"

type Nats interface {
	Publish(subject string, data []byte) error
	Subscribe(subject string, cb nats.MsgHandler) (*nats.Subscription, error)
	Connected() bool
}
