package nats

import (
	"context"

	"github.com/huddleapp/huddle/internal/instance"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"
)

type inst struct {
	conn *nats.Conn
}

type Options struct {
	URL string
}

func New(ctx context.Context, opt Options) (instance.Nats, error) {
	conn, err := nats.Connect(opt.URL,
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				zap.S().Warnw("nats disconnected",
					"error", err,
				)
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			zap.S().Infow("nats reconnected",
				"url", c.ConnectedUrl(),
			)
		}),
	)
	if err != nil {
		return nil, err
	}

	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	return &inst{conn: conn}, nil
}

func (i *inst) Publish(subject string, data []byte) error {
	return i.conn.Publish(subject, data)
}

func (i *inst) Subscribe(subject string, cb nats.MsgHandler) (*nats.Subscription, error) {
	return i.conn.Subscribe(subject, cb)
}

func (i *inst) Connected() bool {
	return i.conn.IsConnected()
}
