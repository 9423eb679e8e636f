package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Key string

func (k Key) String() string {
	return string(k)
}

type Instance interface {
	Ping(ctx context.Context) error
	ComposeKey(svc string, args ...string) Key
	Get(ctx context.Context, key Key) (string, error)
	SetEX(ctx context.Context, key Key, value string, ttl time.Duration) error
	Expire(ctx context.Context, key Key, ttl time.Duration) error
	Del(ctx context.Context, key Key) error
	Publish(ctx context.Context, channel Key, payload string) error
	Subscribe(ctx context.Context, ch chan<- string, subscribeTo ...Key)
	RawClient() redis.UniversalClient
}

type inst struct {
	client redis.UniversalClient
}

type Options struct {
	Username   string
	Password   string
	Database   int
	Sentinel   bool
	Addresses  []string
	MasterName string
}

func New(ctx context.Context, opt Options) (Instance, error) {
	var client redis.UniversalClient

	if opt.Sentinel {
		client = redis.NewFailoverClient(&redis.FailoverOptions{
			MasterName:    opt.MasterName,
			SentinelAddrs: opt.Addresses,
			Username:      opt.Username,
			Password:      opt.Password,
			DB:            opt.Database,
		})
	} else {
		if len(opt.Addresses) == 0 {
			return nil, fmt.Errorf("no redis addresses provided")
		}

		client = redis.NewClient(&redis.Options{
			Addr:     opt.Addresses[0],
			Username: opt.Username,
			Password: opt.Password,
			DB:       opt.Database,
		})
	}

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &inst{client: client}, nil
}

func (i *inst) Ping(ctx context.Context) error {
	return i.client.Ping(ctx).Err()
}

func (i *inst) ComposeKey(svc string, args ...string) Key {
	k := Key("huddle:" + svc)
	for _, arg := range args {
		k += Key(":" + arg)
	}

	return k
}

func (i *inst) Get(ctx context.Context, key Key) (string, error) {
	return i.client.Get(ctx, key.String()).Result()
}

func (i *inst) SetEX(ctx context.Context, key Key, value string, ttl time.Duration) error {
	return i.client.Set(ctx, key.String(), value, ttl).Err()
}

func (i *inst) Expire(ctx context.Context, key Key, ttl time.Duration) error {
	return i.client.Expire(ctx, key.String(), ttl).Err()
}

func (i *inst) Del(ctx context.Context, key Key) error {
	return i.client.Del(ctx, key.String()).Err()
}

func (i *inst) Publish(ctx context.Context, channel Key, payload string) error {
	return i.client.Publish(ctx, channel.String(), payload).Err()
}

// Subscribe forwards messages published on the given channels into ch
// until ctx is canceled. Messages are dropped if ch is full.
func (i *inst) Subscribe(ctx context.Context, ch chan<- string, subscribeTo ...Key) {
	channels := make([]string, len(subscribeTo))
	for n, k := range subscribeTo {
		channels[n] = k.String()
	}

	sub := i.client.Subscribe(ctx, channels...)

	go func() {
		defer func() {
			if err := sub.Close(); err != nil {
				zap.S().Errorw("failed to close redis subscription",
					"error", err,
				)
			}
		}()

		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-sub.Channel():
				if !ok {
					return
				}

				select {
				case ch <- msg.Payload:
				default:
				}
			}
		}
	}()
}

func (i *inst) RawClient() redis.UniversalClient {
	return i.client
}

// Nil is the sentinel returned by reads on absent keys.
const Nil = redis.Nil
