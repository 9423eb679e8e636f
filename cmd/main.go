package main

import (
	"context"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/bugsnag/panicwrap"
	"github.com/huddleapp/huddle/data/events"
	"github.com/huddleapp/huddle/data/mutate"
	"github.com/huddleapp/huddle/data/query"
	"github.com/huddleapp/huddle/internal/api/eventbridge"
	"github.com/huddleapp/huddle/internal/api/rest"
	"github.com/huddleapp/huddle/internal/configure"
	"github.com/huddleapp/huddle/internal/global"
	"github.com/huddleapp/huddle/internal/health"
	"github.com/huddleapp/huddle/internal/monitoring"
	"github.com/huddleapp/huddle/internal/svc/attendance"
	"github.com/huddleapp/huddle/internal/svc/auth"
	"github.com/huddleapp/huddle/internal/svc/conversation"
	"github.com/huddleapp/huddle/internal/svc/directory"
	"github.com/huddleapp/huddle/internal/svc/mongo"
	"github.com/huddleapp/huddle/internal/svc/nats"
	"github.com/huddleapp/huddle/internal/svc/presence"
	"github.com/huddleapp/huddle/internal/svc/prometheus"
	"github.com/huddleapp/huddle/internal/svc/redis"
	"github.com/huddleapp/huddle/internal/svc/s3"
	"github.com/huddleapp/huddle/internal/svc/session"
	"github.com/huddleapp/huddle/internal/svc/unread"
	"go.uber.org/zap"
)

var (
	Version = "development"
	Unix    = ""
	Time    = "unknown"
	User    = "unknown"
)

func init() {
	debug.SetGCPercent(2000)
	if i, err := strconv.Atoi(Unix); err == nil {
		Time = time.Unix(int64(i), 0).Format(time.RFC3339)
	}
}

func main() {
	config := configure.New()

	exitStatus, err := panicwrap.BasicWrap(func(s string) {
		zap.S().Errorw("panic detected",
			"panic", s,
		)
	})
	if err != nil {
		zap.S().Errorw("failed to setup panic handler",
			"error", err,
		)
		os.Exit(2)
	}

	if exitStatus >= 0 {
		os.Exit(exitStatus)
	}

	if !config.NoHeader {
		zap.S().Info("Huddle API")
		zap.S().Infof("Version: %s", Version)
		zap.S().Infof("build.Time: %s", Time)
		zap.S().Infof("build.User: %s", User)
	}

	zap.S().Debugf("MaxProcs: %d", runtime.GOMAXPROCS(0))

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	gCtx, cancel := global.WithCancel(global.New(context.Background(), config))

	{
		gCtx.Inst().Mongo, err = mongo.New(gCtx, mongo.Options{
			URI:    config.Mongo.URI,
			DB:     config.Mongo.DB,
			Direct: config.Mongo.Direct,
		})
		if err != nil {
			zap.S().Fatalw("failed to setup mongo handler",
				"error", err,
			)
		}
	}

	{
		gCtx.Inst().Redis, err = redis.New(gCtx, redis.Options{
			Username:   config.Redis.Username,
			Password:   config.Redis.Password,
			Database:   config.Redis.Database,
			Sentinel:   config.Redis.Sentinel,
			Addresses:  config.Redis.Addresses,
			MasterName: config.Redis.MasterName,
		})
		if err != nil {
			zap.S().Fatalw("failed to setup redis handler",
				"error", err,
			)
		}
	}

	{
		gCtx.Inst().Nats, err = nats.New(gCtx, nats.Options{
			URL: config.Nats.URL,
		})
		if err != nil {
			zap.S().Fatalw("failed to setup nats handler",
				"error", err,
			)
		}
	}

	{
		gCtx.Inst().S3, err = s3.New(gCtx, s3.Options{
			Region:      config.S3.Region,
			Endpoint:    config.S3.Endpoint,
			AccessToken: config.S3.AccessToken,
			SecretKey:   config.S3.SecretKey,
		})
		if err != nil {
			zap.S().Fatalw("failed to setup s3 handler",
				"error", err,
			)
		}
	}

	{
		gCtx.Inst().Prometheus = prometheus.New(prometheus.Options{})
	}

	{
		gCtx.Inst().Events = events.NewPublisher(gCtx, gCtx.Inst().Redis)
		gCtx.Inst().Query = query.New(gCtx.Inst().Mongo)
		gCtx.Inst().Mutate = mutate.New(gCtx.Inst().Mongo, gCtx.Inst().Events)

		gCtx.Inst().Auth = auth.New(auth.AuthorizerOptions{
			JWTSecret:     config.Auth.JWTSecret,
			TokenDuration: config.Auth.TokenDuration,
		})

		gCtx.Inst().Sessions = session.New(session.Options{
			Query:  gCtx.Inst().Query,
			Mutate: gCtx.Inst().Mutate,
		})

		gCtx.Inst().Directory = directory.New(directory.Options{
			Query: gCtx.Inst().Query,
		})

		gCtx.Inst().Presence = presence.New(presence.Options{
			Redis:  gCtx.Inst().Redis,
			Events: gCtx.Inst().Events,
			TTL:    config.Presence.TTL,
		})

		gCtx.Inst().Unread = unread.New(unread.Options{
			Query:  gCtx.Inst().Query,
			Mutate: gCtx.Inst().Mutate,
		})

		gCtx.Inst().Conversations = conversation.New(conversation.Options{
			Query:  gCtx.Inst().Query,
			Mutate: gCtx.Inst().Mutate,
		})

		gCtx.Inst().Attendance = attendance.New(attendance.Options{
			Query:    gCtx.Inst().Query,
			Mutate:   gCtx.Inst().Mutate,
			Presence: gCtx.Inst().Presence,
		})
	}

	wg := sync.WaitGroup{}

	if gCtx.Config().Health.Enabled {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-health.New(gCtx)
		}()
	}
	if gCtx.Config().Monitoring.Enabled {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-monitoring.New(gCtx)
		}()
	}

	done := make(chan struct{})
	go func() {
		<-sig
		cancel()
		go func() {
			select {
			case <-time.After(time.Minute):
			case <-sig:
			}
			zap.S().Fatal("force shutdown")
		}()

		zap.S().Info("shutting down")

		wg.Wait()

		close(done)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := rest.New(gCtx); err != nil {
			zap.S().Fatalw("rest failed",
				"error", err,
			)
		}
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()

		bridgeDone, err := eventbridge.New(gCtx)
		if err != nil {
			zap.S().Fatalw("eventbridge failed",
				"error", err,
			)
		}

		<-bridgeDone
	}()

	zap.S().Info("running")

	<-done

	zap.S().Info("shutdown")
	os.Exit(0)
}
