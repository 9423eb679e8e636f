package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type CollectionName string

const (
	CollectionNameUsers         CollectionName = "users"
	CollectionNameGroups        CollectionName = "groups"
	CollectionNameChats         CollectionName = "chats"
	CollectionNameGroupMessages CollectionName = "group_messages"
	CollectionNameTimeLogs      CollectionName = "time_logs"
)

type Instance interface {
	Collection(name CollectionName) *mongo.Collection
	Ping(ctx context.Context) error
	RawClient() *mongo.Client
	RawDatabase() *mongo.Database
}

type inst struct {
	client *mongo.Client
	db     *mongo.Database
}

type Options struct {
	URI    string
	DB     string
	Direct bool
}

func New(ctx context.Context, opt Options) (Instance, error) {
	clientOptions := options.Client().ApplyURI(opt.URI).SetDirect(opt.Direct)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, err
	}

	if err = client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, err
	}

	return &inst{
		client: client,
		db:     client.Database(opt.DB),
	}, nil
}

func (i *inst) Collection(name CollectionName) *mongo.Collection {
	return i.db.Collection(string(name))
}

func (i *inst) Ping(ctx context.Context) error {
	return i.client.Ping(ctx, readpref.Primary())
}

func (i *inst) RawClient() *mongo.Client {
	return i.client
}

func (i *inst) RawDatabase() *mongo.Database {
	return i.db
}

// ErrNoDocuments is re-exported so callers need not import the driver
// for the common not-found check.
var ErrNoDocuments = mongo.ErrNoDocuments
