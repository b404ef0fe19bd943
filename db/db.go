package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DB holds the collection handles for every aggregate. Constructed once in
// main and injected into the handler structs; no package-level state.
type DB struct {
	Client       *mongo.Client
	Itineraries  *mongo.Collection
	Admins       *mongo.Collection
	Gallery      *mongo.Collection
	Testimonials *mongo.Collection
}

// Connect dials MongoDB, pings it, and hands back the collection set.
func Connect(ctx context.Context, uri, dbName string) (*DB, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	database := client.Database(dbName)
	d := &DB{
		Client:       client,
		Itineraries:  database.Collection("itineraries"),
		Admins:       database.Collection("admins"),
		Gallery:      database.Collection("gallery"),
		Testimonials: database.Collection("testimonials"),
	}

	// Admin emails are unique; everything else is looked up by opaque id.
	_, err = d.Admins.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, err
	}

	return d, nil
}

// Close disconnects the underlying client.
func (d *DB) Close(ctx context.Context) error {
	return d.Client.Disconnect(ctx)
}
