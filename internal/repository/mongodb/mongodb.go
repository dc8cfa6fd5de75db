// Package mongodb implements the repository interfaces on top of MongoDB.
//
// The driver's mongo.Client manages its own connection pool; one client is
// shared by every repository method. There is deliberately no package-level
// client — New returns an explicit handle that the server owns, opens at
// process start, and closes at shutdown.
package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const connectTimeout = 10 * time.Second

// DB wraps the Mongo client and the collections the app uses.
// It implements repository.UserRepository and repository.EmployeeRepository.
type DB struct {
	client    *mongo.Client
	users     *mongo.Collection
	employees *mongo.Collection
}

// New connects to MongoDB, verifies the connection with a ping, and
// ensures the unique indexes the data model relies on.
//
// The ping matters: mongo.Connect does not actually reach the server, so
// a bad URI would otherwise only surface on the first query.
func New(ctx context.Context, uri, dbName string) (*DB, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongodb: connecting: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongodb: pinging: %w", err)
	}

	database := client.Database(dbName)
	db := &DB{
		client:    client,
		users:     database.Collection("users"),
		employees: database.Collection("employees"),
	}

	if err := db.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongodb: ensuring indexes: %w", err)
	}

	return db, nil
}

// ensureIndexes creates the unique indexes that back the uniqueness
// invariants. The in-service pre-checks are only advisory; these indexes
// are the source of truth, including under concurrent registration
// (two racing signups both pass the pre-check, one loses here).
func (db *DB) ensureIndexes(ctx context.Context) error {
	_, err := db.users.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	})
	if err != nil {
		return fmt.Errorf("creating users indexes: %w", err)
	}

	_, err = db.employees.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("creating employees index: %w", err)
	}

	return nil
}

// Ping reports whether the database is reachable. Used by the health route.
func (db *DB) Ping(ctx context.Context) error {
	return db.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client, releasing pooled connections.
func (db *DB) Close(ctx context.Context) error {
	return db.client.Disconnect(ctx)
}
