package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sakif/employee-graphql/internal/apperror"
	"github.com/sakif/employee-graphql/internal/model"
	"github.com/sakif/employee-graphql/internal/repository"
)

// compile-time check that *DB implements repository.UserRepository
var _ repository.UserRepository = (*DB)(nil)

// Insert adds a new user document and fills in ID and timestamps.
//
// A duplicate-key write error from the unique indexes is translated to the
// conflict kind — the same one the service's pre-check produces — so a
// registration that loses the uniqueness race still gets a clean conflict
// response rather than a server error.
func (db *DB) Insert(ctx context.Context, user *model.User) error {
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	res, err := db.users.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperror.Conflict("username or email is already in use")
		}
		return apperror.Dependency("user store unavailable", err)
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid
	}
	return nil
}

// FindByUsernameOrEmail looks a user up by a single identifier that may be
// either the username or the email address.
func (db *DB) FindByUsernameOrEmail(ctx context.Context, identifier string) (*model.User, error) {
	filter := bson.M{"$or": []bson.M{
		{"username": identifier},
		{"email": identifier},
	}}

	var user model.User
	err := db.users.FindOne(ctx, filter).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NotFound("user", identifier)
		}
		return nil, apperror.Dependency("user store unavailable", err)
	}

	return &user, nil
}

// FindByID retrieves a user by their hex object id.
func (db *DB) FindByID(ctx context.Context, id string) (*model.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// Not a valid object id — no document can have it.
		return nil, apperror.NotFound("user", id)
	}

	var user model.User
	err = db.users.FindOne(ctx, bson.M{"_id": oid}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NotFound("user", id)
		}
		return nil, apperror.Dependency("user store unavailable", err)
	}

	return &user, nil
}
