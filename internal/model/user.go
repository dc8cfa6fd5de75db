// Package model defines the data structures used throughout the application.
package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents a registered account.
//
// The bson tags map fields to document keys in the "users" collection;
// the json tags match the GraphQL field names so the default resolver
// picks them up without per-field glue.
//
// The Password field only ever holds a bcrypt hash. The plaintext is hashed
// in the auth service before a User is constructed for persistence, so no
// layer below the service ever sees it. If a User is serialized, the stored
// hash is what goes out — never the original input.
//
// Username and email are each unique across all users, enforced by unique
// indexes on the collection (see repository/mongodb).
type User struct {
	ID        primitive.ObjectID `json:"id"         bson:"_id,omitempty"`
	Username  string             `json:"username"   bson:"username"`
	Email     string             `json:"email"      bson:"email"`
	Password  string             `json:"password"   bson:"password"` // bcrypt hash, never plaintext
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}
