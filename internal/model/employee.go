package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Employee represents one employee record in the "employees" collection.
//
// The json tags use snake_case because that's what the GraphQL schema
// exposes (first_name, date_of_joining, ...). EmployeePhoto is the only
// optional field.
type Employee struct {
	ID            primitive.ObjectID `json:"id"              bson:"_id,omitempty"`
	FirstName     string             `json:"first_name"      bson:"first_name"`
	LastName      string             `json:"last_name"       bson:"last_name"`
	Email         string             `json:"email"           bson:"email"`
	Gender        string             `json:"gender"          bson:"gender"`
	Designation   string             `json:"designation"     bson:"designation"`
	Salary        float64            `json:"salary"          bson:"salary"`
	DateOfJoining time.Time          `json:"date_of_joining" bson:"date_of_joining"`
	Department    string             `json:"department"      bson:"department"`
	EmployeePhoto string             `json:"employee_photo"  bson:"employee_photo,omitempty"`
}

// EmployeeUpdate carries the optional fields of an update mutation.
// A nil pointer means "leave unchanged" — only non-nil fields are written.
type EmployeeUpdate struct {
	FirstName     *string
	LastName      *string
	Email         *string
	Gender        *string
	Designation   *string
	Salary        *float64
	DateOfJoining *time.Time
	Department    *string
	EmployeePhoto *string
}
