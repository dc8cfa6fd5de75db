package repository

import (
	"context"

	"github.com/sakif/employee-graphql/internal/model"
)

// UserRepository is the persistence boundary for user accounts.
//
// Implementations must enforce username/email uniqueness at the storage
// layer (unique indexes) — the service's pre-check is only a best-effort
// courtesy for a friendlier error message.
type UserRepository interface {
	// Insert persists a new user and fills in ID and timestamps.
	// Returns apperror.ErrConflict if the username or email is taken.
	// (Named Insert, not Create, so one store type can carry both the user
	// and the employee method sets.)
	Insert(ctx context.Context, user *model.User) error

	// FindByUsernameOrEmail returns the user whose username OR email equals
	// the given identifier. Returns apperror.ErrNotFound if no user matches.
	FindByUsernameOrEmail(ctx context.Context, identifier string) (*model.User, error)

	// FindByID returns the user with the given hex id.
	FindByID(ctx context.Context, id string) (*model.User, error)
}

// EmployeeFilter selects employees by designation OR department.
// Empty fields are ignored.
type EmployeeFilter struct {
	Designation string
	Department  string
}

type EmployeeRepository interface {
	Create(ctx context.Context, employee *model.Employee) error
	GetByID(ctx context.Context, id string) (*model.Employee, error)
	List(ctx context.Context) ([]model.Employee, error)
	Search(ctx context.Context, filter EmployeeFilter) ([]model.Employee, error)
	FindByEmail(ctx context.Context, email string) (*model.Employee, error)
	Update(ctx context.Context, id string, update *model.EmployeeUpdate) (*model.Employee, error)
	Delete(ctx context.Context, id string) error
}
