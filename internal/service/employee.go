package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/employee-graphql/internal/apperror"
	"github.com/sakif/employee-graphql/internal/model"
	"github.com/sakif/employee-graphql/internal/repository"
)

// MinSalary is the lowest salary an employee record may carry.
const MinSalary = 1000

// EmployeeService handles business rules for employee records. The
// operations themselves are thin pass-throughs to the store; the value
// here is the field validation in front of them.
type EmployeeService struct {
	repo   repository.EmployeeRepository
	logger *slog.Logger
}

func NewEmployeeService(repo repository.EmployeeRepository, logger *slog.Logger) *EmployeeService {
	return &EmployeeService{
		repo:   repo,
		logger: logger,
	}
}

// List returns every employee.
func (s *EmployeeService) List(ctx context.Context) ([]model.Employee, error) {
	employees, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list employees", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing employees: %w", err)
	}
	return employees, nil
}

// GetByID retrieves one employee. Returns apperror.ErrNotFound if the id
// doesn't match any record.
func (s *EmployeeService) GetByID(ctx context.Context, id string) (*model.Employee, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "employee ID is required")
	}
	return s.repo.GetByID(ctx, id)
}

// Search returns employees matching the designation OR the department.
func (s *EmployeeService) Search(ctx context.Context, designation, department string) ([]model.Employee, error) {
	employees, err := s.repo.Search(ctx, repository.EmployeeFilter{
		Designation: strings.TrimSpace(designation),
		Department:  strings.TrimSpace(department),
	})
	if err != nil {
		s.logger.Error("failed to search employees", slog.String("error", err.Error()))
		return nil, fmt.Errorf("searching employees: %w", err)
	}
	return employees, nil
}

// Create validates and persists a new employee record.
//
// Rules (first failure wins): every field except the photo is required,
// the email must look like an email, the salary has a floor, and the email
// must not already be taken.
func (s *EmployeeService) Create(ctx context.Context, employee *model.Employee) (*model.Employee, error) {
	employee.FirstName = strings.TrimSpace(employee.FirstName)
	employee.LastName = strings.TrimSpace(employee.LastName)
	employee.Email = strings.TrimSpace(employee.Email)

	switch {
	case employee.FirstName == "":
		return nil, apperror.ValidationFailed("first_name", "first_name is required")
	case employee.LastName == "":
		return nil, apperror.ValidationFailed("last_name", "last_name is required")
	case employee.Email == "":
		return nil, apperror.ValidationFailed("email", "email is required")
	case employee.Gender == "":
		return nil, apperror.ValidationFailed("gender", "gender is required")
	case employee.Designation == "":
		return nil, apperror.ValidationFailed("designation", "designation is required")
	case employee.Department == "":
		return nil, apperror.ValidationFailed("department", "department is required")
	case employee.DateOfJoining.IsZero():
		return nil, apperror.ValidationFailed("date_of_joining", "date_of_joining is required")
	}

	if !emailRX.MatchString(employee.Email) {
		return nil, apperror.ValidationFailed("email", "invalid email format")
	}
	if employee.Salary < MinSalary {
		return nil, apperror.ValidationFailed("salary",
			fmt.Sprintf("salary must be at least %d", MinSalary))
	}

	// Friendlier message than the raw duplicate-key error; the unique
	// index still backs this up under concurrency.
	_, err := s.repo.FindByEmail(ctx, employee.Email)
	switch {
	case err == nil:
		return nil, apperror.Conflict("employee with this email already exists")
	case errors.Is(err, apperror.ErrNotFound):
		// free to use
	default:
		return nil, fmt.Errorf("checking employee email: %w", err)
	}

	if err := s.repo.Create(ctx, employee); err != nil {
		s.logger.Error("failed to create employee",
			slog.String("email", employee.Email),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating employee: %w", err)
	}

	s.logger.Info("employee created",
		slog.String("id", employee.ID.Hex()),
		slog.String("email", employee.Email),
	)

	return employee, nil
}

// Update applies a partial update and returns the record as stored
// afterwards.
func (s *EmployeeService) Update(ctx context.Context, id string, update *model.EmployeeUpdate) (*model.Employee, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "employee ID is required")
	}

	if update.Email != nil && !emailRX.MatchString(*update.Email) {
		return nil, apperror.ValidationFailed("email", "invalid email format")
	}
	if update.Salary != nil && *update.Salary < MinSalary {
		return nil, apperror.ValidationFailed("salary",
			fmt.Sprintf("salary must be at least %d", MinSalary))
	}

	employee, err := s.repo.Update(ctx, id, update)
	if err != nil {
		return nil, err
	}

	s.logger.Info("employee updated", slog.String("id", id))
	return employee, nil
}

// Delete removes an employee record.
func (s *EmployeeService) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return apperror.ValidationFailed("id", "employee ID is required")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("employee deleted", slog.String("id", id))
	return nil
}
