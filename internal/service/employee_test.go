package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sakif/employee-graphql/internal/apperror"
	"github.com/sakif/employee-graphql/internal/model"
	"github.com/sakif/employee-graphql/internal/repository"
)

// fakeEmployeeRepo is an in-memory repository.EmployeeRepository, the
// employee counterpart of fakeUserRepo.
type fakeEmployeeRepo struct {
	employees []model.Employee
}

func (f *fakeEmployeeRepo) Create(ctx context.Context, employee *model.Employee) error {
	for _, e := range f.employees {
		if e.Email == employee.Email {
			return apperror.Conflict("employee with this email already exists")
		}
	}
	employee.ID = primitive.NewObjectID()
	f.employees = append(f.employees, *employee)
	return nil
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (*model.Employee, error) {
	for _, e := range f.employees {
		if e.ID.Hex() == id {
			copied := e
			return &copied, nil
		}
	}
	return nil, apperror.NotFound("employee", id)
}

func (f *fakeEmployeeRepo) List(ctx context.Context) ([]model.Employee, error) {
	return append([]model.Employee(nil), f.employees...), nil
}

func (f *fakeEmployeeRepo) Search(ctx context.Context, filter repository.EmployeeFilter) ([]model.Employee, error) {
	if filter.Designation == "" && filter.Department == "" {
		return f.List(ctx)
	}
	var out []model.Employee
	for _, e := range f.employees {
		if (filter.Designation != "" && e.Designation == filter.Designation) ||
			(filter.Department != "" && e.Department == filter.Department) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEmployeeRepo) FindByEmail(ctx context.Context, email string) (*model.Employee, error) {
	for _, e := range f.employees {
		if e.Email == email {
			copied := e
			return &copied, nil
		}
	}
	return nil, apperror.NotFound("employee", email)
}

func (f *fakeEmployeeRepo) Update(ctx context.Context, id string, update *model.EmployeeUpdate) (*model.Employee, error) {
	for i := range f.employees {
		if f.employees[i].ID.Hex() != id {
			continue
		}
		e := &f.employees[i]
		if update.FirstName != nil {
			e.FirstName = *update.FirstName
		}
		if update.LastName != nil {
			e.LastName = *update.LastName
		}
		if update.Email != nil {
			e.Email = *update.Email
		}
		if update.Gender != nil {
			e.Gender = *update.Gender
		}
		if update.Designation != nil {
			e.Designation = *update.Designation
		}
		if update.Salary != nil {
			e.Salary = *update.Salary
		}
		if update.DateOfJoining != nil {
			e.DateOfJoining = *update.DateOfJoining
		}
		if update.Department != nil {
			e.Department = *update.Department
		}
		if update.EmployeePhoto != nil {
			e.EmployeePhoto = *update.EmployeePhoto
		}
		copied := *e
		return &copied, nil
	}
	return nil, apperror.NotFound("employee", id)
}

func (f *fakeEmployeeRepo) Delete(ctx context.Context, id string) error {
	for i, e := range f.employees {
		if e.ID.Hex() == id {
			f.employees = append(f.employees[:i], f.employees[i+1:]...)
			return nil
		}
	}
	return apperror.NotFound("employee", id)
}

func newTestEmployeeService(repo *fakeEmployeeRepo) *EmployeeService {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	return NewEmployeeService(repo, logger)
}

func validEmployee() *model.Employee {
	return &model.Employee{
		FirstName:     "Jane",
		LastName:      "Doe",
		Email:         "jane.doe@example.com",
		Gender:        "female",
		Designation:   "Engineer",
		Salary:        5000,
		DateOfJoining: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Department:    "Engineering",
	}
}

func TestEmployeeCreate_Success(t *testing.T) {
	svc := newTestEmployeeService(&fakeEmployeeRepo{})

	created, err := svc.Create(context.Background(), validEmployee())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.ID.IsZero() {
		t.Error("Employee.ID should be set after create")
	}
}

func TestEmployeeCreate_RequiredFields(t *testing.T) {
	// Each case blanks one required field; the reported field must name it.
	tests := []struct {
		field string
		mutate func(*model.Employee)
	}{
		{"first_name", func(e *model.Employee) { e.FirstName = "" }},
		{"last_name", func(e *model.Employee) { e.LastName = "" }},
		{"email", func(e *model.Employee) { e.Email = "" }},
		{"gender", func(e *model.Employee) { e.Gender = "" }},
		{"designation", func(e *model.Employee) { e.Designation = "" }},
		{"department", func(e *model.Employee) { e.Department = "" }},
		{"date_of_joining", func(e *model.Employee) { e.DateOfJoining = time.Time{} }},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			svc := newTestEmployeeService(&fakeEmployeeRepo{})
			employee := validEmployee()
			tt.mutate(employee)

			_, err := svc.Create(context.Background(), employee)

			var appErr *apperror.AppError
			if !errors.As(err, &appErr) {
				t.Fatalf("Create() error = %v, want *AppError", err)
			}
			if !errors.Is(err, apperror.ErrValidation) {
				t.Fatalf("Create() error kind = %v, want ErrValidation", err)
			}
			if appErr.Field != tt.field {
				t.Errorf("AppError.Field = %q, want %q", appErr.Field, tt.field)
			}
		})
	}
}

func TestEmployeeCreate_InvalidEmail(t *testing.T) {
	svc := newTestEmployeeService(&fakeEmployeeRepo{})
	employee := validEmployee()
	employee.Email = "not-an-email"

	_, err := svc.Create(context.Background(), employee)
	if !errors.Is(err, apperror.ErrValidation) {
		t.Fatalf("Create() error = %v, want ErrValidation", err)
	}
}

func TestEmployeeCreate_SalaryFloor(t *testing.T) {
	svc := newTestEmployeeService(&fakeEmployeeRepo{})

	employee := validEmployee()
	employee.Salary = MinSalary - 1
	if _, err := svc.Create(context.Background(), employee); !errors.Is(err, apperror.ErrValidation) {
		t.Fatalf("Create() with salary %v error = %v, want ErrValidation", employee.Salary, err)
	}

	// Exactly the floor is allowed.
	employee = validEmployee()
	employee.Salary = MinSalary
	if _, err := svc.Create(context.Background(), employee); err != nil {
		t.Fatalf("Create() with salary %v error = %v, want nil", employee.Salary, err)
	}
}

func TestEmployeeCreate_DuplicateEmail(t *testing.T) {
	svc := newTestEmployeeService(&fakeEmployeeRepo{})

	if _, err := svc.Create(context.Background(), validEmployee()); err != nil {
		t.Fatalf("first Create() error = %v", err)
	}

	duplicate := validEmployee()
	duplicate.FirstName = "John"
	_, err := svc.Create(context.Background(), duplicate)
	if !errors.Is(err, apperror.ErrConflict) {
		t.Fatalf("Create() with duplicate email error = %v, want ErrConflict", err)
	}
}

func TestEmployeeGetByID(t *testing.T) {
	repo := &fakeEmployeeRepo{}
	svc := newTestEmployeeService(repo)

	created, err := svc.Create(context.Background(), validEmployee())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := svc.GetByID(context.Background(), created.ID.Hex())
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Email != created.Email {
		t.Errorf("GetByID() email = %q, want %q", got.Email, created.Email)
	}
}

func TestEmployeeGetByID_EmptyID(t *testing.T) {
	svc := newTestEmployeeService(&fakeEmployeeRepo{})

	_, err := svc.GetByID(context.Background(), "  ")
	if !errors.Is(err, apperror.ErrValidation) {
		t.Fatalf("GetByID() error = %v, want ErrValidation", err)
	}
}

func TestEmployeeGetByID_NotFound(t *testing.T) {
	svc := newTestEmployeeService(&fakeEmployeeRepo{})

	_, err := svc.GetByID(context.Background(), primitive.NewObjectID().Hex())
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("GetByID() error = %v, want ErrNotFound", err)
	}
}

func TestEmployeeSearch_DesignationOrDepartment(t *testing.T) {
	repo := &fakeEmployeeRepo{}
	svc := newTestEmployeeService(repo)

	engineer := validEmployee()
	manager := validEmployee()
	manager.Email = "john.roe@example.com"
	manager.Designation = "Manager"
	manager.Department = "Sales"

	for _, e := range []*model.Employee{engineer, manager} {
		if _, err := svc.Create(context.Background(), e); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	// Designation matches one record, department matches the other — an OR
	// search on both must return both.
	results, err := svc.Search(context.Background(), "Engineer", "Sales")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Search() returned %d employees, want 2", len(results))
	}

	results, err = svc.Search(context.Background(), "Manager", "")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 1 || results[0].Designation != "Manager" {
		t.Errorf("Search() by designation = %v, want only the manager", results)
	}
}

func TestEmployeeUpdate_PartialFields(t *testing.T) {
	repo := &fakeEmployeeRepo{}
	svc := newTestEmployeeService(repo)

	created, err := svc.Create(context.Background(), validEmployee())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	newSalary := 9000.0
	updated, err := svc.Update(context.Background(), created.ID.Hex(), &model.EmployeeUpdate{
		Salary: &newSalary,
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Salary != newSalary {
		t.Errorf("updated salary = %v, want %v", updated.Salary, newSalary)
	}
	// Untouched fields survive a partial update.
	if updated.FirstName != created.FirstName {
		t.Errorf("first name changed by salary-only update: %q", updated.FirstName)
	}
}

func TestEmployeeUpdate_ValidatesOptionalFields(t *testing.T) {
	repo := &fakeEmployeeRepo{}
	svc := newTestEmployeeService(repo)

	created, err := svc.Create(context.Background(), validEmployee())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	badEmail := "nope"
	if _, err := svc.Update(context.Background(), created.ID.Hex(), &model.EmployeeUpdate{Email: &badEmail}); !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("Update() with bad email error = %v, want ErrValidation", err)
	}

	lowSalary := 999.0
	if _, err := svc.Update(context.Background(), created.ID.Hex(), &model.EmployeeUpdate{Salary: &lowSalary}); !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("Update() with low salary error = %v, want ErrValidation", err)
	}
}

func TestEmployeeUpdate_NotFound(t *testing.T) {
	svc := newTestEmployeeService(&fakeEmployeeRepo{})

	name := "Jane"
	_, err := svc.Update(context.Background(), primitive.NewObjectID().Hex(), &model.EmployeeUpdate{FirstName: &name})
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("Update() error = %v, want ErrNotFound", err)
	}
}

func TestEmployeeDelete(t *testing.T) {
	repo := &fakeEmployeeRepo{}
	svc := newTestEmployeeService(repo)

	created, err := svc.Create(context.Background(), validEmployee())
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := svc.Delete(context.Background(), created.ID.Hex()); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if _, err := svc.GetByID(context.Background(), created.ID.Hex()); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetByID() after delete error = %v, want ErrNotFound", err)
	}

	// Deleting again reports not found, not success.
	if err := svc.Delete(context.Background(), created.ID.Hex()); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("second Delete() error = %v, want ErrNotFound", err)
	}
}
