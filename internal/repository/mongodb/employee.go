package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sakif/employee-graphql/internal/apperror"
	"github.com/sakif/employee-graphql/internal/model"
	"github.com/sakif/employee-graphql/internal/repository"
)

// compile-time check that *DB implements repository.EmployeeRepository
var _ repository.EmployeeRepository = (*DB)(nil)

func (db *DB) Create(ctx context.Context, employee *model.Employee) error {
	res, err := db.employees.InsertOne(ctx, employee)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return apperror.Conflict("employee with this email already exists")
		}
		return apperror.Dependency("employee store unavailable", err)
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		employee.ID = oid
	}
	return nil
}

func (db *DB) GetByID(ctx context.Context, id string) (*model.Employee, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperror.NotFound("employee", id)
	}

	var employee model.Employee
	err = db.employees.FindOne(ctx, bson.M{"_id": oid}).Decode(&employee)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NotFound("employee", id)
		}
		return nil, apperror.Dependency("employee store unavailable", err)
	}

	return &employee, nil
}

func (db *DB) List(ctx context.Context) ([]model.Employee, error) {
	return db.find(ctx, bson.M{})
}

// Search returns employees matching the designation OR the department.
// An empty filter behaves like List.
func (db *DB) Search(ctx context.Context, filter repository.EmployeeFilter) ([]model.Employee, error) {
	var or []bson.M
	if filter.Designation != "" {
		or = append(or, bson.M{"designation": filter.Designation})
	}
	if filter.Department != "" {
		or = append(or, bson.M{"department": filter.Department})
	}
	if len(or) == 0 {
		return db.find(ctx, bson.M{})
	}
	return db.find(ctx, bson.M{"$or": or})
}

func (db *DB) FindByEmail(ctx context.Context, email string) (*model.Employee, error) {
	var employee model.Employee
	err := db.employees.FindOne(ctx, bson.M{"email": email}).Decode(&employee)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NotFound("employee", email)
		}
		return nil, apperror.Dependency("employee store unavailable", err)
	}
	return &employee, nil
}

// Update applies the non-nil fields of the update and returns the document
// as it looks afterwards (ReturnDocument: After — the caller always sees
// the post-update state, matching findByIdAndUpdate-with-new semantics).
func (db *DB) Update(ctx context.Context, id string, update *model.EmployeeUpdate) (*model.Employee, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperror.NotFound("employee", id)
	}

	set := bson.M{}
	if update.FirstName != nil {
		set["first_name"] = *update.FirstName
	}
	if update.LastName != nil {
		set["last_name"] = *update.LastName
	}
	if update.Email != nil {
		set["email"] = *update.Email
	}
	if update.Gender != nil {
		set["gender"] = *update.Gender
	}
	if update.Designation != nil {
		set["designation"] = *update.Designation
	}
	if update.Salary != nil {
		set["salary"] = *update.Salary
	}
	if update.DateOfJoining != nil {
		set["date_of_joining"] = *update.DateOfJoining
	}
	if update.Department != nil {
		set["department"] = *update.Department
	}
	if update.EmployeePhoto != nil {
		set["employee_photo"] = *update.EmployeePhoto
	}

	if len(set) == 0 {
		// Nothing to change — just return the current document.
		return db.GetByID(ctx, id)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var employee model.Employee
	err = db.employees.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&employee)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NotFound("employee", id)
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperror.Conflict("employee with this email already exists")
		}
		return nil, apperror.Dependency("employee store unavailable", err)
	}

	return &employee, nil
}

func (db *DB) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperror.NotFound("employee", id)
	}

	res, err := db.employees.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return apperror.Dependency("employee store unavailable", err)
	}
	if res.DeletedCount == 0 {
		return apperror.NotFound("employee", id)
	}
	return nil
}

// find runs a filter and decodes every matching document.
func (db *DB) find(ctx context.Context, filter bson.M) ([]model.Employee, error) {
	cursor, err := db.employees.Find(ctx, filter)
	if err != nil {
		return nil, apperror.Dependency("employee store unavailable", err)
	}
	// cursor.All drains and closes the cursor.
	employees := []model.Employee{}
	if err := cursor.All(ctx, &employees); err != nil {
		return nil, apperror.Dependency("employee store unavailable", err)
	}
	return employees, nil
}
