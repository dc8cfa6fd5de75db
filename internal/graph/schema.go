// Package graph defines the GraphQL schema and its resolvers.
//
// The schema is built in code with graphql-go: each type is a
// graphql.NewObject, each operation a field with a Resolve function. The
// resolvers are deliberately thin — parse arguments, call a service, wrap
// the error — so every business rule lives in the service layer where it
// can be tested without a transport.
package graph

import (
	"fmt"
	"time"

	"github.com/graphql-go/graphql"

	"github.com/sakif/employee-graphql/internal/apperror"
	"github.com/sakif/employee-graphql/internal/auth"
	"github.com/sakif/employee-graphql/internal/model"
	"github.com/sakif/employee-graphql/internal/service"
)

// authPayload is what signup and login resolve to.
type authPayload struct {
	Token   string      `json:"token"`
	User    *model.User `json:"user"`
	Message string      `json:"message"`
}

// NewSchema builds the executable schema over the injected services.
func NewSchema(auths *service.AuthService, employees *service.EmployeeService) (graphql.Schema, error) {
	userType := graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if u, ok := p.Source.(*model.User); ok {
						return u.ID.Hex(), nil
					}
					return nil, nil
				},
			},
			"username": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"email":    &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			// The stored bcrypt hash. Never the plaintext — the service
			// hashes before anything is persisted or returned.
			"password": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	employeeType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Employee",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					switch e := p.Source.(type) {
					case *model.Employee:
						return e.ID.Hex(), nil
					case model.Employee:
						return e.ID.Hex(), nil
					}
					return nil, nil
				},
			},
			"first_name":      &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"last_name":       &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"email":           &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"gender":          &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"designation":     &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"salary":          &graphql.Field{Type: graphql.NewNonNull(graphql.Float)},
			"date_of_joining": &graphql.Field{Type: graphql.NewNonNull(dateType)},
			"department":      &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"employee_photo":  &graphql.Field{Type: graphql.String},
		},
	})

	authPayloadType := graphql.NewObject(graphql.ObjectConfig{
		Name: "AuthPayload",
		Fields: graphql.Fields{
			"token":   &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"user":    &graphql.Field{Type: graphql.NewNonNull(userType)},
			"message": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"login": &graphql.Field{
				Type: authPayloadType,
				Args: graphql.FieldConfigArgument{
					"username": &graphql.ArgumentConfig{Type: graphql.String},
					"email":    &graphql.ArgumentConfig{Type: graphql.String},
					"password": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					// At least one of username/email must be supplied;
					// username wins if both are.
					identifier := strArg(p.Args, "username")
					if identifier == "" {
						identifier = strArg(p.Args, "email")
					}
					if identifier == "" {
						return nil, wrapErr(apperror.ValidationFailed("username", "username or email is required"))
					}

					result, err := auths.Authenticate(p.Context, identifier, strArg(p.Args, "password"))
					if err != nil {
						return nil, wrapErr(err)
					}
					return &authPayload{
						Token:   result.Token,
						User:    result.User,
						Message: "Login successful!",
					}, nil
				},
			},
			"me": &graphql.Field{
				Type: userType,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					userID, ok := auth.UserIDFromContext(p.Context)
					if !ok {
						return nil, wrapErr(apperror.AuthFailed("authentication required"))
					}
					user, err := auths.CurrentUser(p.Context, userID)
					if err != nil {
						return nil, wrapErr(err)
					}
					return user, nil
				},
			},
			"getAllEmployees": &graphql.Field{
				Type: graphql.NewList(employeeType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					list, err := employees.List(p.Context)
					if err != nil {
						return nil, wrapErr(err)
					}
					return list, nil
				},
			},
			"getEmployeeById": &graphql.Field{
				Type: employeeType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					employee, err := employees.GetByID(p.Context, strArg(p.Args, "id"))
					if err != nil {
						return nil, wrapErr(err)
					}
					return employee, nil
				},
			},
			"getEmployeesByDesignationOrDepartment": &graphql.Field{
				Type: graphql.NewList(employeeType),
				Args: graphql.FieldConfigArgument{
					"designation": &graphql.ArgumentConfig{Type: graphql.String},
					"department":  &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					list, err := employees.Search(p.Context,
						strArg(p.Args, "designation"),
						strArg(p.Args, "department"),
					)
					if err != nil {
						return nil, wrapErr(err)
					}
					return list, nil
				},
			},
		},
	})

	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"signup": &graphql.Field{
				Type: authPayloadType,
				Args: graphql.FieldConfigArgument{
					"username": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"email":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"password": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					result, err := auths.Register(p.Context,
						strArg(p.Args, "username"),
						strArg(p.Args, "email"),
						strArg(p.Args, "password"),
					)
					if err != nil {
						return nil, wrapErr(err)
					}
					return &authPayload{
						Token:   result.Token,
						User:    result.User,
						Message: "User registered successfully!",
					}, nil
				},
			},
			"addNewEmployee": &graphql.Field{
				Type: employeeType,
				Args: graphql.FieldConfigArgument{
					"first_name":      &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"last_name":       &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"email":           &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"gender":          &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"designation":     &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"salary":          &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"date_of_joining": &graphql.ArgumentConfig{Type: graphql.NewNonNull(dateType)},
					"department":      &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"employee_photo":  &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					employee := &model.Employee{
						FirstName:     strArg(p.Args, "first_name"),
						LastName:      strArg(p.Args, "last_name"),
						Email:         strArg(p.Args, "email"),
						Gender:        strArg(p.Args, "gender"),
						Designation:   strArg(p.Args, "designation"),
						Salary:        floatArg(p.Args, "salary"),
						DateOfJoining: timeArg(p.Args, "date_of_joining"),
						Department:    strArg(p.Args, "department"),
						EmployeePhoto: strArg(p.Args, "employee_photo"),
					}

					created, err := employees.Create(p.Context, employee)
					if err != nil {
						return nil, wrapErr(err)
					}
					return created, nil
				},
			},
			"updateEmployee": &graphql.Field{
				Type: employeeType,
				Args: graphql.FieldConfigArgument{
					"id":              &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
					"first_name":      &graphql.ArgumentConfig{Type: graphql.String},
					"last_name":       &graphql.ArgumentConfig{Type: graphql.String},
					"email":           &graphql.ArgumentConfig{Type: graphql.String},
					"gender":          &graphql.ArgumentConfig{Type: graphql.String},
					"designation":     &graphql.ArgumentConfig{Type: graphql.String},
					"salary":          &graphql.ArgumentConfig{Type: graphql.Float},
					"date_of_joining": &graphql.ArgumentConfig{Type: dateType},
					"department":      &graphql.ArgumentConfig{Type: graphql.String},
					"employee_photo":  &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					update := &model.EmployeeUpdate{
						FirstName:     optStrArg(p.Args, "first_name"),
						LastName:      optStrArg(p.Args, "last_name"),
						Email:         optStrArg(p.Args, "email"),
						Gender:        optStrArg(p.Args, "gender"),
						Designation:   optStrArg(p.Args, "designation"),
						Salary:        optFloatArg(p.Args, "salary"),
						DateOfJoining: optTimeArg(p.Args, "date_of_joining"),
						Department:    optStrArg(p.Args, "department"),
						EmployeePhoto: optStrArg(p.Args, "employee_photo"),
					}

					updated, err := employees.Update(p.Context, strArg(p.Args, "id"), update)
					if err != nil {
						return nil, wrapErr(err)
					}
					return updated, nil
				},
			},
			"deleteEmployee": &graphql.Field{
				Type: graphql.String,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					id := strArg(p.Args, "id")
					if err := employees.Delete(p.Context, id); err != nil {
						return nil, wrapErr(err)
					}
					return fmt.Sprintf("Employee %s deleted", id), nil
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
}

// Argument helpers. graphql-go hands arguments over as map[string]interface{};
// these keep the resolvers free of type-assertion noise.

func strArg(args map[string]interface{}, name string) string {
	s, _ := args[name].(string)
	return s
}

func floatArg(args map[string]interface{}, name string) float64 {
	f, _ := args[name].(float64)
	return f
}

func timeArg(args map[string]interface{}, name string) time.Time {
	t, _ := args[name].(time.Time)
	return t
}

func optStrArg(args map[string]interface{}, name string) *string {
	if s, ok := args[name].(string); ok {
		return &s
	}
	return nil
}

func optFloatArg(args map[string]interface{}, name string) *float64 {
	if f, ok := args[name].(float64); ok {
		return &f
	}
	return nil
}

func optTimeArg(args map[string]interface{}, name string) *time.Time {
	if t, ok := args[name].(time.Time); ok {
		return &t
	}
	return nil
}
