package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/graphql-go/graphql"

	"github.com/sakif/employee-graphql/internal/apperror"
)

// GraphQLHandler serves the single /graphql endpoint.
//
// Every operation — signup, login, employee CRUD — travels through here as
// a POSTed query document. Errors from resolvers come back inside the
// GraphQL response envelope (with extensions.code), so this handler always
// answers 200 for a well-formed request; only a malformed request body
// earns an HTTP-level error.
type GraphQLHandler struct {
	schema graphql.Schema
	logger *slog.Logger
}

func NewGraphQLHandler(schema graphql.Schema, logger *slog.Logger) *GraphQLHandler {
	return &GraphQLHandler{
		schema: schema,
		logger: logger,
	}
}

// graphqlRequest is the standard GraphQL-over-HTTP POST body.
type graphqlRequest struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// HandleQuery executes one GraphQL request.
//
// HTTP: POST /graphql
func (h *GraphQLHandler) HandleQuery(w http.ResponseWriter, r *http.Request) {
	var req graphqlRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("invalid graphql request body", slog.String("error", err.Error()))
		writeError(w, apperror.ValidationFailed("body", "request body must be a JSON GraphQL request"))
		return
	}

	result := graphql.Do(graphql.Params{
		Schema:         h.schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		OperationName:  req.OperationName,
		Context:        r.Context(),
	})

	if len(result.Errors) > 0 {
		h.logger.Warn("graphql request returned errors",
			slog.String("operation", req.OperationName),
			slog.Int("errors", len(result.Errors)),
			slog.String("first", result.Errors[0].Message),
		)
	}

	writeJSON(w, http.StatusOK, result)
}
