package graph

import (
	"strconv"
	"time"

	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/language/ast"
)

// dateType is the custom Date scalar.
//
// Serialization: epoch milliseconds (what JavaScript's Date.getTime()
// produces — kept so existing clients keep working).
// Parsing: accepts epoch-millis numbers, "YYYY-MM-DD" dates, or RFC 3339
// timestamps. Anything else coerces to nil, which the schema rejects for
// non-null arguments.
var dateType = graphql.NewScalar(graphql.ScalarConfig{
	Name:        "Date",
	Description: "Date custom scalar type, serialized as epoch milliseconds",
	Serialize: func(value interface{}) interface{} {
		switch v := value.(type) {
		case time.Time:
			return v.UnixMilli()
		case *time.Time:
			if v == nil {
				return nil
			}
			return v.UnixMilli()
		}
		return nil
	},
	ParseValue: func(value interface{}) interface{} {
		return coerceDate(value)
	},
	ParseLiteral: func(valueAST ast.Value) interface{} {
		switch v := valueAST.(type) {
		case *ast.IntValue:
			return coerceDate(v.Value)
		case *ast.StringValue:
			return parseDateString(v.Value)
		}
		return nil
	},
})

// coerceDate turns a client-supplied value into a time.Time, or nil if it
// can't be understood.
func coerceDate(value interface{}) interface{} {
	switch v := value.(type) {
	case time.Time:
		return v
	case float64:
		// JSON numbers arrive as float64
		return time.UnixMilli(int64(v)).UTC()
	case int:
		return time.UnixMilli(int64(v)).UTC()
	case int64:
		return time.UnixMilli(v).UTC()
	case string:
		if millis, err := strconv.ParseInt(v, 10, 64); err == nil {
			return time.UnixMilli(millis).UTC()
		}
		return parseDateString(v)
	}
	return nil
}

func parseDateString(s string) interface{} {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return nil
}
