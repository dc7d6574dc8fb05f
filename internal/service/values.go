package service

import (
	"strconv"

	language "github.com/davmik/gqlserve/internal/language"
)

// Variables maps variable names (without the leading $) to JSON values.
type Variables map[string]any

// ValueFromAST converts an AST value node into a JSON value, resolving
// variable references against vars. Missing variables yield nil; resolvers
// downstream decide whether that is fatal. The traversal is depth-first and
// total over well-formed AST.
func ValueFromAST(value *language.Value, vars Variables) any {
	if value == nil {
		return nil
	}
	switch value.Kind {
	case language.Variable:
		if v, ok := vars[value.Raw]; ok {
			return v
		}
		return nil
	case language.IntValue:
		iv, _ := strconv.Atoi(value.Raw)
		return iv
	case language.FloatValue:
		fv, _ := strconv.ParseFloat(value.Raw, 64)
		return fv
	case language.StringValue, language.BlockValue:
		return value.Raw
	case language.BooleanValue:
		return value.Raw == "true"
	case language.NullValue:
		return nil
	case language.EnumValue:
		// Enum names serialize by their identifier.
		return value.Raw
	case language.ListValue:
		out := make([]any, len(value.Children))
		for i, c := range value.Children {
			out[i] = ValueFromAST(c.Value, vars)
		}
		return out
	case language.ObjectValue:
		obj := NewJSONObject()
		for _, f := range value.Children {
			obj.Set(f.Name, ValueFromAST(f.Value, vars))
		}
		return obj
	default:
		return nil
	}
}
