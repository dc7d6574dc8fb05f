package service

import (
	"encoding/base64"
	"fmt"
	"reflect"
)

// TypeModifier describes one layer of a GraphQL type wrapper chain such as
// [Int!]!. Non-null is the default, so the chain records only the inverse:
// Nullable wraps the next layer in an optional and List wraps it in an
// ordered sequence. None terminates the chain.
type TypeModifier int

const (
	ModifierNone TypeModifier = iota
	ModifierNullable
	ModifierList
)

// scalarKind selects the leaf conversion applied after all modifiers have
// been peeled off.
type scalarKind int

const (
	scalarInt scalarKind = iota
	scalarFloat
	scalarString
	scalarBoolean
	scalarID
	scalarRaw
	scalarObject
)

// trimModifiers drops a trailing None terminator so both IntArgument() and
// IntArgument(ModifierNone) describe the same bare type.
func trimModifiers(modifiers []TypeModifier) []TypeModifier {
	for len(modifiers) > 0 && modifiers[len(modifiers)-1] == ModifierNone {
		modifiers = modifiers[:len(modifiers)-1]
	}
	return modifiers
}

// ModifiedArgument extracts a single argument through a chain of type
// modifiers. Use Require for non-optional arguments and let it report a
// SchemaError when the argument is missing or has the wrong type; use Find
// for optional arguments and check the second return value.
type ModifiedArgument struct {
	kind      scalarKind
	modifiers []TypeModifier
}

func IntArgument(modifiers ...TypeModifier) ModifiedArgument {
	return ModifiedArgument{kind: scalarInt, modifiers: trimModifiers(modifiers)}
}

func FloatArgument(modifiers ...TypeModifier) ModifiedArgument {
	return ModifiedArgument{kind: scalarFloat, modifiers: trimModifiers(modifiers)}
}

func StringArgument(modifiers ...TypeModifier) ModifiedArgument {
	return ModifiedArgument{kind: scalarString, modifiers: trimModifiers(modifiers)}
}

func BooleanArgument(modifiers ...TypeModifier) ModifiedArgument {
	return ModifiedArgument{kind: scalarBoolean, modifiers: trimModifiers(modifiers)}
}

// IDArgument decodes ID values from Base64 string literals into byte slices.
func IDArgument(modifiers ...TypeModifier) ModifiedArgument {
	return ModifiedArgument{kind: scalarID, modifiers: trimModifiers(modifiers)}
}

// ScalarArgument passes the JSON value through unchanged.
func ScalarArgument(modifiers ...TypeModifier) ModifiedArgument {
	return ModifiedArgument{kind: scalarRaw, modifiers: trimModifiers(modifiers)}
}

// Require extracts the named argument, or reports a SchemaError when it is
// missing or does not match the declared type. The first error encountered
// wins; there is no partial extraction.
func (a ModifiedArgument) Require(name string, arguments *JSONObject) (any, error) {
	return a.require(name, arguments, a.modifiers)
}

// Find extracts the named argument, mapping any extraction error to
// (nil, false). It never fails.
func (a ModifiedArgument) Find(name string, arguments *JSONObject) (any, bool) {
	value, err := a.Require(name, arguments)
	if err != nil {
		return nil, false
	}
	return value, true
}

func (a ModifiedArgument) require(name string, arguments *JSONObject, modifiers []TypeModifier) (any, error) {
	if len(modifiers) == 0 {
		value, ok := arguments.Get(name)
		if !ok {
			return nil, invalidArgument(name, "missing")
		}
		converted, err := convertArgumentScalar(a.kind, value)
		if err != nil {
			return nil, invalidArgument(name, err.Error())
		}
		return converted, nil
	}

	switch modifiers[0] {
	case ModifierNullable:
		value, ok := arguments.Get(name)
		if !ok || value == nil {
			return nil, nil
		}
		return a.require(name, arguments, modifiers[1:])

	case ModifierList:
		value, ok := arguments.Get(name)
		if !ok {
			return nil, invalidArgument(name, "missing")
		}
		list, ok := value.([]any)
		if !ok {
			return nil, invalidArgument(name, "not a list")
		}
		result := make([]any, len(list))
		for i, element := range list {
			// Wrap each element under a synthetic key so the next layer
			// uses the same extraction protocol.
			single := NewJSONObject()
			single.Set("value", element)
			converted, err := a.require("value", single, modifiers[1:])
			if err != nil {
				return nil, err
			}
			result[i] = converted
		}
		return result, nil
	}

	return nil, invalidArgument(name, "unsupported type modifier")
}

func invalidArgument(name, detail string) *SchemaError {
	return NewSchemaError(fmt.Sprintf("Invalid argument: %s message: %s", name, detail))
}

func convertArgumentScalar(kind scalarKind, value any) (any, error) {
	switch kind {
	case scalarInt:
		switch v := value.(type) {
		case int:
			return v, nil
		case int32:
			return int(v), nil
		case int64:
			return int(v), nil
		case float64:
			return int(v), nil
		}
		return nil, fmt.Errorf("not an integer")
	case scalarFloat:
		switch v := value.(type) {
		case float64:
			return v, nil
		case float32:
			return float64(v), nil
		case int:
			return float64(v), nil
		}
		return nil, fmt.Errorf("not a float")
	case scalarString:
		if v, ok := value.(string); ok {
			return v, nil
		}
		return nil, fmt.Errorf("not a string")
	case scalarBoolean:
		if v, ok := value.(bool); ok {
			return v, nil
		}
		return nil, fmt.Errorf("not a boolean")
	case scalarID:
		v, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("not a string")
		}
		id, err := base64.StdEncoding.DecodeString(v)
		if err != nil {
			return nil, fmt.Errorf("not a Base64 string")
		}
		return id, nil
	case scalarRaw:
		return value, nil
	}
	return nil, fmt.Errorf("unsupported scalar kind")
}

// ModifiedResult converts the typed result of a field resolver back through
// the same modifier chain into a JSON value. It is the inverse of
// ModifiedArgument, with an additional Object leaf case that re-enters
// selection execution for complex field types.
type ModifiedResult struct {
	kind      scalarKind
	modifiers []TypeModifier
}

func IntResult(modifiers ...TypeModifier) ModifiedResult {
	return ModifiedResult{kind: scalarInt, modifiers: trimModifiers(modifiers)}
}

func FloatResult(modifiers ...TypeModifier) ModifiedResult {
	return ModifiedResult{kind: scalarFloat, modifiers: trimModifiers(modifiers)}
}

func StringResult(modifiers ...TypeModifier) ModifiedResult {
	return ModifiedResult{kind: scalarString, modifiers: trimModifiers(modifiers)}
}

func BooleanResult(modifiers ...TypeModifier) ModifiedResult {
	return ModifiedResult{kind: scalarBoolean, modifiers: trimModifiers(modifiers)}
}

// IDResult encodes ID byte slices as Base64 strings on the wire.
func IDResult(modifiers ...TypeModifier) ModifiedResult {
	return ModifiedResult{kind: scalarID, modifiers: trimModifiers(modifiers)}
}

func ScalarResult(modifiers ...TypeModifier) ModifiedResult {
	return ModifiedResult{kind: scalarRaw, modifiers: trimModifiers(modifiers)}
}

// ObjectResult resolves the field's sub-selection against a child Object.
func ObjectResult(modifiers ...TypeModifier) ModifiedResult {
	return ModifiedResult{kind: scalarObject, modifiers: trimModifiers(modifiers)}
}

// Convert projects result through the modifier chain, honoring null for
// absent nullable layers.
func (r ModifiedResult) Convert(result any, params ResolverParams) (any, error) {
	return r.convert(result, params, r.modifiers)
}

func (r ModifiedResult) convert(result any, params ResolverParams, modifiers []TypeModifier) (any, error) {
	if len(modifiers) == 0 {
		if isNullish(result) {
			return nil, NewSchemaError("Invalid result: non-nullable value is missing")
		}
		return r.convertLeaf(result, params)
	}

	switch modifiers[0] {
	case ModifierNullable:
		if isNullish(result) {
			return nil, nil
		}
		return r.convert(result, params, modifiers[1:])

	case ModifierList:
		if isNullish(result) {
			return nil, NewSchemaError("Invalid result: non-nullable list is missing")
		}
		list, ok := result.([]any)
		if !ok {
			return nil, NewSchemaError("Invalid result: not a list")
		}
		converted := make([]any, len(list))
		for i, element := range list {
			value, err := r.convert(element, params, modifiers[1:])
			if err != nil {
				return nil, err
			}
			converted[i] = value
		}
		return converted, nil
	}

	return nil, NewSchemaError("Invalid result: unsupported type modifier")
}

func (r ModifiedResult) convertLeaf(result any, params ResolverParams) (any, error) {
	switch r.kind {
	case scalarInt:
		switch v := result.(type) {
		case int:
			return v, nil
		case int32:
			return int(v), nil
		case int64:
			return int(v), nil
		}
		return nil, NewSchemaError("Invalid result: not an integer")
	case scalarFloat:
		switch v := result.(type) {
		case float64:
			return v, nil
		case float32:
			return float64(v), nil
		}
		return nil, NewSchemaError("Invalid result: not a float")
	case scalarString:
		if v, ok := result.(string); ok {
			return v, nil
		}
		return nil, NewSchemaError("Invalid result: not a string")
	case scalarBoolean:
		if v, ok := result.(bool); ok {
			return v, nil
		}
		return nil, NewSchemaError("Invalid result: not a boolean")
	case scalarID:
		if v, ok := result.([]byte); ok {
			return base64.StdEncoding.EncodeToString(v), nil
		}
		return nil, NewSchemaError("Invalid result: not an ID")
	case scalarRaw:
		return result, nil
	case scalarObject:
		object, ok := result.(*Object)
		if !ok {
			return nil, NewSchemaError("Invalid result: not an object")
		}
		if params.Selection == nil {
			// A complex field without a sub-selection is a programmer
			// error; produce an empty object rather than failing.
			return NewJSONObject(), nil
		}
		return object.resolve(params.Context, params.Selection, params.Fragments, params.Variables, params.errs), nil
	}
	return nil, NewSchemaError("Invalid result: unsupported scalar kind")
}

// isNullish reports nil interfaces and typed nils (pointer, slice, map).
func isNullish(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Interface, reflect.Ptr, reflect.Slice, reflect.Map, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}
