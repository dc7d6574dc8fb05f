package service

import (
	"context"

	language "github.com/davmik/gqlserve/internal/language"
)

// Resolver produces the value of a single field. The engine never inspects a
// resolver's internals; it only composes the returned value into the response.
// Returning a *SchemaError surfaces its messages on the request error list.
type Resolver func(params ResolverParams) (any, error)

// ResolverMap registers resolvers by field name.
type ResolverMap map[string]Resolver

// TypeNames is the set of type names a fragment type condition can match for
// an object: its concrete type name plus every interface it implements.
type TypeNames map[string]struct{}

func NewTypeNames(names ...string) TypeNames {
	set := make(TypeNames, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}

// ResolverParams is the immutable bundle passed to each resolver invocation.
// All members remain valid for the duration of the call.
type ResolverParams struct {
	// Context is the request context, for resolvers that reach backends.
	// The engine itself has no suspension points.
	Context context.Context
	// Arguments holds the field's coerced argument values.
	Arguments *JSONObject
	// Selection is the field's sub-selection; nil for leaf fields.
	Selection language.SelectionSet
	// Fragments are the request's named fragment definitions.
	Fragments FragmentMap
	// Variables are the request's variable bindings.
	Variables Variables

	errs *errorSink
}

// Object is a named, resolver-bearing node in the runtime type graph. It
// parses argument values, performs variable lookups, expands fragments,
// evaluates @include and @skip directives, and calls through to the resolver
// for each selected field. State is immutable after construction, so a single
// Object may serve concurrent requests.
type Object struct {
	typeNames TypeNames
	resolvers ResolverMap
}

func NewObject(typeNames TypeNames, resolvers ResolverMap) *Object {
	return &Object{typeNames: typeNames, resolvers: resolvers}
}

// Resolve executes selection against this object and returns the accumulated
// field map along with any error messages recorded while resolving it.
func (o *Object) Resolve(ctx context.Context, selection language.SelectionSet, fragments FragmentMap, variables Variables) (*JSONObject, []string) {
	errs := &errorSink{}
	values := o.resolve(ctx, selection, fragments, variables, errs)
	return values, errs.messages
}

// resolve runs a selection executor seeded with this object's type names and
// resolvers, accumulating errors into the request-level sink.
func (o *Object) resolve(ctx context.Context, selection language.SelectionSet, fragments FragmentMap, variables Variables, errs *errorSink) *JSONObject {
	visitor := &selectionVisitor{
		ctx:       ctx,
		fragments: fragments,
		variables: variables,
		typeNames: o.typeNames,
		resolvers: o.resolvers,
		errs:      errs,
		values:    NewJSONObject(),
	}
	visitor.visitSelectionSet(selection)
	return visitor.values
}
