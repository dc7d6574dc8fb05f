// Package service implements the request-execution core of a GraphQL
// service: given a parsed document, an operation name, variable bindings and
// a registry of resolver callbacks, it produces the JSON response mandated by
// the GraphQL specification.
//
// # Overview
//
// The engine is a tree of request-time visitors composed over two long-lived
// registries:
//
//   - Request owns a TypeMap binding the query, mutation and subscription
//     roots to Object instances. Both registries are immutable after
//     construction, so requests may execute concurrently against them.
//   - Object pairs a set of type names (the concrete type plus implemented
//     interfaces, used for fragment type-condition matching) with a
//     ResolverMap from field names to resolver callbacks.
//
// A request flows through the components bottom-up:
//
//  1. Fragment collection: one pass over the document gathers named fragment
//     definitions into a per-request FragmentMap. Expansion is lazy; nothing
//     is resolved until a spread is reached during selection execution.
//  2. Operation dispatch: the operation is selected by name (or by
//     uniqueness when unnamed) and its selection set is handed to the
//     corresponding root Object.
//  3. Selection execution: for each selection in source order, @skip and
//     @include are evaluated, fragment spreads and inline fragments matching
//     the current object's type names are inlined, argument objects are built
//     by coercing AST values against the request variables, and the field's
//     resolver is invoked. Results accumulate in an insertion-ordered field
//     map, so response field order follows selection source order.
//  4. Result projection: resolvers compose their typed values back into JSON
//     through ModifiedResult, the inverse of the ModifiedArgument extraction
//     chain. Object leaves re-enter selection execution recursively.
//
// # Errors and partial success
//
// Errors are accumulated as messages on a per-request, single-owner list.
// A SchemaError returned by a resolver nulls that field and appends its
// messages; sibling fields continue to execute. Missing resolvers and
// unknown fragments are recorded the same way. Only operation dispatch
// failures produce a response with null data.
//
// # Concurrency
//
// Execution is single-threaded and cooperative per request: resolvers are
// synchronous callables, sibling fields run sequentially in source order, and
// the engine mutates only per-request state. Resolvers touching shared
// domain state are responsible for their own synchronization.
package service
