package service

import (
	"encoding/json"
	"testing"

	language "github.com/davmik/gqlserve/internal/language"
)

// mustParseQuery parses a GraphQL query and fails the test on error.
func mustParseQuery(t *testing.T, q string) *language.QueryDocument {
	t.Helper()
	d, err := language.ParseQuery(q)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	return d
}

// mustJSON marshals v and fails the test on error. Comparing serialized
// output keeps field ordering visible in the assertion.
func mustJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal error: %v", err)
	}
	return string(b)
}

// childField returns the first field of the sole operation's selection set.
func childField(t *testing.T, doc *language.QueryDocument) *language.Field {
	t.Helper()
	field, ok := doc.Operations[0].SelectionSet[0].(*language.Field)
	if !ok {
		t.Fatalf("first selection is %T, want field", doc.Operations[0].SelectionSet[0])
	}
	return field
}

// scalarResolver adapts a fixed value through a result chain, the way
// generated field code would.
func scalarResolver(result ModifiedResult, value any) Resolver {
	return func(params ResolverParams) (any, error) {
		return result.Convert(value, params)
	}
}
