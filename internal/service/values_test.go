package service

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	language "github.com/davmik/gqlserve/internal/language"
)

// literalValue extracts the value of the first argument of the first field in
// a single-field query, which is the shortest route to an ast.Value node.
func literalValue(t *testing.T, query string, vars Variables) any {
	t.Helper()
	doc := mustParseQuery(t, query)
	field := doc.Operations[0].SelectionSet[0].(*language.Field)
	return ValueFromAST(field.Arguments[0].Value, vars)
}

func TestValueFromAST_Scalars(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  any
	}{
		{"int", `{ f(v: 42) }`, 42},
		{"float", `{ f(v: 3.5) }`, 3.5},
		{"string", `{ f(v: "hello") }`, "hello"},
		{"booleanTrue", `{ f(v: true) }`, true},
		{"booleanFalse", `{ f(v: false) }`, false},
		{"null", `{ f(v: null) }`, nil},
		{"enum", `{ f(v: NORTH) }`, "NORTH"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := literalValue(t, tt.query, nil)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("value mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestValueFromAST_List(t *testing.T) {
	got := literalValue(t, `{ f(v: [1, 2, 3]) }`, nil)
	want := []any{1, 2, 3}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("value mismatch (-want +got):\n%s", diff)
	}
}

func TestValueFromAST_ObjectPreservesFieldOrder(t *testing.T) {
	got := literalValue(t, `{ f(v: {z: 1, a: "two", m: [true]}) }`, nil)
	obj, ok := got.(*JSONObject)
	if !ok {
		t.Fatalf("got %T, want *JSONObject", got)
	}
	want := `{"z":1,"a":"two","m":[true]}`
	if diff := cmp.Diff(want, mustJSON(t, obj)); diff != "" {
		t.Fatalf("object mismatch (-want +got):\n%s", diff)
	}
}

func TestValueFromAST_Variables(t *testing.T) {
	vars := Variables{"x": "bound"}

	got := literalValue(t, `query ($x: String) { f(v: $x) }`, vars)
	if got != "bound" {
		t.Fatalf("variable lookup = %v, want bound", got)
	}

	// Absent variables resolve to nil, not an error.
	got = literalValue(t, `query ($y: String) { f(v: $y) }`, vars)
	if got != nil {
		t.Fatalf("absent variable = %v, want nil", got)
	}
}

func TestValueFromAST_VariableInsideList(t *testing.T) {
	got := literalValue(t, `query ($x: Int) { f(v: [$x, 2]) }`, Variables{"x": 1})
	want := []any{1, 2}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("value mismatch (-want +got):\n%s", diff)
	}
}
