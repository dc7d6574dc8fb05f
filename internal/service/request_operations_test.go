package service

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	language "github.com/davmik/gqlserve/internal/language"
)

func newOperationsRequest() *Request {
	query := NewObject(NewTypeNames("Query"), ResolverMap{
		"ping": scalarResolver(StringResult(), "pong"),
	})
	mutation := NewObject(NewTypeNames("Mutation"), ResolverMap{
		"bump": scalarResolver(IntResult(), 1),
	})
	subscription := NewObject(NewTypeNames("Subscription"), ResolverMap{
		"next": scalarResolver(StringResult(), "event"),
	})
	return NewRequest(TypeMap{
		language.Query:        query,
		language.Mutation:     mutation,
		language.Subscription: subscription,
	})
}

func TestOperations_SelectByName(t *testing.T) {
	request := newOperationsRequest()
	doc := mustParseQuery(t, `
		query Ping { ping }
		mutation Bump { bump }
	`)

	res := request.Resolve(context.Background(), doc, "Bump", nil)

	want := `{"data":{"bump":1}}`
	if diff := cmp.Diff(want, mustJSON(t, res)); diff != "" {
		t.Fatalf("response mismatch (-want +got):\n%s", diff)
	}
}

func TestOperations_EmptyNameSoleOperation(t *testing.T) {
	request := newOperationsRequest()

	res := request.Resolve(context.Background(), mustParseQuery(t, `mutation { bump }`), "", nil)

	want := `{"data":{"bump":1}}`
	if diff := cmp.Diff(want, mustJSON(t, res)); diff != "" {
		t.Fatalf("response mismatch (-want +got):\n%s", diff)
	}
}

// An empty operation name with several operations in the document is an
// error, not a silent pick.
func TestOperations_EmptyNameMultipleOperationsIsError(t *testing.T) {
	request := newOperationsRequest()
	doc := mustParseQuery(t, `
		query A { ping }
		query B { ping }
	`)

	res := request.Resolve(context.Background(), doc, "", nil)

	want := `{"data":null,"errors":[{"message":"Missing operation: "}]}`
	if diff := cmp.Diff(want, mustJSON(t, res)); diff != "" {
		t.Fatalf("response mismatch (-want +got):\n%s", diff)
	}
}

func TestOperations_UnknownNameIsError(t *testing.T) {
	request := newOperationsRequest()

	res := request.Resolve(context.Background(), mustParseQuery(t, `query Ping { ping }`), "Pong", nil)

	want := `{"data":null,"errors":[{"message":"Missing operation: Pong"}]}`
	if diff := cmp.Diff(want, mustJSON(t, res)); diff != "" {
		t.Fatalf("response mismatch (-want +got):\n%s", diff)
	}
}

func TestOperations_UnregisteredRootIsError(t *testing.T) {
	request := NewRequest(TypeMap{
		language.Query: NewObject(NewTypeNames("Query"), ResolverMap{}),
	})

	res := request.Resolve(context.Background(), mustParseQuery(t, `mutation Change { bump }`), "Change", nil)

	want := `{"data":null,"errors":[{"message":"Missing operation: Change"}]}`
	if diff := cmp.Diff(want, mustJSON(t, res)); diff != "" {
		t.Fatalf("response mismatch (-want +got):\n%s", diff)
	}
}

func TestOperations_SubscriptionResolvesOnce(t *testing.T) {
	request := newOperationsRequest()

	res := request.Resolve(context.Background(), mustParseQuery(t, `subscription { next }`), "", nil)

	want := `{"data":{"next":"event"}}`
	if diff := cmp.Diff(want, mustJSON(t, res)); diff != "" {
		t.Fatalf("response mismatch (-want +got):\n%s", diff)
	}
}

func TestOperations_ArgumentsReachResolver(t *testing.T) {
	query := NewObject(NewTypeNames("Query"), ResolverMap{
		"echo": func(params ResolverParams) (any, error) {
			text, err := StringArgument().Require("text", params.Arguments)
			if err != nil {
				return nil, err
			}
			repeat, ok := IntArgument(ModifierNullable).Find("repeat", params.Arguments)
			if !ok || repeat == nil {
				return StringResult().Convert(text, params)
			}
			out := ""
			for range repeat.(int) {
				out += text.(string)
			}
			return StringResult().Convert(out, params)
		},
	})
	request := NewRequest(TypeMap{language.Query: query})

	res := request.Resolve(context.Background(), mustParseQuery(t, `{ echo(text: "ab", repeat: 2) }`), "", nil)
	want := `{"data":{"echo":"abab"}}`
	if diff := cmp.Diff(want, mustJSON(t, res)); diff != "" {
		t.Fatalf("response mismatch (-want +got):\n%s", diff)
	}

	// Substituting a variable for the literal yields the same value.
	res = request.Resolve(context.Background(),
		mustParseQuery(t, `query ($t: String!, $n: Int) { echo(text: $t, repeat: $n) }`),
		"",
		Variables{"t": "ab", "n": 2},
	)
	if diff := cmp.Diff(want, mustJSON(t, res)); diff != "" {
		t.Fatalf("variable response mismatch (-want +got):\n%s", diff)
	}
}
