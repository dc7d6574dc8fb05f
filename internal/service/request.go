package service

import (
	"context"

	language "github.com/davmik/gqlserve/internal/language"
)

// TypeMap registers the operation root objects under the reserved keys
// query, mutation and subscription. It is populated once at service
// construction.
type TypeMap map[language.Operation]*Object

// ResponseError is a single error entry in the response's errors array.
type ResponseError struct {
	Message string `json:"message"`
}

// Response is the JSON response mandated by the GraphQL specification.
// Errors is omitted when empty; consumers must check it even when Data is
// present, since partial success is normal.
type Response struct {
	Data   *JSONObject     `json:"data"`
	Errors []ResponseError `json:"errors,omitempty"`
}

// Request owns the operation roots for a schema and dispatches parsed
// documents against them. It is stateless across invocations, so a single
// Request may serve concurrent callers.
type Request struct {
	operations TypeMap
}

func NewRequest(operations TypeMap) *Request {
	return &Request{operations: operations}
}

// Resolve executes one request: it collects the document's fragments, picks
// the operation by name (or the sole operation when the name is empty), and
// hands its selection set to the matching root object. The subscription root
// is resolved once, exactly like queries and mutations.
func (r *Request) Resolve(ctx context.Context, document *language.QueryDocument, operationName string, variables Variables) *Response {
	if variables == nil {
		variables = Variables{}
	}
	fragments := collectFragments(document)

	operation := findOperation(document, operationName)
	if operation == nil {
		return &Response{
			Data:   nil,
			Errors: []ResponseError{{Message: "Missing operation: " + operationName}},
		}
	}

	root, ok := r.operations[operation.Operation]
	if !ok {
		return &Response{
			Data:   nil,
			Errors: []ResponseError{{Message: "Missing operation: " + operationName}},
		}
	}

	errs := &errorSink{}
	data := root.resolve(ctx, operation.SelectionSet, fragments, variables, errs)

	response := &Response{Data: data}
	for _, message := range errs.messages {
		response.Errors = append(response.Errors, ResponseError{Message: message})
	}
	return response
}

// findOperation selects the operation to execute. An empty name matches only
// a single-operation document; a document with several operations requires an
// explicit name.
func findOperation(document *language.QueryDocument, operationName string) *language.OperationDefinition {
	if operationName == "" {
		if len(document.Operations) == 1 {
			return document.Operations[0]
		}
		return nil
	}
	for _, operation := range document.Operations {
		if operation.Name == operationName {
			return operation
		}
	}
	return nil
}
