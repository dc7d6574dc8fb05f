package service

import "strings"

// SchemaError bundles one or more human-readable messages raised while
// resolving a request: bad argument shapes, missing required arguments,
// unknown fragments, missing resolvers, unknown operations, or errors
// surfaced by resolver callbacks.
type SchemaError struct {
	Messages []string
}

func NewSchemaError(messages ...string) *SchemaError {
	return &SchemaError{Messages: messages}
}

func (e *SchemaError) Error() string {
	return strings.Join(e.Messages, "; ")
}

// errorSink accumulates request-level error messages. It is single-owner
// per request; resolvers never see it directly.
type errorSink struct {
	messages []string
}

func (s *errorSink) append(messages ...string) {
	s.messages = append(s.messages, messages...)
}

// appendError records err, flattening SchemaError bundles into their
// individual messages.
func (s *errorSink) appendError(err error) {
	if se, ok := err.(*SchemaError); ok {
		s.append(se.Messages...)
		return
	}
	s.append(err.Error())
}
