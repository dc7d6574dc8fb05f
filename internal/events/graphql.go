package events

import "time"

// GraphQLStart is emitted before a GraphQL operation executes.
type GraphQLStart struct {
	Query         string
	OperationName string
	OperationType string
}

// GraphQLFinish is emitted after a GraphQL operation completes.
type GraphQLFinish struct {
	Query         string
	OperationName string
	OperationType string
	ErrorCount    int
	Duration      time.Duration
}
