package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedKind indicates an Apex kind other than class or trigger.
	ErrUnsupportedKind = errors.New("unsupported apex kind")

	// ErrAuthRequired indicates no access token was supplied.
	ErrAuthRequired = errors.New("authentication required")

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")

	// ErrUnexpectedResponse indicates a response body did not have the expected shape,
	// for example a query without records or a create call without an id.
	ErrUnexpectedResponse = errors.New("unexpected response")

	// ErrCompileFailed indicates the server reported a failed container compile.
	ErrCompileFailed = errors.New("compile failed")

	// ErrPollTimeout indicates the compile did not reach a terminal state in time.
	ErrPollTimeout = errors.New("poll timeout")
)

// CompileError describes a ContainerAsyncRequest that ended in a failure state
// or reported an error message.
type CompileError struct {
	RequestID string
	State     AsyncState
	Message   string
}

func (e *CompileError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("container async request %s: %s", e.RequestID, e.State)
	}
	return fmt.Sprintf("container async request %s: %s: %s", e.RequestID, e.State, e.Message)
}

// Unwrap allows errors.Is(err, ErrCompileFailed).
func (e *CompileError) Unwrap() error {
	return ErrCompileFailed
}
