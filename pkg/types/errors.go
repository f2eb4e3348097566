package types

import (
	"fmt"
	"strings"
)

// The four failure categories every gateway operation resolves to. Callers
// branch with errors.As: auth failures redirect to login, validation failures
// re-render the current step, not-found aborts, network failures are retried
// manually by the user.

type AuthError struct {
	Reason string
}

func (e *AuthError) Error() string {
	if e.Reason == "" {
		return "not authenticated"
	}
	return e.Reason
}

type ValidationError struct {
	Message string
	// Fields maps an input field to its violation, for inline display.
	Fields map[string]string
	// MissingDocuments names required documents that are neither uploaded
	// nor marked not-available, for marking the offending tiles.
	MissingDocuments []string
}

func (e *ValidationError) Error() string {
	if len(e.MissingDocuments) > 0 {
		return fmt.Sprintf("%s: %s", e.Message, strings.Join(e.MissingDocuments, ", "))
	}
	return e.Message
}

type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Entity)
	}
	return fmt.Sprintf("%s %s not found or access denied", e.Entity, e.ID)
}

type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
