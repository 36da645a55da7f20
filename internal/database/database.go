// Package database provides the document-store abstraction for the backend.
//
// The Database interface exposes three query methods:
//   - Query: returns multiple results (SELECT queries returning lists)
//   - QueryOne: returns a single result (SELECT by id, findOne-style lookups)
//   - Execute: no return value (mutations whose result is not needed)
//
// Standard errors are defined for common failure cases and checked with
// errors.Is() in calling code. Unique-index violations additionally carry
// the offending field names via DuplicateError, and schema (assert/type)
// violations carry the failing field via SchemaError, so the HTTP layer can
// normalize store failures into the API's uniform error envelope.
package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate indicates a unique-index violation.
	ErrDuplicate = errors.New("duplicate record")

	// ErrConnection indicates a failure to connect to or communicate with the store.
	ErrConnection = errors.New("database connection error")

	// ErrQuery indicates a query execution failure.
	ErrQuery = errors.New("query error")
)

// DuplicateError reports the fields rejected by a store unique index. It is
// the store-level backstop behind the application's advisory duplicate
// checks: a race between check and write still surfaces as one of these.
type DuplicateError struct {
	Fields []string
}

func (e *DuplicateError) Error() string {
	if len(e.Fields) == 0 {
		return "Duplicate value"
	}
	return fmt.Sprintf("Duplicate value for field(s): %s", strings.Join(e.Fields, ", "))
}

// Is makes errors.Is(err, ErrDuplicate) match DuplicateError values.
func (e *DuplicateError) Is(target error) bool {
	return target == ErrDuplicate
}

// SchemaError reports a store-level field validation failure on write.
type SchemaError struct {
	Field   string
	Message string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("invalid value for field %q: %s", e.Field, e.Message)
}

// Database defines the interface for document-store operations.
type Database interface {
	Connect(ctx context.Context) error
	Close() error
	Ping(ctx context.Context) error

	// Query executes a query and returns results.
	Query(ctx context.Context, query string, vars map[string]interface{}) ([]interface{}, error)

	// QueryOne executes a query and returns a single result, or ErrNotFound.
	QueryOne(ctx context.Context, query string, vars map[string]interface{}) (interface{}, error)

	// Execute runs a query without returning results.
	Execute(ctx context.Context, query string, vars map[string]interface{}) error
}

// Config holds store connection settings.
type Config struct {
	Host      string
	Port      string
	User      string
	Password  string
	Namespace string
	Database  string
}
