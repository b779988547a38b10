package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors for type checking
var (
	ErrAlreadyExists = errors.New("already exists")
	ErrInvalidInput  = errors.New("invalid input")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrStoreIO       = errors.New("store i/o failure")
	ErrRewrite       = errors.New("store rewrite failure")
)

// AlreadyExistsError indicates a resource already exists.
type AlreadyExistsError struct {
	Resource string
	ID       string
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("%s already exists: %s", e.Resource, e.ID)
}

func (e *AlreadyExistsError) Unwrap() error {
	return ErrAlreadyExists
}

// ValidationError indicates invalid user input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// UnauthorizedError indicates a failed credential check.
type UnauthorizedError struct {
	Username string
}

func (e *UnauthorizedError) Error() string {
	return "incorrect username or password"
}

func (e *UnauthorizedError) Unwrap() error {
	return ErrUnauthorized
}

// ForbiddenError indicates the current role may not perform an action.
type ForbiddenError struct {
	Role   string
	Action string
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("%s role may not %s", e.Role, e.Action)
}

func (e *ForbiddenError) Unwrap() error {
	return ErrForbidden
}

// StoreError is a hard I/O failure against a store file.
// The underlying OS error is kept for the caller.
type StoreError struct {
	Op   string // "append", "scan", "create"
	Path string
	Err  error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap exposes both the sentinel and the underlying cause.
func (e *StoreError) Unwrap() []error {
	return []error{ErrStoreIO, e.Err}
}

// RewriteError reports a failed delete-rewrite step. The store may be left
// in whatever state the filesystem left it.
type RewriteError struct {
	Path  string
	Stage string // "open", "create-temp", "copy", "flush", "replace"
	Err   error
}

func (e *RewriteError) Error() string {
	return fmt.Sprintf("rewrite %s failed at %s: %v", e.Path, e.Stage, e.Err)
}

func (e *RewriteError) Unwrap() []error {
	return []error{ErrRewrite, e.Err}
}

// Helper constructors for common cases

func InvalidField(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

func RequiredField(field string) error {
	return &ValidationError{Field: field, Message: "must not be empty"}
}

func UserAlreadyExists(username string) error {
	return &AlreadyExistsError{Resource: "user", ID: username}
}

// IsAlreadyExists checks if an error is an already-exists error.
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsValidationError checks if an error is a validation error.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsUnauthorized checks if an error is a failed login.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsForbidden checks if an error is a role violation.
func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden)
}

// IsStoreIO checks if an error is a store I/O failure.
func IsStoreIO(err error) bool {
	return errors.Is(err, ErrStoreIO)
}

// IsRewrite checks if an error is a failed delete-rewrite.
func IsRewrite(err error) bool {
	return errors.Is(err, ErrRewrite)
}
