// Package apperrors defines the error kinds returned by services and how they
// map onto HTTP status codes.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error.
type Kind int

const (
	KindStoreFailure Kind = iota
	KindSelfRequest
	KindDuplicateRequest
	KindInvalidStatus
	KindUserNotFound
	KindRequestNotFound
	KindInvalidID
	KindInvalidField
	KindValidation
	KindInvalidCredentials
	KindEmailTaken
	KindUnauthorized
)

var kindNames = map[Kind]string{
	KindStoreFailure:       "StoreFailure",
	KindSelfRequest:        "SelfRequest",
	KindDuplicateRequest:   "DuplicateRequest",
	KindInvalidStatus:      "InvalidStatus",
	KindUserNotFound:       "UserNotFound",
	KindRequestNotFound:    "RequestNotFound",
	KindInvalidID:          "InvalidID",
	KindInvalidField:       "InvalidField",
	KindValidation:         "Validation",
	KindInvalidCredentials: "InvalidCredentials",
	KindEmailTaken:         "EmailTaken",
	KindUnauthorized:       "Unauthorized",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// HTTPStatus returns the status code a kind is reported with.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindUserNotFound, KindRequestNotFound:
		return http.StatusNotFound
	case KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusBadRequest
	}
}

// Error is an application error carrying its kind, a client-facing message and
// structured context for logs.
type Error struct {
	Kind    Kind
	Message string
	Fields  map[string]interface{}
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error with the same kind, so sentinels such as ErrSelfRequest
// can be used with errors.Is.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return t.Kind == e.Kind
	}
	return false
}

// With returns a copy of e with an extra context field.
func (e *Error) With(key string, value interface{}) *Error {
	fields := make(map[string]interface{}, len(e.Fields)+1)
	for k, v := range e.Fields {
		fields[k] = v
	}
	fields[key] = value
	return &Error{Kind: e.Kind, Message: e.Message, Fields: fields, Err: e.Err}
}

// New builds an error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap builds an error of the given kind around cause.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Err: cause}
}

// Store wraps a persistence failure.
func Store(op string, cause error) *Error {
	return Wrap(KindStoreFailure, "Something went wrong, please try again", cause).With("op", op)
}

// KindOf returns the kind of err, or KindStoreFailure for errors that are not *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindStoreFailure
}

// Sentinels for errors.Is comparisons.
var (
	ErrSelfRequest        = New(KindSelfRequest, "Cannot send a connection request to yourself")
	ErrDuplicateRequest   = New(KindDuplicateRequest, "Connection Request Already Exists!!")
	ErrInvalidStatus      = New(KindInvalidStatus, "Status not allowed")
	ErrUserNotFound       = New(KindUserNotFound, "User not found")
	ErrRequestNotFound    = New(KindRequestNotFound, "Connection request not found")
	ErrInvalidID          = New(KindInvalidID, "Invalid id")
	ErrInvalidField       = New(KindInvalidField, "Invalid edit request")
	ErrValidation         = New(KindValidation, "Invalid input")
	ErrInvalidCredentials = New(KindInvalidCredentials, "Invalid credentials")
	ErrEmailTaken         = New(KindEmailTaken, "Email already in use")
	ErrUnauthorized       = New(KindUnauthorized, "Please Login")
	ErrStoreFailure       = New(KindStoreFailure, "Something went wrong, please try again")
)
