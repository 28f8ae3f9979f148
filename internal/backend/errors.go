package backend

import (
	"errors"
	"fmt"
)

// Kind classifies a backend failure independently of the transport that produced it.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotConfigured
	KindUnreachable
	KindTableMissing
	KindNoRow
	KindUnauthorized
	KindConflict
	KindUnconfirmed
	KindInvalidCredentials
	KindValidation
)

var kindCodes = map[Kind]string{
	KindUnknown:            "unknown",
	KindNotConfigured:      "not_configured",
	KindUnreachable:        "unreachable",
	KindTableMissing:       "table_missing",
	KindNoRow:              "no_row",
	KindUnauthorized:       "unauthorized",
	KindConflict:           "conflict",
	KindUnconfirmed:        "unconfirmed",
	KindInvalidCredentials: "invalid_credentials",
	KindValidation:         "validation",
}

// Code is the wire representation of the kind.
func (k Kind) Code() string {
	if code, ok := kindCodes[k]; ok {
		return code
	}
	return kindCodes[KindUnknown]
}

func (k Kind) String() string {
	return k.Code()
}

// KindFromCode is the inverse of Code. Unrecognised codes map to KindUnknown.
func KindFromCode(code string) Kind {
	for kind, c := range kindCodes {
		if c == code {
			return kind
		}
	}
	return KindUnknown
}

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, err error) *Error {
	message := kind.Code()
	if err != nil {
		message = err.Error()
	}
	return &Error{Kind: kind, Message: message, Err: err}
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Kind.Code()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports a match on kind alone, so errors.Is(err, ErrNoRow) holds for any no-row error.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

var (
	ErrNotConfigured      = New(KindNotConfigured, "backend is not configured: set the backend URL and API key")
	ErrUnreachable        = New(KindUnreachable, "backend is unreachable, please try again")
	ErrTableMissing       = New(KindTableMissing, "Business profile system is being set up. Please try again later.")
	ErrNoRow              = New(KindNoRow, "record not found")
	ErrUnauthorized       = New(KindUnauthorized, "unauthorized")
	ErrConflict           = New(KindConflict, "An account with this email already exists. Please sign in instead.")
	ErrUnconfirmed        = New(KindUnconfirmed, "This email is already registered but not confirmed. Please check your email for verification or try logging in.")
	ErrInvalidCredentials = New(KindInvalidCredentials, "invalid credentials")
)

// KindOf returns the kind carried by err, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func Unreachable(err error) *Error {
	return &Error{
		Kind:    KindUnreachable,
		Message: fmt.Sprintf("%s: %v", ErrUnreachable.Message, err),
		Err:     err,
	}
}
