package apperror

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/xw1nchester/tca-backend/internal/backend"
)

var (
	ErrNotFound      = NewCodedError(backend.KindNoRow, "not found")
	ErrUnauthorized  = NewCodedError(backend.KindUnauthorized, "unauthorized")
	ErrDecodeBody    = NewAppError("failed to decode request body")
	ErrNotConfigured = NewCodedError(backend.KindNotConfigured, "The member area is not configured yet.")
	ErrTableMissing  = NewCodedError(backend.KindTableMissing, backend.ErrTableMissing.Message)
)

// AppError is the JSON error body. Code carries a backend.Kind code so clients
// can branch on it without matching messages.
type AppError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

func NewAppError(message string) *AppError {
	return &AppError{
		Message: message,
	}
}

func NewCodedError(kind backend.Kind, message string) *AppError {
	return &AppError{
		Message: message,
		Code:    kind.Code(),
	}
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Kind() backend.Kind {
	if e.Code == "" {
		return backend.KindUnknown
	}
	return backend.KindFromCode(e.Code)
}

func (e *AppError) Marshal() []byte {
	marshal, err := json.Marshal(e)
	if err != nil {
		return nil
	}
	return marshal
}

func NewValidationErr(errs validator.ValidationErrors) *AppError {
	var errMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errMsgs = append(errMsgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "email":
			errMsgs = append(errMsgs, fmt.Sprintf("field %s is not a valid email", err.Field()))
		case "min":
			errMsgs = append(errMsgs, fmt.Sprintf("the minimum length of the %s field is %s characters", err.Field(), err.Param()))
		case "url":
			errMsgs = append(errMsgs, fmt.Sprintf("field %s is not a valid url", err.Field()))
		default:
			errMsgs = append(errMsgs, fmt.Sprintf("field %s is not valid", err.Field()))
		}
	}

	return NewCodedError(backend.KindValidation, strings.Join(errMsgs, ", "))
}

func internalError() *AppError {
	return NewAppError("internal error")
}
