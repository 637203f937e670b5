package models

import (
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"
)

// Error codes used across services and handlers.
const (
	CodeValidation         = "VALIDATION_ERROR"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeForbidden          = "FORBIDDEN"
	CodeNotFound           = "NOT_FOUND"
	CodeDuplicateEmail     = "DUPLICATE_EMAIL"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeInternal           = "INTERNAL_ERROR"
)

// ErrorResponse is the single-cause API error body.
type ErrorResponse struct {
	Msg string `json:"msg"`
}

// FieldError is one entry in a validation error list.
type FieldError struct {
	Msg string `json:"msg"`
}

// ValidationResponse is the API error body for validation failures.
type ValidationResponse struct {
	Errors []FieldError `json:"errors"`
}

// AppError is a custom application error carrying a stable code.
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Predefined error constructors
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: CodeNotFound, Message: message}
}

func NewValidationError(message string) *AppError {
	return &AppError{Code: CodeValidation, Message: message}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{Code: CodeUnauthorized, Message: message}
}

// NewForbiddenError marks an ownership refusal. It is surfaced to clients as
// 401 with the same generic message the unauthenticated path uses for
// resource mutations, so existence of other owners' resources leaks nothing.
func NewForbiddenError() *AppError {
	return &AppError{Code: CodeForbidden, Message: "User not authorized"}
}

// NewDuplicateEmailError is deliberately generic: it must not confirm which
// field collided.
func NewDuplicateEmailError() *AppError {
	return &AppError{Code: CodeDuplicateEmail, Message: "User already exists"}
}

// NewInvalidCredentialsError covers both unknown-email and wrong-password so
// the two are indistinguishable to callers.
func NewInvalidCredentialsError() *AppError {
	return &AppError{Code: CodeInvalidCredentials, Message: "Invalid credentials"}
}

func NewInternalError(err error) *AppError {
	return &AppError{Code: CodeInternal, Message: "Server Error", Err: err}
}

// RespondWithError writes the standardized single-cause error body. Internal
// errors are logged with full detail server-side and surfaced as the generic
// message only.
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	msg := err.Error()
	if appErr, ok := err.(*AppError); ok {
		msg = appErr.Message
		if appErr.Code == CodeInternal {
			slog.Error("internal error",
				slog.String("path", c.Path()),
				slog.String("method", c.Method()),
				slog.String("error", appErr.Error()),
			)
		}
	}
	return c.Status(status).JSON(ErrorResponse{Msg: msg})
}

// RespondWithValidationErrors writes the standardized validation error list.
func RespondWithValidationErrors(c *fiber.Ctx, errs []FieldError) error {
	return c.Status(fiber.StatusBadRequest).JSON(ValidationResponse{Errors: errs})
}
