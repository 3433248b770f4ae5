package apperror

import "net/http"

// Kind classifies an error for the admin user. It follows the dashboard's
// error taxonomy: a failed login, a failed read, a failed mutation or a
// request rejected before any network call.
type Kind string

const (
	KindAuth       Kind = "auth"
	KindFetch      Kind = "fetch"
	KindMutation   Kind = "mutation"
	KindValidation Kind = "validation"
	KindInternal   Kind = "internal"
)

// AppError is a custom error type that includes an HTTP status code, a kind and a user-facing message.
type AppError struct {
	Code    int    // HTTP Status Code (e.g., 400, 404)
	Kind    Kind   // Error category shown to the client
	Message string // User-facing error message
	Err     error  // The underlying error, if any (not exposed to user)
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError with a status code and message.
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Kind:    KindInternal,
		Message: message,
	}
}

// Wrap creates a new AppError wrapping an existing error.
func Wrap(err error, code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Kind:    KindInternal,
		Message: message,
		Err:     err,
	}
}

// Validation builds a 400 error raised before any network call.
func Validation(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Kind: KindValidation, Message: message}
}

// Fetch wraps a failed read of backend data.
func Fetch(err error, code int, message string) *AppError {
	return &AppError{Code: code, Kind: KindFetch, Message: message, Err: err}
}

// Mutation wraps a failed state-changing request.
func Mutation(err error, code int, message string) *AppError {
	return &AppError{Code: code, Kind: KindMutation, Message: message, Err: err}
}

// Auth wraps a rejected login.
func Auth(err error, code int, message string) *AppError {
	return &AppError{Code: code, Kind: KindAuth, Message: message, Err: err}
}
