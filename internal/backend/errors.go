package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/cargorental/admin-dashboard/internal/pkg/apperror"
)

// APIError is a non-2xx response from the backend.
type APIError struct {
	Status int
	// Message is the backend's own message, verbatim, or the status text when
	// the response carried none.
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend responded %d: %s", e.Status, e.Message)
}

func newAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(raw) == 0 {
		return apiErr
	}

	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(raw, &payload) == nil {
		switch {
		case payload.Message != "":
			apiErr.Message = payload.Message
		case payload.Error != "":
			apiErr.Message = payload.Error
		}
		return apiErr
	}

	if text := strings.TrimSpace(string(raw)); text != "" && !strings.HasPrefix(text, "<") {
		apiErr.Message = text
	}
	return apiErr
}

// StatusOf returns the backend status carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// MessageOf returns the backend message carried by err, falling back to
// fallback when the backend sent none. The bare HTTP status text does not
// count as a message.
func MessageOf(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" && apiErr.Message != http.StatusText(apiErr.Status) {
		return apiErr.Message
	}
	return fallback
}

// IsUnauthorized reports whether the backend rejected the credential.
func IsUnauthorized(err error) bool {
	s := StatusOf(err)
	return s == http.StatusUnauthorized || s == http.StatusForbidden
}

// FetchFailure converts a failed read into the error shown to the admin.
// A rejected credential becomes an auth error; everything else is a fetch
// error carrying the backend's message when it sent one.
func FetchFailure(err error, what string) error {
	if IsUnauthorized(err) {
		return apperror.Auth(err, http.StatusUnauthorized, "your session has expired, log in again")
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return apperror.Fetch(err, http.StatusGatewayTimeout, "timed out loading "+what)
	}
	if s := StatusOf(err); s == http.StatusNotFound {
		return apperror.Fetch(err, http.StatusNotFound, MessageOf(err, what+" not found"))
	}
	return apperror.Fetch(err, http.StatusBadGateway, MessageOf(err, "failed to load "+what))
}
