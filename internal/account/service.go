// Package account runs the public self-service account deletion flow for
// marketplace users: sign in with email and password, confirm the one-time
// code mailed by the backend, then delete.
package account

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/cargorental/admin-dashboard/internal/backend"
	"github.com/cargorental/admin-dashboard/internal/pkg/apperror"
)

var (
	ErrEmailRequired    = apperror.Validation("email is required")
	ErrPasswordRequired = apperror.Validation("password is required")
	ErrInvalidOTP       = apperror.Validation("the code must be 4 digits")
)

// Step names the stage of the deletion flow, used in error messages.
type Step string

const (
	StepLogin     Step = "login"
	StepVerifyOTP Step = "verify-otp"
	StepDelete    Step = "delete"
)

var fallbackMessages = map[Step]string{
	StepLogin:     "Invalid credentials",
	StepVerifyOTP: "OTP verification failed. Please try again.",
	StepDelete:    "Account deletion failed. Please try again.",
}

type Service interface {
	Login(ctx context.Context, email, password string) error
	VerifyOTP(ctx context.Context, email, otp string) error
	Delete(ctx context.Context, email string) error
}

type service struct {
	factory *backend.Factory
	logger  *zap.Logger
}

func NewService(factory *backend.Factory, logger *zap.Logger) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{factory: factory, logger: logger}
}

func (s *service) Login(ctx context.Context, email, password string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ErrEmailRequired
	}
	if password == "" {
		return ErrPasswordRequired
	}
	body := map[string]string{"email": email, "password": password}
	return s.post(ctx, StepLogin, "/api/users/login-delete-account", body)
}

// VerifyOTP sends the code as a number, as the backend expects.
func (s *service) VerifyOTP(ctx context.Context, email, otp string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ErrEmailRequired
	}
	code, err := parseOTP(otp)
	if err != nil {
		return err
	}
	body := map[string]any{"email": email, "otp": code}
	return s.post(ctx, StepVerifyOTP, "/api/users/login-delete-account/verify-otp", body)
}

func (s *service) Delete(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ErrEmailRequired
	}
	if err := s.post(ctx, StepDelete, "/api/users/delete-account", map[string]string{"email": email}); err != nil {
		return err
	}
	s.logger.Info("user account deleted")
	return nil
}

func (s *service) post(ctx context.Context, step Step, path string, body any) error {
	if err := s.factory.New("").Post(ctx, path, body, nil); err != nil {
		s.logger.Info("account deletion step refused", zap.String("step", string(step)), zap.Error(err))
		return stepError(step, err)
	}
	return nil
}

func parseOTP(otp string) (int, error) {
	otp = strings.TrimSpace(otp)
	if len(otp) != 4 {
		return 0, ErrInvalidOTP
	}
	for _, r := range otp {
		if r < '0' || r > '9' {
			return 0, ErrInvalidOTP
		}
	}
	return strconv.Atoi(otp)
}

func stepError(step Step, err error) error {
	fallback := fallbackMessages[step]
	status := backend.StatusOf(err)
	switch {
	case status >= 400 && status < 500:
		return apperror.Mutation(err, status, backend.MessageOf(err, fallback))
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return apperror.Mutation(err, http.StatusGatewayTimeout, fallback)
	default:
		return apperror.Mutation(err, http.StatusBadGateway, backend.MessageOf(err, fallback))
	}
}
