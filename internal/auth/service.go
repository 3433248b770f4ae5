// Package auth signs admins in with their developer code and out again.
package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/cargorental/admin-dashboard/internal/backend"
	"github.com/cargorental/admin-dashboard/internal/pkg/apperror"
	"github.com/cargorental/admin-dashboard/internal/session"
)

var (
	ErrCodeRequired = apperror.Validation("developer code is required")
	ErrNoToken      = apperror.Auth(nil, http.StatusBadGateway, "login failed: the backend returned no token")
)

// LoginRequest is the backend's admin login body.
type LoginRequest struct {
	Code string `json:"code"`
}

// LoginResponse is the backend's admin login answer.
type LoginResponse struct {
	Token string `json:"token"`
}

type Service interface {
	// Login exchanges a developer code for a backend token and opens a
	// session holding it. It returns the session and its cookie value.
	Login(ctx context.Context, code string) (*session.Session, string, error)
	// Logout ends the session referenced by cookie. An unknown or invalid
	// cookie is not an error.
	Logout(ctx context.Context, cookie string) error
}

type service struct {
	factory *backend.Factory
	manager *session.Manager
	logger  *zap.Logger
}

func NewService(factory *backend.Factory, manager *session.Manager, logger *zap.Logger) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{factory: factory, manager: manager, logger: logger}
}

func (s *service) Login(ctx context.Context, code string) (*session.Session, string, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, "", ErrCodeRequired
	}

	var out LoginResponse
	if err := s.factory.New("").Post(ctx, "/api/admin/login", LoginRequest{Code: code}, &out); err != nil {
		return nil, "", loginFailure(err)
	}
	if out.Token == "" {
		return nil, "", ErrNoToken
	}

	sess, cookie, err := s.manager.Create(ctx, out.Token)
	if err != nil {
		return nil, "", apperror.Wrap(err, http.StatusInternalServerError, "failed to create session")
	}
	s.logger.Info("admin logged in", zap.String("session_id", sess.ID))
	return sess, cookie, nil
}

func (s *service) Logout(ctx context.Context, cookie string) error {
	if cookie == "" {
		return nil
	}
	id, err := s.manager.SessionID(cookie)
	if err != nil {
		return nil
	}
	if err := s.manager.Destroy(ctx, id); err != nil && !errors.Is(err, session.ErrNotFound) {
		return apperror.Wrap(err, http.StatusInternalServerError, "failed to end session")
	}
	s.logger.Info("admin logged out", zap.String("session_id", id))
	return nil
}

func loginFailure(err error) error {
	status := backend.StatusOf(err)
	switch {
	case status >= 400 && status < 500:
		return apperror.Auth(err, http.StatusUnauthorized, backend.MessageOf(err, "login failed"))
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return apperror.Auth(err, http.StatusGatewayTimeout, "login timed out")
	default:
		return apperror.Auth(err, http.StatusBadGateway, backend.MessageOf(err, "login failed"))
	}
}
