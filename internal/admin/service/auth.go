package service

import (
	"context"
	"errors"
	"strings"
	"time"

	adminerrors "aquavalle/internal/admin/errors"
	"aquavalle/internal/admin/repository"

	"aquavalle/pkg/auth"
	"aquavalle/pkg/config"
	apperrors "aquavalle/pkg/errors"
	"aquavalle/pkg/kafka"
	"aquavalle/pkg/model"
)

// Publisher is the slice of the Kafka producer the service needs.
type Publisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

type LoginResult struct {
	Token string           `json:"access_token"`
	Admin *model.AdminUser `json:"admin"`
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Me(ctx context.Context, adminID string) (*model.AdminUser, error)
	RequestReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, code, newPassword string) error
}

type authService struct {
	admins    repository.AdminRepository
	codes     repository.ResetCodeRepository
	tokens    *auth.TokenManager
	publisher Publisher
	cfg       *config.Config
}

func NewAuthService(
	admins repository.AdminRepository,
	codes repository.ResetCodeRepository,
	tokens *auth.TokenManager,
	publisher Publisher,
	cfg *config.Config,
) AuthService {
	return &authService{
		admins:    admins,
		codes:     codes,
		tokens:    tokens,
		publisher: publisher,
		cfg:       cfg,
	}
}

func (s *authService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, apperrors.InvalidInput("email and password are required")
	}

	admin, err := s.admins.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, adminerrors.ErrAdminNotFound) {
			// Same message for unknown email and wrong password.
			return nil, apperrors.Unauthorized("Invalid credentials")
		}
		return nil, apperrors.Internal("Failed to look up admin user", err)
	}

	if !auth.VerifyPassword(admin.PasswordHash, password) {
		s.cfg.Log.Warn("Failed admin login attempt", "email", email)
		return nil, apperrors.Unauthorized("Invalid credentials")
	}

	token, err := s.tokens.Sign(admin.ID, admin.Email)
	if err != nil {
		return nil, err
	}

	s.cfg.Log.Info("Admin logged in", "email", admin.Email)
	return &LoginResult{Token: token, Admin: admin}, nil
}

func (s *authService) Me(ctx context.Context, adminID string) (*model.AdminUser, error) {
	admin, err := s.admins.FindByID(ctx, adminID)
	if err != nil {
		if errors.Is(err, adminerrors.ErrAdminNotFound) || errors.Is(err, adminerrors.ErrInvalidID) {
			return nil, apperrors.Unauthorized("Unknown admin user")
		}
		return nil, apperrors.Internal("Failed to look up admin user", err)
	}
	return admin, nil
}

// RequestReset stores a short-lived 6-digit code and hands it to the
// notifier. Unknown emails return success so the endpoint cannot be used to
// probe for accounts.
func (s *authService) RequestReset(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return apperrors.InvalidInput("email is required")
	}

	admin, err := s.admins.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, adminerrors.ErrAdminNotFound) {
			s.cfg.Log.Warn("Password reset requested for unknown email", "email", email)
			return nil
		}
		return apperrors.Internal("Failed to look up admin user", err)
	}

	code, err := auth.GenerateResetCode()
	if err != nil {
		return err
	}

	resetCode := &model.PasswordResetCode{
		Email:     admin.Email,
		Code:      code,
		ExpiresAt: time.Now().Add(s.cfg.ResetCodeTTL),
	}
	if err := s.codes.Create(ctx, resetCode); err != nil {
		return apperrors.Internal("Failed to store reset code", err)
	}

	s.publishResetEvent(ctx, resetCode)
	s.cfg.Log.Info("Password reset code issued", "email", admin.Email)
	return nil
}

func (s *authService) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || code == "" {
		return apperrors.InvalidInput("email and code are required")
	}
	if len(newPassword) < 8 {
		return apperrors.Validation("Password too short", map[string]any{
			"error": "password must be at least 8 characters",
		})
	}

	resetCode, err := s.codes.FindActive(ctx, email, code)
	if err != nil {
		if errors.Is(err, adminerrors.ErrCodeNotFound) {
			return apperrors.Unauthorized("Invalid or expired reset code")
		}
		return apperrors.Internal("Failed to verify reset code", err)
	}

	admin, err := s.admins.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, adminerrors.ErrAdminNotFound) {
			return apperrors.Unauthorized("Invalid or expired reset code")
		}
		return apperrors.Internal("Failed to look up admin user", err)
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.admins.UpdatePassword(ctx, admin.ID, hash); err != nil {
		return apperrors.Internal("Failed to update password", err)
	}

	if err := s.codes.MarkUsed(ctx, resetCode.ID); err != nil {
		s.cfg.Log.Warn("Failed to mark reset code used", "error", err)
	}

	s.cfg.Log.Info("Admin password reset", "email", admin.Email)
	return nil
}

func (s *authService) publishResetEvent(ctx context.Context, code *model.PasswordResetCode) {
	if s.publisher == nil {
		return
	}

	event := model.PasswordResetEvent{
		Email:      code.Email,
		Code:       code.Code,
		ExpiresAt:  code.ExpiresAt,
		OccurredAt: time.Now().UTC(),
	}

	msg := kafka.NewMessage().
		WithKey(code.Email).
		WithEventType(model.EventPasswordResetRequested).
		WithSource("admin").
		WithValue(event).
		Build()

	if err := s.publisher.Publish(ctx, msg); err != nil {
		s.cfg.Log.Error("Failed to publish password reset event", "email", code.Email, "error", err)
	}
}
