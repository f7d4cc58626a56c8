package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/membergate/backend/internal/config"
	"github.com/membergate/backend/internal/domain"
	"github.com/membergate/backend/internal/queue/client"
	"github.com/membergate/backend/internal/queue/task"
	"github.com/membergate/backend/internal/repository"
	"github.com/membergate/backend/internal/session"
	"github.com/membergate/backend/pkg/auth"
	"github.com/membergate/backend/pkg/hash"
	"github.com/membergate/backend/pkg/otp"
	"github.com/membergate/backend/pkg/password"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type adminService struct {
	adminRepository repository.Admins
	sessions        session.Store
	hasher          hash.Hasher
	tokenManager    auth.TokenManager
	otpGenerator    otp.Generator
	queue           client.Enqueuer
	logger          *zap.Logger
	config          *config.Config
}

func newAdminService(adminRepository repository.Admins,
	sessions session.Store,
	hasher hash.Hasher,
	tokenManager auth.TokenManager,
	otpGenerator otp.Generator,
	queue client.Enqueuer,
	logger *zap.Logger,
	config *config.Config,
) *adminService {
	return &adminService{
		adminRepository: adminRepository,
		sessions:        sessions,
		hasher:          hasher,
		tokenManager:    tokenManager,
		otpGenerator:    otpGenerator,
		queue:           queue,
		logger:          logger,
		config:          config,
	}
}

func (s *adminService) Create(ctx context.Context, input CreateAdminInput) (*domain.Admin, error) {
	if !password.Validate(input.Password) {
		return nil, ErrWeakPassword
	}

	if _, err := s.adminRepository.GetByEmail(ctx, input.Email); err == nil {
		return nil, ErrAdminAlreadyExist
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get admin by email failed: %w", err)
	}

	digest, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password failed: %w", err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate admin id failed: %w", err)
	}

	admin := &domain.Admin{
		ID:           id,
		AdminID:      input.AdminID,
		Email:        input.Email,
		Mobile:       input.Mobile,
		PasswordHash: digest,
	}

	if err := s.adminRepository.Create(ctx, admin); err != nil {
		if errors.Is(err, domain.ErrDuplicateEntry) {
			return nil, ErrAdminAlreadyExist
		}
		return nil, fmt.Errorf("create admin failed: %w", err)
	}

	return admin, nil
}

func (s *adminService) SignIn(ctx context.Context, email string, passwordPlain string) (*Tokens, error) {
	admin, err := s.adminRepository.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get admin by email failed: %w", err)
	}

	if !s.hasher.Verify(admin.PasswordHash, passwordPlain) {
		return nil, ErrInvalidCredentials
	}

	accessToken, ttl, err := s.tokenManager.NewJWT(admin.ID)
	if err != nil {
		return nil, fmt.Errorf("generate access token failed: %w", err)
	}

	if err := s.sessions.Create(ctx, accessToken, admin.ID); err != nil {
		return nil, fmt.Errorf("create session failed: %w", err)
	}

	return &Tokens{
		AccessToken: accessToken,
		AccessTTL:   ttl,
		Identity:    admin.ID,
	}, nil
}

func (s *adminService) ChangePassword(ctx context.Context, id uuid.UUID, input AdminChangePasswordInput) error {
	admin, err := s.adminRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrAdminNotFound
		}
		return fmt.Errorf("get admin by id failed: %w", err)
	}

	if !s.hasher.Verify(admin.PasswordHash, input.OldPassword) {
		return ErrInvalidCredentials
	}

	if input.NewPassword != input.ConfirmPassword {
		return ErrPasswordMismatch
	}

	if !password.Validate(input.NewPassword) {
		return ErrWeakPassword
	}

	digest, err := s.hasher.Hash(input.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password failed: %w", err)
	}

	if err := s.adminRepository.UpdatePassword(ctx, admin.ID, digest); err != nil {
		return fmt.Errorf("update admin password failed: %w", err)
	}

	return nil
}

func (s *adminService) ForgotPassword(ctx context.Context, email string) error {
	admin, err := s.adminRepository.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrAdminNotFound
		}
		return fmt.Errorf("get admin by email failed: %w", err)
	}

	code := s.otpGenerator.Generate(s.config.Auth.OTPLength)

	if err := s.adminRepository.StoreOTP(ctx, admin.ID, code); err != nil {
		return fmt.Errorf("store admin otp failed: %w", err)
	}

	otpTask, err := task.NewOTPEmailTask(admin.Email, code)
	if err != nil {
		return fmt.Errorf("build otp email task failed: %w", err)
	}
	if err := s.queue.Enqueue(ctx, otpTask); err != nil {
		s.logger.Warn("email task enqueue failed", zap.String("task", otpTask.Type()), zap.Error(err))
	}

	return nil
}

func (s *adminService) ResetPassword(ctx context.Context, input ResetPasswordInput) error {
	if input.NewPassword != input.ConfirmPassword {
		return ErrPasswordMismatch
	}

	admin, err := s.adminRepository.GetByOTP(ctx, input.OTP)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrInvalidOTP
		}
		return fmt.Errorf("get admin by otp failed: %w", err)
	}

	if !otp.Verify(admin.OTP, admin.OTPCreatedAt, input.OTP, s.config.Auth.OTPTTL, time.Now().UTC()) {
		return ErrInvalidOTP
	}

	if !password.Validate(input.NewPassword) {
		return ErrWeakPassword
	}

	digest, err := s.hasher.Hash(input.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password failed: %w", err)
	}

	if err := s.adminRepository.UpdatePassword(ctx, admin.ID, digest); err != nil {
		return fmt.Errorf("update admin password failed: %w", err)
	}

	if err := s.adminRepository.ClearOTP(ctx, admin.ID); err != nil {
		return fmt.Errorf("clear admin otp failed: %w", err)
	}

	return nil
}
