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
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

type authService struct {
	userRepository repository.Users
	sessions       session.Store
	hasher         hash.Hasher
	tokenManager   auth.TokenManager
	otpGenerator   otp.Generator
	queue          client.Enqueuer
	logger         *zap.Logger
	config         *config.Config
}

func newAuthService(userRepository repository.Users,
	sessions session.Store,
	hasher hash.Hasher,
	tokenManager auth.TokenManager,
	otpGenerator otp.Generator,
	queue client.Enqueuer,
	logger *zap.Logger,
	config *config.Config,
) *authService {
	return &authService{
		userRepository: userRepository,
		sessions:       sessions,
		hasher:         hasher,
		tokenManager:   tokenManager,
		otpGenerator:   otpGenerator,
		queue:          queue,
		logger:         logger,
		config:         config,
	}
}

// SignUp creates a Pending applicant without credentials. Email
// verification is intentionally absent: the flag is forced true at
// creation and no confirmation mail is involved.
func (s *authService) SignUp(ctx context.Context, input SignUpInput) (*domain.User, error) {
	if _, err := s.userRepository.GetByEmail(ctx, input.Email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get user by email failed: %w", err)
	}

	if _, err := s.userRepository.GetByMobile(ctx, input.Mobile); err == nil {
		return nil, ErrMobileTaken
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get user by mobile failed: %w", err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate user id failed: %w", err)
	}

	user := &domain.User{
		ID:            id,
		Name:          input.Name,
		Mobile:        input.Mobile,
		Email:         input.Email,
		Status:        domain.StatusPending,
		EmailVerified: true,
	}

	if err := s.userRepository.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEntry) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user failed: %w", err)
	}

	created, err := s.userRepository.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get created user failed: %w", err)
	}

	welcomeTask, err := task.NewWelcomeEmailTask(created.Email, created.Name)
	if err != nil {
		return nil, fmt.Errorf("build welcome email task failed: %w", err)
	}
	s.notify(ctx, welcomeTask)

	return created, nil
}

// SignIn accepts a username, email or mobile number as login.
func (s *authService) SignIn(ctx context.Context, login string, passwordPlain string) (*Tokens, error) {
	user, err := s.findByLogin(ctx, login)
	if err != nil {
		return nil, err
	}

	if !user.PasswordHash.Valid || user.PasswordHash.String == "" {
		return nil, ErrPasswordNotSet
	}

	if !s.hasher.Verify(user.PasswordHash.String, passwordPlain) {
		return nil, ErrInvalidCredentials
	}

	return s.createSession(ctx, user.ID)
}

func (s *authService) findByLogin(ctx context.Context, login string) (*domain.User, error) {
	lookups := []func(context.Context, string) (*domain.User, error){
		s.userRepository.GetByUsername,
		s.userRepository.GetByEmail,
		s.userRepository.GetByMobile,
	}

	for _, lookup := range lookups {
		user, err := lookup(ctx, login)
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("lookup user by login failed: %w", err)
		}
	}

	return nil, ErrUserNotFound
}

func (s *authService) createSession(ctx context.Context, identity uuid.UUID) (*Tokens, error) {
	accessToken, ttl, err := s.tokenManager.NewJWT(identity)
	if err != nil {
		return nil, fmt.Errorf("generate access token failed: %w", err)
	}

	if err := s.sessions.Create(ctx, accessToken, identity); err != nil {
		return nil, fmt.Errorf("create session failed: %w", err)
	}

	return &Tokens{
		AccessToken: accessToken,
		AccessTTL:   ttl,
		Identity:    identity,
	}, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	if err := s.sessions.Revoke(ctx, token); err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("revoke session failed: %w", err)
	}
	return nil
}

func (s *authService) ChangePassword(ctx context.Context, userID uuid.UUID, input ChangePasswordInput) error {
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

	if err := s.userRepository.UpdatePassword(ctx, userID, digest); err != nil {
		if errors.Is(err, domain.ErrNoRowsAffected) {
			return ErrUserNotFound
		}
		return fmt.Errorf("update password failed: %w", err)
	}

	return nil
}

// ForgotPassword issues a one-time code: stored first, mailed after.
// A pending code is overwritten, so only one code per user is live.
func (s *authService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.userRepository.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("get user by email failed: %w", err)
	}

	code := s.otpGenerator.Generate(s.config.Auth.OTPLength)

	if err := s.userRepository.StoreOTP(ctx, user.ID, code); err != nil {
		return fmt.Errorf("store otp failed: %w", err)
	}

	otpTask, err := task.NewOTPEmailTask(user.Email, code)
	if err != nil {
		return fmt.Errorf("build otp email task failed: %w", err)
	}
	s.notify(ctx, otpTask)

	return nil
}

// ResetPassword looks the user up by the submitted code, verifies it
// against the stored one (lazy expiry check), then swaps the hash and
// clears the code.
func (s *authService) ResetPassword(ctx context.Context, input ResetPasswordInput) error {
	if input.NewPassword != input.ConfirmPassword {
		return ErrPasswordMismatch
	}

	user, err := s.userRepository.GetByOTP(ctx, input.OTP)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrInvalidOTP
		}
		return fmt.Errorf("get user by otp failed: %w", err)
	}

	if !otp.Verify(user.OTP, user.OTPCreatedAt, input.OTP, s.config.Auth.OTPTTL, time.Now().UTC()) {
		return ErrInvalidOTP
	}

	if !password.Validate(input.NewPassword) {
		return ErrWeakPassword
	}

	digest, err := s.hasher.Hash(input.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password failed: %w", err)
	}

	if err := s.userRepository.UpdatePassword(ctx, user.ID, digest); err != nil {
		return fmt.Errorf("update password failed: %w", err)
	}

	if err := s.userRepository.ClearOTP(ctx, user.ID); err != nil {
		return fmt.Errorf("clear otp failed: %w", err)
	}

	return nil
}

// CompletePayment confirms the fee and notifies the administrator.
// Calling it again is not guarded: each call re-marks the record and
// re-sends the notification.
func (s *authService) CompletePayment(ctx context.Context, userID uuid.UUID) error {
	user, err := s.userRepository.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("get user by id failed: %w", err)
	}

	if err := s.userRepository.SetPaid(ctx, userID); err != nil {
		return fmt.Errorf("mark user paid failed: %w", err)
	}

	notifyTask, err := task.NewPaymentNotificationTask(
		s.config.Admin.NotifyEmail,
		user.Name,
		user.Email,
		user.Mobile,
		s.config.Admin.PortalURL,
	)
	if err != nil {
		return fmt.Errorf("build payment notification task failed: %w", err)
	}
	s.notify(ctx, notifyTask)

	return nil
}

func (s *authService) PaymentInfo(ctx context.Context, userID uuid.UUID) (*PaymentInfo, error) {
	user, err := s.userRepository.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by id failed: %w", err)
	}

	uri := fmt.Sprintf("upi://pay?pa=%s&pn=%s&am=%s",
		s.config.Payment.UPIAddress,
		s.config.Payment.Payee,
		s.config.Payment.Amount,
	)

	return &PaymentInfo{
		User:       user,
		PaymentURI: uri,
		Amount:     s.config.Payment.Amount,
	}, nil
}

// notify enqueues a mail task after the state mutation has been
// committed. A failed enqueue is logged and swallowed: the mutation is
// not rolled back.
func (s *authService) notify(ctx context.Context, t *asynq.Task) {
	if err := s.queue.Enqueue(ctx, t); err != nil {
		s.logger.Warn("email task enqueue failed", zap.String("task", t.Type()), zap.Error(err))
	}
}
