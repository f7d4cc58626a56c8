package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/membergate/backend/internal/config"
	"github.com/membergate/backend/internal/domain"
	"github.com/membergate/backend/internal/queue/client"
	"github.com/membergate/backend/internal/queue/task"
	"github.com/membergate/backend/internal/repository"
	"github.com/membergate/backend/pkg/hash"
	"github.com/membergate/backend/pkg/password"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Action is an administrator's decision on a pending registration.
type Action string

const (
	ActionAccept  Action = "Accepted"
	ActionDecline Action = "Declined"
)

type approvalService struct {
	userRepository repository.Users
	hasher         hash.Hasher
	queue          client.Enqueuer
	logger         *zap.Logger
	config         *config.Config
}

func newApprovalService(userRepository repository.Users,
	hasher hash.Hasher,
	queue client.Enqueuer,
	logger *zap.Logger,
	config *config.Config,
) *approvalService {
	return &approvalService{
		userRepository: userRepository,
		hasher:         hasher,
		queue:          queue,
		logger:         logger,
		config:         config,
	}
}

func (s *approvalService) PendingUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.userRepository.ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pending users failed: %w", err)
	}
	return users, nil
}

// Decide moves a pending registration to a terminal status. Accept
// derives a username, generates a throwaway password, persists its
// hash and mails the plaintext once. Decline only flips the status and
// notifies.
//
// A record that is already terminal is not guarded against: deciding
// it again performs another transition and sends another notification.
func (s *approvalService) Decide(ctx context.Context, userID uuid.UUID, action Action) error {
	user, err := s.userRepository.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("get user by id failed: %w", err)
	}

	switch action {
	case ActionAccept:
		return s.accept(ctx, user)
	case ActionDecline:
		return s.decline(ctx, user)
	default:
		return ErrInvalidAction
	}
}

func (s *approvalService) accept(ctx context.Context, user *domain.User) error {
	username := deriveUsername(user.Name, user.Mobile)
	plaintext := password.Generate(s.config.Auth.GeneratedPasswordLength)

	digest, err := s.hasher.Hash(plaintext)
	if err != nil {
		return fmt.Errorf("hash generated password failed: %w", err)
	}

	if err := s.userRepository.SetAccepted(ctx, user.ID, username, digest); err != nil {
		if errors.Is(err, domain.ErrNoRowsAffected) {
			return ErrUpdateFailed
		}
		return fmt.Errorf("set user accepted failed: %w", err)
	}

	credentialsTask, err := task.NewCredentialsEmailTask(user.Email, username, plaintext)
	if err != nil {
		return fmt.Errorf("build credentials email task failed: %w", err)
	}
	s.notify(ctx, credentialsTask)

	return nil
}

func (s *approvalService) decline(ctx context.Context, user *domain.User) error {
	if err := s.userRepository.SetDeclined(ctx, user.ID); err != nil {
		if errors.Is(err, domain.ErrNoRowsAffected) {
			return ErrUpdateFailed
		}
		return fmt.Errorf("set user declined failed: %w", err)
	}

	declineTask, err := task.NewDeclineEmailTask(user.Email, user.Name, s.config.Admin.FromEmail)
	if err != nil {
		return fmt.Errorf("build decline email task failed: %w", err)
	}
	s.notify(ctx, declineTask)

	return nil
}

// deriveUsername builds the issued login from the first four
// characters of the display name, capitalized, and the last four
// digits of the mobile number.
func deriveUsername(name string, mobile string) string {
	namePart := []rune(name)
	if len(namePart) == 0 {
		namePart = []rune("User")
	}
	if len(namePart) > 4 {
		namePart = namePart[:4]
	}

	capitalized := strings.ToUpper(string(namePart[:1])) + strings.ToLower(string(namePart[1:]))

	mobilePart := mobile
	if len(mobilePart) > 4 {
		mobilePart = mobilePart[len(mobilePart)-4:]
	}

	return capitalized + mobilePart
}

func (s *approvalService) notify(ctx context.Context, t *asynq.Task) {
	if err := s.queue.Enqueue(ctx, t); err != nil {
		s.logger.Warn("email task enqueue failed", zap.String("task", t.Type()), zap.Error(err))
	}
}
