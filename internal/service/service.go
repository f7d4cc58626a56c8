package service

import (
	"context"
	"time"

	"github.com/membergate/backend/internal/config"
	"github.com/membergate/backend/internal/domain"
	"github.com/membergate/backend/internal/queue/client"
	"github.com/membergate/backend/internal/repository"
	"github.com/membergate/backend/internal/session"
	"github.com/membergate/backend/pkg/auth"
	"github.com/membergate/backend/pkg/hash"
	"github.com/membergate/backend/pkg/otp"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Services struct {
	Auth     Auth
	Approval Approval
	Admins   Admins
}

type Deps struct {
	Logger       *zap.Logger
	Config       *config.Config
	Hasher       hash.Hasher
	TokenManager auth.TokenManager
	OTPGenerator otp.Generator
	Repos        *repository.Repositories
	Sessions     session.Store
	Queue        client.Enqueuer
}

func NewServices(deps Deps) *Services {
	return &Services{
		Auth: newAuthService(deps.Repos.Users,
			deps.Sessions,
			deps.Hasher,
			deps.TokenManager,
			deps.OTPGenerator,
			deps.Queue,
			deps.Logger,
			deps.Config,
		),
		Approval: newApprovalService(deps.Repos.Users,
			deps.Hasher,
			deps.Queue,
			deps.Logger,
			deps.Config,
		),
		Admins: newAdminService(deps.Repos.Admins,
			deps.Sessions,
			deps.Hasher,
			deps.TokenManager,
			deps.OTPGenerator,
			deps.Queue,
			deps.Logger,
			deps.Config,
		),
	}
}

type Tokens struct {
	AccessToken string
	AccessTTL   time.Duration
	Identity    uuid.UUID
}

type SignUpInput struct {
	Name   string
	Mobile string
	Email  string
}

type ChangePasswordInput struct {
	NewPassword     string
	ConfirmPassword string
}

type ResetPasswordInput struct {
	OTP             string
	NewPassword     string
	ConfirmPassword string
}

type PaymentInfo struct {
	User       *domain.User
	PaymentURI string
	Amount     string
}

type CreateAdminInput struct {
	AdminID  string
	Email    string
	Mobile   string
	Password string
}

type AdminChangePasswordInput struct {
	OldPassword     string
	NewPassword     string
	ConfirmPassword string
}

type Auth interface {
	SignUp(ctx context.Context, input SignUpInput) (*domain.User, error)
	SignIn(ctx context.Context, login string, password string) (*Tokens, error)
	Logout(ctx context.Context, token string) error
	ChangePassword(ctx context.Context, userID uuid.UUID, input ChangePasswordInput) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, input ResetPasswordInput) error
	CompletePayment(ctx context.Context, userID uuid.UUID) error
	PaymentInfo(ctx context.Context, userID uuid.UUID) (*PaymentInfo, error)
}

type Approval interface {
	PendingUsers(ctx context.Context) ([]domain.User, error)
	Decide(ctx context.Context, userID uuid.UUID, action Action) error
}

type Admins interface {
	Create(ctx context.Context, input CreateAdminInput) (*domain.Admin, error)
	SignIn(ctx context.Context, email string, password string) (*Tokens, error)
	ChangePassword(ctx context.Context, id uuid.UUID, input AdminChangePasswordInput) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, input ResetPasswordInput) error
}
