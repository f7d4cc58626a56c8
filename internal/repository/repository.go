package repository

import (
	"context"

	"github.com/membergate/backend/internal/domain"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type Repositories struct {
	Users  Users
	Admins Admins
}

func NewRepositories(db *sqlx.DB) *Repositories {
	return &Repositories{
		Users:  newUserRepository(db),
		Admins: newAdminRepository(db),
	}
}

// Users is the credential store for applicant records: point lookups
// keyed by identity, email, mobile, username or OTP value, and atomic
// single-row field updates. Not-found is reported as
// domain.ErrNotFound, an update touching zero rows as
// domain.ErrNoRowsAffected. Concurrent updates are last-write-wins.
type Users interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByMobile(ctx context.Context, mobile string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	GetByOTP(ctx context.Context, code string) (*domain.User, error)
	ListPending(ctx context.Context) ([]domain.User, error)
	SetPaid(ctx context.Context, id uuid.UUID) error
	SetAccepted(ctx context.Context, id uuid.UUID, username string, passwordHash string) error
	SetDeclined(ctx context.Context, id uuid.UUID) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	StoreOTP(ctx context.Context, id uuid.UUID, code string) error
	ClearOTP(ctx context.Context, id uuid.UUID) error
}

// Admins mirrors the user store for administrator accounts.
type Admins interface {
	Create(ctx context.Context, admin *domain.Admin) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Admin, error)
	GetByEmail(ctx context.Context, email string) (*domain.Admin, error)
	GetByAdminID(ctx context.Context, adminID string) (*domain.Admin, error)
	GetByOTP(ctx context.Context, code string) (*domain.Admin, error)
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	StoreOTP(ctx context.Context, id uuid.UUID, code string) error
	ClearOTP(ctx context.Context, id uuid.UUID) error
}
