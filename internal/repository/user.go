package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/membergate/backend/internal/db"
	"github.com/membergate/backend/internal/domain"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const userColumns = "id, name, mobile, email, username, password_hash, status, email_verified, paid, otp, otp_created_at, created_at, updated_at"

type userRepository struct {
	db *sqlx.DB
}

func newUserRepository(db *sqlx.DB) *userRepository {
	return &userRepository{
		db: db,
	}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
	INSERT INTO user (id, name, mobile, email, status, email_verified)
	VALUES (uuid_to_bin(?), ?, ?, ?, ?, ?);
	`

	_, err := r.db.ExecContext(ctx, query,
		user.ID,
		user.Name,
		user.Mobile,
		user.Email,
		user.Status,
		user.EmailVerified,
	)
	if err != nil {
		//nolint:errorlint
		if mysqlError, ok := err.(*mysql.MySQLError); ok && mysqlError.Number == db.DuplicateEntry {
			return domain.ErrDuplicateEntry
		}
		return fmt.Errorf("db insert user: %w", err)
	}

	return nil
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return r.getOne(ctx, "id = uuid_to_bin(?)", id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, "email = ?", email)
}

func (r *userRepository) GetByMobile(ctx context.Context, mobile string) (*domain.User, error) {
	return r.getOne(ctx, "mobile = ?", mobile)
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.getOne(ctx, "username = ?", username)
}

func (r *userRepository) GetByOTP(ctx context.Context, code string) (*domain.User, error) {
	return r.getOne(ctx, "otp = ?", code)
}

func (r *userRepository) getOne(ctx context.Context, predicate string, arg interface{}) (*domain.User, error) {
	query := fmt.Sprintf("SELECT %s FROM user WHERE %s", userColumns, predicate)

	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("select from user failed: %w", err)
	}

	return &user, nil
}

func (r *userRepository) ListPending(ctx context.Context) ([]domain.User, error) {
	// absent status counts as pending, matching records created before
	// the status column existed
	query := fmt.Sprintf("SELECT %s FROM user WHERE status = ? OR status IS NULL OR status = ''", userColumns)

	var users []domain.User
	if err := r.db.SelectContext(ctx, &users, query, domain.StatusPending); err != nil {
		return nil, fmt.Errorf("select pending users failed: %w", err)
	}

	return users, nil
}

func (r *userRepository) SetPaid(ctx context.Context, id uuid.UUID) error {
	const query = `
	UPDATE user SET paid = true, status = ? WHERE id = uuid_to_bin(?);
	`
	return r.exec(ctx, query, domain.StatusPending, id)
}

func (r *userRepository) SetAccepted(ctx context.Context, id uuid.UUID, username string, passwordHash string) error {
	const query = `
	UPDATE user SET status = ?, username = ?, password_hash = ? WHERE id = uuid_to_bin(?);
	`
	return r.exec(ctx, query, domain.StatusAccepted, username, passwordHash, id)
}

func (r *userRepository) SetDeclined(ctx context.Context, id uuid.UUID) error {
	const query = `
	UPDATE user SET status = ? WHERE id = uuid_to_bin(?);
	`
	return r.exec(ctx, query, domain.StatusDeclined, id)
}

func (r *userRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	const query = `
	UPDATE user SET password_hash = ? WHERE id = uuid_to_bin(?);
	`
	return r.exec(ctx, query, passwordHash, id)
}

// StoreOTP sets the code and its issue time together; a prior pending
// code is overwritten.
func (r *userRepository) StoreOTP(ctx context.Context, id uuid.UUID, code string) error {
	const query = `
	UPDATE user SET otp = ?, otp_created_at = now() WHERE id = uuid_to_bin(?);
	`
	return r.exec(ctx, query, code, id)
}

// ClearOTP unsets the code and its issue time together.
func (r *userRepository) ClearOTP(ctx context.Context, id uuid.UUID) error {
	const query = `
	UPDATE user SET otp = NULL, otp_created_at = NULL WHERE id = uuid_to_bin(?);
	`
	return r.exec(ctx, query, id)
}

func (r *userRepository) exec(ctx context.Context, query string, args ...interface{}) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("db update user: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db update user rows: %w", err)
	}

	if rows == 0 {
		return domain.ErrNoRowsAffected
	}

	return nil
}
