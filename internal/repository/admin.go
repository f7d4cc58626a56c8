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

const adminColumns = "id, admin_id, email, mobile, password_hash, otp, otp_created_at, created_at, updated_at"

type adminRepository struct {
	db *sqlx.DB
}

func newAdminRepository(db *sqlx.DB) *adminRepository {
	return &adminRepository{
		db: db,
	}
}

func (r *adminRepository) Create(ctx context.Context, admin *domain.Admin) error {
	const query = `
	INSERT INTO admin (id, admin_id, email, mobile, password_hash)
	VALUES (uuid_to_bin(?), ?, ?, ?, ?);
	`

	_, err := r.db.ExecContext(ctx, query,
		admin.ID,
		admin.AdminID,
		admin.Email,
		admin.Mobile,
		admin.PasswordHash,
	)
	if err != nil {
		//nolint:errorlint
		if mysqlError, ok := err.(*mysql.MySQLError); ok && mysqlError.Number == db.DuplicateEntry {
			return domain.ErrDuplicateEntry
		}
		return fmt.Errorf("db insert admin: %w", err)
	}

	return nil
}

func (r *adminRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Admin, error) {
	return r.getOne(ctx, "id = uuid_to_bin(?)", id)
}

func (r *adminRepository) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	return r.getOne(ctx, "email = ?", email)
}

func (r *adminRepository) GetByAdminID(ctx context.Context, adminID string) (*domain.Admin, error) {
	return r.getOne(ctx, "admin_id = ?", adminID)
}

func (r *adminRepository) GetByOTP(ctx context.Context, code string) (*domain.Admin, error) {
	return r.getOne(ctx, "otp = ?", code)
}

func (r *adminRepository) getOne(ctx context.Context, predicate string, arg interface{}) (*domain.Admin, error) {
	query := fmt.Sprintf("SELECT %s FROM admin WHERE %s", adminColumns, predicate)

	var admin domain.Admin
	if err := r.db.GetContext(ctx, &admin, query, arg); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("select from admin failed: %w", err)
	}

	return &admin, nil
}

func (r *adminRepository) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	const query = `
	UPDATE admin SET password_hash = ? WHERE id = uuid_to_bin(?);
	`
	return r.exec(ctx, query, passwordHash, id)
}

func (r *adminRepository) StoreOTP(ctx context.Context, id uuid.UUID, code string) error {
	const query = `
	UPDATE admin SET otp = ?, otp_created_at = now() WHERE id = uuid_to_bin(?);
	`
	return r.exec(ctx, query, code, id)
}

func (r *adminRepository) ClearOTP(ctx context.Context, id uuid.UUID) error {
	const query = `
	UPDATE admin SET otp = NULL, otp_created_at = NULL WHERE id = uuid_to_bin(?);
	`
	return r.exec(ctx, query, id)
}

func (r *adminRepository) exec(ctx context.Context, query string, args ...interface{}) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("db update admin: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db update admin rows: %w", err)
	}

	if rows == 0 {
		return domain.ErrNoRowsAffected
	}

	return nil
}
