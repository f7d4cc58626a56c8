package domain

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Admin is an administrator account, created administratively and
// mutated only by the password change/reset flows.
type Admin struct {
	ID           uuid.UUID      `db:"id" json:"id"`
	AdminID      string         `db:"admin_id" json:"admin_id"`
	Email        string         `db:"email" json:"email"`
	Mobile       string         `db:"mobile" json:"mobile"`
	PasswordHash string         `db:"password_hash" json:"-"`
	OTP          sql.NullString `db:"otp" json:"-"`
	OTPCreatedAt sql.NullTime   `db:"otp_created_at" json:"-"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
