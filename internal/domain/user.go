package domain

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

type UserStatus string

const (
	StatusPending  UserStatus = "Pending"
	StatusAccepted UserStatus = "Accepted"
	StatusDeclined UserStatus = "Declined"
)

// Terminal reports whether no further approval transition is defined
// for the status.
func (s UserStatus) Terminal() bool {
	return s == StatusAccepted || s == StatusDeclined
}

// User is an applicant record. Username and PasswordHash stay unset
// until an administrator accepts the registration. OTP and OTPCreatedAt
// are always set and cleared together.
type User struct {
	ID            uuid.UUID      `db:"id" json:"id"`
	Name          string         `db:"name" json:"name"`
	Mobile        string         `db:"mobile" json:"mobile"`
	Email         string         `db:"email" json:"email"`
	Username      sql.NullString `db:"username" json:"username"`
	PasswordHash  sql.NullString `db:"password_hash" json:"-"`
	Status        UserStatus     `db:"status" json:"status"`
	EmailVerified bool           `db:"email_verified" json:"email_verified"`
	Paid          bool           `db:"paid" json:"paid"`
	OTP           sql.NullString `db:"otp" json:"-"`
	OTPCreatedAt  sql.NullTime   `db:"otp_created_at" json:"-"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
