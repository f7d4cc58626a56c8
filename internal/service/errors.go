package service

import "errors"

var (
	ErrEmailTaken         = errors.New("user with this email already exists")
	ErrMobileTaken        = errors.New("user with this mobile number already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrPasswordNotSet     = errors.New("password not set, please contact support")
	ErrInvalidCredentials = errors.New("incorrect login or password")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrWeakPassword       = errors.New("password does not meet requirements")
	ErrInvalidOTP         = errors.New("invalid or expired otp")
	ErrUpdateFailed       = errors.New("update failed")
	ErrInvalidAction      = errors.New("invalid action")

	ErrAdminAlreadyExist = errors.New("admin already exists")
	ErrAdminNotFound     = errors.New("admin not found")
)
