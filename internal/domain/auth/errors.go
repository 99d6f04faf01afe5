package auth

import "errors"

var (
	ErrEmailExists        = errors.New("user with this email already exists")
	ErrInvalidEmail       = errors.New("please provide a valid email address")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidOTP         = errors.New("invalid or expired OTP")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
	ErrAccountNotFound    = errors.New("user not found")
)
