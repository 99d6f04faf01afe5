package auth

import (
	"context"
	"time"
)

type StoreAPI interface {
	Insert(ctx context.Context, companyName, email, passwordHash, role string) (Account, error)
	FindByEmail(ctx context.Context, email string) (Credentials, error)
	FindByID(ctx context.Context, id string) (Account, error)
	FindCredentialsByID(ctx context.Context, id string) (Credentials, error)
	StampLastLogin(ctx context.Context, id string, at time.Time) error
	SaveOTP(ctx context.Context, id, code string, expires time.Time) error
	UpdatePasswordClearOTP(ctx context.Context, id, passwordHash string) error
}
