package auth

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pms/internal/db"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{DB: pool}
}

func (s *Store) Insert(ctx context.Context, companyName, email, passwordHash, role string) (Account, error) {
	var out Account
	err := s.DB.QueryRow(ctx, `
    INSERT INTO accounts (company_name, email, password_hash, role)
    VALUES ($1, $2, $3, $4)
    RETURNING id, company_name, email, role, created_at
  `, companyName, email, passwordHash, role).Scan(&out.ID, &out.CompanyName, &out.Email, &out.Role, &out.CreatedAt)
	if err != nil {
		if _, ok := db.UniqueViolation(err); ok {
			return Account{}, ErrEmailExists
		}
		return Account{}, err
	}
	return out, nil
}

func (s *Store) FindByEmail(ctx context.Context, email string) (Credentials, error) {
	var out Credentials
	err := s.DB.QueryRow(ctx, `
    SELECT id, company_name, email, role, last_login, created_at,
           password_hash, COALESCE(reset_otp, ''), reset_otp_expires
    FROM accounts
    WHERE email = $1
  `, email).Scan(
		&out.ID, &out.CompanyName, &out.Email, &out.Role, &out.LastLogin, &out.CreatedAt,
		&out.PasswordHash, &out.ResetOTP, &out.ResetOTPExpires,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Credentials{}, ErrAccountNotFound
	}
	if err != nil {
		return Credentials{}, err
	}
	return out, nil
}

func (s *Store) FindByID(ctx context.Context, id string) (Account, error) {
	var out Account
	err := s.DB.QueryRow(ctx, `
    SELECT id, company_name, email, role, last_login, created_at
    FROM accounts
    WHERE id = $1
  `, id).Scan(&out.ID, &out.CompanyName, &out.Email, &out.Role, &out.LastLogin, &out.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Account{}, ErrAccountNotFound
	}
	if err != nil {
		return Account{}, err
	}
	return out, nil
}

func (s *Store) FindCredentialsByID(ctx context.Context, id string) (Credentials, error) {
	var out Credentials
	err := s.DB.QueryRow(ctx, `
    SELECT id, company_name, email, role, last_login, created_at,
           password_hash, COALESCE(reset_otp, ''), reset_otp_expires
    FROM accounts
    WHERE id = $1
  `, id).Scan(
		&out.ID, &out.CompanyName, &out.Email, &out.Role, &out.LastLogin, &out.CreatedAt,
		&out.PasswordHash, &out.ResetOTP, &out.ResetOTPExpires,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Credentials{}, ErrAccountNotFound
	}
	if err != nil {
		return Credentials{}, err
	}
	return out, nil
}

func (s *Store) StampLastLogin(ctx context.Context, id string, at time.Time) error {
	_, err := s.DB.Exec(ctx, "UPDATE accounts SET last_login = $1, updated_at = now() WHERE id = $2", at, id)
	return err
}

func (s *Store) SaveOTP(ctx context.Context, id, code string, expires time.Time) error {
	_, err := s.DB.Exec(ctx, `
    UPDATE accounts SET reset_otp = $1, reset_otp_expires = $2, updated_at = now() WHERE id = $3
  `, code, expires, id)
	return err
}

func (s *Store) UpdatePasswordClearOTP(ctx context.Context, id, passwordHash string) error {
	_, err := s.DB.Exec(ctx, `
    UPDATE accounts
    SET password_hash = $1, reset_otp = NULL, reset_otp_expires = NULL, updated_at = now()
    WHERE id = $2
  `, passwordHash, id)
	return err
}
