package auth

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"
)

type fakeAccountStore struct {
	nextID  int
	byID    map[string]*Credentials
	byEmail map[string]*Credentials
}

func newFakeAccountStore() *fakeAccountStore {
	return &fakeAccountStore{
		byID:    map[string]*Credentials{},
		byEmail: map[string]*Credentials{},
	}
}

func (f *fakeAccountStore) Insert(_ context.Context, companyName, email, passwordHash, role string) (Account, error) {
	if _, exists := f.byEmail[email]; exists {
		return Account{}, ErrEmailExists
	}
	f.nextID++
	creds := &Credentials{
		Account: Account{
			ID:          fmt.Sprintf("acc-%d", f.nextID),
			CompanyName: companyName,
			Email:       email,
			Role:        role,
			CreatedAt:   time.Now(),
		},
		PasswordHash: passwordHash,
	}
	f.byID[creds.ID] = creds
	f.byEmail[email] = creds
	return creds.Account, nil
}

func (f *fakeAccountStore) FindByEmail(_ context.Context, email string) (Credentials, error) {
	creds, ok := f.byEmail[email]
	if !ok {
		return Credentials{}, ErrAccountNotFound
	}
	return *creds, nil
}

func (f *fakeAccountStore) FindByID(_ context.Context, id string) (Account, error) {
	creds, ok := f.byID[id]
	if !ok {
		return Account{}, ErrAccountNotFound
	}
	return creds.Account, nil
}

func (f *fakeAccountStore) FindCredentialsByID(_ context.Context, id string) (Credentials, error) {
	creds, ok := f.byID[id]
	if !ok {
		return Credentials{}, ErrAccountNotFound
	}
	return *creds, nil
}

func (f *fakeAccountStore) StampLastLogin(_ context.Context, id string, at time.Time) error {
	if creds, ok := f.byID[id]; ok {
		creds.LastLogin = &at
	}
	return nil
}

func (f *fakeAccountStore) SaveOTP(_ context.Context, id, code string, expires time.Time) error {
	creds, ok := f.byID[id]
	if !ok {
		return ErrAccountNotFound
	}
	creds.ResetOTP = code
	creds.ResetOTPExpires = &expires
	return nil
}

func (f *fakeAccountStore) UpdatePasswordClearOTP(_ context.Context, id, passwordHash string) error {
	creds, ok := f.byID[id]
	if !ok {
		return ErrAccountNotFound
	}
	creds.PasswordHash = passwordHash
	creds.ResetOTP = ""
	creds.ResetOTPExpires = nil
	return nil
}

// fakeMailer records recipients under a lock; Register sends the welcome
// mail from a goroutine.
type fakeMailer struct {
	mu   sync.Mutex
	sent []string
}

func (m *fakeMailer) Send(_ context.Context, to, _, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, to)
	return nil
}

func newAuthService(store StoreAPI, mailer Mailer, at time.Time) *Service {
	return NewService(store, mailer, "test-secret", 7*24*time.Hour, 10*time.Minute, false).
		WithClock(func() time.Time { return at })
}

func TestRegisterRejectsMalformedEmail(t *testing.T) {
	store := newFakeAccountStore()
	svc := newAuthService(store, &fakeMailer{}, time.Now())
	ctx := context.Background()

	for _, email := range []string{"definitely not an email", "no-at-sign.test", "user@nodot", "user @acme.test", ""} {
		if _, err := svc.Register(ctx, "Acme", email, "password123"); err != ErrInvalidEmail {
			t.Errorf("Register(%q): got %v, want ErrInvalidEmail", email, err)
		}
	}
	if len(store.byEmail) != 0 {
		t.Errorf("accounts stored = %d, rejected emails must not persist", len(store.byEmail))
	}

	if _, err := svc.Register(ctx, "Acme", "admin@acme.test", "password123"); err != nil {
		t.Errorf("valid email rejected: %v", err)
	}
}

func TestForgotPasswordUnknownEmailIsSilent(t *testing.T) {
	store := newFakeAccountStore()
	svc := newAuthService(store, &fakeMailer{}, time.Now())

	result, err := svc.ForgotPassword(context.Background(), "nobody@acme.test")
	if err != nil {
		t.Fatalf("unknown email must not error, got %v", err)
	}
	if result.Email != "" || result.DebugOTP != "" {
		t.Errorf("unknown email must yield a zero result, got %+v", result)
	}
}

func TestForgotPasswordOverwritesPriorOTP(t *testing.T) {
	store := newFakeAccountStore()
	at := time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)
	svc := newAuthService(store, &fakeMailer{}, at)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "Acme", "admin@acme.test", "secret123"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	first, err := svc.ForgotPassword(ctx, "admin@acme.test")
	if err != nil {
		t.Fatalf("first request failed: %v", err)
	}
	second, err := svc.ForgotPassword(ctx, "admin@acme.test")
	if err != nil {
		t.Fatalf("second request failed: %v", err)
	}

	if _, err := svc.VerifyOTP(ctx, "admin@acme.test", first.DebugOTP); err == nil && first.DebugOTP != second.DebugOTP {
		t.Error("stale OTP still accepted after being overwritten")
	}
	if _, err := svc.VerifyOTP(ctx, "admin@acme.test", second.DebugOTP); err != nil {
		t.Errorf("current OTP rejected: %v", err)
	}
}

func TestVerifyOTPExpiry(t *testing.T) {
	store := newFakeAccountStore()
	issued := time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)
	svc := newAuthService(store, &fakeMailer{}, issued)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "Acme", "admin@acme.test", "secret123"); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	result, err := svc.ForgotPassword(ctx, "admin@acme.test")
	if err != nil {
		t.Fatalf("forgot failed: %v", err)
	}

	within := newAuthService(store, &fakeMailer{}, issued.Add(14*time.Minute))
	if _, err := within.VerifyOTP(ctx, "admin@acme.test", result.DebugOTP); err != nil {
		t.Errorf("OTP rejected inside the window: %v", err)
	}

	after := newAuthService(store, &fakeMailer{}, issued.Add(16*time.Minute))
	if _, err := after.VerifyOTP(ctx, "admin@acme.test", result.DebugOTP); err != ErrInvalidOTP {
		t.Errorf("expired OTP: got %v, want ErrInvalidOTP", err)
	}
}

func TestResetPasswordConsumesOTP(t *testing.T) {
	store := newFakeAccountStore()
	at := time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)
	svc := newAuthService(store, &fakeMailer{}, at)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "Acme", "admin@acme.test", "secret123"); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	forgot, err := svc.ForgotPassword(ctx, "admin@acme.test")
	if err != nil {
		t.Fatalf("forgot failed: %v", err)
	}
	verified, err := svc.VerifyOTP(ctx, "admin@acme.test", forgot.DebugOTP)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}

	if err := svc.ResetPassword(ctx, verified.ResetToken, "newsecret1", verified.UserID); err != nil {
		t.Fatalf("reset failed: %v", err)
	}

	if _, err := svc.Login(ctx, "admin@acme.test", "newsecret1"); err != nil {
		t.Errorf("login with new password failed: %v", err)
	}
	if _, err := svc.Login(ctx, "admin@acme.test", "secret123"); err != ErrInvalidCredentials {
		t.Errorf("login with old password: got %v, want ErrInvalidCredentials", err)
	}

	// The reset consumed the OTP, so the same credential cannot be replayed.
	if err := svc.ResetPassword(ctx, verified.ResetToken, "another1", verified.UserID); err != ErrInvalidResetToken {
		t.Errorf("second reset: got %v, want ErrInvalidResetToken", err)
	}
}

func TestResetPasswordRejectsMismatchedAccount(t *testing.T) {
	store := newFakeAccountStore()
	at := time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)
	svc := newAuthService(store, &fakeMailer{}, at)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "Acme", "admin@acme.test", "secret123"); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	forgot, err := svc.ForgotPassword(ctx, "admin@acme.test")
	if err != nil {
		t.Fatalf("forgot failed: %v", err)
	}
	verified, err := svc.VerifyOTP(ctx, "admin@acme.test", forgot.DebugOTP)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}

	if err := svc.ResetPassword(ctx, verified.ResetToken, "newsecret1", "someone-else"); err != ErrInvalidResetToken {
		t.Errorf("mismatched account id: got %v, want ErrInvalidResetToken", err)
	}
}

func TestLoginStampsLastLogin(t *testing.T) {
	store := newFakeAccountStore()
	at := time.Date(2025, 4, 1, 12, 0, 0, 0, time.UTC)
	svc := newAuthService(store, &fakeMailer{}, at)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "Acme", "admin@acme.test", "secret123"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	result, err := svc.Login(ctx, "Admin@Acme.Test ", "secret123")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if result.Account.LastLogin == nil || !result.Account.LastLogin.Equal(at) {
		t.Errorf("lastLogin = %v, want %v", result.Account.LastLogin, at)
	}
	if result.Token == "" {
		t.Error("expected a session token")
	}
}
