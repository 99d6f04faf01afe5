package auth

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"
)

// Mailer delivers outbound mail. Implementations live in platform/email; the
// console implementation is selected at startup when SMTP is unconfigured.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// Delivery modes reported by ForgotPassword.
const (
	DeliveryEmail           = "email"
	DeliveryConsole         = "console"
	DeliveryConsoleFallback = "console-fallback"
)

type Service struct {
	store           StoreAPI
	mailer          Mailer
	secret          string
	sessionTTL      time.Duration
	resetTTL        time.Duration
	emailConfigured bool
	now             func() time.Time
}

func NewService(store StoreAPI, mailer Mailer, secret string, sessionTTL, resetTTL time.Duration, emailConfigured bool) *Service {
	return &Service{
		store:           store,
		mailer:          mailer,
		secret:          secret,
		sessionTTL:      sessionTTL,
		resetTTL:        resetTTL,
		emailConfigured: emailConfigured,
		now:             time.Now,
	}
}

// WithClock overrides the service time source. Tests only.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) EmailConfigured() bool { return s.emailConfigured }

type AuthResult struct {
	Token   string
	Account Account
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail checks the local@domain.tld shape; it does not try to be a full
// RFC 5322 parser.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(strings.TrimSpace(email))
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *Service) Register(ctx context.Context, companyName, email, password string) (AuthResult, error) {
	if !ValidEmail(email) {
		return AuthResult{}, ErrInvalidEmail
	}

	hash, err := HashPassword(password)
	if err != nil {
		return AuthResult{}, err
	}

	account, err := s.store.Insert(ctx, strings.TrimSpace(companyName), NormalizeEmail(email), hash, RoleAdmin)
	if err != nil {
		return AuthResult{}, err
	}

	token, err := GenerateSessionToken(s.secret, account.ID, account.Email, account.Role, "", s.sessionTTL)
	if err != nil {
		return AuthResult{}, err
	}

	// Welcome mail is best-effort and must not delay or fail registration.
	go func(to, company string) {
		sendCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		body := fmt.Sprintf("Hello %s,\n\nYour performance management account is ready. You can now sign in with your email address.\n", company)
		if err := s.mailer.Send(sendCtx, to, "Welcome to the Performance Management System", body); err != nil {
			slog.Warn("welcome email failed", "to", to, "err", err)
		}
	}(account.Email, account.CompanyName)

	return AuthResult{Token: token, Account: account}, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (AuthResult, error) {
	creds, err := s.store.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if err == ErrAccountNotFound {
			return AuthResult{}, ErrInvalidCredentials
		}
		return AuthResult{}, err
	}

	if err := CheckPassword(creds.PasswordHash, password); err != nil {
		return AuthResult{}, ErrInvalidCredentials
	}

	now := s.now()
	if err := s.store.StampLastLogin(ctx, creds.ID, now); err != nil {
		return AuthResult{}, err
	}
	creds.LastLogin = &now

	token, err := GenerateSessionToken(s.secret, creds.ID, creds.Email, creds.Role, "", s.sessionTTL)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{Token: token, Account: creds.Account}, nil
}

type ForgotResult struct {
	Email string
	Mode  string
	// DebugOTP is populated only when delivery fell back to the console, so
	// local setups without SMTP can still complete the flow.
	DebugOTP string
}

// ForgotPassword always reports success for unknown emails to avoid account
// enumeration; the zero-value result signals "nothing was issued".
func (s *Service) ForgotPassword(ctx context.Context, email string) (ForgotResult, error) {
	creds, err := s.store.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if err == ErrAccountNotFound {
			slog.Info("forgot password requested for unknown email", "email", NormalizeEmail(email))
			return ForgotResult{}, nil
		}
		return ForgotResult{}, err
	}

	code, err := GenerateOTP()
	if err != nil {
		return ForgotResult{}, err
	}
	expires := s.now().Add(OTPTTL)

	if err := s.store.SaveOTP(ctx, creds.ID, code, expires); err != nil {
		return ForgotResult{}, err
	}

	result := ForgotResult{Email: creds.Email, Mode: DeliveryConsole, DebugOTP: code}
	if s.emailConfigured {
		body := fmt.Sprintf("Hello %s,\n\nYour one-time password for resetting your account password is: %s\n\nThe code expires in 15 minutes.\n", creds.CompanyName, code)
		if err := s.mailer.Send(ctx, creds.Email, "Password Reset OTP", body); err != nil {
			slog.Warn("otp email delivery failed, falling back to console", "to", creds.Email, "err", err)
			slog.Info("password reset otp", "email", creds.Email, "otp", code, "expires", expires)
			result.Mode = DeliveryConsoleFallback
		} else {
			result.Mode = DeliveryEmail
			result.DebugOTP = ""
		}
		return result, nil
	}

	// Console mode: the mailer implementation logs the message body.
	body := fmt.Sprintf("Password reset OTP: %s (expires %s)", code, expires.Format(time.RFC3339))
	if err := s.mailer.Send(ctx, creds.Email, "Password Reset OTP", body); err != nil {
		slog.Warn("console otp delivery failed", "err", err)
	}
	return result, nil
}

type VerifyOTPResult struct {
	ResetToken string
	UserID     string
	Email      string
}

func (s *Service) VerifyOTP(ctx context.Context, email, code string) (VerifyOTPResult, error) {
	creds, err := s.store.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if err == ErrAccountNotFound {
			return VerifyOTPResult{}, ErrInvalidOTP
		}
		return VerifyOTPResult{}, err
	}

	if creds.ResetOTP == "" || creds.ResetOTP != code {
		return VerifyOTPResult{}, ErrInvalidOTP
	}
	if creds.ResetOTPExpires == nil || !s.now().Before(*creds.ResetOTPExpires) {
		return VerifyOTPResult{}, ErrInvalidOTP
	}

	// The OTP stays valid until it expires or a reset consumes it.
	token, err := GenerateResetToken(s.secret, creds.ID, s.resetTTL)
	if err != nil {
		return VerifyOTPResult{}, err
	}
	return VerifyOTPResult{ResetToken: token, UserID: creds.ID, Email: creds.Email}, nil
}

func (s *Service) ResetPassword(ctx context.Context, resetToken, newPassword, accountID string) error {
	claims, err := ParseResetToken(s.secret, resetToken)
	if err != nil {
		return ErrInvalidResetToken
	}
	if claims.UserID != accountID {
		return ErrInvalidResetToken
	}

	account, err := s.store.FindCredentialsByID(ctx, accountID)
	if err != nil {
		return err
	}
	// A reset consumes the OTP; once cleared, even an unexpired reset token
	// cannot change the password again.
	if account.ResetOTP == "" {
		return ErrInvalidResetToken
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.store.UpdatePasswordClearOTP(ctx, account.ID, hash); err != nil {
		return err
	}
	slog.Info("password reset successful", "email", account.Email)
	return nil
}

type ValidateResult struct {
	Valid   bool
	Message string
	Account Account
}

// ValidateToken never fails; any problem yields Valid=false with a reason.
func (s *Service) ValidateToken(ctx context.Context, token string) ValidateResult {
	if token == "" {
		return ValidateResult{Message: "No token provided"}
	}
	claims, err := ParseSessionToken(s.secret, token)
	if err != nil {
		return ValidateResult{Message: "Invalid or expired token"}
	}
	account, err := s.store.FindByID(ctx, claims.UserID)
	if err != nil {
		return ValidateResult{Message: "User not found"}
	}
	return ValidateResult{Valid: true, Account: account}
}

func (s *Service) Profile(ctx context.Context, accountID string) (Account, error) {
	return s.store.FindByID(ctx, accountID)
}
