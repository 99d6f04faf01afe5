package auth

import "time"

const RoleAdmin = "admin"

// Account is the admin/company login identity. The password hash and any
// pending reset OTP never leave the domain package.
type Account struct {
	ID          string     `json:"id"`
	CompanyName string     `json:"companyName"`
	Email       string     `json:"email"`
	Role        string     `json:"role"`
	LastLogin   *time.Time `json:"lastLogin,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// Credentials carries the sensitive columns alongside the public projection
// for login and OTP verification paths.
type Credentials struct {
	Account
	PasswordHash    string
	ResetOTP        string
	ResetOTPExpires *time.Time
}
