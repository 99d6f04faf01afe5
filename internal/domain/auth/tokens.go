package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// TokenTypeEmployee marks session tokens issued through the resignation
	// login path; admin session tokens carry no type.
	TokenTypeEmployee = "employee"

	// PurposePasswordReset discriminates reset tokens from session tokens.
	// The two kinds are never accepted interchangeably.
	PurposePasswordReset = "password_reset"
)

type SessionClaims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role,omitempty"`
	Type   string `json:"type,omitempty"`
	// Purpose is never set on session tokens; it exists so a reset token
	// presented as a session token is detected and rejected.
	Purpose string `json:"purpose,omitempty"`
	jwt.RegisteredClaims
}

type ResetClaims struct {
	UserID  string `json:"userId"`
	Purpose string `json:"purpose"`
	jwt.RegisteredClaims
}

func GenerateSessionToken(secret, userID, email, role, tokenType string, ttl time.Duration) (string, error) {
	claims := SessionClaims{
		UserID: userID,
		Email:  email,
		Role:   role,
		Type:   tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func GenerateResetToken(secret, userID string, ttl time.Duration) (string, error) {
	claims := ResetClaims{
		UserID:  userID,
		Purpose: PurposePasswordReset,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ParseSessionToken(secret, tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Purpose != "" {
		return nil, errors.New("not a session token")
	}
	return claims, nil
}

func ParseResetToken(secret, tokenString string) (*ResetClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &ResetClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*ResetClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Purpose != PurposePasswordReset {
		return nil, errors.New("not a reset token")
	}
	return claims, nil
}
