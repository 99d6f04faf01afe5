package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

const OTPTTL = 15 * time.Minute

// GenerateOTP returns a 6-digit numeric one-time code.
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
