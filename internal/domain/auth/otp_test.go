package auth

import (
	"regexp"
	"testing"
)

var sixDigits = regexp.MustCompile(`^\d{6}$`)

func TestGenerateOTPFormat(t *testing.T) {
	for i := 0; i < 200; i++ {
		otp, err := GenerateOTP()
		if err != nil {
			t.Fatalf("generate failed: %v", err)
		}
		if !sixDigits.MatchString(otp) {
			t.Fatalf("otp %q is not six digits", otp)
		}
		if otp[0] == '0' {
			t.Fatalf("otp %q has a leading zero", otp)
		}
	}
}
