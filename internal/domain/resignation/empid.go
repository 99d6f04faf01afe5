package resignation

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
	"time"
)

const employeeIDMaxAttempts = 10

var EmployeeIDPattern = regexp.MustCompile(`^EMP-RES-\d{4}-\d{2}-\d{4}$`)

// FormatEmployeeID renders EMP-RES-<year>-<month>-<4-digit random part>.
func FormatEmployeeID(t time.Time, random int) string {
	return fmt.Sprintf("EMP-RES-%04d-%02d-%04d", t.Year(), int(t.Month()), random)
}

func randomSuffix() (int, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(9000))
	if err != nil {
		return 0, err
	}
	return int(n.Int64()) + 1000, nil
}

// GenerateEmployeeID draws candidate IDs until one is unused, giving up after
// ten attempts. exists is the collision check against stored records.
func GenerateEmployeeID(ctx context.Context, now time.Time, exists func(context.Context, string) (bool, error)) (string, error) {
	for attempt := 0; attempt < employeeIDMaxAttempts; attempt++ {
		suffix, err := randomSuffix()
		if err != nil {
			return "", err
		}
		candidate := FormatEmployeeID(now, suffix)
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", ErrEmployeeIDExhaust
}
