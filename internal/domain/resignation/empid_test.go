package resignation

import (
	"context"
	"testing"
	"time"
)

func TestFormatEmployeeID(t *testing.T) {
	at := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	got := FormatEmployeeID(at, 4821)
	if got != "EMP-RES-2025-03-4821" {
		t.Errorf("got %q, want EMP-RES-2025-03-4821", got)
	}
	if !EmployeeIDPattern.MatchString(got) {
		t.Errorf("%q does not match the employee id pattern", got)
	}
}

func TestGenerateEmployeeIDMatchesPattern(t *testing.T) {
	at := time.Date(2025, 11, 1, 0, 0, 0, 0, time.UTC)
	id, err := GenerateEmployeeID(context.Background(), at,
		func(context.Context, string) (bool, error) { return false, nil })
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if !EmployeeIDPattern.MatchString(id) {
		t.Errorf("%q does not match the employee id pattern", id)
	}
}

func TestGenerateEmployeeIDRetriesOnCollision(t *testing.T) {
	at := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	calls := 0
	id, err := GenerateEmployeeID(context.Background(), at,
		func(context.Context, string) (bool, error) {
			calls++
			return calls < 3, nil
		})
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if calls != 3 {
		t.Errorf("exists called %d times, want 3", calls)
	}
	if id == "" {
		t.Error("expected an id after retries")
	}
}

func TestGenerateEmployeeIDExhaustsRetries(t *testing.T) {
	at := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	calls := 0
	_, err := GenerateEmployeeID(context.Background(), at,
		func(context.Context, string) (bool, error) {
			calls++
			return true, nil
		})
	if err != ErrEmployeeIDExhaust {
		t.Fatalf("expected ErrEmployeeIDExhaust, got %v", err)
	}
	if calls != 10 {
		t.Errorf("exists called %d times, want 10", calls)
	}
}

func TestGenerateEmployeeIDUniqueness(t *testing.T) {
	at := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	seen := map[string]bool{}
	exists := func(_ context.Context, id string) (bool, error) {
		return seen[id], nil
	}

	for i := 0; i < 1000; i++ {
		id, err := GenerateEmployeeID(context.Background(), at, exists)
		if err != nil {
			t.Fatalf("generation %d failed: %v", i, err)
		}
		if seen[id] {
			t.Fatalf("duplicate id %q at iteration %d", id, i)
		}
		if !EmployeeIDPattern.MatchString(id) {
			t.Fatalf("%q does not match the employee id pattern", id)
		}
		seen[id] = true
	}
}
