package resignation

import (
	"testing"
	"time"
)

func TestNextFailedLoginCountsUpToLock(t *testing.T) {
	now := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	state := LoginState{}

	for i := 1; i <= 4; i++ {
		attempts, lockUntil := NextFailedLogin(state, now)
		if attempts != i {
			t.Fatalf("attempt %d: counter = %d", i, attempts)
		}
		if lockUntil != nil {
			t.Fatalf("attempt %d: locked too early", i)
		}
		state.LoginAttempts = attempts
		state.LockUntil = lockUntil
	}

	attempts, lockUntil := NextFailedLogin(state, now)
	if attempts != 5 {
		t.Fatalf("fifth failure: counter = %d, want 5", attempts)
	}
	if lockUntil == nil {
		t.Fatal("fifth failure should lock the account")
	}
	if want := now.Add(2 * time.Hour); !lockUntil.Equal(want) {
		t.Errorf("lockUntil = %v, want %v", lockUntil, want)
	}
}

func TestIsLockedWindow(t *testing.T) {
	now := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	deadline := now.Add(2 * time.Hour)
	state := LoginState{LoginAttempts: 5, LockUntil: &deadline}

	if !IsLocked(state, now) {
		t.Error("expected lock to be active at lock time")
	}
	if !IsLocked(state, now.Add(2*time.Hour-time.Second)) {
		t.Error("expected lock to be active just before expiry")
	}
	if IsLocked(state, deadline) {
		t.Error("expected lock to be inactive at the deadline")
	}
	if IsLocked(state, deadline.Add(time.Minute)) {
		t.Error("expected lock to be inactive after expiry")
	}
}

func TestExpiredLockRestartsCounter(t *testing.T) {
	lockedAt := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	deadline := lockedAt.Add(2 * time.Hour)
	state := LoginState{LoginAttempts: 5, LockUntil: &deadline}

	attempts, lockUntil := NextFailedLogin(state, deadline.Add(time.Minute))
	if attempts != 1 {
		t.Errorf("counter after expired lock = %d, want 1", attempts)
	}
	if lockUntil != nil {
		t.Error("expired lock should be cleared, not extended")
	}
}
