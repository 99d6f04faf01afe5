package resignation

import "time"

const (
	maxLoginAttempts = 5
	lockDuration     = 2 * time.Hour
)

// IsLocked reports whether the lockout window is still active. Expired locks
// are cleared lazily by the next failed attempt, not proactively.
func IsLocked(state LoginState, now time.Time) bool {
	return state.LockUntil != nil && now.Before(*state.LockUntil)
}

// NextFailedLogin returns the attempt counter and lock deadline after one more
// failed password check at instant now.
func NextFailedLogin(state LoginState, now time.Time) (int, *time.Time) {
	// A previous lock that has expired restarts the counter at 1.
	if state.LockUntil != nil && !now.Before(*state.LockUntil) {
		return 1, nil
	}

	attempts := state.LoginAttempts + 1
	lockUntil := state.LockUntil
	if attempts >= maxLoginAttempts && !IsLocked(state, now) {
		deadline := now.Add(lockDuration)
		lockUntil = &deadline
	}
	return attempts, lockUntil
}
