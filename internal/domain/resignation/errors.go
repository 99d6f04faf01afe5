package resignation

import "errors"

var (
	ErrNotFound           = errors.New("resignation record not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountLocked      = errors.New("account is locked, try again later")
	ErrEmployeeIDExhaust  = errors.New("could not generate unique employee ID after multiple attempts")
)

// ConflictError names the unique field a duplicate write collided on.
type ConflictError struct {
	Field string
}

func (e *ConflictError) Error() string {
	return e.Field + " already exists"
}
