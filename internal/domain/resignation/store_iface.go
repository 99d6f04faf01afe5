package resignation

import (
	"context"
	"time"
)

// Lookup keys accepted by the employee login path.
const (
	ByEmail      = "email"
	ByWorkEmail  = "work_email"
	ByEmployeeID = "employee_id"
)

type StoreAPI interface {
	EmployeeIDExists(ctx context.Context, employeeID string) (bool, error)
	Insert(ctx context.Context, rec Record, passwordHash string) (Record, error)
	List(ctx context.Context, f Filter) ([]Record, error)
	GetByID(ctx context.Context, id string) (Record, error)
	GetByEmployeeID(ctx context.Context, employeeID string) (Record, error)
	GetByEmail(ctx context.Context, email string) (Record, error)
	Save(ctx context.Context, rec Record) (Record, error)
	Delete(ctx context.Context, id string) error
	FindLoginState(ctx context.Context, by, value string) (LoginState, error)
	SaveLoginFailure(ctx context.Context, recordID string, attempts int, lockUntil *time.Time) error
	SaveLoginSuccess(ctx context.Context, recordID string, at time.Time) error
	UpdatePassword(ctx context.Context, recordID, passwordHash string) error
	Stats(ctx context.Context) (Stats, error)
	EmployeeNames(ctx context.Context) ([]NameEntry, error)
	AllEmployeeIDs(ctx context.Context) ([]string, error)
	LatestEmployeeID(ctx context.Context) (string, error)
}

type NameEntry struct {
	EmployeeID string `json:"employeeId"`
	FullName   string `json:"fullName"`
}
