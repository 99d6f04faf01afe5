package resignation

import "time"

const (
	StatusPending   = "Pending"
	StatusProcessed = "Processed"
	StatusRejected  = "Rejected"
)

var Statuses = []string{StatusPending, StatusProcessed, StatusRejected}

// Record is both the HR resignation record and the employee login identity.
// The password hash and lockout counters are kept off the JSON projection.
type Record struct {
	ID                string     `json:"id"`
	EmployeeID        string     `json:"employeeId"`
	FullName          string     `json:"fullName"`
	BirthDate         *time.Time `json:"birthDate,omitempty"`
	Email             string     `json:"email"`
	WorkEmail         string     `json:"workEmail"`
	Phone             string     `json:"phone"`
	EmergencyContact  string     `json:"emergencyContact"`
	HireDate          time.Time  `json:"hireDate"`
	Department        string     `json:"department"`
	ReportingManager  string     `json:"reportingManager"`
	Address           string     `json:"address"`
	CurrentAddress    string     `json:"currentAddress"`
	Pincode           string     `json:"pincode"`
	State             string     `json:"state"`
	City              string     `json:"city"`
	PanNo             string     `json:"panNo"`
	Status            string     `json:"status"`
	ResignationDate   time.Time  `json:"resignationDate"`
	LastWorkingDay    *time.Time `json:"lastWorkingDay,omitempty"`
	ResignationReason string     `json:"resignationReason"`
	IsActive          bool       `json:"isActive"`
	LastLogin         *time.Time `json:"lastLogin,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

// LoginState is the persisted lockout state machine for one record.
type LoginState struct {
	RecordID      string
	EmployeeID    string
	PasswordHash  string
	LoginAttempts int
	LockUntil     *time.Time
}

type Stats struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Processed int `json:"processed"`
	Rejected  int `json:"rejected"`
}

type Filter struct {
	Status     string
	Department string
	FullName   string
	Search     string
}
