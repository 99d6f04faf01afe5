package kra

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("KRA not found")

// KRA keeps weightage, completion and score as decimal strings, matching the
// import sheets these records originate from.
type KRA struct {
	ID             string    `json:"id"`
	Template       string    `json:"template"`
	ManualRate     bool      `json:"manualRate"`
	KRA            string    `json:"kra"`
	Weightage      string    `json:"weightage"`
	GoalCompletion string    `json:"goalCompletion"`
	GoalScore      string    `json:"goalScore"`
	Editable       bool      `json:"editable"`
	Employee       string    `json:"employee"`
	EmployeeID     string    `json:"employeeId"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
