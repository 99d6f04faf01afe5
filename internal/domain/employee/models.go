package employee

import (
	"errors"
	"time"
)

const (
	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"

	QueryPending    = "Pending"
	QueryInProgress = "In Progress"
	QueryResolved   = "Resolved"

	FeedbackTypeDefault = "360 Feedback"
	FeedbackSubmitted   = "Submitted"
)

var Priorities = []string{PriorityLow, PriorityMedium, PriorityHigh}

var FeedbackTypes = []string{FeedbackTypeDefault, "Manager Feedback", "General"}

var (
	ErrGoalNotFound        = errors.New("goal not found")
	ErrTextRequired        = errors.New("text is required")
	ErrInvalidPriority     = errors.New("priority must be one of Low, Medium, High")
	ErrInvalidFeedbackType = errors.New("feedback type must be one of 360 Feedback, Manager Feedback, General")
)

func ValidPriority(p string) bool {
	for _, v := range Priorities {
		if v == p {
			return true
		}
	}
	return false
}

func ValidFeedbackType(t string) bool {
	for _, v := range FeedbackTypes {
		if v == t {
			return true
		}
	}
	return false
}

type Goal struct {
	ID         string    `json:"id"`
	EmployeeID string    `json:"employeeId"`
	Text       string    `json:"text"`
	Completed  bool      `json:"completed"`
	Priority   string    `json:"priority"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type Query struct {
	ID          string    `json:"id"`
	EmployeeID  string    `json:"employeeId"`
	QueryText   string    `json:"queryText"`
	Status      string    `json:"status"`
	SubmittedAt time.Time `json:"submittedAt"`
}

type Feedback struct {
	ID           string    `json:"id"`
	EmployeeID   string    `json:"employeeId"`
	FeedbackText string    `json:"feedbackText"`
	Type         string    `json:"type"`
	Status       string    `json:"status"`
	SubmittedAt  time.Time `json:"submittedAt"`
}

type GoalStats struct {
	Total          int `json:"total"`
	Completed      int `json:"completed"`
	Pending        int `json:"pending"`
	CompletionRate int `json:"completionRate"`
}

type DashboardStats struct {
	GoalStats GoalStats `json:"goalStats"`
}
