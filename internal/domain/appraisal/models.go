package appraisal

import (
	"errors"
	"time"
)

const (
	StatusDraft     = "draft"
	StatusSubmitted = "submitted"
	StatusReviewed  = "reviewed"
	StatusApproved  = "approved"
)

var (
	ErrNotFound         = errors.New("self appraisal not found")
	ErrRatingNotFound   = errors.New("rating not found")
	ErrFeedbackNotFound = errors.New("feedback card not found")
	ErrAlreadySubmitted = errors.New("appraisal already submitted")
	ErrNoRatings        = errors.New("cannot submit without ratings")
	ErrInvalidWeightage = errors.New("weightage must be between 0 and 100")
	ErrInvalidRating    = errors.New("rating must be between 1 and 5")
)

// Rating is owned by its parent appraisal; it has no identity outside it and
// is only ever persisted through the parent's save.
type Rating struct {
	ID        string    `json:"id"`
	Criteria  string    `json:"criteria"`
	Weightage float64   `json:"weightage"`
	Rating    float64   `json:"rating"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type FeedbackCard struct {
	ID          string    `json:"id"`
	Feedback    string    `json:"feedback"`
	Development string    `json:"development"`
	Strengths   string    `json:"strengths"`
	Rating      float64   `json:"rating"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type SelfAppraisal struct {
	ID               string         `json:"id"`
	UserID           string         `json:"userId"`
	UserName         string         `json:"userName"`
	EmployeeID       string         `json:"employeeId"`
	Employee         string         `json:"employee"`
	AppraisalPeriod  string         `json:"appraisalPeriod"`
	Ratings          []Rating       `json:"ratings"`
	FeedbackCards    []FeedbackCard `json:"feedbackCards"`
	Status           string         `json:"status"`
	OverallScore     float64        `json:"overallScore"`
	ReviewerComments string         `json:"reviewerComments"`
	SubmittedAt      *time.Time     `json:"submittedAt,omitempty"`
	CreatedAt        time.Time      `json:"createdAt"`
	UpdatedAt        time.Time      `json:"updatedAt"`
}

type Filter struct {
	Status     string
	EmployeeID string
	Employee   string
	Page       int
	Limit      int
}

type Page struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

type Statistics struct {
	TotalAppraisals int     `json:"totalAppraisals"`
	SubmittedCount  int     `json:"submittedCount"`
	DraftCount      int     `json:"draftCount"`
	AverageScore    float64 `json:"averageScore"`
}
