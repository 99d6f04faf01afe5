package employee

import (
	"context"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	store StoreAPI
	now   func() time.Time
}

func NewService(store StoreAPI) *Service {
	return &Service{store: store, now: time.Now}
}

// WithClock replaces the service clock, for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) Goals(ctx context.Context, employeeID string) ([]Goal, error) {
	return s.store.ListGoals(ctx, employeeID)
}

func (s *Service) CreateGoal(ctx context.Context, employeeID, text string) (Goal, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Goal{}, ErrTextRequired
	}

	now := s.now().UTC()
	g := Goal{
		ID:         uuid.NewString(),
		EmployeeID: employeeID,
		Text:       text,
		Priority:   PriorityMedium,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.store.InsertGoal(ctx, &g); err != nil {
		return Goal{}, err
	}
	return g, nil
}

type GoalPatch struct {
	Text      *string `json:"text"`
	Completed *bool   `json:"completed"`
	Priority  *string `json:"priority"`
}

func (s *Service) UpdateGoal(ctx context.Context, goalID string, in GoalPatch) (Goal, error) {
	g, err := s.store.GetGoal(ctx, goalID)
	if err != nil {
		return Goal{}, err
	}

	if in.Text != nil {
		text := strings.TrimSpace(*in.Text)
		if text == "" {
			return Goal{}, ErrTextRequired
		}
		g.Text = text
	}
	if in.Completed != nil {
		g.Completed = *in.Completed
	}
	if in.Priority != nil {
		if !ValidPriority(*in.Priority) {
			return Goal{}, ErrInvalidPriority
		}
		g.Priority = *in.Priority
	}
	g.UpdatedAt = s.now().UTC()

	if err := s.store.SaveGoal(ctx, &g); err != nil {
		return Goal{}, err
	}
	return g, nil
}

func (s *Service) ToggleGoalCompletion(ctx context.Context, goalID string, completed bool) (Goal, error) {
	g, err := s.store.GetGoal(ctx, goalID)
	if err != nil {
		return Goal{}, err
	}

	g.Completed = completed
	g.UpdatedAt = s.now().UTC()

	if err := s.store.SaveGoal(ctx, &g); err != nil {
		return Goal{}, err
	}
	return g, nil
}

func (s *Service) DeleteGoal(ctx context.Context, goalID string) error {
	return s.store.DeleteGoal(ctx, goalID)
}

func (s *Service) Queries(ctx context.Context, employeeID string) ([]Query, error) {
	return s.store.ListQueries(ctx, employeeID)
}

func (s *Service) CreateQuery(ctx context.Context, employeeID, queryText string) (Query, error) {
	queryText = strings.TrimSpace(queryText)
	if queryText == "" {
		return Query{}, ErrTextRequired
	}

	q := Query{
		ID:          uuid.NewString(),
		EmployeeID:  employeeID,
		QueryText:   queryText,
		Status:      QueryPending,
		SubmittedAt: s.now().UTC(),
	}
	if err := s.store.InsertQuery(ctx, &q); err != nil {
		return Query{}, err
	}
	return q, nil
}

func (s *Service) FeedbackList(ctx context.Context, employeeID string) ([]Feedback, error) {
	return s.store.ListFeedback(ctx, employeeID)
}

func (s *Service) SubmitFeedback(ctx context.Context, employeeID, feedbackText string) (Feedback, error) {
	feedbackText = strings.TrimSpace(feedbackText)
	if feedbackText == "" {
		return Feedback{}, ErrTextRequired
	}

	f := Feedback{
		ID:           uuid.NewString(),
		EmployeeID:   employeeID,
		FeedbackText: feedbackText,
		Type:         FeedbackTypeDefault,
		Status:       FeedbackSubmitted,
		SubmittedAt:  s.now().UTC(),
	}
	if err := s.store.InsertFeedback(ctx, &f); err != nil {
		return Feedback{}, err
	}
	return f, nil
}

func (s *Service) Dashboard(ctx context.Context, employeeID string) (DashboardStats, error) {
	total, completed, err := s.store.GoalStats(ctx, employeeID)
	if err != nil {
		return DashboardStats{}, err
	}

	rate := 0
	if total > 0 {
		rate = int(math.Round(float64(completed) / float64(total) * 100))
	}
	return DashboardStats{GoalStats: GoalStats{
		Total:          total,
		Completed:      completed,
		Pending:        total - completed,
		CompletionRate: rate,
	}}, nil
}

// Offline sync: records buffered on the client while disconnected. Each item
// is inserted unconditionally, so replaying the same batch creates duplicates.
// Clients that need exactly-once must not resend acknowledged batches.

type SyncError struct {
	Index int    `json:"index"`
	Error string `json:"error"`
}

type SyncResult struct {
	Created int         `json:"created"`
	Updated int         `json:"updated"`
	Failed  int         `json:"failed"`
	Errors  []SyncError `json:"errors,omitempty"`
}

type OfflineGoal struct {
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	Priority  string `json:"priority"`
}

func (s *Service) SyncGoals(ctx context.Context, employeeID string, goals []OfflineGoal) SyncResult {
	res := SyncResult{Errors: []SyncError{}}
	now := s.now().UTC()

	for i, og := range goals {
		text := strings.TrimSpace(og.Text)
		if text == "" {
			res.Failed++
			res.Errors = append(res.Errors, SyncError{Index: i, Error: "missing goal text"})
			continue
		}

		priority := og.Priority
		if priority == "" {
			priority = PriorityMedium
		}
		if !ValidPriority(priority) {
			res.Failed++
			res.Errors = append(res.Errors, SyncError{Index: i, Error: ErrInvalidPriority.Error()})
			continue
		}
		g := Goal{
			ID:         uuid.NewString(),
			EmployeeID: employeeID,
			Text:       text,
			Completed:  og.Completed,
			Priority:   priority,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := s.store.InsertGoal(ctx, &g); err != nil {
			res.Failed++
			res.Errors = append(res.Errors, SyncError{Index: i, Error: err.Error()})
			slog.Warn("offline goal sync failed", "employee_id", employeeID, "index", i, "error", err)
			continue
		}
		res.Created++
	}
	return res
}

type OfflineQuery struct {
	Query       string     `json:"query"`
	SubmittedAt *time.Time `json:"submittedAt"`
}

func (s *Service) SyncQueries(ctx context.Context, employeeID string, queries []OfflineQuery) SyncResult {
	var res SyncResult

	for i, oq := range queries {
		text := strings.TrimSpace(oq.Query)
		if text == "" {
			res.Failed++
			continue
		}

		submittedAt := s.now().UTC()
		if oq.SubmittedAt != nil {
			submittedAt = *oq.SubmittedAt
		}
		q := Query{
			ID:          uuid.NewString(),
			EmployeeID:  employeeID,
			QueryText:   text,
			Status:      QueryPending,
			SubmittedAt: submittedAt,
		}
		if err := s.store.InsertQuery(ctx, &q); err != nil {
			res.Failed++
			slog.Warn("offline query sync failed", "employee_id", employeeID, "index", i, "error", err)
			continue
		}
		res.Created++
	}
	return res
}

type OfflineFeedback struct {
	Feedback    string     `json:"feedback"`
	Type        string     `json:"type"`
	SubmittedAt *time.Time `json:"submittedAt"`
}

func (s *Service) SyncFeedback(ctx context.Context, employeeID string, feedback []OfflineFeedback) SyncResult {
	var res SyncResult

	for i, of := range feedback {
		text := strings.TrimSpace(of.Feedback)
		if text == "" {
			res.Failed++
			continue
		}

		fbType := of.Type
		if fbType == "" {
			fbType = FeedbackTypeDefault
		}
		if !ValidFeedbackType(fbType) {
			res.Failed++
			slog.Warn("offline feedback sync rejected", "employee_id", employeeID, "index", i, "error", ErrInvalidFeedbackType)
			continue
		}
		submittedAt := s.now().UTC()
		if of.SubmittedAt != nil {
			submittedAt = *of.SubmittedAt
		}
		f := Feedback{
			ID:           uuid.NewString(),
			EmployeeID:   employeeID,
			FeedbackText: text,
			Type:         fbType,
			Status:       FeedbackSubmitted,
			SubmittedAt:  submittedAt,
		}
		if err := s.store.InsertFeedback(ctx, &f); err != nil {
			res.Failed++
			slog.Warn("offline feedback sync failed", "employee_id", employeeID, "index", i, "error", err)
			continue
		}
		res.Created++
	}
	return res
}
