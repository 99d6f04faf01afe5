package employee

import (
	"context"
	"testing"
	"time"
)

type fakeEmployeeStore struct {
	goals    map[string]Goal
	queries  []Query
	feedback []Feedback
}

func newFakeEmployeeStore() *fakeEmployeeStore {
	return &fakeEmployeeStore{goals: map[string]Goal{}}
}

func (f *fakeEmployeeStore) InsertGoal(_ context.Context, g *Goal) error {
	f.goals[g.ID] = *g
	return nil
}

func (f *fakeEmployeeStore) ListGoals(_ context.Context, employeeID string) ([]Goal, error) {
	var out []Goal
	for _, g := range f.goals {
		if g.EmployeeID == employeeID {
			out = append(out, g)
		}
	}
	return out, nil
}

func (f *fakeEmployeeStore) GetGoal(_ context.Context, id string) (Goal, error) {
	g, ok := f.goals[id]
	if !ok {
		return Goal{}, ErrGoalNotFound
	}
	return g, nil
}

func (f *fakeEmployeeStore) SaveGoal(_ context.Context, g *Goal) error {
	if _, ok := f.goals[g.ID]; !ok {
		return ErrGoalNotFound
	}
	f.goals[g.ID] = *g
	return nil
}

func (f *fakeEmployeeStore) DeleteGoal(_ context.Context, id string) error {
	if _, ok := f.goals[id]; !ok {
		return ErrGoalNotFound
	}
	delete(f.goals, id)
	return nil
}

func (f *fakeEmployeeStore) GoalStats(_ context.Context, employeeID string) (int, int, error) {
	total, completed := 0, 0
	for _, g := range f.goals {
		if g.EmployeeID != employeeID {
			continue
		}
		total++
		if g.Completed {
			completed++
		}
	}
	return total, completed, nil
}

func (f *fakeEmployeeStore) InsertQuery(_ context.Context, q *Query) error {
	f.queries = append(f.queries, *q)
	return nil
}

func (f *fakeEmployeeStore) ListQueries(_ context.Context, employeeID string) ([]Query, error) {
	var out []Query
	for _, q := range f.queries {
		if q.EmployeeID == employeeID {
			out = append(out, q)
		}
	}
	return out, nil
}

func (f *fakeEmployeeStore) InsertFeedback(_ context.Context, fb *Feedback) error {
	f.feedback = append(f.feedback, *fb)
	return nil
}

func (f *fakeEmployeeStore) ListFeedback(_ context.Context, employeeID string) ([]Feedback, error) {
	var out []Feedback
	for _, fb := range f.feedback {
		if fb.EmployeeID == employeeID {
			out = append(out, fb)
		}
	}
	return out, nil
}

func TestCreateGoalRequiresText(t *testing.T) {
	svc := NewService(newFakeEmployeeStore())

	if _, err := svc.CreateGoal(context.Background(), "EMP-1", "   "); err != ErrTextRequired {
		t.Fatalf("blank text: got %v, want ErrTextRequired", err)
	}

	g, err := svc.CreateGoal(context.Background(), "EMP-1", "  finish onboarding docs  ")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if g.Text != "finish onboarding docs" {
		t.Errorf("text = %q, want trimmed", g.Text)
	}
	if g.Priority != PriorityMedium {
		t.Errorf("priority = %q, want %q", g.Priority, PriorityMedium)
	}
}

func TestUpdateGoalRejectsUnknownPriority(t *testing.T) {
	store := newFakeEmployeeStore()
	svc := NewService(store)
	ctx := context.Background()

	g, err := svc.CreateGoal(ctx, "EMP-1", "finish onboarding docs")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	bad := "Urgent"
	if _, err := svc.UpdateGoal(ctx, g.ID, GoalPatch{Priority: &bad}); err != ErrInvalidPriority {
		t.Fatalf("got %v, want ErrInvalidPriority", err)
	}
	if stored := store.goals[g.ID]; stored.Priority != PriorityMedium {
		t.Errorf("stored priority = %q, rejected update must not persist", stored.Priority)
	}

	high := PriorityHigh
	updated, err := svc.UpdateGoal(ctx, g.ID, GoalPatch{Priority: &high})
	if err != nil {
		t.Fatalf("valid priority rejected: %v", err)
	}
	if updated.Priority != PriorityHigh {
		t.Errorf("priority = %q, want %q", updated.Priority, PriorityHigh)
	}
}

func TestSyncGoalsSkipsBlankAndContinues(t *testing.T) {
	store := newFakeEmployeeStore()
	svc := NewService(store)

	res := svc.SyncGoals(context.Background(), "EMP-1", []OfflineGoal{
		{Text: "write Q2 report", Completed: true},
		{Text: "   "},
		{Text: "prepare demo", Priority: PriorityHigh},
	})

	if res.Created != 2 || res.Failed != 1 || res.Updated != 0 {
		t.Fatalf("result = %+v, want 2 created / 1 failed", res)
	}
	if len(res.Errors) != 1 || res.Errors[0].Index != 1 {
		t.Fatalf("errors = %+v, want one error at index 1", res.Errors)
	}
	if len(store.goals) != 2 {
		t.Errorf("stored goals = %d, want 2", len(store.goals))
	}
}

func TestSyncGoalsRejectsUnknownPriority(t *testing.T) {
	store := newFakeEmployeeStore()
	svc := NewService(store)

	res := svc.SyncGoals(context.Background(), "EMP-1", []OfflineGoal{
		{Text: "write Q2 report", Priority: "Whenever"},
		{Text: "prepare demo"},
	})

	if res.Created != 1 || res.Failed != 1 {
		t.Fatalf("result = %+v, want 1 created / 1 failed", res)
	}
	if len(res.Errors) != 1 || res.Errors[0].Index != 0 {
		t.Fatalf("errors = %+v, want one error at index 0", res.Errors)
	}
	if len(store.goals) != 1 {
		t.Errorf("stored goals = %d, want 1", len(store.goals))
	}
}

func TestSyncGoalsReplayCreatesDuplicates(t *testing.T) {
	store := newFakeEmployeeStore()
	svc := NewService(store)
	batch := []OfflineGoal{{Text: "write Q2 report"}, {Text: "prepare demo"}}

	first := svc.SyncGoals(context.Background(), "EMP-1", batch)
	second := svc.SyncGoals(context.Background(), "EMP-1", batch)

	if first.Created != 2 || second.Created != 2 {
		t.Fatalf("created = %d then %d, want 2 each", first.Created, second.Created)
	}
	if len(store.goals) != 4 {
		t.Errorf("stored goals = %d, replay should duplicate to 4", len(store.goals))
	}
}

func TestSyncQueriesKeepsClientTimestamp(t *testing.T) {
	store := newFakeEmployeeStore()
	at := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	svc := NewService(store).WithClock(func() time.Time { return at })
	offline := time.Date(2025, 4, 28, 16, 30, 0, 0, time.UTC)

	res := svc.SyncQueries(context.Background(), "EMP-1", []OfflineQuery{
		{Query: "parking pass renewal", SubmittedAt: &offline},
		{Query: "payslip missing"},
		{Query: ""},
	})

	if res.Created != 2 || res.Failed != 1 {
		t.Fatalf("result = %+v, want 2 created / 1 failed", res)
	}
	if !store.queries[0].SubmittedAt.Equal(offline) {
		t.Errorf("first query submittedAt = %v, want client timestamp %v", store.queries[0].SubmittedAt, offline)
	}
	if !store.queries[1].SubmittedAt.Equal(at) {
		t.Errorf("second query submittedAt = %v, want server clock %v", store.queries[1].SubmittedAt, at)
	}
	if store.queries[0].Status != QueryPending {
		t.Errorf("status = %q, want %q", store.queries[0].Status, QueryPending)
	}
}

func TestSyncFeedbackDefaultsType(t *testing.T) {
	store := newFakeEmployeeStore()
	svc := NewService(store)

	res := svc.SyncFeedback(context.Background(), "EMP-1", []OfflineFeedback{
		{Feedback: "great sprint retro"},
		{Feedback: "manager 1:1s help a lot", Type: "Manager Feedback"},
		{Feedback: "  "},
		{Feedback: "anonymous rant", Type: "Anonymous"},
	})

	if res.Created != 2 || res.Failed != 2 {
		t.Fatalf("result = %+v, want 2 created / 2 failed", res)
	}
	if store.feedback[0].Type != FeedbackTypeDefault {
		t.Errorf("type = %q, want default %q", store.feedback[0].Type, FeedbackTypeDefault)
	}
	if store.feedback[1].Type != "Manager Feedback" {
		t.Errorf("type = %q, want client value kept", store.feedback[1].Type)
	}
}

func TestDashboardRoundsCompletionRate(t *testing.T) {
	store := newFakeEmployeeStore()
	svc := NewService(store)
	ctx := context.Background()

	texts := []string{"a", "b", "c"}
	var ids []string
	for _, text := range texts {
		g, err := svc.CreateGoal(ctx, "EMP-1", text)
		if err != nil {
			t.Fatalf("create failed: %v", err)
		}
		ids = append(ids, g.ID)
	}
	if _, err := svc.ToggleGoalCompletion(ctx, ids[0], true); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}

	stats, err := svc.Dashboard(ctx, "EMP-1")
	if err != nil {
		t.Fatalf("dashboard failed: %v", err)
	}
	gs := stats.GoalStats
	if gs.Total != 3 || gs.Completed != 1 || gs.Pending != 2 {
		t.Fatalf("stats = %+v, want 3/1/2", gs)
	}
	// 1/3 is 33.33..., rounded to the nearest whole percent.
	if gs.CompletionRate != 33 {
		t.Errorf("completionRate = %d, want 33", gs.CompletionRate)
	}
}

func TestDashboardEmptyHasZeroRate(t *testing.T) {
	svc := NewService(newFakeEmployeeStore())

	stats, err := svc.Dashboard(context.Background(), "EMP-9")
	if err != nil {
		t.Fatalf("dashboard failed: %v", err)
	}
	if stats.GoalStats.CompletionRate != 0 || stats.GoalStats.Total != 0 {
		t.Errorf("stats = %+v, want zeroes", stats.GoalStats)
	}
}
