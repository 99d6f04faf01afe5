package appraisal

import (
	"context"
	"testing"
	"time"
)

type fakeStore struct {
	records map[string]SelfAppraisal
}

func newFakeStore() *fakeStore {
	return &fakeStore{records: map[string]SelfAppraisal{}}
}

func (f *fakeStore) Insert(_ context.Context, sa *SelfAppraisal) error {
	f.records[sa.ID] = *sa
	return nil
}

func (f *fakeStore) List(_ context.Context, filter Filter) ([]SelfAppraisal, int, error) {
	out := []SelfAppraisal{}
	for _, sa := range f.records {
		if filter.Status != "" && sa.Status != filter.Status {
			continue
		}
		if filter.EmployeeID != "" && sa.EmployeeID != filter.EmployeeID {
			continue
		}
		out = append(out, sa)
	}
	return out, len(out), nil
}

func (f *fakeStore) Get(_ context.Context, id string) (SelfAppraisal, error) {
	sa, ok := f.records[id]
	if !ok {
		return SelfAppraisal{}, ErrNotFound
	}
	return sa, nil
}

func (f *fakeStore) Save(_ context.Context, sa *SelfAppraisal) error {
	if _, ok := f.records[sa.ID]; !ok {
		return ErrNotFound
	}
	f.records[sa.ID] = *sa
	return nil
}

func (f *fakeStore) Delete(_ context.Context, id string) error {
	if _, ok := f.records[id]; !ok {
		return ErrNotFound
	}
	delete(f.records, id)
	return nil
}

func (f *fakeStore) Statistics(_ context.Context) (Statistics, error) {
	return Statistics{}, nil
}

func fixedClock() func() time.Time {
	at := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	return func() time.Time { return at }
}

func TestSubmitRequiresRatings(t *testing.T) {
	svc := NewService(newFakeStore()).WithClock(fixedClock())
	ctx := context.Background()

	sa, err := svc.Create(ctx, CreateInput{
		UserID: "u1", UserName: "Asha", EmployeeID: "EMP-1", AppraisalPeriod: "2025-H1",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := svc.Submit(ctx, sa.ID); err != ErrNoRatings {
		t.Fatalf("expected ErrNoRatings, got %v", err)
	}
}

func TestSubmitStampsAndRejectsResubmission(t *testing.T) {
	svc := NewService(newFakeStore()).WithClock(fixedClock())
	ctx := context.Background()

	sa, err := svc.Create(ctx, CreateInput{
		UserID: "u1", UserName: "Asha", EmployeeID: "EMP-1", AppraisalPeriod: "2025-H1",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if sa.Status != StatusDraft {
		t.Fatalf("new appraisal status = %q, want draft", sa.Status)
	}

	if _, err := svc.AddRating(ctx, sa.ID, RatingInput{Criteria: "Delivery", Weightage: 100, Rating: 4}); err != nil {
		t.Fatalf("add rating failed: %v", err)
	}

	submitted, err := svc.Submit(ctx, sa.ID)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if submitted.Status != StatusSubmitted {
		t.Errorf("status = %q, want submitted", submitted.Status)
	}
	if submitted.SubmittedAt == nil {
		t.Error("submittedAt not stamped")
	}
	if submitted.OverallScore != 4 {
		t.Errorf("overallScore = %v, want 4", submitted.OverallScore)
	}

	if _, err := svc.Submit(ctx, sa.ID); err != ErrAlreadySubmitted {
		t.Fatalf("expected ErrAlreadySubmitted, got %v", err)
	}
}

func TestAddRatingValidation(t *testing.T) {
	svc := NewService(newFakeStore()).WithClock(fixedClock())
	ctx := context.Background()

	sa, err := svc.Create(ctx, CreateInput{
		UserID: "u1", UserName: "Asha", EmployeeID: "EMP-1", AppraisalPeriod: "2025-H1",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := svc.AddRating(ctx, sa.ID, RatingInput{Criteria: "x", Weightage: 120, Rating: 3}); err != ErrInvalidWeightage {
		t.Errorf("weightage 120: got %v, want ErrInvalidWeightage", err)
	}
	if _, err := svc.AddRating(ctx, sa.ID, RatingInput{Criteria: "x", Weightage: 50, Rating: 0}); err != ErrInvalidRating {
		t.Errorf("rating 0: got %v, want ErrInvalidRating", err)
	}
	if _, err := svc.AddRating(ctx, sa.ID, RatingInput{Criteria: "x", Weightage: 50, Rating: 6}); err != ErrInvalidRating {
		t.Errorf("rating 6: got %v, want ErrInvalidRating", err)
	}
}

func TestScoreRecomputedOnEverySave(t *testing.T) {
	svc := NewService(newFakeStore()).WithClock(fixedClock())
	ctx := context.Background()

	sa, err := svc.Create(ctx, CreateInput{
		UserID: "u1", UserName: "Asha", EmployeeID: "EMP-1", AppraisalPeriod: "2025-H1",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	after, err := svc.AddRating(ctx, sa.ID, RatingInput{Criteria: "Delivery", Weightage: 60, Rating: 4})
	if err != nil {
		t.Fatalf("add rating failed: %v", err)
	}
	if after.OverallScore != 4 {
		t.Fatalf("score after first rating = %v, want 4", after.OverallScore)
	}

	after, err = svc.AddRating(ctx, sa.ID, RatingInput{Criteria: "Quality", Weightage: 40, Rating: 5})
	if err != nil {
		t.Fatalf("add rating failed: %v", err)
	}
	if after.OverallScore != 4.4 {
		t.Fatalf("score after second rating = %v, want 4.4", after.OverallScore)
	}

	after, err = svc.DeleteRating(ctx, sa.ID, after.Ratings[1].ID)
	if err != nil {
		t.Fatalf("delete rating failed: %v", err)
	}
	if after.OverallScore != 4 {
		t.Fatalf("score after delete = %v, want 4", after.OverallScore)
	}
}

func TestUpdateCannotTouchStatusOrScore(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store).WithClock(fixedClock())
	ctx := context.Background()

	sa, err := svc.Create(ctx, CreateInput{
		UserID: "u1", UserName: "Asha", EmployeeID: "EMP-1", AppraisalPeriod: "2025-H1",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	comments := "solid half"
	updated, err := svc.Update(ctx, sa.ID, UpdateInput{ReviewerComments: &comments})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Status != StatusDraft {
		t.Errorf("status changed by update: %q", updated.Status)
	}
	if updated.ReviewerComments != comments {
		t.Errorf("reviewerComments = %q, want %q", updated.ReviewerComments, comments)
	}
}
