package appraisal

import (
	"context"
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

type CreateInput struct {
	UserID          string `json:"userId"`
	UserName        string `json:"userName"`
	EmployeeID      string `json:"employeeId"`
	Employee        string `json:"employee"`
	AppraisalPeriod string `json:"appraisalPeriod"`
}

func (s *Service) Create(ctx context.Context, in CreateInput) (SelfAppraisal, error) {
	now := s.now().UTC()
	sa := SelfAppraisal{
		ID:              uuid.NewString(),
		UserID:          strings.TrimSpace(in.UserID),
		UserName:        strings.TrimSpace(in.UserName),
		EmployeeID:      strings.TrimSpace(in.EmployeeID),
		Employee:        strings.TrimSpace(in.Employee),
		AppraisalPeriod: strings.TrimSpace(in.AppraisalPeriod),
		Ratings:         []Rating{},
		FeedbackCards:   []FeedbackCard{},
		Status:          StatusDraft,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if sa.Employee == "" {
		sa.Employee = sa.UserName
	}

	if err := s.store.Insert(ctx, &sa); err != nil {
		return SelfAppraisal{}, err
	}
	return sa, nil
}

func (s *Service) List(ctx context.Context, f Filter) ([]SelfAppraisal, Page, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 10
	}

	items, total, err := s.store.List(ctx, f)
	if err != nil {
		return nil, Page{}, err
	}

	pages := total / f.Limit
	if total%f.Limit != 0 {
		pages++
	}
	return items, Page{Page: f.Page, Limit: f.Limit, Total: total, Pages: pages}, nil
}

func (s *Service) Get(ctx context.Context, id string) (SelfAppraisal, error) {
	return s.store.Get(ctx, id)
}

// UpdateInput carries only the client-writable fields. Status, score and
// submission timestamps are managed by the service alone.
type UpdateInput struct {
	UserName         *string         `json:"userName"`
	Employee         *string         `json:"employee"`
	AppraisalPeriod  *string         `json:"appraisalPeriod"`
	ReviewerComments *string         `json:"reviewerComments"`
	Ratings          *[]Rating       `json:"ratings"`
	FeedbackCards    *[]FeedbackCard `json:"feedbackCards"`
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (SelfAppraisal, error) {
	sa, err := s.store.Get(ctx, id)
	if err != nil {
		return SelfAppraisal{}, err
	}

	if in.UserName != nil {
		sa.UserName = *in.UserName
	}
	if in.Employee != nil {
		sa.Employee = *in.Employee
	}
	if in.AppraisalPeriod != nil {
		sa.AppraisalPeriod = *in.AppraisalPeriod
	}
	if in.ReviewerComments != nil {
		sa.ReviewerComments = *in.ReviewerComments
	}
	if in.Ratings != nil {
		now := s.now().UTC()
		ratings := make([]Rating, 0, len(*in.Ratings))
		for _, r := range *in.Ratings {
			if err := validateRating(r.Weightage, r.Rating); err != nil {
				return SelfAppraisal{}, err
			}
			if r.ID == "" {
				r.ID = uuid.NewString()
				r.CreatedAt = now
			}
			r.UpdatedAt = now
			ratings = append(ratings, r)
		}
		sa.Ratings = ratings
	}
	if in.FeedbackCards != nil {
		now := s.now().UTC()
		cards := make([]FeedbackCard, 0, len(*in.FeedbackCards))
		for _, c := range *in.FeedbackCards {
			if c.ID == "" {
				c.ID = uuid.NewString()
				c.CreatedAt = now
			}
			c.UpdatedAt = now
			cards = append(cards, c)
		}
		sa.FeedbackCards = cards
	}

	if err := s.save(ctx, &sa); err != nil {
		return SelfAppraisal{}, err
	}
	return sa, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

type RatingInput struct {
	Criteria  string  `json:"criteria"`
	Weightage float64 `json:"weightage"`
	Rating    float64 `json:"rating"`
}

func (s *Service) AddRating(ctx context.Context, id string, in RatingInput) (SelfAppraisal, error) {
	if err := validateRating(in.Weightage, in.Rating); err != nil {
		return SelfAppraisal{}, err
	}

	sa, err := s.store.Get(ctx, id)
	if err != nil {
		return SelfAppraisal{}, err
	}

	now := s.now().UTC()
	sa.Ratings = append(sa.Ratings, Rating{
		ID:        uuid.NewString(),
		Criteria:  in.Criteria,
		Weightage: in.Weightage,
		Rating:    in.Rating,
		CreatedAt: now,
		UpdatedAt: now,
	})

	if err := s.save(ctx, &sa); err != nil {
		return SelfAppraisal{}, err
	}
	return sa, nil
}

type RatingPatch struct {
	Criteria  *string  `json:"criteria"`
	Weightage *float64 `json:"weightage"`
	Rating    *float64 `json:"rating"`
}

func (s *Service) UpdateRating(ctx context.Context, id, ratingID string, in RatingPatch) (SelfAppraisal, error) {
	sa, err := s.store.Get(ctx, id)
	if err != nil {
		return SelfAppraisal{}, err
	}

	idx := -1
	for i := range sa.Ratings {
		if sa.Ratings[i].ID == ratingID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return SelfAppraisal{}, ErrRatingNotFound
	}

	r := &sa.Ratings[idx]
	if in.Criteria != nil {
		r.Criteria = *in.Criteria
	}
	if in.Weightage != nil {
		r.Weightage = *in.Weightage
	}
	if in.Rating != nil {
		r.Rating = *in.Rating
	}
	if err := validateRating(r.Weightage, r.Rating); err != nil {
		return SelfAppraisal{}, err
	}
	r.UpdatedAt = s.now().UTC()

	if err := s.save(ctx, &sa); err != nil {
		return SelfAppraisal{}, err
	}
	return sa, nil
}

func (s *Service) DeleteRating(ctx context.Context, id, ratingID string) (SelfAppraisal, error) {
	sa, err := s.store.Get(ctx, id)
	if err != nil {
		return SelfAppraisal{}, err
	}

	kept := sa.Ratings[:0]
	found := false
	for _, r := range sa.Ratings {
		if r.ID == ratingID {
			found = true
			continue
		}
		kept = append(kept, r)
	}
	if !found {
		return SelfAppraisal{}, ErrRatingNotFound
	}
	sa.Ratings = kept

	if err := s.save(ctx, &sa); err != nil {
		return SelfAppraisal{}, err
	}
	return sa, nil
}

type FeedbackCardInput struct {
	Feedback    string  `json:"feedback"`
	Development string  `json:"development"`
	Strengths   string  `json:"strengths"`
	Rating      float64 `json:"rating"`
}

func (s *Service) AddFeedbackCard(ctx context.Context, id string, in FeedbackCardInput) (SelfAppraisal, error) {
	sa, err := s.store.Get(ctx, id)
	if err != nil {
		return SelfAppraisal{}, err
	}

	now := s.now().UTC()
	sa.FeedbackCards = append(sa.FeedbackCards, FeedbackCard{
		ID:          uuid.NewString(),
		Feedback:    in.Feedback,
		Development: in.Development,
		Strengths:   in.Strengths,
		Rating:      in.Rating,
		CreatedAt:   now,
		UpdatedAt:   now,
	})

	if err := s.save(ctx, &sa); err != nil {
		return SelfAppraisal{}, err
	}
	return sa, nil
}

type FeedbackCardPatch struct {
	Feedback    *string  `json:"feedback"`
	Development *string  `json:"development"`
	Strengths   *string  `json:"strengths"`
	Rating      *float64 `json:"rating"`
}

func (s *Service) UpdateFeedbackCard(ctx context.Context, id, cardID string, in FeedbackCardPatch) (SelfAppraisal, error) {
	sa, err := s.store.Get(ctx, id)
	if err != nil {
		return SelfAppraisal{}, err
	}

	idx := -1
	for i := range sa.FeedbackCards {
		if sa.FeedbackCards[i].ID == cardID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return SelfAppraisal{}, ErrFeedbackNotFound
	}

	c := &sa.FeedbackCards[idx]
	if in.Feedback != nil {
		c.Feedback = *in.Feedback
	}
	if in.Development != nil {
		c.Development = *in.Development
	}
	if in.Strengths != nil {
		c.Strengths = *in.Strengths
	}
	if in.Rating != nil {
		c.Rating = *in.Rating
	}
	c.UpdatedAt = s.now().UTC()

	if err := s.save(ctx, &sa); err != nil {
		return SelfAppraisal{}, err
	}
	return sa, nil
}

func (s *Service) DeleteFeedbackCard(ctx context.Context, id, cardID string) (SelfAppraisal, error) {
	sa, err := s.store.Get(ctx, id)
	if err != nil {
		return SelfAppraisal{}, err
	}

	kept := sa.FeedbackCards[:0]
	found := false
	for _, c := range sa.FeedbackCards {
		if c.ID == cardID {
			found = true
			continue
		}
		kept = append(kept, c)
	}
	if !found {
		return SelfAppraisal{}, ErrFeedbackNotFound
	}
	sa.FeedbackCards = kept

	if err := s.save(ctx, &sa); err != nil {
		return SelfAppraisal{}, err
	}
	return sa, nil
}

func (s *Service) Submit(ctx context.Context, id string) (SelfAppraisal, error) {
	sa, err := s.store.Get(ctx, id)
	if err != nil {
		return SelfAppraisal{}, err
	}
	if sa.Status == StatusSubmitted {
		return SelfAppraisal{}, ErrAlreadySubmitted
	}
	if len(sa.Ratings) == 0 {
		return SelfAppraisal{}, ErrNoRatings
	}

	now := s.now().UTC()
	sa.Status = StatusSubmitted
	sa.SubmittedAt = &now

	if err := s.save(ctx, &sa); err != nil {
		return SelfAppraisal{}, err
	}
	return sa, nil
}

func (s *Service) Statistics(ctx context.Context) (Statistics, error) {
	return s.store.Statistics(ctx)
}

// save recomputes the overall score from current ratings before persisting.
// An appraisal with no scorable ratings keeps its previous score.
func (s *Service) save(ctx context.Context, sa *SelfAppraisal) error {
	if score, ok := ComputeOverallScore(sa.Ratings); ok {
		sa.OverallScore = score
	}
	sa.UpdatedAt = s.now().UTC()
	return s.store.Save(ctx, sa)
}

func validateRating(weightage, rating float64) error {
	if weightage < 0 || weightage > 100 {
		return ErrInvalidWeightage
	}
	if rating < 1 || rating > 5 {
		return ErrInvalidRating
	}
	return nil
}
