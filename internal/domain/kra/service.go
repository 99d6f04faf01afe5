package kra

import (
	"context"
	"strings"
)

type Service struct {
	store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{store: store}
}

type CreateInput struct {
	Template       string
	ManualRate     bool
	KRA            string
	Weightage      string
	GoalCompletion string
	Editable       *bool
	Employee       string
	EmployeeID     string
}

func (s *Service) Create(ctx context.Context, input CreateInput) (KRA, error) {
	rec := KRA{
		Template:       strings.TrimSpace(input.Template),
		ManualRate:     input.ManualRate,
		KRA:            strings.TrimSpace(input.KRA),
		Weightage:      strings.TrimSpace(input.Weightage),
		GoalCompletion: strings.TrimSpace(input.GoalCompletion),
		Editable:       true,
		Employee:       strings.TrimSpace(input.Employee),
		EmployeeID:     strings.TrimSpace(input.EmployeeID),
	}
	if input.Editable != nil {
		rec.Editable = *input.Editable
	}
	if score, ok := ComputeGoalScore(rec.Weightage, rec.GoalCompletion); ok {
		rec.GoalScore = score
	}
	return s.store.Insert(ctx, rec)
}

func (s *Service) List(ctx context.Context, employeeID, employee string) ([]KRA, error) {
	return s.store.List(ctx, employeeID, employee)
}

func (s *Service) Get(ctx context.Context, id string) (KRA, error) {
	return s.store.Get(ctx, id)
}

// UpdateInput: nil keeps the stored value.
type UpdateInput struct {
	Template       *string
	ManualRate     *bool
	KRA            *string
	Weightage      *string
	GoalCompletion *string
	Editable       *bool
	Employee       *string
	EmployeeID     *string
}

func (s *Service) Update(ctx context.Context, id string, patch UpdateInput) (KRA, error) {
	rec, err := s.store.Get(ctx, id)
	if err != nil {
		return KRA{}, err
	}

	if patch.Template != nil {
		rec.Template = strings.TrimSpace(*patch.Template)
	}
	if patch.ManualRate != nil {
		rec.ManualRate = *patch.ManualRate
	}
	if patch.KRA != nil {
		rec.KRA = strings.TrimSpace(*patch.KRA)
	}
	if patch.Weightage != nil {
		rec.Weightage = strings.TrimSpace(*patch.Weightage)
	}
	if patch.GoalCompletion != nil {
		rec.GoalCompletion = strings.TrimSpace(*patch.GoalCompletion)
	}
	if patch.Editable != nil {
		rec.Editable = *patch.Editable
	}
	if patch.Employee != nil {
		rec.Employee = strings.TrimSpace(*patch.Employee)
	}
	if patch.EmployeeID != nil {
		rec.EmployeeID = strings.TrimSpace(*patch.EmployeeID)
	}

	// The score recomputes when either input arrives non-blank, reading a
	// blank counterpart as 0.
	wSent := patch.Weightage != nil && strings.TrimSpace(*patch.Weightage) != ""
	cSent := patch.GoalCompletion != nil && strings.TrimSpace(*patch.GoalCompletion) != ""
	if wSent || cSent {
		rec.GoalScore = FormatGoalScore(rec.Weightage, rec.GoalCompletion)
	}

	return s.store.Save(ctx, rec)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

func (s *Service) ClearAll(ctx context.Context) error {
	return s.store.DeleteAll(ctx)
}

type BulkResult struct {
	Created []KRA `json:"created"`
	Failed  int   `json:"failed"`
}

// BulkImport creates every row; KRA rows have no required fields, so a row
// only fails if the store rejects it. One bad row never aborts the batch.
func (s *Service) BulkImport(ctx context.Context, rows []CreateInput) BulkResult {
	result := BulkResult{Created: make([]KRA, 0, len(rows))}
	for _, row := range rows {
		rec, err := s.Create(ctx, row)
		if err != nil {
			result.Failed++
			continue
		}
		result.Created = append(result.Created, rec)
	}
	return result
}
