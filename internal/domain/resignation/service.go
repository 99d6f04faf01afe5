package resignation

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"pms/internal/domain/auth"
)

type Service struct {
	store      StoreAPI
	secret     string
	sessionTTL time.Duration
	now        func() time.Time
}

func NewService(store StoreAPI, secret string, sessionTTL time.Duration) *Service {
	return &Service{store: store, secret: secret, sessionTTL: sessionTTL, now: time.Now}
}

// WithClock overrides the service time source. Tests only.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

type CreateInput struct {
	FullName          string
	BirthDate         *time.Time
	Email             string
	WorkEmail         string
	Phone             string
	EmergencyContact  string
	HireDate          time.Time
	Department        string
	ReportingManager  string
	Address           string
	CurrentAddress    string
	Pincode           string
	State             string
	City              string
	PanNo             string
	Password          string
	Status            string
	ResignationDate   *time.Time
	LastWorkingDay    *time.Time
	ResignationReason string
}

func (s *Service) Create(ctx context.Context, input CreateInput) (Record, error) {
	now := s.now()

	employeeID, err := GenerateEmployeeID(ctx, now, s.store.EmployeeIDExists)
	if err != nil {
		return Record{}, err
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return Record{}, err
	}

	status := input.Status
	if status == "" {
		status = StatusPending
	}
	resignationDate := now
	if input.ResignationDate != nil {
		resignationDate = *input.ResignationDate
	}

	rec := Record{
		EmployeeID:        employeeID,
		FullName:          strings.TrimSpace(input.FullName),
		BirthDate:         input.BirthDate,
		Email:             auth.NormalizeEmail(input.Email),
		WorkEmail:         auth.NormalizeEmail(input.WorkEmail),
		Phone:             strings.TrimSpace(input.Phone),
		EmergencyContact:  strings.TrimSpace(input.EmergencyContact),
		HireDate:          input.HireDate,
		Department:        strings.TrimSpace(input.Department),
		ReportingManager:  strings.TrimSpace(input.ReportingManager),
		Address:           strings.TrimSpace(input.Address),
		CurrentAddress:    strings.TrimSpace(input.CurrentAddress),
		Pincode:           strings.TrimSpace(input.Pincode),
		State:             strings.TrimSpace(input.State),
		City:              strings.TrimSpace(input.City),
		PanNo:             strings.ToUpper(strings.TrimSpace(input.PanNo)),
		Status:            status,
		ResignationDate:   resignationDate,
		LastWorkingDay:    input.LastWorkingDay,
		ResignationReason: strings.TrimSpace(input.ResignationReason),
		IsActive:          true,
	}
	return s.store.Insert(ctx, rec, hash)
}

type LoginInput struct {
	Email      string
	WorkEmail  string
	EmployeeID string
	Password   string
}

type LoginResult struct {
	Token  string
	Record Record
}

// Login runs the lockout state machine: an active lock rejects the attempt
// without evaluating the password, a failed check advances the counter, and a
// success resets it and stamps lastLogin.
func (s *Service) Login(ctx context.Context, input LoginInput) (LoginResult, error) {
	by, value := ByEmail, auth.NormalizeEmail(input.Email)
	switch {
	case input.Email != "":
	case input.WorkEmail != "":
		by, value = ByWorkEmail, auth.NormalizeEmail(input.WorkEmail)
	case input.EmployeeID != "":
		by, value = ByEmployeeID, strings.TrimSpace(input.EmployeeID)
	default:
		return LoginResult{}, ErrInvalidCredentials
	}

	state, err := s.store.FindLoginState(ctx, by, value)
	if err != nil {
		if err == ErrNotFound {
			return LoginResult{}, ErrInvalidCredentials
		}
		return LoginResult{}, err
	}

	now := s.now()
	if IsLocked(state, now) {
		return LoginResult{}, ErrAccountLocked
	}

	if err := auth.CheckPassword(state.PasswordHash, input.Password); err != nil {
		attempts, lockUntil := NextFailedLogin(state, now)
		if err := s.store.SaveLoginFailure(ctx, state.RecordID, attempts, lockUntil); err != nil {
			slog.Warn("persisting login failure state failed", "employeeId", state.EmployeeID, "err", err)
		}
		return LoginResult{}, ErrInvalidCredentials
	}

	if err := s.store.SaveLoginSuccess(ctx, state.RecordID, now); err != nil {
		return LoginResult{}, err
	}

	rec, err := s.store.GetByID(ctx, state.RecordID)
	if err != nil {
		return LoginResult{}, err
	}

	token, err := auth.GenerateSessionToken(s.secret, rec.EmployeeID, rec.Email, "", auth.TokenTypeEmployee, s.sessionTTL)
	if err != nil {
		return LoginResult{}, err
	}
	return LoginResult{Token: token, Record: rec}, nil
}

func (s *Service) List(ctx context.Context, f Filter) ([]Record, error) {
	return s.store.List(ctx, f)
}

func (s *Service) GetByID(ctx context.Context, id string) (Record, error) {
	return s.store.GetByID(ctx, id)
}

func (s *Service) GetByEmployeeID(ctx context.Context, employeeID string) (Record, error) {
	return s.store.GetByEmployeeID(ctx, employeeID)
}

func (s *Service) GetByEmail(ctx context.Context, email string) (Record, error) {
	return s.store.GetByEmail(ctx, auth.NormalizeEmail(email))
}

// UpdateInput fields left nil keep the stored value; an explicitly sent empty
// string overwrites. employeeId and password never change through update.
type UpdateInput struct {
	FullName          *string
	BirthDate         *time.Time
	Email             *string
	WorkEmail         *string
	Phone             *string
	EmergencyContact  *string
	HireDate          *time.Time
	Department        *string
	ReportingManager  *string
	Address           *string
	CurrentAddress    *string
	Pincode           *string
	State             *string
	City              *string
	PanNo             *string
	Status            *string
	ResignationDate   *time.Time
	LastWorkingDay    *time.Time
	ResignationReason *string
	IsActive          *bool
}

func (s *Service) Update(ctx context.Context, id string, patch UpdateInput) (Record, error) {
	rec, err := s.store.GetByID(ctx, id)
	if err != nil {
		return Record{}, err
	}

	applyString := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	applyString(&rec.FullName, patch.FullName)
	applyString(&rec.Phone, patch.Phone)
	applyString(&rec.EmergencyContact, patch.EmergencyContact)
	applyString(&rec.Department, patch.Department)
	applyString(&rec.ReportingManager, patch.ReportingManager)
	applyString(&rec.Address, patch.Address)
	applyString(&rec.CurrentAddress, patch.CurrentAddress)
	applyString(&rec.Pincode, patch.Pincode)
	applyString(&rec.State, patch.State)
	applyString(&rec.City, patch.City)
	applyString(&rec.ResignationReason, patch.ResignationReason)
	if patch.Email != nil {
		rec.Email = auth.NormalizeEmail(*patch.Email)
	}
	if patch.WorkEmail != nil {
		rec.WorkEmail = auth.NormalizeEmail(*patch.WorkEmail)
	}
	if patch.PanNo != nil {
		rec.PanNo = strings.ToUpper(strings.TrimSpace(*patch.PanNo))
	}
	if patch.Status != nil {
		rec.Status = *patch.Status
	}
	if patch.BirthDate != nil {
		rec.BirthDate = patch.BirthDate
	}
	if patch.HireDate != nil {
		rec.HireDate = *patch.HireDate
	}
	if patch.ResignationDate != nil {
		rec.ResignationDate = *patch.ResignationDate
	}
	if patch.LastWorkingDay != nil {
		rec.LastWorkingDay = patch.LastWorkingDay
	}
	if patch.IsActive != nil {
		rec.IsActive = *patch.IsActive
	}

	return s.store.Save(ctx, rec)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}

type RowError struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

type BulkResult struct {
	Created []Record   `json:"created"`
	Failed  int        `json:"failed"`
	Errors  []RowError `json:"errors,omitempty"`
}

// BulkImport creates rows one at a time; a bad row is counted and skipped,
// never aborting the batch. Partial success is normal.
func (s *Service) BulkImport(ctx context.Context, rows []CreateInput) BulkResult {
	result := BulkResult{Created: make([]Record, 0, len(rows))}
	for i, row := range rows {
		if missing := missingRequired(row); missing != "" {
			result.Failed++
			result.Errors = append(result.Errors, RowError{Row: i + 1, Error: "missing required field: " + missing})
			slog.Warn("bulk import row skipped", "row", i+1, "missing", missing)
			continue
		}
		rec, err := s.Create(ctx, row)
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, RowError{Row: i + 1, Error: err.Error()})
			slog.Warn("bulk import row failed", "row", i+1, "err", err)
			continue
		}
		result.Created = append(result.Created, rec)
	}
	return result
}

func missingRequired(row CreateInput) string {
	required := []struct {
		name  string
		value string
	}{
		{"fullName", row.FullName},
		{"email", row.Email},
		{"workEmail", row.WorkEmail},
		{"phone", row.Phone},
		{"emergencyContact", row.EmergencyContact},
		{"department", row.Department},
		{"reportingManager", row.ReportingManager},
		{"address", row.Address},
		{"currentAddress", row.CurrentAddress},
		{"pincode", row.Pincode},
		{"state", row.State},
		{"city", row.City},
		{"panNo", row.PanNo},
		{"password", row.Password},
	}
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			return field.name
		}
	}
	if row.HireDate.IsZero() {
		return "hireDate"
	}
	return ""
}

func (s *Service) ChangePassword(ctx context.Context, employeeID, currentPassword, newPassword string) error {
	state, err := s.store.FindLoginState(ctx, ByEmployeeID, strings.TrimSpace(employeeID))
	if err != nil {
		return err
	}
	if err := auth.CheckPassword(state.PasswordHash, currentPassword); err != nil {
		return ErrInvalidCredentials
	}
	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return err
	}
	return s.store.UpdatePassword(ctx, state.RecordID, hash)
}

type ValidateResult struct {
	Valid  bool    `json:"valid"`
	Record *Record `json:"employee,omitempty"`
}

func (s *Service) ValidateEmployee(ctx context.Context, employeeID string) (ValidateResult, error) {
	rec, err := s.store.GetByEmployeeID(ctx, strings.TrimSpace(employeeID))
	if err != nil {
		if err == ErrNotFound {
			return ValidateResult{}, nil
		}
		return ValidateResult{}, err
	}
	if !rec.IsActive {
		return ValidateResult{}, nil
	}
	return ValidateResult{Valid: true, Record: &rec}, nil
}

func (s *Service) Stats(ctx context.Context) (Stats, error) {
	return s.store.Stats(ctx)
}

func (s *Service) EmployeeNames(ctx context.Context) ([]NameEntry, error) {
	return s.store.EmployeeNames(ctx)
}

func (s *Service) AllEmployeeIDs(ctx context.Context) ([]string, error) {
	return s.store.AllEmployeeIDs(ctx)
}

func (s *Service) LatestEmployeeID(ctx context.Context) (string, error) {
	return s.store.LatestEmployeeID(ctx)
}
