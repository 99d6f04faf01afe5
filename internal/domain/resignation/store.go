package resignation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"pms/internal/db"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{DB: pool}
}

// constraint name -> JSON field reported in the conflict message
var uniqueFields = map[string]string{
	"resignations_employee_id_key":       "employeeId",
	"resignations_email_key":             "email",
	"resignations_work_email_key":        "workEmail",
	"resignations_phone_key":             "phone",
	"resignations_emergency_contact_key": "emergencyContact",
	"resignations_pan_no_key":            "panNo",
}

func mapConflict(err error) error {
	constraint, ok := db.UniqueViolation(err)
	if !ok {
		return err
	}
	field, known := uniqueFields[constraint]
	if !known {
		field = "record"
	}
	return &ConflictError{Field: field}
}

const recordColumns = `
    id, employee_id, full_name, birth_date, email, work_email, phone, emergency_contact,
    hire_date, department, reporting_manager, address, current_address, pincode, state, city,
    pan_no, status, resignation_date, last_working_day, resignation_reason, is_active,
    last_login, created_at, updated_at`

func scanRecord(row pgx.Row) (Record, error) {
	var rec Record
	err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.FullName, &rec.BirthDate, &rec.Email, &rec.WorkEmail,
		&rec.Phone, &rec.EmergencyContact, &rec.HireDate, &rec.Department, &rec.ReportingManager,
		&rec.Address, &rec.CurrentAddress, &rec.Pincode, &rec.State, &rec.City, &rec.PanNo,
		&rec.Status, &rec.ResignationDate, &rec.LastWorkingDay, &rec.ResignationReason,
		&rec.IsActive, &rec.LastLogin, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, err
	}
	return rec, nil
}

func (s *Store) EmployeeIDExists(ctx context.Context, employeeID string) (bool, error) {
	var count int
	err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM resignations WHERE employee_id = $1", employeeID).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) Insert(ctx context.Context, rec Record, passwordHash string) (Record, error) {
	row := s.DB.QueryRow(ctx, `
    INSERT INTO resignations (
      employee_id, full_name, birth_date, email, work_email, phone, emergency_contact,
      hire_date, department, reporting_manager, address, current_address, pincode, state, city,
      pan_no, status, resignation_date, last_working_day, resignation_reason, is_active, password_hash
    ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22)
    RETURNING`+recordColumns,
		rec.EmployeeID, rec.FullName, rec.BirthDate, rec.Email, rec.WorkEmail, rec.Phone,
		rec.EmergencyContact, rec.HireDate, rec.Department, rec.ReportingManager, rec.Address,
		rec.CurrentAddress, rec.Pincode, rec.State, rec.City, rec.PanNo, rec.Status,
		rec.ResignationDate, rec.LastWorkingDay, rec.ResignationReason, rec.IsActive, passwordHash,
	)
	created, err := scanRecord(row)
	if err != nil {
		return Record{}, mapConflict(err)
	}
	return created, nil
}

func (s *Store) List(ctx context.Context, f Filter) ([]Record, error) {
	query := "SELECT" + recordColumns + " FROM resignations"
	var conditions []string
	var args []any

	add := func(clause string, value any) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(clause, len(args)))
	}

	if f.Status != "" {
		add("status = $%d", f.Status)
	}
	if f.Department != "" {
		add("department = $%d", f.Department)
	}
	if f.FullName != "" {
		add("full_name ILIKE $%d", "%"+f.FullName+"%")
	}
	if f.Search != "" {
		add("(full_name ILIKE $%d OR email ILIKE $%[1]d OR work_email ILIKE $%[1]d OR employee_id ILIKE $%[1]d)", "%"+f.Search+"%")
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]Record, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (s *Store) GetByID(ctx context.Context, id string) (Record, error) {
	return scanRecord(s.DB.QueryRow(ctx, "SELECT"+recordColumns+" FROM resignations WHERE id = $1", id))
}

func (s *Store) GetByEmployeeID(ctx context.Context, employeeID string) (Record, error) {
	return scanRecord(s.DB.QueryRow(ctx, "SELECT"+recordColumns+" FROM resignations WHERE employee_id = $1", employeeID))
}

func (s *Store) GetByEmail(ctx context.Context, email string) (Record, error) {
	return scanRecord(s.DB.QueryRow(ctx, "SELECT"+recordColumns+" FROM resignations WHERE email = $1 OR work_email = $1", email))
}

// Save writes every mutable column; employee_id and password are immutable here.
func (s *Store) Save(ctx context.Context, rec Record) (Record, error) {
	row := s.DB.QueryRow(ctx, `
    UPDATE resignations SET
      full_name = $2, birth_date = $3, email = $4, work_email = $5, phone = $6,
      emergency_contact = $7, hire_date = $8, department = $9, reporting_manager = $10,
      address = $11, current_address = $12, pincode = $13, state = $14, city = $15,
      pan_no = $16, status = $17, resignation_date = $18, last_working_day = $19,
      resignation_reason = $20, is_active = $21, updated_at = now()
    WHERE id = $1
    RETURNING`+recordColumns,
		rec.ID, rec.FullName, rec.BirthDate, rec.Email, rec.WorkEmail, rec.Phone,
		rec.EmergencyContact, rec.HireDate, rec.Department, rec.ReportingManager, rec.Address,
		rec.CurrentAddress, rec.Pincode, rec.State, rec.City, rec.PanNo, rec.Status,
		rec.ResignationDate, rec.LastWorkingDay, rec.ResignationReason, rec.IsActive,
	)
	saved, err := scanRecord(row)
	if err != nil {
		return Record{}, mapConflict(err)
	}
	return saved, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM resignations WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) FindLoginState(ctx context.Context, by, value string) (LoginState, error) {
	column := ""
	switch by {
	case ByEmail:
		column = "email"
	case ByWorkEmail:
		column = "work_email"
	case ByEmployeeID:
		column = "employee_id"
	default:
		return LoginState{}, fmt.Errorf("unsupported login lookup %q", by)
	}

	var state LoginState
	err := s.DB.QueryRow(ctx, `
    SELECT id, employee_id, password_hash, login_attempts, lock_until
    FROM resignations
    WHERE `+column+` = $1
  `, value).Scan(&state.RecordID, &state.EmployeeID, &state.PasswordHash, &state.LoginAttempts, &state.LockUntil)
	if errors.Is(err, pgx.ErrNoRows) {
		return LoginState{}, ErrNotFound
	}
	if err != nil {
		return LoginState{}, err
	}
	return state, nil
}

func (s *Store) SaveLoginFailure(ctx context.Context, recordID string, attempts int, lockUntil *time.Time) error {
	_, err := s.DB.Exec(ctx, `
    UPDATE resignations SET login_attempts = $2, lock_until = $3, updated_at = now() WHERE id = $1
  `, recordID, attempts, lockUntil)
	return err
}

func (s *Store) SaveLoginSuccess(ctx context.Context, recordID string, at time.Time) error {
	_, err := s.DB.Exec(ctx, `
    UPDATE resignations
    SET login_attempts = 0, lock_until = NULL, last_login = $2, updated_at = now()
    WHERE id = $1
  `, recordID, at)
	return err
}

func (s *Store) UpdatePassword(ctx context.Context, recordID, passwordHash string) error {
	_, err := s.DB.Exec(ctx, "UPDATE resignations SET password_hash = $2, updated_at = now() WHERE id = $1", recordID, passwordHash)
	return err
}

func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var out Stats
	err := s.DB.QueryRow(ctx, `
    SELECT COUNT(1),
           COUNT(1) FILTER (WHERE status = $1),
           COUNT(1) FILTER (WHERE status = $2),
           COUNT(1) FILTER (WHERE status = $3)
    FROM resignations
  `, StatusPending, StatusProcessed, StatusRejected).Scan(&out.Total, &out.Pending, &out.Processed, &out.Rejected)
	return out, err
}

func (s *Store) EmployeeNames(ctx context.Context) ([]NameEntry, error) {
	rows, err := s.DB.Query(ctx, "SELECT employee_id, full_name FROM resignations ORDER BY full_name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]NameEntry, 0)
	for rows.Next() {
		var entry NameEntry
		if err := rows.Scan(&entry.EmployeeID, &entry.FullName); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (s *Store) AllEmployeeIDs(ctx context.Context) ([]string, error) {
	rows, err := s.DB.Query(ctx, "SELECT employee_id FROM resignations ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *Store) LatestEmployeeID(ctx context.Context) (string, error) {
	var id string
	err := s.DB.QueryRow(ctx, "SELECT employee_id FROM resignations ORDER BY created_at DESC LIMIT 1").Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotFound
	}
	return id, err
}
