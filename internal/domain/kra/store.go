package kra

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{DB: pool}
}

const kraColumns = `
    id, template, manual_rate, kra, weightage, goal_completion, goal_score,
    editable, employee, employee_id, created_at, updated_at`

func scanKRA(row pgx.Row) (KRA, error) {
	var rec KRA
	err := row.Scan(
		&rec.ID, &rec.Template, &rec.ManualRate, &rec.KRA, &rec.Weightage, &rec.GoalCompletion,
		&rec.GoalScore, &rec.Editable, &rec.Employee, &rec.EmployeeID, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return KRA{}, ErrNotFound
	}
	if err != nil {
		return KRA{}, err
	}
	return rec, nil
}

func (s *Store) Insert(ctx context.Context, rec KRA) (KRA, error) {
	row := s.DB.QueryRow(ctx, `
    INSERT INTO kras (template, manual_rate, kra, weightage, goal_completion, goal_score, editable, employee, employee_id)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
    RETURNING`+kraColumns,
		rec.Template, rec.ManualRate, rec.KRA, rec.Weightage, rec.GoalCompletion,
		rec.GoalScore, rec.Editable, rec.Employee, rec.EmployeeID,
	)
	return scanKRA(row)
}

func (s *Store) List(ctx context.Context, employeeID, employee string) ([]KRA, error) {
	query := "SELECT" + kraColumns + " FROM kras"
	var conditions []string
	var args []any
	if employeeID != "" {
		args = append(args, employeeID)
		conditions = append(conditions, fmt.Sprintf("employee_id = $%d", len(args)))
	}
	if employee != "" {
		args = append(args, "%"+employee+"%")
		conditions = append(conditions, fmt.Sprintf("employee ILIKE $%d", len(args)))
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

	records := make([]KRA, 0)
	for rows.Next() {
		rec, err := scanKRA(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (s *Store) Get(ctx context.Context, id string) (KRA, error) {
	return scanKRA(s.DB.QueryRow(ctx, "SELECT"+kraColumns+" FROM kras WHERE id = $1", id))
}

func (s *Store) Save(ctx context.Context, rec KRA) (KRA, error) {
	row := s.DB.QueryRow(ctx, `
    UPDATE kras SET
      template = $2, manual_rate = $3, kra = $4, weightage = $5, goal_completion = $6,
      goal_score = $7, editable = $8, employee = $9, employee_id = $10, updated_at = now()
    WHERE id = $1
    RETURNING`+kraColumns,
		rec.ID, rec.Template, rec.ManualRate, rec.KRA, rec.Weightage, rec.GoalCompletion,
		rec.GoalScore, rec.Editable, rec.Employee, rec.EmployeeID,
	)
	return scanKRA(row)
}

func (s *Store) Delete(ctx context.Context, id string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM kras WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) DeleteAll(ctx context.Context) error {
	_, err := s.DB.Exec(ctx, "DELETE FROM kras")
	return err
}
