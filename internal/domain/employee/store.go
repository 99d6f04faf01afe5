package employee

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) InsertGoal(ctx context.Context, g *Goal) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO employee_goals (id, employee_id, goal_text, completed, priority, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		g.ID, g.EmployeeID, g.Text, g.Completed, g.Priority, g.CreatedAt, g.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert goal: %w", err)
	}
	return nil
}

func (s *Store) ListGoals(ctx context.Context, employeeID string) ([]Goal, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, employee_id, goal_text, completed, priority, created_at, updated_at
		FROM employee_goals
		WHERE employee_id = $1
		ORDER BY created_at DESC`, employeeID)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	defer rows.Close()

	out := []Goal{}
	for rows.Next() {
		var g Goal
		if err := rows.Scan(&g.ID, &g.EmployeeID, &g.Text, &g.Completed, &g.Priority,
			&g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan goal: %w", err)
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (s *Store) GetGoal(ctx context.Context, id string) (Goal, error) {
	var g Goal
	err := s.pool.QueryRow(ctx, `
		SELECT id, employee_id, goal_text, completed, priority, created_at, updated_at
		FROM employee_goals WHERE id = $1`, id).
		Scan(&g.ID, &g.EmployeeID, &g.Text, &g.Completed, &g.Priority, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Goal{}, ErrGoalNotFound
		}
		return Goal{}, fmt.Errorf("get goal: %w", err)
	}
	return g, nil
}

func (s *Store) SaveGoal(ctx context.Context, g *Goal) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE employee_goals
		SET goal_text = $2, completed = $3, priority = $4, updated_at = $5
		WHERE id = $1`,
		g.ID, g.Text, g.Completed, g.Priority, g.UpdatedAt)
	if err != nil {
		return fmt.Errorf("save goal: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrGoalNotFound
	}
	return nil
}

func (s *Store) DeleteGoal(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, "DELETE FROM employee_goals WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrGoalNotFound
	}
	return nil
}

func (s *Store) GoalStats(ctx context.Context, employeeID string) (int, int, error) {
	var total, completed int
	err := s.pool.QueryRow(ctx, `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE completed)
		FROM employee_goals WHERE employee_id = $1`, employeeID).
		Scan(&total, &completed)
	if err != nil {
		return 0, 0, fmt.Errorf("goal stats: %w", err)
	}
	return total, completed, nil
}

func (s *Store) InsertQuery(ctx context.Context, q *Query) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO employee_queries (id, employee_id, query_text, status, submitted_at)
		VALUES ($1, $2, $3, $4, $5)`,
		q.ID, q.EmployeeID, q.QueryText, q.Status, q.SubmittedAt)
	if err != nil {
		return fmt.Errorf("insert query: %w", err)
	}
	return nil
}

func (s *Store) ListQueries(ctx context.Context, employeeID string) ([]Query, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, employee_id, query_text, status, submitted_at
		FROM employee_queries
		WHERE employee_id = $1
		ORDER BY submitted_at DESC`, employeeID)
	if err != nil {
		return nil, fmt.Errorf("list queries: %w", err)
	}
	defer rows.Close()

	out := []Query{}
	for rows.Next() {
		var q Query
		if err := rows.Scan(&q.ID, &q.EmployeeID, &q.QueryText, &q.Status, &q.SubmittedAt); err != nil {
			return nil, fmt.Errorf("scan query: %w", err)
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

func (s *Store) InsertFeedback(ctx context.Context, f *Feedback) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO employee_feedback (id, employee_id, feedback_text, feedback_type, status, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		f.ID, f.EmployeeID, f.FeedbackText, f.Type, f.Status, f.SubmittedAt)
	if err != nil {
		return fmt.Errorf("insert feedback: %w", err)
	}
	return nil
}

func (s *Store) ListFeedback(ctx context.Context, employeeID string) ([]Feedback, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, employee_id, feedback_text, feedback_type, status, submitted_at
		FROM employee_feedback
		WHERE employee_id = $1
		ORDER BY submitted_at DESC`, employeeID)
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	defer rows.Close()

	out := []Feedback{}
	for rows.Next() {
		var f Feedback
		if err := rows.Scan(&f.ID, &f.EmployeeID, &f.FeedbackText, &f.Type, &f.Status, &f.SubmittedAt); err != nil {
			return nil, fmt.Errorf("scan feedback: %w", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}
