package appraisal

import (
	"context"
	"encoding/json"
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

const appraisalColumns = `id, user_id, user_name, employee_id, employee, appraisal_period,
	ratings, feedback_cards, status, overall_score, reviewer_comments,
	submitted_at, created_at, updated_at`

func scanAppraisal(row pgx.Row) (SelfAppraisal, error) {
	var sa SelfAppraisal
	var ratings, cards []byte

	err := row.Scan(&sa.ID, &sa.UserID, &sa.UserName, &sa.EmployeeID, &sa.Employee,
		&sa.AppraisalPeriod, &ratings, &cards, &sa.Status, &sa.OverallScore,
		&sa.ReviewerComments, &sa.SubmittedAt, &sa.CreatedAt, &sa.UpdatedAt)
	if err != nil {
		return SelfAppraisal{}, err
	}

	if err := json.Unmarshal(ratings, &sa.Ratings); err != nil {
		return SelfAppraisal{}, fmt.Errorf("decode ratings: %w", err)
	}
	if err := json.Unmarshal(cards, &sa.FeedbackCards); err != nil {
		return SelfAppraisal{}, fmt.Errorf("decode feedback cards: %w", err)
	}

	return sa, nil
}

func encodeOwned(sa *SelfAppraisal) (ratings, cards []byte, err error) {
	if sa.Ratings == nil {
		sa.Ratings = []Rating{}
	}
	if sa.FeedbackCards == nil {
		sa.FeedbackCards = []FeedbackCard{}
	}

	ratings, err = json.Marshal(sa.Ratings)
	if err != nil {
		return nil, nil, fmt.Errorf("encode ratings: %w", err)
	}
	cards, err = json.Marshal(sa.FeedbackCards)
	if err != nil {
		return nil, nil, fmt.Errorf("encode feedback cards: %w", err)
	}
	return ratings, cards, nil
}

func (s *Store) Insert(ctx context.Context, sa *SelfAppraisal) error {
	ratings, cards, err := encodeOwned(sa)
	if err != nil {
		return err
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO self_appraisals (id, user_id, user_name, employee_id, employee,
			appraisal_period, ratings, feedback_cards, status, overall_score,
			reviewer_comments, submitted_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		sa.ID, sa.UserID, sa.UserName, sa.EmployeeID, sa.Employee, sa.AppraisalPeriod,
		ratings, cards, sa.Status, sa.OverallScore, sa.ReviewerComments,
		sa.SubmittedAt, sa.CreatedAt, sa.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert self appraisal: %w", err)
	}
	return nil
}

func (s *Store) List(ctx context.Context, f Filter) ([]SelfAppraisal, int, error) {
	where := " WHERE 1=1"
	args := []any{}

	if f.Status != "" {
		args = append(args, f.Status)
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if f.EmployeeID != "" {
		args = append(args, f.EmployeeID)
		where += fmt.Sprintf(" AND employee_id = $%d", len(args))
	}
	if f.Employee != "" {
		args = append(args, "%"+f.Employee+"%")
		where += fmt.Sprintf(" AND employee ILIKE $%d", len(args))
	}

	var total int
	if err := s.pool.QueryRow(ctx, "SELECT COUNT(*) FROM self_appraisals"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count self appraisals: %w", err)
	}

	query := "SELECT " + appraisalColumns + " FROM self_appraisals" + where + " ORDER BY created_at DESC"
	if f.Limit > 0 {
		args = append(args, f.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
		args = append(args, (f.Page-1)*f.Limit)
		query += fmt.Sprintf(" OFFSET $%d", len(args))
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list self appraisals: %w", err)
	}
	defer rows.Close()

	out := []SelfAppraisal{}
	for rows.Next() {
		sa, err := scanAppraisal(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan self appraisal: %w", err)
		}
		out = append(out, sa)
	}
	return out, total, rows.Err()
}

func (s *Store) Get(ctx context.Context, id string) (SelfAppraisal, error) {
	row := s.pool.QueryRow(ctx,
		"SELECT "+appraisalColumns+" FROM self_appraisals WHERE id = $1", id)

	sa, err := scanAppraisal(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return SelfAppraisal{}, ErrNotFound
		}
		return SelfAppraisal{}, fmt.Errorf("get self appraisal: %w", err)
	}
	return sa, nil
}

func (s *Store) Save(ctx context.Context, sa *SelfAppraisal) error {
	ratings, cards, err := encodeOwned(sa)
	if err != nil {
		return err
	}

	tag, err := s.pool.Exec(ctx, `
		UPDATE self_appraisals
		SET user_name = $2, employee_id = $3, employee = $4, appraisal_period = $5,
			ratings = $6, feedback_cards = $7, status = $8, overall_score = $9,
			reviewer_comments = $10, submitted_at = $11, updated_at = $12
		WHERE id = $1`,
		sa.ID, sa.UserName, sa.EmployeeID, sa.Employee, sa.AppraisalPeriod,
		ratings, cards, sa.Status, sa.OverallScore, sa.ReviewerComments,
		sa.SubmittedAt, sa.UpdatedAt)
	if err != nil {
		return fmt.Errorf("save self appraisal: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, "DELETE FROM self_appraisals WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete self appraisal: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) Statistics(ctx context.Context) (Statistics, error) {
	var st Statistics
	err := s.pool.QueryRow(ctx, `
		SELECT COUNT(*),
			COUNT(*) FILTER (WHERE status = 'submitted'),
			COUNT(*) FILTER (WHERE status = 'draft'),
			COALESCE(AVG(overall_score), 0)
		FROM self_appraisals`).
		Scan(&st.TotalAppraisals, &st.SubmittedCount, &st.DraftCount, &st.AverageScore)
	if err != nil {
		return Statistics{}, fmt.Errorf("self appraisal statistics: %w", err)
	}
	st.AverageScore = roundScore(st.AverageScore)
	return st, nil
}
