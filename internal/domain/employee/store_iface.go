package employee

import "context"

type StoreAPI interface {
	InsertGoal(ctx context.Context, g *Goal) error
	ListGoals(ctx context.Context, employeeID string) ([]Goal, error)
	GetGoal(ctx context.Context, id string) (Goal, error)
	SaveGoal(ctx context.Context, g *Goal) error
	DeleteGoal(ctx context.Context, id string) error
	GoalStats(ctx context.Context, employeeID string) (total, completed int, err error)

	InsertQuery(ctx context.Context, q *Query) error
	ListQueries(ctx context.Context, employeeID string) ([]Query, error)

	InsertFeedback(ctx context.Context, f *Feedback) error
	ListFeedback(ctx context.Context, employeeID string) ([]Feedback, error)
}
