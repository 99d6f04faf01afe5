package appraisal

import "context"

type StoreAPI interface {
	Insert(ctx context.Context, sa *SelfAppraisal) error
	List(ctx context.Context, f Filter) ([]SelfAppraisal, int, error)
	Get(ctx context.Context, id string) (SelfAppraisal, error)
	Save(ctx context.Context, sa *SelfAppraisal) error
	Delete(ctx context.Context, id string) error
	Statistics(ctx context.Context) (Statistics, error)
}
