package kra

import "context"

type StoreAPI interface {
	Insert(ctx context.Context, rec KRA) (KRA, error)
	List(ctx context.Context, employeeID, employee string) ([]KRA, error)
	Get(ctx context.Context, id string) (KRA, error)
	Save(ctx context.Context, rec KRA) (KRA, error)
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) error
}
