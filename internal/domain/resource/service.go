package resource

import (
	"context"
	"log/slog"
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

func (s *Service) Create(ctx context.Context, def Definition, input map[string]any) (map[string]any, error) {
	doc, err := def.BuildCreate(input)
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	now := s.now().UTC()
	if err := s.store.Insert(ctx, def.Collection, id, doc, now); err != nil {
		return nil, err
	}

	doc["id"] = id
	doc["createdAt"] = now
	doc["updatedAt"] = now
	return doc, nil
}

// List returns the collection ordered newest first, optionally narrowed by
// the definition's exact-match and substring filters.
func (s *Service) List(ctx context.Context, def Definition, exactValue, likeValue string) ([]map[string]any, error) {
	return s.store.List(ctx, def.Collection, def.IDFilter, exactValue, def.NameFilter, likeValue)
}

func (s *Service) Get(ctx context.Context, def Definition, id string) (map[string]any, error) {
	return s.store.Get(ctx, def.Collection, id)
}

func (s *Service) Update(ctx context.Context, def Definition, id string, input map[string]any) (map[string]any, error) {
	doc, err := s.store.Get(ctx, def.Collection, id)
	if err != nil {
		return nil, err
	}

	merged, err := def.ApplyPatch(doc, input)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	if err := s.store.Update(ctx, def.Collection, id, merged, now); err != nil {
		return nil, err
	}

	merged["id"] = id
	merged["createdAt"] = doc["createdAt"]
	merged["updatedAt"] = now
	return merged, nil
}

func (s *Service) Delete(ctx context.Context, def Definition, id string) error {
	return s.store.Delete(ctx, def.Collection, id)
}

type BulkResult struct {
	Created int `json:"created"`
	Failed  int `json:"failed"`
}

// BulkImport persists rows one at a time; rows that fail validation or
// insertion are counted and logged, never aborting the batch.
func (s *Service) BulkImport(ctx context.Context, def Definition, rows []map[string]any) BulkResult {
	var res BulkResult

	for i, row := range rows {
		doc, err := def.BuildCreate(row)
		if err != nil {
			res.Failed++
			slog.Warn("bulk import row skipped",
				"resource", def.Name, "row", i+1, "error", err)
			continue
		}
		if err := s.store.Insert(ctx, def.Collection, uuid.NewString(), doc, s.now().UTC()); err != nil {
			res.Failed++
			slog.Warn("bulk import row failed",
				"resource", def.Name, "row", i+1, "error", err)
			continue
		}
		res.Created++
	}
	return res
}
