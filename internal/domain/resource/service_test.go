package resource

import (
	"context"
	"testing"
	"time"
)

type storedDoc struct {
	id  string
	doc map[string]any
}

type fakeDocStore struct {
	rows map[string][]storedDoc
}

func newFakeDocStore() *fakeDocStore {
	return &fakeDocStore{rows: map[string][]storedDoc{}}
}

func (f *fakeDocStore) Insert(_ context.Context, collection, id string, doc map[string]any, _ time.Time) error {
	copied := map[string]any{}
	for k, v := range doc {
		copied[k] = v
	}
	f.rows[collection] = append(f.rows[collection], storedDoc{id: id, doc: copied})
	return nil
}

func (f *fakeDocStore) List(_ context.Context, collection, exactField, exactValue, _, _ string) ([]map[string]any, error) {
	var out []map[string]any
	for _, row := range f.rows[collection] {
		if exactValue != "" && row.doc[exactField] != exactValue {
			continue
		}
		out = append(out, row.doc)
	}
	return out, nil
}

func (f *fakeDocStore) Get(_ context.Context, collection, id string) (map[string]any, error) {
	for _, row := range f.rows[collection] {
		if row.id == id {
			return row.doc, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeDocStore) Update(_ context.Context, collection, id string, doc map[string]any, _ time.Time) error {
	for i, row := range f.rows[collection] {
		if row.id == id {
			f.rows[collection][i].doc = doc
			return nil
		}
	}
	return ErrNotFound
}

func (f *fakeDocStore) Delete(_ context.Context, collection, id string) error {
	for i, row := range f.rows[collection] {
		if row.id == id {
			f.rows[collection] = append(f.rows[collection][:i], f.rows[collection][i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func TestCreateStampsServerFields(t *testing.T) {
	store := newFakeDocStore()
	at := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	svc := NewService(store).WithClock(func() time.Time { return at })
	def := testDefinition()

	doc, err := svc.Create(context.Background(), def, map[string]any{"employee": "Priya Sharma"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if doc["id"] == "" || doc["id"] == nil {
		t.Error("expected a generated id")
	}
	created, ok := doc["createdAt"].(time.Time)
	if !ok || !created.Equal(at) {
		t.Errorf("createdAt = %v, want %v", doc["createdAt"], at)
	}

	// The stored body never carries the server-managed keys.
	stored := store.rows[def.Collection][0].doc
	for _, key := range []string{"id", "createdAt", "updatedAt"} {
		if _, present := stored[key]; present {
			t.Errorf("stored doc must not contain %q", key)
		}
	}
}

func TestUpdateUnknownIDReturnsNotFound(t *testing.T) {
	svc := NewService(newFakeDocStore())

	_, err := svc.Update(context.Background(), testDefinition(), "missing", map[string]any{"status": "Completed"})
	if err != ErrNotFound {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
}

func TestBulkImportSkipsInvalidRows(t *testing.T) {
	store := newFakeDocStore()
	svc := NewService(store)
	def := testDefinition()

	rows := []map[string]any{
		{"employee": "A"},
		{"employee": "B", "rating": float64(4)},
		{"status": "Pending"},
		{"employee": "C", "rating": float64(9)},
		{"employee": "D"},
	}
	res := svc.BulkImport(context.Background(), def, rows)

	if res.Created != 3 || res.Failed != 2 {
		t.Fatalf("result = %+v, want 3 created / 2 failed", res)
	}
	if len(store.rows[def.Collection]) != 3 {
		t.Errorf("stored rows = %d, want 3", len(store.rows[def.Collection]))
	}
}

func TestBulkImportReplayDuplicates(t *testing.T) {
	store := newFakeDocStore()
	svc := NewService(store)
	def := testDefinition()
	rows := []map[string]any{{"employee": "A"}, {"employee": "B"}}

	svc.BulkImport(context.Background(), def, rows)
	svc.BulkImport(context.Background(), def, rows)

	if got := len(store.rows[def.Collection]); got != 4 {
		t.Errorf("stored rows = %d, replay should duplicate to 4", got)
	}
}
