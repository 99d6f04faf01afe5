package resource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store persists every generic entity as a jsonb document in one shared
// table, keyed by collection name.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

type StoreAPI interface {
	Insert(ctx context.Context, collection, id string, doc map[string]any, createdAt time.Time) error
	List(ctx context.Context, collection string, exactField, exactValue, likeField, likeValue string) ([]map[string]any, error)
	Get(ctx context.Context, collection, id string) (map[string]any, error)
	Update(ctx context.Context, collection, id string, doc map[string]any, updatedAt time.Time) error
	Delete(ctx context.Context, collection, id string) error
}

func hydrate(id string, raw []byte, createdAt, updatedAt time.Time) (map[string]any, error) {
	doc := map[string]any{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	doc["id"] = id
	doc["createdAt"] = createdAt
	doc["updatedAt"] = updatedAt
	return doc, nil
}

func body(doc map[string]any) ([]byte, error) {
	stripped := map[string]any{}
	for k, v := range doc {
		if isProtected(k) {
			continue
		}
		stripped[k] = v
	}
	raw, err := json.Marshal(stripped)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return raw, nil
}

func (s *Store) Insert(ctx context.Context, collection, id string, doc map[string]any, createdAt time.Time) error {
	raw, err := body(doc)
	if err != nil {
		return err
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO documents (id, collection, doc, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)`,
		id, collection, raw, createdAt)
	if err != nil {
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

func (s *Store) List(ctx context.Context, collection string, exactField, exactValue, likeField, likeValue string) ([]map[string]any, error) {
	query := "SELECT id, doc, created_at, updated_at FROM documents WHERE collection = $1"
	args := []any{collection}

	if exactField != "" && exactValue != "" {
		args = append(args, exactField, exactValue)
		query += fmt.Sprintf(" AND doc->>$%d = $%d", len(args)-1, len(args))
	}
	if likeField != "" && likeValue != "" {
		args = append(args, likeField, "%"+likeValue+"%")
		query += fmt.Sprintf(" AND doc->>$%d ILIKE $%d", len(args)-1, len(args))
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	out := []map[string]any{}
	for rows.Next() {
		var id string
		var raw []byte
		var createdAt, updatedAt time.Time
		if err := rows.Scan(&id, &raw, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		doc, err := hydrate(id, raw, createdAt, updatedAt)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

func (s *Store) Get(ctx context.Context, collection, id string) (map[string]any, error) {
	var raw []byte
	var createdAt, updatedAt time.Time

	err := s.pool.QueryRow(ctx, `
		SELECT doc, created_at, updated_at FROM documents
		WHERE collection = $1 AND id = $2`, collection, id).
		Scan(&raw, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get document: %w", err)
	}
	return hydrate(id, raw, createdAt, updatedAt)
}

func (s *Store) Update(ctx context.Context, collection, id string, doc map[string]any, updatedAt time.Time) error {
	raw, err := body(doc)
	if err != nil {
		return err
	}

	tag, err := s.pool.Exec(ctx, `
		UPDATE documents SET doc = $3, updated_at = $4
		WHERE collection = $1 AND id = $2`,
		collection, id, raw, updatedAt)
	if err != nil {
		return fmt.Errorf("update document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, collection, id string) error {
	tag, err := s.pool.Exec(ctx,
		"DELETE FROM documents WHERE collection = $1 AND id = $2", collection, id)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
