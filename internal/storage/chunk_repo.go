package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_chunk_store.go -package=mocks github.com/TruLie13/El-Paso-AI/internal/storage ChunkStore

import (
	"context"
	"database/sql"
	"fmt"
)

// ChunkStore defines the interface for chunk storage operations.
type ChunkStore interface {
	// Insert inserts a single chunk. The chunk.ID must be set (UUID) before calling.
	Insert(ctx context.Context, chunk *Chunk) error
	// GetByID gets a chunk by its ID. Returns ErrNotFound if not found.
	GetByID(ctx context.Context, id string) (*Chunk, error)
	// ListIDsBySection returns the IDs of all chunks belonging to a section.
	ListIDsBySection(ctx context.Context, sectionID string) ([]string, error)
	// DeleteBySection deletes all chunks for a given section ID.
	DeleteBySection(ctx context.Context, sectionID string) error
	// Count returns the total number of stored chunks.
	Count(ctx context.Context) (int, error)
}

// ChunkRepo provides methods for chunk operations.
// It implements the ChunkStore interface.
type ChunkRepo struct {
	db *sql.DB
}

// NewChunkRepo creates a new ChunkRepo.
func NewChunkRepo(db *sql.DB) *ChunkRepo {
	return &ChunkRepo{db: db}
}

// Insert inserts a single chunk. The chunk.ID must be set (UUID) before calling.
func (r *ChunkRepo) Insert(ctx context.Context, chunk *Chunk) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO chunks (id, section_id, chunk_index, text) VALUES (?, ?, ?, ?)",
		chunk.ID, chunk.SectionID, chunk.ChunkIndex, chunk.Text,
	)
	if err != nil {
		return fmt.Errorf("failed to insert chunk: %w", err)
	}
	return nil
}

// GetByID gets a chunk by its ID. Returns ErrNotFound if not found.
func (r *ChunkRepo) GetByID(ctx context.Context, id string) (*Chunk, error) {
	var chunk Chunk
	err := r.db.QueryRowContext(ctx,
		"SELECT id, section_id, chunk_index, text FROM chunks WHERE id = ?",
		id,
	).Scan(&chunk.ID, &chunk.SectionID, &chunk.ChunkIndex, &chunk.Text)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get chunk: %w", err)
	}
	return &chunk, nil
}

// ListIDsBySection returns the IDs of all chunks belonging to a section.
// The IDs double as Qdrant point IDs, so re-ingestion uses this list to
// delete stale vectors.
func (r *ChunkRepo) ListIDsBySection(ctx context.Context, sectionID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id FROM chunks WHERE section_id = ? ORDER BY chunk_index",
		sectionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list chunk IDs: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan chunk ID: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return ids, nil
}

// DeleteBySection deletes all chunks for a given section ID.
// Used when re-ingesting the corpus to remove stale chunks.
func (r *ChunkRepo) DeleteBySection(ctx context.Context, sectionID string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM chunks WHERE section_id = ?", sectionID)
	if err != nil {
		return fmt.Errorf("failed to delete chunks by section: %w", err)
	}
	return nil
}

// Count returns the total number of stored chunks.
func (r *ChunkRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM chunks").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count chunks: %w", err)
	}
	return n, nil
}
