package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_section_store.go -package=mocks github.com/TruLie13/El-Paso-AI/internal/storage SectionStore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// defaultFilterLimit caps FilterSearch results when no limit is given.
const defaultFilterLimit = 10

// SectionStore defines the interface for section storage operations.
// It doubles as the structured-filter backend: FilterSearch answers
// metadata-constrained lookups when similarity search comes up short.
type SectionStore interface {
	// Upsert inserts a section or updates it in place when the ID already
	// exists. The section.ID must be set (UUID).
	Upsert(ctx context.Context, section *Section) error
	// GetByID gets a section by its ID. Returns ErrNotFound if not found.
	GetByID(ctx context.Context, id string) (*Section, error)
	// GetByNumber gets a section by its section number. Returns ErrNotFound if not found.
	GetByNumber(ctx context.Context, number string) (*Section, error)
	// FilterSearch returns sections matching the given attribute constraints.
	// Returns an empty slice when nothing matches (not an error).
	FilterSearch(ctx context.Context, constraints FilterConstraints) ([]*Section, error)
	// Count returns the total number of stored sections.
	Count(ctx context.Context) (int, error)
}

// SectionRepo provides methods for section operations.
// It implements the SectionStore interface.
type SectionRepo struct {
	db *sql.DB
}

// NewSectionRepo creates a new SectionRepo.
func NewSectionRepo(db *sql.DB) *SectionRepo {
	return &SectionRepo{db: db}
}

// Upsert inserts a section or updates it in place when the ID already
// exists. The section.ID must be set (UUID).
func (r *SectionRepo) Upsert(ctx context.Context, section *Section) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sections (id, section_number, title, body, title_number, chapter) VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   section_number = excluded.section_number,
		   title = excluded.title,
		   body = excluded.body,
		   title_number = excluded.title_number,
		   chapter = excluded.chapter`,
		section.ID, section.SectionNumber, section.Title, section.Body, section.TitleNumber, section.Chapter,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert section: %w", err)
	}
	return nil
}

// GetByID gets a section by its ID. Returns ErrNotFound if not found.
func (r *SectionRepo) GetByID(ctx context.Context, id string) (*Section, error) {
	return r.scanOne(r.db.QueryRowContext(ctx,
		"SELECT id, section_number, title, body, title_number, chapter, created_at FROM sections WHERE id = ?",
		id,
	))
}

// GetByNumber gets a section by its section number. Returns ErrNotFound if not found.
func (r *SectionRepo) GetByNumber(ctx context.Context, number string) (*Section, error) {
	return r.scanOne(r.db.QueryRowContext(ctx,
		"SELECT id, section_number, title, body, title_number, chapter, created_at FROM sections WHERE section_number = ?",
		number,
	))
}

// FilterSearch returns sections matching the given attribute constraints.
// Constraints are combined with AND; an empty constraint set returns nothing
// rather than dumping the whole corpus.
func (r *SectionRepo) FilterSearch(ctx context.Context, constraints FilterConstraints) ([]*Section, error) {
	var conds []string
	var args []any

	if constraints.SectionPrefix != "" {
		conds = append(conds, "(section_number = ? OR section_number LIKE ?)")
		args = append(args, constraints.SectionPrefix, constraints.SectionPrefix+".%")
	}
	if constraints.TitleKeyword != "" {
		conds = append(conds, "LOWER(title) LIKE ?")
		args = append(args, "%"+strings.ToLower(constraints.TitleKeyword)+"%")
	}
	if len(conds) == 0 {
		return []*Section{}, nil
	}

	limit := constraints.Limit
	if limit <= 0 {
		limit = defaultFilterLimit
	}
	args = append(args, limit)

	query := "SELECT id, section_number, title, body, title_number, chapter, created_at FROM sections WHERE " +
		strings.Join(conds, " AND ") + " ORDER BY section_number LIMIT ?"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to filter sections: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	sections := []*Section{}
	for rows.Next() {
		var s Section
		if err := rows.Scan(&s.ID, &s.SectionNumber, &s.Title, &s.Body, &s.TitleNumber, &s.Chapter, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan section: %w", err)
		}
		sections = append(sections, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return sections, nil
}

// Count returns the total number of stored sections.
func (r *SectionRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM sections").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count sections: %w", err)
	}
	return n, nil
}

func (r *SectionRepo) scanOne(row *sql.Row) (*Section, error) {
	var s Section
	err := row.Scan(&s.ID, &s.SectionNumber, &s.Title, &s.Body, &s.TitleNumber, &s.Chapter, &s.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get section: %w", err)
	}
	return &s, nil
}
