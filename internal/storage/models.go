package storage

import "time"

// Section represents one numbered section of the municipal code.
// Sections are immutable after ingestion; the assistant only reads them.
type Section struct {
	ID            string // UUID
	SectionNumber string // Structured identifier, e.g. "12.4.3". May be empty for unnumbered fragments.
	Title         string // Heading derived from the section's first line
	Body          string // Full section text
	TitleNumber   string // Code title the section belongs to, e.g. "12"
	Chapter       string // Chapter within the title, e.g. "12.4"
	CreatedAt     time.Time
}

// Chunk represents an embeddable fragment of a section, used only as the
// unit of similarity search. The ID doubles as the Qdrant point ID.
type Chunk struct {
	ID         string // UUID (same as Qdrant point ID)
	SectionID  string // Foreign key to sections.id
	ChunkIndex int    // Index within the section (starts at 0)
	Text       string // Chunk text content
}

// FilterConstraints holds the attribute constraints understood by the
// structured-filter backend. Zero values mean "no constraint".
type FilterConstraints struct {
	// SectionPrefix matches section_number exactly or as a dotted prefix
	// (e.g. "12.4" matches "12.4.3").
	SectionPrefix string
	// TitleKeyword matches sections whose title contains the keyword
	// (case-insensitive).
	TitleKeyword string
	// Limit caps the number of returned sections. 0 means the default cap.
	Limit int
}
