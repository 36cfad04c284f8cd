package assistant

import (
	"github.com/TruLie13/El-Paso-AI/internal/storage"
)

// QueryOrigin records how a retrieval query was produced.
type QueryOrigin string

const (
	// OriginExpanded marks queries derived from the user's question before round 1.
	OriginExpanded QueryOrigin = "expanded"
	// OriginTargeted marks queries derived from a draft answer for round 2.
	OriginTargeted QueryOrigin = "targeted"
)

// Query is one retrieval query issued against the chunk index.
type Query struct {
	Text   string
	Origin QueryOrigin
	Round  int // 1 or 2
}

// Candidate is a section surfaced by retrieval, before scoring.
type Candidate struct {
	Section *storage.Section
	// SourceQueries lists the queries that retrieved this section.
	SourceQueries []Query
}

// ScoredCandidate wraps a section with its relevance score.
// Created per retrieval round and discarded once the ranking is consumed.
type ScoredCandidate struct {
	Section *storage.Section
	// RawMatches is the number of literal question-term occurrences in the body.
	RawMatches int
	// SectionMatch is true when the question names this section's number
	// (exactly or by dotted prefix).
	SectionMatch bool
	// Score is the combined relevance score used for ranking.
	Score float64
	// SourceQueries lists the queries that retrieved this section.
	SourceQueries []Query
}

// EvidenceSet is a ranked, deduplicated, size-capped sequence of scored
// sections. Ordering: score descending, then explicit section-number match,
// then section ID for determinism. No two elements share a section ID.
type EvidenceSet []ScoredCandidate

// Citations returns the section numbers of the evidence, in rank order,
// skipping unnumbered sections and duplicates.
func (e EvidenceSet) Citations() []string {
	seen := make(map[string]struct{}, len(e))
	citations := make([]string, 0, len(e))
	for _, c := range e {
		if c.Section == nil || c.Section.SectionNumber == "" {
			continue
		}
		if _, ok := seen[c.Section.SectionNumber]; ok {
			continue
		}
		seen[c.Section.SectionNumber] = struct{}{}
		citations = append(citations, c.Section.SectionNumber)
	}
	return citations
}

// AskRequest is a single question for the assistant.
type AskRequest struct {
	Question string `json:"question"`
}

// EvidenceRef describes one evidence section in an answer, for display.
type EvidenceRef struct {
	SectionNumber string  `json:"section_number"`
	Title         string  `json:"title"`
	Score         float64 `json:"score"`
}

// AskResponse is the assistant's answer with its supporting citations.
type AskResponse struct {
	Answer string `json:"answer"`
	// Citations are the section numbers of the evidence backing the answer.
	Citations []string `json:"citations"`
	// Evidence lists the sections passed to the generator, in rank order.
	Evidence []EvidenceRef `json:"evidence"`
	// EvidenceRounds is 1 when the first answer sufficed, 2 when a targeted
	// second retrieval pass ran.
	EvidenceRounds int `json:"evidence_rounds"`
}

// session holds the per-question state. It lives for one Ask call only;
// no state is shared between questions.
type session struct {
	question  string
	round     int
	queries   []Query
	evidence1 EvidenceSet
	evidence2 EvidenceSet
	draft     string
}
