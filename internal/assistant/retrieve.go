package assistant

import (
	"context"
	"sync"
	"time"

	"github.com/TruLie13/El-Paso-AI/internal/contextutil"
	"github.com/TruLie13/El-Paso-AI/internal/llm"
	"github.com/TruLie13/El-Paso-AI/internal/storage"
	"github.com/TruLie13/El-Paso-AI/internal/vectorstore"
)

// DefaultMinRecall is the union-size floor below which the structured-filter
// fallback fires. Matches the original behavior of falling back when fewer
// than three sections were found.
const DefaultMinRecall = 3

// DefaultSearchTimeout bounds one retrieval round end to end. A hung backend
// must degrade the round to an empty result, never stall the session.
const DefaultSearchTimeout = 10 * time.Second

// Retriever is the hybrid retrieval layer: similarity search over child
// chunks expanded to parent sections, with a structured-filter fallback when
// recall is too low. All backend failures degrade to empty results for the
// affected query; retrieval never aborts a session.
type Retriever struct {
	embedder      llm.Embedder
	vectors       vectorstore.VectorStore
	collection    string
	sections      storage.SectionStore
	minRecall     int
	searchTimeout time.Duration
}

// NewRetriever creates a hybrid retriever. minRecall <= 0 selects
// DefaultMinRecall; searchTimeout <= 0 selects DefaultSearchTimeout.
func NewRetriever(embedder llm.Embedder, vectors vectorstore.VectorStore, collection string, sections storage.SectionStore, minRecall int, searchTimeout time.Duration) *Retriever {
	if minRecall <= 0 {
		minRecall = DefaultMinRecall
	}
	if searchTimeout <= 0 {
		searchTimeout = DefaultSearchTimeout
	}
	return &Retriever{
		embedder:      embedder,
		vectors:       vectors,
		collection:    collection,
		sections:      sections,
		minRecall:     minRecall,
		searchTimeout: searchTimeout,
	}
}

// Retrieve runs every query against the chunk index, maps hits to their
// parent sections and unions the results (dedup by section ID). If the union
// stays below the recall floor, one structured-filter lookup derived from the
// question merges in whatever else it finds.
func (r *Retriever) Retrieve(ctx context.Context, question string, queries []Query, topNPerQuery int) []Candidate {
	logger := contextutil.LoggerFromContext(ctx)

	if topNPerQuery <= 0 {
		topNPerQuery = 4
	}

	// One deadline bounds the whole round. The qdrant client sets no default
	// gRPC deadline, so an unresponsive backend would otherwise block the
	// session until the caller disconnects.
	ctx, cancel := context.WithTimeout(ctx, r.searchTimeout)
	defer cancel()

	texts := make([]string, len(queries))
	for i, q := range queries {
		texts[i] = q.Text
	}

	// One batched embedding call for all queries in the round. If it fails
	// the whole round degrades to the structured-filter fallback.
	var vectors [][]float32
	if len(texts) > 0 {
		var err error
		vectors, err = r.embedder.EmbedTexts(ctx, texts)
		if err != nil {
			logger.WarnContext(ctx, "failed to embed queries, similarity search skipped", "queries", len(texts), "error", err)
			vectors = nil
		}
	}

	byID := make(map[string]*Candidate)
	var mu sync.Mutex

	// Fan out one similarity search per query. The union is commutative, so
	// completion order does not matter.
	if len(vectors) == len(queries) {
		var wg sync.WaitGroup
		for i := range queries {
			wg.Add(1)
			go func(query Query, vec []float32) {
				defer wg.Done()

				results, err := r.vectors.Search(ctx, r.collection, vec, topNPerQuery, nil)
				if err != nil {
					logger.WarnContext(ctx, "similarity search failed, treating as empty", "query", query.Text, "error", err)
					return
				}

				for _, hit := range results {
					section := r.parentSection(ctx, hit)
					if section == nil {
						continue
					}
					mu.Lock()
					if cand, ok := byID[section.ID]; ok {
						cand.SourceQueries = append(cand.SourceQueries, query)
					} else {
						byID[section.ID] = &Candidate{Section: section, SourceQueries: []Query{query}}
					}
					mu.Unlock()
				}
			}(queries[i], vectors[i])
		}
		wg.Wait()
	}

	// Structured-filter fallback when similarity recall is too low.
	if len(byID) < r.minRecall {
		constraints := deriveConstraints(question)
		fallback, err := r.sections.FilterSearch(ctx, constraints)
		if err != nil {
			logger.WarnContext(ctx, "structured-filter fallback failed, treating as empty", "error", err)
		} else if len(fallback) > 0 {
			logger.InfoContext(ctx, "structured-filter fallback merged sections",
				"found", len(fallback), "similarity_union", len(byID))
			fallbackQuery := Query{Text: question, Origin: OriginExpanded, Round: 1}
			for _, section := range fallback {
				if _, ok := byID[section.ID]; !ok {
					byID[section.ID] = &Candidate{Section: section, SourceQueries: []Query{fallbackQuery}}
				}
			}
		}
	}

	candidates := make([]Candidate, 0, len(byID))
	for _, cand := range byID {
		candidates = append(candidates, *cand)
	}

	logger.DebugContext(ctx, "retrieval round completed", "queries", len(queries), "sections", len(candidates))
	return candidates
}

// parentSection expands a chunk hit to its owning section using the
// section_id carried in the point payload. Lookup failures degrade to nil.
func (r *Retriever) parentSection(ctx context.Context, hit vectorstore.SearchResult) *storage.Section {
	logger := contextutil.LoggerFromContext(ctx)

	sectionID, _ := hit.Meta["section_id"].(string)
	if sectionID == "" {
		logger.WarnContext(ctx, "chunk hit missing section_id payload", "point_id", hit.PointID)
		return nil
	}

	section, err := r.sections.GetByID(ctx, sectionID)
	if err != nil {
		logger.WarnContext(ctx, "failed to load parent section", "section_id", sectionID, "error", err)
		return nil
	}
	return section
}

// deriveConstraints translates a question into structured-filter constraints:
// an explicit section number wins; otherwise the longest content word serves
// as a title keyword.
func deriveConstraints(question string) storage.FilterConstraints {
	if numbers := sectionNumbersIn(question); len(numbers) > 0 {
		return storage.FilterConstraints{SectionPrefix: numbers[0]}
	}

	longest := ""
	for _, word := range contentWords(question) {
		if len(word) > len(longest) {
			longest = word
		}
	}
	return storage.FilterConstraints{TitleKeyword: longest}
}
