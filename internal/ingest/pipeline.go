package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/TruLie13/El-Paso-AI/internal/contextutil"
	"github.com/TruLie13/El-Paso-AI/internal/llm"
	"github.com/TruLie13/El-Paso-AI/internal/storage"
	"github.com/TruLie13/El-Paso-AI/internal/vectorstore"
)

// Pipeline ingests the municipal code corpus into SQLite and Qdrant:
// parse sections, split child chunks, embed, upsert.
type Pipeline struct {
	sections   storage.SectionStore
	chunks     storage.ChunkStore
	embedder   llm.Embedder
	vectors    vectorstore.VectorStore
	collection string
}

// NewPipeline creates an ingestion pipeline.
func NewPipeline(
	sections storage.SectionStore,
	chunks storage.ChunkStore,
	embedder llm.Embedder,
	vectors vectorstore.VectorStore,
	collection string,
) *Pipeline {
	return &Pipeline{
		sections:   sections,
		chunks:     chunks,
		embedder:   embedder,
		vectors:    vectors,
		collection: collection,
	}
}

// Run ingests the full corpus text. Failures on individual sections are
// logged and counted but do not stop the run; Run returns an error only
// when the corpus yields no sections at all or some sections failed.
func (p *Pipeline) Run(ctx context.Context, corpus string) (*Stats, error) {
	logger := contextutil.LoggerFromContext(ctx)

	parsed, dropped := ParseCorpus(corpus)
	stats := &Stats{
		SectionsParsed:  len(parsed),
		SectionsDropped: dropped,
	}

	logger.InfoContext(ctx, "corpus parsed", "sections", len(parsed), "dropped", dropped)
	if len(parsed) == 0 {
		return stats, fmt.Errorf("no sections found in corpus")
	}

	var allChunks []string
	for _, section := range parsed {
		select {
		case <-ctx.Done():
			return stats, ctx.Err()
		default:
		}

		chunkTexts, replaced, err := p.ingestSection(ctx, section)
		if err != nil {
			stats.SectionsFailed++
			logger.ErrorContext(ctx, "failed to ingest section",
				"section_number", section.Number, "error", err)
			continue
		}

		stats.SectionsStored++
		if replaced {
			stats.SectionsReplaced++
		}
		stats.ChunksEmbedded += len(chunkTexts)
		allChunks = append(allChunks, chunkTexts...)
	}

	stats.ChunkSizeStats = computeChunkSizeStats(allChunks)

	logger.InfoContext(ctx, "ingestion completed",
		"stored", stats.SectionsStored,
		"replaced", stats.SectionsReplaced,
		"failed", stats.SectionsFailed,
		"chunks", stats.ChunksEmbedded)

	if stats.SectionsFailed > 0 {
		return stats, fmt.Errorf("ingestion completed with %d failed sections", stats.SectionsFailed)
	}
	return stats, nil
}

// ingestSection stores one parsed section and its embedded child chunks.
// If the section number was ingested before, the old chunks are removed
// first and the section row keeps its ID.
func (p *Pipeline) ingestSection(ctx context.Context, parsed ParsedSection) (chunkTexts []string, replaced bool, err error) {
	logger := contextutil.LoggerFromContext(ctx)

	existing, err := p.sections.GetByNumber(ctx, parsed.Number)
	if err != nil && err != storage.ErrNotFound {
		return nil, false, fmt.Errorf("failed to check existing section: %w", err)
	}

	sectionID := uuid.New().String()
	if existing != nil {
		sectionID = existing.ID
		replaced = true

		oldChunkIDs, err := p.chunks.ListIDsBySection(ctx, sectionID)
		if err != nil {
			return nil, false, fmt.Errorf("failed to list old chunk IDs: %w", err)
		}
		if len(oldChunkIDs) > 0 {
			if err := p.vectors.Delete(ctx, p.collection, oldChunkIDs); err != nil {
				// New points overwrite by ID anyway, only orphans from a
				// changed chunk count would linger.
				logger.WarnContext(ctx, "failed to delete old vectors",
					"section_number", parsed.Number, "count", len(oldChunkIDs), "error", err)
			}
			if err := p.chunks.DeleteBySection(ctx, sectionID); err != nil {
				return nil, false, fmt.Errorf("failed to delete old chunks: %w", err)
			}
		}
	}

	section := &storage.Section{
		ID:            sectionID,
		SectionNumber: parsed.Number,
		Title:         parsed.Title,
		Body:          parsed.Body,
		TitleNumber:   parsed.TitleNumber(),
		Chapter:       parsed.Chapter(),
		CreatedAt:     time.Now().UTC(),
	}
	if err := p.sections.Upsert(ctx, section); err != nil {
		return nil, false, fmt.Errorf("failed to upsert section: %w", err)
	}

	chunkTexts = SplitSection(parsed.Body)
	if len(chunkTexts) == 0 {
		logger.WarnContext(ctx, "section produced no chunks", "section_number", parsed.Number)
		return nil, replaced, nil
	}

	embeddings, err := p.embedder.EmbedTexts(ctx, chunkTexts)
	if err != nil {
		return nil, false, fmt.Errorf("failed to embed chunks: %w", err)
	}
	if len(embeddings) != len(chunkTexts) {
		return nil, false, fmt.Errorf("embedding count mismatch: expected %d, got %d", len(chunkTexts), len(embeddings))
	}

	points := make([]vectorstore.Point, len(chunkTexts))
	for i, text := range chunkTexts {
		chunkID := uuid.New().String()

		if err := p.chunks.Insert(ctx, &storage.Chunk{
			ID:         chunkID,
			SectionID:  sectionID,
			ChunkIndex: i,
			Text:       text,
		}); err != nil {
			return nil, false, fmt.Errorf("failed to insert chunk: %w", err)
		}

		points[i] = vectorstore.Point{
			ID:  chunkID,
			Vec: embeddings[i],
			Meta: map[string]any{
				"section_id":     sectionID,
				"section_number": parsed.Number,
				"section_title":  parsed.Title,
				"chunk_index":    i,
			},
		}
	}

	if err := p.vectors.Upsert(ctx, p.collection, points); err != nil {
		return nil, false, fmt.Errorf("failed to upsert vectors: %w", err)
	}

	logger.DebugContext(ctx, "ingested section",
		"section_number", parsed.Number, "chunks", len(chunkTexts))
	return chunkTexts, replaced, nil
}
