package ingest

import (
	"math"
	"sort"
	"unicode/utf8"
)

// Stats summarizes one ingestion run.
type Stats struct {
	// SectionsParsed is the number of sections kept after length filtering.
	SectionsParsed int `json:"sections_parsed"`
	// SectionsDropped is the number of candidates dropped as too short.
	SectionsDropped int `json:"sections_dropped"`
	// SectionsStored is the number of sections written to storage.
	SectionsStored int `json:"sections_stored"`
	// SectionsReplaced is the number of stored sections that replaced an
	// earlier ingestion of the same section number.
	SectionsReplaced int `json:"sections_replaced"`
	// SectionsFailed is the number of sections that could not be stored.
	SectionsFailed int `json:"sections_failed"`
	// ChunksEmbedded is the number of child chunks embedded and upserted.
	ChunksEmbedded int `json:"chunks_embedded"`
	// ChunkSizeStats describes chunk lengths in runes.
	ChunkSizeStats ChunkSizeStats `json:"chunk_size_stats"`
}

// ChunkSizeStats contains rune-length statistics for the embedded chunks.
type ChunkSizeStats struct {
	Min  int     `json:"min"`
	Max  int     `json:"max"`
	Mean float64 `json:"mean"`
	P95  int     `json:"p95"`
}

// computeChunkSizeStats computes min, max, mean, and p95 rune lengths.
func computeChunkSizeStats(chunks []string) ChunkSizeStats {
	if len(chunks) == 0 {
		return ChunkSizeStats{}
	}

	sizes := make([]int, len(chunks))
	sum := 0
	for i, c := range chunks {
		sizes[i] = utf8.RuneCountInString(c)
		sum += sizes[i]
	}
	sort.Ints(sizes)

	p95Index := int(math.Ceil(float64(len(sizes)) * 0.95))
	if p95Index >= len(sizes) {
		p95Index = len(sizes) - 1
	}

	mean := float64(sum) / float64(len(sizes))
	return ChunkSizeStats{
		Min:  sizes[0],
		Max:  sizes[len(sizes)-1],
		Mean: math.Round(mean*100) / 100,
		P95:  sizes[p95Index],
	}
}
