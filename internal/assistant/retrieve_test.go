package assistant

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/TruLie13/El-Paso-AI/internal/storage"
	storagemocks "github.com/TruLie13/El-Paso-AI/internal/storage/mocks"
	"github.com/TruLie13/El-Paso-AI/internal/vectorstore"
	vectormocks "github.com/TruLie13/El-Paso-AI/internal/vectorstore/mocks"
)

// stubEmbedder returns one distinct vector per input text, or a fixed error.
type stubEmbedder struct {
	err error
}

func (s *stubEmbedder) EmbedTexts(_ context.Context, texts []string) ([][]float32, error) {
	if s.err != nil {
		return nil, s.err
	}
	vecs := make([][]float32, len(texts))
	for i := range texts {
		vecs[i] = []float32{float32(i)}
	}
	return vecs, nil
}

func chunkHit(pointID, sectionID string, score float32) vectorstore.SearchResult {
	return vectorstore.SearchResult{
		PointID: pointID,
		Score:   score,
		Meta:    map[string]any{"section_id": sectionID},
	}
}

func TestRetrieveUnionDeduplicates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	vectors := vectormocks.NewMockVectorStore(ctrl)
	sections := storagemocks.NewMockSectionStore(ctrl)

	// Both queries hit chunks of the same section.
	vectors.EXPECT().
		Search(gomock.Any(), "code", gomock.Any(), 4, nil).
		Return([]vectorstore.SearchResult{chunkHit("p1", "sec-a", 0.9)}, nil).
		Times(2)
	sections.EXPECT().
		GetByID(gomock.Any(), "sec-a").
		Return(section("sec-a", "12.4.3", "Fire Lane Obstructions", "body"), nil).
		Times(2)

	r := NewRetriever(&stubEmbedder{}, vectors, "code", sections, 1, 0)
	got := r.Retrieve(context.Background(), "fire hydrant", []Query{
		{Text: "fire hydrant", Origin: OriginExpanded, Round: 1},
		{Text: "fire lane clearance", Origin: OriginExpanded, Round: 1},
	}, 4)

	if len(got) != 1 {
		t.Fatalf("Retrieve() = %d candidates, want 1 after dedup", len(got))
	}
	if len(got[0].SourceQueries) != 2 {
		t.Errorf("candidate has %d source queries, want 2", len(got[0].SourceQueries))
	}
}

func TestRetrieveQueryFailureDegrades(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	vectors := vectormocks.NewMockVectorStore(ctrl)
	sections := storagemocks.NewMockSectionStore(ctrl)

	// First query's vector is [0]: fails. Second ([1]): succeeds.
	vectors.EXPECT().
		Search(gomock.Any(), "code", gomock.Any(), 4, nil).
		DoAndReturn(func(_ context.Context, _ string, query []float32, _ int, _ map[string]any) ([]vectorstore.SearchResult, error) {
			if query[0] == 0 {
				return nil, errors.New("backend down")
			}
			return []vectorstore.SearchResult{chunkHit("p2", "sec-b", 0.8)}, nil
		}).
		Times(2)
	sections.EXPECT().
		GetByID(gomock.Any(), "sec-b").
		Return(section("sec-b", "18.16.020", "Residential Fences", "body"), nil)

	r := NewRetriever(&stubEmbedder{}, vectors, "code", sections, 1, 0)
	got := r.Retrieve(context.Background(), "fence height", []Query{
		{Text: "fence height"},
		{Text: "residential fences"},
	}, 4)

	if len(got) != 1 {
		t.Fatalf("Retrieve() = %d candidates, want 1 (failed query degrades to empty)", len(got))
	}
	if got[0].Section.ID != "sec-b" {
		t.Errorf("Retrieve() candidate = %s, want sec-b", got[0].Section.ID)
	}
}

func TestRetrieveFilterFallbackOnLowRecall(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	vectors := vectormocks.NewMockVectorStore(ctrl)
	sections := storagemocks.NewMockSectionStore(ctrl)

	// Similarity search finds one section; the floor of 3 triggers fallback.
	vectors.EXPECT().
		Search(gomock.Any(), "code", gomock.Any(), 4, nil).
		Return([]vectorstore.SearchResult{chunkHit("p1", "sec-a", 0.5)}, nil)
	sections.EXPECT().
		GetByID(gomock.Any(), "sec-a").
		Return(section("sec-a", "12.1.1", "Parking Meters", "body"), nil)
	sections.EXPECT().
		FilterSearch(gomock.Any(), storage.FilterConstraints{TitleKeyword: "parking"}).
		Return([]*storage.Section{
			section("sec-b", "12.2.1", "Parking Zones", "body"),
			section("sec-a", "12.1.1", "Parking Meters", "body"),
		}, nil)

	r := NewRetriever(&stubEmbedder{}, vectors, "code", sections, 3, 0)
	got := r.Retrieve(context.Background(), "What are the parking rules?", []Query{{Text: "parking rules"}}, 4)

	// The fallback grows the union versus similarity-only, without duplicating sec-a.
	if len(got) != 2 {
		t.Fatalf("Retrieve() = %d candidates, want 2 after fallback merge", len(got))
	}
}

func TestRetrieveFilterFallbackUsesSectionNumber(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	vectors := vectormocks.NewMockVectorStore(ctrl)
	sections := storagemocks.NewMockSectionStore(ctrl)

	vectors.EXPECT().
		Search(gomock.Any(), "code", gomock.Any(), 4, nil).
		Return(nil, nil)
	sections.EXPECT().
		FilterSearch(gomock.Any(), storage.FilterConstraints{SectionPrefix: "12.4.3"}).
		Return([]*storage.Section{section("sec-a", "12.4.3", "Fire Lane Obstructions", "body")}, nil)

	r := NewRetriever(&stubEmbedder{}, vectors, "code", sections, 3, 0)
	got := r.Retrieve(context.Background(), "What does 12.4.3 say?", []Query{{Text: "12.4.3"}}, 4)

	if len(got) != 1 || got[0].Section.SectionNumber != "12.4.3" {
		t.Errorf("Retrieve() = %v, want the 12.4.3 section from fallback", got)
	}
}

func TestRetrieveEmbedFailureFallsBackToFilter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	vectors := vectormocks.NewMockVectorStore(ctrl)
	sections := storagemocks.NewMockSectionStore(ctrl)

	// No Search expectations: embedding failed, similarity is skipped entirely.
	sections.EXPECT().
		FilterSearch(gomock.Any(), gomock.Any()).
		Return([]*storage.Section{section("sec-a", "9.1.1", "Noise Limits", "body")}, nil)

	r := NewRetriever(&stubEmbedder{err: errors.New("embedder down")}, vectors, "code", sections, 3, 0)
	got := r.Retrieve(context.Background(), "noise rules", []Query{{Text: "noise rules"}}, 4)

	if len(got) != 1 {
		t.Fatalf("Retrieve() = %d candidates, want 1 from fallback", len(got))
	}
}

func TestRetrieveSkipsHitsWithoutParent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	vectors := vectormocks.NewMockVectorStore(ctrl)
	sections := storagemocks.NewMockSectionStore(ctrl)

	vectors.EXPECT().
		Search(gomock.Any(), "code", gomock.Any(), 4, nil).
		Return([]vectorstore.SearchResult{
			{PointID: "p1", Score: 0.9, Meta: map[string]any{}}, // no section_id
			chunkHit("p2", "sec-gone", 0.8),
		}, nil)
	sections.EXPECT().
		GetByID(gomock.Any(), "sec-gone").
		Return(nil, storage.ErrNotFound)
	sections.EXPECT().
		FilterSearch(gomock.Any(), gomock.Any()).
		Return(nil, nil)

	r := NewRetriever(&stubEmbedder{}, vectors, "code", sections, 1, 0)
	got := r.Retrieve(context.Background(), "orphaned chunks", []Query{{Text: "orphaned chunks"}}, 4)

	if len(got) != 0 {
		t.Errorf("Retrieve() = %d candidates, want 0", len(got))
	}
}

func TestRetrieveSlowBackendDegrades(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	vectors := vectormocks.NewMockVectorStore(ctrl)
	sections := storagemocks.NewMockSectionStore(ctrl)

	// The backend never answers; it only returns once the round deadline
	// cancels the call.
	vectors.EXPECT().
		Search(gomock.Any(), "code", gomock.Any(), 4, nil).
		DoAndReturn(func(ctx context.Context, _ string, _ []float32, _ int, _ map[string]any) ([]vectorstore.SearchResult, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		})
	// The fallback fires on the empty union but its context is expired too.
	sections.EXPECT().
		FilterSearch(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ storage.FilterConstraints) ([]*storage.Section, error) {
			return nil, ctx.Err()
		})

	r := NewRetriever(&stubEmbedder{}, vectors, "code", sections, 1, 50*time.Millisecond)

	start := time.Now()
	got := r.Retrieve(context.Background(), "fire hydrant", []Query{{Text: "fire hydrant"}}, 4)

	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Fatalf("Retrieve() took %v, want the round deadline to cut it short", elapsed)
	}
	if len(got) != 0 {
		t.Errorf("Retrieve() = %d candidates, want 0 from a timed-out round", len(got))
	}
}
