package ingest

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSplitSectionShortBody(t *testing.T) {
	body := "No vehicle may park within fifteen feet of a fire hydrant."
	chunks := SplitSection(body)

	if len(chunks) != 1 {
		t.Fatalf("SplitSection() = %d chunks, want 1", len(chunks))
	}
	if chunks[0] != body {
		t.Errorf("SplitSection()[0] = %q, want the whole body", chunks[0])
	}
}

func TestSplitSectionEmpty(t *testing.T) {
	if chunks := SplitSection("   \n  "); chunks != nil {
		t.Errorf("SplitSection(blank) = %v, want nil", chunks)
	}
}

func TestSplitSectionRespectsMaxSize(t *testing.T) {
	sentence := "The permit holder shall maintain the required clearance at all times. "
	body := strings.Repeat(sentence, 40)

	chunks := SplitSection(body)
	if len(chunks) < 2 {
		t.Fatalf("SplitSection() = %d chunks, want several for a long body", len(chunks))
	}
	for i, c := range chunks {
		if n := utf8.RuneCountInString(c); n > maxChunkSize {
			t.Errorf("chunk %d is %d runes, exceeds %d", i, n, maxChunkSize)
		}
		if c == "" {
			t.Errorf("chunk %d is empty", i)
		}
	}
}

func TestSplitSectionPrefersSentenceBoundaries(t *testing.T) {
	sentence := "Fences in residential districts shall not exceed six feet in height. "
	body := strings.Repeat(sentence, 20)

	chunks := SplitSection(body)
	for i, c := range chunks[:len(chunks)-1] {
		if !strings.HasSuffix(c, ".") {
			t.Errorf("chunk %d does not end at a sentence boundary: %q", i, c[len(c)-20:])
		}
	}
}

func TestSplitSectionNoTextLost(t *testing.T) {
	sentence := "Each violation of this section is a separate offense under this code. "
	body := strings.TrimSpace(strings.Repeat(sentence, 30))

	chunks := SplitSection(body)
	joined := strings.Join(chunks, " ")

	// Whitespace is normalized at split points, so compare content words.
	if strings.Join(strings.Fields(joined), " ") != strings.Join(strings.Fields(body), " ") {
		t.Error("SplitSection() lost or altered text across split points")
	}
}

func TestSplitSectionMergesTinyTail(t *testing.T) {
	body := strings.Repeat("word ", 99) + "\ntail."

	chunks := SplitSection(body)
	last := chunks[len(chunks)-1]
	if utf8.RuneCountInString(last) < minChunkSize && len(chunks) > 1 {
		t.Errorf("tiny trailing chunk survived: %q", last)
	}
}
