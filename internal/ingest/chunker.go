package ingest

import (
	"strings"
	"unicode/utf8"
)

const (
	// maxChunkSize is the target chunk length in runes. Sized so a chunk
	// stays well inside the embedding model's context window.
	maxChunkSize = 500
	// minChunkSize is the floor below which a trailing fragment is merged
	// into the previous chunk instead of standing alone.
	minChunkSize = 50
)

// SplitSection splits a section body into embeddable chunks of at most
// maxChunkSize runes. Split points prefer paragraph boundaries, then line
// boundaries, then sentence boundaries, with a hard split as the last
// resort. Size is measured in runes, not bytes.
func SplitSection(body string) []string {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil
	}

	runes := []rune(body)
	if len(runes) <= maxChunkSize {
		return []string{body}
	}

	var chunks []string
	start := 0

	for start < len(runes) {
		end := start + maxChunkSize
		if end >= len(runes) {
			chunks = append(chunks, strings.TrimSpace(string(runes[start:])))
			break
		}

		window := string(runes[start:end])
		split := end
		if b := strings.LastIndex(window, "\n\n"); b != -1 {
			split = start + utf8.RuneCountInString(window[:b+2])
		} else if b := strings.LastIndex(window, "\n"); b != -1 {
			split = start + utf8.RuneCountInString(window[:b+1])
		} else if b := strings.LastIndex(window, ". "); b != -1 {
			split = start + utf8.RuneCountInString(window[:b+2])
		}

		chunks = append(chunks, strings.TrimSpace(string(runes[start:split])))
		start = split
	}

	// A tiny trailing fragment reads better appended to its predecessor.
	if n := len(chunks); n > 1 && utf8.RuneCountInString(chunks[n-1]) < minChunkSize {
		chunks[n-2] = chunks[n-2] + " " + chunks[n-1]
		chunks = chunks[:n-1]
	}

	out := chunks[:0]
	for _, c := range chunks {
		if c != "" {
			out = append(out, c)
		}
	}
	return out
}
