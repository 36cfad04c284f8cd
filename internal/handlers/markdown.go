package handlers

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// renderer converts generated answers and section bodies to HTML. Answers
// come back from the model as markdown; section bodies are plain text that
// goldmark wraps into paragraphs.
var renderer = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

func renderMarkdown(content string) (string, error) {
	var buf bytes.Buffer
	if err := renderer.Convert([]byte(content), &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return buf.String(), nil
}
