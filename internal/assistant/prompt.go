package assistant

import (
	"fmt"
	"strings"

	"github.com/TruLie13/El-Paso-AI/internal/llm"
)

const systemPrompt = "You are an expert on the El Paso municipal code. " +
	"Answer the user's question using only the provided code sections. " +
	"Always cite the specific section numbers you rely on. " +
	"If there are distances, heights, measurements, or specific requirements, state them exactly. " +
	"If the provided sections do not contain the answer, say so plainly."

// buildMessages assembles the chat messages for one generation call:
// the question followed by the evidence sections, each labeled with its
// citation so the model can reference it.
func buildMessages(question string, evidence EvidenceSet) []llm.Message {
	var context strings.Builder
	context.WriteString("RELEVANT CODE SECTIONS:\n\n")

	seen := make(map[string]struct{}, len(evidence))
	for _, c := range evidence {
		if c.Section == nil {
			continue
		}
		label := c.Section.SectionNumber
		if label == "" {
			label = c.Section.ID
		}
		if _, dup := seen[label]; dup {
			continue
		}
		seen[label] = struct{}{}

		fmt.Fprintf(&context, "Section %s", label)
		if c.Section.Title != "" {
			fmt.Fprintf(&context, " (%s)", c.Section.Title)
		}
		fmt.Fprintf(&context, ":\n%s\n\n", c.Section.Body)
	}

	userMessage := fmt.Sprintf("QUESTION: %s\n\n%s", question, context.String())

	return []llm.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: userMessage},
	}
}
