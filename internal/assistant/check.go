package assistant

import (
	"strings"
	"unicode/utf8"
)

// Checker decides whether a generated answer needs a second, targeted
// retrieval pass. It is an interface so the heuristic can be tuned or
// replaced without touching the session flow.
type Checker interface {
	// NeedsMoreContext returns true when the answer looks insufficient.
	NeedsMoreContext(answer string) bool
}

// defaultMinAnswerLength is the informativeness floor in characters.
// Anything shorter than this cannot state a rule and its citation.
const defaultMinAnswerLength = 60

// hedgePhrases are markers of an answer that admits it is missing context.
// The list is deliberately short: every hit costs a second LLM call, so only
// unambiguous admissions of insufficiency belong here.
var hedgePhrases = []string{
	"i don't have enough information",
	"do not have enough information",
	"not enough information",
	"insufficient information",
	"not specified",
	"does not specify",
	"is unclear",
	"cannot determine",
	"unable to determine",
	"no relevant section",
	"not found in the provided",
	"need to see more sections",
}

// HeuristicChecker flags answers containing hedge phrases, lacking any
// section-number citation, or shorter than a minimum length.
type HeuristicChecker struct {
	// MinAnswerLength overrides the default informativeness floor when > 0.
	MinAnswerLength int
}

// NeedsMoreContext implements Checker.
func (c *HeuristicChecker) NeedsMoreContext(answer string) bool {
	minLength := c.MinAnswerLength
	if minLength <= 0 {
		minLength = defaultMinAnswerLength
	}

	trimmed := strings.TrimSpace(answer)
	if utf8.RuneCountInString(trimmed) < minLength {
		return true
	}

	lower := strings.ToLower(trimmed)
	for _, phrase := range hedgePhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}

	// An answer about a legal code that cites no section is not grounded.
	if len(sectionNumbersIn(trimmed)) == 0 {
		return true
	}

	return false
}
