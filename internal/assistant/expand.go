package assistant

import "strings"

// maxQueries caps the number of retrieval queries per round.
const maxQueries = 5

// topicVariation maps question vocabulary to canned retrieval variations.
// Mirrors how people actually phrase municipal-code lookups: the question
// vocabulary and the code's own vocabulary rarely overlap, so topic hits add
// code-flavored phrasings alongside the raw question.
type topicVariation struct {
	triggers   []string
	variations []string
}

var topicVariations = []topicVariation{
	{
		triggers: []string{"fence", "wall", "height", "tall"},
		variations: []string{
			"residential fence height limits zoning",
			"screening wall fence height residential",
		},
	},
	{
		triggers: []string{"permit", "build", "construct", "install"},
		variations: []string{
			"building permit requirements",
		},
	},
	{
		triggers: []string{"park", "parking", "vehicle", "car"},
		variations: []string{
			"parking prohibited fire lane clearance",
			"vehicle parking restrictions street",
		},
	},
	{
		triggers: []string{"noise", "loud", "sound"},
		variations: []string{
			"noise ordinance decibel limits hours",
		},
	},
	{
		triggers: []string{"dog", "cat", "animal", "pet"},
		variations: []string{
			"animal control leash requirements",
		},
	},
}

// Expand turns one question into 1-5 retrieval queries. It is deterministic
// and side-effect free, and the original question is always the first query
// so retrieval never runs on an empty query list.
func Expand(question string) []Query {
	queries := []Query{{Text: question, Origin: OriginExpanded, Round: 1}}
	seen := map[string]struct{}{normalizeQuery(question): {}}

	add := func(text string) {
		if len(queries) >= maxQueries {
			return
		}
		key := normalizeQuery(text)
		if key == "" {
			return
		}
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		queries = append(queries, Query{Text: text, Origin: OriginExpanded, Round: 1})
	}

	// Keyword-only variant: the question stripped to its content words.
	if keywords := contentWords(question); len(keywords) > 0 {
		add(strings.Join(keywords, " "))
	}

	// Topic-vocabulary variants.
	questionTokens := make(map[string]struct{})
	for _, token := range tokenize(question) {
		questionTokens[token] = struct{}{}
	}
	for _, tv := range topicVariations {
		if !containsAny(questionTokens, tv.triggers) {
			continue
		}
		for _, variation := range tv.variations {
			add(variation)
		}
	}

	return queries
}

func containsAny(tokens map[string]struct{}, candidates []string) bool {
	for _, c := range candidates {
		if _, ok := tokens[c]; ok {
			return true
		}
	}
	return false
}

func normalizeQuery(text string) string {
	return strings.Join(tokenize(text), " ")
}
