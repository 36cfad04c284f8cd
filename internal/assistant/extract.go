package assistant

import (
	"sort"
	"strings"
)

const (
	// maxTargetQueries caps the new queries derived from a draft answer,
	// excluding the keyword safety net.
	maxTargetQueries = 3
	// maxTargetTerms caps the terms in the novel-term query.
	maxTargetTerms = 4
	// minTargetTermLength filters out short tokens that retrieve noise.
	minTargetTermLength = 4
)

// ExtractTargets derives targeted round-2 queries from a draft answer: the
// things the model "almost found": section numbers it mentioned and content
// words it introduced that the question never contained. The question's
// keyword variant is always appended as a safety net, so the result is never
// empty even for a garbage draft.
func ExtractTargets(answer, question string) []Query {
	var queries []Query
	seen := make(map[string]struct{})

	add := func(text string) {
		key := normalizeQuery(text)
		if key == "" {
			return
		}
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		queries = append(queries, Query{Text: text, Origin: OriginTargeted, Round: 2})
	}

	// Section numbers named in the draft are the strongest leads: retrieve
	// each directly.
	for _, number := range sectionNumbersIn(answer) {
		if len(queries) >= maxTargetQueries {
			break
		}
		add("section " + number)
	}

	// Novel content words: present in the draft, absent from the question.
	if len(queries) < maxTargetQueries {
		if novel := novelTerms(answer, question); len(novel) > 0 {
			add(strings.Join(novel, " "))
		}
	}

	// Safety net: the question's keyword variant, or the question itself
	// when it is all stopwords.
	if keywords := contentWords(question); len(keywords) > 0 {
		add(strings.Join(keywords, " "))
	} else {
		add(question)
	}

	return queries
}

// novelTerms returns up to maxTargetTerms content words from the answer that
// do not appear in the question, most frequent first. Ties are broken
// alphabetically so extraction stays deterministic.
func novelTerms(answer, question string) []string {
	questionSet := make(map[string]struct{})
	for _, token := range tokenize(question) {
		questionSet[token] = struct{}{}
	}

	freq := make(map[string]int)
	for _, token := range contentWords(answer) {
		if len(token) < minTargetTermLength {
			continue
		}
		if _, inQuestion := questionSet[token]; inQuestion {
			continue
		}
		freq[token]++
	}

	terms := make([]string, 0, len(freq))
	for term := range freq {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if freq[terms[i]] != freq[terms[j]] {
			return freq[terms[i]] > freq[terms[j]]
		}
		return terms[i] < terms[j]
	})

	if len(terms) > maxTargetTerms {
		terms = terms[:maxTargetTerms]
	}
	return terms
}
