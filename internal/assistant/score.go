package assistant

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
)

const (
	// DefaultTopK is the evidence cap when no override is configured.
	DefaultTopK = 6

	// Word-match score: term-frequency matches normalized by section length,
	// scaled back into a usable range and capped so verbose sections cannot
	// outrank an explicit citation.
	wordMatchScale    = 40.0
	maxWordMatchScore = 4.0

	// Section-number bonuses dominate every achievable word-match + quality
	// combination: an exact citation in the question is the strongest
	// relevance signal.
	sectionExactBonus  = 10.0
	sectionPrefixBonus = 6.0

	// Quality bonus for domain vocabulary in the section body.
	qualityTermBonus = 0.5
	maxQualityBonus  = 2.0
)

// sectionNumberPattern matches municipal code section numbers like "12.4.3"
// or chapter prefixes like "18.16".
var sectionNumberPattern = regexp.MustCompile(`\b\d{1,2}\.\d{1,3}(?:\.\d{1,3})?\b`)

var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {}, "but": {}, "by": {},
	"can": {}, "do": {}, "does": {}, "for": {}, "from": {}, "has": {}, "have": {}, "how": {},
	"i": {}, "if": {}, "in": {}, "is": {}, "it": {}, "my": {}, "of": {}, "on": {}, "or": {},
	"that": {}, "the": {}, "there": {}, "to": {}, "was": {}, "were": {}, "what": {}, "when": {},
	"where": {}, "which": {}, "with": {}, "you": {}, "your": {},
}

// qualityTerms is a fixed vocabulary of regulatory language whose presence in
// a section body marks it as substantive rule text rather than boilerplate.
var qualityTerms = []string{
	"feet", "foot", "inches", "yards", "distance", "height", "width", "setback",
	"prohibited", "unlawful", "permitted", "allowed", "required", "shall",
	"violation", "penalty", "permit", "zoning", "clearance", "restriction",
}

// tokenize lowercases text and splits it into alphanumeric tokens.
func tokenize(text string) []string {
	if text == "" {
		return nil
	}

	var builder strings.Builder
	builder.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			builder.WriteRune(r)
		} else {
			builder.WriteRune(' ')
		}
	}
	tokens := strings.Fields(builder.String())
	if len(tokens) == 0 {
		return nil
	}
	return tokens
}

// contentWords returns the non-stopword tokens of text.
func contentWords(text string) []string {
	tokens := tokenize(text)
	if len(tokens) == 0 {
		return nil
	}
	result := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if _, isStop := stopwords[token]; isStop {
			continue
		}
		result = append(result, token)
	}
	return result
}

// sectionNumbersIn extracts the section-number tokens present in text.
func sectionNumbersIn(text string) []string {
	return sectionNumberPattern.FindAllString(text, -1)
}

// matchesSectionNumber reports whether any of the question's section-number
// tokens names the candidate number exactly or as a dotted prefix.
// The exact form scores higher than a prefix.
func matchesSectionNumber(questionNumbers []string, sectionNumber string) (exact, prefix bool) {
	if sectionNumber == "" {
		return false, false
	}
	for _, qn := range questionNumbers {
		if qn == sectionNumber {
			return true, false
		}
		if strings.HasPrefix(sectionNumber, qn+".") {
			prefix = true
		}
	}
	return false, prefix
}

// Score ranks candidate sections against a question and returns the capped
// evidence set. It is pure (no I/O) and total: nil sections are skipped and
// any question, including an empty one, produces a deterministic ordering.
//
// The score combines three signals:
//   - word-match: question content words literally present in the body,
//     term-frequency weighted, normalized by body length;
//   - section bonus: the question names the section's number (dominant);
//   - quality bonus: regulatory vocabulary in the body.
func Score(question string, candidates []Candidate, topK int) EvidenceSet {
	if topK <= 0 {
		topK = DefaultTopK
	}

	questionWords := contentWords(question)
	questionNumbers := sectionNumbersIn(question)

	seen := make(map[string]struct{}, len(candidates))
	scored := make(EvidenceSet, 0, len(candidates))

	for _, cand := range candidates {
		if cand.Section == nil {
			continue
		}
		if _, dup := seen[cand.Section.ID]; dup {
			continue
		}
		seen[cand.Section.ID] = struct{}{}

		bodyTokens := tokenize(cand.Section.Body + " " + cand.Section.Title)
		bodyFreq := make(map[string]int, len(bodyTokens))
		for _, token := range bodyTokens {
			bodyFreq[token]++
		}

		var rawMatches int
		for _, word := range questionWords {
			rawMatches += bodyFreq[word]
		}

		wordScore := 0.0
		if len(bodyTokens) > 0 {
			wordScore = float64(rawMatches) / float64(1+len(bodyTokens)) * wordMatchScale
			if wordScore > maxWordMatchScore {
				wordScore = maxWordMatchScore
			}
		}

		exact, prefix := matchesSectionNumber(questionNumbers, cand.Section.SectionNumber)
		sectionScore := 0.0
		switch {
		case exact:
			sectionScore = sectionExactBonus
		case prefix:
			sectionScore = sectionPrefixBonus
		}

		qualityScore := 0.0
		for _, term := range qualityTerms {
			if bodyFreq[term] > 0 {
				qualityScore += qualityTermBonus
			}
		}
		if qualityScore > maxQualityBonus {
			qualityScore = maxQualityBonus
		}

		scored = append(scored, ScoredCandidate{
			Section:       cand.Section,
			RawMatches:    rawMatches,
			SectionMatch:  exact || prefix,
			Score:         wordScore + sectionScore + qualityScore,
			SourceQueries: cand.SourceQueries,
		})
	}

	sortEvidence(scored)

	if len(scored) > topK {
		scored = scored[:topK]
	}
	return scored
}

// Merge unions two evidence sets, re-deduplicates by section ID (keeping the
// higher-scored entry), re-sorts and re-truncates. Used to combine round-1
// and round-2 evidence before the final generation call.
func Merge(a, b EvidenceSet, topK int) EvidenceSet {
	if topK <= 0 {
		topK = DefaultTopK
	}

	byID := make(map[string]ScoredCandidate, len(a)+len(b))
	for _, c := range append(append(EvidenceSet{}, a...), b...) {
		if c.Section == nil {
			continue
		}
		if existing, ok := byID[c.Section.ID]; !ok || c.Score > existing.Score {
			byID[c.Section.ID] = c
		}
	}

	merged := make(EvidenceSet, 0, len(byID))
	for _, c := range byID {
		merged = append(merged, c)
	}

	sortEvidence(merged)

	if len(merged) > topK {
		merged = merged[:topK]
	}
	return merged
}

// sortEvidence orders candidates by score descending, then section-number
// match, then section ID so equal inputs always produce equal orderings.
func sortEvidence(e EvidenceSet) {
	sort.SliceStable(e, func(i, j int) bool {
		if e[i].Score != e[j].Score {
			return e[i].Score > e[j].Score
		}
		if e[i].SectionMatch != e[j].SectionMatch {
			return e[i].SectionMatch
		}
		return e[i].Section.ID < e[j].Section.ID
	})
}
