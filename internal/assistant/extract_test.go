package assistant

import (
	"reflect"
	"testing"
)

func TestExtractTargetsNeverEmpty(t *testing.T) {
	tests := []struct {
		name     string
		answer   string
		question string
	}{
		{name: "garbage answer", answer: "???", question: "What are the parking rules?"},
		{name: "empty answer", answer: "", question: "What are the parking rules?"},
		{name: "empty both", answer: "", question: ""},
		{name: "stopword question", answer: "", question: "is it the"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			targets := ExtractTargets(tt.answer, tt.question)
			if len(targets) == 0 {
				t.Error("ExtractTargets() returned no queries")
			}
			for _, q := range targets {
				if q.Origin != OriginTargeted || q.Round != 2 {
					t.Errorf("target %q origin/round = %v/%d, want targeted/2", q.Text, q.Origin, q.Round)
				}
			}
		})
	}
}

func TestExtractTargetsSectionNumbers(t *testing.T) {
	answer := "The code does not specify this here, but Section 20.16.030 and 18.16.020 may apply."
	targets := ExtractTargets(answer, "How tall can my fence be?")

	texts := make(map[string]struct{}, len(targets))
	for _, q := range targets {
		texts[q.Text] = struct{}{}
	}

	if _, ok := texts["section 20.16.030"]; !ok {
		t.Errorf("ExtractTargets() missing section query, got %v", targets)
	}
	if _, ok := texts["section 18.16.020"]; !ok {
		t.Errorf("ExtractTargets() missing section query, got %v", targets)
	}
}

func TestExtractTargetsNovelTerms(t *testing.T) {
	question := "Can I park near a fire hydrant?"
	answer := "The code does not specify, but fire lane obstruction clearance requirements " +
		"likely apply to curbside obstruction near hydrants."

	targets := ExtractTargets(answer, question)

	// Some target must carry terms introduced by the answer (absent from the
	// question), e.g. "obstruction" or "clearance".
	var hasNovel bool
	for _, q := range targets {
		for _, token := range tokenize(q.Text) {
			if token == "obstruction" || token == "clearance" {
				hasNovel = true
			}
		}
	}
	if !hasNovel {
		t.Errorf("ExtractTargets() carried no novel answer terms, got %v", targets)
	}
}

func TestExtractTargetsIncludesSafetyNet(t *testing.T) {
	question := "Can I park near a fire hydrant?"
	targets := ExtractTargets("The code does not specify.", question)

	var hasKeywordVariant bool
	for _, q := range targets {
		if q.Text == "park near fire hydrant" {
			hasKeywordVariant = true
		}
	}
	if !hasKeywordVariant {
		t.Errorf("ExtractTargets() missing question keyword safety net, got %v", targets)
	}
}

func TestExtractTargetsDeterministic(t *testing.T) {
	answer := "Clearance requirements and obstruction rules apply near hydrants, see 12.4.3."
	question := "Can I park here?"
	if !reflect.DeepEqual(ExtractTargets(answer, question), ExtractTargets(answer, question)) {
		t.Error("ExtractTargets() is not deterministic")
	}
}
