package assistant

import (
	"strings"
	"testing"
)

func TestHeuristicChecker(t *testing.T) {
	checker := &HeuristicChecker{}

	tests := []struct {
		name   string
		answer string
		want   bool
	}{
		{
			name: "grounded answer with citation",
			answer: "Per Section 12.4.3, parking within 15 feet of a fire hydrant is prohibited. " +
				"The restriction applies on both public and private fire lanes.",
			want: false,
		},
		{
			name: "hedge phrase",
			answer: "The code does not specify a distance for fire hydrants in Section 12.4.3, " +
				"so I cannot give you an exact requirement here.",
			want: true,
		},
		{
			name: "explicit insufficiency",
			answer: "I don't have enough information to answer this question about parking " +
				"restrictions near fire hydrants in the municipal code.",
			want: true,
		},
		{
			name: "missing citation",
			answer: "Parking near a fire hydrant is generally prohibited within fifteen feet, " +
				"and violations may be subject to fines under the municipal code.",
			want: true,
		},
		{
			name:   "too short",
			answer: "See the code.",
			want:   true,
		},
		{
			name:   "empty answer",
			answer: "",
			want:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := checker.NeedsMoreContext(tt.answer); got != tt.want {
				t.Errorf("NeedsMoreContext(%q) = %v, want %v", tt.answer, got, tt.want)
			}
		})
	}
}

func TestHeuristicCheckerMinLengthOverride(t *testing.T) {
	checker := &HeuristicChecker{MinAnswerLength: 5}

	// Short but cited and unhedged: passes with a lowered floor.
	if checker.NeedsMoreContext("Yes, per 12.4.3.") {
		t.Error("NeedsMoreContext() = true with lowered floor, want false")
	}
}

func TestHeuristicCheckerLengthFloorCountsRunes(t *testing.T) {
	checker := &HeuristicChecker{MinAnswerLength: 40}

	// 32 runes but 52 bytes: the floor must measure visible characters, not
	// encoded length.
	answer := "Per 12.4.3: " + strings.Repeat("é", 20)
	if !checker.NeedsMoreContext(answer) {
		t.Error("NeedsMoreContext() = false for a 32-rune answer under a 40-rune floor, want true")
	}
}
