package ingest

import (
	"strings"
	"testing"
)

const testCorpus = `TITLE 12 VEHICLES AND TRAFFIC
Chapter 12.04 PARKING

12.04.030 Parking near fire hydrants.
No vehicle may stop, stand, or park within fifteen feet of a fire hydrant,
whether the hydrant is located on a public street or within a designated
fire lane on private property open to vehicular traffic.

12.04.040
Reserved.

18.16.020 Residential fences.
No fence in a residential district shall exceed six feet in height when
located behind the front building line, nor four feet when located in the
required front yard, except as provided in this chapter.
`

func TestParseCorpus(t *testing.T) {
	sections, dropped := ParseCorpus(testCorpus)

	if len(sections) != 2 {
		t.Fatalf("ParseCorpus() kept %d sections, want 2", len(sections))
	}
	if dropped != 1 {
		t.Errorf("ParseCorpus() dropped = %d, want 1 (the reserved stub)", dropped)
	}

	first := sections[0]
	if first.Number != "12.04.030" {
		t.Errorf("sections[0].Number = %q, want 12.04.030", first.Number)
	}
	if first.Title != "Parking near fire hydrants" {
		t.Errorf("sections[0].Title = %q, want %q", first.Title, "Parking near fire hydrants")
	}
	if !strings.Contains(first.Body, "fifteen feet of a fire hydrant") {
		t.Errorf("sections[0].Body missing rule text:\n%s", first.Body)
	}
	if strings.Contains(first.Body, "TITLE 12") {
		t.Error("preamble before the first section leaked into the body")
	}

	second := sections[1]
	if second.Number != "18.16.020" {
		t.Errorf("sections[1].Number = %q, want 18.16.020", second.Number)
	}
	if strings.Contains(second.Body, "Reserved") {
		t.Error("dropped section's text leaked into the following section")
	}
}

func TestParseCorpusEmpty(t *testing.T) {
	sections, dropped := ParseCorpus("")
	if len(sections) != 0 || dropped != 0 {
		t.Errorf("ParseCorpus(\"\") = %d sections, %d dropped, want 0/0", len(sections), dropped)
	}
}

func TestParseCorpusNoSections(t *testing.T) {
	sections, _ := ParseCorpus("Just some narrative text without any numbered headings at all.")
	if len(sections) != 0 {
		t.Errorf("ParseCorpus() = %d sections, want 0", len(sections))
	}
}

func TestParsedSectionDerivedNumbers(t *testing.T) {
	s := ParsedSection{Number: "12.04.030"}
	if got := s.TitleNumber(); got != "12" {
		t.Errorf("TitleNumber() = %q, want 12", got)
	}
	if got := s.Chapter(); got != "12.04" {
		t.Errorf("Chapter() = %q, want 12.04", got)
	}
}

func TestSectionTitleTrimming(t *testing.T) {
	tests := []struct {
		line   string
		number string
		want   string
	}{
		{"12.04.030 Parking near fire hydrants.", "12.04.030", "Parking near fire hydrants"},
		{"12.04.030 - Parking near fire hydrants", "12.04.030", "Parking near fire hydrants"},
		{"12.04.030: Parking", "12.04.030", "Parking"},
		{"12.04.030", "12.04.030", ""},
	}
	for _, tt := range tests {
		if got := sectionTitle(tt.line, tt.number); got != tt.want {
			t.Errorf("sectionTitle(%q) = %q, want %q", tt.line, got, tt.want)
		}
	}
}
