package ingest

import (
	"regexp"
	"strings"
)

// minSectionLength is the body length below which a parsed section is
// considered OCR noise (stray page headers, orphaned numbers) and dropped.
const minSectionLength = 100

// sectionStartPattern matches a section number at the start of a line,
// e.g. "12.04.030 Parking near fire hydrants." OCR output puts each
// section heading on its own line.
var sectionStartPattern = regexp.MustCompile(`^(\d{1,2}\.\d{1,3}\.\d{1,3})\b`)

// ParsedSection is one section of the code as cut from the corpus text,
// before it gets an ID or reaches storage.
type ParsedSection struct {
	Number string // e.g. "12.04.030"
	Title  string // Rest of the heading line after the number
	Body   string // Full section text including the heading line
}

// TitleNumber returns the code title component of the section number,
// e.g. "12" for "12.04.030".
func (s ParsedSection) TitleNumber() string {
	if i := strings.Index(s.Number, "."); i > 0 {
		return s.Number[:i]
	}
	return s.Number
}

// Chapter returns the title.chapter prefix of the section number,
// e.g. "12.04" for "12.04.030".
func (s ParsedSection) Chapter() string {
	parts := strings.SplitN(s.Number, ".", 3)
	if len(parts) < 2 {
		return s.Number
	}
	return parts[0] + "." + parts[1]
}

// ParseCorpus splits the OCR text cache into sections. A new section starts
// at every line opening with a dotted section number; everything up to the
// next such line belongs to it. Text before the first section number and
// sections shorter than minSectionLength are dropped.
//
// Returns the kept sections and the number of candidates dropped as too
// short.
func ParseCorpus(text string) (sections []ParsedSection, dropped int) {
	var current *ParsedSection
	var body []string

	flush := func() {
		if current == nil {
			return
		}
		current.Body = strings.TrimSpace(strings.Join(body, "\n"))
		if len(current.Body) >= minSectionLength {
			sections = append(sections, *current)
		} else {
			dropped++
		}
		current = nil
		body = nil
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if m := sectionStartPattern.FindStringSubmatch(line); m != nil {
			flush()
			current = &ParsedSection{
				Number: m[1],
				Title:  sectionTitle(line, m[1]),
			}
			body = []string{line}
			continue
		}

		if current != nil {
			body = append(body, line)
		}
	}
	flush()

	return sections, dropped
}

// sectionTitle derives the section title from the heading line: the text
// after the number, with trailing punctuation trimmed.
func sectionTitle(line, number string) string {
	title := strings.TrimSpace(strings.TrimPrefix(line, number))
	title = strings.TrimLeft(title, "-–: ")
	title = strings.TrimRight(title, ".")
	return strings.TrimSpace(title)
}
