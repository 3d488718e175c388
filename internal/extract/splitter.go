package extract

import "regexp"

// recordMarkerRe matches the record-number marker used to delimit multiple
// bills of lading concatenated into one document.
var recordMarkerRe = regexp.MustCompile(`BOL\s*#\s*(\d+)`)

// Section is one candidate record span detected inside a larger document.
type Section struct {
	Text      string
	BOLNumber string
	Position  int
}

// SplitSections scans the full text for record-number markers. With two or
// more markers, each marker's span (from its position to the next marker or
// end of text) becomes one section. With zero or one marker, the whole text
// is returned as a single section.
func SplitSections(text string) []Section {
	matches := recordMarkerRe.FindAllStringSubmatchIndex(text, -1)
	if len(matches) <= 1 {
		section := Section{Text: text}
		if len(matches) == 1 {
			section.BOLNumber = text[matches[0][2]:matches[0][3]]
		}
		return []Section{section}
	}

	sections := make([]Section, 0, len(matches))
	for i, m := range matches {
		end := len(text)
		if i < len(matches)-1 {
			end = matches[i+1][0]
		}
		sections = append(sections, Section{
			Text:      text[m[0]:end],
			BOLNumber: text[m[2]:m[3]],
			Position:  m[0],
		})
	}
	return sections
}
