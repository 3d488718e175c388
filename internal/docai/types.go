// Package docai models the output of the external document-analysis
// processor: full OCR text plus optional per-page layout, form fields,
// tables, and detected entities. Every optional field may be absent and
// consumers must tolerate that.
package docai

import "strings"

// Document is the analysis output for one uploaded file.
type Document struct {
	Text     string   `json:"text"`
	Pages    []Page   `json:"pages,omitempty"`
	Entities []Entity `json:"entities,omitempty"`
}

// Page holds per-page layout, form fields, and tables.
type Page struct {
	Layout     *Layout     `json:"layout,omitempty"`
	FormFields []FormField `json:"formFields,omitempty"`
	Tables     []Table     `json:"tables,omitempty"`
}

// Layout anchors a page region back into the document text.
type Layout struct {
	TextAnchor *TextAnchor `json:"textAnchor,omitempty"`
}

// TextAnchor maps a region to offsets in Document.Text. Content, when set,
// carries pre-resolved text for processors that inline it.
type TextAnchor struct {
	Segments []TextSegment `json:"textSegments,omitempty"`
	Content  string        `json:"content,omitempty"`
}

// TextSegment is a half-open [StartIndex, EndIndex) range into Document.Text.
type TextSegment struct {
	StartIndex int64 `json:"startIndex,omitempty"`
	EndIndex   int64 `json:"endIndex,omitempty"`
}

// FormField is a detected key/value pair on a page.
type FormField struct {
	FieldName  *Layout `json:"fieldName,omitempty"`
	FieldValue *Layout `json:"fieldValue,omitempty"`
}

// Table is a detected table with header and body rows.
type Table struct {
	HeaderRows []TableRow `json:"headerRows,omitempty"`
	BodyRows   []TableRow `json:"bodyRows,omitempty"`
}

// TableRow is one row of table cells.
type TableRow struct {
	Cells []TableCell `json:"cells,omitempty"`
}

// TableCell is one cell, anchored into the document text.
type TableCell struct {
	Layout *Layout `json:"layout,omitempty"`
}

// Entity is a detected entity with an optional confidence and nested
// properties (e.g. a line_item entity with description/weight children).
type Entity struct {
	Type        string      `json:"type"`
	MentionText string      `json:"mentionText,omitempty"`
	TextAnchor  *TextAnchor `json:"textAnchor,omitempty"`
	Confidence  float64     `json:"confidence,omitempty"`
	Properties  []Entity    `json:"properties,omitempty"`
}

// TextFromAnchor resolves an anchor against the document's full text,
// concatenating all segments. Returns the trimmed result, or the anchor's
// inline content when no segments are present.
func (d *Document) TextFromAnchor(a *TextAnchor) string {
	if a == nil {
		return ""
	}
	if len(a.Segments) == 0 {
		return strings.TrimSpace(a.Content)
	}
	var b strings.Builder
	for _, seg := range a.Segments {
		start := seg.StartIndex
		end := seg.EndIndex
		if end == 0 {
			end = int64(len(d.Text))
		}
		if start < 0 || end > int64(len(d.Text)) || start > end {
			continue
		}
		b.WriteString(d.Text[start:end])
	}
	return strings.TrimSpace(b.String())
}

// LayoutText resolves a layout region's text, tolerating nil layouts.
func (d *Document) LayoutText(l *Layout) string {
	if l == nil {
		return ""
	}
	return d.TextFromAnchor(l.TextAnchor)
}

// PageText returns the text covered by a page's layout anchor, or "" when
// the page carries no layout mapping.
func (d *Document) PageText(p *Page) string {
	if p == nil || p.Layout == nil || p.Layout.TextAnchor == nil {
		return ""
	}
	var b strings.Builder
	for _, seg := range p.Layout.TextAnchor.Segments {
		start := seg.StartIndex
		end := seg.EndIndex
		if end == 0 {
			end = int64(len(d.Text))
		}
		if start < 0 || end > int64(len(d.Text)) || start > end {
			continue
		}
		b.WriteString(d.Text[start:end])
	}
	return b.String()
}

// EntityText returns the entity's mention text, falling back to its anchor.
func (d *Document) EntityText(e *Entity) string {
	if e == nil {
		return ""
	}
	if e.MentionText != "" {
		return e.MentionText
	}
	return d.TextFromAnchor(e.TextAnchor)
}

// Empty reports whether the document carries nothing an extractor could use.
func (d *Document) Empty() bool {
	return d == nil || (d.Text == "" && len(d.Pages) == 0 && len(d.Entities) == 0)
}
