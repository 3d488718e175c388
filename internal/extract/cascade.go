package extract

import (
	"strings"

	"lading/internal/docai"
)

// cascadeState tracks which extraction strategies have been attempted for
// one record. The progression is strictly forward; a later strategy runs
// only when every earlier one produced nothing.
type cascadeState int

const (
	cascadeNotStarted cascadeState = iota
	cascadeFormFieldsAttempted
	cascadeEntitiesAttempted
	cascadeRawTextAttempted
	cascadeDone
)

// Cascade runs the ordered extraction strategies over one document:
// form fields, then structured entities, then the raw-text rule battery.
// Precedence is enforced by EntityMap write-once semantics and by skipping
// later strategies once an earlier one has produced entries.
type Cascade struct {
	mapper *SynonymMapper
}

// NewCascade builds a cascade with the given synonym mapper; nil selects the
// default rule table.
func NewCascade(mapper *SynonymMapper) *Cascade {
	if mapper == nil {
		mapper = NewSynonymMapper(nil)
	}
	return &Cascade{mapper: mapper}
}

// Extract builds the EntityMap for one document.
func (c *Cascade) Extract(doc *docai.Document) EntityMap {
	entities := EntityMap{}
	state := cascadeNotStarted

	for state != cascadeDone {
		switch state {
		case cascadeNotStarted:
			c.fromFormFields(doc, entities)
			state = cascadeFormFieldsAttempted
		case cascadeFormFieldsAttempted:
			if len(entities) > 0 {
				state = cascadeDone
				break
			}
			c.fromEntities(doc, entities)
			state = cascadeEntitiesAttempted
		case cascadeEntitiesAttempted:
			if len(entities) > 0 {
				state = cascadeDone
				break
			}
			RunTextRules(doc.Text, entities)
			state = cascadeRawTextAttempted
		case cascadeRawTextAttempted:
			state = cascadeDone
		}
	}
	return entities
}

// ExtractPage builds the EntityMap for one page on the per-page splitting
// path: text rules over the page's own text first, then that page's form
// fields layered on top.
func (c *Cascade) ExtractPage(doc *docai.Document, page *docai.Page, pageText string) EntityMap {
	entities := EntityMap{}
	c.formFieldsFromPage(doc, page, entities)
	RunTextRules(pageText, entities)
	return entities
}

func (c *Cascade) fromFormFields(doc *docai.Document, out EntityMap) {
	for i := range doc.Pages {
		c.formFieldsFromPage(doc, &doc.Pages[i], out)
	}
}

func (c *Cascade) formFieldsFromPage(doc *docai.Document, page *docai.Page, out EntityMap) {
	for _, field := range page.FormFields {
		name := doc.LayoutText(field.FieldName)
		if name == "" {
			continue
		}
		key := c.mapper.Map(name)
		if key == "" {
			continue
		}
		out.Set(key, strings.TrimSpace(doc.LayoutText(field.FieldValue)))
	}
}

func (c *Cascade) fromEntities(doc *docai.Document, out EntityMap) {
	for i := range doc.Entities {
		entity := &doc.Entities[i]
		key := canonicalKey(entity.Type)
		if key == "" {
			continue
		}
		out.Set(key, doc.EntityText(entity))
		for j := range entity.Properties {
			prop := &entity.Properties[j]
			out.Set(key+"_"+canonicalKey(prop.Type), doc.EntityText(prop))
		}
	}
}

func canonicalKey(typeTag string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(typeTag)), " ", "_")
}
