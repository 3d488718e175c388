package extract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"lading/internal/docai"
	"lading/internal/extract"
)

func formField(name, value string) docai.FormField {
	return docai.FormField{
		FieldName:  &docai.Layout{TextAnchor: &docai.TextAnchor{Content: name}},
		FieldValue: &docai.Layout{TextAnchor: &docai.TextAnchor{Content: value}},
	}
}

func TestCascade_FormFieldsWin(t *testing.T) {
	// The raw text carries a different BOL number; the form field value
	// must be the one retained.
	doc := &docai.Document{
		Text: "BOL # 999999",
		Pages: []docai.Page{{
			FormFields: []docai.FormField{formField("BOL #", "123456")},
		}},
	}

	entities := extract.NewCascade(nil).Extract(doc)
	assert.Equal(t, "123456", entities.Get("bol_number"))
}

func TestCascade_UnmappedLabelsIgnored(t *testing.T) {
	doc := &docai.Document{
		Pages: []docai.Page{{
			FormFields: []docai.FormField{
				formField("Signature", "John Smith"),
				formField("Carrier Name", "XPO Logistics"),
			},
		}},
	}

	entities := extract.NewCascade(nil).Extract(doc)
	assert.Equal(t, "XPO Logistics", entities.Get("carrier_name"))
	assert.Len(t, entities, 1)
}

func TestCascade_EntitiesWhenNoFormFields(t *testing.T) {
	doc := &docai.Document{
		Text: "some text without any recognized markers",
		Entities: []docai.Entity{
			{
				Type:        "Carrier Name",
				MentionText: "Old Dominion",
				Properties:  []docai.Entity{{Type: "SCAC", MentionText: "ODFL"}},
			},
		},
	}

	entities := extract.NewCascade(nil).Extract(doc)
	assert.Equal(t, "Old Dominion", entities.Get("carrier_name"))
	assert.Equal(t, "ODFL", entities.Get("carrier_name_scac"))
}

func TestCascade_RawTextWhenNothingStructured(t *testing.T) {
	doc := &docai.Document{
		Text: "NAME OF CARRIER\nEstes Express\nBOL # 445120\nFREIGHT CHARGES: Prepaid",
	}

	entities := extract.NewCascade(nil).Extract(doc)
	assert.Equal(t, "445120", entities.Get("bol_number"))
	assert.Equal(t, "Estes Express", entities.Get("carrier_name"))
	assert.Equal(t, "Prepaid", entities.Get("freight_charge_terms"))
}

func TestCascade_EmptyDocumentYieldsEmptyMap(t *testing.T) {
	entities := extract.NewCascade(nil).Extract(&docai.Document{})
	assert.Empty(t, entities)
}
