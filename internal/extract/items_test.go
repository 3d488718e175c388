package extract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"lading/internal/docai"
	"lading/internal/extract"
)

func lineItemEntity(props map[string]string) docai.Entity {
	e := docai.Entity{Type: "line_item"}
	for k, v := range props {
		e.Properties = append(e.Properties, docai.Entity{Type: k, MentionText: v})
	}
	return e
}

func TestExtractItems_FromStructuredEntities(t *testing.T) {
	doc := &docai.Document{
		Text: "irrelevant",
		Entities: []docai.Entity{
			lineItemEntity(map[string]string{
				"description":    "Athletic or Sporting Goods",
				"quantity":       "2",
				"weight":         "350",
				"weight_unit":    "LBS",
				"nmfc_code":      "15520-05",
				"freight_class":  "125",
				"packaging_type": "Pallet",
			}),
		},
	}

	items := extract.ExtractItems(doc)
	assert.Len(t, items, 1)
	assert.Equal(t, "Athletic or Sporting Goods", items[0].Description)
	assert.NotNil(t, items[0].Quantity)
	assert.Equal(t, 2.0, *items[0].Quantity)
	assert.NotNil(t, items[0].Weight)
	assert.Equal(t, 350.0, *items[0].Weight)
	assert.Equal(t, "15520-05", items[0].NMFCCode)
	assert.Equal(t, "125", items[0].FreightClass)
	assert.Equal(t, "Pallet", items[0].PackagingType)
}

func TestExtractItems_CommodityFallbackForDescription(t *testing.T) {
	doc := &docai.Document{
		Text: "irrelevant",
		Entities: []docai.Entity{
			lineItemEntity(map[string]string{"commodity": "Electrical appliances"}),
		},
	}

	items := extract.ExtractItems(doc)
	assert.Len(t, items, 1)
	assert.Equal(t, "Electrical appliances", items[0].Description)
}

func TestExtractItems_EntityWithoutDescriptionDropped(t *testing.T) {
	doc := &docai.Document{
		Text: "irrelevant",
		Entities: []docai.Entity{
			lineItemEntity(map[string]string{"weight": "350"}),
		},
	}

	assert.Empty(t, extract.ExtractItems(doc))
}

func tableCell(text string) docai.TableCell {
	return docai.TableCell{Layout: &docai.Layout{TextAnchor: &docai.TextAnchor{Content: text}}}
}

func TestExtractItems_FromTable(t *testing.T) {
	doc := &docai.Document{
		Text: "irrelevant",
		Pages: []docai.Page{{
			Tables: []docai.Table{{
				HeaderRows: []docai.TableRow{{Cells: []docai.TableCell{
					tableCell("Description"), tableCell("Qty"), tableCell("Weight"), tableCell("Class"),
				}}},
				BodyRows: []docai.TableRow{
					{Cells: []docai.TableCell{
						tableCell("Sporting Goods"), tableCell("2"), tableCell("350"), tableCell("125"),
					}},
					{Cells: []docai.TableCell{
						tableCell(""), tableCell("1"), tableCell("50"), tableCell("60"),
					}},
				},
			}},
		}},
	}

	items := extract.ExtractItems(doc)
	// The row with an empty description column is dropped.
	assert.Len(t, items, 1)
	assert.Equal(t, "Sporting Goods", items[0].Description)
	assert.Equal(t, 2.0, *items[0].Quantity)
	assert.Equal(t, 350.0, *items[0].Weight)
	assert.Equal(t, "LBS", items[0].WeightUnit)
	assert.Equal(t, "125", items[0].FreightClass)
}

func TestItemsFromText_PackagesSection(t *testing.T) {
	text := "# PACKAGES\n1 Pallets\nNMFC #61700-03, Electrical appliances\nCLASS\n92\n48 x 40 x 60\n520 lbs\nFREIGHT CHARGES: Prepaid"

	items := extract.ItemsFromText(text)
	assert.Len(t, items, 1)
	assert.Equal(t, "Electrical appliances", items[0].Description)
	assert.Equal(t, "61700-03", items[0].NMFCCode)
	assert.Equal(t, 1.0, *items[0].Quantity)
	assert.Equal(t, "Pallet", items[0].PackagingType)
	assert.Equal(t, 520.0, *items[0].Weight)
	assert.Equal(t, "LBS", items[0].WeightUnit)
	assert.Equal(t, "92", items[0].FreightClass)
	assert.Equal(t, "48x40x60", items[0].Dimensions)
}

func TestItemsFromText_CodeOnlySynthesizesDescription(t *testing.T) {
	// The description slot holds only a density figure, which is stripped.
	text := "# PACKAGES\nNMFC #61700-03, PCF 8.5\n520 lbs\nFREIGHT CHARGES: Collect"

	items := extract.ItemsFromText(text)
	assert.Len(t, items, 1)
	assert.Equal(t, "Item with NMFC #61700-03", items[0].Description)
	assert.Equal(t, "61700-03", items[0].NMFCCode)
}

func TestItemsFromText_SweepWithoutSection(t *testing.T) {
	text := "shipment includes NMFC #15520-05, Athletic or Sporting Goods per manifest"

	items := extract.ItemsFromText(text)
	assert.Len(t, items, 1)
	assert.Equal(t, "Athletic or Sporting Goods per manifest", items[0].Description)
	assert.Equal(t, "15520-05", items[0].NMFCCode)
}

func TestItemsFromText_NothingFound(t *testing.T) {
	assert.Empty(t, extract.ItemsFromText("no cargo details here"))
}
