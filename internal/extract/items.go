package extract

import (
	"fmt"
	"regexp"
	"strings"

	"lading/internal/docai"
	"lading/internal/domain"
)

// lineItemEntityTypes are the structured entity type tags that carry
// item-level nested properties.
var lineItemEntityTypes = map[string]bool{
	"line_item":     true,
	"shipment_item": true,
	"cargo_item":    true,
}

var (
	itemSectionRe = regexp.MustCompile(`(?is)#\s*PACKAGES[\s\S]*?(FREIGHT CHARGES:|TOTAL|RECEIVED|$)`)
	nmfcDescRe    = regexp.MustCompile(`NMFC\s*#([\d-]+)[,\s]+([^,\n]+)`)
	descTailRe    = regexp.MustCompile(`PCF.*$`)
	qtyPackRe     = regexp.MustCompile(`(?i)(\d+)\s+(Pallets?|Cartons?|Boxes?|Pieces?)`)
	weightLbsRe   = regexp.MustCompile(`(?i)(\d+)\s*lbs`)
	freightClsRe  = regexp.MustCompile(`CLASS\s*\n?\s*(\d+)`)
	dimensionsRe  = regexp.MustCompile(`(\d+)\s*x\s*(\d+)\s*x\s*(\d+)`)
)

// ExtractItems produces the line items for one document, degrading through
// three strategies: structured entities, detected tables, then a raw-text
// scan. Each later strategy runs only when the previous one found nothing.
func ExtractItems(doc *docai.Document) []domain.ShipmentItem {
	items := itemsFromEntities(doc)
	if len(items) == 0 {
		for _, page := range doc.Pages {
			for i := range page.Tables {
				items = append(items, itemsFromTable(doc, &page.Tables[i])...)
			}
		}
	}
	if len(items) == 0 {
		items = ItemsFromText(doc.Text)
	}
	return items
}

// ItemsFromPage extracts items for one page only, used on the per-page
// splitting path. Tables are tried first, then the page text.
func ItemsFromPage(doc *docai.Document, page *docai.Page, pageText string) []domain.ShipmentItem {
	var items []domain.ShipmentItem
	for i := range page.Tables {
		items = append(items, itemsFromTable(doc, &page.Tables[i])...)
	}
	if len(items) == 0 {
		items = ItemsFromText(pageText)
	}
	return items
}

func itemsFromEntities(doc *docai.Document) []domain.ShipmentItem {
	var items []domain.ShipmentItem
	for i := range doc.Entities {
		entity := &doc.Entities[i]
		if !lineItemEntityTypes[strings.ToLower(entity.Type)] {
			continue
		}

		props := map[string]string{}
		for j := range entity.Properties {
			prop := &entity.Properties[j]
			key := strings.ReplaceAll(strings.ToLower(prop.Type), " ", "_")
			if value := doc.EntityText(prop); value != "" {
				props[key] = value
			}
		}

		description := props["description"]
		if description == "" {
			description = props["commodity"]
		}
		item, err := domain.NewShipmentItem(description)
		if err != nil {
			continue
		}
		if q, ok := ParseFloat(props["quantity"]); ok {
			item.Quantity = &q
		} else if p, ok := ParseFloat(props["pieces"]); ok {
			item.Quantity = &p
		}
		if w, ok := ParseFloat(props["weight"]); ok {
			item.Weight = &w
		}
		item.WeightUnit = props["weight_unit"]
		item.Dimensions = props["dimensions"]
		item.PackagingType = firstNonEmpty(props["packaging_type"], props["package_type"])
		item.HazmatClass = firstNonEmpty(props["hazmat_class"], props["hazmat"])
		item.NMFCCode = firstNonEmpty(props["nmfc_code"], props["nmfc"])
		item.FreightClass = firstNonEmpty(props["freight_class"], props["class"])
		items = append(items, *item)
	}
	return items
}

// tableColumnSynonyms maps table header labels to item fields. Only the body
// rows whose description-equivalent column is non-empty become items.
func itemsFromTable(doc *docai.Document, table *docai.Table) []domain.ShipmentItem {
	if len(table.HeaderRows) == 0 || len(table.BodyRows) == 0 {
		return nil
	}

	var headers []string
	for i := range table.HeaderRows[0].Cells {
		text := doc.LayoutText(table.HeaderRows[0].Cells[i].Layout)
		headers = append(headers, strings.ToLower(strings.TrimSpace(text)))
	}

	var items []domain.ShipmentItem
	for r := range table.BodyRows {
		row := map[string]string{}
		for c := range table.BodyRows[r].Cells {
			if c >= len(headers) {
				break
			}
			row[headers[c]] = strings.TrimSpace(doc.LayoutText(table.BodyRows[r].Cells[c].Layout))
		}
		if item := itemFromTableRow(row); item != nil {
			items = append(items, *item)
		}
	}
	return items
}

func itemFromTableRow(row map[string]string) *domain.ShipmentItem {
	description := firstNonEmpty(row["description"], row["commodity"], row["product"], row["item"])
	item, err := domain.NewShipmentItem(description)
	if err != nil {
		return nil
	}
	if q, ok := ParseFloat(firstNonEmpty(row["quantity"], row["qty"], row["pieces"])); ok {
		item.Quantity = &q
	}
	if w, ok := ParseFloat(firstNonEmpty(row["weight"], row["wt"])); ok {
		item.Weight = &w
	}
	item.WeightUnit = row["unit"]
	if item.WeightUnit == "" {
		item.WeightUnit = "LBS"
	}
	item.Dimensions = firstNonEmpty(row["dimensions"], row["dims"])
	item.PackagingType = firstNonEmpty(row["package type"], row["pkg type"])
	item.HazmatClass = firstNonEmpty(row["hazmat"], row["hm"])
	item.NMFCCode = row["nmfc"]
	item.FreightClass = firstNonEmpty(row["class"], row["freight class"])
	return item
}

// ItemsFromText is the raw-text fallback. It scans the packages section for
// a classification code + description pair, quantity + packaging unit,
// weight, freight class, and dimensions, synthesizing at most one item.
// A code with no matched description still yields an item with a generated
// description, never zero items when a code is present.
func ItemsFromText(text string) []domain.ShipmentItem {
	if section := itemSectionRe.FindString(text); section != "" {
		var item domain.ShipmentItem
		if m := nmfcDescRe.FindStringSubmatch(section); m != nil {
			item.NMFCCode = m[1]
			item.Description = strings.TrimSpace(descTailRe.ReplaceAllString(strings.TrimSpace(m[2]), ""))
		}
		if m := qtyPackRe.FindStringSubmatch(section); m != nil {
			if q, ok := ParseFloat(m[1]); ok {
				item.Quantity = &q
			}
			item.PackagingType = strings.TrimSuffix(m[2], "s")
		}
		if m := weightLbsRe.FindStringSubmatch(section); m != nil {
			if w, ok := ParseFloat(m[1]); ok {
				item.Weight = &w
				item.WeightUnit = "LBS"
			}
		}
		if m := freightClsRe.FindStringSubmatch(section); m != nil {
			item.FreightClass = m[1]
		}
		if m := dimensionsRe.FindStringSubmatch(section); m != nil {
			item.Dimensions = fmt.Sprintf("%sx%sx%s", m[1], m[2], m[3])
		}

		if item.Description == "" && item.NMFCCode != "" {
			item.Description = fmt.Sprintf("Item with NMFC #%s", item.NMFCCode)
		}
		if item.Description != "" {
			return []domain.ShipmentItem{item}
		}
	}

	// No packages section: sweep for standalone code+description pairs.
	var items []domain.ShipmentItem
	for _, m := range nmfcDescRe.FindAllStringSubmatch(text, -1) {
		item, err := domain.NewShipmentItem(strings.TrimSpace(m[2]))
		if err != nil {
			continue
		}
		item.NMFCCode = strings.TrimSpace(m[1])
		items = append(items, *item)
	}
	return items
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
