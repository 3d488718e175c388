package extract

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"lading/internal/docai"
	"lading/internal/domain"
)

// Engine turns analyzed documents into canonical shipment records. It owns
// no mutable state beyond read-only rule tables, so one Engine is safe to
// share across concurrent extractions.
type Engine struct {
	cascade        *Cascade
	defaultCountry string
}

// NewEngine builds an extraction engine. An empty defaultCountry falls back
// to "USA".
func NewEngine(defaultCountry string) *Engine {
	if defaultCountry == "" {
		defaultCountry = "USA"
	}
	return &Engine{
		cascade:        NewCascade(nil),
		defaultCountry: defaultCountry,
	}
}

// ExtractRecord extracts a single canonical record from the whole document.
func (e *Engine) ExtractRecord(doc *docai.Document, recordID string) (*domain.ShipmentRecord, error) {
	if doc.Empty() {
		return nil, domain.ErrMalformedAnalysis
	}

	entities := e.cascade.Extract(doc)
	items := ExtractItems(doc)
	scores := ScoreConfidence(doc)

	record := e.assemble(recordID, entities, items, scores, doc.Text)
	record.Metadata["page_count"] = len(doc.Pages)
	return record, nil
}

// ExtractRecords extracts one or more records from a document that may hold
// several bills of lading. Detection order: repeated record-number markers
// split the text into sections; otherwise each page becomes a candidate.
// A candidate is kept only when it yields a record number or a party
// address. When nothing qualifies the whole document is extracted as one
// record, never an empty result.
func (e *Engine) ExtractRecords(doc *docai.Document, documentID string) ([]*domain.ShipmentRecord, error) {
	if doc.Empty() {
		return nil, domain.ErrMalformedAnalysis
	}

	sections := SplitSections(doc.Text)
	if len(sections) > 1 {
		records := e.extractSections(doc, documentID, sections)
		if len(records) > 0 {
			return records, nil
		}
	} else if len(doc.Pages) > 1 {
		records := e.extractPages(doc, documentID)
		if len(records) > 0 {
			return records, nil
		}
	}

	record, err := e.ExtractRecord(doc, documentID)
	if err != nil {
		return nil, err
	}
	return []*domain.ShipmentRecord{record}, nil
}

func (e *Engine) extractSections(doc *docai.Document, documentID string, sections []Section) []*domain.ShipmentRecord {
	var records []*domain.ShipmentRecord
	for i, section := range sections {
		entities := EntityMap{}
		entities.Set("bol_number", section.BOLNumber)
		RunTextRules(section.Text, entities)

		items := ItemsFromText(section.Text)
		record := e.assemble(fmt.Sprintf("%s-%03d", documentID, i+1), entities, items, map[string]float64{"overall": 0.0}, section.Text)
		record.Metadata["section_index"] = i + 1
		record.Metadata["section_count"] = len(sections)
		record.Metadata["section_position"] = section.Position

		if !e.accept(record) {
			log.Printf("Engine.extractSections: section %d of %d yielded no record data, skipping", i+1, len(sections))
			continue
		}
		records = append(records, record)
	}
	return records
}

func (e *Engine) extractPages(doc *docai.Document, documentID string) []*domain.ShipmentRecord {
	var records []*domain.ShipmentRecord
	for i := range doc.Pages {
		page := &doc.Pages[i]
		pageText := doc.PageText(page)
		if pageText == "" && len(page.FormFields) == 0 {
			continue
		}

		entities := e.cascade.ExtractPage(doc, page, pageText)
		items := ItemsFromPage(doc, page, pageText)
		record := e.assemble(fmt.Sprintf("%s-%03d", documentID, i+1), entities, items, map[string]float64{"overall": 0.0}, pageText)
		record.Metadata["page_number"] = i + 1
		record.Metadata["total_pages"] = len(doc.Pages)

		if !e.accept(record) {
			log.Printf("Engine.extractPages: page %d of %d yielded no record data, skipping", i+1, len(doc.Pages))
			continue
		}
		records = append(records, record)
	}
	return records
}

// accept reports whether a candidate record from a split carries enough
// identity to stand on its own.
func (e *Engine) accept(record *domain.ShipmentRecord) bool {
	return record.BOLNumber != "" || !record.Shipper.Empty() || !record.Consignee.Empty()
}

// assemble composes the EntityMap, items, and confidence scores into one
// canonical record, applying field alternates and enum normalization.
func (e *Engine) assemble(recordID string, entities EntityMap, items []domain.ShipmentItem, scores map[string]float64, rawText string) *domain.ShipmentRecord {
	record := &domain.ShipmentRecord{
		RecordID:  recordID,
		BOLNumber: entities.First("bol_number", "bill_of_lading_number"),
		PRONumber: entities.First("pro_number", "tracking_number"),
		SCACCode:  entities.First("scac_code", "carrier_code"),

		Shipper:   AssembleAddress(entities, "shipper", e.defaultCountry),
		Consignee: AssembleAddress(entities, "consignee", e.defaultCountry),
		BillTo:    AssembleAddress(entities, "bill_to", e.defaultCountry),

		CarrierName:   entities.First("carrier_name", "carrier"),
		DriverName:    entities.First("driver_name", "driver"),
		TruckNumber:   entities.First("truck_number", "tractor_number"),
		TrailerNumber: entities.Get("trailer_number"),
		SealNumber:    entities.First("seal_number", "seal"),

		OriginTerminal:      entities.First("origin_terminal", "origin"),
		DestinationTerminal: entities.First("destination_terminal", "destination"),

		FreightChargeTerms: normalizeChargeTerms(entities.First("freight_charge_terms", "payment_terms")),
		PaymentTerms:       entities.Get("payment_terms"),

		Items: items,

		SpecialInstructions:  entities.First("special_instructions", "notes"),
		DeliveryInstructions: entities.Get("delivery_instructions"),

		ShipmentType: entities.First("shipment_type", "service_type"),
		ServiceType:  entities.First("service_type", "service_level"),

		ConfidenceScores: scores,
		RawText:          rawText,
		Metadata: map[string]any{
			"extracted_at": time.Now().UTC().Format(time.RFC3339),
		},
	}

	if t, ok := ParseDate(entities.First("ship_date", "pickup_date", "date")); ok {
		record.ShipDate = &t
	}
	if t, ok := ParseDate(entities.First("delivery_date", "expected_delivery")); ok {
		record.DeliveryDate = &t
	}

	if w, ok := ParseFloat(entities.First("total_weight", "weight")); ok {
		record.TotalWeight = &w
	}
	record.WeightUnit = entities.Get("weight_unit")
	if record.WeightUnit == "" {
		record.WeightUnit = "LBS"
	}
	if n, ok := ParseInt(entities.First("total_pieces", "pieces")); ok {
		record.TotalPieces = &n
	}
	if n, ok := ParseInt(entities.First("total_pallets", "pallets")); ok {
		record.TotalPallets = &n
	}

	record.FreightCharges = parseAmountPtr(entities.Get("freight_charges"))
	record.AccessorialCharges = parseAmountPtr(entities.Get("accessorial_charges"))
	record.TotalCharges = parseAmountPtr(entities.First("total_charges", "total_amount"))

	for _, key := range []string{"billing_id", "customer_po", "custom_id"} {
		if v := entities.Get(key); v != "" {
			record.Metadata[key] = v
		}
	}

	return record
}

func parseAmountPtr(s string) *decimal.Decimal {
	if d, ok := ParseAmount(s); ok {
		return &d
	}
	return nil
}

// normalizeChargeTerms folds charge-terms variants onto the canonical labels
// by case-insensitive exact match. Unrecognized values pass through as-is.
func normalizeChargeTerms(terms string) string {
	switch strings.ToLower(strings.TrimSpace(terms)) {
	case "prepaid":
		return domain.ChargeTermsPrepaid
	case "collect":
		return domain.ChargeTermsCollect
	case "third party", "3rd party":
		return domain.ChargeTermsThirdParty
	}
	return terms
}
