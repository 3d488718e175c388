package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Address is a postal address for a shipping party. All fields are optional;
// a party with no known address components is represented as a nil *Address,
// never an empty struct.
type Address struct {
	Name         string `json:"name,omitempty"`
	Street       string `json:"street,omitempty"`
	City         string `json:"city,omitempty"`
	State        string `json:"state,omitempty"`
	PostalCode   string `json:"postal_code,omitempty"`
	Country      string `json:"country,omitempty"`
	ContactName  string `json:"contact_name,omitempty"`
	ContactPhone string `json:"contact_phone,omitempty"`
}

// Empty reports whether no component of the address is set.
func (a *Address) Empty() bool {
	if a == nil {
		return true
	}
	return a.Name == "" && a.Street == "" && a.City == "" && a.State == "" &&
		a.PostalCode == "" && a.Country == "" && a.ContactName == "" && a.ContactPhone == ""
}

// ShipmentItem is one line item on a bill of lading. Description is the only
// required field; NewShipmentItem enforces the invariant.
type ShipmentItem struct {
	Description   string           `json:"description"`
	Quantity      *float64         `json:"quantity,omitempty"`
	Weight        *float64         `json:"weight,omitempty"`
	WeightUnit    string           `json:"weight_unit,omitempty"`
	Dimensions    string           `json:"dimensions,omitempty"`
	PackagingType string           `json:"packaging_type,omitempty"`
	HazmatClass   string           `json:"hazmat_class,omitempty"`
	NMFCCode      string           `json:"nmfc_code,omitempty"`
	FreightClass  string           `json:"freight_class,omitempty"`
	UnitPrice     *decimal.Decimal `json:"unit_price,omitempty"`
	Amount        *decimal.Decimal `json:"amount,omitempty"`
}

// NewShipmentItem constructs a ShipmentItem, rejecting empty descriptions.
func NewShipmentItem(description string) (*ShipmentItem, error) {
	if description == "" {
		return nil, ErrItemDescriptionMissing
	}
	return &ShipmentItem{Description: description}, nil
}

// ShipmentRecord is the canonical structured record extracted from one
// bill of lading. RecordID is always non-empty.
type ShipmentRecord struct {
	RecordID  string `json:"record_id"`
	BOLNumber string `json:"bol_number,omitempty"`
	PRONumber string `json:"pro_number,omitempty"`
	SCACCode  string `json:"scac_code,omitempty"`

	ShipDate     *time.Time `json:"ship_date,omitempty"`
	DeliveryDate *time.Time `json:"delivery_date,omitempty"`

	Shipper   *Address `json:"shipper,omitempty"`
	Consignee *Address `json:"consignee,omitempty"`
	BillTo    *Address `json:"bill_to,omitempty"`

	CarrierName   string `json:"carrier_name,omitempty"`
	DriverName    string `json:"driver_name,omitempty"`
	TruckNumber   string `json:"truck_number,omitempty"`
	TrailerNumber string `json:"trailer_number,omitempty"`
	SealNumber    string `json:"seal_number,omitempty"`

	OriginTerminal      string `json:"origin_terminal,omitempty"`
	DestinationTerminal string `json:"destination_terminal,omitempty"`

	FreightChargeTerms string `json:"freight_charge_terms,omitempty"`
	PaymentTerms       string `json:"payment_terms,omitempty"`

	TotalWeight  *float64 `json:"total_weight,omitempty"`
	WeightUnit   string   `json:"weight_unit,omitempty"`
	TotalPieces  *int     `json:"total_pieces,omitempty"`
	TotalPallets *int     `json:"total_pallets,omitempty"`

	Items []ShipmentItem `json:"shipment_items"`

	SpecialInstructions  string `json:"special_instructions,omitempty"`
	DeliveryInstructions string `json:"delivery_instructions,omitempty"`

	FreightCharges     *decimal.Decimal `json:"freight_charges,omitempty"`
	AccessorialCharges *decimal.Decimal `json:"accessorial_charges,omitempty"`
	TotalCharges       *decimal.Decimal `json:"total_charges,omitempty"`

	ShipmentType string `json:"shipment_type,omitempty"`
	ServiceType  string `json:"service_type,omitempty"`

	ConfidenceScores map[string]float64 `json:"confidence_scores"`
	RawText          string             `json:"raw_text,omitempty"`
	Metadata         map[string]any     `json:"metadata"`
}

// OverallConfidence returns the synthesized "overall" score, 0.0 when absent.
func (r *ShipmentRecord) OverallConfidence() float64 {
	return r.ConfidenceScores["overall"]
}

// RecordRow is the persisted summary of a parsed record: a handful of
// indexed header fields plus the full record payload as JSON.
type RecordRow struct {
	ID                uuid.UUID       `db:"id" json:"id"`
	DocumentID        uuid.UUID       `db:"document_id" json:"document_id"`
	RecordID          string          `db:"record_id" json:"record_id"`
	BOLNumber         string          `db:"bol_number" json:"bol_number"`
	ShipperName       string          `db:"shipper_name" json:"shipper_name"`
	ConsigneeName     string          `db:"consignee_name" json:"consignee_name"`
	CarrierName       string          `db:"carrier_name" json:"carrier_name"`
	ShipDate          *time.Time      `db:"ship_date" json:"ship_date"`
	OverallConfidence float64         `db:"overall_confidence" json:"overall_confidence"`
	Warnings          json.RawMessage `db:"warnings" json:"warnings"`
	Payload           json.RawMessage `db:"payload" json:"payload"`
	SourceFileName    string          `db:"source_file_name" json:"source_file_name"`
	CreatedAt         time.Time       `db:"created_at" json:"created_at"`
}
