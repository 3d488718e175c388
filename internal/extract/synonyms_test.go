package extract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"lading/internal/extract"
)

func TestSynonymMapper_Identifiers(t *testing.T) {
	m := extract.NewSynonymMapper(nil)

	assert.Equal(t, "bol_number", m.Map("BOL #"))
	assert.Equal(t, "bol_number", m.Map("Bill of Lading Number"))
	assert.Equal(t, "pro_number", m.Map("PRO #"))
	assert.Equal(t, "scac_code", m.Map("SCAC"))
}

func TestSynonymMapper_CombinedRulesBeforeSingle(t *testing.T) {
	m := extract.NewSynonymMapper(nil)

	// "Shipper Name" contains both triggers; the combined rule must win.
	assert.Equal(t, "shipper_name", m.Map("Shipper Name"))
	assert.Equal(t, "shipper_address", m.Map("Shipper Address"))
	assert.Equal(t, "shipper", m.Map("Shipper"))

	assert.Equal(t, "consignee_name", m.Map("Consignee Name"))
	assert.Equal(t, "consignee", m.Map("Consignee"))
}

func TestSynonymMapper_Dates(t *testing.T) {
	m := extract.NewSynonymMapper(nil)

	assert.Equal(t, "ship_date", m.Map("Ship Date"))
	assert.Equal(t, "ship_date", m.Map("Pickup Date"))
	assert.Equal(t, "delivery_date", m.Map("Delivery Date"))
	assert.Equal(t, "date", m.Map("Date"))
}

func TestSynonymMapper_WeightsAndCharges(t *testing.T) {
	m := extract.NewSynonymMapper(nil)

	assert.Equal(t, "total_weight", m.Map("Total Weight"))
	assert.Equal(t, "weight", m.Map("Weight"))
	assert.Equal(t, "freight_charge_terms", m.Map("Freight Charges"))
}

func TestSynonymMapper_NoMapping(t *testing.T) {
	m := extract.NewSynonymMapper(nil)

	assert.Equal(t, "", m.Map("Signature"))
	assert.Equal(t, "", m.Map(""))
	assert.Equal(t, "", m.Map("   "))
}
