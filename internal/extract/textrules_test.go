package extract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"lading/internal/extract"
)

func runRules(text string) extract.EntityMap {
	out := extract.EntityMap{}
	extract.RunTextRules(text, out)
	return out
}

func TestTextRules_BOLNumberNewlineVariant(t *testing.T) {
	out := runRules("PRO #\nDATE\nBOL #\n445120\n")
	assert.Equal(t, "445120", out.Get("bol_number"))
}

func TestTextRules_ProNumberSkipsShortCaptures(t *testing.T) {
	out := runRules("PRO # 12\nother text")
	assert.Equal(t, "", out.Get("pro_number"))

	out = runRules("PRO #\nDATE\n04530041176\n")
	assert.Equal(t, "04530041176", out.Get("pro_number"))
}

func TestTextRules_CarrierFromHeaderRow(t *testing.T) {
	out := runRules("NAME OF CARRIER\nPRO #\nDATE\nBOL #\nEstes Express 9/18/2025 445120\n")
	assert.Equal(t, "Estes Express", out.Get("carrier_name"))
}

func TestTextRules_CarrierInline(t *testing.T) {
	out := runRules("NAME OF CARRIER\nOld Dominion - LTL\n")
	assert.Equal(t, "Old Dominion - LTL", out.Get("carrier_name"))
}

func TestTextRules_ShipDateFormats(t *testing.T) {
	assert.Equal(t, "9/18/2025", runRules("shipped 9/18/2025 via truck").Get("ship_date"))
	assert.Equal(t, "9/18/25", runRules("shipped 9/18/25 via truck").Get("ship_date"))
	assert.Equal(t, "9-18-2025", runRules("shipped 9-18-2025 via truck").Get("ship_date"))
}

func TestTextRules_ShipperFromOriginSection(t *testing.T) {
	out := runRules("ORIGIN:\nAcme Distribution\n1200 Industrial Pkwy\nChino, CA 91708\n")

	assert.Equal(t, "Acme Distribution", out.Get("shipper_name"))
	assert.Equal(t, "1200 Industrial Pkwy", out.Get("shipper_street"))
	assert.Equal(t, "Chino", out.Get("shipper_city"))
	assert.Equal(t, "CA", out.Get("shipper_state"))
	assert.Equal(t, "91708", out.Get("shipper_zip"))
}

func TestTextRules_ShipperContactPair(t *testing.T) {
	out := runRules("Contact\nJane Miller\n555-123-4567\n")

	assert.Equal(t, "Jane Miller", out.Get("shipper_contact_name"))
	assert.Equal(t, "555-123-4567", out.Get("shipper_contact_phone"))
}

func TestTextRules_ConsigneeNumberedPrefixStripped(t *testing.T) {
	out := runRules("CONSIGNEE:\n58 - Omaha Scheels\n")
	assert.Equal(t, "Omaha Scheels", out.Get("consignee_name"))
}

func TestTextRules_ConsigneeAddressBlock(t *testing.T) {
	out := runRules("CONSIGNEE:\nOmaha Scheels\n17202 Davenport Street\nSte 100\nOmaha, NE 68118\nDOCK TYPE\n")

	assert.Equal(t, "17202 Davenport Street, Ste 100", out.Get("consignee_street"))
	assert.Equal(t, "Omaha", out.Get("consignee_city"))
	assert.Equal(t, "NE", out.Get("consignee_state"))
	assert.Equal(t, "68118", out.Get("consignee_zip"))
}

func TestTextRules_ConsigneeReceivingContact(t *testing.T) {
	out := runRules("Shipping & Receiving\n402.555.1234\n")

	assert.Equal(t, "Shipping & Receiving", out.Get("consignee_contact_name"))
	assert.Equal(t, "402-555-1234", out.Get("consignee_contact_phone"))
}

func TestTextRules_FreightChargeTerms(t *testing.T) {
	assert.Equal(t, "Prepaid", runRules("FREIGHT CHARGES: Prepaid\n").Get("freight_charge_terms"))
	assert.Equal(t, "collect", runRules("freight charges: collect\n").Get("freight_charge_terms"))
}

func TestTextRules_BillToSection(t *testing.T) {
	out := runRules("SEND FREIGHT BILL TO:\nAcme Logistics AP\n500 Finance Way\nDallas, TX 75201\n")

	assert.Equal(t, "Acme Logistics AP", out.Get("bill_to_name"))
	assert.Equal(t, "500 Finance Way", out.Get("bill_to_street"))
	assert.Equal(t, "Dallas", out.Get("bill_to_city"))
	assert.Equal(t, "TX", out.Get("bill_to_state"))
	assert.Equal(t, "75201", out.Get("bill_to_zip"))
}

func TestTextRules_WeightAndPalletsFromTotalsRow(t *testing.T) {
	out := runRules("TOTAL\n4 Pallets\n2080 lbs\n")

	assert.Equal(t, "2080", out.Get("total_weight"))
	assert.Equal(t, "4", out.Get("total_pallets"))
}

func TestTextRules_LooseWeightNeedsThreeDigits(t *testing.T) {
	assert.Equal(t, "", runRules("52 lbs").Get("total_weight"))
	assert.Equal(t, "520", runRules("520 lbs").Get("total_weight"))
}

func TestTextRules_ReferenceIdentifiers(t *testing.T) {
	out := runRules("BILLING ID\n90210\nCUSTOMER PO\n881234\nCUSTOM ID\n7001\n")

	assert.Equal(t, "90210", out.Get("billing_id"))
	assert.Equal(t, "881234", out.Get("customer_po"))
	assert.Equal(t, "7001", out.Get("custom_id"))
}

func TestTextRules_SpecialInstructions(t *testing.T) {
	out := runRules("**Special Instructions**\nCall before delivery\n")
	assert.Equal(t, "Call before delivery", out.Get("special_instructions"))
}

func TestTextRules_NeverOverwriteEarlierSource(t *testing.T) {
	out := extract.EntityMap{"bol_number": "111111"}
	extract.RunTextRules("BOL # 445120\n", out)
	assert.Equal(t, "111111", out.Get("bol_number"))
}
