package extract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"lading/internal/extract"
)

func TestAssembleAddress_DiscreteFields(t *testing.T) {
	entities := extract.EntityMap{
		"shipper_name":   "Acme Distribution",
		"shipper_street": "1200 Industrial Pkwy",
		"shipper_city":   "Chino",
		"shipper_state":  "CA",
		"shipper_zip":    "91708",
	}

	addr := extract.AssembleAddress(entities, "shipper", "USA")
	assert.NotNil(t, addr)
	assert.Equal(t, "Acme Distribution", addr.Name)
	assert.Equal(t, "1200 Industrial Pkwy", addr.Street)
	assert.Equal(t, "Chino", addr.City)
	assert.Equal(t, "CA", addr.State)
	assert.Equal(t, "91708", addr.PostalCode)
	assert.Equal(t, "USA", addr.Country)
}

func TestAssembleAddress_CandidateKeyFallbacks(t *testing.T) {
	entities := extract.EntityMap{
		"consignee_address":     "400 Commerce Dr",
		"consignee_postal_code": "68118",
		"consignee_phone":       "402-555-0188",
	}

	addr := extract.AssembleAddress(entities, "consignee", "USA")
	assert.NotNil(t, addr)
	assert.Equal(t, "400 Commerce Dr", addr.Street)
	assert.Equal(t, "68118", addr.PostalCode)
	assert.Equal(t, "402-555-0188", addr.ContactPhone)
}

func TestAssembleAddress_BlockDecomposition(t *testing.T) {
	entities := extract.EntityMap{
		"consignee_address_block": "58 - Omaha Scheels\n17202 Davenport Street\nOmaha, NE 68118",
	}

	addr := extract.AssembleAddress(entities, "consignee", "USA")
	assert.NotNil(t, addr)
	assert.Equal(t, "Omaha Scheels", addr.Name)
	assert.Equal(t, "17202 Davenport Street", addr.Street)
	assert.Equal(t, "Omaha", addr.City)
	assert.Equal(t, "NE", addr.State)
	assert.Equal(t, "68118", addr.PostalCode)
}

func TestAssembleAddress_BlockLastLineDegradesToCity(t *testing.T) {
	entities := extract.EntityMap{
		"shipper_address_block": "Acme Distribution\n1200 Industrial Pkwy\nSomewhere Unusual",
	}

	addr := extract.AssembleAddress(entities, "shipper", "USA")
	assert.NotNil(t, addr)
	assert.Equal(t, "Somewhere Unusual", addr.City)
	assert.Equal(t, "", addr.State)
	assert.Equal(t, "", addr.PostalCode)
}

func TestAssembleAddress_ZipPlusFour(t *testing.T) {
	entities := extract.EntityMap{
		"bill_to_address_block": "Freight Payments Inc\nPO Box 210\nDallas, TX 75201-4421",
	}

	addr := extract.AssembleAddress(entities, "bill_to", "USA")
	assert.NotNil(t, addr)
	assert.Equal(t, "Dallas", addr.City)
	assert.Equal(t, "TX", addr.State)
	assert.Equal(t, "75201-4421", addr.PostalCode)
}

func TestAssembleAddress_NoComponentsReturnsNil(t *testing.T) {
	entities := extract.EntityMap{"bol_number": "123456"}

	assert.Nil(t, extract.AssembleAddress(entities, "shipper", "USA"))
}

func TestAssembleAddress_ExplicitCountryKept(t *testing.T) {
	entities := extract.EntityMap{
		"shipper_name":    "Maple Freight Ltd",
		"shipper_country": "Canada",
	}

	addr := extract.AssembleAddress(entities, "shipper", "USA")
	assert.NotNil(t, addr)
	assert.Equal(t, "Canada", addr.Country)
}
