package extract

import (
	"regexp"
	"strings"

	"lading/internal/domain"
)

// cityStateZipRe matches "City, ST 12345" or "City ST 12345-6789" lines.
var cityStateZipRe = regexp.MustCompile(`^(.+?),?\s+([A-Z]{2})\s+(\d{5}(?:-\d{4})?)$`)

// numericPrefixRe matches leading store-number prefixes like "58 - ".
var numericPrefixRe = regexp.MustCompile(`^\d+\s*[-–]\s*`)

// addressCandidates lists, per address component, the canonical-key suffixes
// probed under a role prefix. First present non-empty value wins.
var addressCandidates = map[string][]string{
	"name":          {"_name", ""},
	"street":        {"_street", "_address", "_addr"},
	"city":          {"_city"},
	"state":         {"_state"},
	"postal_code":   {"_zip", "_postal_code", "_postal"},
	"contact_name":  {"_contact_name", "_contact"},
	"contact_phone": {"_contact_phone", "_phone"},
}

// AssembleAddress builds an address for a role prefix ("shipper",
// "consignee", "bill_to") from the entity map. It prefers discrete prefixed
// fields, then decomposes a "<prefix>_address_block" value positionally.
// Returns nil when every candidate component is absent.
func AssembleAddress(entities EntityMap, prefix, defaultCountry string) *domain.Address {
	fields := map[string]string{}
	for component, suffixes := range addressCandidates {
		for _, suffix := range suffixes {
			if v := entities.Get(prefix + suffix); v != "" {
				fields[component] = v
				break
			}
		}
	}

	if block := entities.Get(prefix + "_address_block"); block != "" {
		for k, v := range parseAddressBlock(block) {
			fields[k] = v
		}
	}

	if len(fields) == 0 {
		return nil
	}

	addr := &domain.Address{
		Name:         cleanPartyName(fields["name"]),
		Street:       fields["street"],
		City:         fields["city"],
		State:        fields["state"],
		PostalCode:   fields["postal_code"],
		ContactName:  fields["contact_name"],
		ContactPhone: fields["contact_phone"],
	}
	addr.Country = entities.Get(prefix + "_country")
	if addr.Country == "" {
		addr.Country = defaultCountry
	}
	return addr
}

// parseAddressBlock decomposes a multi-line address block positionally:
// first line name, second line street, last line parsed as City, ST ZIP.
// When the last line does not match the pattern it degrades to city.
func parseAddressBlock(block string) map[string]string {
	result := map[string]string{}
	var lines []string
	for _, line := range strings.Split(strings.TrimSpace(block), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return result
	}

	result["name"] = lines[0]
	if len(lines) > 1 {
		result["street"] = lines[1]
	}
	if len(lines) > 2 {
		last := lines[len(lines)-1]
		if m := cityStateZipRe.FindStringSubmatch(last); m != nil {
			result["city"] = strings.TrimSpace(m[1])
			result["state"] = m[2]
			result["postal_code"] = m[3]
		} else {
			result["city"] = last
		}
	}
	return result
}

// cleanPartyName strips leading store-number prefixes ("58 - Omaha Scheels"
// → "Omaha Scheels") and surrounding whitespace.
func cleanPartyName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	// Names split on " - " keep the part after the marker when the lead is numeric.
	return strings.TrimSpace(numericPrefixRe.ReplaceAllString(name, ""))
}
