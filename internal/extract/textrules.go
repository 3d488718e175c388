package extract

import (
	"regexp"
	"strings"
)

// TextRule is one named raw-text extraction rule. Rules are independent:
// a rule that matches nothing leaves the map untouched and never blocks the
// rules after it. Writes go through EntityMap.Set, so earlier-priority
// sources are never overwritten.
type TextRule struct {
	Name  string
	Apply func(text string, out EntityMap)
}

// firstMatch probes an ordered list of regex alternatives and returns the
// first capture group of the first pattern that matches.
func firstMatch(text string, patterns ...*regexp.Regexp) string {
	for _, p := range patterns {
		if m := p.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

var (
	bolNewlineRe = regexp.MustCompile(`BOL\s*#\s*\n\s*(\d+)`)
	bolInlineRe  = regexp.MustCompile(`BOL\s*#\s*(\d+)`)

	proAfterDateRe = regexp.MustCompile(`PRO\s*#[\s\n]*DATE[\s\n]+(\d+)`)
	proInlineRe    = regexp.MustCompile(`PRO\s*#[\s\n]+(\d+)`)

	carrierHeaderRowRe = regexp.MustCompile(`NAME OF CARRIER[\s\n]+PRO\s*#[\s\n]+DATE[\s\n]+BOL\s*#[\s\n]+([^\n]+(?:\n[^\d\n][^\n]+)?)`)
	carrierInlineRe    = regexp.MustCompile(`NAME OF CARRIER[\s\n]+([^\n]+(?:\s*-\s*[^\n]+)?)`)
	carrierDateTailRe  = regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{4}.*$`)

	dateSlash4Re = regexp.MustCompile(`(\d{1,2}/\d{1,2}/\d{4})`)
	dateSlash2Re = regexp.MustCompile(`(\d{1,2}/\d{1,2}/\d{2})\b`)
	dateDash4Re  = regexp.MustCompile(`(\d{1,2}-\d{1,2}-\d{4})`)

	originSectionRe  = regexp.MustCompile(`ORIGIN:[\s\n]+([^\n]+)[\s\n]+(\d+[^\n]+)[\s\n]+([^,\n]+,\s*[A-Z]{2}\s+\d{5})`)
	shipperSectionRe = regexp.MustCompile(`SHIPPER INFORMATION[\s\n]+(?:CONSIGNEE INFORMATION[\s\n]+)?([^\n]+)`)
	consigneeTailRe  = regexp.MustCompile(`CONSIGNEE INFORMATION.*$`)
	careOfTailRe     = regexp.MustCompile(`/\s*C/O.*$`)
	cityStZipLineRe  = regexp.MustCompile(`^([^,]+),\s*([A-Z]{2})\s+(\d{5})`)

	contactPairRe = regexp.MustCompile(`([A-Z][a-z]+\s+[A-Z][a-z]+)[\s\n]+(\d{3}[-.]?\d{3}[-.]?\d{4})`)

	consigneeNumberedRe = regexp.MustCompile(`CONSIGNEE:[\s\n]+(\d+\s*[-–]\s*[^\n]+)`)
	consigneeLineRe     = regexp.MustCompile(`CONSIGNEE:[\s\n]+([^\n]+)`)
	consigneeBlockRe    = regexp.MustCompile(`CONSIGNEE:[\s\n]+([\s\S]*?)(?:DOCK TYPE|ACCESS\.|DELIVERY #|PICK UP #|NOTES|FREIGHT READY TIME|FREIGHT CHARGES)`)
	streetCityZipRe     = regexp.MustCompile(`(\d+[^\n]+(?:Street|St|Avenue|Ave|Road|Rd|Drive|Dr|Boulevard|Blvd|Circle|Way)[^\n]*)(?:[\s\n]+(?:Ste|Suite|Apt|Unit)\s+[^\n]+)?[\s\n]+([^,\n]+,\s*[A-Z]{2}\s+\d{5})`)
	suiteLineRe         = regexp.MustCompile(`(\d+[^\n]+)[\s\n]+((?:Ste|Suite|Apt|Unit)\s+[^\n]+)`)

	receivingContactRe = regexp.MustCompile(`Shipping\s*&?\s*Receiving[\s\n]+(\d{3}[-.]?\d{3}[-.]?\d{4})`)

	freightTermsRe = regexp.MustCompile(`(?i)FREIGHT CHARGES:\s*(Collect|Prepaid|Third Party)`)

	billToSectionRe = regexp.MustCompile(`SEND FREIGHT BILL TO:[\s\n]+([^\n]+)[\s\n]+(\d+[^\n]+)[\s\n]+([^,\n]+,\s*[A-Z]{2}\s+\d{5})`)

	weightTotalRe    = regexp.MustCompile(`(?i)TOTAL[\s\n]+\d+\s+Pallets[\s\n]+(\d+)\s*lbs`)
	weightShippingRe = regexp.MustCompile(`(?i)SHIPPING WEIGHT[\s\n]+[^\n]*?(\d+)\s*lbs`)
	weightLooseRe    = regexp.MustCompile(`(?i)(\d{3,})\s*lbs`)

	palletTotalRe = regexp.MustCompile(`(?i)(\d+)\s+Pallets[\s\n]+\d+\s*lbs`)
	palletLooseRe = regexp.MustCompile(`(?i)(\d+)\s*Pallets?`)

	specialInstrRe = regexp.MustCompile(`\*+Special Instructions\*+[\s\n]+([^\n]+)`)
	billingIDRe    = regexp.MustCompile(`BILLING ID[\s\n]+(\d+)`)
	customerPORe   = regexp.MustCompile(`CUSTOMER PO[\s\n]+(\d+)`)
	customIDRe     = regexp.MustCompile(`CUSTOM ID[\s\n]+(\d+)`)
)

// defaultTextRules is the ordered raw-text rule battery, evaluated
// top-to-bottom over the full document (or section) text.
var defaultTextRules = []TextRule{
	{Name: "bol_number", Apply: func(text string, out EntityMap) {
		if v := firstMatch(text, bolNewlineRe, bolInlineRe); v != "" {
			out.Set("bol_number", v)
		}
	}},
	{Name: "pro_number", Apply: func(text string, out EntityMap) {
		// Short captures are column headers or stray digits, not PRO numbers.
		if v := firstMatch(text, proAfterDateRe, proInlineRe); len(v) > 3 {
			out.Set("pro_number", v)
		}
	}},
	{Name: "carrier_name", Apply: func(text string, out EntityMap) {
		for _, re := range []*regexp.Regexp{carrierHeaderRowRe, carrierInlineRe} {
			m := re.FindStringSubmatch(text)
			if m == nil {
				continue
			}
			carrier := strings.TrimSpace(carrierDateTailRe.ReplaceAllString(strings.TrimSpace(m[1]), ""))
			if carrier != "" && !strings.Contains(carrier, "PRO") && !strings.Contains(carrier, "DATE") {
				out.Set("carrier_name", carrier)
				return
			}
		}
	}},
	{Name: "ship_date", Apply: func(text string, out EntityMap) {
		if v := firstMatch(text, dateSlash4Re, dateSlash2Re, dateDash4Re); v != "" {
			out.Set("ship_date", v)
		}
	}},
	{Name: "shipper", Apply: func(text string, out EntityMap) {
		if m := originSectionRe.FindStringSubmatch(text); m != nil {
			out.Set("shipper_name", strings.TrimSpace(m[1]))
			out.Set("shipper_street", strings.TrimSpace(m[2]))
			setCityStateZip(out, "shipper", strings.TrimSpace(m[3]))
			return
		}
		if m := shipperSectionRe.FindStringSubmatch(text); m != nil {
			name := strings.TrimSpace(m[1])
			name = strings.TrimSpace(consigneeTailRe.ReplaceAllString(name, ""))
			name = strings.TrimSpace(careOfTailRe.ReplaceAllString(name, ""))
			if name != "" && !strings.Contains(name, "ORIGIN:") {
				out.Set("shipper_name", name)
			}
		}
	}},
	{Name: "shipper_contact", Apply: func(text string, out EntityMap) {
		if m := contactPairRe.FindStringSubmatch(text); m != nil {
			out.Set("shipper_contact_name", m[1])
			out.Set("shipper_contact_phone", strings.ReplaceAll(m[2], ".", "-"))
		}
	}},
	{Name: "consignee_name", Apply: func(text string, out EntityMap) {
		for _, re := range []*regexp.Regexp{consigneeNumberedRe, consigneeLineRe} {
			m := re.FindStringSubmatch(text)
			if m == nil {
				continue
			}
			name := cleanPartyName(m[1])
			if name != "" && !strings.Contains(name, "DOCK TYPE") {
				out.Set("consignee_name", name)
				return
			}
		}
	}},
	{Name: "consignee_address", Apply: func(text string, out EntityMap) {
		block := consigneeBlockRe.FindStringSubmatch(text)
		if block == nil {
			return
		}
		m := streetCityZipRe.FindStringSubmatch(block[1])
		if m == nil {
			return
		}
		street := strings.TrimSpace(m[1])
		if suite := suiteLineRe.FindStringSubmatch(block[1]); suite != nil && strings.Contains(street, strings.TrimSpace(suite[1])) {
			street = street + ", " + strings.TrimSpace(suite[2])
		}
		out.Set("consignee_street", street)
		setCityStateZip(out, "consignee", strings.TrimSpace(m[2]))
	}},
	{Name: "consignee_contact", Apply: func(text string, out EntityMap) {
		if m := receivingContactRe.FindStringSubmatch(text); m != nil {
			out.Set("consignee_contact_name", "Shipping & Receiving")
			out.Set("consignee_contact_phone", strings.ReplaceAll(m[1], ".", "-"))
		}
	}},
	{Name: "freight_charge_terms", Apply: func(text string, out EntityMap) {
		if m := freightTermsRe.FindStringSubmatch(text); m != nil {
			out.Set("freight_charge_terms", m[1])
		}
	}},
	{Name: "bill_to", Apply: func(text string, out EntityMap) {
		m := billToSectionRe.FindStringSubmatch(text)
		if m == nil {
			return
		}
		out.Set("bill_to_name", strings.TrimSpace(m[1]))
		out.Set("bill_to_street", strings.TrimSpace(m[2]))
		setCityStateZip(out, "bill_to", strings.TrimSpace(m[3]))
	}},
	{Name: "total_weight", Apply: func(text string, out EntityMap) {
		if v := firstMatch(text, weightTotalRe, weightShippingRe, weightLooseRe); v != "" {
			out.Set("total_weight", v)
		}
	}},
	{Name: "total_pallets", Apply: func(text string, out EntityMap) {
		if v := firstMatch(text, palletTotalRe, palletLooseRe); v != "" {
			out.Set("total_pallets", v)
		}
	}},
	{Name: "special_instructions", Apply: func(text string, out EntityMap) {
		if v := firstMatch(text, specialInstrRe); v != "" {
			out.Set("special_instructions", v)
		}
	}},
	{Name: "billing_id", Apply: func(text string, out EntityMap) {
		if v := firstMatch(text, billingIDRe); v != "" {
			out.Set("billing_id", v)
		}
	}},
	{Name: "customer_po", Apply: func(text string, out EntityMap) {
		if v := firstMatch(text, customerPORe); v != "" {
			out.Set("customer_po", v)
		}
	}},
	{Name: "custom_id", Apply: func(text string, out EntityMap) {
		if v := firstMatch(text, customIDRe); v != "" {
			out.Set("custom_id", v)
		}
	}},
}

// RunTextRules applies the rule battery to text, filling only keys still
// absent from out.
func RunTextRules(text string, out EntityMap) {
	for _, rule := range defaultTextRules {
		rule.Apply(text, out)
	}
}

func setCityStateZip(out EntityMap, prefix, line string) {
	if m := cityStZipLineRe.FindStringSubmatch(line); m != nil {
		out.Set(prefix+"_city", strings.TrimSpace(m[1]))
		out.Set(prefix+"_state", m[2])
		out.Set(prefix+"_zip", m[3])
	}
}
