package extract

import "strings"

// SynonymRule maps a set of trigger substrings to a canonical entity key.
// A rule matches when every trigger is contained in the lower-cased label.
type SynonymRule struct {
	Triggers []string
	Key      string
}

// defaultSynonymRules is the ordered field-label mapping table. Evaluation is
// strictly top-to-bottom and the first matching rule wins, so combined rules
// ("shipper"+"name") must precede their single-trigger fallbacks ("shipper").
var defaultSynonymRules = []SynonymRule{
	// Identifiers
	{Triggers: []string{"bol #"}, Key: "bol_number"},
	{Triggers: []string{"bol#"}, Key: "bol_number"},
	{Triggers: []string{"bill of lading"}, Key: "bol_number"},
	{Triggers: []string{"pro #"}, Key: "pro_number"},
	{Triggers: []string{"pro#"}, Key: "pro_number"},
	{Triggers: []string{"pro number"}, Key: "pro_number"},
	{Triggers: []string{"scac"}, Key: "scac_code"},

	// Parties
	{Triggers: []string{"carrier", "name"}, Key: "carrier_name"},
	{Triggers: []string{"shipper", "name"}, Key: "shipper_name"},
	{Triggers: []string{"shipper", "address"}, Key: "shipper_address"},
	{Triggers: []string{"shipper"}, Key: "shipper"},
	{Triggers: []string{"consignee", "name"}, Key: "consignee_name"},
	{Triggers: []string{"consignee", "address"}, Key: "consignee_address"},
	{Triggers: []string{"consignee"}, Key: "consignee"},

	// Dates
	{Triggers: []string{"date", "ship"}, Key: "ship_date"},
	{Triggers: []string{"date", "pickup"}, Key: "ship_date"},
	{Triggers: []string{"date", "delivery"}, Key: "delivery_date"},
	{Triggers: []string{"date"}, Key: "date"},

	// Weights
	{Triggers: []string{"weight", "total"}, Key: "total_weight"},
	{Triggers: []string{"weight"}, Key: "weight"},

	// Charge terms
	{Triggers: []string{"freight charge"}, Key: "freight_charge_terms"},
}

// SynonymMapper maps document field labels to canonical entity keys using an
// ordered rule table.
type SynonymMapper struct {
	rules []SynonymRule
}

// NewSynonymMapper builds a mapper from an explicit rule table. A nil table
// selects the default rules.
func NewSynonymMapper(rules []SynonymRule) *SynonymMapper {
	if rules == nil {
		rules = defaultSynonymRules
	}
	return &SynonymMapper{rules: rules}
}

// Map returns the canonical key for a field label, or "" when no rule
// matches. Matching is case-insensitive substring containment.
func (m *SynonymMapper) Map(label string) string {
	label = strings.ToLower(strings.TrimSpace(label))
	if label == "" {
		return ""
	}
	for _, rule := range m.rules {
		matched := true
		for _, trig := range rule.Triggers {
			if !strings.Contains(label, trig) {
				matched = false
				break
			}
		}
		if matched {
			return rule.Key
		}
	}
	return ""
}
