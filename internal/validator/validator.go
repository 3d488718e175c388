// Package validator checks extracted shipment records for completeness.
// Failures are advisory warnings returned alongside the record, never a
// reason to reject it.
package validator

import (
	"log"
	"strings"

	"lading/internal/domain"
)

// Rule is one completeness check. Check returns "" when the record passes.
type Rule struct {
	Key   string
	Check func(r *domain.ShipmentRecord, e *Engine) string
}

// Engine runs the built-in rule table against records.
type Engine struct {
	minConfidence float64
	rules         []Rule
}

// NewEngine creates a validation engine gating on the given overall
// confidence threshold. A non-positive threshold selects the default 0.6.
func NewEngine(minConfidence float64) *Engine {
	if minConfidence <= 0 {
		minConfidence = 0.6
	}
	return &Engine{
		minConfidence: minConfidence,
		rules:         builtinRules,
	}
}

var builtinRules = []Rule{
	{Key: "bol_number_present", Check: func(r *domain.ShipmentRecord, _ *Engine) string {
		if r.BOLNumber == "" {
			return "BOL number not found"
		}
		return ""
	}},
	{Key: "shipper_present", Check: func(r *domain.ShipmentRecord, _ *Engine) string {
		if r.Shipper.Empty() {
			return "Shipper information missing"
		}
		return ""
	}},
	{Key: "consignee_present", Check: func(r *domain.ShipmentRecord, _ *Engine) string {
		if r.Consignee.Empty() {
			return "Consignee information missing"
		}
		return ""
	}},
	{Key: "items_present", Check: func(r *domain.ShipmentRecord, _ *Engine) string {
		if len(r.Items) == 0 {
			return "No shipment items found"
		}
		return ""
	}},
	{Key: "confidence_threshold", Check: func(r *domain.ShipmentRecord, e *Engine) string {
		if r.OverallConfidence() < e.minConfidence {
			return "Low overall confidence score"
		}
		return ""
	}},
}

// Validate returns the warnings for one record. An empty slice means the
// record passed every rule.
func (e *Engine) Validate(record *domain.ShipmentRecord) []string {
	var warnings []string
	for _, rule := range e.rules {
		if w := rule.Check(record, e); w != "" {
			warnings = append(warnings, w)
		}
	}
	if len(warnings) > 0 {
		log.Printf("validator.Engine: record %s warnings: %s", record.RecordID, strings.Join(warnings, ", "))
	}
	return warnings
}
