package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// dateLayouts is the ordered list of accepted date formats. Order is part of
// the contract: ambiguous day/month inputs resolve to the first layout that
// parses, so US-style month-first forms are tried before day-first forms.
var dateLayouts = []string{
	"2006-01-02",
	"1/2/2006",
	"2/1/2006",
	"2006/1/2",
	"January 2, 2006",
	"Jan 2, 2006",
	"2-1-2006",
	"1-2-2006",
	"1/2/06",
	"2/1/06",
}

var (
	amountJunkRe = regexp.MustCompile(`[^\d.,\-]`)
	intJunkRe    = regexp.MustCompile(`[^\d\-]`)
)

// ParseDate converts a free-form date string to a UTC date. Unparseable or
// empty input yields ok=false, never an error.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// ParseAmount converts a free-form monetary string ("$5,110.00") to an exact
// decimal. Currency symbols and thousands separators are stripped.
func ParseAmount(s string) (decimal.Decimal, bool) {
	cleaned := strings.ReplaceAll(amountJunkRe.ReplaceAllString(s, ""), ",", "")
	if cleaned == "" {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

// ParseFloat converts a free-form numeric string to a float64 using the same
// stripping strategy as ParseAmount.
func ParseFloat(s string) (float64, bool) {
	cleaned := strings.ReplaceAll(amountJunkRe.ReplaceAllString(s, ""), ",", "")
	if cleaned == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// ParsePercent converts a percentage string to a fraction in [0,1].
// Values greater than 1 are treated as whole percentages: "10" means 10%.
func ParsePercent(s string) (float64, bool) {
	f, ok := ParseFloat(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	if !ok {
		return 0, false
	}
	if f > 1 {
		f /= 100
	}
	return f, true
}

// ParseInt converts a free-form integer string, stripping everything except
// digits and the minus sign.
func ParseInt(s string) (int, bool) {
	cleaned := intJunkRe.ReplaceAllString(s, "")
	if cleaned == "" {
		return 0, false
	}
	n, err := strconv.Atoi(cleaned)
	if err != nil {
		return 0, false
	}
	return n, true
}
