package render

import (
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// KPIPercent renders a KPI ratio as a whole percentage: 0.95 becomes
// "95%". Unparseable and zero values both come out as "0%".
func KPIPercent(raw string) string {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || d.IsZero() {
		return "0%"
	}
	return d.Mul(hundred).Round(0).String() + "%"
}

// OrZero substitutes "0" for blank cell values.
func OrZero(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return "0"
	}
	return raw
}
