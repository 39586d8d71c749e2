package menu

import (
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// FormatPrice renders d as US currency rounded to cents, e.g. "$1,234.50"
// or "-$3.10".
func FormatPrice(d decimal.Decimal) string {
	r := d.Round(2)
	sign := ""
	if r.IsNegative() {
		sign = "-"
		r = r.Neg()
	}
	_, cents, _ := strings.Cut(r.StringFixed(2), ".")
	return sign + "$" + humanize.BigComma(r.BigInt()) + "." + cents
}

// formatScore renders a score with the fewest digits that represent it.
func formatScore(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
