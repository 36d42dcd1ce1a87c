package quote

import (
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// FormatPrice renders an amount with space-grouped thousands and the given
// currency symbol, e.g. "38 000 ₽". Fractional amounts keep two decimals.
func FormatPrice(amount decimal.Decimal, symbol string) string {
	var s string
	if amount.Equal(amount.Truncate(0)) {
		s = humanize.FormatInteger("# ###.", int(amount.IntPart()))
	} else {
		s = humanize.FormatFloat("# ###,##", amount.InexactFloat64())
	}
	if symbol == "" {
		return s
	}
	return strings.TrimSpace(s) + " " + symbol
}
