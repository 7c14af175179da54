// Package money holds the currency helpers shared by the storefront contexts.
// Amounts are decimal values in BRL; nothing here is stateful.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Zero is the additive identity for amounts.
var Zero = decimal.Zero

// LineTotal returns price multiplied by quantity.
func LineTotal(price decimal.Decimal, quantity int) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(quantity)))
}

// IsCents reports whether amount is representable in whole cents, the
// precision of every stored money column.
func IsCents(amount decimal.Decimal) bool {
	return amount.Equal(amount.Round(2))
}

// Sum adds all values.
func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

// FormatBRL renders an amount the way the storefront displays prices, e.g. "R$ 1.234,56".
func FormatBRL(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}
	fixed := amount.StringFixed(2)
	whole, cents, _ := strings.Cut(fixed, ".")
	return sign + "R$ " + groupThousands(whole) + "," + cents
}

// DiscountPercent reports how much cheaper price is than oldPrice, rounded to a whole percent.
func DiscountPercent(oldPrice, price decimal.Decimal) int {
	if !oldPrice.IsPositive() || oldPrice.LessThanOrEqual(price) {
		return 0
	}
	pct := oldPrice.Sub(price).Div(oldPrice).Mul(decimal.NewFromInt(100)).Round(0)
	return int(pct.IntPart())
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
