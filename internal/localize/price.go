package localize

import (
	"strings"

	"github.com/shopspring/decimal"
)

// VNDPerUSD is the fixed display conversion rate the store has always used.
// Prices are stored in USD; the Vietnamese view multiplies by this rate.
const VNDPerUSD = 25000

// FormatPrice renders a USD amount for the given language:
// EN as "$1,234.50", VI converted to đồng and rendered as "31.250.000₫".
func FormatPrice(amount decimal.Decimal, lang Language) string {
	if lang == LangVI {
		dong := amount.Mul(decimal.NewFromInt(VNDPerUSD)).Round(0)
		digits, neg := splitSign(dong.String())
		out := groupDigits(digits, ".") + "₫"
		if neg {
			out = "-" + out
		}
		return out
	}

	fixed := amount.StringFixed(2)
	digits, neg := splitSign(fixed)
	whole, frac, _ := strings.Cut(digits, ".")
	out := "$" + groupDigits(whole, ",") + "." + frac
	if neg {
		out = "-" + out
	}
	return out
}

// FormatPriceFloat is a convenience wrapper for callers holding float prices.
func FormatPriceFloat(amount float64, lang Language) string {
	return FormatPrice(decimal.NewFromFloat(amount), lang)
}

// FormatPriceCents renders an integer USD-cent amount; order totals are
// stored in cents.
func FormatPriceCents(cents int64, lang Language) string {
	return FormatPrice(decimal.New(cents, -2), lang)
}

func splitSign(s string) (string, bool) {
	if strings.HasPrefix(s, "-") {
		return s[1:], true
	}
	return s, false
}

func groupDigits(digits, sep string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}

	var b strings.Builder
	pre := n % 3
	if pre > 0 {
		b.WriteString(digits[:pre])
	}
	for i := pre; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
