package output

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatCurrency formats a decimal as USD with thousands separators and 2 decimals.
func FormatCurrency(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Abs()
	}
	fixed := amount.StringFixed(2)
	whole, frac, _ := strings.Cut(fixed, ".")
	return sign + "$" + groupThousands(whole) + "." + frac
}

// FormatPercentage formats a decimal as a percentage with 2 decimals.
func FormatPercentage(amount decimal.Decimal) string { return amount.StringFixed(2) + "%" }

// FormatThousands renders a dollar amount in whole thousands, e.g. "-1,744k".
func FormatThousands(amount decimal.Decimal) string {
	k := amount.Div(decimal.NewFromInt(1000)).Round(0)
	sign := ""
	if k.IsNegative() {
		sign = "-"
		k = k.Abs()
	}
	return sign + groupThousands(k.String()) + "k"
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

func intToString(i int) string { return strconv.Itoa(i) }

func optionalIntToString(i *int) string {
	if i == nil {
		return ""
	}
	return strconv.Itoa(*i)
}

var decimalHundred = decimal.NewFromInt(100)

var decimalTwelve = decimal.NewFromInt(12)
