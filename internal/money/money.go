// Package money formats amounts the way proposals print them (pt-BR).
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Round2 rounds half away from zero to cents.
func Round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

// BRL renders v as Brazilian reais, e.g. "R$ 1.234,56".
func BRL(v float64) string {
	d := decimal.NewFromFloat(v).Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}
	s := d.StringFixed(2)
	intPart, frac, _ := strings.Cut(s, ".")
	return sign + "R$ " + group(intPart) + "," + frac
}

// Number renders v with at most places decimals, trailing zeros trimmed.
func Number(v float64, places int32) string {
	s := decimal.NewFromFloat(v).Round(places).String()
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	intPart, frac, hasFrac := strings.Cut(s, ".")
	out := group(intPart)
	if hasFrac {
		out += "," + frac
	}
	if neg {
		out = "-" + out
	}
	return out
}

// Percent renders a value already expressed in percent, e.g. 12.5 -> "12,5%".
func Percent(v float64) string {
	return Number(v, 1) + "%"
}

func group(digits string) string {
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
