// Package money does cent-exact price arithmetic and Brazilian Real
// formatting. Prices live as float64 in the models; every calculation
// routes through decimal so a cart full of 0.1-style values still sums to
// the exact cent.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FreeShippingMin is the subtotal at which shipping becomes free.
const FreeShippingMin = 200.00

// shippingFee is the flat rate charged below FreeShippingMin.
const shippingFee = 15.90

// Mul returns price × quantity rounded to cents.
func Mul(price float64, quantity int) float64 {
	d := decimal.NewFromFloat(price).Mul(decimal.NewFromInt(int64(quantity)))
	return round(d)
}

// Add returns a + b rounded to cents.
func Add(a, b float64) float64 {
	return round(decimal.NewFromFloat(a).Add(decimal.NewFromFloat(b)))
}

// Shipping returns the shipping cost for the given subtotal: free at or
// above FreeShippingMin, the flat fee otherwise.
func Shipping(subtotal float64) float64 {
	if subtotal >= FreeShippingMin {
		return 0
	}
	return shippingFee
}

// Format renders a value as BRL, e.g. 1234.5 -> "R$ 1.234,50".
func Format(v float64) string {
	d := decimal.NewFromFloat(v).Round(2)
	neg := d.IsNegative()
	s := d.Abs().StringFixed(2) // "1234.50"

	intPart, fracPart, _ := strings.Cut(s, ".")

	var b strings.Builder
	if neg {
		b.WriteString("-")
	}
	b.WriteString("R$ ")
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	b.WriteByte(',')
	b.WriteString(fracPart)
	return b.String()
}

func round(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}
