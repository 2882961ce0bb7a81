// Package rounding implements the rulebook's two-decimal rounding.
//
// Values are converted through their shortest decimal representation before
// rounding, so a stored 1.005 rounds to 1.01 rather than falling to 1.00
// through binary floating-point error. Halves round away from zero, which
// equals round-half-up for the non-negative values the engines produce.
package rounding

import (
	"math"

	"github.com/shopspring/decimal"
)

// Places is the precision of every stored points value.
const Places = 2

// Round2 rounds v to two decimal places, half-up at the 0.005 boundary.
func Round2(v float64) float64 {
	return Round(v, Places)
}

// Round rounds v to the given number of decimal places, half-up.
// NaN and infinities are returned unchanged.
func Round(v float64, places int32) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}

// Sum adds values in decimal arithmetic and rounds the total to two places.
func Sum(values []float64) float64 {
	total := decimal.Zero
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		total = total.Add(decimal.NewFromFloat(v))
	}
	return total.Round(Places).InexactFloat64()
}

// MulAdd returns (a + b) * m rounded to two places.
func MulAdd(a, b, m float64) float64 {
	return dec(a).Add(dec(b)).Mul(dec(m)).Round(Places).InexactFloat64()
}

// Mul returns a * b rounded to two places.
func Mul(a, b float64) float64 {
	return dec(a).Mul(dec(b)).Round(Places).InexactFloat64()
}

// Quo returns a / b rounded to two places. A zero divisor yields zero.
func Quo(a, b float64) float64 {
	d := dec(b)
	if d.IsZero() {
		return 0
	}
	return dec(a).Div(d).Round(Places).InexactFloat64()
}

// Mean averages values in decimal arithmetic and rounds to two places.
// An empty slice yields zero.
func Mean(values []float64) float64 {
	total := decimal.Zero
	n := int64(0)
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		total = total.Add(decimal.NewFromFloat(v))
		n++
	}
	if n == 0 {
		return 0
	}
	return total.Div(decimal.NewFromInt(n)).Round(Places).InexactFloat64()
}

// RelativeGap returns factor * (value - ref) / ref rounded to two places.
func RelativeGap(factor, value, ref float64) float64 {
	r := dec(ref)
	if r.IsZero() {
		return 0
	}
	return dec(value).Sub(r).Mul(dec(factor)).Div(r).Round(Places).InexactFloat64()
}

func dec(v float64) decimal.Decimal {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v)
}
