package ui

import (
	"math"
	"strconv"
)

// Number formats a standing rounded to the nearest integer.
func Number(v float64) string {
	r := math.Round(v)
	if r == 0 {
		return "0"
	}
	return strconv.FormatFloat(r, 'f', 0, 64)
}

// Signed formats a change with an explicit plus sign for positive values.
func Signed(v float64) string {
	s := Number(v)
	if math.Round(v) > 0 {
		return "+" + s
	}
	return s
}
