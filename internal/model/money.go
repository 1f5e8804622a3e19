package model

import "math"

// Round2 rounds a monetary amount to two decimal places. All subtotal,
// discount and total arithmetic goes through this before storage or display.
func Round2(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// MinorUnits converts a monetary amount to integer minor units (pence/cents)
// for the payment processor.
func MinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
