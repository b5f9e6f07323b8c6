package fee

import (
	"math"
	"strconv"
)

// Pricing constants, KSh.
const (
	BaseFee  = 50
	PerKm    = 3
	MinFee   = 50
	roundTo  = 10
	swapLegs = 2
)

// Price returns the fee for a distance and a human readable distance text.
// A swap is a round trip, so its distance counts twice.
func Price(distanceKm float64, isSwap bool) (int64, string) {
	billable := distanceKm
	if isSwap {
		billable *= swapLegs
	}

	total := BaseFee + billable*PerKm
	if total < MinFee {
		total = MinFee
	}
	fee := int64(math.RoundToEven(total/roundTo) * roundTo)

	text := strconv.FormatFloat(math.Round(distanceKm*10)/10, 'f', 1, 64) + " km"
	if isSwap {
		text += " x 2 (Round Trip)"
	}
	return fee, text
}
