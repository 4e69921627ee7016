package estimate

import "fmt"

// BillingIncrement is the billed time block in minutes
const BillingIncrement = 15

// BillingBlocks returns the number of started 15 minute blocks
func BillingBlocks(minutes int) int {
	if minutes <= 0 {
		return 0
	}
	return (minutes + BillingIncrement - 1) / BillingIncrement
}

// Cost returns the billed cost of a print: the time is rounded up to whole
// 15 minute blocks and each block is charged at hourlyRate.
func Cost(minutes int, hourlyRate float64) float64 {
	return float64(BillingBlocks(minutes)) * hourlyRate
}

// FormatCost renders a cost with a currency symbol and two decimals
func FormatCost(currency string, cost float64) string {
	return fmt.Sprintf("%s%.2f", currency, cost)
}
