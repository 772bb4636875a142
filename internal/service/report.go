package service

import "github.com/mserban/cabinet-bot/internal/model"

// Report holds the trailing-month totals and their two-party split.
// Values are raw floating point; no rounding or currency handling.
type Report struct {
	Count            int
	Total            float64
	OwnerShare       float64
	CounterpartShare float64

	// Expenses carries the aggregated records for chart rendering.
	Expenses []model.Expense
}

// Aggregate reduces records to totals. CounterpartShare is
// Total*splitFraction and OwnerShare the remainder, so the two shares
// always sum to Total. A NaN amount makes the whole total NaN.
func Aggregate(expenses []model.Expense, splitFraction float64) Report {
	report := Report{
		Count:    len(expenses),
		Expenses: expenses,
	}
	for _, e := range expenses {
		report.Total += e.Amount
	}
	report.CounterpartShare = report.Total * splitFraction
	report.OwnerShare = report.Total - report.CounterpartShare
	return report
}
