package model

import "time"

// Expense is one record in the external expense table. Records are
// created by this process but owned by the store; they are never
// mutated or deleted after creation.
type Expense struct {
	ID      string
	Name    string
	Details string
	Amount  float64 // NaN when the submitted amount was missing or unparseable
	Date    time.Time
}
