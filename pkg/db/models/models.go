package models

import "time"

// All returns every model in migration order (referenced tables first).
func All() []any {
	return []any{
		&Store{},
		&Staff{},
		&Supplier{},
		&Member{},
		&SignUp{},
		&Merchandise{},
		&Discount{},
		&Transaction{},
		&TransactionItem{},
	}
}

// Date builds a calendar date at UTC midnight. Purchase, production, and
// discount-window fields are date-valued; keeping them normalized makes
// inclusive range queries behave the same on postgres and sqlite.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
