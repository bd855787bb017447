package utils

import (
	"time"

	"github.com/shopspring/decimal"
)

// OverdueDays returns the number of chargeable overdue days for a return.
// Both timestamps are compared by wall clock, discarding their zone offsets.
// A partial day past the due date only counts once it exceeds twelve hours:
// 5 days and 13 hours late charges 6 days, 5 days and 11 hours charges 5.
func OverdueDays(dueDate, returnedAt time.Time) int {
	due := stripZone(dueDate)
	ret := stripZone(returnedAt)
	if !ret.After(due) {
		return 0
	}

	delta := ret.Sub(due)
	days := int(delta / (24 * time.Hour))
	if delta-time.Duration(days)*24*time.Hour > 12*time.Hour {
		days++
	}
	return days
}

// LateFee charges ratePerDay for each overdue day, rounded to two decimal
// places half away from zero to match currency display.
func LateFee(overdueDays int, ratePerDay decimal.Decimal) decimal.Decimal {
	if overdueDays <= 0 {
		return decimal.Zero
	}
	return ratePerDay.Mul(decimal.NewFromInt(int64(overdueDays))).Round(2)
}

// stripZone reinterprets t's wall-clock reading as UTC.
func stripZone(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}
