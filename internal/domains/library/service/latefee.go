package service

import (
	"time"

	"github.com/shopspring/decimal"
)

// Overdue fee policy: the first week costs 0.50 per day, every day after
// that 1.00, and the total is capped at 15.00.
const firstWeekOverdueDays = 7

var (
	firstWeekDailyFee = decimal.NewFromFloat(0.50)
	lateDailyFee      = decimal.NewFromFloat(1.00)
	maxLateFee        = decimal.NewFromFloat(15.00)
)

// DaysOverdue counts whole calendar days between the due date and the
// reference date, floored at zero. Time-of-day is ignored on both sides.
func DaysOverdue(dueDate, asOf time.Time) int {
	due := truncateToDay(dueDate)
	ref := truncateToDay(asOf)

	days := int(ref.Sub(due).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

func truncateToDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// LateFee maps overdue days to the fee amount, rounded to 2 decimals.
func LateFee(daysOverdue int) decimal.Decimal {
	if daysOverdue <= 0 {
		return decimal.Zero
	}

	firstWeek := daysOverdue
	if firstWeek > firstWeekOverdueDays {
		firstWeek = firstWeekOverdueDays
	}
	extra := daysOverdue - firstWeekOverdueDays
	if extra < 0 {
		extra = 0
	}

	fee := firstWeekDailyFee.Mul(decimal.NewFromInt(int64(firstWeek))).
		Add(lateDailyFee.Mul(decimal.NewFromInt(int64(extra))))

	if fee.GreaterThan(maxLateFee) {
		fee = maxLateFee
	}
	return fee.Round(2)
}
