package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type LoanStatus string

const (
	LoanStatusActive   LoanStatus = "active"
	LoanStatusOverdue  LoanStatus = "overdue"
	LoanStatusReturned LoanStatus = "returned"
)

// Allowed loan durations in days.
var LoanDurations = []int32{7, 14, 21}

const DefaultLoanDurationDays int32 = 14

func IsValidLoanDuration(days int32) bool {
	for _, d := range LoanDurations {
		if d == days {
			return true
		}
	}
	return false
}

type Loan struct {
	ID         int32           `json:"id"`
	UserID     int32           `json:"user_id"`
	BookID     int32           `json:"book_id"`
	BorrowDate time.Time       `json:"borrow_date"`
	DueDate    time.Time       `json:"due_date"`
	ReturnDate *time.Time      `json:"return_date,omitempty"`
	Status     LoanStatus      `json:"status"`
	FineAmount decimal.Decimal `json:"fine_amount"`
}

// DaysOverdue returns whole days elapsed past the due date minus the grace
// period. Partial days truncate, matching the sweep's day arithmetic.
func DaysOverdue(now, dueDate time.Time, gracePeriodDays int32) int32 {
	days := int32(now.Sub(dueDate).Hours() / 24)
	return days - gracePeriodDays
}

// PastGracePeriod reports whether now is strictly beyond due date + grace.
func PastGracePeriod(now, dueDate time.Time, gracePeriodDays int32) bool {
	graceEnd := dueDate.Add(time.Duration(gracePeriodDays) * 24 * time.Hour)
	return now.After(graceEnd)
}

// ComputeFine returns daysOverdue * finePerDay rounded to two decimals, or
// zero when not past due. Callers overwrite the stored fine with this value;
// fines are recomputed from scratch, never accumulated.
func ComputeFine(now, dueDate time.Time, gracePeriodDays int32, finePerDay decimal.Decimal) decimal.Decimal {
	days := DaysOverdue(now, dueDate, gracePeriodDays)
	if days <= 0 {
		return decimal.Zero
	}
	return finePerDay.Mul(decimal.NewFromInt32(days)).Round(2)
}
