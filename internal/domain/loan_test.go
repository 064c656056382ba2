package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestComputeFine(t *testing.T) {
	due := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	rate := decimal.RequireFromString("0.50")

	t.Run("ten days past due with three grace days", func(t *testing.T) {
		now := due.Add(10 * 24 * time.Hour)
		fine := ComputeFine(now, due, 3, rate)
		assert.Equal(t, "3.50", fine.StringFixed(2))
	})

	t.Run("partial days truncate", func(t *testing.T) {
		// 10 days and 23 hours late still counts as 10 days.
		now := due.Add(10*24*time.Hour + 23*time.Hour)
		fine := ComputeFine(now, due, 3, rate)
		assert.Equal(t, "3.50", fine.StringFixed(2))
	})

	t.Run("inside grace period", func(t *testing.T) {
		now := due.Add(3 * 24 * time.Hour)
		fine := ComputeFine(now, due, 3, rate)
		assert.True(t, fine.IsZero())
	})

	t.Run("not yet due", func(t *testing.T) {
		now := due.Add(-24 * time.Hour)
		fine := ComputeFine(now, due, 3, rate)
		assert.True(t, fine.IsZero())
	})

	t.Run("exactly one day past grace", func(t *testing.T) {
		now := due.Add(4 * 24 * time.Hour)
		fine := ComputeFine(now, due, 3, rate)
		assert.Equal(t, "0.50", fine.StringFixed(2))
	})
}

func TestPastGracePeriod(t *testing.T) {
	due := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	assert.False(t, PastGracePeriod(due, due, 3))
	assert.False(t, PastGracePeriod(due.Add(3*24*time.Hour), due, 3))
	assert.True(t, PastGracePeriod(due.Add(3*24*time.Hour+time.Second), due, 3))
}

func TestDaysOverdue(t *testing.T) {
	due := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, int32(7), DaysOverdue(due.Add(10*24*time.Hour), due, 3))
	assert.Equal(t, int32(0), DaysOverdue(due.Add(3*24*time.Hour), due, 3))
	assert.Equal(t, int32(-3), DaysOverdue(due, due, 3))
}

func TestIsValidLoanDuration(t *testing.T) {
	for _, d := range []int32{7, 14, 21} {
		assert.True(t, IsValidLoanDuration(d))
	}
	for _, d := range []int32{0, 1, 10, 28, -7} {
		assert.False(t, IsValidLoanDuration(d))
	}
}
