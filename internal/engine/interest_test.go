package engine

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAccrue(t *testing.T) {
	mark := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	rate := decimal.NewFromInt(10)

	t.Run("one year", func(t *testing.T) {
		interest := Accrue(decimal.NewFromInt(1000), rate, mark, mark.Add(365*24*time.Hour))
		assert.True(t, interest.Equal(decimal.NewFromInt(100)), "got %s", interest)
	})

	t.Run("half year", func(t *testing.T) {
		interest := Accrue(decimal.NewFromInt(1000), rate, mark, mark.Add(365*12*time.Hour))
		assert.True(t, interest.Equal(decimal.NewFromInt(50)), "got %s", interest)
	})

	t.Run("zero elapsed", func(t *testing.T) {
		assert.True(t, Accrue(decimal.NewFromInt(1000), rate, mark, mark).IsZero())
	})

	t.Run("clock behind mark", func(t *testing.T) {
		assert.True(t, Accrue(decimal.NewFromInt(1000), rate, mark, mark.Add(-time.Hour)).IsZero())
	})

	t.Run("zero debt", func(t *testing.T) {
		assert.True(t, Accrue(decimal.Zero, rate, mark, mark.Add(time.Hour)).IsZero())
	})

	t.Run("rounds down", func(t *testing.T) {
		interest := Accrue(decimal.NewFromInt(1), rate, mark, mark.Add(time.Second))
		// 1 * 0.1 / 31536000 = 0.00000000317... truncates to zero at 8 places
		assert.True(t, interest.IsZero())
	})
}

// accrual is strictly increasing in elapsed time for positive debt once the
// amount clears the truncation floor
func TestAccrueMonotone(t *testing.T) {
	mark := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	debt := decimal.NewFromInt(100000)
	rate := decimal.NewFromInt(10)

	prev := decimal.Zero
	for days := 1; days <= 365; days += 30 {
		interest := Accrue(debt, rate, mark, mark.Add(time.Duration(days)*24*time.Hour))
		assert.True(t, interest.GreaterThan(prev), "day %d: %s <= %s", days, interest, prev)
		prev = interest
	}
}
