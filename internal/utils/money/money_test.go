package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPercentOf(t *testing.T) {
	// 10% of R$ 1.000,00
	assert.Equal(t, int64(10000), PercentOf(100000, decimal.NewFromInt(10)))

	// Fractional percent rounds half away from zero: 2.5% of 333 centavos
	// is 8.325, rounded to 8.
	assert.Equal(t, int64(8), PercentOf(333, decimal.NewFromFloat(2.5)))

	// Zero percent and zero base
	assert.Equal(t, int64(0), PercentOf(100000, decimal.Zero))
	assert.Equal(t, int64(0), PercentOf(0, decimal.NewFromInt(50)))

	// 100% is identity
	assert.Equal(t, int64(98765), PercentOf(98765, decimal.NewFromInt(100)))
}

func TestRatio(t *testing.T) {
	assert.Equal(t, 70.0, Ratio(350000, 500000))
	assert.Equal(t, 0.0, Ratio(100, 0), "zero denominator yields 0, never NaN")
	assert.Equal(t, -50.0, Ratio(-100, 200))

	// One decimal place: 1/3 = 33.3%
	assert.Equal(t, 33.3, Ratio(1, 3))
}

func TestRoundDiv(t *testing.T) {
	assert.Equal(t, int64(50000), RoundDiv(150000, 3))
	assert.Equal(t, int64(0), RoundDiv(100, 0))

	// 100/3 = 33.33 rounds to 33; 200/3 = 66.67 rounds to 67
	assert.Equal(t, int64(33), RoundDiv(100, 3))
	assert.Equal(t, int64(67), RoundDiv(200, 3))
}

func TestRoundPercent(t *testing.T) {
	assert.Equal(t, 100, RoundPercent(40, 40))
	assert.Equal(t, 88, RoundPercent(35, 40))
	assert.Equal(t, 113, RoundPercent(45, 40))
	assert.Equal(t, 0, RoundPercent(10, 0), "zero capacity yields 0")
}
