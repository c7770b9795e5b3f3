package burrow

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestExponentialZeroRate(t *testing.T) {
	n := decimal.NewFromInt(86400000)
	require.True(t, Exponential(decimal.Zero, n).Equal(one))
}

func TestExponentialSmallExponents(t *testing.T) {
	// for n <= 3 the truncated series is the full binomial expansion
	x := decimal.RequireFromString("0.000000000004")
	base := one.Add(x)

	require.True(t, Exponential(x, one).Equal(base))
	require.True(t, Exponential(x, two).Equal(base.Mul(base)))
	require.True(t, Exponential(x, three).Equal(base.Mul(base).Mul(base)))
}

func TestExponentialLongWindow(t *testing.T) {
	// 1.6e-11 per ms over a day, true value exp(0.0013824)
	x := decimal.RequireFromString("0.000000000016")
	n := decimal.NewFromInt(86400000)

	got := Exponential(x, n)
	want := decimal.RequireFromString("1.00138335")
	require.True(t, got.Sub(want).Abs().LessThan(decimal.RequireFromString("0.0000001")),
		"got %s", got)
}
