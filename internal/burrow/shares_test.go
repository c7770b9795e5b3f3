package burrow

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestAmountToSharesBootstrap(t *testing.T) {
	amount := decimal.NewFromInt(1000000)
	require.True(t, AmountToShares(amount, decimal.Zero, decimal.Zero).Equal(amount))
}

func TestAmountToSharesProportional(t *testing.T) {
	shares := AmountToShares(
		decimal.NewFromInt(500),
		decimal.NewFromInt(1000),
		decimal.NewFromInt(2000),
	)
	require.Equal(t, "250", shares.String())
}

func TestSharesToAmount(t *testing.T) {
	amount := SharesToAmount(
		decimal.NewFromInt(250),
		decimal.NewFromInt(1000),
		decimal.NewFromInt(2000),
	)
	require.Equal(t, "500", amount.String())
}

func TestSharesRoundTrip(t *testing.T) {
	supply := decimal.NewFromInt(333333)
	balance := decimal.NewFromInt(1000001)
	amount := decimal.NewFromInt(123457)

	shares := AmountToShares(amount, supply, balance)
	back := SharesToAmount(shares, supply, balance)

	// truncation loses at most one share, worth a few native units here
	diff := amount.Sub(back)
	require.True(t, diff.Sign() >= 0)
	require.True(t, diff.LessThanOrEqual(decimal.NewFromInt(4)), "diff %s", diff)
}
