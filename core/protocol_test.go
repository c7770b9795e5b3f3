package core

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestProtocolRecompute(t *testing.T) {
	markets := []*Market{
		{
			TokenID:                "wrap.near",
			TotalValueLockedUSD:    decimal.NewFromInt(1000),
			TotalDepositBalanceUSD: decimal.NewFromInt(1000),
			TotalBorrowBalanceUSD:  decimal.NewFromInt(400),
			CumulativeLiquidateUSD: decimal.NewFromInt(5),
			OpenPositionCount:      3,
			ClosedPositionCount:    1,
		},
		{
			TokenID:                "usn",
			TotalValueLockedUSD:    decimal.NewFromInt(500),
			TotalDepositBalanceUSD: decimal.NewFromInt(500),
			TotalBorrowBalanceUSD:  decimal.NewFromInt(100),
			OpenPositionCount:      2,
			ClosedPositionCount:    4,
		},
	}

	p := NewProtocol()
	p.Recompute(markets, 7)

	require.Equal(t, "1500", p.TotalValueLockedUSD.String())
	require.Equal(t, "1500", p.TotalDepositBalanceUSD.String())
	require.Equal(t, "500", p.TotalBorrowBalanceUSD.String())
	require.Equal(t, "5", p.CumulativeLiquidateUSD.String())
	require.Equal(t, int64(5), p.OpenPositionCount)
	require.Equal(t, int64(10), p.CumulativePositionCount)
	require.Equal(t, int64(2), p.MarketCount)
	require.Equal(t, int64(7), p.CumulativeUniqueUsers)

	// recompute replaces, never accumulates
	p.Recompute(markets[:1], 7)
	require.Equal(t, "1000", p.TotalValueLockedUSD.String())
	require.Equal(t, int64(1), p.MarketCount)
	require.Equal(t, int64(4), p.CumulativePositionCount)
}
