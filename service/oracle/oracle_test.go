package oracle

import (
	"context"
	"testing"

	"burrow/core"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestApplyPrice(t *testing.T) {
	s := New()
	token := &core.Token{ID: "usdt.tether-token.near", Decimals: 6}

	err := s.ApplyPrice(context.Background(), token, "9997", 10, 42)
	require.NoError(t, err)
	require.Equal(t, "0.9997", token.LastPriceUSD.String())
	require.Equal(t, int64(42), token.LastPriceBlockNumber)
}

func TestApplyPriceKeepsPreviousOnBadFeed(t *testing.T) {
	s := New()
	token := &core.Token{
		ID:                   "wrap.near",
		Decimals:             24,
		LastPriceUSD:         decimal.RequireFromString("3.14"),
		LastPriceBlockNumber: 41,
	}

	// feed decimals below the token's cannot be reconciled
	err := s.ApplyPrice(context.Background(), token, "100", 10, 42)
	require.ErrorIs(t, err, core.ErrBadPriceFeed)
	require.Equal(t, "3.14", token.LastPriceUSD.String())
	require.Equal(t, int64(41), token.LastPriceBlockNumber)

	err = s.ApplyPrice(context.Background(), token, "not-a-number", 28, 42)
	require.ErrorIs(t, err, core.ErrBadPriceFeed)
	require.Equal(t, "3.14", token.LastPriceUSD.String())
}
