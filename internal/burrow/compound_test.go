package burrow

import (
	"testing"

	"burrow/core"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newCompoundMarket() *core.Market {
	m := newRateMarket()
	m.ReserveRatio = 2000
	m.TotalBorrowed = decimal.New(1, 12)
	m.TotalDeposited = decimal.New(1, 12)
	return m
}

func TestCompoundNoElapsed(t *testing.T) {
	market := newCompoundMarket()
	market.LastUpdateTimestamp = 1000

	r, err := Compound(market, nil, 1000)
	require.NoError(t, err)
	require.Equal(t, int64(0), r.Elapsed)
	require.True(t, market.TotalBorrowed.Equal(decimal.New(1, 12)))

	// clocks can run behind the watermark after a reorg
	_, err = Compound(market, nil, 500)
	require.NoError(t, err)
	require.Equal(t, int64(1000), market.LastUpdateTimestamp)
}

func TestCompoundAccrues(t *testing.T) {
	market := newCompoundMarket()
	now := int64(86400000)

	r, err := Compound(market, nil, now)
	require.NoError(t, err)
	require.Equal(t, now, r.Elapsed)
	require.True(t, r.Interest.IsPositive())
	require.True(t, r.Interest.Equal(r.Interest.Truncate(0)), "interest must be integral")

	wantReserved := r.Interest.Mul(decimal.NewFromInt(2000)).Div(RatioScale).Floor()
	require.True(t, r.Reserved.Equal(wantReserved))

	principal := decimal.New(1, 12)
	require.True(t, market.TotalBorrowed.Equal(principal.Add(r.Interest)))
	require.True(t, market.TotalReserved.Equal(r.Reserved))
	require.True(t, market.TotalDeposited.Equal(principal.Add(r.Interest).Sub(r.Reserved)))
	require.Equal(t, now, market.LastUpdateTimestamp)

	// reserved plus the depositor share always reassembles the interest
	share := market.TotalDeposited.Sub(principal)
	require.True(t, r.Reserved.Add(share).Equal(r.Interest))
}

func TestCompoundIdempotent(t *testing.T) {
	market := newCompoundMarket()
	now := int64(86400000)

	_, err := Compound(market, nil, now)
	require.NoError(t, err)
	borrowed := market.TotalBorrowed

	r, err := Compound(market, nil, now)
	require.NoError(t, err)
	require.True(t, r.Interest.IsZero())
	require.True(t, market.TotalBorrowed.Equal(borrowed))
}

func TestCompoundDeterministic(t *testing.T) {
	a := newCompoundMarket()
	b := newCompoundMarket()

	_, err := Compound(a, nil, 86400000)
	require.NoError(t, err)
	_, err = Compound(b, nil, 86400000)
	require.NoError(t, err)

	require.True(t, a.TotalBorrowed.Equal(b.TotalBorrowed))
	require.True(t, a.TotalDeposited.Equal(b.TotalDeposited))
	require.True(t, a.TotalReserved.Equal(b.TotalReserved))
}

func TestCompoundAnomalyAborts(t *testing.T) {
	market := newCompoundMarket()
	market.TotalBorrowed = decimal.NewFromInt(800)
	market.TotalDeposited = decimal.NewFromInt(1000)
	// rate 1.1 per millisecond passes the curve clamp but explodes the
	// multiplier over any real window
	market.TargetUtilizationRate = decimal.RequireFromString("1100000000000000000000000000")

	r, err := Compound(market, nil, 60000)
	require.ErrorIs(t, err, core.ErrInterestAnomaly)
	require.True(t, r.Interest.IsZero())
	require.True(t, market.TotalBorrowed.Equal(decimal.NewFromInt(800)))
	require.Equal(t, int64(0), market.LastUpdateTimestamp)
}

func TestCompoundDecaysEmissions(t *testing.T) {
	market := newCompoundMarket()
	active := &core.RewardEmission{
		MarketID:        market.TokenID,
		Side:            core.RewardSideSupplied,
		RewardTokenID:   "token.burrow.near",
		RewardPerDay:    decimal.NewFromInt(86400),
		RemainingAmount: decimal.NewFromInt(1000000),
	}
	draining := &core.RewardEmission{
		MarketID:        market.TokenID,
		Side:            core.RewardSideBorrowed,
		RewardTokenID:   "token.burrow.near",
		RewardPerDay:    decimal.NewFromInt(86400),
		RemainingAmount: decimal.NewFromInt(90000),
		EmissionUSD:     decimal.NewFromInt(42),
	}

	_, err := Compound(market, []*core.RewardEmission{active, draining}, 86400000)
	require.NoError(t, err)

	require.Equal(t, "913600", active.RemainingAmount.String())
	require.True(t, active.RewardPerDay.IsPositive())

	// the drained schedule cannot cover another day and gets zeroed
	require.True(t, draining.RewardPerDay.IsZero())
	require.True(t, draining.RemainingAmount.IsZero())
	require.True(t, draining.EmissionUSD.IsZero())
}
