package burrow

import (
	"testing"

	"burrow/core"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newRateMarket() *core.Market {
	return &core.Market{
		TokenID:           "wrap.near",
		TargetUtilization: 8000,
		// 1 + 8e-12 per millisecond at the target point
		TargetUtilizationRate: decimal.RequireFromString("1000000000008000000000000000"),
		// 1 + 16e-12 per millisecond when fully utilized
		MaxUtilizationRate: decimal.RequireFromString("1000000000016000000000000000"),
		TotalDeposited:     decimal.NewFromInt(1000),
	}
}

func TestGetRateEmptyMarket(t *testing.T) {
	market := &core.Market{TokenID: "wrap.near", TargetUtilization: 8000}
	require.True(t, GetRate(market).Equal(one))
}

func TestGetRateBelowTarget(t *testing.T) {
	market := newRateMarket()
	market.TotalBorrowed = decimal.NewFromInt(400)

	rate := GetRate(market)
	require.Equal(t, "1.000000000004", rate.String())
	require.Equal(t, "0.4", market.Utilization.String())
}

func TestGetRateAtTarget(t *testing.T) {
	market := newRateMarket()
	market.TotalBorrowed = decimal.NewFromInt(800)

	// at the kink both segments meet at the target rate
	rate := GetRate(market)
	require.Equal(t, "1.000000000008", rate.String())
}

func TestGetRateAboveTarget(t *testing.T) {
	market := newRateMarket()
	market.TotalBorrowed = decimal.NewFromInt(900)

	rate := GetRate(market)
	require.Equal(t, "1.000000000012", rate.String())
}

func TestGetRateFullUtilization(t *testing.T) {
	market := newRateMarket()
	market.TotalBorrowed = decimal.NewFromInt(1000)

	rate := GetRate(market)
	require.Equal(t, "1.000000000016", rate.String())
}

func TestGetRateClampsAboveCeiling(t *testing.T) {
	market := newRateMarket()
	market.TotalBorrowed = decimal.NewFromInt(800)
	// a misconfigured curve that yields 2x per millisecond
	market.TargetUtilizationRate = decimal.RequireFromString("2000000000000000000000000000")

	require.True(t, GetRate(market).Equal(one))
}

func TestGetRateClampsBelowOne(t *testing.T) {
	market := newRateMarket()
	market.TotalBorrowed = decimal.NewFromInt(400)
	market.TargetUtilizationRate = decimal.RequireFromString("900000000000000000000000000")

	require.True(t, GetRate(market).Equal(one))
}

func TestGetRateUnconfiguredTarget(t *testing.T) {
	market := newRateMarket()
	market.TargetUtilization = 0
	market.TotalBorrowed = decimal.NewFromInt(400)

	require.True(t, GetRate(market).Equal(one))
}
