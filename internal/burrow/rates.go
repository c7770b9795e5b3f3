package burrow

import (
	"burrow/core"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var (
	// RatioScale scale of reserve/target-utilization ratios
	RatioScale = decimal.NewFromInt(10000)
	// RateScale scale of the utilization rate config values
	RateScale = decimal.New(1, 27)
	// RateCeiling per-millisecond rates above this are treated as a
	// misconfiguration and clamped to one
	RateCeiling = decimal.RequireFromString("1.1")
	// MillisPerDay milliseconds per day
	MillisPerDay = decimal.NewFromInt(24 * 60 * 60 * 1000)
	// MillisPerYear milliseconds per year
	MillisPerYear = decimal.NewFromInt(31536000000)
	// MaxPrecision digits kept after division; per-millisecond rate
	// fractions need more headroom than the package default
	MaxPrecision int32 = 40

	one = decimal.New(1, 0)
)

func init() {
	if decimal.DivisionPrecision < int(MaxPrecision) {
		decimal.DivisionPrecision = int(MaxPrecision)
	}
}

// GetRate computes the market's per-millisecond borrow growth
// multiplier from its utilization, on the piecewise-linear kinked curve.
// The market's transient utilization field is refreshed as a side
// effect. Rates outside [1, RateCeiling] are clamped to one.
func GetRate(market *core.Market) decimal.Decimal {
	total := market.TotalSupplied()
	if !total.IsPositive() {
		return one
	}

	pos := market.TotalBorrowed.Div(total)
	market.Utilization = pos

	target := decimal.NewFromInt(market.TargetUtilization).Div(RatioScale)
	if !target.IsPositive() || target.GreaterThanOrEqual(one) {
		return one
	}

	var rate decimal.Decimal
	if pos.LessThanOrEqual(target) {
		slope := market.TargetUtilizationRate.Div(RateScale).Sub(one).Div(target)
		rate = one.Add(pos.Mul(slope))
	} else {
		excess := market.MaxUtilizationRate.Sub(market.TargetUtilizationRate).Div(RateScale)
		rate = market.TargetUtilizationRate.Div(RateScale).
			Add(pos.Sub(target).Mul(excess).Div(one.Sub(target)))
	}

	if rate.LessThan(one) || rate.GreaterThan(RateCeiling) {
		logrus.WithFields(logrus.Fields{
			"market":      market.TokenID,
			"rate":        rate,
			"utilization": pos,
		}).Warningln("rate outside sane bounds, clamped")
		return one
	}

	return rate
}
