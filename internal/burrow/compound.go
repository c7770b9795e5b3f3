package burrow

import (
	"burrow/core"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// AnomalyCeiling accrual multipliers above this abort the step
var AnomalyCeiling = decimal.RequireFromString("1.01")

// AccrualResult describes one interest accrual step.
type AccrualResult struct {
	// Interest total interest minted, in native units
	Interest decimal.Decimal
	// Reserved portion of the interest routed to protocol reserves
	Reserved decimal.Decimal
	// Elapsed milliseconds covered by this step
	Elapsed int64
}

// Compound accrues borrow interest on market up to nowMs and decays
// the market's active reward emissions over the same window. The
// market and emissions are mutated in place; persisting them is the
// caller's concern.
//
// A zero result with a nil error means nothing accrued: either no
// time elapsed or the computed multiplier was exactly one. When the
// multiplier falls outside (1, AnomalyCeiling] the step aborts with
// ErrInterestAnomaly and no state changes.
func Compound(market *core.Market, emissions []*core.RewardEmission, nowMs int64) (AccrualResult, error) {
	var r AccrualResult

	elapsed := nowMs - market.LastUpdateTimestamp
	if elapsed <= 0 {
		return r, nil
	}

	rate := GetRate(market)
	scaled := Exponential(rate.Sub(one), decimal.NewFromInt(elapsed))

	log := logrus.WithFields(logrus.Fields{
		"market":  market.TokenID,
		"elapsed": elapsed,
		"scaled":  scaled,
	})

	if scaled.GreaterThan(AnomalyCeiling) {
		log.Warningln("compound multiplier above ceiling, skipped")
		return r, core.ErrInterestAnomaly
	}

	if scaled.Equal(one) {
		return r, nil
	}

	if scaled.IsNegative() {
		log.Errorln("compound multiplier negative, skipped")
		return r, core.ErrInterestAnomaly
	}

	interest := scaled.Mul(market.TotalBorrowed).Sub(market.TotalBorrowed).Truncate(0)
	reserved := interest.Mul(decimal.NewFromInt(market.ReserveRatio)).Div(RatioScale).Floor()

	market.TotalReserved = market.TotalReserved.Add(reserved)
	market.TotalDeposited = market.TotalDeposited.Add(interest.Sub(reserved))
	market.TotalBorrowed = market.TotalBorrowed.Add(interest)
	market.LastUpdateTimestamp += elapsed

	decayEmissions(emissions, elapsed)

	r.Interest = interest
	r.Reserved = reserved
	r.Elapsed = elapsed
	return r, nil
}

// decayEmissions burns down remaining reward budgets at their daily
// rate. A schedule whose remainder no longer covers one day of
// emission is zeroed out.
func decayEmissions(emissions []*core.RewardEmission, elapsedMs int64) {
	elapsed := decimal.NewFromInt(elapsedMs)
	for _, e := range emissions {
		if !e.RewardPerDay.IsPositive() {
			continue
		}

		burned := e.RewardPerDay.Div(MillisPerDay).Mul(elapsed)
		e.RemainingAmount = e.RemainingAmount.Sub(burned)

		if e.Exhausted() {
			e.RewardPerDay = decimal.Zero
			e.RemainingAmount = decimal.Zero
			e.EmissionUSD = decimal.Zero
		}
	}
}
