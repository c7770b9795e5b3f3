package burrow

import (
	"burrow/core"

	"github.com/shopspring/decimal"
)

// BorrowAPR annualizes a per-millisecond borrow rate.
func BorrowAPR(rate decimal.Decimal) decimal.Decimal {
	return Exponential(rate.Sub(one), MillisPerYear).Sub(one)
}

// SupplyAPR derives the supply side yield from the borrow apr: interest
// paid by borrowers, net of the reserve cut, spread over deposits.
func SupplyAPR(market *core.Market, borrowAPR decimal.Decimal) decimal.Decimal {
	if !market.TotalDeposited.IsPositive() {
		return decimal.Zero
	}

	net := one.Sub(decimal.NewFromInt(market.ReserveRatio).Div(RatioScale))
	return borrowAPR.Mul(market.TotalBorrowed).Mul(net).Div(market.TotalDeposited)
}
