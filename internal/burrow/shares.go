package burrow

import (
	"github.com/shopspring/decimal"
)

// AmountToShares converts a native token amount into pool shares at
// the current exchange rate. The first depositor into an empty pool
// gets shares one to one.
func AmountToShares(amount, shareSupply, balance decimal.Decimal) decimal.Decimal {
	if !shareSupply.IsPositive() || !balance.IsPositive() {
		return amount
	}

	return amount.Mul(shareSupply).Div(balance).Truncate(0)
}

// SharesToAmount converts pool shares back into the native token
// amount they currently redeem for.
func SharesToAmount(shares, shareSupply, balance decimal.Decimal) decimal.Decimal {
	if !shareSupply.IsPositive() || !balance.IsPositive() {
		return shares
	}

	return shares.Mul(balance).Div(shareSupply).Truncate(0)
}
