package burrow

import (
	"burrow/core"
	"burrow/pkg/number"

	"github.com/shopspring/decimal"
)

// USDValue values a native token amount in usd at the token's last
// oracle price.
func USDValue(token *core.Token, amount decimal.Decimal) decimal.Decimal {
	return number.Humanize(amount, token.Decimals+token.ExtraDecimals).Mul(token.LastPriceUSD)
}

// ApplyDeposit folds a supply event into the market, account and
// lender position, minting pool shares at the current exchange rate.
// Returns the usd value of the deposit.
func ApplyDeposit(market *core.Market, account *core.Account, position *core.Position, token *core.Token, amount decimal.Decimal, mark core.EventMark) decimal.Decimal {
	position.Increase(amount, mark, account, market)
	position.DepositCount++
	account.DepositCount++

	market.OutputTokenSupply = market.OutputTokenSupply.Add(
		AmountToShares(amount, market.OutputTokenSupply, market.InputTokenBalance))
	market.InputTokenBalance = market.InputTokenBalance.Add(amount)
	market.TotalDeposited = market.TotalDeposited.Add(amount)
	market.TotalDepositedHistory = market.TotalDepositedHistory.Add(amount)

	return USDValue(token, amount)
}

// ApplyWithdraw folds a withdrawal into the market, account and lender
// position, burning the shares the amount redeems.
func ApplyWithdraw(market *core.Market, account *core.Account, position *core.Position, token *core.Token, amount decimal.Decimal, mark core.EventMark) decimal.Decimal {
	position.Decrease(amount, mark, account, market)
	position.WithdrawCount++
	account.WithdrawCount++

	market.OutputTokenSupply = market.OutputTokenSupply.Sub(
		AmountToShares(amount, market.OutputTokenSupply, market.InputTokenBalance))
	market.InputTokenBalance = market.InputTokenBalance.Sub(amount)
	market.TotalDeposited = market.TotalDeposited.Sub(amount)
	market.TotalWithdrawnHistory = market.TotalWithdrawnHistory.Add(amount)

	return USDValue(token, amount)
}

// ApplyBorrow folds a borrow into the market, account and borrower
// position. Borrowed funds land in the borrower's deposits before
// withdrawal, so the pool balance and share supply grow too.
func ApplyBorrow(market *core.Market, account *core.Account, position *core.Position, token *core.Token, amount decimal.Decimal, mark core.EventMark) decimal.Decimal {
	position.Increase(amount, mark, account, market)
	position.BorrowCount++
	account.BorrowCount++

	market.OutputTokenSupply = market.OutputTokenSupply.Add(
		AmountToShares(amount, market.OutputTokenSupply, market.InputTokenBalance))
	market.InputTokenBalance = market.InputTokenBalance.Add(amount)
	market.TotalBorrowed = market.TotalBorrowed.Add(amount)
	market.TotalBorrowedHistory = market.TotalBorrowedHistory.Add(amount)

	return USDValue(token, amount)
}

// ApplyRepay folds a repayment into the market, account and borrower
// position, reversing ApplyBorrow.
func ApplyRepay(market *core.Market, account *core.Account, position *core.Position, token *core.Token, amount decimal.Decimal, mark core.EventMark) decimal.Decimal {
	position.Decrease(amount, mark, account, market)
	position.RepayCount++
	account.RepayCount++

	market.OutputTokenSupply = market.OutputTokenSupply.Sub(
		AmountToShares(amount, market.OutputTokenSupply, market.InputTokenBalance))
	market.InputTokenBalance = market.InputTokenBalance.Sub(amount)
	market.TotalBorrowed = market.TotalBorrowed.Sub(amount)
	market.TotalRepaidHistory = market.TotalRepaidHistory.Add(amount)

	return USDValue(token, amount)
}

// ApplyLiquidationRepaid folds one repaid debt leg of a liquidation:
// the liquidatee's borrower position shrinks and the market forgets
// both the debt and the deposits that backed it. Returns the usd value
// repaid and the liquidator's profit at the given discount factor.
func ApplyLiquidationRepaid(market *core.Market, liquidatee *core.Account, position *core.Position, token *core.Token, amount, discount decimal.Decimal, mark core.EventMark) (repaidUSD, profitUSD decimal.Decimal) {
	position.Decrease(amount, mark, liquidatee, market)
	position.LiquidationCount++

	market.TotalBorrowed = market.TotalBorrowed.Sub(amount)
	market.TotalDeposited = market.TotalDeposited.Sub(amount)

	repaidUSD = USDValue(token, amount)
	profitUSD = repaidUSD.Mul(discount)
	market.CumulativeLiquidateUSD = market.CumulativeLiquidateUSD.Add(repaidUSD)
	return repaidUSD, profitUSD
}

// ApplyLiquidationSeized folds one seized collateral leg of a
// liquidation: the liquidatee's lender position shrinks, clamped at
// zero, closing when fully drained.
func ApplyLiquidationSeized(market *core.Market, liquidatee *core.Account, position *core.Position, amount decimal.Decimal, mark core.EventMark) {
	position.Decrease(amount, mark, liquidatee, market)
	position.LiquidationCount++
}

// ApplyForceClose zeroes one position of a liquidated account. Debt is
// written off against deposits and the remainder lands in reserves;
// abandoned collateral is swept into reserves whole.
func ApplyForceClose(market *core.Market, account *core.Account, position *core.Position, mark core.EventMark) {
	if !position.Open() {
		return
	}

	balance := position.Balance
	switch position.Side {
	case core.PositionSideBorrower:
		market.TotalBorrowed = market.TotalBorrowed.Sub(balance)
		market.TotalDeposited = market.TotalDeposited.Sub(balance)
		market.TotalReserved = market.TotalReserved.Add(balance)
	case core.PositionSideLender:
		market.TotalDeposited = market.TotalDeposited.Sub(balance)
		market.TotalReserved = market.TotalReserved.Add(balance)
	}

	position.Decrease(balance, mark, account, market)
	position.LiquidationCount++
}
