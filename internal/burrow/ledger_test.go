package burrow

import (
	"testing"

	"burrow/core"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newLedgerFixture() (*core.Market, *core.Account, *core.Token) {
	token := &core.Token{
		ID:           "usdt.tether-token.near",
		Decimals:     6,
		LastPriceUSD: decimal.NewFromInt(2),
	}
	market := core.NewMarket(token)
	market.TargetUtilization = 8000
	account := core.NewAccount("alice.near")
	return market, account, token
}

func mark() core.EventMark {
	return core.EventMark{Hash: "receipt-1", BlockNumber: 100, Timestamp: 1700000000000}
}

func TestApplyDepositBootstrap(t *testing.T) {
	market, account, token := newLedgerFixture()
	position := core.NewPosition(account.ID, market.TokenID, core.PositionSideLender, 0)

	usd := ApplyDeposit(market, account, position, token, decimal.NewFromInt(1000000), mark())

	require.Equal(t, "2", usd.String())
	require.Equal(t, "1000000", market.OutputTokenSupply.String())
	require.Equal(t, "1000000", market.InputTokenBalance.String())
	require.Equal(t, "1000000", market.TotalDeposited.String())
	require.Equal(t, "1000000", market.TotalDepositedHistory.String())

	require.True(t, position.Open())
	require.Equal(t, "receipt-1", position.HashOpened)
	require.Equal(t, int64(1), position.DepositCount)
	require.Equal(t, int64(1), account.DepositCount)
	require.Equal(t, int64(1), account.PositionCount)
	require.Equal(t, int64(1), account.OpenPositionCount)
	require.Equal(t, int64(1), market.LendingPositionCount)
}

func TestApplyWithdrawCloses(t *testing.T) {
	market, account, token := newLedgerFixture()
	position := core.NewPosition(account.ID, market.TokenID, core.PositionSideLender, 0)

	ApplyDeposit(market, account, position, token, decimal.NewFromInt(1000000), mark())
	ApplyWithdraw(market, account, position, token, decimal.NewFromInt(1000000), mark())

	require.False(t, position.Open())
	require.Equal(t, "receipt-1", position.HashClosed)
	require.True(t, market.OutputTokenSupply.IsZero())
	require.True(t, market.InputTokenBalance.IsZero())
	require.True(t, market.TotalDeposited.IsZero())
	require.Equal(t, "1000000", market.TotalWithdrawnHistory.String())

	require.Equal(t, int64(0), account.OpenPositionCount)
	require.Equal(t, int64(1), account.ClosedPositionCount)
	require.Equal(t, int64(0), market.LendingPositionCount)
	require.Equal(t, int64(1), market.ClosedPositionCount)
}

func TestApplyBorrowRepay(t *testing.T) {
	market, account, token := newLedgerFixture()
	lender := core.NewPosition(account.ID, market.TokenID, core.PositionSideLender, 0)
	ApplyDeposit(market, account, lender, token, decimal.NewFromInt(1000000), mark())

	borrower := core.NewPosition(account.ID, market.TokenID, core.PositionSideBorrower, 0)
	ApplyBorrow(market, account, borrower, token, decimal.NewFromInt(400000), mark())

	require.Equal(t, "400000", market.TotalBorrowed.String())
	require.Equal(t, "400000", market.TotalBorrowedHistory.String())
	// borrowed funds pass through the borrower's deposit balance
	require.Equal(t, "1400000", market.InputTokenBalance.String())
	require.Equal(t, int64(1), market.BorrowingPositionCount)

	ApplyRepay(market, account, borrower, token, decimal.NewFromInt(400000), mark())

	require.True(t, market.TotalBorrowed.IsZero())
	require.Equal(t, "400000", market.TotalRepaidHistory.String())
	require.False(t, borrower.Open())
	require.Equal(t, int64(0), market.BorrowingPositionCount)
	require.Equal(t, int64(1), borrower.BorrowCount)
	require.Equal(t, int64(1), borrower.RepayCount)
}

func TestApplyLiquidationRepaid(t *testing.T) {
	market, account, token := newLedgerFixture()
	position := core.NewPosition(account.ID, market.TokenID, core.PositionSideBorrower, 0)
	position.Increase(decimal.NewFromInt(500000), mark(), account, market)
	market.TotalBorrowed = decimal.NewFromInt(500000)
	market.TotalDeposited = decimal.NewFromInt(1000000)

	discount := decimal.RequireFromString("0.1")
	repaidUSD, profitUSD := ApplyLiquidationRepaid(
		market, account, position, token, decimal.NewFromInt(300000), discount, mark())

	require.Equal(t, "0.6", repaidUSD.String())
	require.Equal(t, "0.06", profitUSD.String())
	require.Equal(t, "200000", position.Balance.String())
	require.True(t, position.Open())
	require.Equal(t, "200000", market.TotalBorrowed.String())
	require.Equal(t, "700000", market.TotalDeposited.String())
	require.Equal(t, "0.6", market.CumulativeLiquidateUSD.String())

	// the second leg drains the debt and closes the position
	ApplyLiquidationRepaid(market, account, position, token, decimal.NewFromInt(200000), discount, mark())
	require.False(t, position.Open())
	require.Equal(t, int64(2), position.LiquidationCount)
}

func TestApplyLiquidationSeizedClamps(t *testing.T) {
	market, account, _ := newLedgerFixture()
	position := core.NewPosition(account.ID, market.TokenID, core.PositionSideLender, 0)
	position.Increase(decimal.NewFromInt(100000), mark(), account, market)

	ApplyLiquidationSeized(market, account, position, decimal.NewFromInt(150000), mark())

	require.True(t, position.Balance.IsZero())
	require.False(t, position.Open())
	require.Equal(t, int64(1), market.ClosedPositionCount)
}

func TestApplyForceClose(t *testing.T) {
	market, account, _ := newLedgerFixture()
	market.TotalBorrowed = decimal.NewFromInt(400000)
	market.TotalDeposited = decimal.NewFromInt(1000000)

	borrower := core.NewPosition(account.ID, market.TokenID, core.PositionSideBorrower, 0)
	borrower.Increase(decimal.NewFromInt(400000), mark(), account, market)
	ApplyForceClose(market, account, borrower, mark())

	require.False(t, borrower.Open())
	require.True(t, market.TotalBorrowed.IsZero())
	require.Equal(t, "600000", market.TotalDeposited.String())
	require.Equal(t, "400000", market.TotalReserved.String())

	lender := core.NewPosition(account.ID, market.TokenID, core.PositionSideLender, 0)
	lender.Increase(decimal.NewFromInt(100000), mark(), account, market)
	ApplyForceClose(market, account, lender, mark())

	require.False(t, lender.Open())
	require.Equal(t, "500000", market.TotalDeposited.String())
	require.Equal(t, "500000", market.TotalReserved.String())

	// closing an already closed position is a no-op
	reserved := market.TotalReserved
	ApplyForceClose(market, account, lender, mark())
	require.True(t, market.TotalReserved.Equal(reserved))
}
