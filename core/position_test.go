package core

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func testMark() EventMark {
	return EventMark{Hash: "receipt-1", BlockNumber: 100, Timestamp: 1700000000000}
}

func TestPositionID(t *testing.T) {
	require.Equal(t, "alice.near-wrap.near-LENDER-0", PositionID("alice.near", "wrap.near", PositionSideLender, 0))
	require.Equal(t, "alice.near-wrap.near-BORROWER-2", PositionID("alice.near", "wrap.near", PositionSideBorrower, 2))
}

func TestPositionOpensOnce(t *testing.T) {
	account := NewAccount("alice.near")
	market := &Market{TokenID: "wrap.near"}
	p := NewPosition(account.ID, market.TokenID, PositionSideLender, 0)

	require.False(t, p.Open())

	opened := p.Increase(decimal.NewFromInt(100), testMark(), account, market)
	require.True(t, opened)
	require.True(t, p.Open())
	require.Equal(t, "receipt-1", p.HashOpened)
	require.Equal(t, int64(100), p.BlockNumberOpened)
	require.Equal(t, int64(1), account.PositionCount)
	require.Equal(t, int64(1), market.LendingPositionCount)

	// a second increase must not re-stamp or re-count
	opened = p.Increase(decimal.NewFromInt(50), testMark(), account, market)
	require.False(t, opened)
	require.Equal(t, "150", p.Balance.String())
	require.Equal(t, int64(1), account.PositionCount)
	require.Equal(t, int64(1), market.OpenPositionCount)
}

func TestPositionClosesOnce(t *testing.T) {
	account := NewAccount("alice.near")
	market := &Market{TokenID: "wrap.near"}
	p := NewPosition(account.ID, market.TokenID, PositionSideBorrower, 0)

	p.Increase(decimal.NewFromInt(100), testMark(), account, market)

	closed := p.Decrease(decimal.NewFromInt(40), testMark(), account, market)
	require.False(t, closed)
	require.Equal(t, "60", p.Balance.String())

	closed = p.Decrease(decimal.NewFromInt(60), testMark(), account, market)
	require.True(t, closed)
	require.False(t, p.Open())
	require.Equal(t, "receipt-1", p.HashClosed)
	require.Equal(t, int64(0), account.OpenPositionCount)
	require.Equal(t, int64(1), account.ClosedPositionCount)
	require.Equal(t, int64(0), market.BorrowingPositionCount)
	require.Equal(t, int64(1), market.ClosedPositionCount)

	// closed positions ignore further decrements
	closed = p.Decrease(decimal.NewFromInt(1), testMark(), account, market)
	require.False(t, closed)
	require.Equal(t, int64(1), account.ClosedPositionCount)
}

func TestPositionIncreaseIgnoresNonPositive(t *testing.T) {
	account := NewAccount("alice.near")
	market := &Market{TokenID: "wrap.near"}
	p := NewPosition(account.ID, market.TokenID, PositionSideLender, 0)

	// a zero or negative increase must not open the position
	opened := p.Increase(decimal.Zero, testMark(), account, market)
	require.False(t, opened)
	require.False(t, p.Open())
	require.Empty(t, p.HashOpened)
	require.Equal(t, int64(0), account.OpenPositionCount)
	require.Equal(t, int64(0), market.OpenPositionCount)

	opened = p.Increase(decimal.NewFromInt(-100), testMark(), account, market)
	require.False(t, opened)
	require.True(t, p.Balance.IsZero())
	require.Equal(t, int64(0), market.LendingPositionCount)
}

func TestPositionDecreaseClampsAtZero(t *testing.T) {
	account := NewAccount("alice.near")
	market := &Market{TokenID: "wrap.near"}
	p := NewPosition(account.ID, market.TokenID, PositionSideLender, 0)

	p.Increase(decimal.NewFromInt(100), testMark(), account, market)

	closed := p.Decrease(decimal.NewFromInt(150), testMark(), account, market)
	require.True(t, closed)
	require.True(t, p.Balance.IsZero())
}
