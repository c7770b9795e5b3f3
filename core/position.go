package core

import (
	"context"
	"fmt"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

const (
	// PositionSideLender supply side
	PositionSideLender = "LENDER"
	// PositionSideBorrower borrow side
	PositionSideBorrower = "BORROWER"
)

// Position a single account's stake in a market on one side. Keys are
// versioned: closing a position and opening again starts a new row, so
// closed history is never overwritten.
type Position struct {
	ID        string `sql:"size:320;PRIMARY_KEY" json:"id"`
	AccountID string `sql:"size:128;index:account_idx" json:"account_id"`
	MarketID  string `sql:"size:128;index:market_idx" json:"market_id"`
	Side      string `sql:"size:10" json:"side"`

	// ledger-consistent share of the market totals in native units.
	// open iff positive.
	Balance decimal.Decimal `sql:"type:decimal(40,0)" json:"balance"`

	HashOpened        string `sql:"size:128" json:"hash_opened"`
	HashClosed        string `sql:"size:128" json:"hash_closed"`
	BlockNumberOpened int64  `json:"block_number_opened"`
	BlockNumberClosed int64  `json:"block_number_closed"`
	TimestampOpened   int64  `json:"timestamp_opened"`
	TimestampClosed   int64  `json:"timestamp_closed"`

	DepositCount     int64 `json:"deposit_count"`
	WithdrawCount    int64 `json:"withdraw_count"`
	BorrowCount      int64 `json:"borrow_count"`
	RepayCount       int64 `json:"repay_count"`
	LiquidationCount int64 `json:"liquidation_count"`

	Version   int64     `sql:"default:0" json:"version"`
	CreatedAt time.Time `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// PositionCounter next version per (account, market, side) key
type PositionCounter struct {
	ID        uint64    `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	AccountID string    `sql:"size:128;unique_index:position_key_idx" json:"account_id"`
	MarketID  string    `sql:"size:128;unique_index:position_key_idx" json:"market_id"`
	Side      string    `sql:"size:10;unique_index:position_key_idx" json:"side"`
	NextCount int64     `json:"next_count"`
	CreatedAt time.Time `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// PositionID versioned position identifier
func PositionID(account, market, side string, count int64) string {
	return fmt.Sprintf("%s-%s-%s-%d", account, market, side, count)
}

// NewPosition new closed position for the given key version
func NewPosition(account, market, side string, count int64) *Position {
	return &Position{
		ID:        PositionID(account, market, side, count),
		AccountID: account,
		MarketID:  market,
		Side:      side,
	}
}

// Open reports whether the position is currently open
func (p *Position) Open() bool {
	return p.Balance.IsPositive()
}

// Increase adds amount to the balance, opening the position when it
// goes positive from zero. Both the account's and the market's counters
// transition exactly once per open. Non-positive amounts are ignored:
// opening a position must leave it open.
func (p *Position) Increase(amount decimal.Decimal, mark EventMark, account *Account, market *Market) (opened bool) {
	if !amount.IsPositive() {
		return false
	}
	if p.Balance.IsZero() {
		opened = true
		p.HashOpened = mark.Hash
		p.BlockNumberOpened = mark.BlockNumber
		p.TimestampOpened = mark.Timestamp

		account.PositionCount++
		account.OpenPositionCount++
		market.PositionCount++
		market.OpenPositionCount++
		if p.Side == PositionSideLender {
			market.LendingPositionCount++
		} else {
			market.BorrowingPositionCount++
		}
	}
	p.Balance = p.Balance.Add(amount)
	return opened
}

// Decrease subtracts amount from the balance, clamping at zero, and
// closes the position when the balance reaches zero. A decrement larger
// than the balance is a forced close, not an error.
func (p *Position) Decrease(amount decimal.Decimal, mark EventMark, account *Account, market *Market) (closed bool) {
	if !p.Open() {
		return false
	}

	p.Balance = p.Balance.Sub(amount)
	if p.Balance.Sign() < 0 {
		p.Balance = decimal.Zero
	}
	if !p.Balance.IsZero() {
		return false
	}

	p.HashClosed = mark.Hash
	p.BlockNumberClosed = mark.BlockNumber
	p.TimestampClosed = mark.Timestamp

	account.OpenPositionCount--
	account.ClosedPositionCount++
	market.OpenPositionCount--
	market.ClosedPositionCount++
	if p.Side == PositionSideLender {
		market.LendingPositionCount--
	} else {
		market.BorrowingPositionCount--
	}
	return true
}

// IPositionStore position store interface
type IPositionStore interface {
	Save(ctx context.Context, tx *db.DB, position *Position) error
	Find(ctx context.Context, id string) (*Position, error)
	ListByAccount(ctx context.Context, accountID string) ([]*Position, error)
	Update(ctx context.Context, tx *db.DB, position *Position) error

	Counter(ctx context.Context, account, market, side string) (*PositionCounter, error)
	SaveCounter(ctx context.Context, tx *db.DB, counter *PositionCounter) error
	UpdateCounter(ctx context.Context, tx *db.DB, counter *PositionCounter) error
}
