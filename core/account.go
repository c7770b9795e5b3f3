package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
)

// Account per-address activity counters. Created lazily, never deleted.
type Account struct {
	ID                  string    `sql:"size:128;PRIMARY_KEY" json:"id"`
	DepositCount        int64     `json:"deposit_count"`
	WithdrawCount       int64     `json:"withdraw_count"`
	BorrowCount         int64     `json:"borrow_count"`
	RepayCount          int64     `json:"repay_count"`
	LiquidateCount      int64     `json:"liquidate_count"`
	LiquidationCount    int64     `json:"liquidation_count"`
	PositionCount       int64     `json:"position_count"`
	OpenPositionCount   int64     `json:"open_position_count"`
	ClosedPositionCount int64     `json:"closed_position_count"`
	Version             int64     `sql:"default:0" json:"version"`
	CreatedAt           time.Time `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt           time.Time `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// NewAccount new account with zero counters
func NewAccount(id string) *Account {
	return &Account{ID: id}
}

// IAccountStore account store interface
type IAccountStore interface {
	Save(ctx context.Context, tx *db.DB, account *Account) error
	Find(ctx context.Context, id string) (*Account, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, tx *db.DB, account *Account) error
}
