package core

import (
	"context"
	"strconv"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// flow records are the append-only audit trail: one row per
// (receipt, log index), created once and never mutated after save.
// Every aggregate field on Market/Account/Position derives from folding
// this stream.

// Deposit deposit record
type Deposit struct {
	ID          string          `sql:"size:160;PRIMARY_KEY" json:"id"`
	Hash        string          `sql:"size:128" json:"hash"`
	LogIndex    int32           `json:"log_index"`
	BlockNumber int64           `json:"block_number"`
	Timestamp   int64           `json:"timestamp"`
	AccountID   string          `sql:"size:128;index:account_idx" json:"account_id"`
	MarketID    string          `sql:"size:128;index:market_idx" json:"market_id"`
	PositionID  string          `sql:"size:320" json:"position_id"`
	AssetID     string          `sql:"size:128" json:"asset_id"`
	Amount      decimal.Decimal `sql:"type:decimal(40,0)" json:"amount"`
	AmountUSD   decimal.Decimal `sql:"type:decimal(32,8)" json:"amount_usd"`
	CreatedAt   time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

// Withdraw withdraw record
type Withdraw struct {
	ID          string          `sql:"size:160;PRIMARY_KEY" json:"id"`
	Hash        string          `sql:"size:128" json:"hash"`
	LogIndex    int32           `json:"log_index"`
	BlockNumber int64           `json:"block_number"`
	Timestamp   int64           `json:"timestamp"`
	AccountID   string          `sql:"size:128;index:account_idx" json:"account_id"`
	MarketID    string          `sql:"size:128;index:market_idx" json:"market_id"`
	PositionID  string          `sql:"size:320" json:"position_id"`
	AssetID     string          `sql:"size:128" json:"asset_id"`
	Amount      decimal.Decimal `sql:"type:decimal(40,0)" json:"amount"`
	AmountUSD   decimal.Decimal `sql:"type:decimal(32,8)" json:"amount_usd"`
	CreatedAt   time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

// Borrow borrow record
type Borrow struct {
	ID          string          `sql:"size:160;PRIMARY_KEY" json:"id"`
	Hash        string          `sql:"size:128" json:"hash"`
	LogIndex    int32           `json:"log_index"`
	BlockNumber int64           `json:"block_number"`
	Timestamp   int64           `json:"timestamp"`
	AccountID   string          `sql:"size:128;index:account_idx" json:"account_id"`
	MarketID    string          `sql:"size:128;index:market_idx" json:"market_id"`
	PositionID  string          `sql:"size:320" json:"position_id"`
	AssetID     string          `sql:"size:128" json:"asset_id"`
	Amount      decimal.Decimal `sql:"type:decimal(40,0)" json:"amount"`
	AmountUSD   decimal.Decimal `sql:"type:decimal(32,8)" json:"amount_usd"`
	CreatedAt   time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

// Repay repayment record
type Repay struct {
	ID          string          `sql:"size:160;PRIMARY_KEY" json:"id"`
	Hash        string          `sql:"size:128" json:"hash"`
	LogIndex    int32           `json:"log_index"`
	BlockNumber int64           `json:"block_number"`
	Timestamp   int64           `json:"timestamp"`
	AccountID   string          `sql:"size:128;index:account_idx" json:"account_id"`
	MarketID    string          `sql:"size:128;index:market_idx" json:"market_id"`
	PositionID  string          `sql:"size:320" json:"position_id"`
	AssetID     string          `sql:"size:128" json:"asset_id"`
	Amount      decimal.Decimal `sql:"type:decimal(40,0)" json:"amount"`
	AmountUSD   decimal.Decimal `sql:"type:decimal(32,8)" json:"amount_usd"`
	CreatedAt   time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

// Liquidation liquidation record, one row per repaid leg
type Liquidation struct {
	ID           string          `sql:"size:160;PRIMARY_KEY" json:"id"`
	Hash         string          `sql:"size:128" json:"hash"`
	LogIndex     int32           `json:"log_index"`
	BlockNumber  int64           `json:"block_number"`
	Timestamp    int64           `json:"timestamp"`
	LiquidatorID string          `sql:"size:128;index:liquidator_idx" json:"liquidator_id"`
	LiquidateeID string          `sql:"size:128;index:liquidatee_idx" json:"liquidatee_id"`
	MarketID     string          `sql:"size:128" json:"market_id"`
	PositionID   string          `sql:"size:320" json:"position_id"`
	AssetID      string          `sql:"size:128" json:"asset_id"`
	Amount       decimal.Decimal `sql:"type:decimal(40,0)" json:"amount"`
	AmountUSD    decimal.Decimal `sql:"type:decimal(32,8)" json:"amount_usd"`
	ProfitUSD    decimal.Decimal `sql:"type:decimal(32,8)" json:"profit_usd"`
	CreatedAt    time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

// FlowID event record identifier
func FlowID(receiptID string, logIndex int32) string {
	return receiptID + "-" + strconv.Itoa(int(logIndex))
}

// IFlowStore append-only store for event records. The Find methods
// exist so a replayed event can be recognized by the record its first
// delivery committed.
type IFlowStore interface {
	CreateDeposit(ctx context.Context, tx *db.DB, deposit *Deposit) error
	CreateWithdraw(ctx context.Context, tx *db.DB, withdraw *Withdraw) error
	CreateBorrow(ctx context.Context, tx *db.DB, borrow *Borrow) error
	CreateRepay(ctx context.Context, tx *db.DB, repay *Repay) error
	CreateLiquidation(ctx context.Context, tx *db.DB, liquidation *Liquidation) error

	FindDeposit(ctx context.Context, id string) (*Deposit, error)
	FindWithdraw(ctx context.Context, id string) (*Withdraw, error)
	FindBorrow(ctx context.Context, id string) (*Borrow, error)
	FindRepay(ctx context.Context, id string) (*Repay, error)
	FindLiquidation(ctx context.Context, id string) (*Liquidation, error)

	ListDepositsByAccount(ctx context.Context, accountID string, limit int) ([]*Deposit, error)
	ListLiquidationsByAccount(ctx context.Context, accountID string, limit int) ([]*Liquidation, error)
}
