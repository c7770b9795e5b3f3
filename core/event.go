package core

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// event names and method names emitted by the lending contract
const (
	EventDeposit          = "deposit"
	EventDepositToReserve = "deposit_to_reserve"
	EventWithdraw         = "withdraw_succeeded"
	EventBorrow           = "borrow"
	EventRepay            = "repay"
	EventLiquidate        = "liquidate"
	EventForceClose       = "force_close"

	MethodNew           = "new"
	MethodAddAsset      = "add_asset"
	MethodUpdateAsset   = "update_asset"
	MethodOracleCall    = "oracle_on_call"
	MethodAddFarmReward = "add_asset_farm_reward"
)

// ChainEvent one decoded contract event, appended by the chain decoder
// and folded exactly once, in id order, by the ledger worker.
type ChainEvent struct {
	ID          uint64    `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	ReceiptID   string    `sql:"size:128;index:receipt_idx" json:"receipt_id"`
	LogIndex    int32     `json:"log_index"`
	Name        string    `sql:"size:64" json:"name"`
	BlockNumber int64     `json:"block_number"`
	// block time in unix milliseconds, non-decreasing across events
	Timestamp  int64     `json:"timestamp"`
	Payload    []byte    `sql:"type:longtext" json:"payload"`
	CallerArgs []byte    `sql:"type:longtext" json:"caller_args"`
	CreatedAt  time.Time `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

// Mark the stamp recorded on positions and flow records
func (e *ChainEvent) Mark() EventMark {
	return EventMark{
		Hash:        e.ReceiptID,
		BlockNumber: e.BlockNumber,
		Timestamp:   e.Timestamp,
	}
}

// EventMark receipt stamp applied to positions and flow records
type EventMark struct {
	Hash        string
	BlockNumber int64
	Timestamp   int64
}

// TransferEvent the shared payload of deposit, withdraw, borrow and
// repay events
type TransferEvent struct {
	AccountID string
	Amount    decimal.Decimal
	TokenID   string
}

// LiquidateEvent liquidation summary payload
type LiquidateEvent struct {
	AccountID            string
	LiquidationAccountID string
	CollateralSum        decimal.Decimal
	RepaidSum            decimal.Decimal
}

// ForceCloseEvent protocol initiated wind-down payload
type ForceCloseEvent struct {
	LiquidationAccountID string
	CollateralSum        decimal.Decimal
	RepaidSum            decimal.Decimal
}

// AssetAmount one (token, amount) leg of a liquidation action
type AssetAmount struct {
	TokenID string
	Amount  decimal.Decimal
}

// LiquidationLegs the per-asset legs parsed from the liquidation caller
// args: in assets are repaid debt, out assets are seized collateral
type LiquidationLegs struct {
	InAssets  []AssetAmount
	OutAssets []AssetAmount
}

// ControllerConfig `new` method payload
type ControllerConfig struct {
	Oracle            string
	Owner             string
	BoosterTokenID    string
	BoosterDecimals   int32
	MaxAssets         int32
	BoosterMultiplier decimal.Decimal
}

// AssetConfig market onboarding/update payload
type AssetConfig struct {
	TokenID               string
	ReserveRatio          int64
	TargetUtilization     int64
	TargetUtilizationRate decimal.Decimal
	MaxUtilizationRate    decimal.Decimal
	VolatilityRatio       int64
	ExtraDecimals         int32
	CanDeposit            bool
	CanWithdraw           bool
	CanBorrow             bool
	CanUseAsCollateral    bool
}

// PriceUpdate one oracle feed entry
type PriceUpdate struct {
	TokenID    string
	Multiplier string
	Decimals   int64
}

// FarmReward reward emission schedule update
type FarmReward struct {
	MarketID       string
	Side           string
	RewardTokenID  string
	RewardPerDay   decimal.Decimal
	BoosterLogBase decimal.Decimal
	RewardAmount   decimal.Decimal
}

// IEventStore chain event queue interface
type IEventStore interface {
	Create(ctx context.Context, event *ChainEvent) error
	// ListAfter returns events with id greater than the cursor, in id
	// order
	ListAfter(ctx context.Context, cursor uint64, limit int) ([]*ChainEvent, error)
}
