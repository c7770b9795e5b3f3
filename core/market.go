package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// Market aggregate ledger state for one lending pool, keyed by the
// underlying token id
type Market struct {
	ID                 uint64 `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	TokenID            string `sql:"size:128;unique_index:token_idx" json:"token_id"`
	Name               string `sql:"size:64" json:"name"`
	IsActive           bool   `json:"is_active"`
	CanBorrowFrom      bool   `json:"can_borrow_from"`
	CanUseAsCollateral bool   `json:"can_use_as_collateral"`

	// native unit balances, integral values held in decimals
	InputTokenBalance decimal.Decimal `sql:"type:decimal(40,0)" json:"input_token_balance"`
	OutputTokenSupply decimal.Decimal `sql:"type:decimal(40,0)" json:"output_token_supply"`
	TotalBorrowed     decimal.Decimal `sql:"type:decimal(40,0)" json:"total_borrowed"`
	TotalDeposited    decimal.Decimal `sql:"type:decimal(40,0)" json:"total_deposited"`
	TotalReserved     decimal.Decimal `sql:"type:decimal(40,0)" json:"total_reserved"`

	// running history counters, never decremented
	TotalDepositedHistory decimal.Decimal `sql:"type:decimal(40,0)" json:"total_deposited_history"`
	TotalWithdrawnHistory decimal.Decimal `sql:"type:decimal(40,0)" json:"total_withdrawn_history"`
	TotalBorrowedHistory  decimal.Decimal `sql:"type:decimal(40,0)" json:"total_borrowed_history"`
	TotalRepaidHistory    decimal.Decimal `sql:"type:decimal(40,0)" json:"total_repaid_history"`

	// rate model configuration, set once by an asset config event.
	// ratios are scaled by 1e4, rates by 1e27.
	ReserveRatio          int64           `json:"reserve_ratio"`
	TargetUtilization     int64           `json:"target_utilization"`
	TargetUtilizationRate decimal.Decimal `sql:"type:decimal(40,0)" json:"target_utilization_rate"`
	MaxUtilizationRate    decimal.Decimal `sql:"type:decimal(40,0)" json:"max_utilization_rate"`
	VolatilityRatio       int64           `json:"volatility_ratio"`

	// derived on every accrual
	Utilization   decimal.Decimal `sql:"type:decimal(32,16)" json:"utilization"`
	ExchangeRate  decimal.Decimal `sql:"type:decimal(32,16)" json:"exchange_rate"`
	BorrowAPR     decimal.Decimal `sql:"type:decimal(32,16)" json:"borrow_apr"`
	SupplyAPR     decimal.Decimal `sql:"type:decimal(32,16)" json:"supply_apr"`

	InputTokenPriceUSD  decimal.Decimal `sql:"type:decimal(32,16)" json:"input_token_price_usd"`
	OutputTokenPriceUSD decimal.Decimal `sql:"type:decimal(32,16)" json:"output_token_price_usd"`

	TotalValueLockedUSD              decimal.Decimal `sql:"type:decimal(32,8)" json:"total_value_locked_usd"`
	TotalDepositBalanceUSD           decimal.Decimal `sql:"type:decimal(32,8)" json:"total_deposit_balance_usd"`
	TotalBorrowBalanceUSD            decimal.Decimal `sql:"type:decimal(32,8)" json:"total_borrow_balance_usd"`
	CumulativeDepositUSD             decimal.Decimal `sql:"type:decimal(32,8)" json:"cumulative_deposit_usd"`
	CumulativeBorrowUSD              decimal.Decimal `sql:"type:decimal(32,8)" json:"cumulative_borrow_usd"`
	CumulativeLiquidateUSD           decimal.Decimal `sql:"type:decimal(32,8)" json:"cumulative_liquidate_usd"`
	CumulativeSupplySideRevenueUSD   decimal.Decimal `sql:"type:decimal(32,8)" json:"cumulative_supply_side_revenue_usd"`
	CumulativeProtocolSideRevenueUSD decimal.Decimal `sql:"type:decimal(32,8)" json:"cumulative_protocol_side_revenue_usd"`
	CumulativeTotalRevenueUSD        decimal.Decimal `sql:"type:decimal(32,8)" json:"cumulative_total_revenue_usd"`

	PositionCount          int64 `json:"position_count"`
	OpenPositionCount      int64 `json:"open_position_count"`
	ClosedPositionCount    int64 `json:"closed_position_count"`
	LendingPositionCount   int64 `json:"lending_position_count"`
	BorrowingPositionCount int64 `json:"borrowing_position_count"`

	// accrual watermark in unix milliseconds, advanced only by the
	// compounding engine
	LastUpdateTimestamp int64 `json:"last_update_timestamp"`

	CreatedBlockNumber int64     `json:"created_block_number"`
	CreatedTimestamp   int64     `json:"created_timestamp"`
	Version            int64     `sql:"default:0" json:"version"`
	CreatedAt          time.Time `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt          time.Time `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// NewMarket new market with zero-valued defaults, named after its token
func NewMarket(token *Token) *Market {
	return &Market{
		TokenID: token.ID,
		Name:    token.Name,
	}
}

// TotalSupplied reserved + deposited, the denominator of utilization
func (m *Market) TotalSupplied() decimal.Decimal {
	return m.TotalReserved.Add(m.TotalDeposited)
}

// IMarketStore market store interface
type IMarketStore interface {
	Save(ctx context.Context, tx *db.DB, market *Market) error
	Find(ctx context.Context, tokenID string) (*Market, error)
	All(ctx context.Context) ([]*Market, error)
	Update(ctx context.Context, tx *db.DB, market *Market) error
}

// IMarketService market service interface
type IMarketService interface {
	// AccrueInterest brings the market's interest bearing state up to
	// nowMs, decaying reward emissions along the way. The market is
	// left dirty; persisting it is the caller's concern.
	AccrueInterest(ctx context.Context, tx *db.DB, market *Market, nowMs int64) error
	// RefreshUSD recomputes the market's usd denominated fields from
	// its native totals and the token's last oracle price
	RefreshUSD(ctx context.Context, market *Market) error
	CurBorrowAPR(market *Market) decimal.Decimal
	CurSupplyAPR(market *Market) decimal.Decimal
}
