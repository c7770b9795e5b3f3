package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// ProtocolID the singleton row id
const ProtocolID = "burrow"

// Protocol the process-wide rollup of every market plus controller
// configuration. Usd fields are recomputed in full on every refresh,
// never patched incrementally.
type Protocol struct {
	ID   string `sql:"size:36;PRIMARY_KEY" json:"id"`
	Name string `sql:"size:64" json:"name"`
	Slug string `sql:"size:20" json:"slug"`

	// controller configuration, set once by the `new` method event
	Owner             string          `sql:"size:128" json:"owner"`
	Oracle            string          `sql:"size:128" json:"oracle"`
	BoosterTokenID    string          `sql:"size:128" json:"booster_token_id"`
	BoosterDecimals   int32           `json:"booster_decimals"`
	BoosterMultiplier decimal.Decimal `sql:"type:decimal(40,0)" json:"booster_multiplier"`
	MaxAssets         int32           `json:"max_assets"`

	TotalValueLockedUSD              decimal.Decimal `sql:"type:decimal(32,8)" json:"total_value_locked_usd"`
	TotalDepositBalanceUSD           decimal.Decimal `sql:"type:decimal(32,8)" json:"total_deposit_balance_usd"`
	TotalBorrowBalanceUSD            decimal.Decimal `sql:"type:decimal(32,8)" json:"total_borrow_balance_usd"`
	CumulativeDepositUSD             decimal.Decimal `sql:"type:decimal(32,8)" json:"cumulative_deposit_usd"`
	CumulativeBorrowUSD              decimal.Decimal `sql:"type:decimal(32,8)" json:"cumulative_borrow_usd"`
	CumulativeLiquidateUSD           decimal.Decimal `sql:"type:decimal(32,8)" json:"cumulative_liquidate_usd"`
	CumulativeSupplySideRevenueUSD   decimal.Decimal `sql:"type:decimal(32,8)" json:"cumulative_supply_side_revenue_usd"`
	CumulativeProtocolSideRevenueUSD decimal.Decimal `sql:"type:decimal(32,8)" json:"cumulative_protocol_side_revenue_usd"`
	CumulativeTotalRevenueUSD        decimal.Decimal `sql:"type:decimal(32,8)" json:"cumulative_total_revenue_usd"`

	CumulativeUniqueUsers   int64 `json:"cumulative_unique_users"`
	OpenPositionCount       int64 `json:"open_position_count"`
	CumulativePositionCount int64 `json:"cumulative_position_count"`
	MarketCount             int64 `json:"market_count"`

	Version   int64     `sql:"default:0" json:"version"`
	CreatedAt time.Time `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// NewProtocol the zero-valued singleton
func NewProtocol() *Protocol {
	return &Protocol{
		ID:   ProtocolID,
		Name: "Burrow Cash",
		Slug: "BURROW",
	}
}

// Recompute rebuilds every rollup field from scratch out of the given
// markets. Full recomputation keeps the singleton drift-free no matter
// what the per-event updates did.
func (p *Protocol) Recompute(markets []*Market, uniqueUsers int64) {
	p.TotalValueLockedUSD = decimal.Zero
	p.TotalDepositBalanceUSD = decimal.Zero
	p.TotalBorrowBalanceUSD = decimal.Zero
	p.CumulativeDepositUSD = decimal.Zero
	p.CumulativeBorrowUSD = decimal.Zero
	p.CumulativeLiquidateUSD = decimal.Zero
	p.CumulativeSupplySideRevenueUSD = decimal.Zero
	p.CumulativeProtocolSideRevenueUSD = decimal.Zero
	p.CumulativeTotalRevenueUSD = decimal.Zero
	p.OpenPositionCount = 0
	p.CumulativePositionCount = 0
	p.MarketCount = int64(len(markets))
	p.CumulativeUniqueUsers = uniqueUsers

	for _, m := range markets {
		p.TotalValueLockedUSD = p.TotalValueLockedUSD.Add(m.TotalValueLockedUSD)
		p.TotalDepositBalanceUSD = p.TotalDepositBalanceUSD.Add(m.TotalDepositBalanceUSD)
		p.TotalBorrowBalanceUSD = p.TotalBorrowBalanceUSD.Add(m.TotalBorrowBalanceUSD)
		p.CumulativeDepositUSD = p.CumulativeDepositUSD.Add(m.CumulativeDepositUSD)
		p.CumulativeBorrowUSD = p.CumulativeBorrowUSD.Add(m.CumulativeBorrowUSD)
		p.CumulativeLiquidateUSD = p.CumulativeLiquidateUSD.Add(m.CumulativeLiquidateUSD)
		p.CumulativeSupplySideRevenueUSD = p.CumulativeSupplySideRevenueUSD.Add(m.CumulativeSupplySideRevenueUSD)
		p.CumulativeProtocolSideRevenueUSD = p.CumulativeProtocolSideRevenueUSD.Add(m.CumulativeProtocolSideRevenueUSD)
		p.CumulativeTotalRevenueUSD = p.CumulativeTotalRevenueUSD.Add(m.CumulativeTotalRevenueUSD)
		p.OpenPositionCount += m.OpenPositionCount
		p.CumulativePositionCount += m.OpenPositionCount + m.ClosedPositionCount
	}
}

// IProtocolStore protocol store interface
type IProtocolStore interface {
	Save(ctx context.Context, tx *db.DB, protocol *Protocol) error
	Find(ctx context.Context) (*Protocol, error)
	Update(ctx context.Context, tx *db.DB, protocol *Protocol) error
}

// IProtocolService protocol service interface
type IProtocolService interface {
	// Aggregate refreshes the singleton rollup from all markets
	Aggregate(ctx context.Context, tx *db.DB) error
}
