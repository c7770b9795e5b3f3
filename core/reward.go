package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

const (
	// RewardSideSupplied farm on the supply side
	RewardSideSupplied = "Supplied"
	// RewardSideBorrowed farm on the borrow side
	RewardSideBorrowed = "Borrowed"
)

// RewardEmission an emission schedule for one reward token on one side
// of a market. Keyed by (market, side, reward token) instead of the
// index-aligned parallel arrays the contract emits.
type RewardEmission struct {
	ID            uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	MarketID      string          `sql:"size:128;unique_index:emission_idx" json:"market_id"`
	Side          string          `sql:"size:10;unique_index:emission_idx" json:"side"`
	RewardTokenID string          `sql:"size:128;unique_index:emission_idx" json:"reward_token_id"`
	RewardPerDay  decimal.Decimal `sql:"type:decimal(40,0)" json:"reward_per_day"`
	// remaining balance of the farm, decayed by the accrual engine
	RemainingAmount decimal.Decimal `sql:"type:decimal(40,0)" json:"remaining_amount"`
	BoosterLogBase  decimal.Decimal `sql:"type:decimal(40,0)" json:"booster_log_base"`
	EmissionUSD     decimal.Decimal `sql:"type:decimal(32,8)" json:"emission_usd"`
	Version         int64           `sql:"default:0" json:"version"`
	CreatedAt       time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt       time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// Exhausted reports whether the remaining balance can no longer cover a
// full day of emission
func (e *RewardEmission) Exhausted() bool {
	return e.RemainingAmount.LessThan(e.RewardPerDay)
}

// IRewardStore reward emission store interface
type IRewardStore interface {
	Save(ctx context.Context, tx *db.DB, emission *RewardEmission) error
	Find(ctx context.Context, marketID, side, rewardTokenID string) (*RewardEmission, error)
	ListByMarket(ctx context.Context, marketID string) ([]*RewardEmission, error)
	Update(ctx context.Context, tx *db.DB, emission *RewardEmission) error
}
