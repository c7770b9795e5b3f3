package market

import (
	"context"
	"errors"

	"burrow/core"
	"burrow/internal/burrow"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

type service struct {
	tokenStore  core.ITokenStore
	rewardStore core.IRewardStore
}

// New new market service
func New(
	tokenStr core.ITokenStore,
	rewardStr core.IRewardStore,
) core.IMarketService {
	return &service{
		tokenStore:  tokenStr,
		rewardStore: rewardStr,
	}
}

// AccrueInterest compounds borrow interest up to nowMs and refreshes
// the market's apr fields. An anomalous multiplier skips the accrual
// but never fails the surrounding ledger update.
func (s *service) AccrueInterest(ctx context.Context, tx *db.DB, market *core.Market, nowMs int64) error {
	emissions, err := s.rewardStore.ListByMarket(ctx, market.TokenID)
	if err != nil {
		return err
	}

	r, err := burrow.Compound(market, emissions, nowMs)
	if err != nil {
		if errors.Is(err, core.ErrInterestAnomaly) {
			return nil
		}
		return err
	}

	if r.Elapsed > 0 {
		for _, e := range emissions {
			if err := s.rewardStore.Update(ctx, tx, e); err != nil {
				return err
			}
		}
	}

	borrowAPR := s.CurBorrowAPR(market)
	market.BorrowAPR = borrowAPR
	market.SupplyAPR = burrow.SupplyAPR(market, borrowAPR)
	return nil
}

// RefreshUSD revalues the market's usd denominated aggregates at the
// token's last oracle price.
func (s *service) RefreshUSD(ctx context.Context, market *core.Market) error {
	token, err := s.tokenStore.Find(ctx, market.TokenID)
	if err != nil {
		return err
	}

	market.InputTokenPriceUSD = token.LastPriceUSD

	market.TotalDepositBalanceUSD = burrow.USDValue(token, market.InputTokenBalance)
	market.TotalValueLockedUSD = market.TotalDepositBalanceUSD
	market.TotalBorrowBalanceUSD = burrow.USDValue(token, market.TotalBorrowed)

	market.CumulativeDepositUSD = burrow.USDValue(token, market.TotalDepositedHistory)
	market.CumulativeBorrowUSD = burrow.USDValue(token, market.TotalBorrowedHistory)

	market.CumulativeSupplySideRevenueUSD = burrow.USDValue(token, market.TotalReserved)
	market.CumulativeProtocolSideRevenueUSD = market.CumulativeSupplySideRevenueUSD
	market.CumulativeTotalRevenueUSD = market.CumulativeSupplySideRevenueUSD

	if market.OutputTokenSupply.IsPositive() {
		market.ExchangeRate = market.InputTokenBalance.Div(market.OutputTokenSupply)
		market.OutputTokenPriceUSD = market.ExchangeRate.Mul(market.InputTokenPriceUSD)
	}
	return nil
}

func (s *service) CurBorrowAPR(market *core.Market) decimal.Decimal {
	return burrow.BorrowAPR(burrow.GetRate(market))
}

func (s *service) CurSupplyAPR(market *core.Market) decimal.Decimal {
	return burrow.SupplyAPR(market, s.CurBorrowAPR(market))
}
