package ledger

import (
	"context"
	"fmt"

	"burrow/core"
	"burrow/internal/burrow"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
	"github.com/shopspring/decimal"
)

// handleLiquidate folds a liquidation receipt: every repaid debt leg
// shrinks a borrower position of the liquidatee, every seized
// collateral leg shrinks a lender position. All legs commit together
// or not at all.
func (w *Ledger) handleLiquidate(ctx context.Context, event *core.ChainEvent) error {
	log := logger.FromContext(ctx)

	summary, err := decodeLiquidate(event)
	if err != nil {
		log.WithError(err).Errorln("malformed liquidate payload, skipped")
		return nil
	}

	legs, err := decodeLiquidationLegs(event)
	if err != nil {
		log.WithError(err).Errorln("malformed liquidate caller args, skipped")
		return nil
	}

	// the first repaid leg's record marks the whole receipt as folded
	if len(legs.InAssets) > 0 {
		legID := fmt.Sprintf("%s-%d", core.FlowID(event.ReceiptID, event.LogIndex), 0)
		if _, err := w.flowStore.FindLiquidation(ctx, legID); err == nil {
			log.WithField("flow", legID).Infoln("liquidation already folded, skipped")
			return nil
		} else if !gorm.IsRecordNotFoundError(err) {
			return err
		}
	}

	// the liquidator's margin relative to the collateral taken
	discount := decimal.Zero
	if summary.CollateralSum.IsPositive() {
		discount = summary.RepaidSum.Div(summary.CollateralSum)
	}

	return w.db.Tx(func(tx *db.DB) error {
		liquidator, _, err := w.findOrCreateAccount(ctx, tx, summary.AccountID)
		if err != nil {
			return err
		}
		liquidatee, _, err := w.findOrCreateAccount(ctx, tx, summary.LiquidationAccountID)
		if err != nil {
			return err
		}
		liquidator.LiquidateCount++
		liquidatee.LiquidationCount++

		for i, leg := range legs.InAssets {
			token, market, err := w.loadMarket(ctx, leg.TokenID)
			if err != nil {
				return err
			}
			if market == nil {
				continue
			}

			if err := w.marketService.AccrueInterest(ctx, tx, market, event.Timestamp); err != nil {
				return err
			}

			position, err := w.currentPosition(ctx, liquidatee.ID, market.TokenID, core.PositionSideBorrower)
			if err != nil {
				return err
			}
			if position == nil || !position.Open() {
				log.WithField("market", market.TokenID).Warningln("liquidation without an open borrower position, leg skipped")
				continue
			}

			repaidUSD, profitUSD := burrow.ApplyLiquidationRepaid(
				market, liquidatee, position, token, leg.Amount, discount, event.Mark())
			if err := w.marketService.RefreshUSD(ctx, market); err != nil {
				return err
			}

			liquidation := &core.Liquidation{
				ID:           fmt.Sprintf("%s-%d", core.FlowID(event.ReceiptID, event.LogIndex), i),
				Hash:         event.ReceiptID,
				LogIndex:     event.LogIndex,
				BlockNumber:  event.BlockNumber,
				Timestamp:    event.Timestamp,
				LiquidatorID: liquidator.ID,
				LiquidateeID: liquidatee.ID,
				MarketID:     market.TokenID,
				PositionID:   position.ID,
				AssetID:      token.ID,
				Amount:       leg.Amount,
				AmountUSD:    repaidUSD,
				ProfitUSD:    profitUSD,
			}
			if err := w.flowStore.CreateLiquidation(ctx, tx, liquidation); err != nil {
				return err
			}

			if err := w.positionStore.Update(ctx, tx, position); err != nil {
				return err
			}
			if err := w.marketStore.Update(ctx, tx, market); err != nil {
				return err
			}
		}

		for _, leg := range legs.OutAssets {
			_, market, err := w.loadMarket(ctx, leg.TokenID)
			if err != nil {
				return err
			}
			if market == nil {
				continue
			}

			position, err := w.currentPosition(ctx, liquidatee.ID, market.TokenID, core.PositionSideLender)
			if err != nil {
				return err
			}
			if position == nil || !position.Open() {
				log.WithField("market", market.TokenID).Warningln("liquidation without an open lender position, leg skipped")
				continue
			}

			burrow.ApplyLiquidationSeized(market, liquidatee, position, leg.Amount, event.Mark())

			if err := w.positionStore.Update(ctx, tx, position); err != nil {
				return err
			}
			if err := w.marketStore.Update(ctx, tx, market); err != nil {
				return err
			}
		}

		if err := w.accountStore.Update(ctx, tx, liquidator); err != nil {
			return err
		}
		return w.accountStore.Update(ctx, tx, liquidatee)
	})
}
