package ledger

import (
	"context"

	"burrow/core"
	"burrow/internal/burrow"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
)

// handleForceClose winds down every open position of the liquidated
// account across all markets. Outstanding debt is written off against
// deposits with the shortfall absorbed by reserves; abandoned
// collateral is swept into reserves.
func (w *Ledger) handleForceClose(ctx context.Context, event *core.ChainEvent) error {
	log := logger.FromContext(ctx)

	closing, err := decodeForceClose(event)
	if err != nil {
		log.WithError(err).Errorln("malformed force close payload, skipped")
		return nil
	}

	return w.db.Tx(func(tx *db.DB) error {
		account, _, err := w.findOrCreateAccount(ctx, tx, closing.LiquidationAccountID)
		if err != nil {
			return err
		}
		account.LiquidationCount++

		positions, err := w.positionStore.ListByAccount(ctx, account.ID)
		if err != nil {
			return err
		}

		for _, position := range positions {
			if !position.Open() {
				continue
			}

			_, market, err := w.loadMarket(ctx, position.MarketID)
			if err != nil {
				return err
			}
			if market == nil {
				continue
			}

			if err := w.marketService.AccrueInterest(ctx, tx, market, event.Timestamp); err != nil {
				return err
			}

			burrow.ApplyForceClose(market, account, position, event.Mark())
			if err := w.marketService.RefreshUSD(ctx, market); err != nil {
				return err
			}

			if err := w.positionStore.Update(ctx, tx, position); err != nil {
				return err
			}
			if err := w.marketStore.Update(ctx, tx, market); err != nil {
				return err
			}
		}

		return w.accountStore.Update(ctx, tx, account)
	})
}
