package ledger

import (
	"context"

	"burrow/core"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
)

// handleDepositToReserve routes a reserve top-up straight into the
// market's reserves. No position or account is involved.
func (w *Ledger) handleDepositToReserve(ctx context.Context, event *core.ChainEvent) error {
	transfer, err := decodeTransfer(event)
	if err != nil {
		logger.FromContext(ctx).WithError(err).Errorln("malformed reserve deposit payload, skipped")
		return nil
	}

	return w.db.Tx(func(tx *db.DB) error {
		_, market, err := w.loadMarket(ctx, transfer.TokenID)
		if err != nil || market == nil {
			return err
		}

		if err := w.marketService.AccrueInterest(ctx, tx, market, event.Timestamp); err != nil {
			return err
		}

		market.TotalReserved = market.TotalReserved.Add(transfer.Amount)
		if err := w.marketService.RefreshUSD(ctx, market); err != nil {
			return err
		}

		return w.marketStore.Update(ctx, tx, market)
	})
}
