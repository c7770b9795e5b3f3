package ledger

import (
	"context"

	"burrow/core"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

// handleOracleCall applies a batch of oracle price feeds. A feed entry
// that cannot be reconciled keeps the previous price; the rest of the
// batch still applies. Repricing a market also compounds it, so
// interest never accrues under a stale price.
func (w *Ledger) handleOracleCall(ctx context.Context, event *core.ChainEvent) error {
	updates, err := decodePrices(event)
	if err != nil {
		logger.FromContext(ctx).WithError(err).Errorln("malformed oracle payload, skipped")
		return nil
	}

	return w.db.Tx(func(tx *db.DB) error {
		for _, update := range updates {
			if err := w.applyPriceUpdate(ctx, tx, event, update); err != nil {
				return err
			}
		}
		return nil
	})
}

// applyPriceUpdate reprices one asset. Feeds may start before the
// asset is onboarded, so an unseen token is created here rather than
// dropped; its market picks the price up the moment it is added.
func (w *Ledger) applyPriceUpdate(ctx context.Context, tx *db.DB, event *core.ChainEvent, update *core.PriceUpdate) error {
	token, err := w.tokenStore.Find(ctx, update.TokenID)
	isNew := false
	if err != nil {
		if !gorm.IsRecordNotFoundError(err) {
			return err
		}
		token = core.NewToken(update.TokenID)
		isNew = true
	}

	applyErr := w.oracleService.ApplyPrice(ctx, token, update.Multiplier, update.Decimals, event.BlockNumber)
	// diagnostics are logged by the oracle service; a bad feed keeps
	// the previous price but a new token row is still worth saving
	if isNew {
		if err := w.tokenStore.Save(ctx, tx, token); err != nil {
			return err
		}
	} else if applyErr == nil {
		if err := w.tokenStore.Update(ctx, tx, token); err != nil {
			return err
		}
	}
	if applyErr != nil {
		return nil
	}

	market, err := w.marketStore.Find(ctx, update.TokenID)
	if err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil
		}
		return err
	}

	if err := w.marketService.AccrueInterest(ctx, tx, market, event.Timestamp); err != nil {
		return err
	}
	if err := w.marketService.RefreshUSD(ctx, market); err != nil {
		return err
	}
	return w.marketStore.Update(ctx, tx, market)
}
