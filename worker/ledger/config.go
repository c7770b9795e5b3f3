package ledger

import (
	"context"

	"burrow/core"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

// handleNew initializes the protocol singleton from the controller's
// deployment config.
func (w *Ledger) handleNew(ctx context.Context, event *core.ChainEvent) error {
	config, err := decodeControllerConfig(event)
	if err != nil {
		logger.FromContext(ctx).WithError(err).Errorln("malformed controller config, skipped")
		return nil
	}

	return w.db.Tx(func(tx *db.DB) error {
		protocol, err := w.protocolStore.Find(ctx)
		if err != nil {
			return err
		}

		if _, err := w.tokenStore.Find(ctx, config.BoosterTokenID); err != nil {
			if !gorm.IsRecordNotFoundError(err) {
				return err
			}
			booster := core.NewToken(config.BoosterTokenID)
			if booster.Decimals == 0 {
				booster.Decimals = config.BoosterDecimals
			}
			if err := w.tokenStore.Save(ctx, tx, booster); err != nil {
				return err
			}
		}

		protocol.Owner = config.Owner
		protocol.Oracle = config.Oracle
		protocol.BoosterTokenID = config.BoosterTokenID
		protocol.BoosterDecimals = config.BoosterDecimals
		protocol.BoosterMultiplier = config.BoosterMultiplier
		protocol.MaxAssets = config.MaxAssets

		return w.protocolStore.Update(ctx, tx, protocol)
	})
}

// handleAddAsset onboards a market with its rate curve. Re-adding an
// existing market is ignored.
func (w *Ledger) handleAddAsset(ctx context.Context, event *core.ChainEvent) error {
	log := logger.FromContext(ctx)

	config, err := decodeAssetConfig(event)
	if err != nil {
		log.WithError(err).Errorln("malformed asset config, skipped")
		return nil
	}

	return w.db.Tx(func(tx *db.DB) error {
		token, err := w.tokenStore.Find(ctx, config.TokenID)
		if err != nil {
			if !gorm.IsRecordNotFoundError(err) {
				return err
			}
			token = core.NewToken(config.TokenID)
			token.ExtraDecimals = config.ExtraDecimals
			if err := w.tokenStore.Save(ctx, tx, token); err != nil {
				return err
			}
		}

		if _, err := w.marketStore.Find(ctx, config.TokenID); err == nil {
			log.WithField("token", config.TokenID).Warningln("market already onboarded, skipped")
			return nil
		} else if !gorm.IsRecordNotFoundError(err) {
			return err
		}

		market := core.NewMarket(token)
		applyAssetConfig(market, config)
		market.CreatedBlockNumber = event.BlockNumber
		market.CreatedTimestamp = event.Timestamp
		market.LastUpdateTimestamp = event.Timestamp

		return w.marketStore.Save(ctx, tx, market)
	})
}

// handleUpdateAsset replaces a market's rate curve and flags. Interest
// accrues under the old curve up to this event first.
func (w *Ledger) handleUpdateAsset(ctx context.Context, event *core.ChainEvent) error {
	log := logger.FromContext(ctx)

	config, err := decodeAssetConfig(event)
	if err != nil {
		log.WithError(err).Errorln("malformed asset config, skipped")
		return nil
	}

	return w.db.Tx(func(tx *db.DB) error {
		_, market, err := w.loadMarket(ctx, config.TokenID)
		if err != nil || market == nil {
			return err
		}

		if err := w.marketService.AccrueInterest(ctx, tx, market, event.Timestamp); err != nil {
			return err
		}

		applyAssetConfig(market, config)
		return w.marketStore.Update(ctx, tx, market)
	})
}

func applyAssetConfig(market *core.Market, config *core.AssetConfig) {
	market.ReserveRatio = config.ReserveRatio
	market.TargetUtilization = config.TargetUtilization
	market.TargetUtilizationRate = config.TargetUtilizationRate
	market.MaxUtilizationRate = config.MaxUtilizationRate
	market.VolatilityRatio = config.VolatilityRatio
	market.IsActive = config.CanDeposit || config.CanWithdraw
	market.CanBorrowFrom = config.CanBorrow
	market.CanUseAsCollateral = config.CanUseAsCollateral
}
