package ledger

import (
	"context"

	"burrow/core"
	"burrow/internal/burrow"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

// handleFarmReward upserts a reward emission schedule. A repeated
// update for the same (market, side, reward token) key replaces the
// daily rate and tops up the remaining budget.
func (w *Ledger) handleFarmReward(ctx context.Context, event *core.ChainEvent) error {
	log := logger.FromContext(ctx)

	reward, err := decodeFarmReward(event)
	if err != nil {
		log.WithError(err).Errorln("malformed farm reward payload, skipped")
		return nil
	}

	return w.db.Tx(func(tx *db.DB) error {
		emission, err := w.rewardStore.Find(ctx, reward.MarketID, reward.Side, reward.RewardTokenID)
		isNew := false
		if err != nil {
			if !gorm.IsRecordNotFoundError(err) {
				return err
			}
			isNew = true
			emission = &core.RewardEmission{
				MarketID:      reward.MarketID,
				Side:          reward.Side,
				RewardTokenID: reward.RewardTokenID,
			}
		}

		emission.RewardPerDay = reward.RewardPerDay
		emission.BoosterLogBase = reward.BoosterLogBase
		emission.RemainingAmount = emission.RemainingAmount.Add(reward.RewardAmount)

		if token, err := w.tokenStore.Find(ctx, reward.RewardTokenID); err == nil {
			emission.EmissionUSD = burrow.USDValue(token, emission.RewardPerDay)
		} else if !gorm.IsRecordNotFoundError(err) {
			return err
		}

		if isNew {
			return w.rewardStore.Save(ctx, tx, emission)
		}
		return w.rewardStore.Update(ctx, tx, emission)
	})
}
