package reward

import (
	"context"

	"burrow/core"

	"github.com/fox-one/pkg/store/db"
)

type rewardStore struct {
	db *db.DB
}

// New new reward store
func New(db *db.DB) core.IRewardStore {
	return &rewardStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.RewardEmission{})
		if err := tx.AutoMigrate(core.RewardEmission{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *rewardStore) Save(ctx context.Context, tx *db.DB, emission *core.RewardEmission) error {
	if err := tx.Update().Create(emission).Error; err != nil {
		return err
	}
	return nil
}

func (s *rewardStore) Find(ctx context.Context, market, side, rewardToken string) (*core.RewardEmission, error) {
	var emission core.RewardEmission
	if err := s.db.View().Where("market_id=? and side=? and reward_token_id=?", market, side, rewardToken).First(&emission).Error; err != nil {
		return nil, err
	}

	return &emission, nil
}

func (s *rewardStore) ListByMarket(ctx context.Context, market string) ([]*core.RewardEmission, error) {
	var emissions []*core.RewardEmission
	if err := s.db.View().Where("market_id=?", market).Find(&emissions).Error; err != nil {
		return nil, err
	}
	return emissions, nil
}

func (s *rewardStore) Update(ctx context.Context, tx *db.DB, emission *core.RewardEmission) error {
	if err := tx.Update().Model(core.RewardEmission{}).Where("id=?", emission.ID).Update(emission).Error; err != nil {
		return err
	}

	return nil
}
