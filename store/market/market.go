package market

import (
	"context"

	"burrow/core"

	"github.com/fox-one/pkg/store/db"
)

type marketStore struct {
	db *db.DB
}

// New new market store
func New(db *db.DB) core.IMarketStore {
	return &marketStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Market{})
		if err := tx.AutoMigrate(core.Market{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *marketStore) Save(ctx context.Context, tx *db.DB, market *core.Market) error {
	if err := tx.Update().Create(market).Error; err != nil {
		return err
	}
	return nil
}

func (s *marketStore) Find(ctx context.Context, tokenID string) (*core.Market, error) {
	var market core.Market
	if err := s.db.View().Where("token_id=?", tokenID).First(&market).Error; err != nil {
		return nil, err
	}

	return &market, nil
}

func (s *marketStore) All(ctx context.Context) ([]*core.Market, error) {
	var markets []*core.Market
	if err := s.db.View().Find(&markets).Error; err != nil {
		return nil, err
	}
	return markets, nil
}

func (s *marketStore) Update(ctx context.Context, tx *db.DB, market *core.Market) error {
	version := market.Version
	market.Version++
	if err := tx.Update().Model(core.Market{}).Where("token_id=? and version=?", market.TokenID, version).Update(market).Error; err != nil {
		return err
	}

	return nil
}
