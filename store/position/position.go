package position

import (
	"context"

	"burrow/core"

	"github.com/fox-one/pkg/store/db"
)

type positionStore struct {
	db *db.DB
}

// New new position store
func New(db *db.DB) core.IPositionStore {
	return &positionStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Position{})
		if err := tx.AutoMigrate(core.Position{}).Error; err != nil {
			return err
		}

		if err := db.Update().Model(core.PositionCounter{}).AutoMigrate(core.PositionCounter{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *positionStore) Save(ctx context.Context, tx *db.DB, position *core.Position) error {
	if err := tx.Update().Create(position).Error; err != nil {
		return err
	}
	return nil
}

func (s *positionStore) Find(ctx context.Context, id string) (*core.Position, error) {
	var position core.Position
	if err := s.db.View().Where("id=?", id).First(&position).Error; err != nil {
		return nil, err
	}

	return &position, nil
}

func (s *positionStore) ListByAccount(ctx context.Context, accountID string) ([]*core.Position, error) {
	var positions []*core.Position
	if err := s.db.View().Where("account_id=?", accountID).Find(&positions).Error; err != nil {
		return nil, err
	}
	return positions, nil
}

func (s *positionStore) Update(ctx context.Context, tx *db.DB, position *core.Position) error {
	version := position.Version
	position.Version++
	if err := tx.Update().Model(core.Position{}).Where("id=? and version=?", position.ID, version).Update(position).Error; err != nil {
		return err
	}

	return nil
}

func (s *positionStore) Counter(ctx context.Context, account, market, side string) (*core.PositionCounter, error) {
	var counter core.PositionCounter
	if err := s.db.View().Where("account_id=? and market_id=? and side=?", account, market, side).First(&counter).Error; err != nil {
		return nil, err
	}

	return &counter, nil
}

func (s *positionStore) SaveCounter(ctx context.Context, tx *db.DB, counter *core.PositionCounter) error {
	if err := tx.Update().Create(counter).Error; err != nil {
		return err
	}
	return nil
}

func (s *positionStore) UpdateCounter(ctx context.Context, tx *db.DB, counter *core.PositionCounter) error {
	if err := tx.Update().Model(core.PositionCounter{}).Where("id=?", counter.ID).Update("next_count", counter.NextCount).Error; err != nil {
		return err
	}

	return nil
}
