package flow

import (
	"context"

	"burrow/core"

	"github.com/fox-one/pkg/store/db"
)

type flowStore struct {
	db *db.DB
}

// New new flow store
func New(db *db.DB) core.IFlowStore {
	return &flowStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		if err := db.Update().Model(core.Deposit{}).AutoMigrate(core.Deposit{}).Error; err != nil {
			return err
		}
		if err := db.Update().Model(core.Withdraw{}).AutoMigrate(core.Withdraw{}).Error; err != nil {
			return err
		}
		if err := db.Update().Model(core.Borrow{}).AutoMigrate(core.Borrow{}).Error; err != nil {
			return err
		}
		if err := db.Update().Model(core.Repay{}).AutoMigrate(core.Repay{}).Error; err != nil {
			return err
		}
		if err := db.Update().Model(core.Liquidation{}).AutoMigrate(core.Liquidation{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *flowStore) CreateDeposit(ctx context.Context, tx *db.DB, deposit *core.Deposit) error {
	return tx.Update().Create(deposit).Error
}

func (s *flowStore) CreateWithdraw(ctx context.Context, tx *db.DB, withdraw *core.Withdraw) error {
	return tx.Update().Create(withdraw).Error
}

func (s *flowStore) CreateBorrow(ctx context.Context, tx *db.DB, borrow *core.Borrow) error {
	return tx.Update().Create(borrow).Error
}

func (s *flowStore) CreateRepay(ctx context.Context, tx *db.DB, repay *core.Repay) error {
	return tx.Update().Create(repay).Error
}

func (s *flowStore) CreateLiquidation(ctx context.Context, tx *db.DB, liquidation *core.Liquidation) error {
	return tx.Update().Create(liquidation).Error
}

func (s *flowStore) FindDeposit(ctx context.Context, id string) (*core.Deposit, error) {
	var deposit core.Deposit
	if err := s.db.View().Where("id=?", id).First(&deposit).Error; err != nil {
		return nil, err
	}
	return &deposit, nil
}

func (s *flowStore) FindWithdraw(ctx context.Context, id string) (*core.Withdraw, error) {
	var withdraw core.Withdraw
	if err := s.db.View().Where("id=?", id).First(&withdraw).Error; err != nil {
		return nil, err
	}
	return &withdraw, nil
}

func (s *flowStore) FindBorrow(ctx context.Context, id string) (*core.Borrow, error) {
	var borrow core.Borrow
	if err := s.db.View().Where("id=?", id).First(&borrow).Error; err != nil {
		return nil, err
	}
	return &borrow, nil
}

func (s *flowStore) FindRepay(ctx context.Context, id string) (*core.Repay, error) {
	var repay core.Repay
	if err := s.db.View().Where("id=?", id).First(&repay).Error; err != nil {
		return nil, err
	}
	return &repay, nil
}

func (s *flowStore) FindLiquidation(ctx context.Context, id string) (*core.Liquidation, error) {
	var liquidation core.Liquidation
	if err := s.db.View().Where("id=?", id).First(&liquidation).Error; err != nil {
		return nil, err
	}
	return &liquidation, nil
}

func (s *flowStore) ListDepositsByAccount(ctx context.Context, accountID string, limit int) ([]*core.Deposit, error) {
	var deposits []*core.Deposit
	if err := s.db.View().Where("account_id=?", accountID).Order("block_number").Limit(limit).Find(&deposits).Error; err != nil {
		return nil, err
	}
	return deposits, nil
}

func (s *flowStore) ListLiquidationsByAccount(ctx context.Context, accountID string, limit int) ([]*core.Liquidation, error) {
	var liquidations []*core.Liquidation
	if err := s.db.View().Where("liquidatee_id=?", accountID).Order("block_number").Limit(limit).Find(&liquidations).Error; err != nil {
		return nil, err
	}
	return liquidations, nil
}
