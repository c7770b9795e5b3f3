package account

import (
	"context"

	"burrow/core"

	"github.com/fox-one/pkg/store/db"
)

type accountStore struct {
	db *db.DB
}

// New new account store
func New(db *db.DB) core.IAccountStore {
	return &accountStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Account{})
		if err := tx.AutoMigrate(core.Account{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *accountStore) Save(ctx context.Context, tx *db.DB, account *core.Account) error {
	if err := tx.Update().Create(account).Error; err != nil {
		return err
	}
	return nil
}

func (s *accountStore) Find(ctx context.Context, id string) (*core.Account, error) {
	var account core.Account
	if err := s.db.View().Where("id=?", id).First(&account).Error; err != nil {
		return nil, err
	}

	return &account, nil
}

func (s *accountStore) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.View().Model(core.Account{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (s *accountStore) Update(ctx context.Context, tx *db.DB, account *core.Account) error {
	version := account.Version
	account.Version++
	if err := tx.Update().Model(core.Account{}).Where("id=? and version=?", account.ID, version).Update(account).Error; err != nil {
		return err
	}

	return nil
}
