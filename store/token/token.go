package token

import (
	"context"

	"burrow/core"

	"github.com/fox-one/pkg/store/db"
)

type tokenStore struct {
	db *db.DB
}

// New new token store
func New(db *db.DB) core.ITokenStore {
	return &tokenStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Token{})
		if err := tx.AutoMigrate(core.Token{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *tokenStore) Save(ctx context.Context, tx *db.DB, token *core.Token) error {
	if err := tx.Update().Create(token).Error; err != nil {
		return err
	}
	return nil
}

func (s *tokenStore) Find(ctx context.Context, id string) (*core.Token, error) {
	var token core.Token
	if err := s.db.View().Where("id=?", id).First(&token).Error; err != nil {
		return nil, err
	}

	return &token, nil
}

func (s *tokenStore) All(ctx context.Context) ([]*core.Token, error) {
	var tokens []*core.Token
	if err := s.db.View().Find(&tokens).Error; err != nil {
		return nil, err
	}
	return tokens, nil
}

func (s *tokenStore) Update(ctx context.Context, tx *db.DB, token *core.Token) error {
	version := token.Version
	token.Version++
	if err := tx.Update().Model(core.Token{}).Where("id=? and version=?", token.ID, version).Update(token).Error; err != nil {
		return err
	}

	return nil
}
