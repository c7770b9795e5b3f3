package token

import (
	"context"
	"fmt"

	"burrow/core"

	"github.com/bluele/gcache"
	"github.com/fox-one/pkg/store/db"
	"golang.org/x/sync/singleflight"
)

// Cache wraps store with a read through lru. Writes refresh the
// cached row, so the api can serve token metadata without hitting the
// db on every request.
func Cache(store core.ITokenStore) core.ITokenStore {
	return &cacheTokenStore{
		ITokenStore: store,
		cache:       gcache.New(512).LRU().Build(),
		sf:          &singleflight.Group{},
	}
}

type cacheTokenStore struct {
	core.ITokenStore
	cache gcache.Cache
	sf    *singleflight.Group
}

func (s *cacheTokenStore) Save(ctx context.Context, tx *db.DB, token *core.Token) error {
	if err := s.ITokenStore.Save(ctx, tx, token); err != nil {
		return err
	}
	s.cacheToken(token)
	return nil
}

func (s *cacheTokenStore) Find(ctx context.Context, id string) (*core.Token, error) {
	if v, err := s.cache.Get(s.tokenKey(id)); err == nil {
		if token, ok := v.(*core.Token); ok {
			return token, nil
		}
	}

	v, err, _ := s.sf.Do(s.tokenKey(id), func() (interface{}, error) {
		token, err := s.ITokenStore.Find(ctx, id)
		if err != nil {
			return nil, err
		}
		s.cacheToken(token)
		return token, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*core.Token), nil
}

func (s *cacheTokenStore) Update(ctx context.Context, tx *db.DB, token *core.Token) error {
	if err := s.ITokenStore.Update(ctx, tx, token); err != nil {
		return err
	}
	s.cacheToken(token)
	return nil
}

func (s *cacheTokenStore) cacheToken(token *core.Token) {
	s.cache.Set(s.tokenKey(token.ID), token)
}

func (s *cacheTokenStore) tokenKey(id string) string {
	return fmt.Sprintf("token:id:%s", id)
}
