package event

import (
	"context"

	"burrow/core"

	"github.com/fox-one/pkg/store/db"
)

type eventStore struct {
	db *db.DB
}

// New new event store
func New(db *db.DB) core.IEventStore {
	return &eventStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.ChainEvent{})
		if err := tx.AutoMigrate(core.ChainEvent{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *eventStore) Create(ctx context.Context, event *core.ChainEvent) error {
	return s.db.Update().Create(event).Error
}

func (s *eventStore) ListAfter(ctx context.Context, cursor uint64, limit int) ([]*core.ChainEvent, error) {
	var events []*core.ChainEvent
	if err := s.db.View().Where("id>?", cursor).Order("id").Limit(limit).Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}
