package protocol

import (
	"context"

	"burrow/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

type protocolStore struct {
	db *db.DB
}

// New new protocol store
func New(db *db.DB) core.IProtocolStore {
	return &protocolStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Protocol{})
		if err := tx.AutoMigrate(core.Protocol{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *protocolStore) Save(ctx context.Context, tx *db.DB, protocol *core.Protocol) error {
	if err := tx.Update().Create(protocol).Error; err != nil {
		return err
	}
	return nil
}

// Find loads the protocol singleton, creating it on first touch
func (s *protocolStore) Find(ctx context.Context) (*core.Protocol, error) {
	var protocol core.Protocol
	if err := s.db.View().Where("id=?", core.ProtocolID).First(&protocol).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return core.NewProtocol(), nil
		}
		return nil, err
	}

	return &protocol, nil
}

func (s *protocolStore) Update(ctx context.Context, tx *db.DB, protocol *core.Protocol) error {
	if protocol.Version == 0 {
		protocol.Version++
		return tx.Update().Create(protocol).Error
	}

	version := protocol.Version
	protocol.Version++
	if err := tx.Update().Model(core.Protocol{}).Where("id=? and version=?", core.ProtocolID, version).Update(protocol).Error; err != nil {
		return err
	}

	return nil
}
