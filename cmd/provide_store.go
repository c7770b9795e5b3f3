package cmd

import (
	"burrow/core"
	"burrow/store/account"
	"burrow/store/event"
	"burrow/store/flow"
	"burrow/store/market"
	"burrow/store/position"
	"burrow/store/protocol"
	"burrow/store/reward"
	"burrow/store/token"

	"github.com/fox-one/pkg/property"
	"github.com/fox-one/pkg/store/db"
	propertystore "github.com/fox-one/pkg/store/property"
)

func provideDatabase() *db.DB {
	return db.MustOpen(cfg.DB)
}

func providePropertyStore(db *db.DB) property.Store {
	return propertystore.New(db)
}

func provideTokenStore(db *db.DB) core.ITokenStore {
	return token.Cache(token.New(db))
}

func provideMarketStore(db *db.DB) core.IMarketStore {
	return market.New(db)
}

func provideAccountStore(db *db.DB) core.IAccountStore {
	return account.New(db)
}

func providePositionStore(db *db.DB) core.IPositionStore {
	return position.New(db)
}

func provideFlowStore(db *db.DB) core.IFlowStore {
	return flow.New(db)
}

func provideProtocolStore(db *db.DB) core.IProtocolStore {
	return protocol.New(db)
}

func provideRewardStore(db *db.DB) core.IRewardStore {
	return reward.New(db)
}

func provideEventStore(db *db.DB) core.IEventStore {
	return event.New(db)
}
