package cmd

import (
	"burrow/core"
	marketservice "burrow/service/market"
	oracleservice "burrow/service/oracle"
	protocolservice "burrow/service/protocol"
)

func provideMarketService(tokenStore core.ITokenStore, rewardStore core.IRewardStore) core.IMarketService {
	return marketservice.New(tokenStore, rewardStore)
}

func provideOracleService() core.IOracleService {
	return oracleservice.New()
}

func provideProtocolService(
	protocolStore core.IProtocolStore,
	marketStore core.IMarketStore,
	accountStore core.IAccountStore,
) core.IProtocolService {
	return protocolservice.New(protocolStore, marketStore, accountStore)
}
