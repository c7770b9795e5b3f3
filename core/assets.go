package core

// TokenMetadata static metadata for assets listed before full metadata
// is available on chain
type TokenMetadata struct {
	Name          string
	Symbol        string
	Decimals      int32
	ExtraDecimals int32
}

var assets = map[string]TokenMetadata{
	"meta-pool.near":       {Name: "Staked NEAR", Symbol: "stNEAR", Decimals: 24},
	"usn":                  {Name: "USN Stablecoin", Symbol: "USN", Decimals: 18},
	"token.burrow.near":    {Name: "Burrow", Symbol: "BRRR", Decimals: 18},
	"wrap.near":            {Name: "Wrapped Near", Symbol: "wNEAR", Decimals: 24},
	"aurora":               {Name: "Ethereum", Symbol: "ETH", Decimals: 18},
	"linear-protocol.near": {Name: "LiNEAR", Symbol: "liNEAR", Decimals: 24},
	"meta-token.near":      {Name: "Meta Token", Symbol: "META", Decimals: 18},
	"dac17f958d2ee523a2206206994597c13d831ec7.factory.bridge.near": {Name: "Tether USD", Symbol: "USDT", Decimals: 6, ExtraDecimals: 12},
	"a0b86991c6218b36c1d19d4a2e9eb0ce3606eb48.factory.bridge.near": {Name: "USD Coin", Symbol: "USDC", Decimals: 6, ExtraDecimals: 12},
	"6b175474e89094c44da98b954eedeac495271d0f.factory.bridge.near": {Name: "DAI Stablecoin", Symbol: "DAI", Decimals: 18},
	"2260fac5e5542a773aa44fbcfedf7c193bc2c599.factory.bridge.near": {Name: "Wrapped BTC", Symbol: "wBTC", Decimals: 8, ExtraDecimals: 10},
	"4691937a7508860f876c9c0a2a617e7d9e945d4b.factory.bridge.near": {Name: "Wootrade Network", Symbol: "WOO", Decimals: 18},
	"aaaaaa20d9e0e2461697782ef11675f668207961.factory.bridge.near": {Name: "Aurora", Symbol: "AURORA", Decimals: 18},
}
