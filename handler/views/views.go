package views

import (
	"burrow/core"
)

// Market market view
type Market struct {
	core.Market
	Lenders   int64 `json:"lenders"`
	Borrowers int64 `json:"borrowers"`
}

// MarketView builds the market view served by the api
func MarketView(market *core.Market) *Market {
	return &Market{
		Market:    *market,
		Lenders:   market.LendingPositionCount,
		Borrowers: market.BorrowingPositionCount,
	}
}

// Account account view with its positions
type Account struct {
	core.Account
	Positions []*core.Position `json:"positions,omitempty"`
}
