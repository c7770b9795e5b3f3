package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// Token underlying asset metadata and last oracle price
type Token struct {
	ID            string `sql:"size:128;PRIMARY_KEY" json:"id"`
	Name          string `sql:"size:64" json:"name"`
	Symbol        string `sql:"size:20" json:"symbol"`
	Decimals      int32  `json:"decimals"`
	ExtraDecimals int32  `json:"extra_decimals"`
	// last price pushed by the oracle feed, usd per whole token
	LastPriceUSD         decimal.Decimal `sql:"type:decimal(32,16)" json:"last_price_usd"`
	LastPriceBlockNumber int64           `json:"last_price_block_number"`
	Version              int64           `sql:"default:0" json:"version"`
	CreatedAt            time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt            time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// NewToken new token with metadata defaults when the asset is known
func NewToken(id string) *Token {
	token := &Token{ID: id}
	if meta, ok := assets[id]; ok {
		token.Name = meta.Name
		token.Symbol = meta.Symbol
		token.Decimals = meta.Decimals
		token.ExtraDecimals = meta.ExtraDecimals
	}
	return token
}

// IOracleService applies oracle price feed updates to tokens
type IOracleService interface {
	// ApplyPrice updates the token's last usd price from a feed
	// multiplier. A feed whose decimals cannot be reconciled with the
	// token's returns ErrBadPriceFeed and leaves the price untouched.
	ApplyPrice(ctx context.Context, token *Token, multiplier string, feedDecimals int64, blockNumber int64) error
}

// ITokenStore token store interface
type ITokenStore interface {
	Save(ctx context.Context, tx *db.DB, token *Token) error
	Find(ctx context.Context, id string) (*Token, error)
	All(ctx context.Context) ([]*Token, error)
	Update(ctx context.Context, tx *db.DB, token *Token) error
}
