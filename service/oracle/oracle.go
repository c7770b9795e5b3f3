package oracle

import (
	"context"

	"burrow/core"

	"github.com/fox-one/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// feeds report prices at token decimals plus a shift; anything outside
// this range cannot belong to the token and is dropped
const maxDecimalFactor = 254

type service struct{}

// New new oracle service
func New() core.IOracleService {
	return &service{}
}

func (s *service) ApplyPrice(ctx context.Context, token *core.Token, multiplier string, feedDecimals int64, blockNumber int64) error {
	log := logger.FromContext(ctx).WithFields(logrus.Fields{
		"token":         token.ID,
		"multiplier":    multiplier,
		"feed_decimals": feedDecimals,
	})

	factor := feedDecimals - int64(token.Decimals)
	if factor < 0 || factor > maxDecimalFactor {
		log.Warningln("unreconcilable price feed decimals, price kept")
		return core.ErrBadPriceFeed
	}

	m, err := decimal.NewFromString(multiplier)
	if err != nil {
		log.WithError(err).Warningln("malformed price multiplier, price kept")
		return core.ErrBadPriceFeed
	}

	token.LastPriceUSD = m.Shift(int32(-factor))
	token.LastPriceBlockNumber = blockNumber
	return nil
}
