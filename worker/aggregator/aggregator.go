package aggregator

import (
	"context"
	"time"

	"burrow/core"
	"burrow/worker"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	"github.com/robfig/cron/v3"
)

// Aggregator periodically refreshes the markets' derived fields and
// the protocol rollup. The ledger worker keeps them consistent per
// event; this job repairs drift after restarts and keeps usd values
// fresh between events.
type Aggregator struct {
	worker.BaseJob
	db              *db.DB
	marketStore     core.IMarketStore
	marketService   core.IMarketService
	protocolService core.IProtocolService
}

// New new aggregator worker
func New(
	location string,
	db *db.DB,
	marketStr core.IMarketStore,
	marketSrv core.IMarketService,
	protocolSrv core.IProtocolService,
) *Aggregator {
	aggregator := Aggregator{
		db:              db,
		marketStore:     marketStr,
		marketService:   marketSrv,
		protocolService: protocolSrv,
	}

	l, _ := time.LoadLocation(location)
	aggregator.Cron = cron.New(cron.WithLocation(l))
	spec := "@every 10s"
	aggregator.Cron.AddFunc(spec, aggregator.Run)
	aggregator.OnWork = func() error {
		return aggregator.onWork(context.Background())
	}

	return &aggregator
}

func (w *Aggregator) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "aggregator")

	markets, err := w.marketStore.All(ctx)
	if err != nil {
		log.WithError(err).Errorln("markets.All")
		return err
	}

	for _, market := range markets {
		borrowAPR := w.marketService.CurBorrowAPR(market)
		market.BorrowAPR = borrowAPR
		market.SupplyAPR = w.marketService.CurSupplyAPR(market)

		if err := w.marketService.RefreshUSD(ctx, market); err != nil {
			log.WithError(err).Errorln("markets.RefreshUSD:", market.TokenID)
			return err
		}

		if err := w.db.Tx(func(tx *db.DB) error {
			return w.marketStore.Update(ctx, tx, market)
		}); err != nil {
			log.WithError(err).Errorln("markets.Update:", market.TokenID)
			return err
		}
	}

	return w.db.Tx(func(tx *db.DB) error {
		return w.protocolService.Aggregate(ctx, tx)
	})
}
