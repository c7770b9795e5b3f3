package ledger

import (
	"context"
	"errors"
	"time"

	"burrow/core"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/property"
	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

const (
	checkpointKey = "ledger_checkpoint"
	defaultBatch  = 500
)

// Ledger folds the chain event queue into the ledger tables. Events
// are applied strictly in id order behind a property checkpoint, so a
// restart resumes where the last run stopped. The checkpoint is saved
// after the event transaction commits, which means a crash in between
// re-delivers the event; handlers recognize a replay by the flow
// record its first delivery committed and skip it.
type Ledger struct {
	db              *db.DB
	propertyStore   property.Store
	eventStore      core.IEventStore
	tokenStore      core.ITokenStore
	marketStore     core.IMarketStore
	accountStore    core.IAccountStore
	positionStore   core.IPositionStore
	flowStore       core.IFlowStore
	protocolStore   core.IProtocolStore
	rewardStore     core.IRewardStore
	marketService   core.IMarketService
	oracleService   core.IOracleService
	protocolService core.IProtocolService
	batch           int
}

// New new ledger worker
func New(
	batch int,
	db *db.DB,
	propertyStore property.Store,
	eventStore core.IEventStore,
	tokenStore core.ITokenStore,
	marketStore core.IMarketStore,
	accountStore core.IAccountStore,
	positionStore core.IPositionStore,
	flowStore core.IFlowStore,
	protocolStore core.IProtocolStore,
	rewardStore core.IRewardStore,
	marketSrv core.IMarketService,
	oracleSrv core.IOracleService,
	protocolSrv core.IProtocolService,
) *Ledger {
	if batch <= 0 {
		batch = defaultBatch
	}

	return &Ledger{
		batch:           batch,
		db:              db,
		propertyStore:   propertyStore,
		eventStore:      eventStore,
		tokenStore:      tokenStore,
		marketStore:     marketStore,
		accountStore:    accountStore,
		positionStore:   positionStore,
		flowStore:       flowStore,
		protocolStore:   protocolStore,
		rewardStore:     rewardStore,
		marketService:   marketSrv,
		oracleService:   oracleSrv,
		protocolService: protocolSrv,
	}
}

// Run run worker
func (w *Ledger) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "ledger")
	ctx = logger.WithContext(ctx, log)

	dur := time.Millisecond
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(dur):
			if err := w.run(ctx); err == nil {
				dur = 100 * time.Millisecond
			} else {
				dur = 500 * time.Millisecond
			}
		}
	}
}

func (w *Ledger) run(ctx context.Context) error {
	log := logger.FromContext(ctx)

	v, err := w.propertyStore.Get(ctx, checkpointKey)
	if err != nil {
		log.WithError(err).Errorln("property.Get error")
		return err
	}

	events, err := w.eventStore.ListAfter(ctx, uint64(v.Int64()), w.batch)
	if err != nil {
		log.WithError(err).Errorln("events.ListAfter")
		return err
	}

	if len(events) == 0 {
		return errors.New("no more events")
	}

	for _, event := range events {
		if err := w.ProcessEvent(ctx, event); err != nil {
			return err
		}

		if err := w.propertyStore.Save(ctx, checkpointKey, event.ID); err != nil {
			log.WithError(err).Errorln("property.Save:", event.ID)
			return err
		}
	}

	return nil
}

// ProcessEvent folds one event. A malformed payload is logged and
// skipped: the checkpoint must keep moving, and replaying a broken
// event will never repair it. Storage errors are returned so the
// caller retries without advancing the checkpoint.
func (w *Ledger) ProcessEvent(ctx context.Context, event *core.ChainEvent) error {
	log := logger.FromContext(ctx).WithFields(map[string]interface{}{
		"event":   event.Name,
		"receipt": event.ReceiptID,
		"block":   event.BlockNumber,
	})
	ctx = logger.WithContext(ctx, log)

	var err error
	switch event.Name {
	case core.EventDeposit:
		err = w.handleTransfer(ctx, event, w.applyDeposit)
	case core.EventDepositToReserve:
		err = w.handleDepositToReserve(ctx, event)
	case core.EventWithdraw:
		err = w.handleTransfer(ctx, event, w.applyWithdraw)
	case core.EventBorrow:
		err = w.handleTransfer(ctx, event, w.applyBorrow)
	case core.EventRepay:
		err = w.handleTransfer(ctx, event, w.applyRepay)
	case core.EventLiquidate:
		err = w.handleLiquidate(ctx, event)
	case core.EventForceClose:
		err = w.handleForceClose(ctx, event)
	case core.MethodNew:
		err = w.handleNew(ctx, event)
	case core.MethodAddAsset:
		err = w.handleAddAsset(ctx, event)
	case core.MethodUpdateAsset:
		err = w.handleUpdateAsset(ctx, event)
	case core.MethodOracleCall:
		err = w.handleOracleCall(ctx, event)
	case core.MethodAddFarmReward:
		err = w.handleFarmReward(ctx, event)
	default:
		log.Infoln("unhandled event, skipped")
		return nil
	}

	if err != nil {
		return err
	}

	return w.db.Tx(func(tx *db.DB) error {
		return w.protocolService.Aggregate(ctx, tx)
	})
}

// findOrCreateAccount loads the account, creating it on first
// activity inside tx
func (w *Ledger) findOrCreateAccount(ctx context.Context, tx *db.DB, id string) (*core.Account, bool, error) {
	account, err := w.accountStore.Find(ctx, id)
	if err != nil {
		if gorm.IsRecordNotFoundError(err) {
			account = core.NewAccount(id)
			if err := w.accountStore.Save(ctx, tx, account); err != nil {
				return nil, false, err
			}
			return account, true, nil
		}
		return nil, false, err
	}
	return account, false, nil
}

// currentPosition resolves the latest version of the (account, market,
// side) position key, or nil when none was ever opened
func (w *Ledger) currentPosition(ctx context.Context, accountID, marketID, side string) (*core.Position, error) {
	counter, err := w.positionStore.Counter(ctx, accountID, marketID, side)
	if err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, nil
		}
		return nil, err
	}

	position, err := w.positionStore.Find(ctx, core.PositionID(accountID, marketID, side, counter.NextCount-1))
	if err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, nil
		}
		return nil, err
	}
	return position, nil
}

// positionForIncrease returns the position an increase should land on:
// the latest open one, or a fresh key version when the latest closed.
// The returned flag says the row is new and needs Save, not Update.
func (w *Ledger) positionForIncrease(ctx context.Context, tx *db.DB, accountID, marketID, side string) (*core.Position, bool, error) {
	counter, err := w.positionStore.Counter(ctx, accountID, marketID, side)
	if err != nil {
		if !gorm.IsRecordNotFoundError(err) {
			return nil, false, err
		}

		counter = &core.PositionCounter{
			AccountID: accountID,
			MarketID:  marketID,
			Side:      side,
			NextCount: 1,
		}
		if err := w.positionStore.SaveCounter(ctx, tx, counter); err != nil {
			return nil, false, err
		}
		return core.NewPosition(accountID, marketID, side, 0), true, nil
	}

	position, err := w.positionStore.Find(ctx, core.PositionID(accountID, marketID, side, counter.NextCount-1))
	if err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return core.NewPosition(accountID, marketID, side, counter.NextCount-1), true, nil
		}
		return nil, false, err
	}

	if position.Open() {
		return position, false, nil
	}

	// the previous position closed; a new deposit or borrow opens the
	// next key version so the closed row keeps its history
	position = core.NewPosition(accountID, marketID, side, counter.NextCount)
	counter.NextCount++
	if err := w.positionStore.UpdateCounter(ctx, tx, counter); err != nil {
		return nil, false, err
	}
	return position, true, nil
}
