package ledger

import (
	"context"

	"burrow/core"
	"burrow/internal/burrow"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

type transferApply func(ctx context.Context, tx *db.DB, event *core.ChainEvent, transfer *core.TransferEvent) error

// handleTransfer decodes the shared transfer payload and applies the
// event inside one transaction.
func (w *Ledger) handleTransfer(ctx context.Context, event *core.ChainEvent, apply transferApply) error {
	transfer, err := decodeTransfer(event)
	if err != nil {
		logger.FromContext(ctx).WithError(err).Errorln("malformed transfer payload, skipped")
		return nil
	}

	return w.db.Tx(func(tx *db.DB) error {
		return apply(ctx, tx, event, transfer)
	})
}

// loadMarket resolves the token and market an event refers to. A nil
// market with a nil error means the market was never onboarded and the
// event should be skipped.
func (w *Ledger) loadMarket(ctx context.Context, tokenID string) (*core.Token, *core.Market, error) {
	token, err := w.tokenStore.Find(ctx, tokenID)
	if err != nil {
		if gorm.IsRecordNotFoundError(err) {
			logger.FromContext(ctx).WithField("token", tokenID).Warningln("unknown token, skipped")
			return nil, nil, nil
		}
		return nil, nil, err
	}

	market, err := w.marketStore.Find(ctx, tokenID)
	if err != nil {
		if gorm.IsRecordNotFoundError(err) {
			logger.FromContext(ctx).WithField("token", tokenID).Warningln("unknown market, skipped")
			return token, nil, nil
		}
		return nil, nil, err
	}
	return token, market, nil
}

func (w *Ledger) applyDeposit(ctx context.Context, tx *db.DB, event *core.ChainEvent, transfer *core.TransferEvent) error {
	flowID := core.FlowID(event.ReceiptID, event.LogIndex)
	if _, err := w.flowStore.FindDeposit(ctx, flowID); err == nil {
		logger.FromContext(ctx).WithField("flow", flowID).Infoln("deposit already folded, skipped")
		return nil
	} else if !gorm.IsRecordNotFoundError(err) {
		return err
	}

	token, market, err := w.loadMarket(ctx, transfer.TokenID)
	if err != nil || market == nil {
		return err
	}

	if err := w.marketService.AccrueInterest(ctx, tx, market, event.Timestamp); err != nil {
		return err
	}

	account, _, err := w.findOrCreateAccount(ctx, tx, transfer.AccountID)
	if err != nil {
		return err
	}

	position, isNew, err := w.positionForIncrease(ctx, tx, account.ID, market.TokenID, core.PositionSideLender)
	if err != nil {
		return err
	}

	amountUSD := burrow.ApplyDeposit(market, account, position, token, transfer.Amount, event.Mark())
	if err := w.marketService.RefreshUSD(ctx, market); err != nil {
		return err
	}

	deposit := &core.Deposit{
		ID:          flowID,
		Hash:        event.ReceiptID,
		LogIndex:    event.LogIndex,
		BlockNumber: event.BlockNumber,
		Timestamp:   event.Timestamp,
		AccountID:   account.ID,
		MarketID:    market.TokenID,
		PositionID:  position.ID,
		AssetID:     token.ID,
		Amount:      transfer.Amount,
		AmountUSD:   amountUSD,
	}
	if err := w.flowStore.CreateDeposit(ctx, tx, deposit); err != nil {
		return err
	}

	return w.persistTransfer(ctx, tx, market, account, position, isNew)
}

func (w *Ledger) applyWithdraw(ctx context.Context, tx *db.DB, event *core.ChainEvent, transfer *core.TransferEvent) error {
	log := logger.FromContext(ctx)

	flowID := core.FlowID(event.ReceiptID, event.LogIndex)
	if _, err := w.flowStore.FindWithdraw(ctx, flowID); err == nil {
		log.WithField("flow", flowID).Infoln("withdraw already folded, skipped")
		return nil
	} else if !gorm.IsRecordNotFoundError(err) {
		return err
	}

	token, market, err := w.loadMarket(ctx, transfer.TokenID)
	if err != nil || market == nil {
		return err
	}

	if err := w.marketService.AccrueInterest(ctx, tx, market, event.Timestamp); err != nil {
		return err
	}

	account, _, err := w.findOrCreateAccount(ctx, tx, transfer.AccountID)
	if err != nil {
		return err
	}

	position, err := w.currentPosition(ctx, account.ID, market.TokenID, core.PositionSideLender)
	if err != nil {
		return err
	}
	if position == nil || !position.Open() {
		log.WithField("account", account.ID).Warningln("withdraw without an open lender position, skipped")
		return nil
	}

	amountUSD := burrow.ApplyWithdraw(market, account, position, token, transfer.Amount, event.Mark())
	if err := w.marketService.RefreshUSD(ctx, market); err != nil {
		return err
	}

	withdraw := &core.Withdraw{
		ID:          flowID,
		Hash:        event.ReceiptID,
		LogIndex:    event.LogIndex,
		BlockNumber: event.BlockNumber,
		Timestamp:   event.Timestamp,
		AccountID:   account.ID,
		MarketID:    market.TokenID,
		PositionID:  position.ID,
		AssetID:     token.ID,
		Amount:      transfer.Amount,
		AmountUSD:   amountUSD,
	}
	if err := w.flowStore.CreateWithdraw(ctx, tx, withdraw); err != nil {
		return err
	}

	return w.persistTransfer(ctx, tx, market, account, position, false)
}

func (w *Ledger) applyBorrow(ctx context.Context, tx *db.DB, event *core.ChainEvent, transfer *core.TransferEvent) error {
	flowID := core.FlowID(event.ReceiptID, event.LogIndex)
	if _, err := w.flowStore.FindBorrow(ctx, flowID); err == nil {
		logger.FromContext(ctx).WithField("flow", flowID).Infoln("borrow already folded, skipped")
		return nil
	} else if !gorm.IsRecordNotFoundError(err) {
		return err
	}

	token, market, err := w.loadMarket(ctx, transfer.TokenID)
	if err != nil || market == nil {
		return err
	}

	if err := w.marketService.AccrueInterest(ctx, tx, market, event.Timestamp); err != nil {
		return err
	}

	account, _, err := w.findOrCreateAccount(ctx, tx, transfer.AccountID)
	if err != nil {
		return err
	}

	position, isNew, err := w.positionForIncrease(ctx, tx, account.ID, market.TokenID, core.PositionSideBorrower)
	if err != nil {
		return err
	}

	amountUSD := burrow.ApplyBorrow(market, account, position, token, transfer.Amount, event.Mark())
	if err := w.marketService.RefreshUSD(ctx, market); err != nil {
		return err
	}

	borrow := &core.Borrow{
		ID:          flowID,
		Hash:        event.ReceiptID,
		LogIndex:    event.LogIndex,
		BlockNumber: event.BlockNumber,
		Timestamp:   event.Timestamp,
		AccountID:   account.ID,
		MarketID:    market.TokenID,
		PositionID:  position.ID,
		AssetID:     token.ID,
		Amount:      transfer.Amount,
		AmountUSD:   amountUSD,
	}
	if err := w.flowStore.CreateBorrow(ctx, tx, borrow); err != nil {
		return err
	}

	return w.persistTransfer(ctx, tx, market, account, position, isNew)
}

func (w *Ledger) applyRepay(ctx context.Context, tx *db.DB, event *core.ChainEvent, transfer *core.TransferEvent) error {
	log := logger.FromContext(ctx)

	flowID := core.FlowID(event.ReceiptID, event.LogIndex)
	if _, err := w.flowStore.FindRepay(ctx, flowID); err == nil {
		log.WithField("flow", flowID).Infoln("repay already folded, skipped")
		return nil
	} else if !gorm.IsRecordNotFoundError(err) {
		return err
	}

	token, market, err := w.loadMarket(ctx, transfer.TokenID)
	if err != nil || market == nil {
		return err
	}

	if err := w.marketService.AccrueInterest(ctx, tx, market, event.Timestamp); err != nil {
		return err
	}

	account, _, err := w.findOrCreateAccount(ctx, tx, transfer.AccountID)
	if err != nil {
		return err
	}

	position, err := w.currentPosition(ctx, account.ID, market.TokenID, core.PositionSideBorrower)
	if err != nil {
		return err
	}
	if position == nil || !position.Open() {
		log.WithField("account", account.ID).Warningln("repay without an open borrower position, skipped")
		return nil
	}

	amountUSD := burrow.ApplyRepay(market, account, position, token, transfer.Amount, event.Mark())
	if err := w.marketService.RefreshUSD(ctx, market); err != nil {
		return err
	}

	repay := &core.Repay{
		ID:          flowID,
		Hash:        event.ReceiptID,
		LogIndex:    event.LogIndex,
		BlockNumber: event.BlockNumber,
		Timestamp:   event.Timestamp,
		AccountID:   account.ID,
		MarketID:    market.TokenID,
		PositionID:  position.ID,
		AssetID:     token.ID,
		Amount:      transfer.Amount,
		AmountUSD:   amountUSD,
	}
	if err := w.flowStore.CreateRepay(ctx, tx, repay); err != nil {
		return err
	}

	return w.persistTransfer(ctx, tx, market, account, position, false)
}

func (w *Ledger) persistTransfer(ctx context.Context, tx *db.DB, market *core.Market, account *core.Account, position *core.Position, isNewPosition bool) error {
	if isNewPosition {
		if err := w.positionStore.Save(ctx, tx, position); err != nil {
			return err
		}
	} else {
		if err := w.positionStore.Update(ctx, tx, position); err != nil {
			return err
		}
	}

	if err := w.accountStore.Update(ctx, tx, account); err != nil {
		return err
	}

	return w.marketStore.Update(ctx, tx, market)
}
