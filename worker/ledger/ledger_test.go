package ledger

import (
	"context"
	"errors"
	"testing"

	"burrow/core"
	"burrow/service/oracle"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// in memory stores backing the fold tests. Only the methods the fold
// path touches are implemented; anything else panics through the
// embedded nil interface.

type memTokenStore struct {
	core.ITokenStore
	tokens map[string]*core.Token
}

func (s *memTokenStore) Find(ctx context.Context, id string) (*core.Token, error) {
	if t, ok := s.tokens[id]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *memTokenStore) Save(ctx context.Context, tx *db.DB, token *core.Token) error {
	s.tokens[token.ID] = token
	return nil
}

func (s *memTokenStore) Update(ctx context.Context, tx *db.DB, token *core.Token) error {
	s.tokens[token.ID] = token
	return nil
}

type memMarketStore struct {
	core.IMarketStore
	markets map[string]*core.Market
}

func (s *memMarketStore) Find(ctx context.Context, tokenID string) (*core.Market, error) {
	if m, ok := s.markets[tokenID]; ok {
		return m, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *memMarketStore) Update(ctx context.Context, tx *db.DB, market *core.Market) error {
	s.markets[market.TokenID] = market
	return nil
}

type memAccountStore struct {
	core.IAccountStore
	accounts map[string]*core.Account
}

func (s *memAccountStore) Find(ctx context.Context, id string) (*core.Account, error) {
	if a, ok := s.accounts[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *memAccountStore) Save(ctx context.Context, tx *db.DB, account *core.Account) error {
	s.accounts[account.ID] = account
	return nil
}

func (s *memAccountStore) Update(ctx context.Context, tx *db.DB, account *core.Account) error {
	s.accounts[account.ID] = account
	return nil
}

type memPositionStore struct {
	core.IPositionStore
	positions map[string]*core.Position
	counters  map[string]*core.PositionCounter
}

func counterKey(account, market, side string) string {
	return account + "|" + market + "|" + side
}

func (s *memPositionStore) Find(ctx context.Context, id string) (*core.Position, error) {
	if p, ok := s.positions[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *memPositionStore) Save(ctx context.Context, tx *db.DB, position *core.Position) error {
	s.positions[position.ID] = position
	return nil
}

func (s *memPositionStore) Update(ctx context.Context, tx *db.DB, position *core.Position) error {
	s.positions[position.ID] = position
	return nil
}

func (s *memPositionStore) Counter(ctx context.Context, account, market, side string) (*core.PositionCounter, error) {
	if c, ok := s.counters[counterKey(account, market, side)]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *memPositionStore) SaveCounter(ctx context.Context, tx *db.DB, counter *core.PositionCounter) error {
	s.counters[counterKey(counter.AccountID, counter.MarketID, counter.Side)] = counter
	return nil
}

func (s *memPositionStore) UpdateCounter(ctx context.Context, tx *db.DB, counter *core.PositionCounter) error {
	s.counters[counterKey(counter.AccountID, counter.MarketID, counter.Side)] = counter
	return nil
}

// memFlowStore enforces the primary key the way the database would
type memFlowStore struct {
	core.IFlowStore
	deposits map[string]*core.Deposit
}

func (s *memFlowStore) FindDeposit(ctx context.Context, id string) (*core.Deposit, error) {
	if d, ok := s.deposits[id]; ok {
		return d, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *memFlowStore) CreateDeposit(ctx context.Context, tx *db.DB, deposit *core.Deposit) error {
	if _, ok := s.deposits[deposit.ID]; ok {
		return errors.New("duplicate key")
	}
	s.deposits[deposit.ID] = deposit
	return nil
}

type stubMarketService struct {
	core.IMarketService
}

func (s *stubMarketService) AccrueInterest(ctx context.Context, tx *db.DB, market *core.Market, nowMs int64) error {
	return nil
}

func (s *stubMarketService) RefreshUSD(ctx context.Context, market *core.Market) error {
	return nil
}

func newTestLedger(tokens *memTokenStore, markets *memMarketStore, accounts *memAccountStore, positions *memPositionStore, flows *memFlowStore) *Ledger {
	return New(0, nil, nil, nil,
		tokens, markets, accounts, positions, flows, nil, nil,
		&stubMarketService{}, oracle.New(), nil)
}

func TestApplyDepositSkipsRedeliveredEvent(t *testing.T) {
	ctx := context.Background()

	tokens := &memTokenStore{tokens: map[string]*core.Token{"usn": core.NewToken("usn")}}
	markets := &memMarketStore{markets: map[string]*core.Market{"usn": {TokenID: "usn"}}}
	accounts := &memAccountStore{accounts: map[string]*core.Account{}}
	positions := &memPositionStore{positions: map[string]*core.Position{}, counters: map[string]*core.PositionCounter{}}
	flows := &memFlowStore{deposits: map[string]*core.Deposit{}}
	w := newTestLedger(tokens, markets, accounts, positions, flows)

	event := &core.ChainEvent{
		ID:          1,
		ReceiptID:   "receipt-1",
		LogIndex:    0,
		Name:        core.EventDeposit,
		BlockNumber: 100,
		Timestamp:   1700000000000,
	}
	transfer := &core.TransferEvent{
		AccountID: "alice.near",
		Amount:    decimal.NewFromInt(1000000),
		TokenID:   "usn",
	}

	require.NoError(t, w.applyDeposit(ctx, nil, event, transfer))
	require.Len(t, flows.deposits, 1)
	require.Equal(t, "1000000", markets.markets["usn"].TotalDeposited.String())
	require.Equal(t, int64(1), accounts.accounts["alice.near"].OpenPositionCount)

	// a crash between the event transaction and the checkpoint save
	// delivers the same event again; the flow record must stop it from
	// folding twice
	require.NoError(t, w.applyDeposit(ctx, nil, event, transfer))
	require.Len(t, flows.deposits, 1)
	require.Equal(t, "1000000", markets.markets["usn"].TotalDeposited.String())
	require.Equal(t, "1000000", markets.markets["usn"].TotalDepositedHistory.String())
	require.Equal(t, int64(1), accounts.accounts["alice.near"].PositionCount)
}

func TestApplyPriceUpdateCreatesUnseenToken(t *testing.T) {
	ctx := context.Background()

	tokens := &memTokenStore{tokens: map[string]*core.Token{}}
	markets := &memMarketStore{markets: map[string]*core.Market{}}
	w := newTestLedger(tokens, markets, nil, nil, nil)

	event := &core.ChainEvent{BlockNumber: 100, Timestamp: 1700000000000}
	update := &core.PriceUpdate{TokenID: "mytoken.testnet", Multiplier: "31400", Decimals: 4}

	require.NoError(t, w.applyPriceUpdate(ctx, nil, event, update))

	token, ok := tokens.tokens["mytoken.testnet"]
	require.True(t, ok)
	require.Equal(t, "3.14", token.LastPriceUSD.String())
	require.Equal(t, int64(100), token.LastPriceBlockNumber)
}
