package protocol

import (
	"context"

	"burrow/core"

	"github.com/fox-one/pkg/store/db"
)

type service struct {
	protocolStore core.IProtocolStore
	marketStore   core.IMarketStore
	accountStore  core.IAccountStore
}

// New new protocol service
func New(
	protocolStr core.IProtocolStore,
	marketStr core.IMarketStore,
	accountStr core.IAccountStore,
) core.IProtocolService {
	return &service{
		protocolStore: protocolStr,
		marketStore:   marketStr,
		accountStore:  accountStr,
	}
}

// Aggregate recomputes the protocol singleton from scratch over all
// markets. Full recomputation keeps the rollup correct regardless of
// which markets the triggering event touched.
func (s *service) Aggregate(ctx context.Context, tx *db.DB) error {
	protocol, err := s.protocolStore.Find(ctx)
	if err != nil {
		return err
	}

	markets, err := s.marketStore.All(ctx)
	if err != nil {
		return err
	}

	users, err := s.accountStore.Count(ctx)
	if err != nil {
		return err
	}

	protocol.Recompute(markets, users)
	return s.protocolStore.Update(ctx, tx, protocol)
}
