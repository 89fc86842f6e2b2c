package inmemorystore

import (
	"context"
	"sync"

	"github.com/lumengive/stellar-sdk/types"
)

type walletStore struct {
	wallets map[string]types.WalletRecord
	lock    *sync.RWMutex
}

func NewWalletStore() (types.WalletStore, error) {
	return &walletStore{
		wallets: make(map[string]types.WalletRecord),
		lock:    &sync.RWMutex{},
	}, nil
}

func (s *walletStore) AddWallet(_ context.Context, record types.WalletRecord) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.wallets[record.UserID] = record
	return nil
}

func (s *walletStore) GetWallet(
	_ context.Context, userID string,
) (*types.WalletRecord, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	record, ok := s.wallets[userID]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

func (s *walletStore) Close() {}
