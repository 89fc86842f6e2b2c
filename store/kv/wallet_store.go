package kvstore

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/dgraph-io/badger/v4"
	log "github.com/sirupsen/logrus"
	"github.com/timshannon/badgerhold/v4"

	"github.com/lumengive/stellar-sdk/types"
)

const walletStoreDir = "wallets"

type walletStore struct {
	db *badgerhold.Store
}

func NewWalletStore(dir string, logger badger.Logger) (types.WalletStore, error) {
	if len(dir) > 0 {
		dir = filepath.Join(dir, walletStoreDir)
	}
	badgerDb, err := createDB(dir, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open wallet store: %s", err)
	}
	return &walletStore{db: badgerDb}, nil
}

func (s *walletStore) AddWallet(_ context.Context, record types.WalletRecord) error {
	return s.db.Upsert(record.UserID, &record)
}

func (s *walletStore) GetWallet(
	_ context.Context, userID string,
) (*types.WalletRecord, error) {
	var record types.WalletRecord
	if err := s.db.Get(userID, &record); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (s *walletStore) Close() {
	if err := s.db.Close(); err != nil {
		log.Debugf("error on closing wallet db: %s", err)
	}
}
