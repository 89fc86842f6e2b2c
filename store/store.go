package store

import (
	"fmt"

	"github.com/dgraph-io/badger/v4"

	filestore "github.com/lumengive/stellar-sdk/store/file"
	inmemorystore "github.com/lumengive/stellar-sdk/store/inmemory"
	kvstore "github.com/lumengive/stellar-sdk/store/kv"
	"github.com/lumengive/stellar-sdk/types"
)

type Config struct {
	ConfigStoreType  string
	AppDataStoreType string

	BaseDir      string
	BadgerLogger badger.Logger

	// MaxRetainedTxs caps the transaction registry; oldest records are
	// evicted first. Non-positive means unbounded.
	MaxRetainedTxs int
}

type service struct {
	configStore types.ConfigStore
	walletStore types.WalletStore
	txStore     types.TransactionStore
}

func NewStore(storeConfig Config) (types.Store, error) {
	var (
		configStore types.ConfigStore
		walletStore types.WalletStore
		txStore     types.TransactionStore
		err         error

		dir          = storeConfig.BaseDir
		badgerLogger = storeConfig.BadgerLogger
	)

	switch storeConfig.ConfigStoreType {
	case types.InMemoryStore:
		configStore, err = inmemorystore.NewConfigStore()
	case types.FileStore:
		configStore, err = filestore.NewConfigStore(dir)
	default:
		err = fmt.Errorf("unknown config store type %q", storeConfig.ConfigStoreType)
	}
	if err != nil {
		return nil, err
	}

	switch storeConfig.AppDataStoreType {
	case types.InMemoryStore:
		walletStore, err = inmemorystore.NewWalletStore()
		if err != nil {
			return nil, err
		}
		txStore, err = inmemorystore.NewTransactionStore(storeConfig.MaxRetainedTxs)
	case types.FileStore:
		walletStore, err = filestore.NewWalletStore(dir)
		if err != nil {
			return nil, err
		}
		// The file backend has no transaction store, records are
		// session-scoped anyway.
		txStore, err = inmemorystore.NewTransactionStore(storeConfig.MaxRetainedTxs)
	case types.KVStore:
		walletStore, err = kvstore.NewWalletStore(dir, badgerLogger)
		if err != nil {
			return nil, err
		}
		txStore, err = kvstore.NewTransactionStore(
			dir, badgerLogger, storeConfig.MaxRetainedTxs,
		)
	default:
		err = fmt.Errorf("unknown app data store type %q", storeConfig.AppDataStoreType)
	}
	if err != nil {
		return nil, err
	}

	return &service{
		configStore: configStore,
		walletStore: walletStore,
		txStore:     txStore,
	}, nil
}

func (s *service) ConfigStore() types.ConfigStore {
	return s.configStore
}

func (s *service) WalletStore() types.WalletStore {
	return s.walletStore
}

func (s *service) TransactionStore() types.TransactionStore {
	return s.txStore
}

func (s *service) Close() {
	s.txStore.Close()
	s.walletStore.Close()
	s.configStore.Close()
}
