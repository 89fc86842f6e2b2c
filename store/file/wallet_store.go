package filestore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/lumengive/stellar-sdk/types"
)

const walletStoreFilename = "wallets.json"

type walletStore struct {
	filePath string
	lock     *sync.Mutex
}

func NewWalletStore(baseDir string) (types.WalletStore, error) {
	if len(baseDir) <= 0 {
		return nil, fmt.Errorf("missing base directory")
	}

	datadir := cleanAndExpandPath(baseDir)
	if err := makeDirectoryIfNotExists(datadir); err != nil {
		return nil, fmt.Errorf("failed to initialize datadir: %s", err)
	}

	return &walletStore{
		filePath: filepath.Join(datadir, walletStoreFilename),
		lock:     &sync.Mutex{},
	}, nil
}

func (s *walletStore) AddWallet(_ context.Context, record types.WalletRecord) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	wallets, err := s.open()
	if err != nil {
		return err
	}

	wallets[record.UserID] = record

	buf, err := json.Marshal(wallets)
	if err != nil {
		return err
	}
	return os.WriteFile(s.filePath, buf, 0755)
}

func (s *walletStore) GetWallet(
	_ context.Context, userID string,
) (*types.WalletRecord, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	wallets, err := s.open()
	if err != nil {
		return nil, err
	}

	record, ok := wallets[userID]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

func (s *walletStore) Close() {}

func (s *walletStore) open() (map[string]types.WalletRecord, error) {
	wallets := make(map[string]types.WalletRecord)

	file, err := os.ReadFile(s.filePath)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to open store: %s", err)
		}
		return wallets, nil
	}
	if err := json.Unmarshal(file, &wallets); err != nil {
		return nil, fmt.Errorf("failed to read file store: %s", err)
	}
	return wallets, nil
}
