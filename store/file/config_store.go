package filestore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lumengive/stellar-sdk/types"
)

const configStoreFilename = "state.json"

type configStore struct {
	filePath string
}

func NewConfigStore(baseDir string) (types.ConfigStore, error) {
	if len(baseDir) <= 0 {
		return nil, fmt.Errorf("missing base directory")
	}

	datadir := cleanAndExpandPath(baseDir)
	if err := makeDirectoryIfNotExists(datadir); err != nil {
		return nil, fmt.Errorf("failed to initialize datadir: %s", err)
	}

	store := &configStore{filePath: filepath.Join(datadir, configStoreFilename)}

	if _, err := store.open(); err != nil {
		return nil, fmt.Errorf("failed to open store: %s", err)
	}

	return store, nil
}

func (s *configStore) GetType() string {
	return types.FileStore
}

func (s *configStore) GetDatadir() string {
	return filepath.Dir(s.filePath)
}

func (s *configStore) AddData(_ context.Context, data types.Config) error {
	if err := s.write(&data); err != nil {
		return fmt.Errorf("failed to write to store: %s", err)
	}
	return nil
}

func (s *configStore) GetData(_ context.Context) (*types.Config, error) {
	return s.open()
}

func (s *configStore) CleanData(_ context.Context) error {
	if err := os.WriteFile(s.filePath, []byte("{}"), 0755); err != nil {
		return fmt.Errorf("failed to write to store: %s", err)
	}
	return nil
}

func (s *configStore) Close() {}

func (s *configStore) open() (*types.Config, error) {
	file, err := os.ReadFile(s.filePath)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to open store: %s", err)
		}
		if err := os.WriteFile(s.filePath, []byte("{}"), 0755); err != nil {
			return nil, fmt.Errorf("failed to initialize store: %s", err)
		}
		return nil, nil
	}

	data := &types.Config{}
	if err := json.Unmarshal(file, data); err != nil {
		return nil, fmt.Errorf("failed to read file store: %s", err)
	}
	if *data == (types.Config{}) {
		return nil, nil
	}
	return data, nil
}

func (s *configStore) write(data *types.Config) error {
	buf, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return os.WriteFile(s.filePath, buf, 0755)
}
