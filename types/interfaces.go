package types

import "context"

type Store interface {
	ConfigStore() ConfigStore
	WalletStore() WalletStore
	TransactionStore() TransactionStore
	Close()
}

type ConfigStore interface {
	GetType() string
	GetDatadir() string
	AddData(ctx context.Context, data Config) error
	GetData(ctx context.Context) (*Config, error)
	CleanData(ctx context.Context) error
	Close()
}

type WalletStore interface {
	AddWallet(ctx context.Context, record WalletRecord) error
	// GetWallet returns nil without error when no record exists for the user.
	GetWallet(ctx context.Context, userID string) (*WalletRecord, error)
	Close()
}

type TransactionStore interface {
	AddTransaction(ctx context.Context, tx Transaction) error
	UpdateTransaction(ctx context.Context, tx Transaction) error
	// GetTransaction returns nil without error when the id is unknown.
	GetTransaction(ctx context.Context, id string) (*Transaction, error)
	GetAllTransactions(ctx context.Context) ([]Transaction, error)
	GetEventChannel() chan Event
	NotifyConnectionState(state ConnectionState)
	Close()
}
