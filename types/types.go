package types

import (
	"encoding/json"
	"fmt"
	"time"
)

const (
	InMemoryStore = "inmemory"
	FileStore     = "file"
	KVStore       = "kv"
)

// Config holds everything the SDK needs to talk to the ledger. It is
// persisted by the ConfigStore so a client can be rebuilt across sessions.
type Config struct {
	Network           string
	NetworkPassphrase string
	HorizonURL        string
	FaucetURL         string
	ConfigStoreType   string
	AppDataStoreType  string
	BaseDir           string
	FundingRetryDelay time.Duration
	MaxRetainedTxs    int
}

// WalletRecord maps a user identity to a ledger account. It is created once
// per user and never mutated afterwards.
type WalletRecord struct {
	ID        string
	UserID    string
	Address   string
	ChainType string
	CreatedAt time.Time
}

type ConnectionState string

const (
	ConnectionDisconnected ConnectionState = "disconnected"
	ConnectionConnecting   ConnectionState = "connecting"
	ConnectionConnected    ConnectionState = "connected"
)

type TxStatus string

const (
	TxPending   TxStatus = "pending"
	TxSubmitted TxStatus = "submitted"
	TxConfirmed TxStatus = "confirmed"
	TxFailed    TxStatus = "failed"
)

// Terminal reports whether no further status transition is allowed.
func (s TxStatus) Terminal() bool {
	return s == TxConfirmed || s == TxFailed
}

// Transaction tracks one ledger submission through its lifecycle. The id is
// an opaque unique token; ordering information lives in CreatedAt.
type Transaction struct {
	ID        string
	Status    TxStatus
	Operation OperationKind
	Hash      string
	Error     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (t Transaction) String() string {
	buf, _ := json.MarshalIndent(t, "", "  ")
	return string(buf)
}

type EventType string

const (
	EventConnected          EventType = "connected"
	EventDisconnected       EventType = "disconnected"
	EventTransactionUpdated EventType = "transactionUpdated"
)

// Event is published on the store's event channel. Tx is set for
// transactionUpdated events and carries the full updated record, not a diff.
type Event struct {
	Type  EventType
	Tx    *Transaction
	State ConnectionState
}

type OperationKind string

const (
	OpCreateProject OperationKind = "createProject"
	OpDonate        OperationKind = "donate"
	OpUpdateProject OperationKind = "updateProject"
)

// Operation is a tagged description of a ledger operation to submit. Each
// variant carries its own typed parameters and is dispatched through an
// explicit type switch by the orchestrator.
type Operation interface {
	Kind() OperationKind
	Validate() error
}

type CreateProject struct {
	Title        string
	Description  string
	Goal         int64
	OwnerAddress string
}

func (CreateProject) Kind() OperationKind { return OpCreateProject }

func (o CreateProject) Validate() error {
	if len(o.Title) <= 0 {
		return fmt.Errorf("missing project title")
	}
	if o.Goal <= 0 {
		return fmt.Errorf("funding goal must be positive, got %d", o.Goal)
	}
	return nil
}

type Donate struct {
	ProjectID   string
	Destination string
	// Amount is a decimal string in whole lumens, e.g. "1.5".
	Amount string
}

func (Donate) Kind() OperationKind { return OpDonate }

func (o Donate) Validate() error {
	if len(o.ProjectID) <= 0 {
		return fmt.Errorf("missing project id")
	}
	if len(o.Destination) <= 0 {
		return fmt.Errorf("missing destination address")
	}
	if len(o.Amount) <= 0 {
		return fmt.Errorf("missing donation amount")
	}
	return nil
}

type UpdateProject struct {
	ProjectID   string
	Title       string
	Description string
	Goal        int64
}

func (UpdateProject) Kind() OperationKind { return OpUpdateProject }

func (o UpdateProject) Validate() error {
	if len(o.ProjectID) <= 0 {
		return fmt.Errorf("missing project id")
	}
	return nil
}

// FundingResult is the faucet's reference for a successful funding request.
type FundingResult struct {
	Hash string
}
