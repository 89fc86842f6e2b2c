package stellarsdk

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/stellar/go/txnbuild"
	"golang.org/x/sync/singleflight"

	"github.com/lumengive/stellar-sdk/faucet"
	"github.com/lumengive/stellar-sdk/horizon"
	"github.com/lumengive/stellar-sdk/metadata"
	"github.com/lumengive/stellar-sdk/signer"
	"github.com/lumengive/stellar-sdk/types"
	"github.com/lumengive/stellar-sdk/wallet"
)

var (
	ErrNoWallet = fmt.Errorf("no wallet provisioned: call EnsureWallet first")
)

const envelopeTimeout = 300

type Client interface {
	GetConfigData(ctx context.Context) (*types.Config, error)
	EnsureWallet(ctx context.Context, userID string) (*types.WalletRecord, error)
	Connect(ctx context.Context) (bool, error)
	Disconnect()
	ConnectionState() types.ConnectionState
	Submit(ctx context.Context, op types.Operation) (*types.Transaction, error)
	Balance(ctx context.Context) (string, error)
	GetTransaction(ctx context.Context, id string) (*types.Transaction, error)
	GetTransactionHistory(ctx context.Context) ([]types.Transaction, error)
	GetEventChannel() chan types.Event
	Stop()
}

// IsValidAddress checks the address against the ledger's encoding rules
// without any network call.
func IsValidAddress(address string) bool {
	return wallet.IsValidAddress(address)
}

type stellarClient struct {
	cfg         *types.Config
	store       types.Store
	provisioner *wallet.Provisioner
	signer      signer.Signer
	ledger      horizon.Client
	faucet      faucet.Client
	metadata    metadata.Store

	lock         *sync.RWMutex
	connState    types.ConnectionState
	activeWallet *types.WalletRecord
	connectGroup singleflight.Group
}

// New wires a client from explicitly constructed collaborators. The
// resolved config is persisted via the store's config store so a later
// session can be rebuilt from it. metadataStore may be nil when the
// integrator handles project metadata elsewhere.
func New(
	ctx context.Context,
	cfg types.Config,
	storeSvc types.Store,
	signerSvc signer.Signer,
	metadataStore metadata.Store,
) (Client, error) {
	if storeSvc == nil {
		return nil, fmt.Errorf("missing store service")
	}
	if signerSvc == nil {
		return nil, fmt.Errorf("missing signer service")
	}
	if err := applyConfigDefaults(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %s", err)
	}

	if err := storeSvc.ConfigStore().AddData(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to persist config: %s", err)
	}

	return &stellarClient{
		cfg:         &cfg,
		store:       storeSvc,
		provisioner: wallet.NewProvisioner(signerSvc, storeSvc.WalletStore()),
		signer:      signerSvc,
		ledger:      horizon.NewClient(cfg.HorizonURL),
		faucet:      faucet.NewClient(cfg.FaucetURL, cfg.NetworkPassphrase),
		metadata:    metadataStore,
		lock:        &sync.RWMutex{},
		connState:   types.ConnectionDisconnected,
	}, nil
}

// NewFromStore rebuilds a client from the config persisted by a previous
// session.
func NewFromStore(
	ctx context.Context,
	storeSvc types.Store,
	signerSvc signer.Signer,
	metadataStore metadata.Store,
) (Client, error) {
	if storeSvc == nil {
		return nil, fmt.Errorf("missing store service")
	}
	cfg, err := storeSvc.ConfigStore().GetData(ctx)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, fmt.Errorf("no config found in store")
	}
	return New(ctx, *cfg, storeSvc, signerSvc, metadataStore)
}

func (c *stellarClient) GetConfigData(_ context.Context) (*types.Config, error) {
	cfg := *c.cfg
	return &cfg, nil
}

// EnsureWallet provisions a wallet for the user if none exists and makes it
// the client's active wallet.
func (c *stellarClient) EnsureWallet(
	ctx context.Context, userID string,
) (*types.WalletRecord, error) {
	record, err := c.provisioner.EnsureWallet(ctx, userID)
	if err != nil {
		return nil, err
	}

	c.lock.Lock()
	c.activeWallet = record
	c.lock.Unlock()

	return record, nil
}

func (c *stellarClient) ConnectionState() types.ConnectionState {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.connState
}

// Connect verifies the active wallet's account is live on the ledger,
// funding it through the faucet and retrying the load once if it is not.
// Concurrent calls share a single in-flight attempt.
func (c *stellarClient) Connect(ctx context.Context) (bool, error) {
	c.lock.RLock()
	state := c.connState
	activeWallet := c.activeWallet
	c.lock.RUnlock()

	if state == types.ConnectionConnected {
		return true, nil
	}
	if activeWallet == nil {
		return false, ErrNoWallet
	}

	v, err, _ := c.connectGroup.Do("connect", func() (interface{}, error) {
		return c.connect(ctx, activeWallet)
	})
	connected, _ := v.(bool)
	return connected, err
}

func (c *stellarClient) connect(
	ctx context.Context, activeWallet *types.WalletRecord,
) (bool, error) {
	if !wallet.IsValidAddress(activeWallet.Address) {
		return false, &types.InvalidAddressError{Address: activeWallet.Address}
	}

	c.setState(types.ConnectionConnecting)

	if _, err := c.ledger.AccountDetail(ctx, activeWallet.Address); err != nil {
		var notFound *types.AccountNotFoundError
		if !errors.As(err, &notFound) {
			c.setState(types.ConnectionDisconnected)
			return false, err
		}
		return c.fundAndRetry(ctx, activeWallet.Address)
	}

	c.markConnected()
	return true, nil
}

// fundAndRetry runs the one-shot funding path: faucet call, bounded wait
// for ledger propagation, then exactly one retried account load.
func (c *stellarClient) fundAndRetry(ctx context.Context, address string) (bool, error) {
	log.Debugf("account %s not found, requesting faucet funding", address)

	if _, err := c.faucet.Fund(ctx, address); err != nil {
		c.setState(types.ConnectionDisconnected)
		return false, err
	}

	select {
	case <-ctx.Done():
		c.setState(types.ConnectionDisconnected)
		return false, ctx.Err()
	case <-time.After(c.cfg.FundingRetryDelay):
	}

	if _, err := c.ledger.AccountDetail(ctx, address); err != nil {
		c.setState(types.ConnectionDisconnected)
		var notFound *types.AccountNotFoundError
		if errors.As(err, &notFound) {
			return false, &types.FundingNotYetVisibleError{Address: address}
		}
		return false, err
	}

	c.markConnected()
	return true, nil
}

// Disconnect is a pure local state reset, no network call.
func (c *stellarClient) Disconnect() {
	c.lock.Lock()
	changed := c.connState != types.ConnectionDisconnected
	c.connState = types.ConnectionDisconnected
	c.lock.Unlock()

	if changed {
		c.store.TransactionStore().NotifyConnectionState(types.ConnectionDisconnected)
	}
}

// Submit builds, signs and submits the operation, tracking the record
// through pending, submitted and a terminal confirmed or failed status.
// Every transition is emitted exactly once on the event channel; terminal
// failures are recorded on the transaction and returned to the caller.
func (c *stellarClient) Submit(
	ctx context.Context, op types.Operation,
) (*types.Transaction, error) {
	if op == nil {
		return nil, fmt.Errorf("missing operation")
	}

	txStore := c.store.TransactionStore()
	now := time.Now()
	tx := types.Transaction{
		ID:        uuid.NewString(),
		Status:    types.TxPending,
		Operation: op.Kind(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := txStore.AddTransaction(ctx, tx); err != nil {
		return nil, err
	}

	fail := func(cause error) (*types.Transaction, error) {
		tx.Status = types.TxFailed
		tx.Error = cause.Error()
		tx.UpdatedAt = time.Now()
		if err := txStore.UpdateTransaction(ctx, tx); err != nil {
			log.WithError(err).Error("failed to update transaction record")
		}
		return &tx, cause
	}

	if err := op.Validate(); err != nil {
		return fail(err)
	}

	c.lock.RLock()
	activeWallet := c.activeWallet
	state := c.connState
	c.lock.RUnlock()
	if activeWallet == nil {
		return fail(ErrNoWallet)
	}
	if state != types.ConnectionConnected {
		if _, err := c.Connect(ctx); err != nil {
			return fail(err)
		}
	}

	account, err := c.ledger.AccountDetail(ctx, activeWallet.Address)
	if err != nil {
		return fail(err)
	}

	envelope, err := c.buildEnvelope(account, op)
	if err != nil {
		return fail(err)
	}

	signed, err := c.signer.SignTransaction(ctx, envelope)
	if err != nil {
		return fail(&types.SignerError{Err: err})
	}

	tx.Status = types.TxSubmitted
	tx.UpdatedAt = time.Now()
	if err := txStore.UpdateTransaction(ctx, tx); err != nil {
		log.WithError(err).Error("failed to update transaction record")
	}

	result, err := c.ledger.SubmitTransaction(ctx, signed)
	if err != nil {
		return fail(err)
	}

	tx.Hash = result.Hash
	tx.Status = types.TxConfirmed
	tx.UpdatedAt = time.Now()
	if err := txStore.UpdateTransaction(ctx, tx); err != nil {
		log.WithError(err).Error("failed to update transaction record")
	}
	log.Infof("transaction %s confirmed with hash %s", tx.ID, tx.Hash)

	// The ledger operation succeeded, so the record stays confirmed even if
	// the metadata hand-off fails; the caller can retry the hand-off alone.
	if err := c.persistMetadata(ctx, op, &tx); err != nil {
		return &tx, fmt.Errorf("transaction confirmed but metadata hand-off failed: %w", err)
	}

	return &tx, nil
}

func (c *stellarClient) Balance(ctx context.Context) (string, error) {
	c.lock.RLock()
	activeWallet := c.activeWallet
	c.lock.RUnlock()
	if activeWallet == nil {
		return "", ErrNoWallet
	}

	account, err := c.ledger.AccountDetail(ctx, activeWallet.Address)
	if err != nil {
		return "", err
	}
	return account.NativeBalance(), nil
}

func (c *stellarClient) GetTransaction(
	ctx context.Context, id string,
) (*types.Transaction, error) {
	return c.store.TransactionStore().GetTransaction(ctx, id)
}

func (c *stellarClient) GetTransactionHistory(
	ctx context.Context,
) ([]types.Transaction, error) {
	return c.store.TransactionStore().GetAllTransactions(ctx)
}

func (c *stellarClient) GetEventChannel() chan types.Event {
	return c.store.TransactionStore().GetEventChannel()
}

func (c *stellarClient) Stop() {
	c.store.Close()
}

func (c *stellarClient) setState(state types.ConnectionState) {
	c.lock.Lock()
	c.connState = state
	c.lock.Unlock()
}

func (c *stellarClient) markConnected() {
	c.setState(types.ConnectionConnected)
	c.store.TransactionStore().NotifyConnectionState(types.ConnectionConnected)
}

func (c *stellarClient) buildEnvelope(
	account *horizon.Account, op types.Operation,
) (string, error) {
	sequence, err := strconv.ParseInt(account.Sequence, 10, 64)
	if err != nil {
		return "", fmt.Errorf("failed to parse account sequence: %s", err)
	}
	sourceAccount := &txnbuild.SimpleAccount{
		AccountID: account.ID,
		Sequence:  sequence,
	}

	var ops []txnbuild.Operation
	switch o := op.(type) {
	case types.CreateProject:
		ops = append(ops, &txnbuild.ManageData{
			Name:  truncate("project:"+o.Title, 64),
			Value: []byte(strconv.FormatInt(o.Goal, 10)),
		})
	case types.Donate:
		if !wallet.IsValidAddress(o.Destination) {
			return "", &types.InvalidAddressError{Address: o.Destination}
		}
		ops = append(ops, &txnbuild.Payment{
			Destination: o.Destination,
			Amount:      o.Amount,
			Asset:       txnbuild.NativeAsset{},
		})
	case types.UpdateProject:
		ops = append(ops, &txnbuild.ManageData{
			Name:  truncate("project:"+o.ProjectID, 64),
			Value: []byte(truncate(o.Title, 64)),
		})
	default:
		return "", fmt.Errorf("unsupported operation kind %q", op.Kind())
	}

	tx, err := txnbuild.NewTransaction(txnbuild.TransactionParams{
		SourceAccount:        sourceAccount,
		IncrementSequenceNum: true,
		Operations:           ops,
		BaseFee:              txnbuild.MinBaseFee,
		Preconditions: txnbuild.Preconditions{
			TimeBounds: txnbuild.NewTimeout(envelopeTimeout),
		},
	})
	if err != nil {
		return "", err
	}
	return tx.Base64()
}

func (c *stellarClient) persistMetadata(
	ctx context.Context, op types.Operation, tx *types.Transaction,
) error {
	if c.metadata == nil {
		return nil
	}

	now := time.Now()
	switch o := op.(type) {
	case types.CreateProject:
		ownerAddress := o.OwnerAddress
		if len(ownerAddress) <= 0 {
			c.lock.RLock()
			if c.activeWallet != nil {
				ownerAddress = c.activeWallet.Address
			}
			c.lock.RUnlock()
		}
		return c.metadata.CreateProject(ctx, metadata.Project{
			ID:           tx.ID,
			Title:        o.Title,
			Description:  o.Description,
			Goal:         o.Goal,
			OwnerAddress: ownerAddress,
			TxHash:       tx.Hash,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	case types.UpdateProject:
		project := metadata.Project{
			ID:          o.ProjectID,
			Title:       o.Title,
			Description: o.Description,
			Goal:        o.Goal,
			TxHash:      tx.Hash,
			UpdatedAt:   now,
		}
		if existing, err := c.metadata.GetProject(ctx, o.ProjectID); err == nil && existing != nil {
			project.OwnerAddress = existing.OwnerAddress
			project.CreatedAt = existing.CreatedAt
		}
		return c.metadata.UpdateProject(ctx, project)
	}
	return nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
