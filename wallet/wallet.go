package wallet

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/stellar/go/strkey"
	"golang.org/x/sync/singleflight"

	"github.com/lumengive/stellar-sdk/signer"
	"github.com/lumengive/stellar-sdk/types"
)

const chainType = "stellar"

// IsValidAddress checks the address against the ledger's strkey encoding
// rules (version byte + checksum). It never touches the network.
func IsValidAddress(address string) bool {
	return strkey.IsValidEd25519PublicKey(address)
}

// Provisioner creates at most one wallet per user identity. The in-memory
// cache is the fast path; the durable store backs it across sessions. A
// store cleared mid-session keeps serving the cached record until the
// process restarts.
type Provisioner struct {
	signer signer.Signer
	store  types.WalletStore

	lock  *sync.RWMutex
	cache map[string]*types.WalletRecord
	group singleflight.Group
}

func NewProvisioner(signerSvc signer.Signer, store types.WalletStore) *Provisioner {
	return &Provisioner{
		signer: signerSvc,
		store:  store,
		lock:   &sync.RWMutex{},
		cache:  make(map[string]*types.WalletRecord),
	}
}

// EnsureWallet returns the user's wallet record, creating it on first call.
// Concurrent calls for the same user share a single in-flight creation.
func (p *Provisioner) EnsureWallet(
	ctx context.Context, userID string,
) (*types.WalletRecord, error) {
	v, err, _ := p.group.Do(userID, func() (interface{}, error) {
		return p.ensure(ctx, userID)
	})
	if err != nil {
		return nil, err
	}
	return v.(*types.WalletRecord), nil
}

func (p *Provisioner) ensure(
	ctx context.Context, userID string,
) (*types.WalletRecord, error) {
	p.lock.RLock()
	cached := p.cache[userID]
	p.lock.RUnlock()
	if cached != nil {
		return cached, nil
	}

	record, err := p.store.GetWallet(ctx, userID)
	if err != nil {
		return nil, &types.WalletCreationError{UserID: userID, Err: err}
	}
	if record != nil {
		p.lock.Lock()
		p.cache[userID] = record
		p.lock.Unlock()
		return record, nil
	}

	address, err := p.signer.CreateWallet(ctx)
	if err != nil {
		return nil, &types.WalletCreationError{UserID: userID, Err: err}
	}
	if !IsValidAddress(address) {
		return nil, &types.WalletCreationError{
			UserID: userID,
			Err:    &types.InvalidAddressError{Address: address},
		}
	}

	record = &types.WalletRecord{
		ID:        uuid.NewString(),
		UserID:    userID,
		Address:   address,
		ChainType: chainType,
		CreatedAt: time.Now(),
	}
	// Persist before caching so a storage failure leaves no partial record.
	if err := p.store.AddWallet(ctx, *record); err != nil {
		return nil, &types.WalletCreationError{UserID: userID, Err: err}
	}

	p.lock.Lock()
	p.cache[userID] = record
	p.lock.Unlock()

	log.Debugf("provisioned wallet %s for user %s", record.Address, userID)
	return record, nil
}
