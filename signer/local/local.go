package localsigner

import (
	"context"
	"fmt"
	"sync"

	"github.com/stellar/go/keypair"
	"github.com/stellar/go/txnbuild"

	"github.com/lumengive/stellar-sdk/signer"
)

// localSigner holds keypairs in memory. It exists so the SDK runs
// end-to-end on test networks without a passkey device; it is not meant for
// production use.
type localSigner struct {
	networkPassphrase string
	lock              *sync.RWMutex
	keys              map[string]*keypair.Full
}

func NewSigner(networkPassphrase string) signer.Signer {
	return &localSigner{
		networkPassphrase: networkPassphrase,
		lock:              &sync.RWMutex{},
		keys:              make(map[string]*keypair.Full),
	}
}

func (s *localSigner) CreateWallet(_ context.Context) (string, error) {
	kp, err := keypair.Random()
	if err != nil {
		return "", err
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	s.keys[kp.Address()] = kp
	return kp.Address(), nil
}

func (s *localSigner) SignTransaction(
	_ context.Context, envelopeXDR string,
) (string, error) {
	generic, err := txnbuild.TransactionFromXDR(envelopeXDR)
	if err != nil {
		return "", fmt.Errorf("failed to parse envelope: %s", err)
	}
	tx, ok := generic.Transaction()
	if !ok {
		return "", fmt.Errorf("unsupported envelope type")
	}

	source := tx.SourceAccount().AccountID

	s.lock.RLock()
	kp, ok := s.keys[source]
	s.lock.RUnlock()
	if !ok {
		return "", fmt.Errorf("no key for account %s", source)
	}

	signed, err := tx.Sign(s.networkPassphrase, kp)
	if err != nil {
		return "", err
	}
	return signed.Base64()
}
