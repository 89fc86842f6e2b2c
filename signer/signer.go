package signer

import "context"

// Signer is the boundary to the external credential holder. The production
// implementation is a passkey-based device signer; private key material
// never crosses this interface.
type Signer interface {
	// CreateWallet generates a new keypair and returns its public address.
	CreateWallet(ctx context.Context) (address string, err error)
	// SignTransaction signs a base64 transaction envelope and returns the
	// signed envelope.
	SignTransaction(ctx context.Context, envelopeXDR string) (signedXDR string, err error)
}
