package localsigner_test

import (
	"context"
	"testing"

	"github.com/stellar/go/keypair"
	"github.com/stellar/go/network"
	"github.com/stellar/go/strkey"
	"github.com/stellar/go/txnbuild"
	"github.com/stretchr/testify/require"

	localsigner "github.com/lumengive/stellar-sdk/signer/local"
)

func buildEnvelope(t *testing.T, sourceAddress string) string {
	t.Helper()
	tx, err := txnbuild.NewTransaction(txnbuild.TransactionParams{
		SourceAccount: &txnbuild.SimpleAccount{
			AccountID: sourceAddress,
			Sequence:  1,
		},
		IncrementSequenceNum: true,
		Operations: []txnbuild.Operation{
			&txnbuild.ManageData{Name: "project:test", Value: []byte("5000")},
		},
		BaseFee: txnbuild.MinBaseFee,
		Preconditions: txnbuild.Preconditions{
			TimeBounds: txnbuild.NewTimeout(300),
		},
	})
	require.NoError(t, err)

	envelope, err := tx.Base64()
	require.NoError(t, err)
	return envelope
}

func TestCreateWallet(t *testing.T) {
	ctx := context.Background()
	signerSvc := localsigner.NewSigner(network.TestNetworkPassphrase)

	address, err := signerSvc.CreateWallet(ctx)
	require.NoError(t, err)
	require.Len(t, address, 56)
	require.True(t, strkey.IsValidEd25519PublicKey(address))

	// Each call yields a distinct keypair.
	other, err := signerSvc.CreateWallet(ctx)
	require.NoError(t, err)
	require.NotEqual(t, address, other)
}

func TestSignTransaction(t *testing.T) {
	ctx := context.Background()
	signerSvc := localsigner.NewSigner(network.TestNetworkPassphrase)

	address, err := signerSvc.CreateWallet(ctx)
	require.NoError(t, err)

	envelope := buildEnvelope(t, address)

	signed, err := signerSvc.SignTransaction(ctx, envelope)
	require.NoError(t, err)
	require.NotEqual(t, envelope, signed)

	generic, err := txnbuild.TransactionFromXDR(signed)
	require.NoError(t, err)
	tx, ok := generic.Transaction()
	require.True(t, ok)
	require.Len(t, tx.Signatures(), 1)
}

func TestSignTransactionUnknownAccount(t *testing.T) {
	ctx := context.Background()
	signerSvc := localsigner.NewSigner(network.TestNetworkPassphrase)

	kp, err := keypair.Random()
	require.NoError(t, err)

	_, err = signerSvc.SignTransaction(ctx, buildEnvelope(t, kp.Address()))
	require.Error(t, err)
	require.Contains(t, err.Error(), "no key for account")
}

func TestSignTransactionBadEnvelope(t *testing.T) {
	ctx := context.Background()
	signerSvc := localsigner.NewSigner(network.TestNetworkPassphrase)

	_, err := signerSvc.SignTransaction(ctx, "not-base64-xdr")
	require.Error(t, err)
}
