package faucet_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stellar/go/keypair"
	"github.com/stellar/go/network"
	"github.com/stretchr/testify/require"

	"github.com/lumengive/stellar-sdk/faucet"
	"github.com/lumengive/stellar-sdk/types"
)

func newTestAddress(t *testing.T) string {
	kp, err := keypair.Random()
	require.NoError(t, err)
	return kp.Address()
}

func TestFund(t *testing.T) {
	address := newTestAddress(t)

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		require.Equal(t, address, r.URL.Query().Get("addr"))
		fmt.Fprint(w, `{"hash": "a1b2c3"}`)
	}))
	defer srv.Close()

	client := faucet.NewClient(srv.URL, network.TestNetworkPassphrase)

	result, err := client.Fund(context.Background(), address)
	require.NoError(t, err)
	require.NotNil(t, result)
	require.Equal(t, "a1b2c3", result.Hash)
	require.EqualValues(t, 1, calls.Load())
}

func TestFundFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"detail": "account already funded"}`)
	}))
	defer srv.Close()

	client := faucet.NewClient(srv.URL, network.TestNetworkPassphrase)

	result, err := client.Fund(context.Background(), newTestAddress(t))
	require.Error(t, err)
	require.Nil(t, result)

	var fundingErr *types.FundingError
	require.ErrorAs(t, err, &fundingErr)
	require.Equal(t, http.StatusBadRequest, fundingErr.StatusCode)
	require.Contains(t, fundingErr.Body, "already funded")
}

func TestFundRejectsInvalidAddress(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	client := faucet.NewClient(srv.URL, network.TestNetworkPassphrase)

	result, err := client.Fund(context.Background(), "not-an-address")
	require.Error(t, err)
	require.Nil(t, result)

	var invalidErr *types.InvalidAddressError
	require.ErrorAs(t, err, &invalidErr)
	require.EqualValues(t, 0, calls.Load())
}

func TestFundRejectsPublicNetwork(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	client := faucet.NewClient(srv.URL, network.PublicNetworkPassphrase)

	result, err := client.Fund(context.Background(), newTestAddress(t))
	require.Error(t, err)
	require.Nil(t, result)
	require.ErrorIs(t, err, faucet.ErrPublicNetwork)
	require.EqualValues(t, 0, calls.Load())
}
