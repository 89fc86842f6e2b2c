package faucet

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/stellar/go/network"
	"github.com/stellar/go/strkey"

	"github.com/lumengive/stellar-sdk/types"
)

const requestTimeout = 30 * time.Second

var ErrPublicNetwork = fmt.Errorf(
	"faucet funding is only available on test networks",
)

type Client interface {
	Fund(ctx context.Context, address string) (*types.FundingResult, error)
}

type client struct {
	baseURL           string
	networkPassphrase string
	http              *http.Client
}

func NewClient(baseURL, networkPassphrase string) Client {
	return &client{
		baseURL:           strings.TrimSuffix(baseURL, "/"),
		networkPassphrase: networkPassphrase,
		http:              &http.Client{Timeout: requestTimeout},
	}
}

// Fund asks the test-network faucet to deposit funds into the given address.
// Retries, if any, belong to the caller.
func (c *client) Fund(ctx context.Context, address string) (*types.FundingResult, error) {
	if c.networkPassphrase == network.PublicNetworkPassphrase {
		return nil, ErrPublicNetwork
	}
	if !strkey.IsValidEd25519PublicKey(address) {
		return nil, &types.InvalidAddressError{Address: address}
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodGet,
		fmt.Sprintf("%s/?addr=%s", c.baseURL, url.QueryEscape(address)), nil,
	)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &types.FundingError{
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}

	payload := struct {
		Hash string `json:"hash"`
	}{}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, err
	}

	return &types.FundingResult{Hash: payload.Hash}, nil
}
