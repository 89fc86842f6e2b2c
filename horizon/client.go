package horizon

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/lumengive/stellar-sdk/types"
)

const requestTimeout = 30 * time.Second

type client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) Client {
	return &client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: requestTimeout},
	}
}

func (c *client) AccountDetail(ctx context.Context, address string) (*Account, error) {
	req, err := http.NewRequestWithContext(
		ctx, http.MethodGet, fmt.Sprintf("%s/accounts/%s", c.baseURL, address), nil,
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
	if resp.StatusCode == http.StatusNotFound {
		return nil, &types.AccountNotFoundError{Address: address}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to load account %s: %s", address, string(body))
	}

	account := &Account{}
	if err := json.Unmarshal(body, account); err != nil {
		return nil, err
	}
	return account, nil
}

func (c *client) SubmitTransaction(
	ctx context.Context, envelopeXDR string,
) (*SubmitResult, error) {
	form := url.Values{}
	form.Set("tx", envelopeXDR)

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, fmt.Sprintf("%s/transactions", c.baseURL),
		strings.NewReader(form.Encode()),
	)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

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
		// The rejection body is kept verbatim for diagnostics.
		return nil, &types.SubmissionError{
			StatusCode: resp.StatusCode,
			Detail:     string(body),
		}
	}

	result := &SubmitResult{}
	if err := json.Unmarshal(body, result); err != nil {
		return nil, err
	}
	return result, nil
}
