package horizon

import "context"

// Balance is one entry of an account's balances array. Only the fields this
// SDK reads are decoded; the rest of the horizon payload is opaque.
type Balance struct {
	AssetType string `json:"asset_type"`
	Balance   string `json:"balance"`
}

type Account struct {
	ID       string    `json:"id"`
	Sequence string    `json:"sequence"`
	Balances []Balance `json:"balances"`
}

// NativeBalance returns the lumens balance of the account.
func (a *Account) NativeBalance() string {
	for _, b := range a.Balances {
		if b.AssetType == "native" {
			return b.Balance
		}
	}
	return "0"
}

type SubmitResult struct {
	Hash   string `json:"hash"`
	Ledger int64  `json:"ledger"`
}

type Client interface {
	AccountDetail(ctx context.Context, address string) (*Account, error)
	SubmitTransaction(ctx context.Context, envelopeXDR string) (*SubmitResult, error)
}
