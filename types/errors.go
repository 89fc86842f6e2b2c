package types

import "fmt"

// WalletCreationError wraps a signer or storage failure during provisioning.
// No partial record is persisted when it is returned.
type WalletCreationError struct {
	UserID string
	Err    error
}

func (e *WalletCreationError) Error() string {
	return fmt.Sprintf("failed to create wallet for user %s: %v", e.UserID, e.Err)
}

func (e *WalletCreationError) Unwrap() error { return e.Err }

// InvalidAddressError is a local validation failure. It never causes a
// network call.
type InvalidAddressError struct {
	Address string
}

func (e *InvalidAddressError) Error() string {
	return fmt.Sprintf("invalid ledger address %q", e.Address)
}

// AccountNotFoundError is the expected condition on a fresh, unfunded
// address. It triggers the one-shot funding-and-retry path.
type AccountNotFoundError struct {
	Address string
}

func (e *AccountNotFoundError) Error() string {
	return fmt.Sprintf("account %s not found on the ledger", e.Address)
}

// FundingError carries the faucet's HTTP failure. Terminal for the current
// connect attempt.
type FundingError struct {
	StatusCode int
	Body       string
}

func (e *FundingError) Error() string {
	return fmt.Sprintf("faucet request failed with status %d: %s", e.StatusCode, e.Body)
}

// FundingNotYetVisibleError means the faucet accepted the request but the
// account was still missing on the retried load.
type FundingNotYetVisibleError struct {
	Address string
}

func (e *FundingNotYetVisibleError) Error() string {
	return fmt.Sprintf("account %s still not visible after funding", e.Address)
}

// SignerError wraps a failure from the external signer (user declined,
// device unavailable).
type SignerError struct {
	Err error
}

func (e *SignerError) Error() string {
	return fmt.Sprintf("signer failed: %v", e.Err)
}

func (e *SignerError) Unwrap() error { return e.Err }

// SubmissionError preserves the ledger's rejection detail verbatim.
type SubmissionError struct {
	StatusCode int
	Detail     string
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("transaction rejected with status %d: %s", e.StatusCode, e.Detail)
}
