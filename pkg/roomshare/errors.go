package roomshare

import (
	"errors"
	"fmt"
)

// Kind classifies a failed contract operation.
type Kind int

const (
	// KindProvider covers node/wallet-level failures: the RPC endpoint
	// rejected the request, signing failed, the call never executed.
	KindProvider Kind = iota
	// KindDomain means the contract executed and rejected the operation
	// (reverted transaction): date overlap, non-owner caller, bad payment.
	KindDomain
)

// Reason is an optional machine-readable failure code.
type Reason string

const (
	ReasonRPC      Reason = "rpc"
	ReasonReverted Reason = "reverted"
)

// CallError is the structured error returned by every contract operation.
// Callers branch on Kind/Reason to decide their own recovery policy instead
// of string-matching the underlying failure.
type CallError struct {
	Op     string // e.g. "roomshare.RentRoom"
	Kind   Kind
	Reason Reason
	Err    error // underlying cause; nil for plain reverts
}

func (e *CallError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

func (e *CallError) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of err if it (or any wrapped error) is a CallError.
func KindOf(err error) (Kind, bool) {
	var callErr *CallError
	if errors.As(err, &callErr) {
		return callErr.Kind, true
	}
	return 0, false
}

// IsReverted reports whether err is a contract-side rejection.
func IsReverted(err error) bool {
	var callErr *CallError
	if errors.As(err, &callErr) {
		return callErr.Reason == ReasonReverted
	}
	return false
}
