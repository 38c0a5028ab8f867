package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
// Operations failing with ErrValidation are rejected before any read.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates the caller is not allowed to act on the resource.
var ErrForbidden = errors.New("forbidden")

// ErrConflict indicates an optimistic-concurrency collision: the entity was
// modified by a concurrent writer between read and commit. Safe to retry.
var ErrConflict = errors.New("concurrent modification conflict")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// Ledger precondition failures. Returned after a read; no state was changed.
var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrSelfTransfer      = errors.New("cannot transfer to the same wallet")
	ErrUnknownNetwork    = errors.New("unknown network")
	ErrWalletInactive    = errors.New("wallet is inactive")
)

// Marketplace precondition failures.
var (
	ErrNotOwner      = errors.New("caller does not own the asset")
	ErrAlreadyListed = errors.New("asset is already listed")
	ErrNotListed     = errors.New("asset is not listed")
	// ErrListingChanged means the listing was bought or withdrawn by a
	// concurrent caller between read and commit. The caller must re-read the
	// listing before retrying.
	ErrListingChanged = errors.New("listing changed concurrently")
)

// ErrExternalTimeout indicates an external dependency (e.g. the network fee
// schedule) did not answer within its deadline. The operation is aborted with
// no partial state.
var ErrExternalTimeout = errors.New("external dependency timed out")
