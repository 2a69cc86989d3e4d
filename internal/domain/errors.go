package domain

import "errors"

var (
	// Validation failures. Reported before any mutation.
	ErrSelfSwap            = errors.New("cannot request a swap for your own item")
	ErrOfferedItemNotOwned = errors.New("you can only offer items that you own")
	ErrItemUnavailable     = errors.New("item is not available")
	ErrItemNotApproved     = errors.New("item is not approved")
	ErrDuplicateSwap       = errors.New("a pending swap request for this combination already exists")
	ErrSelfRedeem          = errors.New("cannot redeem your own item")
	ErrInsufficientPoints  = errors.New("insufficient points")
	ErrInvalidID           = errors.New("invalid id")

	// Authorization failures.
	ErrNotItemOwner   = errors.New("only the item owner can act on this swap")
	ErrNotRequester   = errors.New("only the requester can cancel this swap")
	ErrNotParticipant = errors.New("only involved parties can act on this swap")

	// State failures. The target moved on; re-fetch and retry.
	ErrSwapNotPending  = errors.New("swap request is no longer pending")
	ErrSwapNotAccepted = errors.New("swap must be accepted before it can be completed")
	ErrItemConflict    = errors.New("item is no longer available")

	// Lookups.
	ErrSwapNotFound = errors.New("swap request not found")
	ErrItemNotFound = errors.New("item not found")
	ErrUserNotFound = errors.New("user not found")

	// ErrTransactionFailed covers infrastructure failures inside the atomic
	// section. The transaction rolled back; safe to retry.
	ErrTransactionFailed = errors.New("transaction failed, retry")
)

// Kind classifies an error for callers that map errors onto a transport.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindAuthorization
	KindState
	KindNotFound
	KindTransaction
)

var errorKinds = map[error]Kind{
	ErrSelfSwap:            KindValidation,
	ErrOfferedItemNotOwned: KindValidation,
	ErrItemUnavailable:     KindValidation,
	ErrItemNotApproved:     KindValidation,
	ErrDuplicateSwap:       KindValidation,
	ErrSelfRedeem:          KindValidation,
	ErrInsufficientPoints:  KindValidation,
	ErrInvalidID:           KindValidation,

	ErrNotItemOwner:   KindAuthorization,
	ErrNotRequester:   KindAuthorization,
	ErrNotParticipant: KindAuthorization,

	ErrSwapNotPending:  KindState,
	ErrSwapNotAccepted: KindState,
	ErrItemConflict:    KindState,

	ErrSwapNotFound: KindNotFound,
	ErrItemNotFound: KindNotFound,
	ErrUserNotFound: KindNotFound,

	ErrTransactionFailed: KindTransaction,
}

// KindOf returns the kind of err, unwrapping as needed. Unrecognized errors
// report KindUnknown.
func KindOf(err error) Kind {
	for sentinel, kind := range errorKinds {
		if errors.Is(err, sentinel) {
			return kind
		}
	}
	return KindUnknown
}
