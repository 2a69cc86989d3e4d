package domain

import "time"

type SwapStatus string

const (
	SwapStatusPending   SwapStatus = "pending"
	SwapStatusAccepted  SwapStatus = "accepted"
	SwapStatusRejected  SwapStatus = "rejected"
	SwapStatusCompleted SwapStatus = "completed"
)

// swapTransitions is the full set of legal status moves. Cancel is not a
// transition; a pending swap is deleted outright.
var swapTransitions = map[SwapStatus][]SwapStatus{
	SwapStatusPending:  {SwapStatusAccepted, SwapStatusRejected},
	SwapStatusAccepted: {SwapStatusCompleted},
}

// CanTransition reports whether moving from s to next is legal.
func (s SwapStatus) CanTransition(next SwapStatus) bool {
	for _, allowed := range swapTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal reports whether no further transition is possible from s.
func (s SwapStatus) Terminal() bool {
	return len(swapTransitions[s]) == 0
}

// SwapRequest is a proposal to exchange the requester's offered item for
// another user's requested item.
type SwapRequest struct {
	ID              string
	RequesterID     string
	RequestedItemID string
	OfferedItemID   string
	Status          SwapStatus
	Message         string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
