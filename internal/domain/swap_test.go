package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestCanTransition(t *testing.T) {
	t.Parallel()

	tests := []struct {
		from    SwapStatus
		to      SwapStatus
		allowed bool
	}{
		{SwapStatusPending, SwapStatusAccepted, true},
		{SwapStatusPending, SwapStatusRejected, true},
		{SwapStatusPending, SwapStatusCompleted, false},
		{SwapStatusAccepted, SwapStatusCompleted, true},
		{SwapStatusAccepted, SwapStatusRejected, false},
		{SwapStatusAccepted, SwapStatusPending, false},
		{SwapStatusRejected, SwapStatusAccepted, false},
		{SwapStatusRejected, SwapStatusPending, false},
		{SwapStatusCompleted, SwapStatusAccepted, false},
		{SwapStatusCompleted, SwapStatusCompleted, false},
	}

	for _, tt := range tests {
		if got := tt.from.CanTransition(tt.to); got != tt.allowed {
			t.Errorf("%s -> %s: expected %v, got %v", tt.from, tt.to, tt.allowed, got)
		}
	}
}

func TestTerminal(t *testing.T) {
	t.Parallel()

	for status, terminal := range map[SwapStatus]bool{
		SwapStatusPending:   false,
		SwapStatusAccepted:  false,
		SwapStatusRejected:  true,
		SwapStatusCompleted: true,
	} {
		if got := status.Terminal(); got != terminal {
			t.Errorf("%s: expected terminal=%v, got %v", status, terminal, got)
		}
	}
}

func TestExchangeable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		item Item
		want bool
	}{
		{"available and approved", Item{Status: ItemStatusAvailable, IsApproved: true}, true},
		{"available but unapproved", Item{Status: ItemStatusAvailable, IsApproved: false}, false},
		{"reserved", Item{Status: ItemStatusReserved, IsApproved: true}, false},
		{"pending", Item{Status: ItemStatusPending, IsApproved: true}, false},
		{"swapped", Item{Status: ItemStatusSwapped, IsApproved: true}, false},
	}

	for _, tt := range tests {
		if got := tt.item.Exchangeable(); got != tt.want {
			t.Errorf("%s: expected %v, got %v", tt.name, tt.want, got)
		}
	}
}

func TestKindOf(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		kind Kind
	}{
		{ErrSelfSwap, KindValidation},
		{ErrDuplicateSwap, KindValidation},
		{ErrInsufficientPoints, KindValidation},
		{ErrNotItemOwner, KindAuthorization},
		{ErrNotParticipant, KindAuthorization},
		{ErrSwapNotPending, KindState},
		{ErrItemConflict, KindState},
		{ErrSwapNotFound, KindNotFound},
		{ErrTransactionFailed, KindTransaction},
		{fmt.Errorf("%w: connection reset", ErrTransactionFailed), KindTransaction},
		{fmt.Errorf("wrap: %w", ErrSelfRedeem), KindValidation},
		{errors.New("something else"), KindUnknown},
		{nil, KindUnknown},
	}

	for _, tt := range tests {
		if got := KindOf(tt.err); got != tt.kind {
			t.Errorf("KindOf(%v): expected %v, got %v", tt.err, tt.kind, got)
		}
	}
}

func TestSellerRewardFor(t *testing.T) {
	t.Parallel()

	for value, want := range map[int]int{25: 12, 7: 3, 1: 0, 40: 20} {
		if got := SellerRewardFor(value); got != want {
			t.Errorf("SellerRewardFor(%d): expected %d, got %d", value, want, got)
		}
	}
}
