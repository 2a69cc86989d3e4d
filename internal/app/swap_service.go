package app

import (
	"context"

	"github.com/google/uuid"

	"github.com/ryu-ryuk/re-wear/internal/clock"
	"github.com/ryu-ryuk/re-wear/internal/domain"
)

type SwapRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetSwap(ctx context.Context, swapID string) (domain.SwapRequest, error)
	GetSwapForUpdate(ctx context.Context, swapID string) (domain.SwapRequest, error)
	ListSwapsForUser(ctx context.Context, userID string) ([]domain.SwapRequest, error)
	CreateSwap(ctx context.Context, swap domain.SwapRequest) error
	UpdateSwapStatus(ctx context.Context, swapID string, status domain.SwapStatus) error
	DeleteSwap(ctx context.Context, swapID string) error
	RejectConflictingSwaps(ctx context.Context, swapID string, itemIDs []string) (int, error)
	HasPendingSwap(ctx context.Context, requesterID, requestedItemID, offeredItemID string) (bool, error)
	GetItem(ctx context.Context, itemID string) (domain.Item, error)
	GetItemForUpdate(ctx context.Context, itemID string) (domain.Item, error)
	UpdateItemStatus(ctx context.Context, itemID string, status domain.ItemStatus) error
	CreditPoints(ctx context.Context, userID string, amount int) error
}

// SwapService runs the swap lifecycle. Every mutating operation does its
// precondition checks and its writes inside one repository transaction, with
// the affected rows locked for the duration.
type SwapService struct {
	repo  SwapRepository
	clock clock.Clock
}

func NewSwapService(repo SwapRepository, clk clock.Clock) *SwapService {
	return &SwapService{
		repo:  repo,
		clock: clk,
	}
}

type ProposeSwapInput struct {
	RequesterID     string
	RequestedItemID string
	OfferedItemID   string
	Message         string
}

func (s *SwapService) Propose(ctx context.Context, in ProposeSwapInput) (domain.SwapRequest, error) {
	now := s.clock.Now()
	var result domain.SwapRequest

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		requested, err := s.repo.GetItemForUpdate(txCtx, in.RequestedItemID)
		if err != nil {
			return err
		}
		if requested.OwnerID == in.RequesterID {
			return domain.ErrSelfSwap
		}

		offered, err := s.repo.GetItemForUpdate(txCtx, in.OfferedItemID)
		if err != nil {
			return err
		}
		if offered.OwnerID != in.RequesterID {
			return domain.ErrOfferedItemNotOwned
		}

		if requested.Status != domain.ItemStatusAvailable || offered.Status != domain.ItemStatusAvailable {
			return domain.ErrItemUnavailable
		}
		if !requested.IsApproved || !offered.IsApproved {
			return domain.ErrItemNotApproved
		}

		exists, err := s.repo.HasPendingSwap(txCtx, in.RequesterID, in.RequestedItemID, in.OfferedItemID)
		if err != nil {
			return err
		}
		if exists {
			return domain.ErrDuplicateSwap
		}

		swap := domain.SwapRequest{
			ID:              uuid.NewString(),
			RequesterID:     in.RequesterID,
			RequestedItemID: in.RequestedItemID,
			OfferedItemID:   in.OfferedItemID,
			Status:          domain.SwapStatusPending,
			Message:         in.Message,
			CreatedAt:       now,
			UpdatedAt:       now,
		}

		if err := s.repo.CreateSwap(txCtx, swap); err != nil {
			return err
		}

		result = swap
		return nil
	})
	if err != nil {
		return domain.SwapRequest{}, transactionError(err)
	}

	return result, nil
}

// Accept reserves both items and retires every other pending swap that
// references either of them, so no two swaps over the same item can both
// reach accepted.
func (s *SwapService) Accept(ctx context.Context, actorID, swapID string) (domain.SwapRequest, error) {
	var result domain.SwapRequest

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		swap, err := s.repo.GetSwapForUpdate(txCtx, swapID)
		if err != nil {
			return err
		}

		requested, err := s.repo.GetItemForUpdate(txCtx, swap.RequestedItemID)
		if err != nil {
			return err
		}
		if requested.OwnerID != actorID {
			return domain.ErrNotItemOwner
		}

		if !swap.Status.CanTransition(domain.SwapStatusAccepted) {
			return domain.ErrSwapNotPending
		}

		offered, err := s.repo.GetItemForUpdate(txCtx, swap.OfferedItemID)
		if err != nil {
			return err
		}
		if requested.Status != domain.ItemStatusAvailable || offered.Status != domain.ItemStatusAvailable {
			return domain.ErrItemConflict
		}

		if err := s.repo.UpdateSwapStatus(txCtx, swapID, domain.SwapStatusAccepted); err != nil {
			return err
		}
		if err := s.repo.UpdateItemStatus(txCtx, requested.ID, domain.ItemStatusPending); err != nil {
			return err
		}
		if err := s.repo.UpdateItemStatus(txCtx, offered.ID, domain.ItemStatusPending); err != nil {
			return err
		}
		if _, err := s.repo.RejectConflictingSwaps(txCtx, swapID, []string{requested.ID, offered.ID}); err != nil {
			return err
		}

		swap.Status = domain.SwapStatusAccepted
		swap.UpdatedAt = s.clock.Now()
		result = swap
		return nil
	})
	if err != nil {
		return domain.SwapRequest{}, transactionError(err)
	}

	return result, nil
}

// Reject declines a pending swap. The items were never reserved, so they are
// left untouched.
func (s *SwapService) Reject(ctx context.Context, actorID, swapID string) (domain.SwapRequest, error) {
	var result domain.SwapRequest

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		swap, err := s.repo.GetSwapForUpdate(txCtx, swapID)
		if err != nil {
			return err
		}

		requested, err := s.repo.GetItemForUpdate(txCtx, swap.RequestedItemID)
		if err != nil {
			return err
		}
		if requested.OwnerID != actorID {
			return domain.ErrNotItemOwner
		}

		if !swap.Status.CanTransition(domain.SwapStatusRejected) {
			return domain.ErrSwapNotPending
		}

		if err := s.repo.UpdateSwapStatus(txCtx, swapID, domain.SwapStatusRejected); err != nil {
			return err
		}

		swap.Status = domain.SwapStatusRejected
		swap.UpdatedAt = s.clock.Now()
		result = swap
		return nil
	})
	if err != nil {
		return domain.SwapRequest{}, transactionError(err)
	}

	return result, nil
}

// Complete finalizes an accepted swap: both items become swapped and both
// parties earn the completion reward. Either party may call it; the first
// call wins and the second fails on the status check.
func (s *SwapService) Complete(ctx context.Context, actorID, swapID string) (domain.SwapRequest, error) {
	var result domain.SwapRequest

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		swap, err := s.repo.GetSwapForUpdate(txCtx, swapID)
		if err != nil {
			return err
		}

		requested, err := s.repo.GetItemForUpdate(txCtx, swap.RequestedItemID)
		if err != nil {
			return err
		}
		if actorID != swap.RequesterID && actorID != requested.OwnerID {
			return domain.ErrNotParticipant
		}

		if !swap.Status.CanTransition(domain.SwapStatusCompleted) {
			return domain.ErrSwapNotAccepted
		}

		offered, err := s.repo.GetItemForUpdate(txCtx, swap.OfferedItemID)
		if err != nil {
			return err
		}

		if err := s.repo.UpdateSwapStatus(txCtx, swapID, domain.SwapStatusCompleted); err != nil {
			return err
		}
		if err := s.repo.UpdateItemStatus(txCtx, requested.ID, domain.ItemStatusSwapped); err != nil {
			return err
		}
		if err := s.repo.UpdateItemStatus(txCtx, offered.ID, domain.ItemStatusSwapped); err != nil {
			return err
		}
		if err := s.repo.CreditPoints(txCtx, swap.RequesterID, domain.SwapCompletionReward); err != nil {
			return err
		}
		if err := s.repo.CreditPoints(txCtx, requested.OwnerID, domain.SwapCompletionReward); err != nil {
			return err
		}

		swap.Status = domain.SwapStatusCompleted
		swap.UpdatedAt = s.clock.Now()
		result = swap
		return nil
	})
	if err != nil {
		return domain.SwapRequest{}, transactionError(err)
	}

	return result, nil
}

// Cancel removes a pending swap. Only the requester may cancel, and since a
// pending swap never reserved anything there are no item side effects.
func (s *SwapService) Cancel(ctx context.Context, actorID, swapID string) error {
	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		swap, err := s.repo.GetSwapForUpdate(txCtx, swapID)
		if err != nil {
			return err
		}
		if swap.RequesterID != actorID {
			return domain.ErrNotRequester
		}
		if swap.Status != domain.SwapStatusPending {
			return domain.ErrSwapNotPending
		}
		return s.repo.DeleteSwap(txCtx, swapID)
	})
	return transactionError(err)
}

// Get returns a single swap, visible only to its participants.
func (s *SwapService) Get(ctx context.Context, actorID, swapID string) (domain.SwapRequest, error) {
	swap, err := s.repo.GetSwap(ctx, swapID)
	if err != nil {
		return domain.SwapRequest{}, err
	}
	requested, err := s.repo.GetItem(ctx, swap.RequestedItemID)
	if err != nil {
		return domain.SwapRequest{}, err
	}
	if actorID != swap.RequesterID && actorID != requested.OwnerID {
		return domain.SwapRequest{}, domain.ErrNotParticipant
	}
	return swap, nil
}

// ListForUser returns swaps the user proposed plus swaps targeting their
// items, newest first.
func (s *SwapService) ListForUser(ctx context.Context, actorID string) ([]domain.SwapRequest, error) {
	return s.repo.ListSwapsForUser(ctx, actorID)
}
