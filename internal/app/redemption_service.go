package app

import (
	"context"

	"github.com/google/uuid"

	"github.com/ryu-ryuk/re-wear/internal/clock"
	"github.com/ryu-ryuk/re-wear/internal/domain"
)

type RedemptionRepository interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
	GetItemForUpdate(ctx context.Context, itemID string) (domain.Item, error)
	GetUserForUpdate(ctx context.Context, userID string) (domain.User, error)
	DeductPoints(ctx context.Context, userID string, amount int) error
	CreditPoints(ctx context.Context, userID string, amount int) error
	TransferItem(ctx context.Context, itemID, newOwnerID string, status domain.ItemStatus) error
	CreateRedemption(ctx context.Context, redemption domain.Redemption) error
}

// RedemptionService spends points directly for an item: deduction, ownership
// transfer, and the seller's reward land in one transaction or not at all.
type RedemptionService struct {
	repo  RedemptionRepository
	clock clock.Clock
}

func NewRedemptionService(repo RedemptionRepository, clk clock.Clock) *RedemptionService {
	return &RedemptionService{
		repo:  repo,
		clock: clk,
	}
}

type RedeemInput struct {
	ActorID string
	ItemID  string
}

type RedeemResult struct {
	Redemption      domain.Redemption
	PointsDeducted  int
	RemainingPoints int
	SellerReward    int
	Item            domain.Item
}

func (s *RedemptionService) Redeem(ctx context.Context, in RedeemInput) (RedeemResult, error) {
	now := s.clock.Now()
	var result RedeemResult

	err := s.repo.WithTx(ctx, func(txCtx context.Context) error {
		item, err := s.repo.GetItemForUpdate(txCtx, in.ItemID)
		if err != nil {
			return err
		}
		if item.OwnerID == in.ActorID {
			return domain.ErrSelfRedeem
		}
		if item.Status != domain.ItemStatusAvailable {
			return domain.ErrItemUnavailable
		}
		if !item.IsApproved {
			return domain.ErrItemNotApproved
		}

		actor, err := s.repo.GetUserForUpdate(txCtx, in.ActorID)
		if err != nil {
			return err
		}
		if actor.Points < item.PointValue {
			return domain.ErrInsufficientPoints
		}

		// Conditional deduction; the store rejects it if the balance moved
		// under us despite the row lock.
		if err := s.repo.DeductPoints(txCtx, in.ActorID, item.PointValue); err != nil {
			return err
		}
		if err := s.repo.TransferItem(txCtx, item.ID, in.ActorID, domain.ItemStatusSwapped); err != nil {
			return err
		}

		reward := domain.SellerRewardFor(item.PointValue)
		if err := s.repo.CreditPoints(txCtx, item.OwnerID, reward); err != nil {
			return err
		}

		redemption := domain.Redemption{
			ID:           uuid.NewString(),
			ItemID:       item.ID,
			RedeemerID:   in.ActorID,
			SellerID:     item.OwnerID,
			PointsSpent:  item.PointValue,
			SellerReward: reward,
			CreatedAt:    now,
		}
		if err := s.repo.CreateRedemption(txCtx, redemption); err != nil {
			return err
		}

		updated := item
		updated.OwnerID = in.ActorID
		updated.Status = domain.ItemStatusSwapped
		updated.UpdatedAt = now

		result = RedeemResult{
			Redemption:      redemption,
			PointsDeducted:  item.PointValue,
			RemainingPoints: actor.Points - item.PointValue,
			SellerReward:    reward,
			Item:            updated,
		}
		return nil
	})
	if err != nil {
		return RedeemResult{}, transactionError(err)
	}

	return result, nil
}
