package domain

import "time"

// SwapCompletionReward is credited to both parties when a swap completes.
const SwapCompletionReward = 5

// Redemption records a one-sided points-for-item exchange. Persisted so the
// point flow of redemptions stays auditable.
type Redemption struct {
	ID           string
	ItemID       string
	RedeemerID   string
	SellerID     string
	PointsSpent  int
	SellerReward int
	CreatedAt    time.Time
}

// SellerRewardFor is the partial-value incentive credited to the original
// owner when their item is redeemed. Integer division, rounds down.
func SellerRewardFor(pointValue int) int {
	return pointValue / 2
}
