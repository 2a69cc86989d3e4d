package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/ryu-ryuk/re-wear/internal/app"
	"github.com/ryu-ryuk/re-wear/internal/domain"
)

// ItemRedeemer is the minimal interface needed to redeem an item for points.
type ItemRedeemer interface {
	Redeem(ctx context.Context, in app.RedeemInput) (app.RedeemResult, error)
}

// HandleRedeemItem exchanges the caller's points for an item.
func HandleRedeemItem(svc ItemRedeemer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req redeemRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}
		if req.ItemID == "" {
			writeError(w, http.StatusBadRequest, codeMissingField, "item_id is required")
			return
		}

		res, err := svc.Redeem(r.Context(), app.RedeemInput{
			ActorID: ActorID(r.Context()),
			ItemID:  req.ItemID,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, redeemResponse{
			Message:               "Item redeemed successfully!",
			PointsDeducted:        res.PointsDeducted,
			RemainingPoints:       res.RemainingPoints,
			PointsAwardedToSeller: res.SellerReward,
			Item:                  newItemResponse(res.Item),
		})
	}
}

type redeemRequest struct {
	ItemID string `json:"item_id"`
}

type redeemResponse struct {
	Message               string       `json:"message"`
	PointsDeducted        int          `json:"points_deducted"`
	RemainingPoints       int          `json:"remaining_points"`
	PointsAwardedToSeller int          `json:"points_awarded_to_seller"`
	Item                  itemResponse `json:"item"`
}

type itemResponse struct {
	ID         string `json:"id"`
	OwnerID    string `json:"owner_id"`
	Title      string `json:"title"`
	Status     string `json:"status"`
	PointValue int    `json:"point_value"`
}

func newItemResponse(item domain.Item) itemResponse {
	return itemResponse{
		ID:         item.ID,
		OwnerID:    item.OwnerID,
		Title:      item.Title,
		Status:     string(item.Status),
		PointValue: item.PointValue,
	}
}
