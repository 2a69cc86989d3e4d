package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ryu-ryuk/re-wear/internal/app"
	"github.com/ryu-ryuk/re-wear/internal/domain"
)

// SwapProposer is the minimal interface needed to propose a swap.
type SwapProposer interface {
	Propose(ctx context.Context, in app.ProposeSwapInput) (domain.SwapRequest, error)
}

// SwapReader lists and fetches swaps visible to a user.
type SwapReader interface {
	Get(ctx context.Context, actorID, swapID string) (domain.SwapRequest, error)
	ListForUser(ctx context.Context, actorID string) ([]domain.SwapRequest, error)
}

// HandleProposeSwap returns an HTTP handler for creating swap requests.
func HandleProposeSwap(svc SwapProposer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req proposeSwapRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, codeInvalidRequestBody, "invalid request body")
			return
		}
		if req.RequestedItemID == "" || req.OfferedItemID == "" {
			writeError(w, http.StatusBadRequest, codeMissingField, "requested_item_id and offered_item_id are required")
			return
		}

		swap, err := svc.Propose(r.Context(), app.ProposeSwapInput{
			RequesterID:     ActorID(r.Context()),
			RequestedItemID: req.RequestedItemID,
			OfferedItemID:   req.OfferedItemID,
			Message:         req.Message,
		})
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, swapEnvelope{
			Message: "Swap request created.",
			Swap:    newSwapResponse(swap),
		})
	}
}

// HandleListSwaps returns the caller's swaps, sent and received.
func HandleListSwaps(svc SwapReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		swaps, err := svc.ListForUser(r.Context(), ActorID(r.Context()))
		if err != nil {
			writeDomainError(w, err)
			return
		}

		out := make([]swapResponse, 0, len(swaps))
		for _, swap := range swaps {
			out = append(out, newSwapResponse(swap))
		}
		writeJSON(w, http.StatusOK, listSwapsResponse{Swaps: out})
	}
}

// HandleGetSwap returns one swap, restricted to its participants.
func HandleGetSwap(svc SwapReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		swap, err := svc.Get(r.Context(), ActorID(r.Context()), chi.URLParam(r, "id"))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, swapEnvelope{Swap: newSwapResponse(swap)})
	}
}

type proposeSwapRequest struct {
	RequestedItemID string `json:"requested_item_id"`
	OfferedItemID   string `json:"offered_item_id"`
	Message         string `json:"message"`
}

type swapEnvelope struct {
	Message string       `json:"message,omitempty"`
	Swap    swapResponse `json:"swap"`
}

type listSwapsResponse struct {
	Swaps []swapResponse `json:"swaps"`
}

type swapResponse struct {
	ID              string    `json:"id"`
	RequesterID     string    `json:"requester_id"`
	RequestedItemID string    `json:"requested_item_id"`
	OfferedItemID   string    `json:"offered_item_id"`
	Status          string    `json:"status"`
	Message         string    `json:"message,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func newSwapResponse(swap domain.SwapRequest) swapResponse {
	return swapResponse{
		ID:              swap.ID,
		RequesterID:     swap.RequesterID,
		RequestedItemID: swap.RequestedItemID,
		OfferedItemID:   swap.OfferedItemID,
		Status:          string(swap.Status),
		Message:         swap.Message,
		CreatedAt:       swap.CreatedAt,
		UpdatedAt:       swap.UpdatedAt,
	}
}
