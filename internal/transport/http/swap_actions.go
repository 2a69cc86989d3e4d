package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ryu-ryuk/re-wear/internal/domain"
)

type SwapAccepter interface {
	Accept(ctx context.Context, actorID, swapID string) (domain.SwapRequest, error)
}

type SwapRejecter interface {
	Reject(ctx context.Context, actorID, swapID string) (domain.SwapRequest, error)
}

type SwapCompleter interface {
	Complete(ctx context.Context, actorID, swapID string) (domain.SwapRequest, error)
}

type SwapCanceller interface {
	Cancel(ctx context.Context, actorID, swapID string) error
}

// HandleAcceptSwap reserves both items for the swap.
func HandleAcceptSwap(svc SwapAccepter) http.HandlerFunc {
	return swapTransitionHandler(svc.Accept, "Swap request accepted! Items are now reserved.")
}

// HandleRejectSwap declines a pending swap.
func HandleRejectSwap(svc SwapRejecter) http.HandlerFunc {
	return swapTransitionHandler(svc.Reject, "Swap request rejected.")
}

// HandleCompleteSwap finalizes an accepted swap and awards points.
func HandleCompleteSwap(svc SwapCompleter) http.HandlerFunc {
	return swapTransitionHandler(svc.Complete, "Swap completed successfully! Both parties earned 5 points.")
}

// HandleCancelSwap removes a pending swap.
func HandleCancelSwap(svc SwapCanceller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Cancel(r.Context(), ActorID(r.Context()), chi.URLParam(r, "id")); err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, messageResponse{Message: "Swap request cancelled."})
	}
}

func swapTransitionHandler(transition func(ctx context.Context, actorID, swapID string) (domain.SwapRequest, error), message string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		swap, err := transition(r.Context(), ActorID(r.Context()), chi.URLParam(r, "id"))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, swapEnvelope{
			Message: message,
			Swap:    newSwapResponse(swap),
		})
	}
}

type messageResponse struct {
	Message string `json:"message"`
}
