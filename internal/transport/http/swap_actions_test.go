package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/ryu-ryuk/re-wear/internal/domain"
)

// mountAction serves the handler under a chi route so URL params resolve.
func mountAction(pattern string, h http.HandlerFunc) http.Handler {
	r := chi.NewRouter()
	r.Post(pattern, h)
	return r
}

func TestHandleAcceptSwap(t *testing.T) {
	t.Parallel()

	accepted := domain.SwapRequest{ID: "swap-1", Status: domain.SwapStatusAccepted}

	tests := []struct {
		name           string
		serviceErr     error
		expectedStatus int
		expectedSubstr string
	}{
		{
			name:           "accepted",
			expectedStatus: http.StatusOK,
			expectedSubstr: "Items are now reserved",
		},
		{
			name:           "not the owner",
			serviceErr:     domain.ErrNotItemOwner,
			expectedStatus: http.StatusForbidden,
			expectedSubstr: codeForbidden,
		},
		{
			name:           "no longer pending",
			serviceErr:     domain.ErrSwapNotPending,
			expectedStatus: http.StatusConflict,
			expectedSubstr: "swap_not_pending",
		},
		{
			name:           "item taken concurrently",
			serviceErr:     domain.ErrItemConflict,
			expectedStatus: http.StatusConflict,
			expectedSubstr: "item_conflict",
		},
		{
			name:           "swap missing",
			serviceErr:     domain.ErrSwapNotFound,
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := &stubSwapActions{swap: accepted, err: tt.serviceErr}
			handler := mountAction("/swaps/{id}/accept", HandleAcceptSwap(svc))

			req := httptest.NewRequest(http.MethodPost, "/swaps/swap-1/accept", nil)
			req = req.WithContext(context.WithValue(req.Context(), actorIDKey, "user-b"))
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d (body %s)", tt.expectedStatus, rec.Code, rec.Body.String())
			}
			if tt.expectedSubstr != "" && !strings.Contains(rec.Body.String(), tt.expectedSubstr) {
				t.Fatalf("expected body to contain %q, got %s", tt.expectedSubstr, rec.Body.String())
			}
			if tt.serviceErr == nil && svc.lastSwapID != "swap-1" {
				t.Fatalf("expected swap id swap-1, got %q", svc.lastSwapID)
			}
		})
	}
}

func TestHandleCompleteSwap(t *testing.T) {
	t.Parallel()

	completed := domain.SwapRequest{ID: "swap-1", Status: domain.SwapStatusCompleted}

	tests := []struct {
		name           string
		serviceErr     error
		expectedStatus int
	}{
		{name: "completed", expectedStatus: http.StatusOK},
		{name: "second complete", serviceErr: domain.ErrSwapNotAccepted, expectedStatus: http.StatusConflict},
		{name: "outsider", serviceErr: domain.ErrNotParticipant, expectedStatus: http.StatusForbidden},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := &stubSwapActions{swap: completed, err: tt.serviceErr}
			handler := mountAction("/swaps/{id}/complete", HandleCompleteSwap(svc))

			req := httptest.NewRequest(http.MethodPost, "/swaps/swap-1/complete", nil)
			req = req.WithContext(context.WithValue(req.Context(), actorIDKey, "user-a"))
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d", tt.expectedStatus, rec.Code)
			}
		})
	}
}

func TestHandleCancelSwap(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		serviceErr     error
		expectedStatus int
		expectedSubstr string
	}{
		{
			name:           "cancelled",
			expectedStatus: http.StatusOK,
			expectedSubstr: "Swap request cancelled.",
		},
		{
			name:           "not the requester",
			serviceErr:     domain.ErrNotRequester,
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "already accepted",
			serviceErr:     domain.ErrSwapNotPending,
			expectedStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := &stubSwapActions{err: tt.serviceErr}
			handler := mountAction("/swaps/{id}/cancel", HandleCancelSwap(svc))

			req := httptest.NewRequest(http.MethodPost, "/swaps/swap-1/cancel", nil)
			req = req.WithContext(context.WithValue(req.Context(), actorIDKey, "user-a"))
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d", tt.expectedStatus, rec.Code)
			}
			if tt.expectedSubstr != "" && !strings.Contains(rec.Body.String(), tt.expectedSubstr) {
				t.Fatalf("expected body to contain %q, got %s", tt.expectedSubstr, rec.Body.String())
			}
		})
	}
}

type stubSwapActions struct {
	swap       domain.SwapRequest
	err        error
	lastSwapID string
}

func (s *stubSwapActions) Accept(_ context.Context, _, swapID string) (domain.SwapRequest, error) {
	s.lastSwapID = swapID
	return s.swap, s.err
}

func (s *stubSwapActions) Reject(_ context.Context, _, swapID string) (domain.SwapRequest, error) {
	s.lastSwapID = swapID
	return s.swap, s.err
}

func (s *stubSwapActions) Complete(_ context.Context, _, swapID string) (domain.SwapRequest, error) {
	s.lastSwapID = swapID
	return s.swap, s.err
}

func (s *stubSwapActions) Cancel(_ context.Context, _, swapID string) error {
	s.lastSwapID = swapID
	return s.err
}
