package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ryu-ryuk/re-wear/internal/app"
	"github.com/ryu-ryuk/re-wear/internal/domain"
)

func TestHandleProposeSwap(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	swap := domain.SwapRequest{
		ID:              "swap-1",
		RequesterID:     "user-a",
		RequestedItemID: "item-y",
		OfferedItemID:   "item-x",
		Status:          domain.SwapStatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	tests := []struct {
		name           string
		body           string
		serviceErr     error
		expectedStatus int
		expectedSubstr string
	}{
		{
			name:           "created",
			body:           `{"requested_item_id":"item-y","offered_item_id":"item-x","message":"trade?"}`,
			expectedStatus: http.StatusCreated,
			expectedSubstr: `"status":"pending"`,
		},
		{
			name:           "invalid body",
			body:           `{"requested_item_id":`,
			expectedStatus: http.StatusBadRequest,
			expectedSubstr: codeInvalidRequestBody,
		},
		{
			name:           "unknown field",
			body:           `{"requested_item_id":"item-y","offered_item_id":"item-x","bogus":1}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing item ids",
			body:           `{"message":"hi"}`,
			expectedStatus: http.StatusBadRequest,
			expectedSubstr: codeMissingField,
		},
		{
			name:           "self swap",
			body:           `{"requested_item_id":"item-y","offered_item_id":"item-x"}`,
			serviceErr:     domain.ErrSelfSwap,
			expectedStatus: http.StatusBadRequest,
			expectedSubstr: "self_swap",
		},
		{
			name:           "duplicate proposal",
			body:           `{"requested_item_id":"item-y","offered_item_id":"item-x"}`,
			serviceErr:     domain.ErrDuplicateSwap,
			expectedStatus: http.StatusBadRequest,
			expectedSubstr: "duplicate_swap_request",
		},
		{
			name:           "item not found",
			body:           `{"requested_item_id":"item-y","offered_item_id":"item-x"}`,
			serviceErr:     domain.ErrItemNotFound,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "transaction failed",
			body:           `{"requested_item_id":"item-y","offered_item_id":"item-x"}`,
			serviceErr:     domain.ErrTransactionFailed,
			expectedStatus: http.StatusInternalServerError,
			expectedSubstr: codeTransactionFailed,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc := &stubSwapProposer{swap: swap, err: tt.serviceErr}

			req := httptest.NewRequest(http.MethodPost, "/swaps", strings.NewReader(tt.body))
			req = req.WithContext(context.WithValue(req.Context(), actorIDKey, "user-a"))
			rec := httptest.NewRecorder()

			HandleProposeSwap(svc).ServeHTTP(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Fatalf("expected status %d, got %d (body %s)", tt.expectedStatus, rec.Code, rec.Body.String())
			}
			if tt.expectedSubstr != "" && !strings.Contains(rec.Body.String(), tt.expectedSubstr) {
				t.Fatalf("expected body to contain %q, got %s", tt.expectedSubstr, rec.Body.String())
			}
		})
	}

	t.Run("passes the authenticated actor", func(t *testing.T) {
		t.Parallel()
		svc := &stubSwapProposer{swap: swap}

		req := httptest.NewRequest(http.MethodPost, "/swaps",
			strings.NewReader(`{"requested_item_id":"item-y","offered_item_id":"item-x"}`))
		req = req.WithContext(context.WithValue(req.Context(), actorIDKey, "user-a"))
		rec := httptest.NewRecorder()

		HandleProposeSwap(svc).ServeHTTP(rec, req)

		if svc.lastInput.RequesterID != "user-a" {
			t.Fatalf("expected requester user-a, got %q", svc.lastInput.RequesterID)
		}
	})
}

func TestHandleListSwaps(t *testing.T) {
	t.Parallel()

	svc := &stubSwapReader{
		swaps: []domain.SwapRequest{
			{ID: "swap-1", Status: domain.SwapStatusPending},
			{ID: "swap-2", Status: domain.SwapStatusCompleted},
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/swaps", nil)
	req = req.WithContext(context.WithValue(req.Context(), actorIDKey, "user-a"))
	rec := httptest.NewRecorder()

	HandleListSwaps(svc).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `"swap-1"`) || !strings.Contains(body, `"swap-2"`) {
		t.Fatalf("expected both swaps in body, got %s", body)
	}
}

type stubSwapProposer struct {
	swap      domain.SwapRequest
	err       error
	lastInput app.ProposeSwapInput
}

func (s *stubSwapProposer) Propose(_ context.Context, in app.ProposeSwapInput) (domain.SwapRequest, error) {
	s.lastInput = in
	if s.err != nil {
		return domain.SwapRequest{}, s.err
	}
	return s.swap, nil
}

type stubSwapReader struct {
	swap  domain.SwapRequest
	swaps []domain.SwapRequest
	err   error
}

func (s *stubSwapReader) Get(_ context.Context, _, _ string) (domain.SwapRequest, error) {
	if s.err != nil {
		return domain.SwapRequest{}, s.err
	}
	return s.swap, nil
}

func (s *stubSwapReader) ListForUser(_ context.Context, _ string) ([]domain.SwapRequest, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.swaps, nil
}
